package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edutrack_backend/internals/features/users/auth/controller"
	"edutrack_backend/internals/middlewares"
)

// PublicAuthRoutes mounts the unauthenticated auth endpoints, each behind
// its own rate limiter.
func PublicAuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", middlewares.SignupRateLimiter(), ctrl.Signup)
	authGroup.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	authGroup.Post("/google", middlewares.LoginRateLimiter(), ctrl.LoginGoogle)
	authGroup.Post("/forgot-password", middlewares.ForgotPasswordRateLimiter(), ctrl.ForgotPassword)
	authGroup.Post("/verify-otp", middlewares.LoginRateLimiter(), ctrl.VerifyOTP)
}

// PrivateAuthRoutes mounts auth endpoints that require a session.
func PrivateAuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	authGroup := api.Group("/auth")
	authGroup.Post("/reset-password", ctrl.ResetPassword)
}
