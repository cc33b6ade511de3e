package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edutrack_backend/internals/features/users/user/controller"
)

// ProfileRoutes mounts authenticated profile endpoints. The /me alias and
// /profile serve identical payloads.
func ProfileRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserController(db)

	authGroup := api.Group("/auth")
	authGroup.Get("/me", ctrl.Me)
	authGroup.Get("/profile", ctrl.Me)
	authGroup.Put("/profile", ctrl.UpdateProfile)
}
