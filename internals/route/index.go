package route

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	assistRoute "edutrack_backend/internals/features/assist/route"
	quizRoute "edutrack_backend/internals/features/quizzes/quiz/route"
	resultRoute "edutrack_backend/internals/features/quizzes/result/route"
	authRoute "edutrack_backend/internals/features/users/auth/route"
	userRoute "edutrack_backend/internals/features/users/user/route"
	authMw "edutrack_backend/internals/middlewares/auth"
)

// SetupRoutes mounts the whole HTTP surface. Everything under /api
// behind AuthMiddleware requires a bearer token; the auth entry points
// and service endpoints stay public.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	BaseRoutes(app)

	api := app.Group("/api")

	log.Println("[INFO] Setting up auth routes...")
	authRoute.PublicAuthRoutes(api, db)

	private := api.Group("", authMw.AuthMiddleware())
	authRoute.PrivateAuthRoutes(private, db)
	userRoute.ProfileRoutes(private, db)

	log.Println("[INFO] Setting up quiz routes...")
	quizRoute.QuizRoutes(private, db)
	resultRoute.ResultRoutes(private, db)

	log.Println("[INFO] Setting up AI assist routes...")
	assistRoute.AssistRoutes(private)
}
