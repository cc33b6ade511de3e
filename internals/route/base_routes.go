package route

import (
	"github.com/gofiber/fiber/v2"

	database "edutrack_backend/internals/databases"
)

// BaseRoutes holds the unauthenticated service endpoints.
func BaseRoutes(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "edutrack-backend",
			"status":  "running",
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "up"
		if err := database.Ping(); err != nil {
			dbStatus = "down"
		}
		return c.JSON(fiber.Map{
			"status":   "ok",
			"database": dbStatus,
		})
	})
}
