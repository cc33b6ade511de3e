package route

import (
	"github.com/gofiber/fiber/v2"

	"edutrack_backend/internals/features/assist/controller"
)

// AssistRoutes mounts the AI helpers under /ai, open to any
// authenticated user.
func AssistRoutes(api fiber.Router) {
	ctrl := controller.NewAssistController()

	ai := api.Group("/ai")
	ai.Post("/generate-quiz", ctrl.GenerateQuiz)
	ai.Post("/generate-from-pdf", ctrl.GenerateFromPDF)
	ai.Post("/explain", ctrl.ExplainAnswer)
}
