package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edutrack_backend/internals/constants"
	"edutrack_backend/internals/features/quizzes/quiz/controller"
	authMw "edutrack_backend/internals/middlewares/auth"
)

// QuizRoutes mounts quiz endpoints on an already-authenticated group.
// Mutations are teacher-only; reads are open to any authenticated user.
func QuizRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewQuizController(db)
	teacherOnly := authMw.OnlyRoles(constants.ErrOnlyTeachersCanAccess, constants.RoleTeacher)

	quizzes := api.Group("/quizzes")
	quizzes.Post("/", teacherOnly, ctrl.Create)
	quizzes.Get("/", ctrl.List)
	quizzes.Get("/teacher/my-quizzes", teacherOnly, ctrl.MyQuizzes)
	quizzes.Get("/:id", ctrl.GetByID)
	quizzes.Put("/:id", teacherOnly, ctrl.Update)
	quizzes.Delete("/:id", teacherOnly, ctrl.Delete)
}
