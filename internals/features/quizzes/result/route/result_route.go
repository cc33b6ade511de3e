package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edutrack_backend/internals/constants"
	"edutrack_backend/internals/features/quizzes/result/controller"
	authMw "edutrack_backend/internals/middlewares/auth"
)

// ResultRoutes wires result submission and listing under /results.
// Submission is student-only; the listing endpoints are teacher-only
// except the student's own history.
func ResultRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewResultController(db)

	studentOnly := authMw.OnlyRoles(
		constants.ErrOnlyStudentsCanAccess,
		constants.RoleStudent,
	)
	teacherOnly := authMw.OnlyRoles(
		constants.ErrOnlyTeachersCanAccess,
		constants.RoleTeacher,
	)

	results := api.Group("/results")
	results.Post("/", studentOnly, ctrl.Submit)
	results.Get("/student", studentOnly, ctrl.MyResults)
	results.Get("/all", teacherOnly, ctrl.AllForTeacher)
	// keep the literal paths above registered before the param route
	results.Get("/:quizId", teacherOnly, ctrl.ForQuiz)
}
