package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	quizModel "edutrack_backend/internals/features/quizzes/quiz/model"
	"edutrack_backend/internals/features/quizzes/result/dto"
	"edutrack_backend/internals/features/quizzes/result/model"
	helper "edutrack_backend/internals/helpers"
)

var validateResult = validator.New()

type ResultController struct {
	DB *gorm.DB
}

func NewResultController(db *gorm.DB) *ResultController {
	return &ResultController{DB: db}
}

// =============================
// Submit (student)
// =============================
// One submission per (student, quiz). The DB unique index is what makes
// the check atomic: concurrent duplicates lose the insert race and map to
// 409 here.
func (rc *ResultController) Submit(c *fiber.Ctx) error {
	callerID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.SubmitResultRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateResult.Struct(&req); err != nil {
		return helper.JsonValidatorError(c, err)
	}
	quizID, err := uuid.Parse(req.QuizID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz id")
	}

	var quiz quizModel.QuizModel
	if err := rc.DB.First(&quiz, "id = ?", quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Quiz not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch quiz")
	}

	questions := quiz.Questions.Data()

	// The stored correctAnswer values are authoritative; the client score
	// is a hint only. A mismatch is logged, never persisted.
	records, score := dto.BuildAnswerRecords(questions, req.Answers)
	if req.Score != score {
		log.Printf("[WARN] client score mismatch: quiz=%s student=%s client=%d server=%d",
			quiz.ID, callerID, req.Score, score)
	}

	total := quizModel.SumPoints(questions)
	if total <= 0 {
		total = req.Total
	}

	result := model.ResultModel{
		StudentID:  callerID,
		QuizID:     quiz.ID,
		Score:      score,
		Total:      total,
		Percentage: dto.Percentage(score, total),
		TimeSpent:  dto.TimeSpentMinutes(req.TimeSpentSeconds),
		Answers:    datatypes.NewJSONType(records),
	}

	if err := rc.DB.Create(&result).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return helper.JsonError(c, fiber.StatusConflict, "You have already submitted this quiz")
		}
		log.Println("[ERROR] result insert:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save result")
	}
	return helper.JsonCreated(c, "Result recorded", dto.ToResultDTO(result))
}

// =============================
// My results (student)
// =============================
func (rc *ResultController) MyResults(c *fiber.Ctx) error {
	callerID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var rows []dto.StudentResultDTO
	if err := rc.DB.Table("results").
		Select(`results.id, results.quiz_id,
			COALESCE(quizzes.title, 'Unknown quiz') AS quiz_title,
			COALESCE(quizzes.subject, '') AS quiz_subject,
			results.score, results.total, results.percentage,
			results.time_spent, results.created_at`).
		Joins("LEFT JOIN quizzes ON quizzes.id = results.quiz_id").
		Where("results.student_id = ?", callerID).
		Order("results.created_at DESC").
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch results")
	}
	return helper.JsonList(c, "ok", rows)
}

// =============================
// Results for one quiz (teacher + owner)
// =============================
func (rc *ResultController) ForQuiz(c *fiber.Ctx) error {
	callerID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	quizID, err := uuid.Parse(c.Params("quizId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Quiz not found")
	}

	var quiz quizModel.QuizModel
	if err := rc.DB.First(&quiz, "id = ?", quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Quiz not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch quiz")
	}
	if quiz.CreatedBy != callerID {
		return helper.JsonError(c, fiber.StatusForbidden, "You do not own this quiz")
	}

	rows, err := rc.teacherRows(rc.DB.Where("results.quiz_id = ?", quizID))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch results")
	}
	return helper.JsonList(c, "ok", rows)
}

// =============================
// All results across the caller's quizzes (teacher)
// =============================
func (rc *ResultController) AllForTeacher(c *fiber.Ctx) error {
	callerID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	rows, err := rc.teacherRows(rc.DB.Where("quizzes.created_by = ?", callerID))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch results")
	}
	return helper.JsonList(c, "ok", rows)
}

// teacherRows runs the shared results+quiz+student join, newest first.
func (rc *ResultController) teacherRows(query *gorm.DB) ([]dto.TeacherResultDTO, error) {
	var rows []dto.TeacherResultDTO
	err := query.Table("results").
		Select(`results.id, results.quiz_id,
			COALESCE(quizzes.title, 'Unknown quiz') AS quiz_title,
			results.student_id,
			COALESCE(users.name, 'Unknown student') AS student_name,
			COALESCE(users.email, '') AS student_email,
			results.score, results.total, results.percentage,
			results.time_spent, results.created_at`).
		Joins("LEFT JOIN quizzes ON quizzes.id = results.quiz_id").
		Joins("LEFT JOIN users ON users.id = results.student_id").
		Order("results.created_at DESC").
		Scan(&rows).Error
	return rows, err
}
