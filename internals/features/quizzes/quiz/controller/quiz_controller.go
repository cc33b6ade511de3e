package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"edutrack_backend/internals/features/quizzes/quiz/dto"
	"edutrack_backend/internals/features/quizzes/quiz/model"
	helper "edutrack_backend/internals/helpers"
)

var validateQuiz = validator.New()

type QuizController struct {
	DB *gorm.DB
}

func NewQuizController(db *gorm.DB) *QuizController {
	return &QuizController{DB: db}
}

// =============================
// Create (teacher)
// =============================
func (qc *QuizController) Create(c *fiber.Ctx) error {
	callerID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateQuiz.Struct(&req); err != nil {
		return helper.JsonValidatorError(c, err)
	}
	if err := dto.ValidateQuestions(req.Questions); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := dto.ValidateAvailabilityWindow(req.StartsAt, req.EndsAt); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	questions := dto.ToQuestionDocs(req.Questions)
	quiz := model.QuizModel{
		CreatedBy:              callerID,
		Title:                  strings.TrimSpace(req.Title),
		Subject:                strings.TrimSpace(req.Subject),
		Description:            req.Description,
		Questions:              datatypes.NewJSONType(questions),
		TotalPoints:            model.SumPoints(questions),
		TimeLimit:              req.TimeLimit,
		PerQuestionTimeEnabled: req.PerQuestionTimeEnabled,
		PerQuestionSeconds:     req.PerQuestionSeconds,
		AllowMultipleAttempts:  req.AllowMultipleAttempts,
		StartsAt:               req.StartsAt,
		EndsAt:                 req.EndsAt,
	}

	if err := qc.DB.Create(&quiz).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create quiz")
	}
	return helper.JsonCreated(c, "Quiz created", dto.ToQuizDTO(quiz))
}

// =============================
// List (any authenticated user)
// =============================
// Supports ?subject= (exact) and ?search= (case-insensitive substring on
// title or subject). Newest first.
func (qc *QuizController) List(c *fiber.Ctx) error {
	query := qc.DB.Model(&model.QuizModel{}).Order("created_at DESC")

	if subject := strings.TrimSpace(c.Query("subject")); subject != "" {
		query = query.Where("subject = ?", subject)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR subject ILIKE ?", pattern, pattern)
	}

	var quizzes []model.QuizModel
	if err := query.Find(&quizzes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch quizzes")
	}
	return helper.JsonList(c, "ok", dto.ToQuizDTOs(quizzes))
}

// =============================
// Get by id
// =============================
func (qc *QuizController) GetByID(c *fiber.Ctx) error {
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Quiz not found")
	}

	var quiz model.QuizModel
	if err := qc.DB.First(&quiz, "id = ?", quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Quiz not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch quiz")
	}
	return helper.JsonOK(c, "ok", dto.ToQuizDTO(quiz))
}

// =============================
// Update (teacher + owner)
// =============================
// Ownership failures answer 404, identical to a missing quiz, so the
// endpoint leaks nothing about quizzes the caller does not own.
func (qc *QuizController) Update(c *fiber.Ctx) error {
	callerID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Quiz not found")
	}

	var quiz model.QuizModel
	if err := qc.DB.First(&quiz, "id = ? AND created_by = ?", quizID, callerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Quiz not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch quiz")
	}

	var req dto.UpdateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateQuiz.Struct(&req); err != nil {
		return helper.JsonValidatorError(c, err)
	}

	if req.Title != nil {
		quiz.Title = strings.TrimSpace(*req.Title)
	}
	if req.Subject != nil {
		quiz.Subject = strings.TrimSpace(*req.Subject)
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.Questions != nil {
		if err := dto.ValidateQuestions(*req.Questions); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		questions := dto.ToQuestionDocs(*req.Questions)
		quiz.Questions = datatypes.NewJSONType(questions)
		quiz.TotalPoints = model.SumPoints(questions)
	}
	if req.TimeLimit != nil {
		quiz.TimeLimit = *req.TimeLimit
	}
	if req.PerQuestionTimeEnabled != nil {
		quiz.PerQuestionTimeEnabled = *req.PerQuestionTimeEnabled
	}
	if req.PerQuestionSeconds != nil {
		quiz.PerQuestionSeconds = *req.PerQuestionSeconds
	}
	if req.AllowMultipleAttempts != nil {
		quiz.AllowMultipleAttempts = *req.AllowMultipleAttempts
	}
	if req.StartsAt != nil {
		quiz.StartsAt = req.StartsAt
	}
	if req.EndsAt != nil {
		quiz.EndsAt = req.EndsAt
	}
	if err := dto.ValidateAvailabilityWindow(quiz.StartsAt, quiz.EndsAt); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := qc.DB.Save(&quiz).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update quiz")
	}
	return helper.JsonUpdated(c, "Quiz updated", dto.ToQuizDTO(quiz))
}

// =============================
// Delete (teacher + owner)
// =============================
// Results referencing the quiz are NOT cascade-deleted; result views
// degrade to "Unknown quiz" for orphans.
func (qc *QuizController) Delete(c *fiber.Ctx) error {
	callerID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Quiz not found")
	}

	res := qc.DB.Where("id = ? AND created_by = ?", quizID, callerID).Delete(&model.QuizModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete quiz")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Quiz not found")
	}
	return helper.JsonDeleted(c, "Quiz deleted", nil)
}

// =============================
// My quizzes (teacher)
// =============================
func (qc *QuizController) MyQuizzes(c *fiber.Ctx) error {
	callerID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var quizzes []model.QuizModel
	if err := qc.DB.
		Where("created_by = ?", callerID).
		Order("created_at DESC").
		Find(&quizzes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch quizzes")
	}
	return helper.JsonList(c, "ok", dto.ToQuizDTOs(quizzes))
}
