package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"edutrack_backend/internals/features/quizzes/quiz/model"
)

// =============================
// Request DTOs
// =============================

type QuestionInput struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Points        int      `json:"points"`
}

type CreateQuizRequest struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Subject     string          `json:"subject" validate:"required,max=100"`
	Description string          `json:"description" validate:"omitempty,max=5000"`
	Questions   []QuestionInput `json:"questions" validate:"required,min=1"`

	TimeLimit              int  `json:"time_limit" validate:"omitempty,gte=0,lte=600"`
	PerQuestionTimeEnabled bool `json:"per_question_time_enabled"`
	PerQuestionSeconds     int  `json:"per_question_seconds" validate:"omitempty,gte=0,lte=3600"`
	AllowMultipleAttempts  bool `json:"allow_multiple_attempts"`

	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

// UpdateQuizRequest is a partial patch: only non-nil fields are applied.
type UpdateQuizRequest struct {
	Title       *string          `json:"title" validate:"omitempty,min=1,max=200"`
	Subject     *string          `json:"subject" validate:"omitempty,min=1,max=100"`
	Description *string          `json:"description" validate:"omitempty,max=5000"`
	Questions   *[]QuestionInput `json:"questions" validate:"omitempty,min=1"`

	TimeLimit              *int  `json:"time_limit" validate:"omitempty,gte=0,lte=600"`
	PerQuestionTimeEnabled *bool `json:"per_question_time_enabled"`
	PerQuestionSeconds     *int  `json:"per_question_seconds" validate:"omitempty,gte=0,lte=3600"`
	AllowMultipleAttempts  *bool `json:"allow_multiple_attempts"`

	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

// =============================
// Structural validation
// =============================

// ValidateQuestions checks every question's structural invariants and
// names the first offending question (1-based, the way authors count).
func ValidateQuestions(questions []QuestionInput) error {
	for i, q := range questions {
		n := i + 1
		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("question %d: text is required", n)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("question %d: at least 2 options are required", n)
		}
		for j, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				return fmt.Errorf("question %d: option %d is empty", n, j+1)
			}
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("question %d: correctAnswer %d is out of range (options: %d)",
				n, q.CorrectAnswer, len(q.Options))
		}
		if q.Points < 0 {
			return fmt.Errorf("question %d: points must not be negative", n)
		}
	}
	return nil
}

// ValidateAvailabilityWindow enforces start < end when both are set.
func ValidateAvailabilityWindow(startsAt, endsAt *time.Time) error {
	if startsAt != nil && endsAt != nil && !startsAt.Before(*endsAt) {
		return fmt.Errorf("availability window: start date must be before end date")
	}
	return nil
}

// =============================
// Converters
// =============================

// ToQuestionDocs normalizes author input: points default to 1 and each
// question gets a stable id when the author omitted one.
func ToQuestionDocs(inputs []QuestionInput) []model.QuestionDoc {
	docs := make([]model.QuestionDoc, 0, len(inputs))
	for _, q := range inputs {
		id := strings.TrimSpace(q.ID)
		if id == "" {
			id = uuid.NewString()
		}
		points := q.Points
		if points == 0 {
			points = 1
		}
		docs = append(docs, model.QuestionDoc{
			ID:            id,
			Text:          strings.TrimSpace(q.Text),
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Points:        points,
		})
	}
	return docs
}

// =============================
// Response DTO
// =============================

type QuizDTO struct {
	ID          string              `json:"id"`
	CreatedBy   string              `json:"created_by"`
	Title       string              `json:"title"`
	Subject     string              `json:"subject"`
	Description string              `json:"description"`
	Questions   []model.QuestionDoc `json:"questions"`
	TotalPoints int                 `json:"total_points"`

	TimeLimit              int  `json:"time_limit"`
	PerQuestionTimeEnabled bool `json:"per_question_time_enabled"`
	PerQuestionSeconds     int  `json:"per_question_seconds"`
	AllowMultipleAttempts  bool `json:"allow_multiple_attempts"`

	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToQuizDTO(q model.QuizModel) QuizDTO {
	return QuizDTO{
		ID:                     q.ID.String(),
		CreatedBy:              q.CreatedBy.String(),
		Title:                  q.Title,
		Subject:                q.Subject,
		Description:            q.Description,
		Questions:              q.Questions.Data(),
		TotalPoints:            q.TotalPoints,
		TimeLimit:              q.TimeLimit,
		PerQuestionTimeEnabled: q.PerQuestionTimeEnabled,
		PerQuestionSeconds:     q.PerQuestionSeconds,
		AllowMultipleAttempts:  q.AllowMultipleAttempts,
		StartsAt:               q.StartsAt,
		EndsAt:                 q.EndsAt,
		CreatedAt:              q.CreatedAt,
		UpdatedAt:              q.UpdatedAt,
	}
}

func ToQuizDTOs(quizzes []model.QuizModel) []QuizDTO {
	out := make([]QuizDTO, 0, len(quizzes))
	for _, q := range quizzes {
		out = append(out, ToQuizDTO(q))
	}
	return out
}
