package dto

import (
	"time"

	"edutrack_backend/internals/features/quizzes/result/model"
)

// =============================
// Request DTO
// =============================
// Answers holds the selected option index per question, by position; use
// -1 (or omit trailing entries) for unanswered. Score is accepted as a
// client hint only; the server rescans the quiz and recomputes it.
type SubmitResultRequest struct {
	QuizID           string `json:"quiz_id" validate:"required,uuid"`
	Score            int    `json:"score" validate:"gte=0"`
	Total            int    `json:"total" validate:"required,gt=0"`
	Answers          []int  `json:"answers"`
	TimeSpentSeconds int    `json:"time_spent_seconds" validate:"gte=0"`
}

// =============================
// Response DTOs
// =============================

type ResultDTO struct {
	ID         string               `json:"id"`
	StudentID  string               `json:"student_id"`
	QuizID     string               `json:"quiz_id"`
	Score      int                  `json:"score"`
	Total      int                  `json:"total"`
	Percentage int                  `json:"percentage"`
	TimeSpent  int                  `json:"time_spent"`
	Answers    []model.AnswerRecord `json:"answers"`
	CreatedAt  time.Time            `json:"created_at"`
}

func ToResultDTO(r model.ResultModel) ResultDTO {
	return ResultDTO{
		ID:         r.ID.String(),
		StudentID:  r.StudentID.String(),
		QuizID:     r.QuizID.String(),
		Score:      r.Score,
		Total:      r.Total,
		Percentage: r.Percentage,
		TimeSpent:  r.TimeSpent,
		Answers:    r.Answers.Data(),
		CreatedAt:  r.CreatedAt,
	}
}

// StudentResultDTO is a student's own result with the quiz joined in.
// Quiz fields degrade to "Unknown quiz" when the quiz was deleted.
type StudentResultDTO struct {
	ID          string    `json:"id"`
	QuizID      string    `json:"quiz_id"`
	QuizTitle   string    `json:"quiz_title"`
	QuizSubject string    `json:"quiz_subject"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	Percentage  int       `json:"percentage"`
	TimeSpent   int       `json:"time_spent"`
	CreatedAt   time.Time `json:"created_at"`
}

// TeacherResultDTO is a result row for teacher dashboards, with the
// student identity joined in.
type TeacherResultDTO struct {
	ID           string    `json:"id"`
	QuizID       string    `json:"quiz_id"`
	QuizTitle    string    `json:"quiz_title"`
	StudentID    string    `json:"student_id"`
	StudentName  string    `json:"student_name"`
	StudentEmail string    `json:"student_email"`
	Score        int       `json:"score"`
	Total        int       `json:"total"`
	Percentage   int       `json:"percentage"`
	TimeSpent    int       `json:"time_spent"`
	CreatedAt    time.Time `json:"created_at"`
}
