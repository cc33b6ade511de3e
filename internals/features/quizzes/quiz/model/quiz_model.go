package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuestionDoc is one question inside a quiz's JSONB questions array.
// Questions carry a stable id within the quiz; the server assigns one
// when the author omits it.
type QuestionDoc struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"` // zero-based index into Options
	Points        int      `json:"points"`
}

// QuizModel maps the quizzes table. Questions live in a single JSONB
// document column; they are never queried independently of their quiz.
type QuizModel struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Subject     string    `gorm:"size:100;not null;index" json:"subject"`
	Description string    `json:"description"`

	Questions datatypes.JSONType[[]QuestionDoc] `gorm:"type:jsonb" json:"questions"`

	// TotalPoints is derived: recomputed from the questions before every
	// persist, never accepted from a client.
	TotalPoints int `gorm:"not null;default:0" json:"total_points"`

	TimeLimit              int  `gorm:"not null;default:0" json:"time_limit"` // whole-quiz, minutes
	PerQuestionTimeEnabled bool `gorm:"not null;default:false" json:"per_question_time_enabled"`
	PerQuestionSeconds     int  `gorm:"not null;default:0" json:"per_question_seconds"`
	AllowMultipleAttempts  bool `gorm:"not null;default:false" json:"allow_multiple_attempts"`

	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (QuizModel) TableName() string {
	return "quizzes"
}

// SumPoints is the authoritative totalPoints computation.
func SumPoints(questions []QuestionDoc) int {
	total := 0
	for _, q := range questions {
		total += q.Points
	}
	return total
}
