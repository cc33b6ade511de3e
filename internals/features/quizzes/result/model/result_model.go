package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AnswerRecord is one per-question entry in a result's JSONB answers
// array. SelectedAnswer is -1 when the question was left unanswered.
type AnswerRecord struct {
	QuestionIndex  int  `json:"questionIndex"`
	SelectedAnswer int  `json:"selectedAnswer"`
	IsCorrect      bool `json:"isCorrect"`
	PointsAwarded  int  `json:"pointsAwarded"`
}

// ResultModel maps the results table. The composite unique index is the
// authoritative guard for the one-submission-per-(student, quiz)
// invariant: two concurrent submissions race on the insert and the loser
// gets a unique violation, never a second row.
type ResultModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_results_student_quiz" json:"student_id"`
	QuizID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_results_student_quiz" json:"quiz_id"`

	Score      int `gorm:"not null" json:"score"`
	Total      int `gorm:"not null" json:"total"`
	Percentage int `gorm:"not null" json:"percentage"` // derived, round(score/total*100)
	TimeSpent  int `gorm:"not null" json:"time_spent"` // minutes, floor(seconds/60)

	Answers datatypes.JSONType[[]AnswerRecord] `gorm:"type:jsonb" json:"answers"`

	// Results are immutable: inserted once, never updated or deleted.
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ResultModel) TableName() string {
	return "results"
}
