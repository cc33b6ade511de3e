package dto

import (
	"math"

	quizModel "edutrack_backend/internals/features/quizzes/quiz/model"
	"edutrack_backend/internals/features/quizzes/result/model"
)

// Unanswered marks a question with no (usable) selection.
const Unanswered = -1

// Percentage is the single percentage policy for the whole codebase:
// round-half-up integer, 0 when total is 0.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

// TimeSpentMinutes converts a submitted duration to whole minutes.
func TimeSpentMinutes(seconds int) int {
	if seconds <= 0 {
		return 0
	}
	return seconds / 60
}

// BuildAnswerRecords zips the submitted selections against the quiz's
// question list by position and rescored against the stored correct
// answers. A missing or out-of-range selection counts as unanswered with
// 0 points. Returns the per-question records and the authoritative score
// (points sum of correct answers).
func BuildAnswerRecords(questions []quizModel.QuestionDoc, answers []int) ([]model.AnswerRecord, int) {
	records := make([]model.AnswerRecord, 0, len(questions))
	score := 0
	for i, q := range questions {
		selected := Unanswered
		if i < len(answers) && answers[i] >= 0 && answers[i] < len(q.Options) {
			selected = answers[i]
		}
		correct := selected != Unanswered && selected == q.CorrectAnswer
		points := 0
		if correct {
			points = q.Points
			score += q.Points
		}
		records = append(records, model.AnswerRecord{
			QuestionIndex:  i,
			SelectedAnswer: selected,
			IsCorrect:      correct,
			PointsAwarded:  points,
		})
	}
	return records, score
}
