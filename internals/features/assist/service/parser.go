package service

import (
	"encoding/json"
	"strings"

	quizDto "edutrack_backend/internals/features/quizzes/quiz/dto"
)

type generatedPayload struct {
	Questions []quizDto.QuestionInput `json:"questions"`
}

// ParseGeneratedQuestions turns raw model output into usable questions.
// Providers wrap JSON in markdown fences and prose more often than not,
// so the parser cuts out the outermost JSON value before decoding.
// Malformed output is never an error: the caller gets an empty slice.
func ParseGeneratedQuestions(raw string) []quizDto.QuestionInput {
	text := stripFences(raw)

	var payload generatedPayload
	if obj := sliceBetween(text, '{', '}'); obj != "" {
		if err := json.Unmarshal([]byte(obj), &payload); err == nil && len(payload.Questions) > 0 {
			return filterValid(payload.Questions)
		}
	}
	// Some models answer with a bare array instead of the asked-for object.
	if arr := sliceBetween(text, '[', ']'); arr != "" {
		var questions []quizDto.QuestionInput
		if err := json.Unmarshal([]byte(arr), &questions); err == nil {
			return filterValid(questions)
		}
	}
	return []quizDto.QuestionInput{}
}

// stripFences removes ``` blocks while keeping their contents.
func stripFences(raw string) string {
	out := raw
	for _, marker := range []string{"```json", "```JSON", "```"} {
		out = strings.ReplaceAll(out, marker, "")
	}
	return strings.TrimSpace(out)
}

func sliceBetween(text string, opener, closer byte) string {
	start := strings.IndexByte(text, opener)
	end := strings.LastIndexByte(text, closer)
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return text[start : end+1]
}

// filterValid keeps only questions that satisfy the same structural
// invariants quiz authoring enforces. Bad questions are dropped, not
// repaired, so a partially garbled response still yields something.
func filterValid(questions []quizDto.QuestionInput) []quizDto.QuestionInput {
	out := make([]quizDto.QuestionInput, 0, len(questions))
	for _, q := range questions {
		if strings.TrimSpace(q.Text) == "" {
			continue
		}
		if len(q.Options) < 2 {
			continue
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			continue
		}
		if q.Points < 0 {
			continue
		}
		ok := true
		for _, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, q)
		}
	}
	return out
}
