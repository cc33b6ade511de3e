package controller

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"edutrack_backend/internals/features/assist/service"
	quizDto "edutrack_backend/internals/features/quizzes/quiz/dto"
	helper "edutrack_backend/internals/helpers"
)

var validateAssist = validator.New()

// maxGeneratedQuestions caps one generation request.
const maxGeneratedQuestions = 20

type AssistController struct{}

func NewAssistController() *AssistController {
	return &AssistController{}
}

const generateSystemPrompt = `You are a quiz author. Respond with JSON only, no prose, in this exact shape:
{"questions":[{"text":"...","options":["...","...","...","..."],"correctAnswer":0,"points":1}]}
Every question must have at least 2 options and correctAnswer must be a valid index into options.`

// =============================
// Generate questions from a topic
// =============================
// Generation is best effort: provider failures and garbled output both
// produce an empty list with 200, never an error, so quiz authoring is
// usable without the provider.
func (ac *AssistController) GenerateQuiz(c *fiber.Ctx) error {
	var req struct {
		Topic         string `json:"topic" validate:"required,max=500"`
		Subject       string `json:"subject" validate:"omitempty,max=100"`
		QuestionCount int    `json:"question_count" validate:"omitempty,gte=1,lte=20"`
		Difficulty    string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateAssist.Struct(&req); err != nil {
		return helper.JsonValidatorError(c, err)
	}
	if req.QuestionCount == 0 {
		req.QuestionCount = 5
	}
	if req.Difficulty == "" {
		req.Difficulty = "medium"
	}

	prompt := fmt.Sprintf("Write %d %s multiple-choice questions about: %s",
		req.QuestionCount, req.Difficulty, req.Topic)
	if req.Subject != "" {
		prompt += " (subject: " + req.Subject + ")"
	}

	questions := generate(prompt)
	return helper.JsonOK(c, "ok", fiber.Map{"questions": questions})
}

// =============================
// Generate questions from an uploaded PDF
// =============================
func (ac *AssistController) GenerateFromPDF(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "A PDF file is required")
	}
	if fileHeader.Size > service.MaxPDFBytes {
		return helper.JsonError(c, fiber.StatusBadRequest, "File exceeds the 5 MB limit")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Could not read the uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, service.MaxPDFBytes+1))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Could not read the uploaded file")
	}

	text, err := service.ExtractPDFText(data)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	// keep prompts within provider limits
	text = service.TrimToRuneBoundary(text, 12000)

	count := c.QueryInt("question_count", 5)
	if count < 1 {
		count = 1
	}
	if count > maxGeneratedQuestions {
		count = maxGeneratedQuestions
	}

	prompt := fmt.Sprintf(
		"Write %d multiple-choice questions based on this document:\n\n%s", count, text)
	questions := generate(prompt)
	return helper.JsonOK(c, "ok", fiber.Map{"questions": questions})
}

// =============================
// Explain an answer
// =============================
// Unlike generation, explanation has no useful degraded mode, so a
// provider failure surfaces as 500.
func (ac *AssistController) ExplainAnswer(c *fiber.Ctx) error {
	var req struct {
		Question      string   `json:"question" validate:"required,max=2000"`
		Options       []string `json:"options" validate:"required,min=2"`
		CorrectAnswer int      `json:"correct_answer" validate:"gte=0"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateAssist.Struct(&req); err != nil {
		return helper.JsonValidatorError(c, err)
	}
	if req.CorrectAnswer >= len(req.Options) {
		return helper.JsonError(c, fiber.StatusBadRequest, "correct_answer is out of range")
	}

	prompt := fmt.Sprintf(
		"Question: %s\nOptions: %s\nCorrect answer: %s\nExplain briefly why this answer is correct.",
		req.Question, strings.Join(req.Options, " | "), req.Options[req.CorrectAnswer])

	explanation, err := service.Complete(
		"You are a patient tutor. Answer in 2-4 short sentences.", prompt)
	if err != nil {
		log.Println("[ERROR] explanation request:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not generate an explanation")
	}
	return helper.JsonOK(c, "ok", fiber.Map{"explanation": strings.TrimSpace(explanation)})
}

func generate(prompt string) []quizDto.QuestionInput {
	raw, err := service.Complete(generateSystemPrompt, prompt)
	if err != nil {
		log.Println("[WARN] generation request:", err)
		return []quizDto.QuestionInput{}
	}
	questions := service.ParseGeneratedQuestions(raw)
	if len(questions) > maxGeneratedQuestions {
		questions = questions[:maxGeneratedQuestions]
	}
	return questions
}
