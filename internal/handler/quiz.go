package handler

import (
	"net/http"

	"github.com/fxola/trivia-api/internal/service"
	"github.com/labstack/echo/v4"
)

// QuizHandler handles quiz play
type QuizHandler struct {
	quizzes *service.QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizzes *service.QuizService) *QuizHandler {
	return &QuizHandler{quizzes: quizzes}
}

// Register registers the quiz routes behind the given middleware
func (h *QuizHandler) Register(e *echo.Echo, m ...echo.MiddlewareFunc) {
	g := e.Group("/quizzes", m...)
	g.POST("", h.NextQuestion)
	g.POST("/answer", h.CheckAnswer)
}

// QuizCategory identifies the category being played. ID 0 plays all categories.
type QuizCategory struct {
	ID   flexInt `json:"id"`
	Type string  `json:"type"`
}

// QuizRequest represents a request for the next quiz question. Previous ids
// that match no question are ignored.
type QuizRequest struct {
	PreviousQuestions []int64      `json:"previous_questions"`
	QuizCategory      QuizCategory `json:"quiz_category"`
}

// AnswerRequest represents a player's answer to a quiz question
type AnswerRequest struct {
	QuestionID int64  `json:"question_id" validate:"required,gt=0"`
	Answer     string `json:"answer" validate:"required"`
}

// NextQuestion draws a question that has not been played yet. The question
// is null once the category is exhausted.
func (h *QuizHandler) NextQuestion(c echo.Context) error {
	var req QuizRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var categoryID *int64
	if id := int64(req.QuizCategory.ID); id != 0 {
		categoryID = &id
	}

	question, err := h.quizzes.DrawQuestion(c.Request().Context(), categoryID, req.PreviousQuestions)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":  true,
		"question": question,
	})
}

// CheckAnswer tells the player whether their answer is accepted
func (h *QuizHandler) CheckAnswer(c echo.Context) error {
	var req AnswerRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.quizzes.CheckAnswer(c.Request().Context(), req.QuestionID, req.Answer)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"correct": result.Correct,
		"answer":  result.Answer,
	})
}
