package handler

import (
	"net/http"
	"strings"

	"github.com/fxola/trivia-api/internal/service"
	"github.com/fxola/trivia-api/internal/validation"
	"github.com/labstack/echo/v4"
)

// QuestionHandler handles question-related HTTP requests
type QuestionHandler struct {
	questions *service.QuestionService
	pageSize  int
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questions *service.QuestionService, pageSize int) *QuestionHandler {
	return &QuestionHandler{
		questions: questions,
		pageSize:  pageSize,
	}
}

// Register registers the question routes. Extra middleware wraps the search route only.
func (h *QuestionHandler) Register(e *echo.Echo, search ...echo.MiddlewareFunc) {
	g := e.Group("/questions")
	g.GET("", h.ListQuestions)
	g.POST("", h.CreateQuestion)
	g.POST("/search", h.Search, search...)
	g.GET("/:id", h.GetQuestion)
	g.DELETE("/:id", h.DeleteQuestion)
}

// CreateQuestionRequest represents the request to create a new question
type CreateQuestionRequest struct {
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Category   flexInt `json:"category"`
	Difficulty flexInt `json:"difficulty"`
}

// SearchRequest represents a search of the question bank
type SearchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// ListQuestions returns one page of all questions along with the categories
func (h *QuestionHandler) ListQuestions(c echo.Context) error {
	page, pageSize, err := pageParams(c, h.pageSize)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	result, err := h.questions.ListQuestions(ctx, page, pageSize)
	if err != nil {
		return err
	}
	if len(result.Items) == 0 {
		return notFound()
	}

	categories, err := h.questions.ListCategories(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":          true,
		"questions":        result.Items,
		"total_questions":  result.Total,
		"last_page":        result.LastPage(),
		"categories":       categories,
		"current_category": nil,
	})
}

// GetQuestion returns a single question
func (h *QuestionHandler) GetQuestion(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	question, err := h.questions.GetQuestion(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":  true,
		"question": question,
	})
}

// DeleteQuestion removes a question
func (h *QuestionHandler) DeleteQuestion(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.questions.DeleteQuestion(c.Request().Context(), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Question deleted successfully",
		"deleted": id,
	})
}

// CreateQuestion adds a question to the bank
func (h *QuestionHandler) CreateQuestion(c echo.Context) error {
	var req CreateQuestionRequest
	if err := c.Bind(&req); err != nil {
		return unprocessable()
	}

	question, err := h.questions.CreateQuestion(c.Request().Context(), validation.NewQuestion{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   int64(req.Category),
		Difficulty: int(req.Difficulty),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"message": "Question posted successfully",
		"created": question.ID,
	})
}

// Search returns one page of the questions containing the search term
func (h *QuestionHandler) Search(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return unprocessable()
	}
	if strings.TrimSpace(req.SearchTerm) == "" {
		return unprocessable()
	}

	page, pageSize, err := pageParams(c, h.pageSize)
	if err != nil {
		return err
	}

	result, err := h.questions.Search(c.Request().Context(), req.SearchTerm, page, pageSize)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.Total,
		"current_category": result.CurrentCategory,
	})
}
