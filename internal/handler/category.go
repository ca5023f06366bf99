package handler

import (
	"net/http"

	"github.com/fxola/trivia-api/internal/service"
	"github.com/labstack/echo/v4"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	questions *service.QuestionService
	pageSize  int
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(questions *service.QuestionService, pageSize int) *CategoryHandler {
	return &CategoryHandler{
		questions: questions,
		pageSize:  pageSize,
	}
}

// Register registers the category routes
func (h *CategoryHandler) Register(e *echo.Echo) {
	g := e.Group("/categories")
	g.GET("", h.ListCategories)
	g.GET("/:id/questions", h.QuestionsByCategory)
}

// ListCategories returns every category
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.questions.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":    true,
		"categories": categories,
	})
}

// QuestionsByCategory returns one page of the questions of a category.
// A page with nothing on it is not found.
func (h *CategoryHandler) QuestionsByCategory(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	page, pageSize, err := pageParams(c, h.pageSize)
	if err != nil {
		return err
	}

	result, err := h.questions.QuestionsByCategory(c.Request().Context(), id, page, pageSize)
	if err != nil {
		return err
	}
	if len(result.Items) == 0 {
		return notFound()
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":          true,
		"questions":        result.Items,
		"total_questions":  result.Total,
		"last_page":        result.LastPage(),
		"current_category": id,
	})
}
