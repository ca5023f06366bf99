package validation

import (
	"fmt"
	"strings"

	"github.com/fxola/trivia-api/internal/domain"
	"github.com/go-playground/validator/v10"
)

// NewQuestion holds the raw fields submitted for a new question
type NewQuestion struct {
	Question   string `json:"question" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
	Category   int64  `json:"category" validate:"required"`
	Difficulty int    `json:"difficulty" validate:"required"`
}

var validate = validator.New()

// ValidateNewQuestion normalizes the submitted fields and turns them into a draft.
// Any missing or empty field rejects the whole question with ErrUnprocessable.
func ValidateNewQuestion(in NewQuestion) (domain.QuestionDraft, error) {
	in.Question = strings.TrimSpace(in.Question)
	in.Answer = strings.TrimSpace(in.Answer)

	if err := validate.Struct(in); err != nil {
		return domain.QuestionDraft{}, fmt.Errorf("new question: %w", domain.ErrUnprocessable)
	}

	return domain.QuestionDraft{
		Question:   in.Question,
		Answer:     in.Answer,
		Category:   in.Category,
		Difficulty: in.Difficulty,
	}, nil
}
