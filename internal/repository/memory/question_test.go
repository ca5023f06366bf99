package memory

import (
	"context"
	"testing"

	"github.com/fxola/trivia-api/internal/domain"
	"github.com/fxola/trivia-api/internal/repository/storetest"
	"github.com/stretchr/testify/require"
)

func TestQuestionRepository_Contract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storetest.Store {
		return NewQuestionRepository()
	})
}

func TestQuestionRepository_ReturnsCopies(t *testing.T) {
	s := NewQuestionRepository()
	storetest.Seed(t, s, domain.QuestionDraft{Question: "q", Answer: "a", Category: 1, Difficulty: 1})

	all, err := s.ListQuestions(context.Background())
	require.NoError(t, err)
	all[0].Question = "mutated"

	q, err := s.GetQuestion(context.Background(), all[0].ID)
	require.NoError(t, err)
	require.Equal(t, "q", q.Question)
}

func TestQuestionRepository_CanceledContext(t *testing.T) {
	s := NewQuestionRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ListQuestions(ctx)
	require.ErrorIs(t, err, domain.ErrStoreFailure)
	require.ErrorIs(t, err, context.Canceled)

	err = s.DeleteQuestion(ctx, 1)
	require.ErrorIs(t, err, domain.ErrStoreFailure)
}

func TestQuestionRepository_InsertCategoryReplacesSameID(t *testing.T) {
	s := NewQuestionRepository()
	ctx := context.Background()

	_, err := s.InsertCategory(ctx, domain.Category{ID: 1, Type: "Sience"})
	require.NoError(t, err)
	_, err = s.InsertCategory(ctx, domain.Category{ID: 1, Type: "Science"})
	require.NoError(t, err)

	cats, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.Category{{ID: 1, Type: "Science"}}, cats)
}
