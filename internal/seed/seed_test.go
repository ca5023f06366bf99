package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fxola/trivia-api/internal/domain"
	"github.com/fxola/trivia-api/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSeed(t *testing.T) {
	f, err := Parse(Default)
	require.NoError(t, err)
	require.Len(t, f.Categories, 6)
	require.Len(t, f.Questions, 19)

	store := memory.NewQuestionRepository()
	res, err := Apply(context.Background(), store, f)
	require.NoError(t, err)
	assert.Equal(t, Result{Categories: 6, Questions: 19}, res)

	ctx := context.Background()
	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Category{ID: 1, Type: "Science"}, categories[0])

	matches, err := store.QuestionsMatching(ctx, "title")
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	matches, err = store.QuestionsMatching(ctx, "invented")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "George Washington Carver", matches[0].Answer)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
questions:
  - question: "  Who discovered penicillin?  "
    answer: Alexander Fleming
    category: 1
    difficulty: 3
`), 0o600))

	f, err := Load(path)
	require.NoError(t, err)

	store := memory.NewQuestionRepository()
	res, err := Apply(context.Background(), store, f)
	require.NoError(t, err)
	assert.Equal(t, Result{Questions: 1}, res)

	q, err := store.GetQuestion(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Who discovered penicillin?", q.Question)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("questions:\n  - question: Q?\n    answr: typo\n"))
	require.Error(t, err)
}

func TestApply_InvalidQuestionWritesNothing(t *testing.T) {
	f := &File{
		Categories: []domain.Category{{ID: 1, Type: "Science"}},
		Questions: []Question{
			{Question: "Q1?", Answer: "A", Category: 1, Difficulty: 1},
			{Question: "Q2?", Answer: "", Category: 1, Difficulty: 1},
		},
	}

	store := memory.NewQuestionRepository()
	_, err := Apply(context.Background(), store, f)
	require.ErrorIs(t, err, domain.ErrUnprocessable)
	assert.Contains(t, err.Error(), "questions[1]")

	questions, err := store.ListQuestions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, questions)
	categories, err := store.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestApply_EmptyCategoryType(t *testing.T) {
	f := &File{Categories: []domain.Category{{ID: 1}}}

	_, err := Apply(context.Background(), memory.NewQuestionRepository(), f)
	require.ErrorIs(t, err, domain.ErrUnprocessable)
}

func TestApply_InvalidCategoryWritesNothing(t *testing.T) {
	f := &File{
		Categories: []domain.Category{
			{ID: 1, Type: "Science"},
			{ID: 2, Type: "Art"},
			{ID: 3, Type: "  "},
		},
		Questions: []Question{{Question: "Q1?", Answer: "A", Category: 1, Difficulty: 1}},
	}

	store := memory.NewQuestionRepository()
	res, err := Apply(context.Background(), store, f)
	require.ErrorIs(t, err, domain.ErrUnprocessable)
	assert.Contains(t, err.Error(), "categories[2]")
	assert.Equal(t, Result{}, res)

	categories, err := store.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, categories)
	questions, err := store.ListQuestions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, questions)
}

// questionsOnly hides the CategoryWriter of the wrapped store
type questionsOnly struct {
	domain.Store
}

func TestApply_CategoriesUnsupported(t *testing.T) {
	f := &File{Categories: []domain.Category{{ID: 1, Type: "Science"}}}

	_, err := Apply(context.Background(), questionsOnly{memory.NewQuestionRepository()}, f)
	require.ErrorIs(t, err, ErrCategoriesUnsupported)
}
