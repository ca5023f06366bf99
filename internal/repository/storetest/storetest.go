// Package storetest holds the contract every domain.Store adapter must satisfy.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fxola/trivia-api/internal/domain"
	"github.com/stretchr/testify/require"
)

// Store is a domain.Store that can also be seeded with categories
type Store interface {
	domain.Store
	domain.CategoryWriter
}

// Factory returns an empty store; cleanup is registered on t.
type Factory func(t *testing.T) Store

// Run executes the contract suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("EmptyStore", func(t *testing.T) { testEmptyStore(t, newStore(t)) })
	t.Run("InsertAssignsIDs", func(t *testing.T) { testInsertAssignsIDs(t, newStore(t)) })
	t.Run("GetQuestion", func(t *testing.T) { testGetQuestion(t, newStore(t)) })
	t.Run("DeleteQuestion", func(t *testing.T) { testDeleteQuestion(t, newStore(t)) })
	t.Run("QuestionsByCategory", func(t *testing.T) { testQuestionsByCategory(t, newStore(t)) })
	t.Run("QuestionsMatching", func(t *testing.T) { testQuestionsMatching(t, newStore(t)) })
	t.Run("Categories", func(t *testing.T) { testCategories(t, newStore(t)) })
	t.Run("ConcurrentDeletes", func(t *testing.T) { testConcurrentDeletes(t, newStore(t)) })
}

// Seed inserts drafts in order and returns the stored questions.
func Seed(t *testing.T, s domain.Store, drafts ...domain.QuestionDraft) []domain.Question {
	t.Helper()
	out := make([]domain.Question, 0, len(drafts))
	for _, d := range drafts {
		q, err := s.InsertQuestion(context.Background(), d)
		require.NoError(t, err)
		out = append(out, *q)
	}
	return out
}

func draft(text string, category int64) domain.QuestionDraft {
	return domain.QuestionDraft{Question: text, Answer: "answer to " + text, Category: category, Difficulty: 1}
}

func ids(questions []domain.Question) []int64 {
	out := make([]int64, 0, len(questions))
	for _, q := range questions {
		out = append(out, q.ID)
	}
	return out
}

func testEmptyStore(t *testing.T, s Store) {
	ctx := context.Background()

	cats, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Empty(t, cats)

	qs, err := s.ListQuestions(ctx)
	require.NoError(t, err)
	require.Empty(t, qs)

	_, err = s.GetQuestion(ctx, 1)
	require.ErrorIs(t, err, domain.ErrNotFound)

	err = s.DeleteQuestion(ctx, 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func testInsertAssignsIDs(t *testing.T, s Store) {
	stored := Seed(t, s,
		domain.QuestionDraft{Question: "Who invented Peanut Butter?", Answer: "George Washington Carver", Category: 4, Difficulty: 2},
		domain.QuestionDraft{Question: "What is the capital of France?", Answer: "Paris", Category: 3, Difficulty: 1},
	)

	require.Positive(t, stored[0].ID)
	require.Greater(t, stored[1].ID, stored[0].ID)
	require.Equal(t, "Who invented Peanut Butter?", stored[0].Question)
	require.Equal(t, "George Washington Carver", stored[0].Answer)
	require.Equal(t, int64(4), stored[0].Category)
	require.Equal(t, 2, stored[0].Difficulty)

	all, err := s.ListQuestions(context.Background())
	require.NoError(t, err)
	require.Equal(t, stored, all)
}

func testGetQuestion(t *testing.T, s Store) {
	stored := Seed(t, s, draft("one", 1), draft("two", 2))

	q, err := s.GetQuestion(context.Background(), stored[1].ID)
	require.NoError(t, err)
	require.Equal(t, stored[1], *q)

	_, err = s.GetQuestion(context.Background(), stored[1].ID+100)
	require.ErrorIs(t, err, domain.ErrQuestionNotFound)
}

func testDeleteQuestion(t *testing.T, s Store) {
	ctx := context.Background()
	stored := Seed(t, s, draft("one", 1), draft("two", 1), draft("three", 1))

	require.NoError(t, s.DeleteQuestion(ctx, stored[1].ID))

	all, err := s.ListQuestions(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{stored[0].ID, stored[2].ID}, ids(all))

	err = s.DeleteQuestion(ctx, stored[1].ID)
	require.ErrorIs(t, err, domain.ErrQuestionNotFound)

	// ids are never reused
	next := Seed(t, s, draft("four", 1))
	require.Greater(t, next[0].ID, stored[2].ID)
}

func testQuestionsByCategory(t *testing.T, s Store) {
	ctx := context.Background()
	stored := Seed(t, s, draft("a", 1), draft("b", 2), draft("c", 1), draft("d", 6000))

	got, err := s.QuestionsByCategory(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []int64{stored[0].ID, stored[2].ID}, ids(got))

	// no referential integrity: questions may point at unknown categories
	got, err = s.QuestionsByCategory(ctx, 6000)
	require.NoError(t, err)
	require.Equal(t, []int64{stored[3].ID}, ids(got))

	got, err = s.QuestionsByCategory(ctx, 42)
	require.NoError(t, err)
	require.Empty(t, got)
}

func testQuestionsMatching(t *testing.T, s Store) {
	ctx := context.Background()
	stored := Seed(t, s,
		draft("Whose autobiography is called 'I Know Why the Caged Bird Sings'?", 4),
		draft("What movie earned Tom Hanks his third straight Oscar nomination?", 5),
		draft("What was the TITLE of the 1990 fantasy film?", 5),
		draft("100% pure?", 1),
		draft("under_score", 1),
		draft("Which ÉCOLE trained Monet?", 2),
	)

	got, err := s.QuestionsMatching(ctx, "title")
	require.NoError(t, err)
	require.Equal(t, []int64{stored[2].ID}, ids(got))

	got, err = s.QuestionsMatching(ctx, "WHAT")
	require.NoError(t, err)
	require.Equal(t, []int64{stored[1].ID, stored[2].ID}, ids(got))

	// wildcard characters are matched literally
	got, err = s.QuestionsMatching(ctx, "%")
	require.NoError(t, err)
	require.Equal(t, []int64{stored[3].ID}, ids(got))

	got, err = s.QuestionsMatching(ctx, "_")
	require.NoError(t, err)
	require.Equal(t, []int64{stored[4].ID}, ids(got))

	// case folding is not limited to ASCII
	got, err = s.QuestionsMatching(ctx, "école")
	require.NoError(t, err)
	require.Equal(t, []int64{stored[5].ID}, ids(got))

	got, err = s.QuestionsMatching(ctx, "no such words")
	require.NoError(t, err)
	require.Empty(t, got)
}

func testCategories(t *testing.T, s Store) {
	ctx := context.Background()
	for _, c := range []domain.Category{{ID: 2, Type: "Art"}, {ID: 1, Type: "Science"}, {ID: 3, Type: "Geography"}} {
		_, err := s.InsertCategory(ctx, c)
		require.NoError(t, err)
	}

	cats, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
		{ID: 3, Type: "Geography"},
	}, cats)

	created, err := s.InsertCategory(ctx, domain.Category{Type: "History"})
	require.NoError(t, err)
	require.Greater(t, created.ID, int64(3))
}

func testConcurrentDeletes(t *testing.T, s Store) {
	ctx := context.Background()
	stored := Seed(t, s, draft("contended", 1), draft("bystander", 1))

	const workers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		deleted  int
		notFound int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.DeleteQuestion(ctx, stored[0].ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				deleted++
			case errors.Is(err, domain.ErrQuestionNotFound):
				notFound++
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, deleted)
	require.Equal(t, workers-1, notFound)

	all, err := s.ListQuestions(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{stored[1].ID}, ids(all))
}
