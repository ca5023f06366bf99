package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fxola/trivia-api/internal/domain"
	"github.com/fxola/trivia-api/internal/repository/memory"
	"github.com/fxola/trivia-api/internal/validation"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newSeededStore holds a question per category, enough for search and deletion cases.
func newSeededStore(t *testing.T) *memory.QuestionRepository {
	t.Helper()
	ctx := context.Background()
	store := memory.NewQuestionRepository()

	for _, c := range []domain.Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Geography"}} {
		_, err := store.InsertCategory(ctx, c)
		require.NoError(t, err)
	}
	for _, d := range []domain.QuestionDraft{
		{Question: "Who invented Peanut Butter?", Answer: "George Washington Carver", Category: 1, Difficulty: 2},
		{Question: "What is the capital of France?", Answer: "Paris", Category: 2, Difficulty: 1},
	} {
		_, err := store.InsertQuestion(ctx, d)
		require.NoError(t, err)
	}
	return store
}

func newBulkStore(t *testing.T, n int) *memory.QuestionRepository {
	t.Helper()
	store := memory.NewQuestionRepository()
	for i := 1; i <= n; i++ {
		_, err := store.InsertQuestion(context.Background(), domain.QuestionDraft{
			Question:   fmt.Sprintf("Question number %d?", i),
			Answer:     "yes",
			Category:   int64(i%3 + 1),
			Difficulty: 1,
		})
		require.NoError(t, err)
	}
	return store
}

func TestQuestionService_ListCategories(t *testing.T) {
	svc := NewQuestionService(newSeededStore(t), nil)

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Equal(t, []domain.Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Geography"}}, categories)
}

func TestQuestionService_ListQuestions_Paginates(t *testing.T) {
	svc := NewQuestionService(newBulkStore(t, 23), nil)
	ctx := context.Background()

	page, err := svc.ListQuestions(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 10)
	require.Equal(t, 23, page.Total)
	require.Equal(t, int64(1), page.Items[0].ID)

	page, err = svc.ListQuestions(ctx, 3, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	require.Equal(t, int64(21), page.Items[0].ID)

	page, err = svc.ListQuestions(ctx, 30939303, 10)
	require.NoError(t, err)
	require.Empty(t, page.Items)
	require.Equal(t, 23, page.Total)
}

func TestQuestionService_ListQuestions_InvalidPage(t *testing.T) {
	store := new(mockStore)
	svc := NewQuestionService(store, nil)

	_, err := svc.ListQuestions(context.Background(), 0, 10)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.ListQuestions(context.Background(), 1, -1)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	store.AssertNotCalled(t, "ListQuestions", mock.Anything)
}

func TestQuestionService_ListQuestions_StoreFailure(t *testing.T) {
	store := new(mockStore)
	svc := NewQuestionService(store, nil)

	dbErr := errors.New("connection refused")
	store.On("ListQuestions", mock.Anything).Return(nil, dbErr).Once()

	_, err := svc.ListQuestions(context.Background(), 1, 10)
	require.ErrorIs(t, err, domain.ErrStoreFailure)
	require.ErrorIs(t, err, dbErr)

	store.AssertExpectations(t)
}

func TestQuestionService_QuestionsByCategory(t *testing.T) {
	svc := NewQuestionService(newBulkStore(t, 9), nil)
	ctx := context.Background()

	page, err := svc.QuestionsByCategory(ctx, 2, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 3, page.Total)
	for _, q := range page.Items {
		require.Equal(t, int64(2), q.Category)
	}

	page, err = svc.QuestionsByCategory(ctx, 6000, 1, 10)
	require.NoError(t, err)
	require.Empty(t, page.Items)
	require.Zero(t, page.Total)
}

func TestQuestionService_GetQuestion(t *testing.T) {
	svc := NewQuestionService(newSeededStore(t), nil)

	q, err := svc.GetQuestion(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, "Paris", q.Answer)

	_, err = svc.GetQuestion(context.Background(), 6000)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuestionService_Search(t *testing.T) {
	svc := NewQuestionService(newSeededStore(t), nil)

	result, err := svc.Search(context.Background(), "invented", 1, 10)
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	require.Len(t, result.Questions, 1)
	require.Equal(t, int64(1), result.Questions[0].ID)
	require.NotNil(t, result.CurrentCategory)
	require.Equal(t, int64(1), *result.CurrentCategory)
}

func TestQuestionService_Search_SingleTitleMatch(t *testing.T) {
	store := newSeededStore(t)
	_, err := store.InsertQuestion(context.Background(), domain.QuestionDraft{
		Question: "What was the title of the 1990 fantasy film?", Answer: "Edward Scissorhands", Category: 5, Difficulty: 3,
	})
	require.NoError(t, err)
	svc := NewQuestionService(store, nil)

	result, err := svc.Search(context.Background(), "  TITLE ", 1, 10)
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	require.Len(t, result.Questions, 1)
	require.Equal(t, int64(5), *result.CurrentCategory)
}

func TestQuestionService_Search_CategoryComesFromFirstUnpaginatedMatch(t *testing.T) {
	svc := NewQuestionService(newBulkStore(t, 12), nil)

	result, err := svc.Search(context.Background(), "number", 2, 5)
	require.NoError(t, err)
	require.Equal(t, 12, result.Total)
	require.Len(t, result.Questions, 5)
	require.Equal(t, int64(6), result.Questions[0].ID)
	// question 1 sits in category 1%3+1
	require.Equal(t, int64(2), *result.CurrentCategory)
}

func TestQuestionService_Search_NoMatches(t *testing.T) {
	svc := NewQuestionService(newSeededStore(t), nil)

	result, err := svc.Search(context.Background(), "zebra", 1, 10)
	require.NoError(t, err)
	require.Zero(t, result.Total)
	require.Empty(t, result.Questions)
	require.Nil(t, result.CurrentCategory)
}

func TestQuestionService_Search_EmptyTerm(t *testing.T) {
	store := new(mockStore)
	svc := NewQuestionService(store, nil)

	for _, term := range []string{"", "   ", "\n\t"} {
		_, err := svc.Search(context.Background(), term, 1, 10)
		require.ErrorIs(t, err, domain.ErrInvalidArgument)
	}

	store.AssertNotCalled(t, "QuestionsMatching", mock.Anything, mock.Anything)
}

func TestQuestionService_CreateQuestion(t *testing.T) {
	store := memory.NewQuestionRepository()
	pub := &recordingPublisher{}
	svc := NewQuestionService(store, pub)

	q, err := svc.CreateQuestion(context.Background(), validation.NewQuestion{
		Question:   " I am stale, what is going to be my fate? ",
		Answer:     "eternal deletion",
		Category:   5,
		Difficulty: 1,
	})
	require.NoError(t, err)
	require.Positive(t, q.ID)
	require.Equal(t, "I am stale, what is going to be my fate?", q.Question)

	all, err := store.ListQuestions(context.Background())
	require.NoError(t, err)
	require.Equal(t, []domain.Question{*q}, all)

	require.Equal(t, []string{domain.EventQuestionCreated}, pub.events)
}

func TestQuestionService_CreateQuestion_Unprocessable(t *testing.T) {
	store := new(mockStore)
	pub := &recordingPublisher{}
	svc := NewQuestionService(store, pub)

	_, err := svc.CreateQuestion(context.Background(), validation.NewQuestion{
		Question:   "",
		Answer:     "",
		Category:   5,
		Difficulty: 1,
	})
	require.ErrorIs(t, err, domain.ErrUnprocessable)

	store.AssertNotCalled(t, "InsertQuestion", mock.Anything, mock.Anything)
	require.Empty(t, pub.events)
}

func TestQuestionService_CreateQuestion_StoreFailure(t *testing.T) {
	store := new(mockStore)
	svc := NewQuestionService(store, nil)

	in := validation.NewQuestion{Question: "Q?", Answer: "A", Category: 1, Difficulty: 1}
	store.On("InsertQuestion", mock.Anything, domain.QuestionDraft{Question: "Q?", Answer: "A", Category: 1, Difficulty: 1}).
		Return(nil, errors.New("disk full")).Once()

	_, err := svc.CreateQuestion(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrStoreFailure)

	store.AssertExpectations(t)
}

func TestQuestionService_DeleteQuestion(t *testing.T) {
	store := newSeededStore(t)
	pub := &recordingPublisher{}
	svc := NewQuestionService(store, pub)
	ctx := context.Background()

	require.NoError(t, svc.DeleteQuestion(ctx, 1))

	all, err := store.ListQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, int64(2), all[0].ID)

	err = svc.DeleteQuestion(ctx, 1)
	require.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.DeleteQuestion(ctx, 6000)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.Equal(t, []string{domain.EventQuestionDeleted}, pub.events)
	require.Equal(t, map[string]int64{"id": 1}, pub.payloads[0])
}
