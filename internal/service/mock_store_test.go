package service

import (
	"context"

	"github.com/fxola/trivia-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]domain.Category)
	return categories, args.Error(1)
}

func (m *mockStore) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	args := m.Called(ctx)
	questions, _ := args.Get(0).([]domain.Question)
	return questions, args.Error(1)
}

func (m *mockStore) GetQuestion(ctx context.Context, id int64) (*domain.Question, error) {
	args := m.Called(ctx, id)
	question, _ := args.Get(0).(*domain.Question)
	return question, args.Error(1)
}

func (m *mockStore) DeleteQuestion(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockStore) InsertQuestion(ctx context.Context, draft domain.QuestionDraft) (*domain.Question, error) {
	args := m.Called(ctx, draft)
	question, _ := args.Get(0).(*domain.Question)
	return question, args.Error(1)
}

func (m *mockStore) QuestionsByCategory(ctx context.Context, categoryID int64) ([]domain.Question, error) {
	args := m.Called(ctx, categoryID)
	questions, _ := args.Get(0).([]domain.Question)
	return questions, args.Error(1)
}

func (m *mockStore) QuestionsMatching(ctx context.Context, term string) ([]domain.Question, error) {
	args := m.Called(ctx, term)
	questions, _ := args.Get(0).([]domain.Question)
	return questions, args.Error(1)
}

type recordingPublisher struct {
	events   []string
	payloads []any
}

func (p *recordingPublisher) Publish(eventType string, payload any) {
	p.events = append(p.events, eventType)
	p.payloads = append(p.payloads, payload)
}
