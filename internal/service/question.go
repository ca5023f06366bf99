package service

import (
	"context"
	"strings"

	"github.com/fxola/trivia-api/internal/domain"
	"github.com/fxola/trivia-api/internal/pagination"
	"github.com/fxola/trivia-api/internal/validation"
)

// SearchResult is one page of questions matching a search term
type SearchResult struct {
	Questions []domain.Question `json:"questions"`
	Total     int               `json:"total_questions"`
	// CurrentCategory is the category of the first match, nil without matches.
	// It describes the result, it does not filter it.
	CurrentCategory *int64 `json:"current_category"`
}

// QuestionService lists, searches and mutates the question bank.
// It keeps no state between calls and is safe for concurrent use.
type QuestionService struct {
	store     domain.Store
	publisher domain.EventPublisher
}

// NewQuestionService creates a new question service. publisher may be nil.
func NewQuestionService(store domain.Store, publisher domain.EventPublisher) *QuestionService {
	return &QuestionService{
		store:     store,
		publisher: publisher,
	}
}

// ListCategories returns every category
func (s *QuestionService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, storeError("list categories", err)
	}
	return categories, nil
}

// ListQuestions returns one page of all questions
func (s *QuestionService) ListQuestions(ctx context.Context, page, pageSize int) (pagination.Page[domain.Question], error) {
	if err := pagination.Validate(page, pageSize); err != nil {
		return pagination.Page[domain.Question]{}, err
	}

	questions, err := s.store.ListQuestions(ctx)
	if err != nil {
		return pagination.Page[domain.Question]{}, storeError("list questions", err)
	}
	return pagination.New(questions, page, pageSize)
}

// QuestionsByCategory returns one page of the questions of a category.
// An unknown category yields an empty page.
func (s *QuestionService) QuestionsByCategory(ctx context.Context, categoryID int64, page, pageSize int) (pagination.Page[domain.Question], error) {
	if err := pagination.Validate(page, pageSize); err != nil {
		return pagination.Page[domain.Question]{}, err
	}

	questions, err := s.store.QuestionsByCategory(ctx, categoryID)
	if err != nil {
		return pagination.Page[domain.Question]{}, storeError("questions by category", err)
	}
	return pagination.New(questions, page, pageSize)
}

// GetQuestion returns a question by its ID
func (s *QuestionService) GetQuestion(ctx context.Context, id int64) (*domain.Question, error) {
	question, err := s.store.GetQuestion(ctx, id)
	if err != nil {
		return nil, storeError("get question", err)
	}
	return question, nil
}

// Search returns one page of the questions containing term, ignoring case
func (s *QuestionService) Search(ctx context.Context, term string, page, pageSize int) (*SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, invalidArgument("empty search term")
	}
	if err := pagination.Validate(page, pageSize); err != nil {
		return nil, err
	}

	matches, err := s.store.QuestionsMatching(ctx, term)
	if err != nil {
		return nil, storeError("search questions", err)
	}

	window, total, err := pagination.Paginate(matches, page, pageSize)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{Questions: window, Total: total}
	if len(matches) > 0 {
		category := matches[0].Category
		result.CurrentCategory = &category
	}
	return result, nil
}

// CreateQuestion validates the submitted fields and stores the question
func (s *QuestionService) CreateQuestion(ctx context.Context, in validation.NewQuestion) (*domain.Question, error) {
	draft, err := validation.ValidateNewQuestion(in)
	if err != nil {
		return nil, err
	}

	question, err := s.store.InsertQuestion(ctx, draft)
	if err != nil {
		return nil, storeError("insert question", err)
	}

	s.publish(domain.EventQuestionCreated, question)
	return question, nil
}

// DeleteQuestion removes a question by its ID
func (s *QuestionService) DeleteQuestion(ctx context.Context, id int64) error {
	if err := s.store.DeleteQuestion(ctx, id); err != nil {
		return storeError("delete question", err)
	}

	s.publish(domain.EventQuestionDeleted, map[string]int64{"id": id})
	return nil
}

func (s *QuestionService) publish(eventType string, payload any) {
	if s.publisher != nil {
		s.publisher.Publish(eventType, payload)
	}
}
