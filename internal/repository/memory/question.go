// Package memory provides an in-process question bank used for development and tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/fxola/trivia-api/internal/domain"
)

// QuestionRepository implements domain.Store on top of ordered slices guarded by a RWMutex.
// Returned slices are copies; callers never observe later writes.
type QuestionRepository struct {
	mu             sync.RWMutex
	categories     []domain.Category
	questions      []domain.Question
	nextQuestionID int64
	nextCategoryID int64
}

// NewQuestionRepository creates an empty store
func NewQuestionRepository() *QuestionRepository {
	return &QuestionRepository{nextQuestionID: 1, nextCategoryID: 1}
}

// ListCategories retrieves all categories in id order
func (s *QuestionRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.StoreFailure("list categories", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

// InsertCategory adds a category. A zero ID is assigned by the store.
func (s *QuestionRepository) InsertCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.StoreFailure("insert category", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if category.ID == 0 {
		category.ID = s.nextCategoryID
	}
	for i, c := range s.categories {
		if c.ID == category.ID {
			s.categories[i] = category
			return &category, nil
		}
	}
	if category.ID >= s.nextCategoryID {
		s.nextCategoryID = category.ID + 1
	}

	idx := len(s.categories)
	for idx > 0 && s.categories[idx-1].ID > category.ID {
		idx--
	}
	s.categories = append(s.categories, domain.Category{})
	copy(s.categories[idx+1:], s.categories[idx:])
	s.categories[idx] = category
	return &category, nil
}

// ListQuestions retrieves all questions in id order
func (s *QuestionRepository) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	return s.filter(ctx, "list questions", func(domain.Question) bool { return true })
}

// GetQuestion retrieves a question by its ID
func (s *QuestionRepository) GetQuestion(ctx context.Context, id int64) (*domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.StoreFailure("get question", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i, ok := s.indexOf(id); ok {
		q := s.questions[i]
		return &q, nil
	}
	return nil, domain.ErrQuestionNotFound
}

// DeleteQuestion deletes a question
func (s *QuestionRepository) DeleteQuestion(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return domain.StoreFailure("delete question", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexOf(id)
	if !ok {
		return domain.ErrQuestionNotFound
	}
	s.questions = append(s.questions[:i], s.questions[i+1:]...)
	return nil
}

// InsertQuestion stores a draft under the next free ID
func (s *QuestionRepository) InsertQuestion(ctx context.Context, draft domain.QuestionDraft) (*domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.StoreFailure("insert question", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	q := domain.Question{
		ID:         s.nextQuestionID,
		Question:   draft.Question,
		Answer:     draft.Answer,
		Category:   draft.Category,
		Difficulty: draft.Difficulty,
	}
	s.nextQuestionID++
	s.questions = append(s.questions, q)
	return &q, nil
}

// QuestionsByCategory retrieves the questions of a category
func (s *QuestionRepository) QuestionsByCategory(ctx context.Context, categoryID int64) ([]domain.Question, error) {
	return s.filter(ctx, "questions by category", func(q domain.Question) bool {
		return q.Category == categoryID
	})
}

// QuestionsMatching retrieves the questions whose text contains term, ignoring case
func (s *QuestionRepository) QuestionsMatching(ctx context.Context, term string) ([]domain.Question, error) {
	needle := strings.ToLower(term)
	return s.filter(ctx, "questions matching", func(q domain.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), needle)
	})
}

func (s *QuestionRepository) filter(ctx context.Context, op string, keep func(domain.Question) bool) ([]domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.StoreFailure(op, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Question, 0, len(s.questions))
	for _, q := range s.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out, nil
}

// indexOf relies on questions being appended with increasing IDs.
func (s *QuestionRepository) indexOf(id int64) (int, bool) {
	return slices.BinarySearchFunc(s.questions, id, func(q domain.Question, id int64) int {
		return cmp.Compare(q.ID, id)
	})
}
