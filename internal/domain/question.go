package domain

import (
	"context"
)

// Category groups questions under a display label
type Category struct {
	ID   int64  `json:"id" yaml:"id"`
	Type string `json:"type" yaml:"type"`
}

// Question represents a trivia question
type Question struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int64  `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// QuestionDraft is a validated question that has not been assigned an id yet
type QuestionDraft struct {
	Question   string
	Answer     string
	Category   int64
	Difficulty int
}

// Store defines durable access to the question bank. Implementations must keep
// the primary-key order of questions in every listing and make each call atomic.
type Store interface {
	// ListCategories retrieves all categories
	ListCategories(ctx context.Context) ([]Category, error)

	// ListQuestions retrieves all questions in id order
	ListQuestions(ctx context.Context) ([]Question, error)

	// GetQuestion retrieves a question by its ID, ErrQuestionNotFound if absent
	GetQuestion(ctx context.Context, id int64) (*Question, error)

	// DeleteQuestion deletes a question, ErrQuestionNotFound if absent
	DeleteQuestion(ctx context.Context, id int64) error

	// InsertQuestion persists a draft and returns it with its assigned ID
	InsertQuestion(ctx context.Context, draft QuestionDraft) (*Question, error)

	// QuestionsByCategory retrieves the questions referencing a category
	QuestionsByCategory(ctx context.Context, categoryID int64) ([]Question, error)

	// QuestionsMatching retrieves the questions whose text contains term, ignoring case
	QuestionsMatching(ctx context.Context, term string) ([]Question, error)
}

// CategoryWriter is implemented by stores that can be seeded with categories.
type CategoryWriter interface {
	InsertCategory(ctx context.Context, category Category) (*Category, error)
}

// EventPublisher receives question bank change notifications
type EventPublisher interface {
	Publish(eventType string, payload any)
}

// Question bank events
const (
	EventQuestionCreated = "question_created"
	EventQuestionDeleted = "question_deleted"
)
