// Package sqlite stores the question bank in an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/fxola/trivia-api/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// QuestionRepository implements domain.Store on a *sql.DB opened with the sqlite3 driver
type QuestionRepository struct {
	db *sql.DB
}

// NewQuestionRepository creates the tables when missing and returns the repository
func NewQuestionRepository(ctx context.Context, db *sql.DB) (*QuestionRepository, error) {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return &QuestionRepository{db: db}, nil
}

// ListCategories retrieves all categories
func (r *QuestionRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, type FROM categories ORDER BY id`)
	if err != nil {
		return nil, domain.StoreFailure("list categories", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Type); err != nil {
			return nil, domain.StoreFailure("scan category", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreFailure("list categories", err)
	}
	return categories, nil
}

// InsertCategory creates or renames a category. A zero ID is assigned by the database.
func (r *QuestionRepository) InsertCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	var id any
	if category.ID != 0 {
		id = category.ID
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, type) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET type = excluded.type
	`, id, category.Type)
	if err != nil {
		return nil, domain.StoreFailure("insert category", err)
	}
	if category.ID == 0 {
		if category.ID, err = res.LastInsertId(); err != nil {
			return nil, domain.StoreFailure("insert category", err)
		}
	}
	return &category, nil
}

// ListQuestions retrieves all questions in id order
func (r *QuestionRepository) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	return r.query(ctx, "list questions", `
		SELECT id, question, answer, category, difficulty
		FROM questions
		ORDER BY id
	`)
}

// GetQuestion retrieves a question by its ID
func (r *QuestionRepository) GetQuestion(ctx context.Context, id int64) (*domain.Question, error) {
	var q domain.Question
	err := r.db.QueryRowContext(ctx, `
		SELECT id, question, answer, category, difficulty
		FROM questions
		WHERE id = ?
	`, id).Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, domain.StoreFailure("get question", err)
	}
	return &q, nil
}

// DeleteQuestion deletes a question
func (r *QuestionRepository) DeleteQuestion(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return domain.StoreFailure("delete question", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.StoreFailure("delete question", err)
	}
	if n == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

// InsertQuestion creates a new question
func (r *QuestionRepository) InsertQuestion(ctx context.Context, draft domain.QuestionDraft) (*domain.Question, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO questions (question, answer, category, difficulty)
		VALUES (?, ?, ?, ?)
	`, draft.Question, draft.Answer, draft.Category, draft.Difficulty)
	if err != nil {
		return nil, domain.StoreFailure("insert question", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, domain.StoreFailure("insert question", err)
	}

	return &domain.Question{
		ID:         id,
		Question:   draft.Question,
		Answer:     draft.Answer,
		Category:   draft.Category,
		Difficulty: draft.Difficulty,
	}, nil
}

// QuestionsByCategory retrieves the questions of a category
func (r *QuestionRepository) QuestionsByCategory(ctx context.Context, categoryID int64) ([]domain.Question, error) {
	return r.query(ctx, "questions by category", `
		SELECT id, question, answer, category, difficulty
		FROM questions
		WHERE category = ?
		ORDER BY id
	`, categoryID)
}

// QuestionsMatching retrieves the questions whose text contains term, ignoring case
func (r *QuestionRepository) QuestionsMatching(ctx context.Context, term string) ([]domain.Question, error) {
	// instr treats the term literally, unlike LIKE. lower() folds Unicode
	// once database.ConnectSQLite has loaded the unicode extension.
	return r.query(ctx, "questions matching", `
		SELECT id, question, answer, category, difficulty
		FROM questions
		WHERE instr(lower(question), lower(?)) > 0
		ORDER BY id
	`, term)
}

func (r *QuestionRepository) query(ctx context.Context, op, query string, args ...any) ([]domain.Question, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.StoreFailure(op, err)
	}
	defer rows.Close()

	questions := make([]domain.Question, 0)
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty); err != nil {
			return nil, domain.StoreFailure(op, err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreFailure(op, err)
	}
	return questions, nil
}
