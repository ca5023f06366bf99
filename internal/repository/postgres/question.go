package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/fxola/trivia-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestionRepository implements the domain.Store interface
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{
		pool: pool,
	}
}

// ListCategories retrieves all categories
func (r *QuestionRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, type FROM categories ORDER BY id`)
	if err != nil {
		return nil, domain.StoreFailure("list categories", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Type); err != nil {
			return nil, domain.StoreFailure("scan category", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.StoreFailure("iterate categories", err)
	}

	return categories, nil
}

// InsertCategory creates or renames a category. A zero ID is assigned by the sequence.
func (r *QuestionRepository) InsertCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	if category.ID == 0 {
		err := r.pool.QueryRow(ctx, `
			INSERT INTO categories (type) VALUES ($1)
			RETURNING id
		`, category.Type).Scan(&category.ID)
		if err != nil {
			return nil, domain.StoreFailure("insert category", err)
		}
		return &category, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, domain.StoreFailure("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO categories (id, type) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET type = EXCLUDED.type
	`, category.ID, category.Type); err != nil {
		return nil, domain.StoreFailure("insert category", err)
	}

	// explicit ids do not advance the serial sequence
	if _, err := tx.Exec(ctx, `
		SELECT setval(pg_get_serial_sequence('categories', 'id'), (SELECT MAX(id) FROM categories))
	`); err != nil {
		return nil, domain.StoreFailure("advance category sequence", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.StoreFailure("commit transaction", err)
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
	var question domain.Question
	err := r.pool.QueryRow(ctx, `
		SELECT id, question, answer, category, difficulty
		FROM questions
		WHERE id = $1
	`, id).Scan(
		&question.ID,
		&question.Question,
		&question.Answer,
		&question.Category,
		&question.Difficulty,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, domain.StoreFailure("get question", err)
	}
	return &question, nil
}

// DeleteQuestion deletes a question
func (r *QuestionRepository) DeleteQuestion(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return domain.StoreFailure("delete question", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

// InsertQuestion creates a new question
func (r *QuestionRepository) InsertQuestion(ctx context.Context, draft domain.QuestionDraft) (*domain.Question, error) {
	question := domain.Question{
		Question:   draft.Question,
		Answer:     draft.Answer,
		Category:   draft.Category,
		Difficulty: draft.Difficulty,
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO questions (question, answer, category, difficulty)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		draft.Question,
		draft.Answer,
		draft.Category,
		draft.Difficulty,
	).Scan(&question.ID)
	if err != nil {
		return nil, domain.StoreFailure("insert question", err)
	}
	return &question, nil
}

// QuestionsByCategory retrieves the questions of a category
func (r *QuestionRepository) QuestionsByCategory(ctx context.Context, categoryID int64) ([]domain.Question, error) {
	return r.query(ctx, "questions by category", `
		SELECT id, question, answer, category, difficulty
		FROM questions
		WHERE category = $1
		ORDER BY id
	`, categoryID)
}

// QuestionsMatching retrieves the questions whose text contains term, ignoring case
func (r *QuestionRepository) QuestionsMatching(ctx context.Context, term string) ([]domain.Question, error) {
	return r.query(ctx, "questions matching", `
		SELECT id, question, answer, category, difficulty
		FROM questions
		WHERE question ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY id
	`, escapeLike(term))
}

func (r *QuestionRepository) query(ctx context.Context, op, query string, args ...any) ([]domain.Question, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.StoreFailure(op, err)
	}
	defer rows.Close()

	questions := make([]domain.Question, 0)
	for rows.Next() {
		var question domain.Question
		if err := rows.Scan(
			&question.ID,
			&question.Question,
			&question.Answer,
			&question.Category,
			&question.Difficulty,
		); err != nil {
			return nil, domain.StoreFailure(op, err)
		}
		questions = append(questions, question)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.StoreFailure(op, err)
	}

	return questions, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
