package service

import (
	"context"
	"math/rand"
	"strings"

	"github.com/fxola/trivia-api/internal/domain"
	"github.com/fxola/trivia-api/internal/validation"
)

// RandomSource picks an index in [0, n). *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// globalSource uses the package-level math/rand functions, which are safe for concurrent use.
type globalSource struct{}

func (globalSource) Intn(n int) int { return rand.Intn(n) }

// AnswerResult tells a player whether their answer was accepted
type AnswerResult struct {
	Correct bool   `json:"correct"`
	Answer  string `json:"answer"`
}

// QuizService draws quiz questions. It keeps no session state: the caller
// carries the ids already played and passes them on every draw.
type QuizService struct {
	store domain.Store
	rnd   RandomSource
}

// NewQuizService creates a new quiz service. A nil rnd uses the global math/rand source.
func NewQuizService(store domain.Store, rnd RandomSource) *QuizService {
	if rnd == nil {
		rnd = globalSource{}
	}
	return &QuizService{
		store: store,
		rnd:   rnd,
	}
}

// DrawQuestion returns a uniformly random question of the category (any category
// when categoryID is nil) whose id is not in excludeIDs. It returns nil, nil once
// every candidate has been excluded.
func (s *QuizService) DrawQuestion(ctx context.Context, categoryID *int64, excludeIDs []int64) (*domain.Question, error) {
	var (
		candidates []domain.Question
		err        error
	)
	if categoryID == nil {
		candidates, err = s.store.ListQuestions(ctx)
	} else {
		candidates, err = s.store.QuestionsByCategory(ctx, *categoryID)
	}
	if err != nil {
		return nil, storeError("draw question", err)
	}

	excluded := make(map[int64]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	eligible := make([]domain.Question, 0, len(candidates))
	for _, q := range candidates {
		if _, ok := excluded[q.ID]; !ok {
			eligible = append(eligible, q)
		}
	}
	if len(eligible) == 0 {
		return nil, nil
	}

	question := eligible[s.rnd.Intn(len(eligible))]
	return &question, nil
}

// CheckAnswer compares a player's answer with the stored one, tolerating case,
// punctuation, leading articles and small typos.
func (s *QuizService) CheckAnswer(ctx context.Context, questionID int64, answer string) (*AnswerResult, error) {
	if strings.TrimSpace(answer) == "" {
		return nil, invalidArgument("empty answer")
	}

	question, err := s.store.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, storeError("check answer", err)
	}

	return &AnswerResult{
		Correct: validation.IsSimilarAnswer(question.Answer, answer),
		Answer:  question.Answer,
	}, nil
}
