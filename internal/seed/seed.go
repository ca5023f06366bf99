// Package seed loads categories and questions from YAML into a store.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fxola/trivia-api/internal/domain"
	"github.com/fxola/trivia-api/internal/validation"
	"gopkg.in/yaml.v3"
)

// Default is the question bank shipped with the service
//
//go:embed trivia.yaml
var Default []byte

// ErrCategoriesUnsupported is returned when a seed file carries categories
// but the store cannot write them.
var ErrCategoriesUnsupported = errors.New("store cannot seed categories")

// File is the layout of a seed file
type File struct {
	Categories []domain.Category `yaml:"categories"`
	Questions  []Question        `yaml:"questions"`
}

// Question is one question entry of a seed file
type Question struct {
	Question   string `yaml:"question"`
	Answer     string `yaml:"answer"`
	Category   int64  `yaml:"category"`
	Difficulty int    `yaml:"difficulty"`
}

// Result counts what a seed run wrote
type Result struct {
	Categories int
	Questions  int
}

// Load reads and parses a seed file
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes seed YAML. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &f, nil
}

// Apply writes the categories, then the questions, to store. Every entry is
// validated before the first write so a bad entry leaves the store untouched.
func Apply(ctx context.Context, store domain.Store, f *File) (Result, error) {
	var writer domain.CategoryWriter
	if len(f.Categories) > 0 {
		w, ok := store.(domain.CategoryWriter)
		if !ok {
			return Result{}, ErrCategoriesUnsupported
		}
		writer = w
	}
	for i, c := range f.Categories {
		if strings.TrimSpace(c.Type) == "" {
			return Result{}, fmt.Errorf("categories[%d]: empty type: %w", i, domain.ErrUnprocessable)
		}
	}

	drafts := make([]domain.QuestionDraft, 0, len(f.Questions))
	for i, q := range f.Questions {
		draft, err := validation.ValidateNewQuestion(validation.NewQuestion{
			Question:   q.Question,
			Answer:     q.Answer,
			Category:   q.Category,
			Difficulty: q.Difficulty,
		})
		if err != nil {
			return Result{}, fmt.Errorf("questions[%d]: %w", i, err)
		}
		drafts = append(drafts, draft)
	}

	var res Result
	for i, c := range f.Categories {
		if _, err := writer.InsertCategory(ctx, c); err != nil {
			return res, fmt.Errorf("categories[%d]: %w", i, err)
		}
		res.Categories++
	}

	for i, d := range drafts {
		if _, err := store.InsertQuestion(ctx, d); err != nil {
			return res, fmt.Errorf("questions[%d]: %w", i, err)
		}
		res.Questions++
	}
	return res, nil
}
