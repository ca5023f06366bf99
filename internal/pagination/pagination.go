// Package pagination windows ordered result sets into pages.
package pagination

import (
	"fmt"

	"github.com/fxola/trivia-api/internal/domain"
)

const (
	// DefaultPage is used when a caller does not ask for a page
	DefaultPage = 1
	// DefaultPageSize is used when a caller does not ask for a page size
	DefaultPageSize = 10
)

// Page is one window of an ordered result set
type Page[T any] struct {
	Items    []T
	Total    int
	Page     int
	PageSize int
}

// LastPage returns the number of the last non-empty page, 0 for an empty set.
func (p Page[T]) LastPage() int {
	if p.PageSize < 1 {
		return 0
	}
	return pageCount(p.Total, p.PageSize)
}

// Validate checks that page and pageSize are positive.
func Validate(page, pageSize int) error {
	if page < 1 {
		return fmt.Errorf("page %d: %w", page, domain.ErrInvalidArgument)
	}
	if pageSize < 1 {
		return fmt.Errorf("page size %d: %w", pageSize, domain.ErrInvalidArgument)
	}
	return nil
}

func pageCount(total, pageSize int) int {
	n := total / pageSize
	if total%pageSize != 0 {
		n++
	}
	return n
}

// New paginates items into a Page.
func New[T any](items []T, page, pageSize int) (Page[T], error) {
	window, total, err := Paginate(items, page, pageSize)
	if err != nil {
		return Page[T]{}, err
	}
	return Page[T]{Items: window, Total: total, Page: page, PageSize: pageSize}, nil
}

// Paginate returns the items of the given 1-based page and the untruncated total.
// A page past the end yields an empty window, not an error.
func Paginate[T any](items []T, page, pageSize int) ([]T, int, error) {
	if err := Validate(page, pageSize); err != nil {
		return nil, 0, err
	}

	total := len(items)
	// compare page counts before multiplying so huge inputs cannot overflow
	if page-1 >= pageCount(total, pageSize) {
		return []T{}, total, nil
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	window := make([]T, end-start)
	copy(window, items[start:end])
	return window, total, nil
}
