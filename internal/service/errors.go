package service

import (
	"fmt"

	"github.com/fxola/trivia-api/internal/domain"
)

// storeError makes sure a failure coming out of a Store carries an error kind.
func storeError(op string, err error) error {
	if domain.IsKnown(err) {
		return err
	}
	return domain.StoreFailure(op, err)
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), domain.ErrInvalidArgument)
}
