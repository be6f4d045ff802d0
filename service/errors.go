package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a note or action item does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation wraps every input the services reject.
	ErrValidation = errors.New("validation failed")
	// ErrAlreadyCompleted is returned when completing a completed action item.
	ErrAlreadyCompleted = errors.New("action item is already completed")
)

// MissingIDsError lists the ids a bulk operation could not find. It matches
// ErrNotFound with errors.Is.
type MissingIDsError struct {
	IDs []string
}

func (e *MissingIDsError) Error() string {
	return fmt.Sprintf("action items not found: [%s]", strings.Join(e.IDs, ", "))
}

func (e *MissingIDsError) Unwrap() error { return ErrNotFound }

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// notFound translates gorm's record-not-found into ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return err
}
