package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Shared taxonomy: validation failures carry a user-facing message, duplicate
// unique keys conflict, and rows that are missing or owned by someone else are
// indistinguishable from not-found.
var (
	ErrNotFound   = errors.New("record not found")
	ErrConflict   = errors.New("record already exists")
	ErrReferenced = errors.New("record is referenced by existing transactions")
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}

// NewRowError tags a validation error with the import row it came from.
func NewRowError(row int, msg string) error {
	return &ValidationError{Msg: fmt.Sprintf("row %d: %s", row, msg)}
}

var (
	ErrInvalidCategory = NewValidationError("category does not exist or belongs to another user")
	ErrInvalidAccount  = NewValidationError("account does not exist or belongs to another user")
)

type ValidationErrors struct {
	Errors []error
}

func (ve *ValidationErrors) Error() string {
	errorMessages := make([]string, len(ve.Errors))
	for i, err := range ve.Errors {
		errorMessages[i] = err.Error()
	}
	return fmt.Sprintf("multiple validation errors: %s", strings.Join(errorMessages, "; "))
}

func (ve *ValidationErrors) Add(err error) {
	ve.Errors = append(ve.Errors, err)
}

func IsValidationErrors(err error) bool {
	var validationErrors *ValidationErrors
	return errors.As(err, &validationErrors)
}
