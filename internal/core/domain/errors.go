package domain

import (
	"errors"
	"sort"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidation indicates an upload failed field validation.
	// Errors wrapping it usually carry FieldErrors.
	ErrValidation = errors.New("validation failed")

	// ErrContentMissing indicates a file row exists but its raw bytes do not.
	ErrContentMissing = errors.New("file content missing")

	// ErrUnsupportedType indicates an unknown document format.
	ErrUnsupportedType = errors.New("unsupported type")

	// Extraction Errors.

	// ErrDecode indicates plain text content is not valid UTF-8.
	ErrDecode = errors.New("content is not valid UTF-8")

	// ErrFormat indicates a word-processor container is malformed.
	ErrFormat = errors.New("malformed document container")
)

// FieldErrors maps a field name to its validation messages.
// It wraps ErrValidation so callers can match it with errors.Is.
type FieldErrors map[string][]string

// Add appends a message for field.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// Error implements error.
func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(f[field], "; "))
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, ", ")
}

// Unwrap returns ErrValidation.
func (f FieldErrors) Unwrap() error {
	return ErrValidation
}
