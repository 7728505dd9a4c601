package application

import (
	"errors"
	"fmt"

	"codeplan/internal/domain"
)

// ErrCannotArchive is matched by every ArchiveError
var ErrCannotArchive = errors.New("cannot archive")

// ValidationError represents a command input failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ArchiveError represents an item that could not be moved into the archive
type ArchiveError struct {
	ID     string
	Reason string
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("cannot archive %s: %s", e.ID, e.Reason)
}

func (e *ArchiveError) Is(target error) bool {
	return target == ErrCannotArchive
}

// ErrorKind groups errors by how a front-end should report them
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindInvalid
)

// Classify maps an error to the kind a front-end reports.
// Missing items are NotFound; bad input and bad documents are Invalid.
func Classify(err error) ErrorKind {
	var (
		inputErr  *ValidationError
		schemaErr *domain.ValidationError
		parseErr  *domain.ParseError
		configErr *domain.ConfigError
	)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return KindNotFound
	case errors.As(err, &inputErr), errors.As(err, &schemaErr),
		errors.As(err, &parseErr), errors.As(err, &configErr):
		return KindInvalid
	default:
		return KindInternal
	}
}

// Outcome is the failure shape every front-end renders: a success flag and a
// message, never a panic or a raw stack
type Outcome struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Succeeded returns a successful outcome
func Succeeded() Outcome {
	return Outcome{Success: true}
}

// Failed wraps err as an unsuccessful outcome
func Failed(err error) Outcome {
	return Outcome{Success: false, Error: err.Error()}
}
