package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is matched by every NotFoundError
var ErrNotFound = errors.New("not found")

// NotFoundError reports an item ID with no matching file
type NotFoundError struct {
	ID    string
	Where string // "active", "archive", or empty for both
}

func (e *NotFoundError) Error() string {
	if e.Where == "archive" {
		return fmt.Sprintf("item %s not found in archive", e.ID)
	}
	return fmt.Sprintf("item %s not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Violation is a single field-level schema failure
type Violation struct {
	Field  string
	Reason string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Reason)
}

// ValidationError lists every violation found in one document
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	return joinViolations(e.Violations)
}

// Has reports whether field is among the violations
func (e *ValidationError) Has(field string) bool {
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

// ParseError reports a document that could not be turned into an item.
// Source identifies the file; Err carries the ValidationError when present.
type ParseError struct {
	Message string
	Source  string
	Err     error
}

func (e *ParseError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Source != "" {
		return fmt.Sprintf("%s in %s", msg, e.Source)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ConfigError reports a malformed configuration document
type ConfigError struct {
	Source     string
	Violations []Violation
	Err        error
}

func (e *ConfigError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("invalid config: %v", e.Err)
	} else {
		msg = "invalid config: " + joinViolations(e.Violations)
	}
	if e.Source != "" {
		return fmt.Sprintf("%s in %s", msg, e.Source)
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func joinViolations(vs []Violation) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}
