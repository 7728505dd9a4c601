package application

import (
	"fmt"
	"strings"

	"codeplan/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "itemID" -> "item ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"itemID":     "item ID",
		"backlogDir": "backlog folder",
		"projectDir": "project folder",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateItemID checks that id is present and has the PREFIX-NNN shape
func ValidateItemID(fieldName, id string) error {
	if err := ValidateRequired(fieldName, id); err != nil {
		return err
	}
	if !domain.ValidID(id) {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected an ID like TASK-001, got: %s", id),
		}
	}
	return nil
}

// ValidateStatus checks status against the config's workflow
func ValidateStatus(fieldName, status string, cfg *domain.Config) error {
	if err := ValidateRequired(fieldName, status); err != nil {
		return err
	}
	if !cfg.HasStatus(status) {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("unknown status %q (expected one of %s)", status, strings.Join(cfg.StatusList(), ", ")),
		}
	}
	return nil
}
