package application

import "codeplan/internal/domain"

// Re-export domain types for use by adapters
type (
	Item         = domain.Item
	Task         = domain.Task
	Config       = domain.Config
	Draft        = domain.Draft
	Patch        = domain.Patch
	ItemType     = domain.ItemType
	Priority     = domain.Priority
	SearchResult = domain.SearchResult
	WorkContext  = domain.WorkContext
)

// ParseItemType converts user input to an item type. Empty input is the default type.
func ParseItemType(s string) (ItemType, error) {
	if s == "" {
		return domain.DefaultType, nil
	}
	t := domain.ItemType(s)
	if !t.IsValid() {
		return "", &ValidationError{Field: "type", Message: "unknown type: " + s}
	}
	return t, nil
}

// ParsePriority converts user input to a priority. Empty input is the default priority.
func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return domain.DefaultPriority, nil
	}
	p := domain.Priority(s)
	if !p.IsValid() {
		return "", &ValidationError{Field: "priority", Message: "unknown priority: " + s}
	}
	return p, nil
}
