package commands

import (
	"context"
	"fmt"

	"codeplan/internal/application"
	"codeplan/internal/domain"
	"codeplan/internal/ports"
)

// DefaultListLimit caps list results when the caller gives no limit
const DefaultListLimit = 20

// ListFilter narrows a listing. Empty fields match everything.
type ListFilter struct {
	Status   string
	Type     domain.ItemType
	Priority domain.Priority
	Label    string
}

// Matches reports whether item passes every set filter
func (f ListFilter) Matches(item domain.Item) bool {
	if f.Status != "" && item.Status != f.Status {
		return false
	}
	if f.Type != "" && item.Type != f.Type {
		return false
	}
	if f.Priority != "" && item.Priority != f.Priority {
		return false
	}
	if f.Label != "" && !item.HasLabel(f.Label) {
		return false
	}
	return true
}

// ListItemsResult contains the items of a listing
type ListItemsResult struct {
	Items   []domain.Item
	Total   int // matches before the limit was applied
	Message string
}

// ListItemsCommand lists items sorted by priority, newest first within a priority
type ListItemsCommand struct {
	repo     ports.BacklogStore
	Dir      string
	Filter   ListFilter
	Limit    int // 0 means DefaultListLimit, negative means no limit
	Archived bool
}

// NewListItemsCommand creates a new ListItemsCommand
func NewListItemsCommand(repo ports.BacklogStore, dir string, filter ListFilter, limit int) *ListItemsCommand {
	return &ListItemsCommand{
		repo:   repo,
		Dir:    dir,
		Filter: filter,
		Limit:  limit,
	}
}

// Validate checks if the list operation is valid
func (c *ListItemsCommand) Validate() error {
	if err := application.ValidateRequired("backlogDir", c.Dir); err != nil {
		return err
	}

	if c.Filter.Type != "" && !c.Filter.Type.IsValid() {
		return &application.ValidationError{
			Field:   "type",
			Message: fmt.Sprintf("unknown type: %s", c.Filter.Type),
		}
	}

	if c.Filter.Priority != "" && !c.Filter.Priority.IsValid() {
		return &application.ValidationError{
			Field:   "priority",
			Message: fmt.Sprintf("unknown priority: %s", c.Filter.Priority),
		}
	}

	return nil
}

// Execute runs the list command
func (c *ListItemsCommand) Execute(ctx context.Context) (*ListItemsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	load := c.repo.LoadActive
	if c.Archived {
		load = c.repo.LoadArchived
	}
	loaded, err := load(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	var items []domain.Item
	for _, item := range loaded.Items {
		if c.Filter.Matches(item) {
			items = append(items, item)
		}
	}
	domain.SortByPriority(items)

	total := len(items)
	limit := c.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	msg := fmt.Sprintf("Found %d item(s)", total)
	if len(items) < total {
		msg = fmt.Sprintf("Showing %d of %d item(s)", len(items), total)
	}

	return &ListItemsResult{
		Items:   items,
		Total:   total,
		Message: msg,
	}, nil
}

// GetItemResult contains a single item and where it lives
type GetItemResult struct {
	Item     domain.Item
	Path     string // Relative to the backlog folder
	Archived bool
	Message  string
}

// GetItemCommand looks an item up by ID, in the active set first and then the archive
type GetItemCommand struct {
	repo   ports.BacklogStore
	Dir    string
	ItemID string
}

// NewGetItemCommand creates a new GetItemCommand
func NewGetItemCommand(repo ports.BacklogStore, dir, itemID string) *GetItemCommand {
	return &GetItemCommand{
		repo:   repo,
		Dir:    dir,
		ItemID: itemID,
	}
}

// Validate checks if the lookup is valid
func (c *GetItemCommand) Validate() error {
	return application.ValidateItemID("itemID", c.ItemID)
}

// Execute runs the lookup
func (c *GetItemCommand) Execute(ctx context.Context) (*GetItemResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	for _, archived := range []bool{false, true} {
		load := c.repo.LoadActive
		if archived {
			load = c.repo.LoadArchived
		}
		loaded, err := load(c.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to get item: %w", err)
		}
		for _, item := range loaded.Items {
			if item.ID == c.ItemID {
				return &GetItemResult{
					Item:     item,
					Path:     loaded.Paths[item.ID],
					Archived: archived,
					Message:  fmt.Sprintf("%s %s", item.ID, item.Title),
				}, nil
			}
		}
	}

	return nil, fmt.Errorf("failed to get item: %w", &domain.NotFoundError{ID: c.ItemID})
}
