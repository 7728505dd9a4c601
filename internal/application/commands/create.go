package commands

import (
	"context"
	"fmt"
	"strings"

	"codeplan/internal/application"
	"codeplan/internal/domain"
	"codeplan/internal/ports"
)

// CreateItemResult contains the result of creating an item
type CreateItemResult struct {
	Item    *domain.Item
	Message string
}

// CreateItemCommand creates an item document with the next free ID for its type
type CreateItemCommand struct {
	repo  ports.BacklogStore
	Dir   string
	Draft domain.Draft
}

// NewCreateItemCommand creates a new CreateItemCommand
func NewCreateItemCommand(repo ports.BacklogStore, dir string, draft domain.Draft) *CreateItemCommand {
	return &CreateItemCommand{
		repo:  repo,
		Dir:   dir,
		Draft: draft,
	}
}

// Validate checks if the create operation is valid
func (c *CreateItemCommand) Validate() error {
	if err := application.ValidateRequired("backlogDir", c.Dir); err != nil {
		return err
	}

	if err := application.ValidateRequired("title", c.Draft.Title); err != nil {
		return err
	}

	if c.Draft.Type != "" && !c.Draft.Type.IsValid() {
		return &application.ValidationError{
			Field:   "type",
			Message: fmt.Sprintf("unknown type: %s", c.Draft.Type),
		}
	}

	if c.Draft.Priority != "" && !c.Draft.Priority.IsValid() {
		return &application.ValidationError{
			Field:   "priority",
			Message: fmt.Sprintf("unknown priority: %s", c.Draft.Priority),
		}
	}

	for _, label := range c.Draft.Labels {
		if strings.TrimSpace(label) == "" {
			return &application.ValidationError{
				Field:   "labels",
				Message: "labels cannot be empty",
			}
		}
	}

	return nil
}

// Execute runs the create item command
func (c *CreateItemCommand) Execute(ctx context.Context) (*CreateItemResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	cfg, err := c.repo.LoadConfig(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	if c.Draft.Status != "" {
		if err := application.ValidateStatus("status", c.Draft.Status, cfg); err != nil {
			return nil, err
		}
	}

	item, err := c.repo.Create(c.Dir, c.Draft, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return &CreateItemResult{
		Item:    item,
		Message: fmt.Sprintf("Created %s %q with ID %s", item.Type, item.Title, item.ID),
	}, nil
}
