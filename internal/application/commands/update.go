package commands

import (
	"context"
	"fmt"

	"codeplan/internal/application"
	"codeplan/internal/domain"
	"codeplan/internal/ports"
)

// UpdateItemResult contains the result of updating an item
type UpdateItemResult struct {
	Item    *domain.Item
	Message string
}

// UpdateItemCommand rewrites an active item with the fields of a patch
type UpdateItemCommand struct {
	repo   ports.BacklogStore
	Dir    string
	ItemID string
	Patch  domain.Patch
}

// NewUpdateItemCommand creates a new UpdateItemCommand
func NewUpdateItemCommand(repo ports.BacklogStore, dir, itemID string, patch domain.Patch) *UpdateItemCommand {
	return &UpdateItemCommand{
		repo:   repo,
		Dir:    dir,
		ItemID: itemID,
		Patch:  patch,
	}
}

// Validate checks if the update operation is valid
func (c *UpdateItemCommand) Validate() error {
	if err := application.ValidateItemID("itemID", c.ItemID); err != nil {
		return err
	}

	if c.Patch.IsEmpty() {
		return &application.ValidationError{
			Field:   "patch",
			Message: "nothing to update",
		}
	}

	if c.Patch.Title != nil {
		if err := application.ValidateRequired("title", *c.Patch.Title); err != nil {
			return err
		}
	}

	if c.Patch.Type != nil && !c.Patch.Type.IsValid() {
		return &application.ValidationError{
			Field:   "type",
			Message: fmt.Sprintf("unknown type: %s", *c.Patch.Type),
		}
	}

	if c.Patch.Priority != nil && !c.Patch.Priority.IsValid() {
		return &application.ValidationError{
			Field:   "priority",
			Message: fmt.Sprintf("unknown priority: %s", *c.Patch.Priority),
		}
	}

	return nil
}

// Execute runs the update command
func (c *UpdateItemCommand) Execute(ctx context.Context) (*UpdateItemResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if c.Patch.Status != nil {
		cfg, err := c.repo.LoadConfig(c.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to update item: %w", err)
		}
		if err := application.ValidateStatus("status", *c.Patch.Status, cfg); err != nil {
			return nil, err
		}
	}

	item, err := c.repo.Update(c.Dir, c.ItemID, c.Patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	return &UpdateItemResult{
		Item:    item,
		Message: fmt.Sprintf("Updated %s: %s", item.ID, item.Title),
	}, nil
}
