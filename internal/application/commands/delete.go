package commands

import (
	"context"
	"fmt"

	"codeplan/internal/application"
	"codeplan/internal/ports"
)

// DeleteItemResult contains the result of deleting an item
type DeleteItemResult struct {
	ItemID  string
	Message string
}

// DeleteItemCommand removes an active item file. Nothing is archived.
type DeleteItemCommand struct {
	repo   ports.BacklogStore
	Dir    string
	ItemID string
}

// NewDeleteItemCommand creates a new DeleteItemCommand
func NewDeleteItemCommand(repo ports.BacklogStore, dir, itemID string) *DeleteItemCommand {
	return &DeleteItemCommand{
		repo:   repo,
		Dir:    dir,
		ItemID: itemID,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteItemCommand) Validate() error {
	return application.ValidateItemID("itemID", c.ItemID)
}

// Execute runs the delete command
func (c *DeleteItemCommand) Execute(ctx context.Context) (*DeleteItemResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.repo.Delete(c.Dir, c.ItemID); err != nil {
		return nil, fmt.Errorf("failed to delete item: %w", err)
	}

	return &DeleteItemResult{
		ItemID:  c.ItemID,
		Message: fmt.Sprintf("Deleted %s", c.ItemID),
	}, nil
}
