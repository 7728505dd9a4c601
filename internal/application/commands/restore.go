package commands

import (
	"context"
	"fmt"

	"codeplan/internal/application"
	"codeplan/internal/ports"
)

// RestoreItemResult contains the result of restoring an item
type RestoreItemResult struct {
	ItemID  string
	Path    string // Destination relative to the backlog folder
	Message string
}

// RestoreItemCommand moves an archived item back into the active folder
type RestoreItemCommand struct {
	repo   ports.BacklogStore
	Dir    string
	ItemID string
}

// NewRestoreItemCommand creates a new RestoreItemCommand
func NewRestoreItemCommand(repo ports.BacklogStore, dir, itemID string) *RestoreItemCommand {
	return &RestoreItemCommand{
		repo:   repo,
		Dir:    dir,
		ItemID: itemID,
	}
}

// Validate checks if the restore operation is valid
func (c *RestoreItemCommand) Validate() error {
	if err := application.ValidateRequired("backlogDir", c.Dir); err != nil {
		return err
	}
	return application.ValidateItemID("itemID", c.ItemID)
}

// Execute runs the restore command
func (c *RestoreItemCommand) Execute(ctx context.Context) (*RestoreItemResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	dest, err := c.repo.Restore(c.Dir, c.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to restore item: %w", err)
	}

	return &RestoreItemResult{
		ItemID:  c.ItemID,
		Path:    dest,
		Message: fmt.Sprintf("Restored %s -> %s", c.ItemID, dest),
	}, nil
}
