package commands

import (
	"context"
	"fmt"

	"codeplan/internal/application"
	"codeplan/internal/domain"
	"codeplan/internal/ports"
)

// UpdateStatusResult contains the result of a status change
type UpdateStatusResult struct {
	Item      *domain.Item
	OldStatus string
	Message   string
}

// UpdateStatusCommand moves an item to another workflow status
type UpdateStatusCommand struct {
	repo   ports.BacklogStore
	Dir    string
	ItemID string
	Status string
}

// NewUpdateStatusCommand creates a new UpdateStatusCommand
func NewUpdateStatusCommand(repo ports.BacklogStore, dir, itemID, status string) *UpdateStatusCommand {
	return &UpdateStatusCommand{
		repo:   repo,
		Dir:    dir,
		ItemID: itemID,
		Status: status,
	}
}

// Validate checks if the status change is valid
func (c *UpdateStatusCommand) Validate() error {
	if err := application.ValidateItemID("itemID", c.ItemID); err != nil {
		return err
	}
	return application.ValidateRequired("status", c.Status)
}

// Execute runs the status change
func (c *UpdateStatusCommand) Execute(ctx context.Context) (*UpdateStatusResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	cfg, err := c.repo.LoadConfig(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	if err := application.ValidateStatus("status", c.Status, cfg); err != nil {
		return nil, err
	}

	current, err := findActiveItem(c.repo, c.Dir, c.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	item, err := c.repo.UpdateStatus(c.Dir, c.ItemID, c.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	return &UpdateStatusResult{
		Item:      item,
		OldStatus: current.Status,
		Message:   fmt.Sprintf("Updated %s: %s -> %s", item.ID, current.Status, item.Status),
	}, nil
}

// ShiftStatusCommand moves an item one step forward or back through the
// configured workflow. Steps past either end leave the item where it is.
type ShiftStatusCommand struct {
	repo    ports.BacklogStore
	Dir     string
	ItemID  string
	Forward bool
}

// NewShiftStatusCommand creates a new ShiftStatusCommand
func NewShiftStatusCommand(repo ports.BacklogStore, dir, itemID string, forward bool) *ShiftStatusCommand {
	return &ShiftStatusCommand{
		repo:    repo,
		Dir:     dir,
		ItemID:  itemID,
		Forward: forward,
	}
}

// Execute runs the shift
func (c *ShiftStatusCommand) Execute(ctx context.Context) (*UpdateStatusResult, error) {
	if err := application.ValidateItemID("itemID", c.ItemID); err != nil {
		return nil, err
	}

	cfg, err := c.repo.LoadConfig(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	current, err := findActiveItem(c.repo, c.Dir, c.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	next := cfg.PrevStatus(current.Status)
	if c.Forward {
		next = cfg.NextStatus(current.Status)
	}
	if next == current.Status {
		return &UpdateStatusResult{
			Item:      current,
			OldStatus: current.Status,
			Message:   fmt.Sprintf("%s is already %s", current.ID, current.Status),
		}, nil
	}

	item, err := c.repo.UpdateStatus(c.Dir, c.ItemID, next)
	if err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	return &UpdateStatusResult{
		Item:      item,
		OldStatus: current.Status,
		Message:   fmt.Sprintf("Updated %s: %s -> %s", item.ID, current.Status, item.Status),
	}, nil
}

// findActiveItem loads the active item with id
func findActiveItem(repo ports.BacklogStore, dir, id string) (*domain.Item, error) {
	loaded, err := repo.LoadActive(dir)
	if err != nil {
		return nil, err
	}
	for i := range loaded.Items {
		if loaded.Items[i].ID == id {
			return &loaded.Items[i], nil
		}
	}
	return nil, &domain.NotFoundError{ID: id, Where: "active"}
}
