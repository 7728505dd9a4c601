package commands

import (
	"context"
	"errors"
	"fmt"

	"codeplan/internal/application"
	"codeplan/internal/domain"
	"codeplan/internal/ports"
)

// ArchiveItemResult contains the result of archiving an item
type ArchiveItemResult struct {
	ItemID  string
	Path    string // Destination relative to the backlog folder
	Message string
}

// ArchiveItemCommand moves an active item into the archive bucket for the current month
type ArchiveItemCommand struct {
	repo   ports.BacklogStore
	Dir    string
	ItemID string
}

// NewArchiveItemCommand creates a new ArchiveItemCommand
func NewArchiveItemCommand(repo ports.BacklogStore, dir, itemID string) *ArchiveItemCommand {
	return &ArchiveItemCommand{
		repo:   repo,
		Dir:    dir,
		ItemID: itemID,
	}
}

// Validate checks if the archive operation is valid
func (c *ArchiveItemCommand) Validate() error {
	if err := application.ValidateRequired("backlogDir", c.Dir); err != nil {
		return err
	}
	return application.ValidateItemID("itemID", c.ItemID)
}

// Execute runs the archive command
func (c *ArchiveItemCommand) Execute(ctx context.Context) (*ArchiveItemResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	dest, err := c.repo.Archive(c.Dir, c.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to archive item: %w", err)
	}

	return &ArchiveItemResult{
		ItemID:  c.ItemID,
		Path:    dest,
		Message: fmt.Sprintf("Archived %s -> %s", c.ItemID, dest),
	}, nil
}

// ArchiveDoneResult contains the outcome of archiving every finished item
type ArchiveDoneResult struct {
	Archived []ArchiveItemResult
	Errors   []error // one *application.ArchiveError per item left in place
	Message  string
}

// ArchiveDoneCommand archives every active item in the last workflow status
type ArchiveDoneCommand struct {
	repo ports.BacklogStore
	Dir  string
}

// NewArchiveDoneCommand creates a new ArchiveDoneCommand
func NewArchiveDoneCommand(repo ports.BacklogStore, dir string) *ArchiveDoneCommand {
	return &ArchiveDoneCommand{
		repo: repo,
		Dir:  dir,
	}
}

// Execute runs the command. One item failing to move does not stop the others.
func (c *ArchiveDoneCommand) Execute(ctx context.Context) (*ArchiveDoneResult, error) {
	if err := application.ValidateRequired("backlogDir", c.Dir); err != nil {
		return nil, err
	}

	cfg, err := c.repo.LoadConfig(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to archive done items: %w", err)
	}
	statuses := cfg.StatusList()
	final := statuses[len(statuses)-1]

	loaded, err := c.repo.LoadActive(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to archive done items: %w", err)
	}

	result := &ArchiveDoneResult{}
	for _, item := range loaded.Items {
		if item.Status != final {
			continue
		}
		dest, err := c.repo.Archive(c.Dir, item.ID)
		if err != nil {
			result.Errors = append(result.Errors, &application.ArchiveError{ID: item.ID, Reason: archiveReason(err)})
			continue
		}
		result.Archived = append(result.Archived, ArchiveItemResult{
			ItemID:  item.ID,
			Path:    dest,
			Message: fmt.Sprintf("Archived %s -> %s", item.ID, dest),
		})
	}

	result.Message = fmt.Sprintf("Archived %d %s item(s)", len(result.Archived), final)
	if len(result.Errors) > 0 {
		result.Message += fmt.Sprintf(", %d failed", len(result.Errors))
	}
	return result, nil
}

func archiveReason(err error) string {
	if errors.Is(err, domain.ErrNotFound) {
		return "file disappeared before it could be moved"
	}
	return err.Error()
}
