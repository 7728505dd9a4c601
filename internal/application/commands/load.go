package commands

import (
	"context"
	"fmt"

	"codeplan/internal/application"
	"codeplan/internal/domain"
	"codeplan/internal/ports"
)

// LoadBacklogResult contains the active items of a backlog and its effective config
type LoadBacklogResult struct {
	Items     []domain.Item
	Paths     map[string]string
	Config    domain.Config
	HasConfig bool // false when config.yaml is absent and defaults apply
	Failures  []ports.LoadFailure
	Message   string
}

// LoadBacklogCommand loads every active item of a backlog folder
type LoadBacklogCommand struct {
	repo ports.BacklogStore
	Dir  string
}

// NewLoadBacklogCommand creates a new LoadBacklogCommand
func NewLoadBacklogCommand(repo ports.BacklogStore, dir string) *LoadBacklogCommand {
	return &LoadBacklogCommand{
		repo: repo,
		Dir:  dir,
	}
}

// Validate checks if the load operation is valid
func (c *LoadBacklogCommand) Validate() error {
	return application.ValidateRequired("backlogDir", c.Dir)
}

// Execute runs the load command. Unparseable documents are reported in
// Failures and never abort the load.
func (c *LoadBacklogCommand) Execute(ctx context.Context) (*LoadBacklogResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	cfg, err := c.repo.LoadConfig(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	loaded, err := c.repo.LoadActive(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load backlog: %w", err)
	}

	result := &LoadBacklogResult{
		Items:     loaded.Items,
		Paths:     loaded.Paths,
		Config:    domain.DefaultConfig(),
		HasConfig: cfg != nil,
		Failures:  loaded.Failures,
	}
	if cfg != nil {
		result.Config = *cfg
	}
	result.Message = loadMessage(len(loaded.Items), len(loaded.Failures))
	return result, nil
}

// LoadArchivedResult contains the items found under the archive folder
type LoadArchivedResult struct {
	Items    []domain.Item
	Paths    map[string]string
	Failures []ports.LoadFailure
	Message  string
}

// LoadArchivedCommand loads every archived item of a backlog folder
type LoadArchivedCommand struct {
	repo ports.BacklogStore
	Dir  string
}

// NewLoadArchivedCommand creates a new LoadArchivedCommand
func NewLoadArchivedCommand(repo ports.BacklogStore, dir string) *LoadArchivedCommand {
	return &LoadArchivedCommand{
		repo: repo,
		Dir:  dir,
	}
}

// Execute runs the load archived command. A backlog without an archive
// folder yields an empty result.
func (c *LoadArchivedCommand) Execute(ctx context.Context) (*LoadArchivedResult, error) {
	if err := application.ValidateRequired("backlogDir", c.Dir); err != nil {
		return nil, err
	}

	loaded, err := c.repo.LoadArchived(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load archive: %w", err)
	}

	return &LoadArchivedResult{
		Items:    loaded.Items,
		Paths:    loaded.Paths,
		Failures: loaded.Failures,
		Message:  loadMessage(len(loaded.Items), len(loaded.Failures)),
	}, nil
}

func loadMessage(items, skipped int) string {
	msg := fmt.Sprintf("Loaded %d item(s)", items)
	if skipped > 0 {
		msg += fmt.Sprintf(" (%d skipped)", skipped)
	}
	return msg
}
