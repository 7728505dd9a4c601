package commands

import (
	"context"
	"fmt"
	"strings"

	"codeplan/internal/application"
	"codeplan/internal/domain"
	"codeplan/internal/ports"
)

// GetContextResult contains the work an agent should know about
type GetContextResult struct {
	Context domain.WorkContext
	Message string // Markdown summary
}

// GetContextCommand selects in-progress, in-review and urgent upcoming items
type GetContextCommand struct {
	repo           ports.BacklogStore
	Dir            string
	IncludeBacklog bool
	Keywords       []string
}

// NewGetContextCommand creates a new GetContextCommand
func NewGetContextCommand(repo ports.BacklogStore, dir string, includeBacklog bool, keywords []string) *GetContextCommand {
	return &GetContextCommand{
		repo:           repo,
		Dir:            dir,
		IncludeBacklog: includeBacklog,
		Keywords:       keywords,
	}
}

// Execute runs the context command
func (c *GetContextCommand) Execute(ctx context.Context) (*GetContextResult, error) {
	if err := application.ValidateRequired("backlogDir", c.Dir); err != nil {
		return nil, err
	}

	loaded, err := c.repo.LoadActive(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get context: %w", err)
	}

	wc := domain.BuildWorkContext(loaded.Items, c.IncludeBacklog, c.Keywords)
	return &GetContextResult{
		Context: wc,
		Message: FormatContext(wc, c.Keywords),
	}, nil
}

// FormatContext renders a work context as markdown sections
func FormatContext(wc domain.WorkContext, keywords []string) string {
	if wc.Empty() {
		if len(keywords) > 0 {
			return "No tasks found matching keywords: " + strings.Join(keywords, ", ")
		}
		return "No active or high-priority tasks found."
	}

	var sections []string
	if len(keywords) > 0 {
		sections = append(sections, "Filtering by keywords: "+strings.Join(keywords, ", ")+"\n")
	}

	groups := []struct {
		heading string
		items   []domain.Item
	}{
		{"## In Progress", wc.InProgress},
		{"## In Review", wc.InReview},
		{"## High Priority (Upcoming)", wc.Upcoming},
	}
	first := true
	for _, g := range groups {
		if len(g.items) == 0 {
			continue
		}
		if !first {
			sections = append(sections, "")
		}
		first = false
		sections = append(sections, g.heading+"\n")
		for _, item := range g.items {
			sections = append(sections, formatContextItem(item))
		}
	}

	return strings.Join(sections, "\n")
}

func formatContextItem(item domain.Item) string {
	labels := ""
	if len(item.Labels) > 0 {
		labels = " [" + strings.Join(item.Labels, ", ") + "]"
	}
	return fmt.Sprintf("- **%s** (%s)%s\n  %s", item.ID, item.Priority, labels, item.Title)
}
