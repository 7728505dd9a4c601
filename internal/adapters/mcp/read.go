package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"codeplan/internal/application/commands"
	"codeplan/internal/domain"
	"codeplan/internal/ports"
)

// Locator resolves the backlog folder a tool call works on. It is called on
// every request so the server can start before the project is initialised.
type Locator func() (string, error)

// RegisterReadTools adds all read-only backlog tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, repo ports.BacklogStore, locate Locator) {
	s.AddTool(listTool(), listHandler(repo, locate))
	s.AddTool(contextTool(), contextHandler(repo, locate))
	s.AddTool(showTool(), showHandler(repo, locate))
}

// --- list ---

func listTool() mcp.Tool {
	return mcp.NewTool("codeplan_list_tasks",
		mcp.WithDescription("List tasks from the project backlog. Use filters to narrow down results by status, type, priority, or labels."),
		mcp.WithString("status",
			mcp.Description("Filter by status (default workflow: backlog, todo, in-progress, review, done)"),
		),
		mcp.WithString("type",
			mcp.Description("Filter by type"),
			mcp.Enum(typeNames()...),
		),
		mcp.WithString("priority",
			mcp.Description("Filter by priority"),
			mcp.Enum(priorityNames()...),
		),
		mcp.WithString("label",
			mcp.Description("Filter by label (items containing this label)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of items to return (default: 20)"),
			mcp.DefaultNumber(commands.DefaultListLimit),
			mcp.Min(1),
		),
	)
}

func listHandler(repo ports.BacklogStore, locate Locator) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dir, err := locate()
		if err != nil {
			return toolError(err)
		}

		filter := commands.ListFilter{
			Status:   req.GetString("status", ""),
			Type:     domain.ItemType(req.GetString("type", "")),
			Priority: domain.Priority(req.GetString("priority", "")),
			Label:    req.GetString("label", ""),
		}
		limit := req.GetInt("limit", commands.DefaultListLimit)

		result, err := commands.NewListItemsCommand(repo, dir, filter, limit).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(result.Items) == 0 {
			return mcp.NewToolResultText("No tasks found matching the criteria."), nil
		}
		return mcp.NewToolResultText(formatTaskList(result.Items)), nil
	}
}

// --- context ---

func contextTool() mcp.Tool {
	return mcp.NewTool("codeplan_get_context",
		mcp.WithDescription("Get tasks relevant to the current work. Returns in-progress tasks and high-priority items. Use this to understand what work is active and what should be prioritized."),
		mcp.WithBoolean("includeBacklog",
			mcp.Description("Include high-priority backlog items (default: true)"),
			mcp.DefaultBool(true),
		),
		mcp.WithArray("keywords",
			mcp.Description("Optional keywords to filter tasks (matches title, description, or labels)"),
			mcp.WithStringItems(),
		),
	)
}

func contextHandler(repo ports.BacklogStore, locate Locator) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dir, err := locate()
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewGetContextCommand(repo, dir,
			req.GetBool("includeBacklog", true),
			req.GetStringSlice("keywords", nil),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- show ---

func showTool() mcp.Tool {
	return mcp.NewTool("codeplan_show_task",
		mcp.WithDescription("Show one task in full: metadata, description and checklist. Archived tasks are found too."),
		mcp.WithString("id",
			mcp.Description("The task ID (e.g., FEAT-001, BUG-042)"),
			mcp.Required(),
		),
	)
}

func showHandler(repo ports.BacklogStore, locate Locator) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dir, err := locate()
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewGetItemCommand(repo, dir, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(formatTask(result.Item, result.Path, result.Archived)), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError("Error: " + err.Error()), nil
}

func formatTaskList(items []domain.Item) string {
	lines := []string{fmt.Sprintf("Found %d task(s):\n", len(items))}
	for _, item := range items {
		lines = append(lines,
			fmt.Sprintf("- **%s** (%s, %s, %s)%s", item.ID, item.Type, item.Status, item.Priority, formatLabels(item.Labels)),
			"  "+item.Title,
		)
	}
	return strings.Join(lines, "\n")
}

func formatTask(item domain.Item, path string, archived bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s: %s\n\n", item.ID, item.Title)
	fmt.Fprintf(&sb, "Type: %s\nStatus: %s\nPriority: %s\n", item.Type, item.Status, item.Priority)
	if len(item.Labels) > 0 {
		fmt.Fprintf(&sb, "Labels: %s\n", strings.Join(item.Labels, ", "))
	}
	if item.Assignee != "" {
		fmt.Fprintf(&sb, "Assignee: %s\n", item.Assignee)
	}
	if !item.Due.IsZero() {
		fmt.Fprintf(&sb, "Due: %s\n", item.Due.Format("2006-01-02"))
	}
	fmt.Fprintf(&sb, "File: %s", path)
	if archived {
		sb.WriteString(" (archived)")
	}
	sb.WriteString("\n")

	if item.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", item.Description)
	}
	if len(item.Tasks) > 0 {
		done, total := item.Progress()
		fmt.Fprintf(&sb, "\nTasks (%d/%d):\n", done, total)
		for _, t := range item.Tasks {
			mark := " "
			if t.Done {
				mark = "x"
			}
			fmt.Fprintf(&sb, "- [%s] %s\n", mark, t.Text)
		}
	}
	return sb.String()
}

func formatLabels(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	return " [" + strings.Join(labels, ", ") + "]"
}

func typeNames() []string {
	names := make([]string, len(domain.ItemTypes))
	for i, t := range domain.ItemTypes {
		names[i] = string(t)
	}
	return names
}

func priorityNames() []string {
	names := make([]string, len(domain.Priorities))
	for i, p := range domain.Priorities {
		names[i] = string(p)
	}
	return names
}
