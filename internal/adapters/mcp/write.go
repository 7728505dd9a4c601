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

// RegisterWriteTools adds all backlog-changing tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, repo ports.BacklogStore, locate Locator) {
	s.AddTool(createTool(), createHandler(repo, locate))
	s.AddTool(updateStatusTool(), updateStatusHandler(repo, locate))
	s.AddTool(archiveTool(), archiveHandler(repo, locate))
	s.AddTool(restoreTool(), restoreHandler(repo, locate))
}

// --- create ---

func createTool() mcp.Tool {
	return mcp.NewTool("codeplan_create_task",
		mcp.WithDescription("Create a new task, feature, bug, or other work item in the project backlog. Use this when the user asks to track work, create a task, add a feature, report a bug, etc."),
		mcp.WithString("title",
			mcp.Description("Short title describing the task (required)"),
			mcp.Required(),
		),
		mcp.WithString("type",
			mcp.Description("Type of work item. Use 'feature' for new functionality, 'bug' for defects, 'task' for general work, 'chore' for maintenance, 'spike' for research."),
			mcp.Enum(typeNames()...),
			mcp.DefaultString(string(domain.DefaultType)),
		),
		mcp.WithString("priority",
			mcp.Description("Priority level"),
			mcp.Enum(priorityNames()...),
			mcp.DefaultString(string(domain.DefaultPriority)),
		),
		mcp.WithString("description",
			mcp.Description("Detailed description of what needs to be done"),
		),
		mcp.WithArray("labels",
			mcp.Description("Optional labels/tags for categorization"),
			mcp.WithStringItems(),
		),
		mcp.WithString("status",
			mcp.Description("Initial status (defaults to the first status of the workflow, usually 'backlog')"),
		),
	)
}

func createHandler(repo ports.BacklogStore, locate Locator) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dir, err := locate()
		if err != nil {
			return toolError(err)
		}

		draft := domain.Draft{
			Title:       req.GetString("title", ""),
			Type:        domain.ItemType(req.GetString("type", "")),
			Priority:    domain.Priority(req.GetString("priority", "")),
			Status:      req.GetString("status", ""),
			Description: req.GetString("description", ""),
			Labels:      req.GetStringSlice("labels", nil),
		}

		result, err := commands.NewCreateItemCommand(repo, dir, draft).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		item := result.Item
		text := fmt.Sprintf("%s\n\nFile: %s\nStatus: %s\nPriority: %s",
			result.Message, item.Filename(), item.Status, item.Priority)
		if len(item.Labels) > 0 {
			text += "\nLabels: " + strings.Join(item.Labels, ", ")
		}
		return mcp.NewToolResultText(text), nil
	}
}

// --- update status ---

func updateStatusTool() mcp.Tool {
	return mcp.NewTool("codeplan_update_status",
		mcp.WithDescription("Update the status of a task. Use this when work starts, moves to review, or is finished."),
		mcp.WithString("id",
			mcp.Description("The task ID (e.g., FEAT-001, BUG-042)"),
			mcp.Required(),
		),
		mcp.WithString("status",
			mcp.Description("The new status (default workflow: backlog, todo, in-progress, review, done)"),
			mcp.Required(),
		),
	)
}

func updateStatusHandler(repo ports.BacklogStore, locate Locator) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dir, err := locate()
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewUpdateStatusCommand(repo, dir, req.GetString("id", ""), req.GetString("status", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(fmt.Sprintf("%s\n\nTask: %s", result.Message, result.Item.Title)), nil
	}
}

// --- archive ---

func archiveTool() mcp.Tool {
	return mcp.NewTool("codeplan_archive_task",
		mcp.WithDescription("Archive a task. The file moves to archive/YYYY-MM/ under the backlog folder and no longer shows up in listings."),
		mcp.WithString("id",
			mcp.Description("The task ID to archive"),
			mcp.Required(),
		),
	)
}

func archiveHandler(repo ports.BacklogStore, locate Locator) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dir, err := locate()
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewArchiveItemCommand(repo, dir, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- restore ---

func restoreTool() mcp.Tool {
	return mcp.NewTool("codeplan_restore_task",
		mcp.WithDescription("Restore an archived task back into the active backlog."),
		mcp.WithString("id",
			mcp.Description("The task ID to restore"),
			mcp.Required(),
		),
	)
}

func restoreHandler(repo ports.BacklogStore, locate Locator) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dir, err := locate()
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewRestoreItemCommand(repo, dir, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}
