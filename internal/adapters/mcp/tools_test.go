package mcp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeplan/internal/adapters/filesystem"
	"codeplan/internal/domain"
)

func newRepo() *filesystem.Repository {
	day := time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC)
	return filesystem.NewRepository(filesystem.WithClock(func() time.Time { return day }))
}

func setupBacklog(t *testing.T, files map[string]string) (string, Locator) {
	t.Helper()

	dir := filepath.Join(t.TempDir(), domain.FolderName)
	require.NoError(t, os.MkdirAll(dir, 0755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir, func() (string, error) { return dir, nil }
}

func doc(id, typ, title, status, priority, labels string) string {
	return "---\nid: " + id + "\ntitle: " + title + "\ntype: " + typ + "\nstatus: " + status +
		"\npriority: " + priority + "\nlabels: [" + labels + "]\ncreated: 2025-01-01\n---\n\n## Description\n\nAbout " + title + "\n"
}

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()

	req := mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}}
	result, err := h(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text, result.IsError
}

func TestListTasks(t *testing.T) {
	_, locate := setupBacklog(t, map[string]string{
		"FEAT-001.md": doc("FEAT-001", "feature", "Dark mode", "todo", "high", "ui"),
		"BUG-001.md":  doc("BUG-001", "bug", "Crash on save", "in-progress", "critical", ""),
		"TASK-001.md": doc("TASK-001", "task", "Tidy up", "backlog", "low", ""),
	})
	h := listHandler(newRepo(), locate)

	tests := []struct {
		name string
		args map[string]any
		want []string
		skip []string
	}{
		{
			name: "all sorted by priority",
			args: map[string]any{},
			want: []string{"Found 3 task(s):\n", "- **BUG-001** (bug, in-progress, critical)\n  Crash on save\n- **FEAT-001** (feature, todo, high) [ui]\n  Dark mode"},
		},
		{
			name: "filter by type",
			args: map[string]any{"type": "feature"},
			want: []string{"Found 1 task(s):", "FEAT-001"},
			skip: []string{"BUG-001", "TASK-001"},
		},
		{
			name: "filter by label",
			args: map[string]any{"label": "ui"},
			want: []string{"FEAT-001"},
			skip: []string{"BUG-001"},
		},
		{
			name: "limit",
			args: map[string]any{"limit": float64(1)},
			want: []string{"Found 1 task(s):", "BUG-001"},
			skip: []string{"FEAT-001"},
		},
		{
			name: "nothing matches",
			args: map[string]any{"status": "done"},
			want: []string{"No tasks found matching the criteria."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := call(t, h, tt.args)
			assert.False(t, isErr)
			for _, w := range tt.want {
				assert.Contains(t, text, w)
			}
			for _, s := range tt.skip {
				assert.NotContains(t, text, s)
			}
		})
	}
}

func TestListTasks_InvalidFilter(t *testing.T) {
	_, locate := setupBacklog(t, nil)

	text, isErr := call(t, listHandler(newRepo(), locate), map[string]any{"priority": "urgent"})
	assert.True(t, isErr)
	assert.True(t, strings.HasPrefix(text, "Error: "), text)
}

func TestNoBacklogFolder(t *testing.T) {
	locate := func() (string, error) {
		return "", errors.New("No .codeplan folder found. Initialize Codeplan first.")
	}

	text, isErr := call(t, createHandler(newRepo(), locate), map[string]any{"title": "x"})
	assert.True(t, isErr)
	assert.Equal(t, "Error: No .codeplan folder found. Initialize Codeplan first.", text)
}

func TestGetContext(t *testing.T) {
	_, locate := setupBacklog(t, map[string]string{
		"FEAT-001.md": doc("FEAT-001", "feature", "Dark mode", "in-progress", "medium", ""),
		"BUG-001.md":  doc("BUG-001", "bug", "Crash", "todo", "high", ""),
	})
	h := contextHandler(newRepo(), locate)

	text, isErr := call(t, h, map[string]any{})
	assert.False(t, isErr)
	assert.Contains(t, text, "## In Progress")
	assert.Contains(t, text, "## High Priority (Upcoming)")

	text, _ = call(t, h, map[string]any{"includeBacklog": false})
	assert.NotContains(t, text, "BUG-001")

	text, _ = call(t, h, map[string]any{"keywords": []any{"payments"}})
	assert.Equal(t, "No tasks found matching keywords: payments", text)
}

func TestShowTask(t *testing.T) {
	_, locate := setupBacklog(t, map[string]string{
		"FEAT-001.md": doc("FEAT-001", "feature", "Dark mode", "todo", "high", "ui, theme") + "\n## Tasks\n\n- [x] Palette\n- [ ] Toggle\n",
	})
	h := showHandler(newRepo(), locate)

	text, isErr := call(t, h, map[string]any{"id": "FEAT-001"})
	assert.False(t, isErr)
	for _, want := range []string{"# FEAT-001: Dark mode", "Labels: ui, theme", "File: FEAT-001.md\n", "About Dark mode", "Tasks (1/2):", "- [x] Palette", "- [ ] Toggle"} {
		assert.Contains(t, text, want)
	}

	text, isErr = call(t, h, map[string]any{"id": "FEAT-404"})
	assert.True(t, isErr)
	assert.Contains(t, text, "FEAT-404")
}

func TestCreateTask(t *testing.T) {
	dir, locate := setupBacklog(t, map[string]string{
		"FEAT-001.md": doc("FEAT-001", "feature", "Dark mode", "todo", "high", ""),
	})
	h := createHandler(newRepo(), locate)

	text, isErr := call(t, h, map[string]any{
		"title":  "Light mode",
		"type":   "feature",
		"labels": []any{"ui", "theme"},
	})
	require.False(t, isErr, text)
	assert.Equal(t, "Created feature \"Light mode\" with ID FEAT-002\n\nFile: FEAT-002.md\nStatus: backlog\nPriority: medium\nLabels: ui, theme", text)
	assert.FileExists(t, filepath.Join(dir, "FEAT-002.md"))

	text, isErr = call(t, h, map[string]any{"title": "  "})
	assert.True(t, isErr)
	assert.Contains(t, text, "title is required")
}

func TestUpdateStatus(t *testing.T) {
	_, locate := setupBacklog(t, map[string]string{
		"BUG-001.md": doc("BUG-001", "bug", "Crash", "todo", "high", ""),
	})
	h := updateStatusHandler(newRepo(), locate)

	text, isErr := call(t, h, map[string]any{"id": "BUG-001", "status": "in-progress"})
	require.False(t, isErr, text)
	assert.Equal(t, "Updated BUG-001: todo -> in-progress\n\nTask: Crash", text)

	text, isErr = call(t, h, map[string]any{"id": "BUG-001", "status": "shipped"})
	assert.True(t, isErr)
	assert.Contains(t, text, "unknown status")
}

func TestArchiveAndRestore(t *testing.T) {
	dir, locate := setupBacklog(t, map[string]string{
		"BUG-001.md": doc("BUG-001", "bug", "Crash", "done", "high", ""),
	})
	repo := newRepo()

	text, isErr := call(t, archiveHandler(repo, locate), map[string]any{"id": "BUG-001"})
	require.False(t, isErr, text)
	assert.Contains(t, text, "archive/2025-01/BUG-001.md")
	assert.NoFileExists(t, filepath.Join(dir, "BUG-001.md"))

	text, isErr = call(t, restoreHandler(repo, locate), map[string]any{"id": "BUG-001"})
	require.False(t, isErr, text)
	assert.FileExists(t, filepath.Join(dir, "BUG-001.md"))
}

func TestRegisteredTools(t *testing.T) {
	_, locate := setupBacklog(t, map[string]string{
		"BUG-001.md": doc("BUG-001", "bug", "Crash", "todo", "high", ""),
	})
	s := server.NewMCPServer("codeplan", "0.1.0", server.WithToolCapabilities(true))
	RegisterReadTools(s, newRepo(), locate)
	RegisterWriteTools(s, newRepo(), locate)

	ctx := context.Background()
	c, err := client.NewInProcessClient(s)
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, c.Start(ctx))

	init := mcp.InitializeRequest{}
	init.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	init.Params.ClientInfo = mcp.Implementation{Name: "test", Version: "0.0.0"}
	_, err = c.Initialize(ctx, init)
	require.NoError(t, err)

	tools, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	require.NoError(t, err)
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"codeplan_list_tasks", "codeplan_get_context", "codeplan_show_task",
		"codeplan_create_task", "codeplan_update_status", "codeplan_archive_task", "codeplan_restore_task",
	}, names)

	req := mcp.CallToolRequest{}
	req.Params.Name = "codeplan_list_tasks"
	req.Params.Arguments = map[string]any{"status": "todo"}
	result, err := c.CallTool(ctx, req)
	require.NoError(t, err)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.Contains(t, text.Text, "BUG-001")
}
