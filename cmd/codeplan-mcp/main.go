package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"codeplan/internal/adapters/filesystem"
	mcpadapter "codeplan/internal/adapters/mcp"
	"codeplan/internal/config"
	"codeplan/internal/logging"
)

const instructions = "Codeplan keeps the project backlog as markdown files in a .codeplan folder. " +
	"Call codeplan_get_context before starting work, create tasks for new work, " +
	"and move tasks through the workflow with codeplan_update_status."

var errNoProject = errors.New("No .codeplan folder found. Initialize Codeplan first.")

func main() {
	settings, err := config.Load()
	if err != nil {
		settings = config.DefaultSettings()
	}

	dirFlag := flag.String("dir", settings.Dir, "project root (default: nearest folder with .codeplan)")
	levelFlag := flag.String("log-level", settings.LogLevel, "log level")
	flag.Parse()
	settings.Dir = *dirFlag

	// stdout carries the protocol; everything else goes to stderr
	logger := logging.New(os.Stderr, *levelFlag)
	if err != nil {
		logger.Warn("using default settings", "err", err)
	}

	repo := filesystem.NewRepository(filesystem.WithLogger(logger))

	locate := func() (string, error) {
		dir, err := settings.BacklogDir()
		if err != nil {
			logger.Debug("backlog folder not found", "err", err)
			return "", errNoProject
		}
		return dir, nil
	}

	mcpServer := server.NewMCPServer(
		"codeplan",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, repo, locate)
	mcpadapter.RegisterWriteTools(mcpServer, repo, locate)

	logger.Info("MCP server running on stdio")
	if err := server.ServeStdio(mcpServer, server.WithErrorLogger(logger.StandardLog())); err != nil {
		logger.Fatal("codeplan-mcp", "err", err)
	}
}
