package domain

import (
	"path"
	"strings"
)

// DefaultConfigYAML is written to config.yaml by project initialization
const DefaultConfigYAML = `project:
  name: My Project
  prefix: TASK

statuses:
  - backlog
  - todo
  - in-progress
  - review
  - done

types:
  - feature
  - bug
  - task
  - chore
  - spike

priorities:
  - low
  - medium
  - high
  - critical

labels: []
`

// ReadmeTemplate is written next to the items so the folder explains itself
const ReadmeTemplate = "# Codeplan\n\n" +
	"This folder contains project tasks managed by Codeplan.\n\n" +
	"## How it works\n\n" +
	"Tasks are stored as markdown files with YAML frontmatter. AI agents use MCP tools to manage tasks automatically.\n\n" +
	"## Task Types\n\n" +
	"| Type | Prefix | Description |\n" +
	"|------|--------|-------------|\n" +
	"| feature | FEAT | New functionality |\n" +
	"| bug | BUG | Defects to fix |\n" +
	"| task | TASK | General work items |\n" +
	"| chore | CHORE | Maintenance tasks |\n" +
	"| spike | SPIKE | Research/investigation |\n\n" +
	"## Statuses\n\n" +
	"`backlog` → `todo` → `in-progress` → `review` → `done`\n\n" +
	"## Folder Structure\n\n" +
	"```\n" +
	".codeplan/\n" +
	"├── config.yaml      # Project configuration\n" +
	"├── FEAT-001.md      # Active tasks\n" +
	"├── BUG-002.md\n" +
	"└── archive/         # Completed tasks (auto-archived)\n" +
	"    └── 2025-01/\n" +
	"```\n"

// AgentInstructions is appended to CLAUDE.md so agents know the tools exist
const AgentInstructions = "## Task Management\n\n" +
	"This project uses Codeplan for task management.\n\n" +
	"Use the MCP tools to manage tasks:\n" +
	"- `codeplan_create_task` - Create new tasks, features, or bugs\n" +
	"- `codeplan_list_tasks` - List and filter tasks\n" +
	"- `codeplan_update_status` - Update task status\n" +
	"- `codeplan_get_context` - Get current work context\n"

// AgentInstructionsMarker identifies an instructions file that already mentions us
const AgentInstructionsMarker = "Codeplan"

// InitFile is a file created by project initialization, relative to the project root
type InitFile struct {
	Path    string
	Content string
}

// InitFiles returns the files that make up a fresh project folder
func InitFiles(projectName string) []InitFile {
	if strings.TrimSpace(projectName) == "" {
		projectName = "My Project"
	}
	config := strings.Replace(DefaultConfigYAML, "My Project", projectName, 1)

	return []InitFile{
		{Path: path.Join(FolderName, ConfigFile), Content: config},
		{Path: path.Join(FolderName, ReadmeFile), Content: ReadmeTemplate},
	}
}
