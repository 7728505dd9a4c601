package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"

	"codeplan/internal/application"
	"codeplan/internal/domain"
	"codeplan/internal/ports"
)

const (
	agentDir            = ".claude"
	agentSettingsFile   = "settings.json"
	agentInstructions   = "CLAUDE.md"
	projectServersKey   = "enableAllProjectMcpServers"
	toolServerName      = "codeplan"
	instructionsHeading = "# Project Instructions"
)

// ToolServerCommand is the process the agent CLI starts for the tool server
var ToolServerCommand = []string{"codeplan-mcp"}

// InitProjectResult lists what initialisation did
type InitProjectResult struct {
	Steps    []string // Completed steps, in order
	Warnings []string // Steps left to the user
	Message  string
}

// InitProjectCommand creates the backlog folder and wires the project into
// the coding agent
type InitProjectCommand struct {
	fs        ports.FileSystem
	registrar ports.AgentRegistrar
	Root      string // Project root; the backlog folder is created inside it
	Name      string // Project name written to config.yaml
	SkipMCP   bool
}

// NewInitProjectCommand creates a new InitProjectCommand
func NewInitProjectCommand(fs ports.FileSystem, registrar ports.AgentRegistrar, root, name string) *InitProjectCommand {
	return &InitProjectCommand{
		fs:        fs,
		registrar: registrar,
		Root:      root,
		Name:      name,
	}
}

// Validate checks if the init operation is valid
func (c *InitProjectCommand) Validate() error {
	return application.ValidateRequired("projectDir", c.Root)
}

// Execute runs the init command. An existing backlog folder is left untouched.
func (c *InitProjectCommand) Execute(ctx context.Context) (*InitProjectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result := &InitProjectResult{}

	if err := c.createBacklog(result); err != nil {
		return nil, fmt.Errorf("failed to initialise backlog: %w", err)
	}

	if err := c.writeInstructions(result); err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", agentInstructions, err)
	}

	if c.SkipMCP {
		result.Steps = append(result.Steps, "Skipped tool server registration")
	} else {
		if err := c.enableProjectServers(result); err != nil {
			return nil, fmt.Errorf("failed to update agent settings: %w", err)
		}
		c.registerServer(result)
	}

	result.Message = "Codeplan initialized!"
	return result, nil
}

func (c *InitProjectCommand) createBacklog(result *InitProjectResult) error {
	exists, err := c.fs.Exists(filepath.Join(c.Root, domain.FolderName))
	if err != nil {
		return err
	}
	if exists {
		result.Steps = append(result.Steps, domain.FolderName+"/ already exists, skipping folder creation")
		return nil
	}

	if err := c.fs.MkdirAll(filepath.Join(c.Root, domain.FolderName)); err != nil {
		return err
	}
	for _, file := range domain.InitFiles(c.Name) {
		if err := c.fs.WriteFile(filepath.Join(c.Root, filepath.FromSlash(file.Path)), []byte(file.Content)); err != nil {
			return err
		}
		result.Steps = append(result.Steps, "Created "+file.Path)
	}
	return nil
}

func (c *InitProjectCommand) writeInstructions(result *InitProjectResult) error {
	path := filepath.Join(c.Root, agentInstructions)
	exists, err := c.fs.Exists(path)
	if err != nil {
		return err
	}

	if !exists {
		content := instructionsHeading + "\n\n" + domain.AgentInstructions
		if err := c.fs.WriteFile(path, []byte(content)); err != nil {
			return err
		}
		result.Steps = append(result.Steps, "Created "+agentInstructions)
		return nil
	}

	current, err := c.fs.ReadFile(path)
	if err != nil {
		return err
	}
	if strings.Contains(string(current), domain.AgentInstructionsMarker) {
		result.Steps = append(result.Steps, agentInstructions+" already contains Codeplan instructions")
		return nil
	}

	content := string(current) + "\n\n" + domain.AgentInstructions
	if err := c.fs.WriteFile(path, []byte(content)); err != nil {
		return err
	}
	result.Steps = append(result.Steps, "Updated "+agentInstructions+" with Codeplan instructions")
	return nil
}

func (c *InitProjectCommand) enableProjectServers(result *InitProjectResult) error {
	dir := filepath.Join(c.Root, agentDir)
	if err := c.fs.MkdirAll(dir); err != nil {
		return err
	}

	path := filepath.Join(dir, agentSettingsFile)
	exists, err := c.fs.Exists(path)
	if err != nil {
		return err
	}
	var current []byte
	if exists {
		if current, err = c.fs.ReadFile(path); err != nil {
			return err
		}
	}

	updated, changed, err := EnableProjectServers(current)
	if err != nil {
		return fmt.Errorf("%s/%s: %w", agentDir, agentSettingsFile, err)
	}
	if !changed {
		return nil
	}
	if err := c.fs.WriteFile(path, updated); err != nil {
		return err
	}
	result.Steps = append(result.Steps, "Enabled project tool servers in "+agentDir+"/"+agentSettingsFile)
	return nil
}

func (c *InitProjectCommand) registerServer(result *InitProjectResult) {
	manual := fmt.Sprintf("Register the tool server manually: claude mcp add %s %s",
		toolServerName, strings.Join(ToolServerCommand, " "))

	if c.registrar == nil || !c.registrar.IsAvailable() {
		result.Warnings = append(result.Warnings, "Agent CLI not detected. "+manual)
		return
	}

	if err := c.registrar.RegisterServer(c.Root, toolServerName, ToolServerCommand); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Failed to register tool server: %v. %s", err, manual))
		return
	}
	result.Steps = append(result.Steps, "Registered tool server "+toolServerName)
}

// EnableProjectServers turns on project-scoped tool servers in an agent
// settings document. Comments and trailing commas are accepted and kept.
// An empty document is treated as {}.
func EnableProjectServers(settings []byte) ([]byte, bool, error) {
	if len(bytes.TrimSpace(settings)) == 0 {
		settings = []byte("{}")
	}

	v, err := hujson.Parse(settings)
	if err != nil {
		return nil, false, err
	}

	std := v.Clone()
	std.Standardize()
	var decoded map[string]any
	if err := json.Unmarshal(std.Pack(), &decoded); err != nil {
		return nil, false, fmt.Errorf("expected a JSON object: %w", err)
	}
	if enabled, _ := decoded[projectServersKey].(bool); enabled {
		return settings, false, nil
	}

	patch := fmt.Sprintf(`[{"op":"add","path":"/%s","value":true}]`, projectServersKey)
	if err := v.Patch([]byte(patch)); err != nil {
		return nil, false, err
	}
	v.Format()
	return v.Pack(), true, nil
}
