package ports

// AgentRegistrar registers the tool server with a coding agent's CLI
type AgentRegistrar interface {
	// IsAvailable returns true if the agent CLI is on PATH
	IsAvailable() bool

	// RegisterServer adds a project-scoped tool server named name that runs command
	RegisterServer(projectRoot, name string, command []string) error
}
