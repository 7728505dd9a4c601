package claudecli

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"codeplan/internal/ports"
)

var _ ports.AgentRegistrar = (*Registrar)(nil)

// Registrar implements ports.AgentRegistrar using the Claude Code CLI
type Registrar struct {
	binary string
}

// Option configures the Registrar
type Option func(*Registrar)

// WithBinary sets the CLI executable, "claude" by default
func WithBinary(binary string) Option {
	return func(r *Registrar) {
		r.binary = binary
	}
}

// NewRegistrar creates a new Claude CLI registrar
func NewRegistrar(opts ...Option) *Registrar {
	r := &Registrar{
		binary: "claude",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsAvailable reports whether `claude --version` succeeds
func (r *Registrar) IsAvailable() bool {
	return exec.Command(r.binary, "--version").Run() == nil
}

// RegisterServer runs `claude mcp add <name> <command...>` from projectRoot.
// A server that is already registered counts as success.
func (r *Registrar) RegisterServer(projectRoot, name string, command []string) error {
	if len(command) == 0 {
		return fmt.Errorf("no command given for tool server %s", name)
	}

	args := append([]string{"mcp", "add", name}, command...)
	cmd := exec.Command(r.binary, args...)
	cmd.Dir = projectRoot

	output, err := cmd.Output()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		if strings.Contains(stderr, "already exists") {
			return nil
		}
		if stderr == "" {
			stderr = strings.TrimSpace(string(output))
		}
		return fmt.Errorf("claude CLI error: %s", stderr)
	}
	return fmt.Errorf("claude CLI error: %w", err)
}
