package domain

import (
	"slices"
	"time"
)

// ProjectConfig names the project and its fallback ID prefix
type ProjectConfig struct {
	Name   string `yaml:"name" json:"name"`
	Prefix string `yaml:"prefix" json:"prefix"`
}

// SprintConfig describes the sprint cadence
type SprintConfig struct {
	Current   int       `yaml:"current" json:"current"`
	Duration  int       `yaml:"duration" json:"duration"`
	StartDate time.Time `yaml:"start_date" json:"start_date"`
}

// Config is the project configuration stored in .codeplan/config.yaml
type Config struct {
	Project    ProjectConfig `yaml:"project" json:"project"`
	Statuses   []string      `yaml:"statuses" json:"statuses"`
	Types      []string      `yaml:"types" json:"types"`
	Priorities []string      `yaml:"priorities" json:"priorities"`
	Sprints    *SprintConfig `yaml:"sprints,omitempty" json:"sprints,omitempty"`
	Labels     []string      `yaml:"labels" json:"labels"`
}

// DefaultConfig returns the configuration used when no config document exists
func DefaultConfig() Config {
	types := make([]string, len(ItemTypes))
	for i, t := range ItemTypes {
		types[i] = string(t)
	}
	priorities := make([]string, len(Priorities))
	for i, p := range Priorities {
		priorities[i] = string(p)
	}

	return Config{
		Project: ProjectConfig{
			Name:   "My Project",
			Prefix: "TASK",
		},
		Statuses:   slices.Clone(DefaultStatuses),
		Types:      types,
		Priorities: priorities,
		Labels:     []string{},
	}
}

// StatusList returns the allowed statuses, falling back to the defaults
func (c *Config) StatusList() []string {
	if c == nil || len(c.Statuses) == 0 {
		return DefaultStatuses
	}
	return c.Statuses
}

// HasStatus reports whether status is allowed by the config
func (c *Config) HasStatus(status string) bool {
	return slices.Contains(c.StatusList(), status)
}

// FallbackPrefix returns project.prefix, or "" when no config is loaded
func (c *Config) FallbackPrefix() string {
	if c == nil {
		return ""
	}
	return c.Project.Prefix
}

// NextStatus returns the status after current in the workflow, or current at the end
func (c *Config) NextStatus(current string) string {
	statuses := c.StatusList()
	i := slices.Index(statuses, current)
	if i < 0 || i == len(statuses)-1 {
		return current
	}
	return statuses[i+1]
}

// PrevStatus returns the status before current in the workflow, or current at the start
func (c *Config) PrevStatus(current string) string {
	statuses := c.StatusList()
	i := slices.Index(statuses, current)
	if i <= 0 {
		return current
	}
	return statuses[i-1]
}
