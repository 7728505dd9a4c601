package domain

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Project.Name != "My Project" || cfg.Project.Prefix != "TASK" {
		t.Errorf("unexpected project: %+v", cfg.Project)
	}
	if strings.Join(cfg.Statuses, ",") != "backlog,todo,in-progress,review,done" {
		t.Errorf("unexpected statuses: %v", cfg.Statuses)
	}
	if strings.Join(cfg.Types, ",") != "feature,bug,task,chore,spike" {
		t.Errorf("unexpected types: %v", cfg.Types)
	}
	if strings.Join(cfg.Priorities, ",") != "low,medium,high,critical" {
		t.Errorf("unexpected priorities: %v", cfg.Priorities)
	}

	// mutating the default must not leak into the package-level list
	cfg.Statuses[0] = "icebox"
	if DefaultStatuses[0] != "backlog" {
		t.Error("DefaultConfig shares the DefaultStatuses backing array")
	}
}

func TestConfigStatusTransitions(t *testing.T) {
	cfg := &Config{Statuses: []string{"open", "doing", "closed"}}

	tests := []struct {
		name    string
		current string
		next    string
		prev    string
	}{
		{"first", "open", "doing", "open"},
		{"middle", "doing", "closed", "open"},
		{"last", "closed", "closed", "doing"},
		{"unknown", "blocked", "blocked", "blocked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.NextStatus(tt.current); got != tt.next {
				t.Errorf("NextStatus(%q) = %q, want %q", tt.current, got, tt.next)
			}
			if got := cfg.PrevStatus(tt.current); got != tt.prev {
				t.Errorf("PrevStatus(%q) = %q, want %q", tt.current, got, tt.prev)
			}
		})
	}
}

func TestConfigNilFallsBackToDefaults(t *testing.T) {
	var cfg *Config

	if !cfg.HasStatus("review") {
		t.Error("nil config should allow default statuses")
	}
	if cfg.HasStatus("open") {
		t.Error("nil config should reject unknown statuses")
	}
	if cfg.FallbackPrefix() != "" {
		t.Error("nil config should have no fallback prefix")
	}
}

func TestInitFiles(t *testing.T) {
	files := InitFiles("Rocket")
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].Path != ".codeplan/config.yaml" {
		t.Errorf("unexpected config path %q", files[0].Path)
	}
	if !strings.Contains(files[0].Content, "name: Rocket") {
		t.Errorf("project name not substituted:\n%s", files[0].Content)
	}
	if files[1].Path != ".codeplan/README.md" {
		t.Errorf("unexpected readme path %q", files[1].Path)
	}

	if !strings.Contains(InitFiles("")[0].Content, "name: My Project") {
		t.Error("empty name should keep the default project name")
	}
}
