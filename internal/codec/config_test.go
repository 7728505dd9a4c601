package codec

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"codeplan/internal/domain"
)

func TestParseConfig_EmptyDocument(t *testing.T) {
	for _, doc := range []string{"", "   \n", "# only a comment\n"} {
		cfg, err := ParseConfig(doc, "config.yaml")
		if err != nil {
			t.Fatalf("ParseConfig(%q) failed: %v", doc, err)
		}
		if diff := cmp.Diff(domain.DefaultConfig(), cfg); diff != "" {
			t.Errorf("ParseConfig(%q) mismatch (-want +got):\n%s", doc, diff)
		}
	}
}

func TestParseConfig_DefaultTemplate(t *testing.T) {
	cfg, err := ParseConfig(domain.DefaultConfigYAML, "config.yaml")
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if diff := cmp.Diff(domain.DefaultConfig(), cfg); diff != "" {
		t.Errorf("template differs from default config (-want +got):\n%s", diff)
	}
}

func TestParseConfig_Custom(t *testing.T) {
	doc := `project:
  name: Rocket
  prefix: RKT
statuses: [open, doing, closed]
sprints:
  current: 4
  duration: 14
  start_date: 2025-01-06
labels:
  - infra
`

	cfg, err := ParseConfig(doc, "config.yaml")
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	want := domain.DefaultConfig()
	want.Project = domain.ProjectConfig{Name: "Rocket", Prefix: "RKT"}
	want.Statuses = []string{"open", "doing", "closed"}
	want.Sprints = &domain.SprintConfig{Current: 4, Duration: 14, StartDate: date(2025, 1, 6)}
	want.Labels = []string{"infra"}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfig_Malformed(t *testing.T) {
	_, err := ParseConfig("project: [unclosed\n", "config.yaml")

	var cfgErr *domain.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T: %v", err, err)
	}
	if cfgErr.Err == nil {
		t.Error("expected the YAML error to be wrapped")
	}
}

func TestParseConfig_ListsEveryViolation(t *testing.T) {
	doc := `project:
  name: ""
  prefix: lower
statuses: []
types: feature
priorities: [low, 3]
sprints:
  current: first
labels: nope
`

	_, err := ParseConfig(doc, "config.yaml")

	var cfgErr *domain.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T: %v", err, err)
	}

	got := map[string]bool{}
	for _, v := range cfgErr.Violations {
		got[v.Field] = true
	}
	for _, field := range []string{
		"project.name", "project.prefix", "statuses", "types",
		"priorities[1]", "sprints.current", "labels",
	} {
		if !got[field] {
			t.Errorf("missing violation for %s in %v", field, cfgErr.Violations)
		}
	}
}

func TestParseConfig_MissingProject(t *testing.T) {
	_, err := ParseConfig("statuses: [a]\n", "config.yaml")

	var cfgErr *domain.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T: %v", err, err)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Project.Name = "Round: Trip"
	cfg.Statuses = []string{"new", "true", "done"}
	cfg.Sprints = &domain.SprintConfig{Current: 1, Duration: 7, StartDate: date(2025, 3, 3)}
	cfg.Labels = []string{"a", "b"}

	doc, err := SerializeConfig(cfg)
	if err != nil {
		t.Fatalf("SerializeConfig failed: %v", err)
	}

	got, err := ParseConfig(doc, "config.yaml")
	if err != nil {
		t.Fatalf("ParseConfig failed: %v\n%s", err, doc)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s\n%s", diff, doc)
	}
}
