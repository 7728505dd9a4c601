package codec

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"codeplan/internal/domain"
)

var prefixRegex = regexp.MustCompile(`^[A-Z]+$`)

// ParseConfig reads a project config document.
//
// An empty document yields domain.DefaultConfig. Absent statuses, types and
// priorities take their defaults; present ones must be non-empty string
// lists. Malformed YAML or any schema violation yields a *domain.ConfigError
// listing every offending field.
func ParseConfig(doc, source string) (domain.Config, error) {
	if strings.TrimSpace(doc) == "" {
		return domain.DefaultConfig(), nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(doc), &raw); err != nil {
		return domain.Config{}, &domain.ConfigError{Source: source, Err: err}
	}
	if raw == nil {
		return domain.DefaultConfig(), nil
	}

	cfg := domain.DefaultConfig()
	v := &validator{fields: raw}

	if project, ok := v.mapping("project"); ok {
		pv := &validator{fields: project}
		cfg.Project.Name = pv.requiredString("name")
		cfg.Project.Prefix = pv.requiredString("prefix")
		if cfg.Project.Prefix != "" && !prefixRegex.MatchString(cfg.Project.Prefix) {
			pv.fail("prefix", "must be uppercase letters")
		}
		v.adopt("project", pv.violations)
	} else if !v.present("project") {
		v.fail("project", "is required")
	}

	if statuses, ok := v.nonEmptyList("statuses"); ok {
		cfg.Statuses = statuses
	}
	if types, ok := v.nonEmptyList("types"); ok {
		cfg.Types = types
	}
	if priorities, ok := v.nonEmptyList("priorities"); ok {
		cfg.Priorities = priorities
	}
	if v.present("labels") {
		cfg.Labels = v.stringList("labels")
	}

	if sprints, ok := v.mapping("sprints"); ok {
		sv := &validator{fields: sprints}
		sc := &domain.SprintConfig{}
		if n := sv.optionalInt("current"); n != nil {
			sc.Current = *n
		}
		if n := sv.optionalInt("duration"); n != nil {
			sc.Duration = *n
		}
		sc.StartDate, _ = sv.date("start_date")
		v.adopt("sprints", sv.violations)
		cfg.Sprints = sc
	}

	if len(v.violations) > 0 {
		return domain.Config{}, &domain.ConfigError{Source: source, Violations: v.violations}
	}
	return cfg, nil
}

// SerializeConfig dumps cfg as YAML. The output is not byte-identical to a
// hand-written file but parses back to the same config.
func SerializeConfig(cfg domain.Config) (string, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return string(out), nil
}

// mapping returns key as a nested mapping. A present non-mapping value is a violation.
func (v *validator) mapping(key string) (map[string]any, bool) {
	if !v.present(key) {
		return nil, false
	}
	m, ok := v.fields[key].(map[string]any)
	if !ok {
		v.fail(key, fmt.Sprintf("must be a mapping, got %s", typeName(v.fields[key])))
		return nil, false
	}
	return m, true
}

func (v *validator) nonEmptyList(key string) ([]string, bool) {
	if !v.present(key) {
		return nil, false
	}
	before := len(v.violations)
	list := v.stringList(key)
	if len(v.violations) > before {
		return nil, false
	}
	if len(list) == 0 {
		v.fail(key, "must not be empty")
		return nil, false
	}
	return list, true
}

// adopt records nested violations under parent.field names
func (v *validator) adopt(parent string, nested []domain.Violation) {
	for _, n := range nested {
		v.fail(parent+"."+n.Field, n.Reason)
	}
}
