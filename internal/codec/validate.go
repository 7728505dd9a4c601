package codec

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"codeplan/internal/domain"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// ValidateItem checks frontmatter fields against the item schema and builds
// the canonical item. Every violation is collected before returning.
//
// Absent type, priority and status take their defaults; status defaults to
// the first allowed status. created is required; callers that want the
// parse-time default fill it in first. Unknown keys are ignored.
func ValidateItem(fields map[string]any, statuses []string) (domain.Item, error) {
	if len(statuses) == 0 {
		statuses = domain.DefaultStatuses
	}

	v := &validator{fields: fields}
	var item domain.Item

	item.ID = v.requiredString("id")
	if item.ID != "" && !domain.ValidID(item.ID) {
		v.fail("id", "must match PREFIX-NNN")
	}
	item.Title = v.requiredString("title")

	item.Type = domain.ItemType(v.enum("type", string(domain.DefaultType), itemTypeNames()))
	item.Priority = domain.Priority(v.enum("priority", string(domain.DefaultPriority), priorityNames()))
	item.Status = v.enum("status", statuses[0], statuses)

	item.Sprint = v.optionalInt("sprint")
	item.Points = v.optionalInt("points")
	item.Assignee = v.optionalString("assignee")
	item.Labels = v.stringList("labels")
	item.Parent = v.optionalString("parent")

	if created, ok := v.date("created"); ok {
		item.Created = created
	} else if !v.present("created") {
		v.fail("created", "is required")
	}
	item.Updated, _ = v.date("updated")
	item.Due, _ = v.date("due")

	if len(v.violations) > 0 {
		return domain.Item{}, &domain.ValidationError{Violations: v.violations}
	}
	return item, nil
}

type validator struct {
	fields     map[string]any
	violations []domain.Violation
}

func (v *validator) fail(field, reason string) {
	v.violations = append(v.violations, domain.Violation{Field: field, Reason: reason})
}

// present reports whether key exists with a non-null value
func (v *validator) present(key string) bool {
	val, ok := v.fields[key]
	return ok && val != nil
}

func (v *validator) requiredString(key string) string {
	if !v.present(key) {
		v.fail(key, "is required")
		return ""
	}
	s, ok := v.fields[key].(string)
	if !ok {
		v.fail(key, fmt.Sprintf("must be a string, got %s", typeName(v.fields[key])))
		return ""
	}
	if strings.TrimSpace(s) == "" {
		v.fail(key, "must not be empty")
		return ""
	}
	return s
}

func (v *validator) optionalString(key string) string {
	if !v.present(key) {
		return ""
	}
	s, ok := v.fields[key].(string)
	if !ok {
		v.fail(key, fmt.Sprintf("must be a string, got %s", typeName(v.fields[key])))
		return ""
	}
	return s
}

func (v *validator) enum(key, def string, allowed []string) string {
	if !v.present(key) {
		return def
	}
	s, ok := v.fields[key].(string)
	if !ok {
		v.fail(key, fmt.Sprintf("must be a string, got %s", typeName(v.fields[key])))
		return ""
	}
	if !slices.Contains(allowed, s) {
		v.fail(key, fmt.Sprintf("%q is not one of %s", s, strings.Join(allowed, ", ")))
		return ""
	}
	return s
}

func (v *validator) optionalInt(key string) *int {
	if !v.present(key) {
		return nil
	}
	n, ok := toInt(v.fields[key])
	if !ok {
		v.fail(key, fmt.Sprintf("must be an integer, got %s", typeName(v.fields[key])))
		return nil
	}
	return &n
}

func (v *validator) stringList(key string) []string {
	if !v.present(key) {
		return nil
	}
	raw, ok := v.fields[key].([]any)
	if !ok {
		v.fail(key, fmt.Sprintf("must be a list of strings, got %s", typeName(v.fields[key])))
		return nil
	}
	out := make([]string, 0, len(raw))
	for i, elem := range raw {
		s, ok := elem.(string)
		if !ok {
			v.fail(fmt.Sprintf("%s[%d]", key, i), fmt.Sprintf("must be a string, got %s", typeName(elem)))
			continue
		}
		out = append(out, s)
	}
	return out
}

// date coerces key to a calendar date. ok is false when the key is absent or invalid.
func (v *validator) date(key string) (time.Time, bool) {
	if !v.present(key) {
		return time.Time{}, false
	}
	t, ok := toDate(v.fields[key])
	if !ok {
		v.fail(key, fmt.Sprintf("must be a date (YYYY-MM-DD or timestamp), got %v", v.fields[key]))
		return time.Time{}, false
	}
	return t, true
}

func toInt(val any) (int, bool) {
	switch n := val.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func toDate(val any) (time.Time, bool) {
	switch d := val.(type) {
	case time.Time:
		return calendarDate(d), true
	case string:
		s := strings.TrimSpace(d)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return calendarDate(t), true
			}
		}
	}
	return time.Time{}, false
}

// calendarDate keeps the date as written, dropping time of day and offset
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func typeName(val any) string {
	switch val.(type) {
	case string:
		return "string"
	case int, int64, uint64:
		return "integer"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "list"
	case map[string]any:
		return "mapping"
	case time.Time:
		return "date"
	default:
		return fmt.Sprintf("%T", val)
	}
}

func itemTypeNames() []string {
	names := make([]string, len(domain.ItemTypes))
	for i, t := range domain.ItemTypes {
		names[i] = string(t)
	}
	return names
}

func priorityNames() []string {
	names := make([]string, len(domain.Priorities))
	for i, p := range domain.Priorities {
		names[i] = string(p)
	}
	return names
}
