package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var idRegex = regexp.MustCompile(`^[A-Z]+-\d+$`)

// ValidID reports whether id has the PREFIX-NNN shape
func ValidID(id string) bool {
	return idRegex.MatchString(id)
}

// SplitID separates an ID into its prefix and numeric suffix
func SplitID(id string) (string, int, error) {
	if !ValidID(id) {
		return "", 0, fmt.Errorf("invalid item ID: %s", id)
	}
	prefix, digits, _ := strings.Cut(id, "-")
	n, err := strconv.Atoi(digits)
	if err != nil {
		return "", 0, fmt.Errorf("invalid item ID number: %s", id)
	}
	return prefix, n, nil
}

// NextID returns the next identifier for prefix given the IDs already in use.
// The number is one past the highest existing suffix for that prefix, so gaps
// left by deleted items are never reused. Nothing is persisted: two callers
// racing on the same listing can compute the same ID.
func NextID(prefix string, existing []string) string {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `-(\d+)$`)

	highest := 0
	for _, id := range existing {
		m := pattern.FindStringSubmatch(id)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		highest = max(highest, n)
	}

	return fmt.Sprintf("%s-%03d", prefix, highest+1)
}

// MatchesID reports whether a document file name refers to id.
// The stem must equal id or continue with a non-digit, so TASK-1 never
// matches TASK-10.md but does match TASK-1-login-page.md.
func MatchesID(filename, id string) bool {
	if id == "" || !strings.HasSuffix(filename, ".md") {
		return false
	}
	stem := strings.TrimSuffix(filename, ".md")
	if !strings.HasPrefix(stem, id) {
		return false
	}
	rest := stem[len(id):]
	return rest == "" || rest[0] < '0' || rest[0] > '9'
}

// StemID returns the file name without the .md extension
func StemID(filename string) string {
	return strings.TrimSuffix(filename, ".md")
}
