package codec

import (
	"regexp"
	"strings"

	"codeplan/internal/domain"
)

const (
	descriptionHeading = "## Description"
	tasksHeading       = "## Tasks"
	sectionPrefix      = "## "
)

var checkboxRegex = regexp.MustCompile(`^\s*[-*]\s+\[([ xX])\]\s+(.+)$`)

// ExtractTasks returns every checkbox line in body, in document order.
// Lines outside the Tasks section count too.
func ExtractTasks(body string) []domain.Task {
	tasks := []domain.Task{}
	for _, line := range strings.Split(body, "\n") {
		m := checkboxRegex.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		text := strings.TrimSpace(m[2])
		if text == "" {
			continue
		}
		tasks = append(tasks, domain.Task{
			Text: text,
			Done: m[1] == "x" || m[1] == "X",
		})
	}
	return tasks
}

// ExtractDescription returns the trimmed text between the Description
// heading and the next level-two heading. No heading means no description.
func ExtractDescription(body string) string {
	var captured []string
	capturing := false

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if !capturing {
			if strings.TrimRight(line, " \t") == descriptionHeading {
				capturing = true
			}
			continue
		}
		if strings.HasPrefix(line, sectionPrefix) {
			break
		}
		captured = append(captured, line)
	}

	return strings.TrimSpace(strings.Join(captured, "\n"))
}
