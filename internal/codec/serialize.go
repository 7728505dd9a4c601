package codec

import (
	"strings"

	"codeplan/internal/domain"
	"codeplan/internal/frontmatter"
)

// SerializeItem renders item as a markdown document.
//
// Frontmatter keys follow a fixed order and optional keys are written only
// when set. Dates lose their time of day. The Description section is always
// present; the Tasks section only when there are tasks.
func SerializeItem(item domain.Item) string {
	fields := []frontmatter.Field{
		{Key: "id", Value: item.ID},
		{Key: "title", Value: item.Title},
		{Key: "type", Value: string(item.Type)},
		{Key: "status", Value: item.Status},
		{Key: "priority", Value: string(item.Priority)},
	}
	if item.Sprint != nil {
		fields = append(fields, frontmatter.Field{Key: "sprint", Value: *item.Sprint})
	}
	if item.Points != nil {
		fields = append(fields, frontmatter.Field{Key: "points", Value: *item.Points})
	}
	if item.Assignee != "" {
		fields = append(fields, frontmatter.Field{Key: "assignee", Value: item.Assignee})
	}
	if len(item.Labels) > 0 {
		fields = append(fields, frontmatter.Field{Key: "labels", Value: item.Labels})
	}
	if !item.Created.IsZero() {
		fields = append(fields, frontmatter.Field{Key: "created", Value: item.Created})
	}
	if !item.Updated.IsZero() {
		fields = append(fields, frontmatter.Field{Key: "updated", Value: item.Updated})
	}
	if !item.Due.IsZero() {
		fields = append(fields, frontmatter.Field{Key: "due", Value: item.Due})
	}
	if item.Parent != "" {
		fields = append(fields, frontmatter.Field{Key: "parent", Value: item.Parent})
	}

	var b strings.Builder
	b.WriteString(frontmatter.Encode(fields))
	b.WriteString("\n" + descriptionHeading + "\n\n")
	b.WriteString(item.Description)

	if len(item.Tasks) > 0 {
		b.WriteString("\n\n" + tasksHeading + "\n\n")
		for i, task := range item.Tasks {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(checkbox(task))
		}
	}

	b.WriteString("\n")
	return b.String()
}

func checkbox(task domain.Task) string {
	mark := " "
	if task.Done {
		mark = "x"
	}
	return "- [" + mark + "] " + task.Text
}
