package domain

import "strings"

// WorkContext groups the items an agent should know about right now
type WorkContext struct {
	InProgress []Item
	InReview   []Item
	Upcoming   []Item // critical/high items still in backlog or todo
}

// Empty reports whether no item was selected
func (c WorkContext) Empty() bool {
	return len(c.InProgress) == 0 && len(c.InReview) == 0 && len(c.Upcoming) == 0
}

// BuildWorkContext selects active work from items.
// Keywords, when given, keep only items whose title, description or labels
// contain at least one keyword (case-insensitive). An item lands in at most
// one group.
func BuildWorkContext(items []Item, includeBacklog bool, keywords []string) WorkContext {
	var ctx WorkContext
	seen := make(map[string]bool)

	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(strings.ToLower(kw)); kw != "" {
			lowered = append(lowered, kw)
		}
	}

	keep := func(item Item) bool {
		if seen[item.ID] {
			return false
		}
		if len(lowered) > 0 && !matchesKeywords(item, lowered) {
			return false
		}
		seen[item.ID] = true
		return true
	}

	for _, item := range items {
		if item.Status == StatusInProgress && keep(item) {
			ctx.InProgress = append(ctx.InProgress, item)
		}
	}
	for _, item := range items {
		if item.Status == StatusReview && keep(item) {
			ctx.InReview = append(ctx.InReview, item)
		}
	}
	if includeBacklog {
		for _, item := range items {
			waiting := item.Status == StatusBacklog || item.Status == StatusTodo
			urgent := item.Priority == PriorityCritical || item.Priority == PriorityHigh
			if waiting && urgent && keep(item) {
				ctx.Upcoming = append(ctx.Upcoming, item)
			}
		}
	}

	return ctx
}

func matchesKeywords(item Item, keywords []string) bool {
	text := strings.ToLower(item.Title + " " + item.Description + " " + strings.Join(item.Labels, " "))
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
