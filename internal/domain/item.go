package domain

import (
	"slices"
	"time"
)

// ItemType is the kind of work an item represents
type ItemType string

const (
	TypeFeature ItemType = "feature"
	TypeBug     ItemType = "bug"
	TypeTask    ItemType = "task"
	TypeChore   ItemType = "chore"
	TypeSpike   ItemType = "spike"
)

// ItemTypes lists every accepted item type in display order
var ItemTypes = []ItemType{TypeFeature, TypeBug, TypeTask, TypeChore, TypeSpike}

// DefaultType is used when a document does not name a type
const DefaultType = TypeTask

// IsValid reports whether t is one of the known item types
func (t ItemType) IsValid() bool {
	return slices.Contains(ItemTypes, t)
}

// typePrefixes maps each item type to the uppercase code used in its ID
var typePrefixes = map[ItemType]string{
	TypeFeature: "FEAT",
	TypeBug:     "BUG",
	TypeTask:    "TASK",
	TypeChore:   "CHORE",
	TypeSpike:   "SPIKE",
}

// TypePrefix returns the ID prefix for an item type.
// Unknown types use fallback (usually project.prefix), then "TASK".
func TypePrefix(t ItemType, fallback string) string {
	if prefix, ok := typePrefixes[t]; ok {
		return prefix
	}
	if fallback != "" {
		return fallback
	}
	return typePrefixes[TypeTask]
}

// Priority ranks how urgent an item is
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities lists every accepted priority from least to most urgent
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// DefaultPriority is used when a document does not name a priority
const DefaultPriority = PriorityMedium

// IsValid reports whether p is one of the known priorities
func (p Priority) IsValid() bool {
	return slices.Contains(Priorities, p)
}

// Rank returns the sort position of p: critical=0, high=1, medium=2, low=3.
// Unknown priorities sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// DefaultStatuses is the status workflow used when no project config exists
var DefaultStatuses = []string{"backlog", "todo", "in-progress", "review", "done"}

// Well-known statuses referenced by the agent context view
const (
	StatusBacklog    = "backlog"
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusReview     = "review"
	StatusDone       = "done"
)

// Task is a checkbox line inside an item document
type Task struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Item is one backlog entry, projected from a single markdown document.
// Zero-valued Updated and Due mean the field is absent.
type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        ItemType  `json:"type"`
	Status      string    `json:"status"`
	Priority    Priority  `json:"priority"`
	Sprint      *int      `json:"sprint,omitempty"`
	Points      *int      `json:"points,omitempty"`
	Assignee    string    `json:"assignee,omitempty"`
	Labels      []string  `json:"labels,omitempty"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated,omitzero"`
	Due         time.Time `json:"due,omitzero"`
	Parent      string    `json:"parent,omitempty"`
	Description string    `json:"description"`
	Tasks       []Task    `json:"tasks"`
}

// Filename returns the canonical document name for the item
func (i Item) Filename() string {
	return i.ID + ".md"
}

// HasLabel reports whether the item carries label
func (i Item) HasLabel(label string) bool {
	return slices.Contains(i.Labels, label)
}

// Progress returns the number of completed tasks and the total
func (i Item) Progress() (done, total int) {
	for _, t := range i.Tasks {
		if t.Done {
			done++
		}
	}
	return done, len(i.Tasks)
}

// SortByPriority orders items by priority rank, newest created first within a rank
func SortByPriority(items []Item) {
	slices.SortStableFunc(items, func(a, b Item) int {
		if d := a.Priority.Rank() - b.Priority.Rank(); d != 0 {
			return d
		}
		return b.Created.Compare(a.Created)
	})
}

// Today truncates t to its calendar date in UTC
func Today(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IntPtr returns a pointer to v, for optional numeric fields
func IntPtr(v int) *int {
	return &v
}
