package domain

import (
	"slices"
	"time"
)

// Draft holds the caller-supplied fields of an item that does not exist yet.
// Empty Type, Status and Priority take their defaults.
type Draft struct {
	Title       string    `json:"title"`
	Type        ItemType  `json:"type,omitempty"`
	Status      string    `json:"status,omitempty"`
	Priority    Priority  `json:"priority,omitempty"`
	Sprint      *int      `json:"sprint,omitempty"`
	Points      *int      `json:"points,omitempty"`
	Assignee    string    `json:"assignee,omitempty"`
	Labels      []string  `json:"labels,omitempty"`
	Due         time.Time `json:"due,omitzero"`
	Parent      string    `json:"parent,omitempty"`
	Description string    `json:"description,omitempty"`
	Tasks       []Task    `json:"tasks,omitempty"`
}

// ItemType returns the draft type or the default
func (d Draft) ItemType() ItemType {
	if d.Type == "" {
		return DefaultType
	}
	return d.Type
}

// NewItem builds the item a draft describes. created and updated are both today.
func (d Draft) NewItem(id string, today time.Time, cfg *Config) Item {
	item := Item{
		ID:          id,
		Title:       d.Title,
		Type:        d.ItemType(),
		Status:      d.Status,
		Priority:    d.Priority,
		Sprint:      d.Sprint,
		Points:      d.Points,
		Assignee:    d.Assignee,
		Labels:      slices.Clone(d.Labels),
		Created:     Today(today),
		Updated:     Today(today),
		Parent:      d.Parent,
		Description: d.Description,
		Tasks:       slices.Clone(d.Tasks),
	}
	if !d.Due.IsZero() {
		item.Due = Today(d.Due)
	}
	if item.Status == "" {
		item.Status = cfg.StatusList()[0]
	}
	if item.Priority == "" {
		item.Priority = DefaultPriority
	}
	return item
}

// Patch lists the fields an update replaces. Nil fields are left alone.
// A zero Due clears the due date; an empty Assignee or Parent clears it.
type Patch struct {
	Title       *string    `json:"title,omitempty"`
	Type        *ItemType  `json:"type,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	Sprint      *int       `json:"sprint,omitempty"`
	Points      *int       `json:"points,omitempty"`
	Assignee    *string    `json:"assignee,omitempty"`
	Labels      *[]string  `json:"labels,omitempty"`
	Due         *time.Time `json:"due,omitempty"`
	Parent      *string    `json:"parent,omitempty"`
	Description *string    `json:"description,omitempty"`
	Tasks       *[]Task    `json:"tasks,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// Apply copies the set fields onto item. The ID never changes.
func (p Patch) Apply(item *Item) {
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Type != nil {
		item.Type = *p.Type
	}
	if p.Status != nil {
		item.Status = *p.Status
	}
	if p.Priority != nil {
		item.Priority = *p.Priority
	}
	if p.Sprint != nil {
		item.Sprint = IntPtr(*p.Sprint)
	}
	if p.Points != nil {
		item.Points = IntPtr(*p.Points)
	}
	if p.Assignee != nil {
		item.Assignee = *p.Assignee
	}
	if p.Labels != nil {
		item.Labels = slices.Clone(*p.Labels)
	}
	if p.Due != nil {
		item.Due = time.Time{}
		if !p.Due.IsZero() {
			item.Due = Today(*p.Due)
		}
	}
	if p.Parent != nil {
		item.Parent = *p.Parent
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Tasks != nil {
		item.Tasks = slices.Clone(*p.Tasks)
	}
}
