package domain

import (
	"strings"
	"time"
)

// IndexEntry is a cached row describing one item document
type IndexEntry struct {
	Path     string // Relative to the backlog folder (primary key)
	ID       string
	Title    string
	Type     ItemType
	Status   string
	Priority Priority
	Labels   []string
	Body     string // description plus task text, for content search
	Archived bool
	Mtime    int64
}

// NewIndexEntry projects an item into an index row
func NewIndexEntry(relPath string, item Item, mtime int64) IndexEntry {
	var body strings.Builder
	body.WriteString(item.Description)
	for _, t := range item.Tasks {
		body.WriteString("\n")
		body.WriteString(t.Text)
	}

	return IndexEntry{
		Path:     relPath,
		ID:       item.ID,
		Title:    item.Title,
		Type:     item.Type,
		Status:   item.Status,
		Priority: item.Priority,
		Labels:   item.Labels,
		Body:     body.String(),
		Archived: IsArchived(relPath),
		Mtime:    mtime,
	}
}

// SearchResult represents a search match
type SearchResult struct {
	ID          string
	Title       string
	Status      string
	Path        string
	Archived    bool
	MatchedText string
}

// SyncStats holds statistics from an index rebuild
type SyncStats struct {
	EntriesAdded int
	FilesScanned int
	Skipped      int
	Duration     time.Duration
}
