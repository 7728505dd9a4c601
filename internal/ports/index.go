package ports

import "codeplan/internal/domain"

// ItemIndex is a derived cache used for search. The item files stay the
// source of truth; the index can be thrown away and rebuilt at any time.
type ItemIndex interface {
	// Lifecycle
	Open(backlogDir string) error
	Close() error

	// Sync replaces the indexed rows with entries
	Sync(entries []domain.IndexEntry) (*domain.SyncStats, error)

	// Queries
	Search(query string, limit int) ([]domain.SearchResult, error)
	Count() (int, error)
}
