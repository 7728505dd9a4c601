package ports

import "codeplan/internal/domain"

// LoadFailure records a document skipped during a bulk load
type LoadFailure struct {
	Path string // Relative to the backlog folder
	Err  error
}

// LoadResult is the outcome of loading many documents. A bad document never
// aborts the load; it lands in Failures instead.
type LoadResult struct {
	Items    []domain.Item
	Paths    map[string]string // item ID -> path relative to the backlog folder
	Failures []LoadFailure
}

// BacklogStore defines the operations front-ends run against a backlog folder.
// Every method takes the folder explicitly; implementations keep no current-project state.
type BacklogStore interface {
	// Loading
	LoadActive(dir string) (*LoadResult, error)
	LoadArchived(dir string) (*LoadResult, error)
	LoadConfig(dir string) (*domain.Config, error) // nil, nil when config.yaml is absent

	// Mutation
	Create(dir string, draft domain.Draft, cfg *domain.Config) (*domain.Item, error)
	Update(dir, id string, patch domain.Patch) (*domain.Item, error)
	UpdateStatus(dir, id, status string) (*domain.Item, error)
	Delete(dir, id string) error

	// Archive moves; both return the destination path relative to dir
	Archive(dir, id string) (string, error)
	Restore(dir, id string) (string, error)

	// Lookup
	FindActive(dir, id string) (string, error)
	ExistingIDs(dir string) ([]string, error)
}
