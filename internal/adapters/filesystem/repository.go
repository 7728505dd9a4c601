package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"codeplan/internal/codec"
	"codeplan/internal/domain"
	"codeplan/internal/logging"
	"codeplan/internal/ports"
)

var _ ports.BacklogStore = (*Repository)(nil)

// Repository implements ports.BacklogStore on top of a ports.FileSystem
type Repository struct {
	fs     ports.FileSystem
	logger *log.Logger
	now    func() time.Time
}

// Option configures the Repository
type Option func(*Repository)

// WithFileSystem replaces the local disk
func WithFileSystem(fsys ports.FileSystem) Option {
	return func(r *Repository) {
		r.fs = fsys
	}
}

// WithLogger sets where skipped files and moves are reported
func WithLogger(logger *log.Logger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

// WithClock sets the clock used for created/updated dates and archive buckets
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// NewRepository creates a repository backed by the local disk
func NewRepository(opts ...Option) *Repository {
	r := &Repository{
		fs:     OSFS{},
		logger: logging.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LoadConfig reads config.yaml. A missing file yields nil without error.
func (r *Repository) LoadConfig(dir string) (*domain.Config, error) {
	configPath := filepath.Join(dir, domain.ConfigFile)

	data, err := r.fs.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := codec.ParseConfig(string(data), configPath)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadActive parses every item document directly inside dir
func (r *Repository) LoadActive(dir string) (*ports.LoadResult, error) {
	parser, err := r.parser(dir)
	if err != nil {
		return nil, err
	}

	entries, err := r.fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backlog folder: %w", err)
	}

	result := newLoadResult()
	for _, entry := range entries {
		if entry.IsDir() || !domain.IsItemDocument(entry.Name()) {
			continue
		}
		r.loadInto(result, parser, dir, entry.Name())
	}
	return result, nil
}

// LoadArchived parses every item document inside the archive buckets.
// A backlog without an archive folder has no archived items.
func (r *Repository) LoadArchived(dir string) (*ports.LoadResult, error) {
	parser, err := r.parser(dir)
	if err != nil {
		return nil, err
	}

	result := newLoadResult()
	err = r.walkArchive(dir, func(relPath string) bool {
		r.loadInto(result, parser, dir, relPath)
		return true
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ExistingIDs returns every id in use: active and archived file stems plus the
// ids declared inside those files
func (r *Repository) ExistingIDs(dir string) ([]string, error) {
	active, err := r.LoadActive(dir)
	if err != nil {
		return nil, err
	}
	archived, err := r.LoadArchived(dir)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var ids []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, res := range []*ports.LoadResult{active, archived} {
		for _, item := range res.Items {
			add(item.ID)
		}
		for _, p := range res.Paths {
			add(domain.StemID(path.Base(p)))
		}
		for _, f := range res.Failures {
			add(domain.StemID(path.Base(f.Path)))
		}
	}

	slices.Sort(ids)
	return ids, nil
}

// Create writes a new item with the next free id for its type prefix.
// A nil cfg is loaded from dir, falling back to the default config.
func (r *Repository) Create(dir string, draft domain.Draft, cfg *domain.Config) (*domain.Item, error) {
	if cfg == nil {
		loaded, err := r.LoadConfig(dir)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	existing, err := r.ExistingIDs(dir)
	if err != nil {
		return nil, err
	}

	prefix := domain.TypePrefix(draft.ItemType(), cfg.FallbackPrefix())
	id := domain.NextID(prefix, existing)
	item := draft.NewItem(id, r.now(), cfg)

	itemPath := filepath.Join(dir, item.Filename())
	exists, err := r.fs.Exists(itemPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check item file: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("item file already exists: %s", item.Filename())
	}

	saved, err := r.write(itemPath, item, cfg)
	if err != nil {
		return nil, err
	}

	r.logger.Info("created item", "id", saved.ID, "title", saved.Title)
	return saved, nil
}

// Update applies patch to the active item and bumps its updated date
func (r *Repository) Update(dir, id string, patch domain.Patch) (*domain.Item, error) {
	cfg, err := r.LoadConfig(dir)
	if err != nil {
		return nil, err
	}

	name, err := r.FindActive(dir, id)
	if err != nil {
		return nil, err
	}
	itemPath := filepath.Join(dir, name)

	item, err := r.readItem(itemPath, name, cfg)
	if err != nil {
		return nil, err
	}

	patch.Apply(&item)
	item.Updated = domain.Today(r.now())

	saved, err := r.write(itemPath, item, cfg)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("updated item", "id", saved.ID, "path", name)
	return saved, nil
}

// UpdateStatus moves the active item to status
func (r *Repository) UpdateStatus(dir, id, status string) (*domain.Item, error) {
	return r.Update(dir, id, domain.Patch{Status: &status})
}

// Delete removes the active item file. Archived items are left alone.
func (r *Repository) Delete(dir, id string) error {
	name, err := r.FindActive(dir, id)
	if err != nil {
		return err
	}
	if err := r.fs.Remove(filepath.Join(dir, name)); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	r.logger.Info("deleted item", "id", id, "path", name)
	return nil
}

// Archive moves the active item into the bucket for the current month
func (r *Repository) Archive(dir, id string) (string, error) {
	name, err := r.FindActive(dir, id)
	if err != nil {
		return "", err
	}

	now := r.now()
	bucket := domain.ArchiveFolderFor(now)
	if err := r.fs.MkdirAll(filepath.Join(dir, filepath.FromSlash(bucket))); err != nil {
		return "", fmt.Errorf("failed to create archive folder: %w", err)
	}

	relDest := domain.ArchivePath(name, now)
	dest := filepath.Join(dir, filepath.FromSlash(relDest))
	if err := r.ensureFree(dest, relDest); err != nil {
		return "", err
	}

	if err := r.fs.Rename(filepath.Join(dir, name), dest); err != nil {
		return "", fmt.Errorf("failed to archive item: %w", err)
	}

	r.logger.Info("archived item", "id", id, "to", relDest)
	return relDest, nil
}

// Restore moves the first archived file matching id back to the active folder.
// Buckets are scanned in directory listing order.
func (r *Repository) Restore(dir, id string) (string, error) {
	var found string
	err := r.walkArchive(dir, func(relPath string) bool {
		if domain.MatchesID(path.Base(relPath), id) {
			found = relPath
			return false
		}
		return true
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", &domain.NotFoundError{ID: id, Where: "archive"}
	}

	name := path.Base(found)
	dest := filepath.Join(dir, name)
	if err := r.ensureFree(dest, name); err != nil {
		return "", err
	}

	if err := r.fs.Rename(filepath.Join(dir, filepath.FromSlash(found)), dest); err != nil {
		return "", fmt.Errorf("failed to restore item: %w", err)
	}

	r.logger.Info("restored item", "id", id, "from", found)
	return name, nil
}

// FindActive returns the file name of the active document for id.
// When several files match, the first in name order wins.
func (r *Repository) FindActive(dir, id string) (string, error) {
	entries, err := r.fs.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read backlog folder: %w", err)
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() || !domain.IsItemDocument(entry.Name()) {
			continue
		}
		if domain.MatchesID(entry.Name(), id) {
			matches = append(matches, entry.Name())
		}
	}

	if len(matches) == 0 {
		return "", &domain.NotFoundError{ID: id, Where: "active"}
	}
	slices.Sort(matches)
	if len(matches) > 1 {
		r.logger.Warn("ambiguous item id, using first match", "id", id, "matches", matches)
	}
	return matches[0], nil
}

func (r *Repository) parser(dir string) (*codec.Parser, error) {
	cfg, err := r.LoadConfig(dir)
	if err != nil {
		return nil, err
	}
	return codec.NewParser(codec.WithStatuses(cfg.StatusList()), codec.WithClock(r.now)), nil
}

func (r *Repository) loadInto(result *ports.LoadResult, parser *codec.Parser, dir, relPath string) {
	data, err := r.fs.ReadFile(filepath.Join(dir, filepath.FromSlash(relPath)))
	if err == nil {
		var item domain.Item
		item, err = parser.Parse(string(data), relPath)
		if err == nil {
			result.Items = append(result.Items, item)
			result.Paths[item.ID] = relPath
			return
		}
	}

	r.logger.Warn("skipping item file", "path", relPath, "err", err)
	result.Failures = append(result.Failures, ports.LoadFailure{Path: relPath, Err: err})
}

// walkArchive calls visit with archive/<bucket>/<file> for every item document.
// visit returns false to stop.
func (r *Repository) walkArchive(dir string, visit func(relPath string) bool) error {
	archiveRoot := filepath.Join(dir, domain.ArchiveDir)

	buckets, err := r.fs.ReadDir(archiveRoot)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}

	for _, bucket := range buckets {
		if !bucket.IsDir() {
			continue
		}
		files, err := r.fs.ReadDir(filepath.Join(archiveRoot, bucket.Name()))
		if err != nil {
			return fmt.Errorf("failed to read archive bucket %s: %w", bucket.Name(), err)
		}
		for _, file := range files {
			if file.IsDir() || !domain.IsItemDocument(file.Name()) {
				continue
			}
			if !visit(path.Join(domain.ArchiveDir, bucket.Name(), file.Name())) {
				return nil
			}
		}
	}
	return nil
}

func (r *Repository) readItem(itemPath, source string, cfg *domain.Config) (domain.Item, error) {
	data, err := r.fs.ReadFile(itemPath)
	if err != nil {
		return domain.Item{}, fmt.Errorf("failed to read item: %w", err)
	}
	parser := codec.NewParser(codec.WithStatuses(cfg.StatusList()), codec.WithClock(r.now))
	return parser.Parse(string(data), source)
}

// write serializes item and checks that the document parses back before
// replacing the file, so a bad field never reaches disk
func (r *Repository) write(itemPath string, item domain.Item, cfg *domain.Config) (*domain.Item, error) {
	doc := codec.SerializeItem(item)

	parser := codec.NewParser(codec.WithStatuses(cfg.StatusList()), codec.WithClock(r.now))
	saved, err := parser.Parse(doc, filepath.Base(itemPath))
	if err != nil {
		var validation *domain.ValidationError
		if errors.As(err, &validation) {
			return nil, validation
		}
		return nil, err
	}

	if err := r.fs.WriteFile(itemPath, []byte(doc)); err != nil {
		return nil, fmt.Errorf("failed to write item: %w", err)
	}
	return &saved, nil
}

func (r *Repository) ensureFree(absPath, relPath string) error {
	exists, err := r.fs.Exists(absPath)
	if err != nil {
		return fmt.Errorf("failed to check destination: %w", err)
	}
	if exists {
		return fmt.Errorf("destination already exists: %s", relPath)
	}
	return nil
}

func newLoadResult() *ports.LoadResult {
	return &ports.LoadResult{Paths: make(map[string]string)}
}
