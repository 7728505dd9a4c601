package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"codeplan/internal/domain"
)

var archiveDay = time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC)

func setupBacklog(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), domain.FolderName)
	require.NoError(t, os.MkdirAll(dir, 0755))

	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	return dir
}

func newTestRepo() *Repository {
	return NewRepository(WithClock(func() time.Time { return archiveDay }))
}

func itemDoc(id, title, status string) string {
	return "---\nid: " + id + "\ntitle: " + title + "\nstatus: " + status + "\ncreated: 2025-01-01\n---\n\n## Description\n\nBody of " + id + "\n"
}

func TestLoadActive_SkipsBadFiles(t *testing.T) {
	dir := setupBacklog(t, map[string]string{
		"TASK-001.md":                 itemDoc("TASK-001", "Good", "todo"),
		"TASK-002.md":                 "---\ntitle: No id\n---\n",
		"TASK-003.md":                 itemDoc("TASK-003", "Bad status", "someday"),
		"README.md":                   domain.ReadmeTemplate,
		"notes.txt":                   "ignored",
		"archive/2024-12/TASK-000.md": itemDoc("TASK-000", "Old", "done"),
	})

	result, err := newTestRepo().LoadActive(dir)
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	require.Equal(t, "TASK-001", result.Items[0].ID)
	require.Equal(t, "Body of TASK-001", result.Items[0].Description)
	require.Equal(t, "TASK-001.md", result.Paths["TASK-001"])

	require.Len(t, result.Failures, 2)
	var parseErr *domain.ParseError
	for _, f := range result.Failures {
		require.True(t, errors.As(f.Err, &parseErr), "failure for %s is %T", f.Path, f.Err)
		require.Equal(t, f.Path, parseErr.Source)
	}
}

func TestLoadActive_MissingFolder(t *testing.T) {
	_, err := newTestRepo().LoadActive(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestLoadActive_UsesConfigStatuses(t *testing.T) {
	dir := setupBacklog(t, map[string]string{
		"config.yaml": "project:\n  name: X\n  prefix: X\nstatuses: [open, closed]\n",
		"TASK-001.md": itemDoc("TASK-001", "Open", "open"),
		"TASK-002.md": itemDoc("TASK-002", "Default status", "todo"),
	})

	result, err := newTestRepo().LoadActive(dir)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.Len(t, result.Failures, 1)
	require.Equal(t, "TASK-002.md", result.Failures[0].Path)
}

func TestLoadConfig(t *testing.T) {
	repo := newTestRepo()

	dir := setupBacklog(t, nil)
	cfg, err := repo.LoadConfig(dir)
	require.NoError(t, err)
	require.Nil(t, cfg)

	dir = setupBacklog(t, map[string]string{"config.yaml": domain.DefaultConfigYAML})
	cfg, err = repo.LoadConfig(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, "TASK", cfg.Project.Prefix)

	dir = setupBacklog(t, map[string]string{"config.yaml": "statuses: {bad"})
	_, err = repo.LoadConfig(dir)
	var cfgErr *domain.ConfigError
	require.True(t, errors.As(err, &cfgErr))
}

func TestCreate(t *testing.T) {
	dir := setupBacklog(t, map[string]string{
		"FEAT-001.md":                 itemDoc("FEAT-001", "One", "todo"),
		"archive/2024-11/FEAT-004.md": itemDoc("FEAT-004", "Archived", "done"),
	})
	repo := newTestRepo()

	item, err := repo.Create(dir, domain.Draft{
		Title:  "Dark mode",
		Type:   domain.TypeFeature,
		Labels: []string{"ui"},
		Tasks:  []domain.Task{{Text: "Pick palette"}},
	}, nil)
	require.NoError(t, err)

	require.Equal(t, "FEAT-005", item.ID)
	require.Equal(t, "backlog", item.Status)
	require.Equal(t, domain.PriorityMedium, item.Priority)
	require.True(t, item.Created.Equal(domain.Today(archiveDay)))
	require.True(t, item.Updated.Equal(item.Created))

	data, err := os.ReadFile(filepath.Join(dir, "FEAT-005.md"))
	require.NoError(t, err)
	require.Contains(t, string(data), "title: Dark mode")
	require.Contains(t, string(data), "- [ ] Pick palette")

	bug, err := repo.Create(dir, domain.Draft{Title: "Crash", Type: domain.TypeBug}, nil)
	require.NoError(t, err)
	require.Equal(t, "BUG-001", bug.ID)

	task, err := repo.Create(dir, domain.Draft{Title: "Untyped"}, nil)
	require.NoError(t, err)
	require.Equal(t, "TASK-001", task.ID)
	require.Equal(t, domain.TypeTask, task.Type)
}

func TestCreate_CountsIDsDeclaredInsideFiles(t *testing.T) {
	dir := setupBacklog(t, map[string]string{
		"login-page.md": itemDoc("TASK-009", "Renamed file", "todo"),
	})

	item, err := newTestRepo().Create(dir, domain.Draft{Title: "Next"}, nil)
	require.NoError(t, err)
	require.Equal(t, "TASK-010", item.ID)
}

func TestCreate_RejectsInvalidDraft(t *testing.T) {
	dir := setupBacklog(t, nil)
	repo := newTestRepo()

	_, err := repo.Create(dir, domain.Draft{Title: "X", Status: "someday"}, nil)
	var validation *domain.ValidationError
	require.True(t, errors.As(err, &validation), "got %T: %v", err, err)
	require.True(t, validation.Has("status"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "invalid item must not be written")
}

func TestUpdate(t *testing.T) {
	dir := setupBacklog(t, map[string]string{
		"TASK-001.md": itemDoc("TASK-001", "Original", "todo"),
	})
	repo := newTestRepo()

	title := "Renamed"
	labels := []string{"a", "b"}
	item, err := repo.Update(dir, "TASK-001", domain.Patch{Title: &title, Labels: &labels})
	require.NoError(t, err)

	require.Equal(t, "TASK-001", item.ID)
	require.Equal(t, "Renamed", item.Title)
	require.Equal(t, []string{"a", "b"}, item.Labels)
	require.Equal(t, "todo", item.Status)
	require.Equal(t, "Body of TASK-001", item.Description)
	require.True(t, item.Updated.Equal(domain.Today(archiveDay)))

	reloaded, err := repo.LoadActive(dir)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	require.Equal(t, "Renamed", reloaded.Items[0].Title)
}

func TestUpdateStatus(t *testing.T) {
	dir := setupBacklog(t, map[string]string{
		"TASK-001.md": itemDoc("TASK-001", "Work", "todo"),
	})
	repo := newTestRepo()

	item, err := repo.UpdateStatus(dir, "TASK-001", "review")
	require.NoError(t, err)
	require.Equal(t, "review", item.Status)

	_, err = repo.UpdateStatus(dir, "TASK-001", "shipped")
	var validation *domain.ValidationError
	require.True(t, errors.As(err, &validation))

	_, err = repo.UpdateStatus(dir, "TASK-404", "done")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArchiveRestore_RoundTrip(t *testing.T) {
	original := itemDoc("BUG-002", "Flaky", "done")
	dir := setupBacklog(t, map[string]string{
		"BUG-002.md": original,
		"BUG-020.md": itemDoc("BUG-020", "Other", "todo"),
	})
	repo := newTestRepo()

	dest, err := repo.Archive(dir, "BUG-002")
	require.NoError(t, err)
	require.Equal(t, "archive/2025-01/BUG-002.md", dest)
	require.True(t, domain.IsArchived(dest))

	require.NoFileExists(t, filepath.Join(dir, "BUG-002.md"))
	require.FileExists(t, filepath.Join(dir, "BUG-020.md"))

	archived, err := repo.LoadArchived(dir)
	require.NoError(t, err)
	require.Len(t, archived.Items, 1)
	require.Equal(t, "BUG-002", archived.Items[0].ID)

	restored, err := repo.Restore(dir, "BUG-002")
	require.NoError(t, err)
	require.Equal(t, "BUG-002.md", restored)

	data, err := os.ReadFile(filepath.Join(dir, "BUG-002.md"))
	require.NoError(t, err)
	require.Equal(t, original, string(data))
	require.NoFileExists(t, filepath.Join(dir, "archive", "2025-01", "BUG-002.md"))
}

func TestArchive_NotFound(t *testing.T) {
	dir := setupBacklog(t, map[string]string{
		"TASK-10.md": itemDoc("TASK-10", "Ten", "todo"),
	})

	_, err := newTestRepo().Archive(dir, "TASK-1")

	var notFound *domain.NotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "TASK-1", notFound.ID)
	require.FileExists(t, filepath.Join(dir, "TASK-10.md"))
}

func TestArchive_RefusesToOverwrite(t *testing.T) {
	dir := setupBacklog(t, map[string]string{
		"TASK-001.md":                 itemDoc("TASK-001", "Active", "todo"),
		"archive/2025-01/TASK-001.md": itemDoc("TASK-001", "Stale copy", "done"),
	})

	_, err := newTestRepo().Archive(dir, "TASK-001")
	require.Error(t, err)
	require.FileExists(t, filepath.Join(dir, "TASK-001.md"))
}

func TestRestore_ScansBuckets(t *testing.T) {
	dir := setupBacklog(t, map[string]string{
		"archive/2024-10/TASK-001.md": itemDoc("TASK-001", "Old", "done"),
		"archive/2024-12/TASK-002.md": itemDoc("TASK-002", "Newer", "done"),
	})
	repo := newTestRepo()

	name, err := repo.Restore(dir, "TASK-002")
	require.NoError(t, err)
	require.Equal(t, "TASK-002.md", name)
	require.FileExists(t, filepath.Join(dir, "TASK-002.md"))

	_, err = repo.Restore(dir, "TASK-003")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRestore_NoArchiveFolder(t *testing.T) {
	dir := setupBacklog(t, nil)

	_, err := newTestRepo().Restore(dir, "TASK-001")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	dir := setupBacklog(t, map[string]string{
		"CHORE-001.md": itemDoc("CHORE-001", "Tidy", "todo"),
	})
	repo := newTestRepo()

	require.NoError(t, repo.Delete(dir, "CHORE-001"))
	require.NoFileExists(t, filepath.Join(dir, "CHORE-001.md"))
	require.ErrorIs(t, repo.Delete(dir, "CHORE-001"), domain.ErrNotFound)
}

func TestFindActive_PrefersFirstOfSeveral(t *testing.T) {
	dir := setupBacklog(t, map[string]string{
		"TASK-001-b.md": itemDoc("TASK-001", "B", "todo"),
		"TASK-001-a.md": itemDoc("TASK-001", "A", "todo"),
		"TASK-0011.md":  itemDoc("TASK-0011", "Other", "todo"),
	})

	name, err := newTestRepo().FindActive(dir, "TASK-001")
	require.NoError(t, err)
	require.Equal(t, "TASK-001-a.md", name)
}

func TestExistingIDs(t *testing.T) {
	dir := setupBacklog(t, map[string]string{
		"FEAT-001.md":                 itemDoc("FEAT-001", "One", "todo"),
		"broken.md":                   "no frontmatter",
		"archive/2024-01/FEAT-002.md": itemDoc("FEAT-002", "Two", "done"),
	})

	ids, err := newTestRepo().ExistingIDs(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"FEAT-001", "FEAT-002", "broken"}, ids)
}
