package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"codeplan/internal/domain"
)

func openTestIndex(t *testing.T) *Index {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	idx := NewIndex()
	require.NoError(t, idx.Open(filepath.Join(t.TempDir(), domain.FolderName)))
	t.Cleanup(func() { idx.Close() })
	return idx
}

func testEntries() []domain.IndexEntry {
	return []domain.IndexEntry{
		domain.NewIndexEntry("FEAT-001.md", domain.Item{
			ID: "FEAT-001", Title: "Dark mode", Status: "todo", Labels: []string{"ui", "theme"},
			Description: "Add a dark theme.",
		}, 1),
		domain.NewIndexEntry("BUG-001.md", domain.Item{
			ID: "BUG-001", Title: "Crash on save", Status: "in-progress",
			Description: "Stack dump in logs.", Tasks: []domain.Task{{Text: "Reproduce 100% on save"}},
		}, 2),
		domain.NewIndexEntry("archive/2024-12/FEAT-000.md", domain.Item{
			ID: "FEAT-000", Title: "Dark theme spike", Status: "done",
		}, 3),
	}
}

func TestIndex_OpenUsesDataHome(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	idx := NewIndex()
	require.NoError(t, idx.Open(t.TempDir()))
	defer idx.Close()

	require.Equal(t, filepath.Join(dataHome, "codeplan"), filepath.Dir(idx.Path()))
	require.FileExists(t, idx.Path())
}

func TestIndex_Sync(t *testing.T) {
	idx := openTestIndex(t)

	entries := append(testEntries(), domain.IndexEntry{Path: "", ID: "X-1"})
	stats, err := idx.Sync(entries)
	require.NoError(t, err)
	require.Equal(t, 4, stats.FilesScanned)
	require.Equal(t, 3, stats.EntriesAdded)
	require.Equal(t, 1, stats.Skipped)

	n, err := idx.Count()
	require.NoError(t, err)
	require.Equal(t, 3, n)

	// A second sync replaces the rows
	_, err = idx.Sync(testEntries()[:1])
	require.NoError(t, err)
	n, err = idx.Count()
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestIndex_Search(t *testing.T) {
	idx := openTestIndex(t)
	_, err := idx.Sync(testEntries())
	require.NoError(t, err)

	tests := []struct {
		name        string
		query       string
		limit       int
		wantIDs     []string
		wantMatched string
	}{
		{
			name:    "title substring, active before archived",
			query:   "dark",
			wantIDs: []string{"FEAT-001", "FEAT-000"},
		},
		{
			name:    "case insensitive id",
			query:   "bug-001",
			wantIDs: []string{"BUG-001"},
		},
		{
			name:        "label",
			query:       "theme",
			wantIDs:     []string{"FEAT-001", "FEAT-000"},
			wantMatched: "theme",
		},
		{
			name:        "task text",
			query:       "reproduce",
			wantIDs:     []string{"BUG-001"},
			wantMatched: "Reproduce 100% on save",
		},
		{
			name:    "characters in order",
			query:   "dkmd",
			wantIDs: []string{"FEAT-001"},
		},
		{
			name:    "percent is literal",
			query:   "0%",
			wantIDs: []string{"BUG-001"},
		},
		{
			name:    "limit",
			query:   "dark",
			limit:   1,
			wantIDs: []string{"FEAT-001"},
		},
		{
			name:  "no match",
			query: "zebra",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := idx.Search(tt.query, tt.limit)
			require.NoError(t, err)

			var ids []string
			for _, r := range results {
				ids = append(ids, r.ID)
			}
			require.Equal(t, tt.wantIDs, ids)

			if tt.wantMatched != "" {
				require.Equal(t, tt.wantMatched, results[0].MatchedText)
			}
		})
	}
}

func TestIndex_SearchReportsArchivedPath(t *testing.T) {
	idx := openTestIndex(t)
	_, err := idx.Sync(testEntries())
	require.NoError(t, err)

	results, err := idx.Search("spike", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.True(t, results[0].Archived)
	require.Equal(t, "archive/2024-12/FEAT-000.md", results[0].Path)
	require.Equal(t, "done", results[0].Status)
}

func TestSubsequencePattern(t *testing.T) {
	require.Equal(t, "%d%m%", subsequencePattern("dm"))
	require.Equal(t, `%1%0%0%\%%`, subsequencePattern("100%"))
	require.Equal(t, `%a%\_%b%`, subsequencePattern("a_b"))
}
