package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeplan/internal/adapters/filesystem"
	"codeplan/internal/domain"
)

var testDay = time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC)

func newTestRepo() *filesystem.Repository {
	return filesystem.NewRepository(filesystem.WithClock(func() time.Time { return testDay }))
}

// setupBacklog writes files into a fresh backlog folder and returns its path
func setupBacklog(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), domain.FolderName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create backlog: %v", err)
	}
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("failed to create %s: %v", filepath.Dir(p), err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func itemDoc(id, title, status, priority string) string {
	return "---\nid: " + id + "\ntitle: " + title + "\nstatus: " + status +
		"\npriority: " + priority + "\ncreated: 2025-01-01\n---\n\n## Description\n\nAbout " + title + "\n"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 ||
		(len(s) > 0 && len(substr) > 0 && findSubstring(s, substr)))
}

func findSubstring(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
