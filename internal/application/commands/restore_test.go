package commands

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"codeplan/internal/domain"
)

func TestRestoreItemCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		dir     string
		itemID  string
		wantErr bool
		errMsg  string
	}{
		{"valid", "/tmp/.codeplan", "FEAT-002", false, ""},
		{"missing folder", "", "FEAT-002", true, "backlog folder is required"},
		{"missing ID", "/tmp/.codeplan", "", true, "item ID is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &RestoreItemCommand{Dir: tt.dir, ItemID: tt.itemID}
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil || !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestRestoreItemCommand_Execute(t *testing.T) {
	dir := setupBacklog(t, map[string]string{
		"archive/2024-11/FEAT-002.md": itemDoc("FEAT-002", "Export", "done", "low"),
	})

	result, err := NewRestoreItemCommand(newTestRepo(), dir, "FEAT-002").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Path != "FEAT-002.md" {
		t.Errorf("unexpected destination: %s", result.Path)
	}
	if !fileExists(filepath.Join(dir, "FEAT-002.md")) {
		t.Error("restored file missing")
	}
	if fileExists(filepath.Join(dir, "archive", "2024-11", "FEAT-002.md")) {
		t.Error("archived copy should be gone")
	}
}

func TestRestoreItemCommand_NotInArchive(t *testing.T) {
	dir := setupBacklog(t, map[string]string{
		"FEAT-002.md": itemDoc("FEAT-002", "Export", "todo", "low"),
	})

	_, err := NewRestoreItemCommand(newTestRepo(), dir, "FEAT-002").Execute(context.Background())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !contains(err.Error(), "not found in archive") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDeleteItemCommand_Execute(t *testing.T) {
	dir := setupBacklog(t, map[string]string{
		"SPIKE-001.md": itemDoc("SPIKE-001", "Research", "backlog", "low"),
	})

	result, err := NewDeleteItemCommand(newTestRepo(), dir, "SPIKE-001").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Message != "Deleted SPIKE-001" {
		t.Errorf("unexpected message: %q", result.Message)
	}
	if fileExists(filepath.Join(dir, "SPIKE-001.md")) {
		t.Error("file should be removed")
	}

	if _, err := NewDeleteItemCommand(newTestRepo(), dir, "SPIKE-001").Execute(context.Background()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete should be not found, got %v", err)
	}
}
