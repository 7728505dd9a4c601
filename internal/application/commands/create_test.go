package commands

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"codeplan/internal/application"
	"codeplan/internal/domain"
)

func TestCreateItemCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		draft   domain.Draft
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid draft",
			draft:   domain.Draft{Title: "Dark mode", Type: domain.TypeFeature},
			wantErr: false,
		},
		{
			name:    "defaults only",
			draft:   domain.Draft{Title: "Anything"},
			wantErr: false,
		},
		{
			name:    "empty title",
			draft:   domain.Draft{Title: "  "},
			wantErr: true,
			errMsg:  "title is required",
		},
		{
			name:    "unknown type",
			draft:   domain.Draft{Title: "X", Type: "epic"},
			wantErr: true,
			errMsg:  "unknown type: epic",
		},
		{
			name:    "unknown priority",
			draft:   domain.Draft{Title: "X", Priority: "urgent"},
			wantErr: true,
			errMsg:  "unknown priority: urgent",
		},
		{
			name:    "blank label",
			draft:   domain.Draft{Title: "X", Labels: []string{"ui", ""}},
			wantErr: true,
			errMsg:  "labels cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &CreateItemCommand{Dir: "/tmp/.codeplan", Draft: tt.draft}
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestCreateItemCommand_Execute(t *testing.T) {
	dir := setupBacklog(t, map[string]string{
		"BUG-004.md": itemDoc("BUG-004", "Crash", "todo", "high"),
	})

	cmd := NewCreateItemCommand(newTestRepo(), dir, domain.Draft{
		Title:  "Login fails",
		Type:   domain.TypeBug,
		Labels: []string{"auth"},
	})
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Item.ID != "BUG-005" {
		t.Errorf("expected BUG-005, got %s", result.Item.ID)
	}
	if result.Item.Status != "backlog" || result.Item.Priority != domain.PriorityMedium {
		t.Errorf("defaults not applied: status=%s priority=%s", result.Item.Status, result.Item.Priority)
	}
	if !fileExists(filepath.Join(dir, "BUG-005.md")) {
		t.Error("item file was not written")
	}
	if result.Message != `Created bug "Login fails" with ID BUG-005` {
		t.Errorf("unexpected message: %q", result.Message)
	}
}

func TestCreateItemCommand_RejectsStatusOutsideConfig(t *testing.T) {
	dir := setupBacklog(t, map[string]string{
		"config.yaml": "project:\n  name: X\n  prefix: X\nstatuses: [open, closed]\n",
	})

	cmd := NewCreateItemCommand(newTestRepo(), dir, domain.Draft{Title: "Thing", Status: "review"})
	_, err := cmd.Execute(context.Background())

	var valErr *application.ValidationError
	if !errors.As(err, &valErr) || valErr.Field != "status" {
		t.Fatalf("expected status ValidationError, got %v", err)
	}
}
