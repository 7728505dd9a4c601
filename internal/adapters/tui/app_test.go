package tui

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"codeplan/internal/adapters/filesystem"
	"codeplan/internal/adapters/tui/views"
	"codeplan/internal/domain"
)

type fakeEditor struct {
	err error
}

func (f *fakeEditor) OpenFile(string) error { return f.err }

func (f *fakeEditor) Command(path string) (*exec.Cmd, error) {
	if f.err != nil {
		return nil, f.err
	}
	return exec.Command("true", path), nil
}

func newTestApp(t *testing.T, ed *fakeEditor) *App {
	t.Helper()

	dir := filepath.Join(t.TempDir(), domain.FolderName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	doc := "---\nid: FEAT-001\ntitle: Dark mode\nstatus: backlog\ncreated: 2025-01-01\n---\n"
	if err := os.WriteFile(filepath.Join(dir, "FEAT-001.md"), []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	day := time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC)
	repo := filesystem.NewRepository(filesystem.WithClock(func() time.Time { return day }))

	var app *App
	if ed == nil {
		app = NewApp(repo, dir, nil)
	} else {
		app = NewApp(repo, dir, ed)
	}
	app.Update(app.Init()())
	return app
}

func TestApp_SwitchesViews(t *testing.T) {
	app := newTestApp(t, nil)

	tests := []struct {
		name  string
		msg   tea.Msg
		want  ViewState
		title string
	}{
		{"help", views.SwitchToHelpMsg{}, ViewHelp, "Codeplan Help"},
		{"back to board", views.SwitchToBoardMsg{}, ViewBoard, "backlog (1)"},
		{"create", views.SwitchToCreateMsg{}, ViewCreate, "New Item"},
		{"confirm", views.SwitchToConfirmMsg{Action: views.ConfirmArchiveDone}, ViewConfirm, "Archive Done Items"},
		{"action done", views.ActionDoneMsg{Message: "Archived 0 done item(s)"}, ViewBoard, "Archived 0 done item(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.Update(tt.msg)
			if app.state != tt.want {
				t.Fatalf("state = %v, want %v", app.state, tt.want)
			}
			if view := app.View(); !strings.Contains(view, tt.title) {
				t.Errorf("view missing %q:\n%s", tt.title, view)
			}
		})
	}
}

func TestApp_ActionErrorShownOnBoard(t *testing.T) {
	app := newTestApp(t, nil)
	app.Update(views.SwitchToHelpMsg{})

	app.Update(views.ActionDoneMsg{Err: errors.New("item FEAT-009 not found")})

	if app.state != ViewBoard {
		t.Fatalf("expected board, got %v", app.state)
	}
	if !strings.Contains(app.View(), "item FEAT-009 not found") {
		t.Error("error should be shown on the board")
	}
}

func TestApp_OpenEditor(t *testing.T) {
	app := newTestApp(t, &fakeEditor{})

	_, cmd := app.Update(views.OpenEditorMsg{Path: "FEAT-001.md", Message: "Created"})
	if cmd == nil {
		t.Fatal("expected exec command")
	}

	failing := newTestApp(t, &fakeEditor{err: errors.New("no editor found")})
	_, cmd = failing.Update(views.OpenEditorMsg{Path: "FEAT-001.md"})
	msg := cmd()
	if _, ok := msg.(editorFinishedMsg); !ok {
		t.Fatalf("expected editorFinishedMsg, got %T", msg)
	}
	failing.Update(msg)
	if !strings.Contains(failing.View(), "no editor found") {
		t.Error("editor error should be shown on the board")
	}
}
