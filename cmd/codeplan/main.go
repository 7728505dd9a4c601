package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"codeplan/internal/adapters/editor"
	"codeplan/internal/adapters/filesystem"
	"codeplan/internal/adapters/tui"
	"codeplan/internal/config"
	"codeplan/internal/logging"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		settings = config.DefaultSettings()
	}

	dirFlag := flag.String("dir", settings.Dir, "project root (default: nearest folder with .codeplan)")
	flag.Parse()
	settings.Dir = *dirFlag

	dir, err := settings.BacklogDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The board owns the terminal; repository warnings would tear the view
	repo := filesystem.NewRepository(filesystem.WithLogger(logging.Discard()))
	editorOpener := editor.NewOpener(editor.WithEditor(settings.Editor))

	app := tui.NewApp(repo, dir, editorOpener)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
