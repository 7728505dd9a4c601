package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"codeplan/internal/adapters/tui/views"
	"codeplan/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBoard ViewState = iota
	ViewCreate
	ViewConfirm
	ViewHelp
)

// App is the main TUI application model
type App struct {
	editor ports.EditorOpener

	state   ViewState
	board   *views.BoardModel
	create  *views.CreateModel
	confirm *views.ConfirmationModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application for the backlog folder dir.
// A nil editor disables editing from the board.
func NewApp(repo ports.BacklogStore, dir string, ed ports.EditorOpener, opts ...views.BoardOption) *App {
	return &App{
		editor:  ed,
		state:   ViewBoard,
		board:   views.NewBoardModel(repo, dir, opts...),
		create:  views.NewCreateModel(repo, dir, ed != nil),
		confirm: views.NewConfirmationModel(repo, dir),
		help:    views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.board.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.board.SetSize(msg.Width, msg.Height)
		a.create.SetSize(msg.Width, msg.Height)
		a.confirm.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToCreateMsg:
		a.state = ViewCreate
		a.create.Reset()
		return a, a.create.Init()

	case views.SwitchToConfirmMsg:
		a.state = ViewConfirm
		a.confirm.SetTarget(msg.Action, msg.Item)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBoardMsg:
		a.state = ViewBoard
		return a, a.board.Reload()

	case views.ActionDoneMsg:
		a.state = ViewBoard
		if msg.Err != nil {
			a.board.SetMessage(msg.Err.Error(), true)
		} else {
			a.board.SetMessage(msg.Message, false)
		}
		return a, a.board.Reload()

	case views.CreateErrMsg:
		a.create.SetMessage(msg.Err.Error(), true)
		return a, nil

	case views.OpenEditorMsg:
		a.state = ViewBoard
		if msg.Message != "" {
			a.board.SetMessage(msg.Message, false)
		}
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			a.board.SetMessage(msg.err.Error(), true)
		}
		return a, a.board.Reload()
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBoard:
		_, cmd = a.board.Update(msg)
	case ViewCreate:
		_, cmd = a.create.Update(msg)
	case ViewConfirm:
		_, cmd = a.confirm.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return a.board.Reload()
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewCreate:
		return a.create.View()
	case ViewConfirm:
		return a.confirm.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.board.View()
	}
}
