package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"codeplan/internal/adapters/tui/styles"
	"codeplan/internal/application/commands"
	"codeplan/internal/domain"
	"codeplan/internal/ports"
)

// ConfirmAction is a board action that needs a yes before it runs
type ConfirmAction int

const (
	ConfirmArchive ConfirmAction = iota
	ConfirmDelete
	ConfirmArchiveDone
)

// ConfirmKeyMap defines key bindings for confirmation views
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmationModel asks before archiving or deleting
type ConfirmationModel struct {
	ViewState
	repo   ports.BacklogStore
	dir    string
	Action ConfirmAction
	Target *domain.Item
	Keys   ConfirmKeyMap
}

// NewConfirmationModel creates a new confirmation model with default keys
func NewConfirmationModel(repo ports.BacklogStore, dir string) *ConfirmationModel {
	return &ConfirmationModel{
		repo: repo,
		dir:  dir,
		Keys: DefaultConfirmKeys,
	}
}

// SetTarget sets the action and the item it applies to
func (m *ConfirmationModel) SetTarget(action ConfirmAction, item *domain.Item) {
	m.Action = action
	m.Target = item
}

// Init initializes the confirmation view
func (m *ConfirmationModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the confirmation view
func (m *ConfirmationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToBoardMsg{} }
		case key.Matches(msg, m.Keys.Confirm):
			return m, m.run
		}
	}

	return m, nil
}

func (m *ConfirmationModel) run() tea.Msg {
	ctx := context.Background()

	switch m.Action {
	case ConfirmArchiveDone:
		result, err := commands.NewArchiveDoneCommand(m.repo, m.dir).Execute(ctx)
		if err != nil {
			return ActionDoneMsg{Err: err}
		}
		return ActionDoneMsg{Message: result.Message}

	case ConfirmDelete:
		if m.Target == nil {
			return ActionDoneMsg{}
		}
		result, err := commands.NewDeleteItemCommand(m.repo, m.dir, m.Target.ID).Execute(ctx)
		if err != nil {
			return ActionDoneMsg{Err: err}
		}
		return ActionDoneMsg{Message: result.Message}

	default:
		if m.Target == nil {
			return ActionDoneMsg{}
		}
		result, err := commands.NewArchiveItemCommand(m.repo, m.dir, m.Target.ID).Execute(ctx)
		if err != nil {
			return ActionDoneMsg{Err: err}
		}
		return ActionDoneMsg{Message: result.Message}
	}
}

// View renders the confirmation view
func (m *ConfirmationModel) View() string {
	var b strings.Builder

	switch m.Action {
	case ConfirmArchiveDone:
		b.WriteString(styles.Title.Render("Archive Done Items"))
		b.WriteString("\n\n")
		b.WriteString(styles.MutedText.Render("Every item in the last workflow status moves to the archive."))
	case ConfirmDelete:
		b.WriteString(styles.Title.Render("Delete Confirmation"))
		b.WriteString("\n\n")
		b.WriteString(styles.ErrorMsg.Render("This action cannot be undone!"))
		b.WriteString("\n\n")
		b.WriteString(renderTarget(m.Target, "Delete"))
	default:
		b.WriteString(styles.Title.Render("Archive Confirmation"))
		b.WriteString("\n\n")
		b.WriteString(renderTarget(m.Target, "Archive"))
	}

	b.WriteString("\n\n")
	b.WriteString(RenderConfirmPrompt("Are you sure?"))

	return styles.App.Render(b.String())
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}

func renderTarget(item *domain.Item, action string) string {
	if item == nil {
		return ""
	}
	return styles.InputLabel.Render(action+" "+string(item.Type)+":") + "\n  " + item.ID + " " + item.Title
}
