package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"codeplan/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBoardMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Codeplan Help"))
	b.WriteString("\n\n")
	b.WriteString(styles.Subtitle.Render("Backlog board, one column per workflow status"))
	b.WriteString("\n\n")

	b.WriteString(helpSection("Navigation",
		BoardKeys.Up, BoardKeys.Down, BoardKeys.Left, BoardKeys.Right,
	))
	b.WriteString(helpSection("Workflow",
		BoardKeys.Advance, BoardKeys.Regress, BoardKeys.Archive, BoardKeys.ArchiveDone,
	))
	b.WriteString(helpSection("Items",
		BoardKeys.New, BoardKeys.Edit, BoardKeys.Copy, BoardKeys.Delete,
	))
	b.WriteString(helpSection("General",
		BoardKeys.Reload, BoardKeys.Help, BoardKeys.Quit,
	))

	b.WriteString(styles.MutedText.Render("Items live in .codeplan/ as markdown files; edits made outside show up on reload."))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpSection(title string, bindings ...key.Binding) string {
	var b strings.Builder
	b.WriteString(styles.InputLabel.Render(title))
	b.WriteString("\n")
	for _, kb := range bindings {
		help := kb.Help()
		b.WriteString("  " + styles.HelpKey.Render(padRight(help.Key, 12)) + styles.HelpDesc.Render(help.Desc) + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
