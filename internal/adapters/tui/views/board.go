package views

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"codeplan/internal/adapters/tui/styles"
	"codeplan/internal/application/commands"
	"codeplan/internal/domain"
	"codeplan/internal/ports"
)

const minColumnWidth = 22

// BoardKeyMap defines key bindings for the board view
type BoardKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Advance     key.Binding
	Regress     key.Binding
	New         key.Binding
	Edit        key.Binding
	Archive     key.Binding
	ArchiveDone key.Binding
	Delete      key.Binding
	Copy        key.Binding
	Reload      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var BoardKeys = BoardKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev column"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next column"),
	),
	Advance: key.NewBinding(
		key.WithKeys(">", "L", "shift+right"),
		key.WithHelp(">", "advance"),
	),
	Regress: key.NewBinding(
		key.WithKeys("<", "H", "shift+left"),
		key.WithHelp("<", "move back"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e", "enter"),
		key.WithHelp("e", "edit"),
	),
	Archive: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "archive"),
	),
	ArchiveDone: key.NewBinding(
		key.WithKeys("A"),
		key.WithHelp("A", "archive done"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy id"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type column struct {
	status string
	items  []domain.Item
}

// BoardModel shows the active backlog as one column per workflow status
type BoardModel struct {
	ViewState
	repo    ports.BacklogStore
	dir     string
	copyID  func(string) error
	title   string
	columns []column
	paths   map[string]string
	skipped int
	loaded  bool
	col     int
	row     int
}

// BoardOption configures the BoardModel
type BoardOption func(*BoardModel)

// WithClipboard replaces the system clipboard, for tests and headless use
func WithClipboard(copyID func(string) error) BoardOption {
	return func(m *BoardModel) {
		m.copyID = copyID
	}
}

// NewBoardModel creates a new board model for the backlog folder dir
func NewBoardModel(repo ports.BacklogStore, dir string, opts ...BoardOption) *BoardModel {
	m := &BoardModel{
		repo:   repo,
		dir:    dir,
		copyID: clipboard.WriteAll,
		title:  "Codeplan",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init loads the board
func (m *BoardModel) Init() tea.Cmd {
	return m.load
}

func (m *BoardModel) load() tea.Msg {
	result, err := commands.NewLoadBacklogCommand(m.repo, m.dir).Execute(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return boardLoadedMsg{result}
}

type boardLoadedMsg struct {
	result *commands.LoadBacklogResult
}

type errMsg struct {
	err error
}

type successMsg struct {
	message string
}

// Update handles messages for the board
func (m *BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case boardLoadedMsg:
		m.setBacklog(msg.result)
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case successMsg:
		m.SetMessage(msg.message, false)
		return m, m.load

	case copiedMsg:
		m.SetMessage("Copied "+msg.id, false)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, BoardKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BoardKeys.Up):
			if m.row > 0 {
				m.row--
			}
			return m, nil

		case key.Matches(msg, BoardKeys.Down):
			if m.row < len(m.currentItems())-1 {
				m.row++
			}
			return m, nil

		case key.Matches(msg, BoardKeys.Left):
			if m.col > 0 {
				m.col--
				m.clampRow()
			}
			return m, nil

		case key.Matches(msg, BoardKeys.Right):
			if m.col < len(m.columns)-1 {
				m.col++
				m.clampRow()
			}
			return m, nil

		case key.Matches(msg, BoardKeys.Advance), key.Matches(msg, BoardKeys.Regress):
			if item := m.SelectedItem(); item != nil {
				return m, m.shiftStatus(item.ID, key.Matches(msg, BoardKeys.Advance))
			}
			return m, nil

		case key.Matches(msg, BoardKeys.New):
			return m, func() tea.Msg { return SwitchToCreateMsg{} }

		case key.Matches(msg, BoardKeys.Edit):
			if item := m.SelectedItem(); item != nil {
				path := m.ItemPath(item.ID)
				return m, func() tea.Msg { return OpenEditorMsg{Path: path} }
			}
			return m, nil

		case key.Matches(msg, BoardKeys.Archive):
			if item := m.SelectedItem(); item != nil {
				return m, func() tea.Msg { return SwitchToConfirmMsg{Action: ConfirmArchive, Item: item} }
			}
			return m, nil

		case key.Matches(msg, BoardKeys.ArchiveDone):
			return m, func() tea.Msg { return SwitchToConfirmMsg{Action: ConfirmArchiveDone} }

		case key.Matches(msg, BoardKeys.Delete):
			if item := m.SelectedItem(); item != nil {
				return m, func() tea.Msg { return SwitchToConfirmMsg{Action: ConfirmDelete, Item: item} }
			}
			return m, nil

		case key.Matches(msg, BoardKeys.Copy):
			if item := m.SelectedItem(); item != nil {
				return m, m.copySelected(item.ID)
			}
			return m, nil

		case key.Matches(msg, BoardKeys.Reload):
			return m, m.Reload()

		case key.Matches(msg, BoardKeys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }
		}
	}

	return m, nil
}

func (m *BoardModel) setBacklog(result *commands.LoadBacklogResult) {
	m.loaded = true
	m.paths = result.Paths
	m.skipped = len(result.Failures)
	if result.HasConfig && result.Config.Project.Name != "" {
		m.title = result.Config.Project.Name
	}

	m.columns = m.columns[:0]
	index := make(map[string]int)
	for _, status := range result.Config.StatusList() {
		index[status] = len(m.columns)
		m.columns = append(m.columns, column{status: status})
	}
	for _, item := range result.Items {
		i, ok := index[item.Status]
		if !ok {
			continue
		}
		m.columns[i].items = append(m.columns[i].items, item)
	}
	for i := range m.columns {
		domain.SortByPriority(m.columns[i].items)
	}

	if m.col >= len(m.columns) {
		m.col = max(len(m.columns)-1, 0)
	}
	m.clampRow()
}

func (m *BoardModel) shiftStatus(id string, forward bool) tea.Cmd {
	return func() tea.Msg {
		result, err := commands.NewShiftStatusCommand(m.repo, m.dir, id, forward).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return successMsg{result.Message}
	}
}

func (m *BoardModel) copySelected(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.copyID(id); err != nil {
			return errMsg{fmt.Errorf("failed to copy %s: %w", id, err)}
		}
		return copiedMsg{id}
	}
}

type copiedMsg struct {
	id string
}

func (m *BoardModel) currentItems() []domain.Item {
	if m.col < 0 || m.col >= len(m.columns) {
		return nil
	}
	return m.columns[m.col].items
}

func (m *BoardModel) clampRow() {
	n := len(m.currentItems())
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

// SelectedItem returns the item under the cursor, or nil on an empty column
func (m *BoardModel) SelectedItem() *domain.Item {
	items := m.currentItems()
	if m.row >= 0 && m.row < len(items) {
		item := items[m.row]
		return &item
	}
	return nil
}

// ItemPath returns the absolute path of an active item's document
func (m *BoardModel) ItemPath(id string) string {
	rel, ok := m.paths[id]
	if !ok {
		rel = id + ".md"
	}
	return filepath.Join(m.dir, filepath.FromSlash(rel))
}

// Reload reloads the board from disk, keeping the cursor where it can
func (m *BoardModel) Reload() tea.Cmd {
	return m.load
}

// View renders the board
func (m *BoardModel) View() string {
	if !m.loaded {
		if m.MessageErr {
			return styles.App.Render(RenderMessage(m.Message, true))
		}
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(styles.Title.Render(m.title))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(m.summary()))
	b.WriteString("\n\n")

	width := minColumnWidth
	if len(m.columns) > 0 && m.Width > 0 {
		width = max((m.Width-4)/len(m.columns)-4, minColumnWidth)
	}

	cols := make([]string, 0, len(m.columns))
	for i, c := range m.columns {
		cols = append(cols, m.renderColumn(c, i == m.col, width))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	b.WriteString("\n")

	if m.Message != "" {
		b.WriteString("\n")
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
	}

	b.WriteString("\n")
	b.WriteString(RenderHelpLine(
		BoardKeys.Left, BoardKeys.Advance, BoardKeys.New, BoardKeys.Edit,
		BoardKeys.Archive, BoardKeys.Copy, BoardKeys.Help, BoardKeys.Quit,
	))

	return styles.App.Render(b.String())
}

func (m *BoardModel) summary() string {
	total := 0
	for _, c := range m.columns {
		total += len(c.items)
	}
	s := fmt.Sprintf("%d item(s)", total)
	if m.skipped > 0 {
		s += fmt.Sprintf(", %d file(s) skipped", m.skipped)
	}
	return s
}

func (m *BoardModel) renderColumn(c column, focused bool, width int) string {
	var b strings.Builder

	b.WriteString(styles.ColumnHeader.Render(fmt.Sprintf("%s (%d)", c.status, len(c.items))))
	b.WriteString("\n")

	if len(c.items) == 0 {
		b.WriteString(styles.MutedText.Render("empty"))
	}
	for i, item := range c.items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderCard(item, focused && i == m.row, width))
	}

	style := styles.Column
	if focused {
		style = styles.ColumnFocused
	}
	return style.Width(width).Render(b.String())
}

func renderCard(item domain.Item, selected bool, width int) string {
	title := truncate(item.Title, width-2)
	if selected {
		return styles.CardSelected.Render(item.ID) + " " + styles.PriorityMarker(item.Priority) + "\n" +
			styles.CardSelected.Render(title)
	}

	card := styles.CardID.Render(item.ID) + " " + styles.PriorityMarker(item.Priority) + "\n" +
		styles.CardTitle.Render(title)
	if done, total := item.Progress(); total > 0 {
		card += "\n" + styles.CardMeta.Render(fmt.Sprintf("[%d/%d]", done, total))
	}
	return card
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
