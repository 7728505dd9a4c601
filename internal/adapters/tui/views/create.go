package views

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"codeplan/internal/adapters/tui/styles"
	"codeplan/internal/application/commands"
	"codeplan/internal/domain"
	"codeplan/internal/ports"
)

const (
	fieldTitle = iota
	fieldType
	fieldPriority
	fieldLabels
)

// CreateModel is the model for the new item form
type CreateModel struct {
	ViewState
	repo         ports.BacklogStore
	dir          string
	openInEditor bool
	form         *InputForm
}

// NewCreateModel creates a new create view model
func NewCreateModel(repo ports.BacklogStore, dir string, openInEditor bool) *CreateModel {
	return &CreateModel{
		repo:         repo,
		dir:          dir,
		openInEditor: openInEditor,
		form: NewInputForm(
			NewInputField("Title:", "What needs doing", 120),
			NewInputField("Type:", string(domain.DefaultType)+" (feature, bug, task, chore, spike)", 10),
			NewInputField("Priority:", string(domain.DefaultPriority)+" (low, medium, high, critical)", 10),
			NewInputField("Labels:", "comma separated", 100),
		),
	}
}

// Reset clears the form for a new item
func (m *CreateModel) Reset() {
	m.ClearMessage()
	m.form.Reset()
}

// Init initializes the create view
func (m *CreateModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the create view
func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToBoardMsg{} }
		case key.Matches(msg, m.form.Keys.Submit):
			return m, m.create(m.Draft())
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

// Draft builds a draft from the form fields
func (m *CreateModel) Draft() domain.Draft {
	draft := domain.Draft{
		Title:    m.form.Value(fieldTitle),
		Type:     domain.ItemType(strings.ToLower(m.form.Value(fieldType))),
		Priority: domain.Priority(strings.ToLower(m.form.Value(fieldPriority))),
	}
	for _, label := range strings.Split(m.form.Value(fieldLabels), ",") {
		if label = strings.TrimSpace(label); label != "" {
			draft.Labels = append(draft.Labels, label)
		}
	}
	return draft
}

func (m *CreateModel) create(draft domain.Draft) tea.Cmd {
	return func() tea.Msg {
		result, err := commands.NewCreateItemCommand(m.repo, m.dir, draft).Execute(context.Background())
		if err != nil {
			return CreateErrMsg{Err: err}
		}
		if m.openInEditor {
			return OpenEditorMsg{
				Path:    filepath.Join(m.dir, result.Item.Filename()),
				Message: result.Message,
			}
		}
		return ActionDoneMsg{Message: result.Message}
	}
}

// CreateErrMsg keeps the form open with the error shown
type CreateErrMsg struct {
	Err error
}

// View renders the create view
func (m *CreateModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("New Item"))
	b.WriteString("\n\n")
	b.WriteString(styles.Subtitle.Render("Empty type and priority take their defaults."))
	b.WriteString("\n\n")

	for i := range m.form.Fields {
		b.WriteString(m.form.RenderField(i))
		b.WriteString("\n\n")
	}

	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n\n")
	}

	b.WriteString(m.form.RenderHelp("create"))

	return styles.App.Render(b.String())
}
