package views

import "codeplan/internal/domain"

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages for view switching
type (
	SwitchToCreateMsg struct{}

	SwitchToHelpMsg struct{}

	// SwitchToConfirmMsg asks the user before a destructive action. Item is nil for ArchiveDone.
	SwitchToConfirmMsg struct {
		Action ConfirmAction
		Item   *domain.Item
	}

	// SwitchToBoardMsg returns to the board, reloading it
	SwitchToBoardMsg struct{}
)

// ActionDoneMsg reports the outcome of an action started outside the board
type ActionDoneMsg struct {
	Message string
	Err     error
}

// OpenEditorMsg requests opening a file in the editor
type OpenEditorMsg struct {
	Path    string
	Message string
}
