package views

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

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

// Keys shared by the list views
var (
	UpKey = key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	)
	DownKey = key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	)
	RunKey = key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "run"),
	)
	TabKey = key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch view"),
	)
	HelpKey = key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	)
	QuitKey = key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	)
)

// ActionsDoneMsg reports the outcome of a button's action sequence
type ActionsDoneMsg struct {
	Label string
	Count int
	Err   error
}

// Messages for view switching
type SwitchToHelpMsg struct{}

type SwitchBackMsg struct{}

// OpenEditorMsg asks the app to open Path in $EDITOR
type OpenEditorMsg struct {
	Path string
}

// OpenObsidianMsg asks the app to open Path in Obsidian
type OpenObsidianMsg struct {
	Path string
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
