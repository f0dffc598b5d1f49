package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"enhancements/internal/adapters/tui/styles"
)

// HelpModel represents the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the model
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *HelpModel) Update(msg tea.Msg) (*HelpModel, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		// Any key returns to the previous view
		return m, send(SwitchBackMsg{})
	}
	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Enhancements - Help"))
	b.WriteString("\n\n")

	section := func(title string, bindings ...key.Binding) {
		b.WriteString(styles.Subtitle.Render(title))
		b.WriteString("\n")
		for _, binding := range bindings {
			help := binding.Help()
			b.WriteString("  ")
			b.WriteString(styles.HelpKey.Render(padRight(help.Key, 12)))
			b.WriteString(styles.HelpDesc.Render(help.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	section("Navigation", UpKey, DownKey, TabKey)
	section("Ribbon", RunKey)
	section("Code blocks",
		codeBlocksKeys.Left, codeBlocksKeys.Right, RunKey,
		codeBlocksKeys.Copy, codeBlocksKeys.Edit, codeBlocksKeys.Open,
		codeBlocksKeys.Note, codeBlocksKeys.Reload,
	)
	section("General", HelpKey, QuitKey)

	b.WriteString(styles.MutedText.Render("Press any key to go back"))
	return styles.App.Render(b.String())
}

// CodeBlocksHelp lists the bindings shown under the code-block view
func CodeBlocksHelp() []key.Binding {
	return []key.Binding{RunKey, codeBlocksKeys.Copy, codeBlocksKeys.Edit, codeBlocksKeys.Note}
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
