package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"enhancements/internal/adapters/tui/styles"
	"enhancements/internal/application"
	"enhancements/internal/application/commands"
)

// RibbonModel lists the ribbon buttons and runs the selected one
type RibbonModel struct {
	ViewState
	plugin *application.Plugin
	cursor int

	// ActiveFile is handed to ribbon actions as the active note
	ActiveFile string
}

// NewRibbonModel creates a new ribbon view model
func NewRibbonModel(plugin *application.Plugin) *RibbonModel {
	return &RibbonModel{plugin: plugin}
}

// Init initializes the model
func (m *RibbonModel) Init() tea.Cmd {
	return nil
}

// Cursor returns the index of the selected button
func (m *RibbonModel) Cursor() int {
	return m.cursor
}

// Update handles messages
func (m *RibbonModel) Update(msg tea.Msg) (*RibbonModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	buttons := m.plugin.RibbonButtons()
	switch {
	case key.Matches(keyMsg, UpKey):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, DownKey):
		if m.cursor < len(buttons)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, RunKey):
		if len(buttons) == 0 {
			return m, nil
		}
		return m, m.run(m.cursor)
	}
	return m, nil
}

func (m *RibbonModel) run(index int) tea.Cmd {
	plugin := m.plugin
	activeFile := m.ActiveFile
	label := plugin.RibbonButtons()[index].Label()
	return func() tea.Msg {
		cmd := commands.NewTriggerRibbonCommand(plugin, strconv.Itoa(index), activeFile)
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return ActionsDoneMsg{Label: label, Err: err}
		}
		return ActionsDoneMsg{Label: label, Count: len(result.Button.Actions)}
	}
}

// View renders the ribbon buttons
func (m *RibbonModel) View() string {
	buttons := m.plugin.RibbonButtons()
	if len(buttons) == 0 {
		return styles.MutedText.Render("No ribbon buttons configured in config.json")
	}

	var b strings.Builder
	for i, button := range buttons {
		line := fmt.Sprintf(" %-16s %s", button.Icon, truncate(button.HoverText, m.Width-24))
		if button.BuildErr != nil {
			line += styles.ErrorMsg.Render("  (inert)")
		}
		b.WriteString(RenderRow(line, i == m.cursor))
		b.WriteString("\n")
	}

	if m.ActiveFile != "" {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("active file: " + m.ActiveFile))
	}
	return b.String()
}
