package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"enhancements/internal/adapters/tui/styles"
	"enhancements/internal/application"
	"enhancements/internal/application/commands"
	"enhancements/internal/domain"
	"enhancements/internal/ports"
)

type codeBlocksKeyMap struct {
	Left   key.Binding
	Right  key.Binding
	Copy   key.Binding
	Edit   key.Binding
	Open   key.Binding
	Note   key.Binding
	Reload key.Binding
	Cancel key.Binding
}

var codeBlocksKeys = codeBlocksKeyMap{
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev button"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next button"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy block"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit note"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open in Obsidian"),
	),
	Note: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "choose note"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rescan"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// NoteLoadedMsg carries a freshly scanned note
type NoteLoadedMsg struct {
	Result *commands.ListCodeBlocksResult
	Err    error
}

// CopiedMsg reports a clipboard copy
type CopiedMsg struct {
	Err error
}

// clipboardWrite is swapped in tests
var clipboardWrite = clipboard.WriteAll

// CodeBlocksModel lists a note's code blocks with the buttons each one shows
type CodeBlocksModel struct {
	ViewState
	plugin  *application.Plugin
	scanner ports.NoteScanner

	note    string
	entries []commands.CodeBlockEntry
	cursor  int
	button  int

	prompting bool
	input     textinput.Model
}

// NewCodeBlocksModel creates a new code-block view model for note, which
// may be empty until the user picks one.
func NewCodeBlocksModel(plugin *application.Plugin, scanner ports.NoteScanner, note string) *CodeBlocksModel {
	ti := textinput.New()
	ti.Placeholder = "path/to/note.md"
	ti.CharLimit = 256
	ti.Width = 50

	return &CodeBlocksModel{
		plugin:    plugin,
		scanner:   scanner,
		note:      note,
		input:     ti,
		prompting: note == "",
	}
}

// Init scans the initial note, or focuses the note prompt
func (m *CodeBlocksModel) Init() tea.Cmd {
	if m.prompting {
		return m.input.Focus()
	}
	return m.Load(m.note)
}

// Note returns the absolute path of the loaded note
func (m *CodeBlocksModel) Note() string {
	return m.note
}

// Prompting reports whether the note prompt has focus
func (m *CodeBlocksModel) Prompting() bool {
	return m.prompting
}

// Entries returns the scanned code blocks
func (m *CodeBlocksModel) Entries() []commands.CodeBlockEntry {
	return m.entries
}

// Selected returns the highlighted block and button indexes
func (m *CodeBlocksModel) Selected() (block, button int) {
	return m.cursor, m.button
}

// Load scans note for code blocks
func (m *CodeBlocksModel) Load(note string) tea.Cmd {
	plugin, scanner := m.plugin, m.scanner
	return func() tea.Msg {
		result, err := commands.NewListCodeBlocksCommand(plugin, scanner, note).Execute(context.Background())
		return NoteLoadedMsg{Result: result, Err: err}
	}
}

// Update handles messages
func (m *CodeBlocksModel) Update(msg tea.Msg) (*CodeBlocksModel, tea.Cmd) {
	switch msg := msg.(type) {
	case NoteLoadedMsg:
		if msg.Err != nil {
			m.SetMessage(msg.Err.Error(), true)
			return m, nil
		}
		m.ClearMessage()
		m.note = msg.Result.Path
		m.entries = msg.Result.Entries
		m.cursor, m.button = 0, 0
		return m, nil

	case CopiedMsg:
		if msg.Err != nil {
			m.SetMessage(fmt.Sprintf("copy failed: %v", msg.Err), true)
		} else {
			m.SetMessage("Copied code block", false)
		}
		return m, nil

	case tea.KeyMsg:
		if m.prompting {
			return m.updatePrompt(msg)
		}
		return m.updateList(msg)
	}

	if m.prompting {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *CodeBlocksModel) updatePrompt(msg tea.KeyMsg) (*CodeBlocksModel, tea.Cmd) {
	switch {
	case key.Matches(msg, codeBlocksKeys.Cancel):
		if m.note == "" {
			return m, nil
		}
		m.prompting = false
		m.input.Blur()
		return m, nil
	case msg.Type == tea.KeyEnter:
		note := strings.TrimSpace(m.input.Value())
		if note == "" {
			m.SetMessage("Note path is required", true)
			return m, nil
		}
		m.prompting = false
		m.input.Blur()
		m.input.SetValue("")
		return m, m.Load(note)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *CodeBlocksModel) updateList(msg tea.KeyMsg) (*CodeBlocksModel, tea.Cmd) {
	switch {
	case key.Matches(msg, codeBlocksKeys.Note):
		m.prompting = true
		return m, m.input.Focus()
	case key.Matches(msg, codeBlocksKeys.Reload):
		if m.note == "" {
			return m, nil
		}
		return m, m.Load(m.note)
	case key.Matches(msg, codeBlocksKeys.Edit):
		if m.note == "" {
			return m, nil
		}
		return m, send(OpenEditorMsg{Path: m.note})
	case key.Matches(msg, codeBlocksKeys.Open):
		if m.note == "" {
			return m, nil
		}
		return m, send(OpenObsidianMsg{Path: m.note})
	}

	if len(m.entries) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, UpKey):
		if m.cursor > 0 {
			m.cursor--
			m.button = 0
		}
	case key.Matches(msg, DownKey):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
			m.button = 0
		}
	case key.Matches(msg, codeBlocksKeys.Left):
		if m.button > 0 {
			m.button--
		}
	case key.Matches(msg, codeBlocksKeys.Right):
		if m.button < len(m.entries[m.cursor].Buttons)-1 {
			m.button++
		}
	case key.Matches(msg, codeBlocksKeys.Copy):
		text := m.entries[m.cursor].Block.Text
		return m, func() tea.Msg {
			return CopiedMsg{Err: clipboardWrite(text)}
		}
	case key.Matches(msg, RunKey):
		entry := m.entries[m.cursor]
		if len(entry.Buttons) == 0 {
			m.SetMessage(fmt.Sprintf("No buttons for %s blocks", entry.Block.Language), true)
			return m, nil
		}
		return m, m.run(entry, m.button)
	}
	return m, nil
}

func (m *CodeBlocksModel) run(entry commands.CodeBlockEntry, button int) tea.Cmd {
	plugin, scanner, note := m.plugin, m.scanner, m.note
	label := entry.Buttons[button].Text
	return func() tea.Msg {
		cmd := commands.NewTriggerCodeBlockCommand(plugin, scanner, note, entry.Index, strconv.Itoa(button))
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return ActionsDoneMsg{Label: label, Err: err}
		}
		return ActionsDoneMsg{Label: label, Count: len(result.Button.Actions)}
	}
}

// View renders the note's code blocks
func (m *CodeBlocksModel) View() string {
	var b strings.Builder

	if m.prompting {
		b.WriteString(styles.InputLabel.Render("Note (vault-relative or absolute):"))
		b.WriteString("\n")
		b.WriteString(styles.InputFocused.Render(m.input.View()))
		b.WriteString("\n")
		if m.Message != "" {
			b.WriteString(RenderMessage(m.Message, m.MessageErr))
			b.WriteString("\n")
		}
		b.WriteString(RenderHelpLine(RunKey, codeBlocksKeys.Cancel))
		return b.String()
	}

	b.WriteString(styles.Subtitle.Render(m.note))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(styles.MutedText.Render("No code blocks with a language in this note"))
		b.WriteString("\n")
	}

	for i, entry := range m.entries {
		selected := i == m.cursor
		header := fmt.Sprintf(" %2d  %s  line %d", entry.Index, styles.Language.Render(entry.Block.Language), entry.Block.Line)
		b.WriteString(RenderRow(header, selected))
		b.WriteString("\n")
		if !selected {
			continue
		}
		b.WriteString(styles.CodePreview.Render(preview(entry.Block, 6)))
		b.WriteString("\n")
		b.WriteString(m.renderButtons(entry))
		b.WriteString("\n")
	}

	if m.Message != "" {
		b.WriteString("\n")
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *CodeBlocksModel) renderButtons(entry commands.CodeBlockEntry) string {
	if len(entry.Buttons) == 0 {
		return styles.MutedText.Render("  (no buttons)")
	}

	var left, right []string
	for i, button := range entry.Buttons {
		style := styles.Button
		switch {
		case button.BuildErr != nil:
			style = styles.ButtonInert
		case i == m.button:
			style = styles.ButtonSelected
		}
		rendered := style.Render(button.Text)
		if button.Align == domain.AlignRight {
			right = append(right, rendered)
		} else {
			left = append(left, rendered)
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, left...)
	if len(right) > 0 {
		row = lipgloss.JoinVertical(lipgloss.Left, row,
			styles.AlignButtons(lipgloss.JoinHorizontal(lipgloss.Top, right...), true, m.Width-4))
	}
	return row
}

func preview(block domain.CodeBlock, maxLines int) string {
	lines := strings.Split(block.Text, "\n")
	if len(lines) > maxLines {
		lines = append(lines[:maxLines], fmt.Sprintf("… %d more line(s)", len(lines)-maxLines))
	}
	return strings.Join(lines, "\n")
}
