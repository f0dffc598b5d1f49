package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"enhancements/internal/adapters/tui/styles"
)

// RenderKeyHelp formats a key binding as help text (key + description)
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return fmt.Sprintf("%s %s",
		styles.HelpKey.Render(help.Key),
		styles.HelpDesc.Render(help.Desc),
	)
}

// RenderHelpLine renders multiple key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderRow renders one list row, highlighted when selected
func RenderRow(text string, selected bool) string {
	if selected {
		return styles.RowSelected.Render(text)
	}
	return styles.Row.Render(text)
}

// DoneMessage formats an ActionsDoneMsg for the message line
func DoneMessage(msg ActionsDoneMsg) (string, bool) {
	if msg.Err != nil {
		return fmt.Sprintf("%s: %v", msg.Label, msg.Err), true
	}
	return fmt.Sprintf("%s: ran %d action(s)", msg.Label, msg.Count), false
}

func truncate(s string, width int) string {
	if width <= 0 || len([]rune(s)) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-1]) + "…"
}
