package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"enhancements/internal/application"
	"enhancements/internal/domain"
	"enhancements/internal/ports"
)

// TriggerRibbonResult contains the result of triggering a ribbon button
type TriggerRibbonResult struct {
	Button  *application.RibbonButton
	Message string
}

// TriggerRibbonCommand runs a ribbon button's actions against the active file
type TriggerRibbonCommand struct {
	plugin     *application.Plugin
	Selector   string
	ActiveFile string
}

// NewTriggerRibbonCommand creates a new TriggerRibbonCommand. selector is a
// button index, an icon name or the hover text; activeFile may be empty.
func NewTriggerRibbonCommand(plugin *application.Plugin, selector, activeFile string) *TriggerRibbonCommand {
	return &TriggerRibbonCommand{
		plugin:     plugin,
		Selector:   selector,
		ActiveFile: activeFile,
	}
}

// Validate checks the command input
func (c *TriggerRibbonCommand) Validate() error {
	return application.ValidateRequired("button", c.Selector)
}

// Execute runs the trigger ribbon command
func (c *TriggerRibbonCommand) Execute(ctx context.Context) (*TriggerRibbonResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	button, err := c.plugin.FindRibbonButton(c.Selector)
	if err != nil {
		return nil, err
	}

	if err := c.plugin.TriggerRibbon(ctx, button, c.ActiveFile); err != nil {
		return nil, fmt.Errorf("%s: %w", button.Label(), err)
	}

	return &TriggerRibbonResult{
		Button:  button,
		Message: fmt.Sprintf("Ran %d action(s) for %s", len(button.Actions), button.Label()),
	}, nil
}

// TriggerCodeBlockResult contains the result of triggering a code-block button
type TriggerCodeBlockResult struct {
	Block   domain.CodeBlock
	Button  *application.CodeBlockButton
	Message string
}

// TriggerCodeBlockCommand runs a code-block button for one block of a note
type TriggerCodeBlockCommand struct {
	plugin   *application.Plugin
	scanner  ports.NoteScanner
	NotePath string
	Block    int // 1-based, in document order
	Selector string
}

// NewTriggerCodeBlockCommand creates a new TriggerCodeBlockCommand. An empty
// selector picks the block's only button.
func NewTriggerCodeBlockCommand(plugin *application.Plugin, scanner ports.NoteScanner, notePath string, block int, selector string) *TriggerCodeBlockCommand {
	return &TriggerCodeBlockCommand{
		plugin:   plugin,
		scanner:  scanner,
		NotePath: notePath,
		Block:    block,
		Selector: selector,
	}
}

// Validate checks the command input
func (c *TriggerCodeBlockCommand) Validate() error {
	if err := application.ValidateRequired("notePath", c.NotePath); err != nil {
		return err
	}
	if c.Block < 1 {
		return &application.ValidationError{
			Field:   "block",
			Message: fmt.Sprintf("block must be 1 or greater, got %d", c.Block),
		}
	}
	return nil
}

// Execute runs the trigger code block command
func (c *TriggerCodeBlockCommand) Execute(ctx context.Context) (*TriggerCodeBlockResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	path := c.plugin.ResolveNotePath(c.NotePath)
	blocks, err := scanNote(c.scanner, path)
	if err != nil {
		return nil, err
	}
	if c.Block > len(blocks) {
		return nil, &application.ValidationError{
			Field:   "block",
			Message: fmt.Sprintf("note has %d code block(s), got block %d", len(blocks), c.Block),
		}
	}
	block := blocks[c.Block-1]

	button, err := c.findButton(block.Language)
	if err != nil {
		return nil, err
	}

	if err := c.plugin.TriggerCodeBlock(ctx, button, block.Descriptor(path)); err != nil {
		return nil, fmt.Errorf("%s: %w", button.Text, err)
	}

	return &TriggerCodeBlockResult{
		Block:   block,
		Button:  button,
		Message: fmt.Sprintf("Ran %d action(s) for %s on %s block %d", len(button.Actions), button.Text, block.Language, c.Block),
	}, nil
}

func (c *TriggerCodeBlockCommand) findButton(language string) (*application.CodeBlockButton, error) {
	if c.Selector != "" {
		return c.plugin.FindCodeBlockButton(language, c.Selector)
	}

	buttons := c.plugin.ButtonsForLanguage(language)
	switch len(buttons) {
	case 0:
		return nil, fmt.Errorf("%w: no code block button for %q", application.ErrButtonNotFound, language)
	case 1:
		return buttons[0], nil
	default:
		return nil, &application.ValidationError{
			Field:   "button",
			Message: fmt.Sprintf("%d buttons match %q; choose one by index or text", len(buttons), language),
		}
	}
}

func scanNote(scanner ports.NoteScanner, path string) ([]domain.CodeBlock, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read note: %w", err)
	}
	return scanner.CodeBlocks(source), nil
}

// ParseBlock parses a 1-based block number from user input
func ParseBlock(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, &application.ValidationError{
			Field:   "block",
			Message: fmt.Sprintf("block must be a positive number, got %q", s),
		}
	}
	return n, nil
}
