package commands

import (
	"context"

	"enhancements/internal/application"
	"enhancements/internal/domain"
	"enhancements/internal/ports"
)

// ListButtonsResult describes everything the loaded plugin offers
type ListButtonsResult struct {
	Ribbon      []*application.RibbonButton
	CodeBlock   []*application.CodeBlockButton
	ActionTypes []string
	Icons       []string
	Modules     []application.ModuleStatus
}

// ListButtonsCommand lists configured buttons, action types, icons and modules
type ListButtonsCommand struct {
	plugin *application.Plugin
}

// NewListButtonsCommand creates a new ListButtonsCommand
func NewListButtonsCommand(plugin *application.Plugin) *ListButtonsCommand {
	return &ListButtonsCommand{plugin: plugin}
}

// Execute runs the list buttons command
func (c *ListButtonsCommand) Execute(ctx context.Context) (*ListButtonsResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &ListButtonsResult{
		Ribbon:      c.plugin.RibbonButtons(),
		CodeBlock:   c.plugin.CodeBlockButtons(),
		ActionTypes: c.plugin.Registry().Names(),
		Icons:       c.plugin.Icons().Names(),
		Modules:     c.plugin.Modules(),
	}, nil
}

// CodeBlockEntry is one code block of a note with the buttons it would show
type CodeBlockEntry struct {
	Index   int // 1-based
	Block   domain.CodeBlock
	Buttons []*application.CodeBlockButton
}

// ListCodeBlocksResult contains the code blocks found in a note
type ListCodeBlocksResult struct {
	Path    string
	Entries []CodeBlockEntry
}

// ListCodeBlocksCommand lists a note's code blocks and their buttons
type ListCodeBlocksCommand struct {
	plugin   *application.Plugin
	scanner  ports.NoteScanner
	NotePath string
}

// NewListCodeBlocksCommand creates a new ListCodeBlocksCommand
func NewListCodeBlocksCommand(plugin *application.Plugin, scanner ports.NoteScanner, notePath string) *ListCodeBlocksCommand {
	return &ListCodeBlocksCommand{
		plugin:   plugin,
		scanner:  scanner,
		NotePath: notePath,
	}
}

// Validate checks the command input
func (c *ListCodeBlocksCommand) Validate() error {
	return application.ValidateRequired("notePath", c.NotePath)
}

// Execute runs the list code blocks command
func (c *ListCodeBlocksCommand) Execute(ctx context.Context) (*ListCodeBlocksResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	path := c.plugin.ResolveNotePath(c.NotePath)
	blocks, err := scanNote(c.scanner, path)
	if err != nil {
		return nil, err
	}

	result := &ListCodeBlocksResult{Path: path}
	for i, block := range blocks {
		result.Entries = append(result.Entries, CodeBlockEntry{
			Index:   i + 1,
			Block:   block,
			Buttons: c.plugin.ButtonsForLanguage(block.Language),
		})
	}
	return result, nil
}
