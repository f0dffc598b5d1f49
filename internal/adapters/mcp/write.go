package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"enhancements/internal/application"
	"enhancements/internal/application/commands"
	"enhancements/internal/ports"
)

// RegisterTriggerTools adds the tools that run button actions.
func RegisterTriggerTools(s *server.MCPServer, plugin *application.Plugin, scanner ports.NoteScanner) {
	s.AddTool(triggerRibbonTool(), triggerRibbonHandler(plugin))
	s.AddTool(triggerCodeBlockTool(), triggerCodeBlockHandler(plugin, scanner))
}

// --- trigger_ribbon_button ---

func triggerRibbonTool() mcp.Tool {
	return mcp.NewTool("trigger_ribbon_button",
		mcp.WithDescription("Run a ribbon button's actions. The active note, when given, is passed to the actions as {CODE}/{FILE_PATH}."),
		mcp.WithString("button",
			mcp.Description("Button index (0-based), icon name or hover text"),
			mcp.Required(),
		),
		mcp.WithString("active_file",
			mcp.Description("Note treated as the active file. Omit for none."),
		),
	)
}

func triggerRibbonHandler(plugin *application.Plugin) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		button := req.GetString("button", "")
		activeFile := req.GetString("active_file", "")

		result, err := commands.NewTriggerRibbonCommand(plugin, button, activeFile).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- trigger_code_block_button ---

func triggerCodeBlockTool() mcp.Tool {
	return mcp.NewTool("trigger_code_block_button",
		mcp.WithDescription("Run a code-block button against one fenced code block of a note."),
		mcp.WithString("note",
			mcp.Description("Note path, vault-relative or absolute"),
			mcp.Required(),
		),
		mcp.WithNumber("block",
			mcp.Description("1-based code block number, as listed by list_code_blocks"),
			mcp.Required(),
		),
		mcp.WithString("button",
			mcp.Description("Button index (0-based) or text. Omit when the block shows a single button."),
		),
	)
}

func triggerCodeBlockHandler(plugin *application.Plugin, scanner ports.NoteScanner) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		note := req.GetString("note", "")
		block := req.GetInt("block", 0)
		button := req.GetString("button", "")

		result, err := commands.NewTriggerCodeBlockCommand(plugin, scanner, note, block, button).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
