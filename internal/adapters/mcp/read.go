package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"enhancements/internal/application"
	"enhancements/internal/application/commands"
	"enhancements/internal/ports"
)

// StatusSource exposes the status bar texts extensions have set.
type StatusSource interface {
	Texts() []string
}

// RegisterReadTools adds the read-only plugin tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, plugin *application.Plugin, scanner ports.NoteScanner, status StatusSource) {
	s.AddTool(listButtonsTool(), listButtonsHandler(plugin))
	s.AddTool(listCodeBlocksTool(), listCodeBlocksHandler(plugin, scanner))
	s.AddTool(statusTool(), statusHandler(status))
}

// --- list_buttons ---

func listButtonsTool() mcp.Tool {
	return mcp.NewTool("list_buttons",
		mcp.WithDescription("List the configured ribbon buttons, code-block buttons, registered action types, icons and extension modules."),
	)
}

func listButtonsHandler(plugin *application.Plugin) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewListButtonsCommand(plugin).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		sb.WriteString("Ribbon buttons:\n")
		if len(result.Ribbon) == 0 {
			sb.WriteString("  none\n")
		}
		for i, b := range result.Ribbon {
			fmt.Fprintf(&sb, "  %d  %s  %s%s\n", i, b.Icon, b.HoverText, inert(b.BuildErr))
		}

		sb.WriteString("Code-block buttons:\n")
		if len(result.CodeBlock) == 0 {
			sb.WriteString("  none\n")
		}
		for _, b := range result.CodeBlock {
			languages := "any"
			if len(b.Languages) > 0 {
				languages = strings.Join(b.Languages, ",")
			}
			fmt.Fprintf(&sb, "  %s  [%s]%s\n", b.Text, languages, inert(b.BuildErr))
		}

		fmt.Fprintf(&sb, "Action types: %s\n", strings.Join(result.ActionTypes, ", "))
		if len(result.Icons) > 0 {
			fmt.Fprintf(&sb, "Icons: %s\n", strings.Join(result.Icons, ", "))
		}
		for _, m := range result.Modules {
			if m.Err != nil {
				fmt.Fprintf(&sb, "Module %s failed: %v\n", m.Name, m.Err)
			} else {
				fmt.Fprintf(&sb, "Module %s: %s\n", m.Name, strings.Join(m.Actions, ", "))
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- list_code_blocks ---

func listCodeBlocksTool() mcp.Tool {
	return mcp.NewTool("list_code_blocks",
		mcp.WithDescription("List a note's fenced code blocks with the buttons each one shows. Block numbers are 1-based."),
		mcp.WithString("note",
			mcp.Description("Note path, vault-relative or absolute (e.g. dev/build.md)"),
			mcp.Required(),
		),
	)
}

func listCodeBlocksHandler(plugin *application.Plugin, scanner ports.NoteScanner) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		note := req.GetString("note", "")

		result, err := commands.NewListCodeBlocksCommand(plugin, scanner, note).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(result.Entries) == 0 {
			return mcp.NewToolResultText("No code blocks."), nil
		}

		var sb strings.Builder
		for _, e := range result.Entries {
			var buttons []string
			for _, b := range e.Buttons {
				buttons = append(buttons, b.Text)
			}
			fmt.Fprintf(&sb, "%d  %s  line %d  buttons: %s\n", e.Index, e.Block.Language, e.Block.Line, strings.Join(buttons, ", "))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- status ---

func statusTool() mcp.Tool {
	return mcp.NewTool("status",
		mcp.WithDescription("Show the status bar texts set by extensions and scripts."),
	)
}

func statusHandler(status StatusSource) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		texts := status.Texts()
		if len(texts) == 0 {
			return mcp.NewToolResultText("Status bar is empty."), nil
		}
		return mcp.NewToolResultText(strings.Join(texts, "\n")), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func inert(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("  (inert: %v)", err)
}
