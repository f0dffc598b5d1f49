package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"enhancements/internal/application"
	"enhancements/internal/application/commands"
)

var (
	heading = color.New(color.FgCyan, color.Bold).SprintFunc()
	dim     = color.New(color.Faint).SprintFunc()
	bad     = color.New(color.FgRed).SprintFunc()
)

var listCmd = &cobra.Command{
	Use:   "list [note]",
	Short: "List buttons, action types and modules, or a note's code blocks",
	Long: `Without arguments, list the configured ribbon and code-block buttons,
the registered action types, icons and extension modules. With a note, list
its fenced code blocks and the buttons each one would show.

Examples:
  enhancements list
  enhancements list notes/setup.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := openSession(ctx, nil)
		if err != nil {
			return err
		}

		if len(args) == 1 {
			result, err := commands.NewListCodeBlocksCommand(s.Plugin, s.Scanner, args[0]).Execute(ctx)
			if err != nil {
				return err
			}
			printCodeBlocks(result)
			return nil
		}

		result, err := commands.NewListButtonsCommand(s.Plugin).Execute(ctx)
		if err != nil {
			return err
		}
		printButtons(result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func printButtons(result *commands.ListButtonsResult) {
	fmt.Println(heading("Ribbon buttons"))
	for i, b := range result.Ribbon {
		fmt.Printf("  [%d] %s %s%s\n", i, b.Label(), dim("("+b.Icon+")"), buildStatus(b.BuildErr, len(b.Actions)))
	}

	fmt.Println(heading("Code-block buttons"))
	for i, b := range result.CodeBlock {
		languages := "all languages"
		if len(b.Languages) > 0 {
			languages = strings.Join(b.Languages, ", ")
		}
		fmt.Printf("  [%d] %s %s%s\n", i, b.Text, dim("("+languages+", "+string(b.Align)+")"), buildStatus(b.BuildErr, len(b.Actions)))
	}

	fmt.Println(heading("Action types"))
	for _, name := range result.ActionTypes {
		fmt.Printf("  %s\n", name)
	}

	if len(result.Icons) > 0 {
		fmt.Println(heading("Icons"))
		fmt.Printf("  %s\n", strings.Join(result.Icons, ", "))
	}

	if len(result.Modules) > 0 {
		fmt.Println(heading("Extension modules"))
		for _, m := range result.Modules {
			if m.Err != nil {
				fmt.Printf("  %s %s\n", m.Name, bad(m.Err.Error()))
				continue
			}
			fmt.Printf("  %s %s\n", m.Name, dim(strings.Join(m.Actions, ", ")))
		}
	}
}

func printCodeBlocks(result *commands.ListCodeBlocksResult) {
	fmt.Println(heading(result.Path))
	if len(result.Entries) == 0 {
		fmt.Println(dim("  no code blocks"))
		return
	}
	for _, e := range result.Entries {
		fmt.Printf("  %d. %s %s\n", e.Index, e.Block.Language, dim(fmt.Sprintf("line %d, offset %d", e.Block.Line, e.Block.Offset)))
		fmt.Printf("     %s\n", dim(firstLine(e.Block.Text)))
		for i, b := range e.Buttons {
			fmt.Printf("     [%d] %s%s\n", i, b.Text, buildStatus(b.BuildErr, len(b.Actions)))
		}
	}
}

func buildStatus(err error, actions int) string {
	if err != nil {
		return " " + bad("inert: "+err.Error())
	}
	if actions == 0 {
		return " " + bad("inert: "+application.ErrNoActions.Error())
	}
	return " " + dim(fmt.Sprintf("%d action(s)", actions))
}

func firstLine(text string) string {
	line, _, more := strings.Cut(text, "\n")
	if more {
		return line + " …"
	}
	return line
}
