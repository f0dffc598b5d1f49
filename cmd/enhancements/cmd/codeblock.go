package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"enhancements/internal/application/commands"
)

var codeblockCmd = &cobra.Command{
	Use:   "codeblock <note> <block> [button]",
	Short: "Run a code-block button on a fenced code block",
	Long: `Run a code-block button for the n-th fenced code block of a note
(1-based, counting only backtick blocks that name a language). The button is
chosen by index or text among the buttons shown for the block's language; it
may be omitted when only one button applies.

Examples:
  enhancements codeblock notes/setup.md 1
  enhancements codeblock notes/setup.md 2 Run`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		block, err := commands.ParseBlock(args[1])
		if err != nil {
			return err
		}
		selector := ""
		if len(args) == 3 {
			selector = args[2]
		}

		ctx := cmd.Context()
		s, err := openSession(ctx, nil)
		if err != nil {
			return err
		}

		result, err := commands.NewTriggerCodeBlockCommand(s.Plugin, s.Scanner, args[0], block, selector).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(codeblockCmd)
}
