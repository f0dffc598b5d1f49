package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"enhancements/internal/application/commands"
)

var ribbonFile string

var ribbonCmd = &cobra.Command{
	Use:   "ribbon <button>",
	Short: "Run a ribbon button",
	Long: `Run the actions of a ribbon button. The button is chosen by index,
icon name or hover text. With --file the note is passed to the actions as
the active file ({CODE} is its full text, {OFFSET} is 0).

Examples:
  enhancements ribbon 0
  enhancements ribbon "Open terminal" --file Projects/todo.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := openSession(ctx, nil)
		if err != nil {
			return err
		}

		result, err := commands.NewTriggerRibbonCommand(s.Plugin, args[0], ribbonFile).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	ribbonCmd.Flags().StringVarP(&ribbonFile, "file", "f", "", "active note, absolute or relative to the vault")
	rootCmd.AddCommand(ribbonCmd)
}
