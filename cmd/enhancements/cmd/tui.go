package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"enhancements/internal/adapters/editor"
	"enhancements/internal/adapters/filesystem"
	"enhancements/internal/adapters/obsidian"
	"enhancements/internal/adapters/tui"
	"enhancements/internal/bootstrap"
	"enhancements/internal/config"
	"enhancements/internal/logging"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [note]",
	Short: "Browse buttons and code blocks interactively",
	Long: `Open a terminal UI listing the ribbon buttons and, for the given note,
its code blocks with their buttons. Logs go to the plugin folder's
enhancements.log while the UI is open.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vault := config.ExpandHome(settings.VaultPath)
		logFile, err := logging.OpenFile(bootstrap.PluginDir(vault, settings.ConfigDir), settings.LogLevel)
		if err != nil {
			return err
		}
		defer logFile.Close()

		statusBar := filesystem.NewStatusBar()
		s, err := openSession(cmd.Context(), statusBar)
		if err != nil {
			return err
		}

		note := ""
		if len(args) == 1 {
			note = args[0]
		}

		app := tui.NewApp(s.Plugin, s.Scanner, statusBar, editor.NewOpener(), obsidian.NewOpener(s.VaultPath()), note)
		p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		statusBar.OnChange(func() { p.Send(tui.StatusChangedMsg{}) })

		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
