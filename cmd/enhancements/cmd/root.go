package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"enhancements/internal/adapters/filesystem"
	"enhancements/internal/bootstrap"
	"enhancements/internal/config"
	"enhancements/internal/logging"
)

var (
	settings = config.FromEnv()
	session  *bootstrap.Session
)

var rootCmd = &cobra.Command{
	Use:   "enhancements",
	Short: "Run configurable actions from a notes vault",
	Long: `enhancements runs the actions configured in an Obsidian-style vault's
<vault>/.obsidian/plugins/enhancements/config.json.

Ribbon buttons run against a whole note, code-block buttons against one
fenced code block. Extension modules in the plugin's extensions/ folder
add action types written in Lua.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		if err := settings.Validate(); err != nil {
			return err
		}
		if cmd.Name() != tuiCmd.Name() {
			logging.Setup(os.Stderr, settings.LogLevel)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeSession()
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run executes the root command. cobra skips PersistentPostRunE when RunE
// fails, so the session is closed here as well.
func run(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeErr := closeSession(); err == nil {
		err = closeErr
	}
	return err
}

func closeSession() error {
	if session == nil {
		return nil
	}
	err := session.Close()
	session = nil
	return err
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&settings.VaultPath, "vault", "v", settings.VaultPath, "path to the vault ($"+config.EnvVault+")")
	flags.StringVar(&settings.ConfigDir, "config-dir", settings.ConfigDir, "vault config folder ($"+config.EnvConfigDir+")")
	flags.StringVar(&settings.DataStore, "data-store", settings.DataStore, "where plugin data is kept: json or sqlite ($"+config.EnvDataStore+")")
	flags.BoolVar(&settings.EnableScripts, "enable-scripts", settings.EnableScripts, "allow execute-lua actions ($"+config.EnvEnableScripts+")")
	flags.StringVar(&settings.LogLevel, "log-level", settings.LogLevel, "debug, info, warn or error ($"+config.EnvLogLevel+")")
}

// openSession loads the plugin once per invocation
func openSession(ctx context.Context, statusBar *filesystem.StatusBar) (*bootstrap.Session, error) {
	if session != nil {
		return session, nil
	}
	s, err := bootstrap.Open(ctx, settings, statusBar)
	if err != nil {
		return nil, fmt.Errorf("failed to load plugin: %w", err)
	}
	session = s
	return session, nil
}
