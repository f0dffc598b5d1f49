package actions

import (
	"context"
	"log/slog"
	"os/exec"

	"enhancements/internal/application"
	"enhancements/internal/domain"
	"enhancements/internal/ports"
)

// LaunchProcessConfig configures launch-process.
type LaunchProcessConfig struct {
	ExecutablePath string   `mapstructure:"executablePath"`
	Args           []string `mapstructure:"args"`
	WorkingPath    string   `mapstructure:"workingPath"`
}

// Starter starts cmd without waiting for it to finish.
type Starter func(cmd *exec.Cmd) error

// StartDetached starts cmd and reaps it in the background.
func StartDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			slog.Debug("launched process exited", "executable", cmd.Path, "error", err)
		}
	}()
	return nil
}

// NewProcessLauncherFactory returns the launch-process factory. A nil start
// uses StartDetached.
func NewProcessLauncherFactory(start Starter) application.ActionBuilderFactory {
	if start == nil {
		start = StartDetached
	}
	return func(ext *application.ExtensionContext) (ports.ActionBuilder, error) {
		return ports.ActionBuilderFunc(func(config domain.ActionConfig) (ports.Action, error) {
			var cfg LaunchProcessConfig
			if err := decode(config, &cfg); err != nil {
				return nil, err
			}
			return &ProcessLauncher{config: cfg, ext: ext, start: start}, nil
		}), nil
	}
}

// ProcessLauncher starts an external program. It never waits for the
// program and never reports a failure to start it; start failures are
// logged. A missing executablePath fails the action.
type ProcessLauncher struct {
	config LaunchProcessConfig
	ext    *application.ExtensionContext
	start  Starter
}

// Command renders the configured invocation for code.
func (l *ProcessLauncher) Command(code *domain.CodeBlockDescriptor) *exec.Cmd {
	cwd := l.ext.VaultPath()
	if l.config.WorkingPath != "" {
		cwd = l.ext.Render(l.config.WorkingPath, code)
	}

	args := make([]string, len(l.config.Args))
	for i, arg := range l.config.Args {
		args[i] = l.ext.Render(arg, code)
	}

	// Stdout and stderr stay nil, which discards them.
	cmd := exec.Command(l.ext.Render(l.config.ExecutablePath, code), args...)
	cmd.Dir = cwd
	return cmd
}

func (l *ProcessLauncher) Execute(_ context.Context, code *domain.CodeBlockDescriptor) error {
	if err := application.ValidateRequired("executablePath", l.config.ExecutablePath); err != nil {
		return err
	}

	cmd := l.Command(code)
	if err := l.start(cmd); err != nil {
		slog.Error("failed to launch process", "executable", cmd.Path, "dir", cmd.Dir, "error", err)
		return nil
	}
	slog.Info("launched process", "executable", cmd.Path, "args", cmd.Args[1:], "dir", cmd.Dir)
	return nil
}
