package actions

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	luaext "enhancements/internal/adapters/lua"
	"enhancements/internal/application"
	"enhancements/internal/domain"
	"enhancements/internal/ports"
)

// ExecuteLuaConfig configures execute-lua.
type ExecuteLuaConfig struct {
	Code string `mapstructure:"code"`
}

// scriptModules counts the script modules loaded through one context and
// shows the count in a status bar item.
type scriptModules struct {
	mu     sync.Mutex
	count  int
	status ports.StatusBarItem
}

func (m *scriptModules) increment() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.count++
	m.status.SetText(strconv.Itoa(m.count))
}

// NewScriptExecutorFactory is the execute-lua factory.
func NewScriptExecutorFactory(ext *application.ExtensionContext) (ports.ActionBuilder, error) {
	modules := &scriptModules{status: ext.AddStatusBarItem()}

	return ports.ActionBuilderFunc(func(config domain.ActionConfig) (ports.Action, error) {
		var cfg ExecuteLuaConfig
		if err := decode(config, &cfg); err != nil {
			return nil, err
		}
		return &ScriptExecutor{config: cfg, ext: ext, modules: modules}, nil
	}), nil
}

// ScriptExecutor turns the configured Lua code into a module that returns
// its top-level locals. Each distinct module is written to the script cache
// and run once; later triggers with the same code do nothing.
type ScriptExecutor struct {
	config  ExecuteLuaConfig
	ext     *application.ExtensionContext
	modules *scriptModules
}

// ScriptDataDir returns <vault>/<configDir>/enhancements/script-data.
func ScriptDataDir(ext *application.ExtensionContext) string {
	return filepath.Join(ext.VaultPath(), ext.VaultConfigDir(), "enhancements", "script-data")
}

// ModulePath returns the cache file for code and the module source to store
// there.
func (e *ScriptExecutor) ModulePath() (path, source string, err error) {
	exports, err := luaext.Exports(e.config.Code)
	if err != nil {
		return "", "", err
	}
	source = luaext.ModuleSource(e.config.Code, exports)
	sum := sha256.Sum256([]byte(source))
	return filepath.Join(ScriptDataDir(e.ext), hex.EncodeToString(sum[:])), source, nil
}

func (e *ScriptExecutor) Execute(ctx context.Context, _ *domain.CodeBlockDescriptor) error {
	if err := application.ValidateRequired("code", e.config.Code); err != nil {
		return err
	}

	path, source, err := e.ModulePath()
	if err != nil {
		return err
	}

	if info, err := os.Lstat(path); err == nil && info.Mode().IsRegular() {
		slog.Debug("script module already loaded", "module", filepath.Base(path))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create script cache: %w", err)
	}
	if err := os.WriteFile(path, []byte(source), 0644); err != nil {
		return fmt.Errorf("failed to write script module: %w", err)
	}

	exports, err := luaext.RunFile(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to run script module: %w", err)
	}
	slog.Info("script module loaded", "module", filepath.Base(path), "exports", exports)
	e.modules.increment()
	return nil
}
