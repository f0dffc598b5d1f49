package actions

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enhancements/internal/adapters/filesystem"
	"enhancements/internal/application"
	"enhancements/internal/domain"
	"enhancements/internal/ports"
)

type testVault struct {
	path string
	host *filesystem.Host
	ext  *application.ExtensionContext
}

func newTestVault(t *testing.T) *testVault {
	t.Helper()

	vault := t.TempDir()
	host, err := filesystem.OpenHost(vault, ".obsidian", nil)
	require.NoError(t, err)

	store := filesystem.NewJSONDataStore(filepath.Join(vault, ".obsidian", "plugins", "enhancements", "data.json"))
	data, err := application.LoadExtensionData(store)
	require.NoError(t, err)

	ext, err := application.NewExtensionContext(host, data, application.BuiltinExtensionName)
	require.NoError(t, err)

	return &testVault{path: vault, host: host, ext: ext}
}

func (v *testVault) build(t *testing.T, factory application.ActionBuilderFactory, config domain.ActionConfig) ports.Action {
	t.Helper()
	builder, err := factory(v.ext)
	require.NoError(t, err)
	action, err := builder.Build(config)
	require.NoError(t, err)
	return action
}

func TestBuiltins(t *testing.T) {
	names := func(m map[string]application.ActionBuilderFactory) []string {
		var out []string
		for name := range m {
			out = append(out, name)
		}
		return out
	}

	assert.ElementsMatch(t, []string{TypeLaunchProcess, TypeMakeDirectory, TypeWriteFile}, names(Builtins()))
	assert.ElementsMatch(t, []string{TypeExecuteLua}, names(ScriptFactories()))
	assert.Len(t, Factories(true), 4)
	assert.Len(t, Factories(false), 4)
}

func TestFactories_ScriptsDisabled(t *testing.T) {
	v := newTestVault(t)

	builder, err := Factories(false)[TypeExecuteLua](v.ext)
	require.NoError(t, err)

	_, err = builder.Build(domain.ActionConfig{"type": TypeExecuteLua, "code": "local a = 1"})
	assert.ErrorIs(t, err, application.ErrScriptsDisabled)
}

func TestDecode_TypeMismatchFailsAtBuild(t *testing.T) {
	v := newTestVault(t)

	tests := []struct {
		name    string
		factory application.ActionBuilderFactory
		config  domain.ActionConfig
	}{
		{name: "args not a list", factory: NewProcessLauncherFactory(nil), config: domain.ActionConfig{"type": TypeLaunchProcess, "args": "x"}},
		{name: "recursive not a bool", factory: NewDirectoryMakerFactory, config: domain.ActionConfig{"type": TypeMakeDirectory, "path": "/x", "recursive": "yes"}},
		{name: "text not a string", factory: NewFileWriterFactory, config: domain.ActionConfig{"type": TypeWriteFile, "path": "/x", "text": []any{1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder, err := tt.factory(v.ext)
			require.NoError(t, err)
			_, err = builder.Build(tt.config)
			assert.Error(t, err)
		})
	}
}

func TestDecode_NullsAreZeroValues(t *testing.T) {
	var cfg LaunchProcessConfig
	err := decode(domain.ActionConfig{"type": TypeLaunchProcess, "executablePath": "/bin/true", "args": nil, "workingPath": nil}, &cfg)

	require.NoError(t, err)
	assert.Equal(t, "/bin/true", cfg.ExecutablePath)
	assert.Empty(t, cfg.Args)
	assert.Empty(t, cfg.WorkingPath)
}
