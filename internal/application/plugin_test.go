package application

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enhancements/internal/domain"
	"enhancements/internal/ports"
)

func writeModuleFiles(t *testing.T, vault string, names ...string) {
	t.Helper()
	dir := filepath.Join(vault, ".obsidian", "plugins", PluginID, ExtensionsDirName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- module"), 0o644))
	}
}

func loadTestPlugin(t *testing.T, vault string, cfg *domain.Config, rec *recorder, modules ModuleLoader) *Plugin {
	t.Helper()
	p, err := Load(context.Background(), newFakeHost(vault), &memStore{}, LoadOptions{
		Builtins: map[string]ActionBuilderFactory{"record": rec.factory()},
		Modules:  modules,
		Config:   fakeConfigSource{cfg: cfg},
	})
	require.NoError(t, err)
	return p
}

func TestLoad_UnsupportedAdapterIsFatal(t *testing.T) {
	host := &fakeHost{vault: fakeVault{adapter: remoteAdapter{}}}
	_, err := Load(context.Background(), host, &memStore{}, LoadOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedAdapter)
}

func TestLoad_ConfigErrorIsFatal(t *testing.T) {
	_, err := Load(context.Background(), newFakeHost(t.TempDir()), &memStore{}, LoadOptions{
		Config: fakeConfigSource{err: os.ErrPermission},
	})
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestLoad_BuildsButtons(t *testing.T) {
	rec := &recorder{}
	cfg := &domain.Config{
		Icons: []domain.IconConfig{
			{Name: "rocket", Markup: `<path d="M0 0L10 10"/>`},
			{Name: "broken", Markup: `<path d="M0`},
		},
		RibbonButtons: []domain.RibbonButtonConfig{
			{Icon: "rocket", HoverText: "Launch", Actions: []domain.ActionConfig{
				{"type": "record", "name": "a"},
				{"type": "record", "name": "b"},
			}},
			{Icon: "ghost", HoverText: "Unknown", Actions: []domain.ActionConfig{
				{"type": "record", "name": "a"},
				{"type": "missing"},
			}},
			{Icon: "empty"},
		},
		CodeBlockButtons: []domain.CodeBlockButtonConfig{
			{Languages: []string{"sh"}, Align: domain.AlignRight, Text: "Run", Actions: []domain.ActionConfig{
				{"type": "record", "name": "run"},
			}},
			{Align: domain.AlignLeft, Text: "Save", Actions: []domain.ActionConfig{
				{"type": "record", "name": "save"},
			}},
		},
	}

	p := loadTestPlugin(t, t.TempDir(), cfg, rec, nil)

	assert.Equal(t, []string{"rocket"}, p.Icons().Names())

	ribbon := p.RibbonButtons()
	require.Len(t, ribbon, 3)
	assert.Len(t, ribbon[0].Actions, 2)
	assert.NoError(t, ribbon[0].BuildErr)

	// Unknown type: button still exists but is inert.
	assert.Empty(t, ribbon[1].Actions)
	assert.ErrorIs(t, ribbon[1].BuildErr, ErrUnknownActionType)
	assert.ErrorIs(t, p.TriggerRibbon(context.Background(), ribbon[1], ""), ErrNoActions)

	assert.ErrorIs(t, p.TriggerRibbon(context.Background(), ribbon[2], ""), ErrNoActions)
	assert.Empty(t, rec.ran)

	require.Len(t, p.CodeBlockButtons(), 2)
	assert.Len(t, p.ButtonsForLanguage("sh"), 2)
	assert.Len(t, p.ButtonsForLanguage("python"), 1)
	assert.Empty(t, p.ButtonsForLanguage(""))
}

func TestPlugin_FindRibbonButton(t *testing.T) {
	cfg := &domain.Config{RibbonButtons: []domain.RibbonButtonConfig{
		{Icon: "rocket", HoverText: "Launch"},
		{Icon: "folder", HoverText: "Make folder"},
	}}
	p := loadTestPlugin(t, t.TempDir(), cfg, &recorder{}, nil)

	tests := []struct {
		selector string
		wantIcon string
		wantErr  bool
	}{
		{selector: "0", wantIcon: "rocket"},
		{selector: "1", wantIcon: "folder"},
		{selector: "folder", wantIcon: "folder"},
		{selector: "Launch", wantIcon: "rocket"},
		{selector: "2", wantErr: true},
		{selector: "nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			b, err := p.FindRibbonButton(tt.selector)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrButtonNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIcon, b.Icon)
		})
	}
}

func TestPlugin_FindCodeBlockButton(t *testing.T) {
	cfg := &domain.Config{CodeBlockButtons: []domain.CodeBlockButtonConfig{
		{Languages: []string{"sh"}, Text: "Run"},
		{Text: "Copy"},
	}}
	p := loadTestPlugin(t, t.TempDir(), cfg, &recorder{}, nil)

	b, err := p.FindCodeBlockButton("sh", "Run")
	require.NoError(t, err)
	assert.Equal(t, "Run", b.Text)

	b, err = p.FindCodeBlockButton("go", "0")
	require.NoError(t, err)
	assert.Equal(t, "Copy", b.Text)

	_, err = p.FindCodeBlockButton("go", "Run")
	assert.ErrorIs(t, err, ErrButtonNotFound)
}

func TestPlugin_TriggerRibbon_ActiveFile(t *testing.T) {
	vault := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(vault, "note.md"), []byte("# Title"), 0o644))

	var seen *domain.CodeBlockDescriptor
	p := loadTestPlugin(t, vault, &domain.Config{}, &recorder{}, nil)
	button := &RibbonButton{Icon: "x", Actions: []ports.Action{
		ports.ActionFunc(func(_ context.Context, code *domain.CodeBlockDescriptor) error {
			seen = code
			return nil
		}),
	}}

	require.NoError(t, p.TriggerRibbon(context.Background(), button, "note.md"))
	require.NotNil(t, seen)
	assert.Equal(t, "# Title", seen.Text)
	assert.Equal(t, filepath.Join(vault, "note.md"), seen.FilePath)
	assert.Equal(t, 0, seen.Offset)

	require.NoError(t, p.TriggerRibbon(context.Background(), button, ""))
	assert.Nil(t, seen)
}

func TestPlugin_TriggerCodeBlock_StopsOnFailure(t *testing.T) {
	rec := &recorder{}
	cfg := &domain.Config{CodeBlockButtons: []domain.CodeBlockButtonConfig{
		{Text: "Run", Actions: []domain.ActionConfig{
			{"type": "record", "name": "one"},
			{"type": "record", "name": "two", "fail": true},
			{"type": "record", "name": "three"},
		}},
	}}
	p := loadTestPlugin(t, t.TempDir(), cfg, rec, nil)

	err := p.TriggerCodeBlock(context.Background(), p.CodeBlockButtons()[0], &domain.CodeBlockDescriptor{Text: "ls"})
	require.Error(t, err)
	assert.Equal(t, []string{"one", "two"}, rec.ran)
}

type panickingLoader struct{ fakeModuleLoader }

func (l panickingLoader) Load(path string) (*ExtensionModule, error) {
	if filepath.Base(path) == "panic.lua" {
		panic("module exploded")
	}
	return l.fakeModuleLoader.Load(path)
}

func TestLoad_ModuleFailuresAreIsolated(t *testing.T) {
	vault := t.TempDir()
	writeModuleFiles(t, vault, "broken.lua", "good.lua", "panic.lua", ".hidden")

	rec := &recorder{}
	loader := panickingLoader{fakeModuleLoader{modules: map[string]*ExtensionModule{
		"good.lua": {Actions: map[string]ActionBuilderFactory{"greet": rec.factory()}},
		"broken.lua": nil,
	}}}
	cfg := &domain.Config{RibbonButtons: []domain.RibbonButtonConfig{
		{Icon: "wave", Actions: []domain.ActionConfig{{"type": "greet", "name": "hi"}}},
	}}

	p := loadTestPlugin(t, vault, cfg, rec, loader)

	modules := p.Modules()
	require.Len(t, modules, 3)
	assert.Equal(t, "broken.lua", modules[0].Name)
	assert.Error(t, modules[0].Err)
	assert.Equal(t, "good.lua", modules[1].Name)
	assert.NoError(t, modules[1].Err)
	assert.Equal(t, []string{"greet"}, modules[1].Actions)
	assert.Equal(t, "panic.lua", modules[2].Name)
	var modErr *ModuleError
	assert.ErrorAs(t, modules[2].Err, &modErr)

	assert.Equal(t, []string{"greet", "record"}, p.Registry().Names())

	require.NoError(t, p.TriggerRibbon(context.Background(), p.RibbonButtons()[0], ""))
	assert.Equal(t, []string{"hi"}, rec.ran)
}

func TestLoad_MissingExtensionsDir(t *testing.T) {
	p := loadTestPlugin(t, t.TempDir(), &domain.Config{}, &recorder{}, fakeModuleLoader{})
	assert.Empty(t, p.Modules())
}
