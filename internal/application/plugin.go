package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"enhancements/internal/domain"
	"enhancements/internal/ports"
)

const (
	// PluginID is the plugin's folder name under <configDir>/plugins.
	PluginID = "enhancements"
	// BuiltinExtensionName is the data namespace of the built-in actions.
	BuiltinExtensionName = "builtin-enhancements"
	// ConfigFileName is the plugin configuration inside the plugin folder.
	ConfigFileName = "config.json"
	// ExtensionsDirName holds extension modules inside the plugin folder.
	ExtensionsDirName = "extensions"
)

// ConfigSource reads the plugin configuration file.
type ConfigSource interface {
	LoadPluginConfig(path string) (*domain.Config, error)
}

// LoadOptions supplies what Load wires into the plugin.
type LoadOptions struct {
	// Builtins are registered under the built-in context.
	Builtins map[string]ActionBuilderFactory
	// Modules loads extension modules; nil disables discovery.
	Modules ModuleLoader
	Config  ConfigSource
}

// RibbonButton is a configured toolbar button. A button whose actions failed
// to build is kept with BuildErr set and does nothing when triggered.
type RibbonButton struct {
	Icon      string
	HoverText string
	Actions   []ports.Action
	BuildErr  error
}

// Label returns the text shown for the button.
func (b *RibbonButton) Label() string {
	if b.HoverText != "" {
		return b.HoverText
	}
	return b.Icon
}

// CodeBlockButton is a configured code-block button.
type CodeBlockButton struct {
	domain.CodeBlockButtonConfig
	Actions  []ports.Action
	BuildErr error
}

// Plugin is the loaded plugin: registry, icons and UI affordances built from
// config.json.
type Plugin struct {
	host     ports.Host
	data     *ExtensionData
	builtin  *ExtensionContext
	registry *Registry
	icons    *Icons
	modules  []ModuleStatus

	ribbonButtons    []*RibbonButton
	codeBlockButtons []*CodeBlockButton
}

// Load builds the plugin against host. It fails only when the host cannot
// support actions at all (unsupported vault adapter, unreadable data or a
// malformed config file); bad buttons and broken modules are logged.
func Load(ctx context.Context, host ports.Host, store ports.DataStore, opts LoadOptions) (*Plugin, error) {
	data, err := LoadExtensionData(store)
	if err != nil {
		return nil, err
	}

	builtin, err := NewExtensionContext(host, data, BuiltinExtensionName)
	if err != nil {
		return nil, err
	}

	p := &Plugin{
		host:     host,
		data:     data,
		builtin:  builtin,
		registry: NewRegistry(),
		icons:    NewIcons(),
	}

	if err := p.registry.RegisterFactories(builtin, opts.Builtins); err != nil {
		return nil, fmt.Errorf("failed to register built-in actions: %w", err)
	}

	if opts.Modules != nil {
		modules, err := p.loadModules(filepath.Join(builtin.PluginDir(), ExtensionsDirName), opts.Modules)
		if err != nil {
			return nil, err
		}
		p.modules = modules
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := &domain.Config{}
	if opts.Config != nil {
		cfg, err = opts.Config.LoadPluginConfig(filepath.Join(builtin.PluginDir(), ConfigFileName))
		if err != nil {
			return nil, fmt.Errorf("failed to load plugin config: %w", err)
		}
	}
	p.apply(cfg)

	return p, nil
}

func (p *Plugin) apply(cfg *domain.Config) {
	for _, icon := range cfg.Icons {
		if err := p.icons.Add(icon.Name, icon.Markup); err != nil {
			slog.Error("failed to register icon", "icon", icon.Name, "error", err)
		}
	}

	for _, rc := range cfg.RibbonButtons {
		button := &RibbonButton{Icon: rc.Icon, HoverText: rc.HoverText}
		button.Actions, button.BuildErr = p.buildButtonActions(rc.Actions)
		if button.BuildErr != nil {
			slog.Error("ribbon button has no usable actions", "button", button.Label(), "error", button.BuildErr)
		}
		p.ribbonButtons = append(p.ribbonButtons, button)
	}

	for _, cc := range cfg.CodeBlockButtons {
		button := &CodeBlockButton{CodeBlockButtonConfig: cc}
		button.Actions, button.BuildErr = p.buildButtonActions(cc.Actions)
		if button.BuildErr != nil {
			slog.Error("code block button has no usable actions", "button", cc.Text, "error", button.BuildErr)
		}
		button.CodeBlockButtonConfig.Actions = nil
		p.codeBlockButtons = append(p.codeBlockButtons, button)
	}
}

func (p *Plugin) buildButtonActions(configs []domain.ActionConfig) ([]ports.Action, error) {
	if configs == nil {
		return nil, nil
	}
	return p.registry.BuildActions(configs)
}

// Context returns the built-in extension context.
func (p *Plugin) Context() *ExtensionContext { return p.builtin }

// Registry returns the action registry.
func (p *Plugin) Registry() *Registry { return p.registry }

// Icons returns the registered icons.
func (p *Plugin) Icons() *Icons { return p.icons }

// Modules returns the outcome of extension module discovery.
func (p *Plugin) Modules() []ModuleStatus { return p.modules }

// Data returns the shared persisted mapping.
func (p *Plugin) Data() *ExtensionData { return p.data }

// RibbonButtons returns the configured ribbon buttons in config order.
func (p *Plugin) RibbonButtons() []*RibbonButton { return p.ribbonButtons }

// CodeBlockButtons returns the configured code-block buttons in config order.
func (p *Plugin) CodeBlockButtons() []*CodeBlockButton { return p.codeBlockButtons }

// FindRibbonButton selects a ribbon button by index, icon name or hover text.
func (p *Plugin) FindRibbonButton(selector string) (*RibbonButton, error) {
	if i, err := strconv.Atoi(selector); err == nil {
		if i >= 0 && i < len(p.ribbonButtons) {
			return p.ribbonButtons[i], nil
		}
		return nil, fmt.Errorf("%w: ribbon button %d", ErrButtonNotFound, i)
	}
	for _, b := range p.ribbonButtons {
		if b.Icon == selector || b.HoverText == selector {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: ribbon button %q", ErrButtonNotFound, selector)
}

// ButtonsForLanguage returns the code-block buttons shown for a block in
// language. Blocks without a language get no buttons.
func (p *Plugin) ButtonsForLanguage(language string) []*CodeBlockButton {
	if language == "" {
		return nil
	}
	var buttons []*CodeBlockButton
	for _, b := range p.codeBlockButtons {
		if b.MatchesLanguage(language) {
			buttons = append(buttons, b)
		}
	}
	return buttons
}

// FindCodeBlockButton selects a button for language by index into
// ButtonsForLanguage or by its text.
func (p *Plugin) FindCodeBlockButton(language, selector string) (*CodeBlockButton, error) {
	buttons := p.ButtonsForLanguage(language)
	if i, err := strconv.Atoi(selector); err == nil {
		if i >= 0 && i < len(buttons) {
			return buttons[i], nil
		}
		return nil, fmt.Errorf("%w: code block button %d for %q", ErrButtonNotFound, i, language)
	}
	for _, b := range buttons {
		if b.Text == selector {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: code block button %q for %q", ErrButtonNotFound, selector, language)
}

// ResolveNotePath makes path absolute, relative paths being vault-relative.
func (p *Plugin) ResolveNotePath(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(p.builtin.VaultPath(), path)
}

// ActiveFileDescriptor describes a whole note the way a ribbon click sees the
// active file: its full text at offset 0. An empty path means no active file.
func (p *Plugin) ActiveFileDescriptor(path string) (*domain.CodeBlockDescriptor, error) {
	if path == "" {
		return nil, nil
	}
	abs := p.ResolveNotePath(path)
	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read active file: %w", err)
	}
	return &domain.CodeBlockDescriptor{Text: string(content), FilePath: abs, Offset: 0}, nil
}

// TriggerRibbon runs button's actions with the active file, if any.
func (p *Plugin) TriggerRibbon(ctx context.Context, button *RibbonButton, activeFile string) error {
	code, err := p.ActiveFileDescriptor(activeFile)
	if err != nil {
		return err
	}
	return trigger(ctx, slog.With("ribbon", button.Label()), button.Actions, code)
}

// TriggerCodeBlock runs button's actions for the given code block.
func (p *Plugin) TriggerCodeBlock(ctx context.Context, button *CodeBlockButton, code *domain.CodeBlockDescriptor) error {
	return trigger(ctx, slog.With("codeBlockButton", button.Text), button.Actions, code)
}

func trigger(ctx context.Context, logger *slog.Logger, actions []ports.Action, code *domain.CodeBlockDescriptor) error {
	logger = logger.With("run", uuid.NewString())
	if len(actions) == 0 {
		logger.Error(ErrNoActions.Error())
		return ErrNoActions
	}

	logger.Info("running actions", "count", len(actions))
	if err := RunActions(ctx, actions, code); err != nil {
		var actionErr *ActionError
		if errors.As(err, &actionErr) {
			logger.Error("action failed", "index", actionErr.Index, "type", actionErr.Type, "error", actionErr.Err)
		} else {
			logger.Error("action sequence failed", "error", err)
		}
		return err
	}
	logger.Info("actions finished")
	return nil
}
