package lua

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"enhancements/internal/application"
	"enhancements/internal/domain"
	"enhancements/internal/ports"
)

// Loader loads extension modules. A module file returns
//
//	{ actions = { ["type-name"] = function(context) return function(config) return function(code) ... end end end } }
//
// Every module gets its own State.
type Loader struct {
	mu     sync.Mutex
	states []*State
}

var _ application.ModuleLoader = (*Loader)(nil)

// NewLoader creates a module loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load runs the module at path and collects its action factories.
func (l *Loader) Load(path string) (*application.ExtensionModule, error) {
	state := NewState()

	ret, err := state.DoFile(context.Background(), path)
	if err != nil {
		state.Close()
		return nil, fmt.Errorf("failed to run module: %w", err)
	}

	table, ok := ret.(*lua.LTable)
	if !ok {
		state.Close()
		return nil, fmt.Errorf("module must return a table, got %s", ret.Type())
	}
	actions, ok := table.RawGetString("actions").(*lua.LTable)
	if !ok {
		state.Close()
		return nil, fmt.Errorf("module table has no actions table")
	}

	m := &module{state: state, contexts: make(map[*application.ExtensionContext]*lua.LTable)}
	factories := make(map[string]application.ActionBuilderFactory)
	var bad error
	actions.ForEach(func(k, v lua.LValue) {
		name, isString := k.(lua.LString)
		fn, isFunc := v.(*lua.LFunction)
		if !isString || !isFunc {
			if bad == nil {
				bad = fmt.Errorf("actions[%s] must map a name to a function, got %s", k.String(), v.Type())
			}
			return
		}
		factories[string(name)] = m.factory(fn)
	})
	if bad != nil {
		state.Close()
		return nil, bad
	}

	l.mu.Lock()
	l.states = append(l.states, state)
	l.mu.Unlock()

	return &application.ExtensionModule{Actions: factories}, nil
}

// Close closes every module state.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, s := range l.states {
		s.Close()
	}
	l.states = nil
}

// module is one loaded module file. Every action type of the module shares
// one context table, and so one status bar item, per ExtensionContext.
type module struct {
	state *State

	mu       sync.Mutex
	contexts map[*application.ExtensionContext]*lua.LTable
}

func (m *module) contextTable(ext *application.ExtensionContext) (*lua.LTable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t, ok := m.contexts[ext]; ok {
		return t, nil
	}
	var t *lua.LTable
	if err := m.state.Do(func(L *lua.LState) { t = newContextTable(L, ext) }); err != nil {
		return nil, err
	}
	m.contexts[ext] = t
	return t, nil
}

func (m *module) factory(fn *lua.LFunction) application.ActionBuilderFactory {
	state := m.state
	return func(ext *application.ExtensionContext) (ports.ActionBuilder, error) {
		table, err := m.contextTable(ext)
		if err != nil {
			return nil, err
		}
		ret, err := state.Call(context.Background(), fn, 1, table)
		if err != nil {
			return nil, err
		}
		build, ok := ret[0].(*lua.LFunction)
		if !ok {
			return nil, fmt.Errorf("factory must return a builder function, got %s", ret[0].Type())
		}
		return &builder{state: state, fn: build}, nil
	}
}

type builder struct {
	state *State
	fn    *lua.LFunction
}

func (b *builder) Build(config domain.ActionConfig) (ports.Action, error) {
	ret, err := b.state.Call(context.Background(), b.fn, 1, ToLuaValue(b.state.L, config))
	if err != nil {
		return nil, err
	}
	fn, ok := ret[0].(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("builder must return an action function, got %s", ret[0].Type())
	}
	return &action{state: b.state, fn: fn}, nil
}

type action struct {
	state *State
	fn    *lua.LFunction
}

// Execute calls the action function with the code table. An action fails by
// raising an error or by returning nil, message.
func (a *action) Execute(ctx context.Context, code *domain.CodeBlockDescriptor) error {
	ret, err := a.state.Call(ctx, a.fn, 2, CodeTable(a.state.L, code))
	if err != nil {
		return err
	}
	if ret[0] == lua.LNil && ret[1] != lua.LNil {
		return fmt.Errorf("%s", ret[1].String())
	}
	return nil
}

// newContextTable exposes ext to Lua. Callers hold the state lock.
func newContextTable(L *lua.LState, ext *application.ExtensionContext) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("vault_path", lua.LString(ext.VaultPath()))
	t.RawSetString("vault_config_dir", lua.LString(ext.VaultConfigDir()))
	t.RawSetString("name", lua.LString(ext.Name()))

	L.SetFuncs(t, map[string]lua.LGFunction{
		"render": func(L *lua.LState) int {
			tmpl := L.CheckString(1)
			L.Push(lua.LString(ext.Render(tmpl, codeFromTable(L.Get(2)))))
			return 1
		},
		"get_data": func(L *lua.LState) int {
			raw, ok := ext.Data()
			if !ok {
				L.Push(lua.LNil)
				return 1
			}
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				L.RaiseError("failed to decode data: %v", err)
				return 0
			}
			L.Push(ToLuaValue(L, v))
			return 1
		},
		"save_data": func(L *lua.LState) int {
			ctx := L.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if err := ext.SaveData(ctx, ToGoValue(L.Get(1))); err != nil {
				L.RaiseError("%v", err)
			}
			return 0
		},
		"status": statusFunc(ext),
	})
	return t
}

// statusFunc creates the module's status bar item on first use.
func statusFunc(ext *application.ExtensionContext) lua.LGFunction {
	var item ports.StatusBarItem
	return func(L *lua.LState) int {
		if item == nil {
			item = ext.AddStatusBarItem()
		}
		if L.GetTop() == 0 || L.Get(1) == lua.LNil {
			item.Clear()
			return 0
		}
		text := L.ToStringMeta(L.Get(1)).String()
		item.SetText(text)
		slog.Debug("status updated", "extension", ext.Name(), "text", text)
		return 0
	}
}
