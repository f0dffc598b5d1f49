package application

import (
	"context"
	"errors"
	"sync"

	"enhancements/internal/domain"
	"enhancements/internal/ports"
)

type fakeAdapter struct{ base string }

func (a fakeAdapter) Name() string     { return "fake" }
func (a fakeAdapter) BasePath() string { return a.base }

// remoteAdapter has no local root.
type remoteAdapter struct{}

func (remoteAdapter) Name() string { return "remote" }

type fakeVault struct {
	adapter   ports.StorageAdapter
	configDir string
}

func (v fakeVault) Adapter() ports.StorageAdapter { return v.adapter }
func (v fakeVault) ConfigDir() string             { return v.configDir }

type fakeStatusItem struct{ text string }

func (s *fakeStatusItem) SetText(text string) { s.text = text }
func (s *fakeStatusItem) Clear()              { s.text = "" }

type fakeHost struct {
	vault fakeVault
	items []*fakeStatusItem
}

func newFakeHost(base string) *fakeHost {
	return &fakeHost{vault: fakeVault{adapter: fakeAdapter{base: base}, configDir: ".obsidian"}}
}

func (h *fakeHost) Vault() ports.Vault { return h.vault }

func (h *fakeHost) AddStatusBarItem() ports.StatusBarItem {
	item := &fakeStatusItem{}
	h.items = append(h.items, item)
	return item
}

type memStore struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	loadErr error
	saveErr error
}

func (s *memStore) Load() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data, s.loadErr
}

func (s *memStore) Save(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.data = append([]byte(nil), data...)
	s.saves++
	return nil
}

// recorder collects the order in which actions ran.
type recorder struct {
	mu  sync.Mutex
	ran []string
}

func (r *recorder) action(name string, err error) ports.Action {
	return ports.ActionFunc(func(_ context.Context, _ *domain.CodeBlockDescriptor) error {
		r.mu.Lock()
		r.ran = append(r.ran, name)
		r.mu.Unlock()
		return err
	})
}

// recordingFactory builds actions that record config["name"] when run and
// fail when config["fail"] is true.
func (r *recorder) factory() ActionBuilderFactory {
	return func(_ *ExtensionContext) (ports.ActionBuilder, error) {
		return ports.ActionBuilderFunc(func(cfg domain.ActionConfig) (ports.Action, error) {
			name, _ := cfg["name"].(string)
			var err error
			if fail, _ := cfg["fail"].(bool); fail {
				err = errors.New("boom")
			}
			return r.action(name, err), nil
		}), nil
	}
}

type fakeConfigSource struct {
	cfg *domain.Config
	err error
}

func (f fakeConfigSource) LoadPluginConfig(string) (*domain.Config, error) {
	return f.cfg, f.err
}

type fakeModuleLoader struct {
	modules map[string]*ExtensionModule
}

func (l fakeModuleLoader) Load(path string) (*ExtensionModule, error) {
	for name, module := range l.modules {
		if len(path) >= len(name) && path[len(path)-len(name):] == name {
			if module == nil {
				return nil, errors.New("syntax error")
			}
			return module, nil
		}
	}
	return nil, errors.New("unsupported module")
}
