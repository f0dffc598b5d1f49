package application

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/antchfx/xmlquery"
)

// Icons holds the SVG icons registered from config. Markup is the inner
// content of an <svg> element, as the host expects.
type Icons struct {
	mu    sync.RWMutex
	icons map[string]string
}

// NewIcons creates an empty icon set.
func NewIcons() *Icons {
	return &Icons{icons: make(map[string]string)}
}

// Add validates markup and registers it under name.
func (i *Icons) Add(name, markup string) error {
	if err := ValidateRequired("name", name); err != nil {
		return err
	}

	doc, err := xmlquery.Parse(strings.NewReader("<svg>" + markup + "</svg>"))
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrInvalidIcon, name, err)
	}
	if xmlquery.FindOne(doc, "/svg") == nil {
		return fmt.Errorf("%w %s: no svg root", ErrInvalidIcon, name)
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.icons[name] = markup
	return nil
}

// Get returns the markup registered under name.
func (i *Icons) Get(name string) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	markup, ok := i.icons[name]
	return markup, ok
}

// Names returns the registered icon names, sorted.
func (i *Icons) Names() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	names := make([]string, 0, len(i.icons))
	for name := range i.icons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
