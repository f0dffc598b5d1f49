package filesystem

import (
	"log/slog"
	"sync"

	"enhancements/internal/ports"
)

// StatusBar collects status items created by extensions. It has no display
// of its own; the CLI logs changes and the TUI renders Texts.
type StatusBar struct {
	mu       sync.Mutex
	items    []*statusItem
	onChange func()
}

// NewStatusBar creates an empty status bar
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// OnChange registers fn to be called after any item changes
func (b *StatusBar) OnChange(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = fn
}

// Add appends a new empty item
func (b *StatusBar) Add() ports.StatusBarItem {
	b.mu.Lock()
	defer b.mu.Unlock()

	item := &statusItem{bar: b, id: len(b.items)}
	b.items = append(b.items, item)
	return item
}

// Texts returns the non-empty item texts in creation order
func (b *StatusBar) Texts() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	var texts []string
	for _, item := range b.items {
		if item.text != "" {
			texts = append(texts, item.text)
		}
	}
	return texts
}

func (b *StatusBar) set(item *statusItem, text string) {
	b.mu.Lock()
	item.text = text
	fn := b.onChange
	b.mu.Unlock()

	slog.Debug("status bar item changed", "item", item.id, "text", text)
	if fn != nil {
		fn()
	}
}

type statusItem struct {
	bar  *StatusBar
	id   int
	text string
}

func (i *statusItem) SetText(text string) { i.bar.set(i, text) }
func (i *statusItem) Clear()              { i.bar.set(i, "") }
