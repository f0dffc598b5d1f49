package application

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"enhancements/internal/ports"
)

// ExtensionData is the plugin-wide persisted mapping from extension name to
// that extension's data. There is one instance per plugin load, shared by
// every ExtensionContext.
//
// Set is a read-modify-write of the whole blob followed by a save of the
// whole blob. The mutex only keeps the in-memory blob consistent; two
// namespaces saving at once still race on the store, last writer wins.
type ExtensionData struct {
	mu    sync.Mutex
	store ports.DataStore
	blob  []byte
}

// LoadExtensionData reads the persisted blob from store. A store that was
// never written, or holds a non-object value, starts out as "{}".
func LoadExtensionData(store ports.DataStore) (*ExtensionData, error) {
	blob, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load extension data: %w", err)
	}

	blob = bytes.TrimSpace(blob)
	if len(blob) > 0 && !gjson.ValidBytes(blob) {
		return nil, fmt.Errorf("failed to load extension data: stored data is not valid JSON")
	}
	if len(blob) == 0 || !gjson.ParseBytes(blob).IsObject() {
		blob = []byte("{}")
	}

	return &ExtensionData{store: store, blob: blob}, nil
}

// Get returns namespace's slice of the mapping. ok is false if the namespace
// never saved anything.
func (d *ExtensionData) Get(namespace string) (data json.RawMessage, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	result := gjson.GetBytes(d.blob, gjson.Escape(namespace))
	if !result.Exists() {
		return nil, false
	}
	return json.RawMessage(result.Raw), true
}

// Set replaces namespace's slice and persists the whole mapping.
func (d *ExtensionData) Set(namespace string, data json.RawMessage) error {
	if !json.Valid(data) {
		return &ValidationError{Field: "data", Message: "data must be valid JSON"}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	current := make([]byte, len(d.blob))
	copy(current, d.blob)

	updated, err := sjson.SetRawBytes(current, gjson.Escape(namespace), data)
	if err != nil {
		return fmt.Errorf("failed to update data for %s: %w", namespace, err)
	}
	d.blob = updated

	if err := d.store.Save(updated); err != nil {
		return fmt.Errorf("failed to save extension data: %w", err)
	}
	return nil
}
