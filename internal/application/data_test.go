package application

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadExtensionData(t *testing.T) {
	tests := []struct {
		name    string
		stored  []byte
		wantErr bool
		want    string // namespace "a", empty when absent
	}{
		{name: "never saved", stored: nil},
		{name: "null blob", stored: []byte("null")},
		{name: "existing object", stored: []byte(`{"a":{"n":1}}`), want: `{"n":1}`},
		{name: "malformed", stored: []byte(`{"a":`), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := LoadExtensionData(&memStore{data: tt.stored})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			got, ok := data.Get("a")
			if tt.want == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestLoadExtensionData_StoreError(t *testing.T) {
	_, err := LoadExtensionData(&memStore{loadErr: errors.New("disk gone")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestExtensionData_GetSet(t *testing.T) {
	store := &memStore{data: []byte(`{"other":{"keep":true}}`)}
	data, err := LoadExtensionData(store)
	require.NoError(t, err)

	_, ok := data.Get("mine")
	assert.False(t, ok, "namespace never saved")

	require.NoError(t, data.Set("mine", json.RawMessage(`{"count":2}`)))

	got, ok := data.Get("mine")
	require.True(t, ok)
	assert.JSONEq(t, `{"count":2}`, string(got))

	// The whole mapping is persisted, other namespaces included.
	assert.Equal(t, 1, store.saves)
	assert.JSONEq(t, `{"other":{"keep":true},"mine":{"count":2}}`, string(store.data))
}

func TestExtensionData_NamespaceWithPathCharacters(t *testing.T) {
	store := &memStore{}
	data, err := LoadExtensionData(store)
	require.NoError(t, err)

	require.NoError(t, data.Set("counter.lua", json.RawMessage(`3`)))

	got, ok := data.Get("counter.lua")
	require.True(t, ok)
	assert.Equal(t, "3", string(got))
	assert.JSONEq(t, `{"counter.lua":3}`, string(store.data))
}

func TestExtensionData_SetRejectsInvalidJSON(t *testing.T) {
	data, err := LoadExtensionData(&memStore{})
	require.NoError(t, err)

	err = data.Set("mine", json.RawMessage(`{nope`))
	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestExtensionData_SaveErrorKeepsMemory(t *testing.T) {
	store := &memStore{saveErr: errors.New("read-only")}
	data, err := LoadExtensionData(store)
	require.NoError(t, err)

	err = data.Set("mine", json.RawMessage(`1`))
	require.Error(t, err)

	got, ok := data.Get("mine")
	require.True(t, ok)
	assert.Equal(t, "1", string(got))
}
