package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	vault := VaultPaths{Path: "/home/me/notes", ConfigDir: ".obsidian"}
	code := &CodeBlockDescriptor{Text: "echo hi", FilePath: "/home/me/notes/a.md", Offset: 42}

	tests := []struct {
		name     string
		template string
		code     *CodeBlockDescriptor
		want     string
	}{
		{
			name:     "no placeholders is unchanged",
			template: "plain text {NOT_A_TOKEN}",
			code:     code,
			want:     "plain text {NOT_A_TOKEN}",
		},
		{
			name:     "vault placeholders",
			template: "{VAULT_PATH}/{VAULT_CONFIG_DIR}/plugins",
			want:     "/home/me/notes/.obsidian/plugins",
		},
		{
			name:     "descriptor placeholders",
			template: "{FILE_PATH}:{OFFSET} {CODE}",
			code:     code,
			want:     "/home/me/notes/a.md:42 echo hi",
		},
		{
			name:     "every occurrence is replaced",
			template: "{CODE}{CODE}-{OFFSET}-{OFFSET}",
			code:     code,
			want:     "echo hiecho hi-42-42",
		},
		{
			name:     "missing descriptor renders empty",
			template: "[{CODE}][{FILE_PATH}][{OFFSET}]",
			want:     "[][][]",
		},
		{
			name:     "zero offset renders as 0",
			template: "{OFFSET}",
			code:     &CodeBlockDescriptor{},
			want:     "0",
		},
		{
			name:     "substituted values are not rendered again",
			template: "{CODE}",
			code:     &CodeBlockDescriptor{Text: "{VAULT_PATH}"},
			want:     "{VAULT_PATH}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.template, vault, tt.code))
		})
	}
}

func TestRender_IdempotentWithoutTokens(t *testing.T) {
	vault := VaultPaths{Path: "/v", ConfigDir: ".cfg"}
	once := Render("nothing to see", vault, nil)
	assert.Equal(t, once, Render(once, vault, nil))
}

func TestRenderAll_PreservesOrder(t *testing.T) {
	vault := VaultPaths{Path: "/v", ConfigDir: ".cfg"}
	got := RenderAll([]string{"{VAULT_PATH}", "x", "{VAULT_CONFIG_DIR}"}, vault, nil)
	assert.Equal(t, []string{"/v", "x", ".cfg"}, got)
}
