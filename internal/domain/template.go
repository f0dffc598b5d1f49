package domain

import (
	"strconv"
	"strings"
)

// Placeholders understood by Render.
const (
	PlaceholderVaultPath      = "{VAULT_PATH}"
	PlaceholderVaultConfigDir = "{VAULT_CONFIG_DIR}"
	PlaceholderCode           = "{CODE}"
	PlaceholderFilePath       = "{FILE_PATH}"
	PlaceholderOffset         = "{OFFSET}"
)

// Render substitutes every placeholder in template. Values belonging to a
// missing descriptor render as the empty string.
func Render(template string, vault VaultPaths, code *CodeBlockDescriptor) string {
	var text, filePath, offset string
	if code != nil {
		text = code.Text
		filePath = code.FilePath
		offset = strconv.Itoa(code.Offset)
	}

	return strings.NewReplacer(
		PlaceholderVaultPath, vault.Path,
		PlaceholderVaultConfigDir, vault.ConfigDir,
		PlaceholderCode, text,
		PlaceholderFilePath, filePath,
		PlaceholderOffset, offset,
	).Replace(template)
}

// RenderAll renders each template in order.
func RenderAll(templates []string, vault VaultPaths, code *CodeBlockDescriptor) []string {
	rendered := make([]string, len(templates))
	for i, t := range templates {
		rendered[i] = Render(t, vault, code)
	}
	return rendered
}
