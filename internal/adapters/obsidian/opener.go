package obsidian

import (
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"enhancements/internal/ports"
)

var _ ports.ObsidianOpener = (*Opener)(nil)

// Opener hands notes back to the Obsidian app through obsidian:// URIs
type Opener struct {
	vaultPath string
	vaultName string
	launch    func(uri string) error
}

// NewOpener creates a new Obsidian opener for the given vault path. The
// vault name Obsidian knows is the folder's base name.
func NewOpener(vaultPath string) *Opener {
	return &Opener{
		vaultPath: vaultPath,
		vaultName: filepath.Base(vaultPath),
		launch:    launchURI,
	}
}

// OpenFile opens a note in Obsidian. Relative paths are vault-relative.
func (o *Opener) OpenFile(filePath string) error {
	uri, err := o.BuildURI(filePath)
	if err != nil {
		return err
	}
	if err := o.launch(uri); err != nil {
		return fmt.Errorf("failed to open %s: %w", uri, err)
	}
	return nil
}

// BuildURI constructs the obsidian:// URI for a note path
func (o *Opener) BuildURI(filePath string) (string, error) {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(o.vaultPath, filePath)
	}

	relPath, err := filepath.Rel(o.vaultPath, filePath)
	if err != nil {
		return "", fmt.Errorf("failed to get relative path: %w", err)
	}
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("file is outside the vault: %s", filePath)
	}

	return fmt.Sprintf("obsidian://open?vault=%s&file=%s",
		escape(o.vaultName),
		escape(filepath.ToSlash(relPath)),
	), nil
}

// escape percent-encodes like Obsidian's own links: spaces as %20, slashes as %2F.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func launchURI(uri string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", uri)
	case "linux":
		cmd = exec.Command("xdg-open", uri)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", uri)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	return cmd.Run()
}
