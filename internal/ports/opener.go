package ports

import "os/exec"

// EditorOpener opens notes in the user's text editor.
type EditorOpener interface {
	// Command returns the editor invocation for path, suitable for
	// bubbletea's ExecProcess.
	Command(path string) (*exec.Cmd, error)
}

// ObsidianOpener hands a note back to the Obsidian desktop app.
type ObsidianOpener interface {
	// OpenFile opens an absolute path inside the vault via obsidian:// URI.
	OpenFile(filePath string) error
}
