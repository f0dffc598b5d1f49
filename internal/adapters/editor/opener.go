package editor

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"enhancements/internal/ports"
)

// ErrNoEditor is returned when neither $EDITOR, $VISUAL nor a known editor
// on PATH is available.
var ErrNoEditor = errors.New("no editor found: set $EDITOR environment variable")

var _ ports.EditorOpener = (*Opener)(nil)

var fallbackEditors = []string{"nvim", "vim", "vi", "nano"}

// Opener builds editor invocations for notes
type Opener struct {
	getenv   func(string) string
	lookPath func(string) (string, error)
}

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{getenv: os.Getenv, lookPath: exec.LookPath}
}

// Command returns an exec.Cmd opening path in the editor, suitable for
// bubbletea's ExecProcess. $EDITOR may carry flags ("code --wait").
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv := o.findEditor()
	if len(argv) == 0 {
		return nil, ErrNoEditor
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

func (o *Opener) findEditor() []string {
	for _, name := range []string{"EDITOR", "VISUAL"} {
		if fields := strings.Fields(o.getenv(name)); len(fields) > 0 {
			return fields
		}
	}

	for _, editor := range fallbackEditors {
		if path, err := o.lookPath(editor); err == nil {
			return []string{path}
		}
	}
	return nil
}
