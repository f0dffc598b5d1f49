package domain

// VaultPaths holds the two vault locations every template can reference.
type VaultPaths struct {
	Path      string // Absolute vault root, e.g. "/home/me/notes"
	ConfigDir string // Host config folder relative to Path, e.g. ".obsidian"
}

// CodeBlockDescriptor describes the code block (or active file) that
// triggered an action sequence. A nil *CodeBlockDescriptor means no block.
type CodeBlockDescriptor struct {
	Text     string // Raw block content
	FilePath string // Absolute path of the containing note
	Offset   int    // Character offset of the block body in the note
}

// CodeBlock is a fenced code block found in a note.
type CodeBlock struct {
	Language string
	Text     string
	Offset   int // Character offset of the first body line
	Line     int // 1-based line of the opening fence
}

// Descriptor returns the descriptor handed to actions triggered from this block.
func (b CodeBlock) Descriptor(filePath string) *CodeBlockDescriptor {
	return &CodeBlockDescriptor{
		Text:     b.Text,
		FilePath: filePath,
		Offset:   b.Offset,
	}
}
