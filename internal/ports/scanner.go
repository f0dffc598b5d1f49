package ports

import "enhancements/internal/domain"

// NoteScanner finds fenced code blocks in note source.
type NoteScanner interface {
	CodeBlocks(source []byte) []domain.CodeBlock
}
