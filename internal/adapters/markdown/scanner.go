// Package markdown finds fenced code blocks in notes.
package markdown

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"enhancements/internal/domain"
	"enhancements/internal/ports"
)

// Scanner implements ports.NoteScanner with goldmark.
type Scanner struct {
	md goldmark.Markdown
}

var _ ports.NoteScanner = (*Scanner)(nil)

// NewScanner creates a scanner with goldmark's CommonMark parser.
func NewScanner() *Scanner {
	return &Scanner{md: goldmark.New()}
}

// CodeBlocks returns the backtick-fenced blocks that name a language and have
// a body, in document order. Tilde fences and indented blocks are ignored.
func (s *Scanner) CodeBlocks(source []byte) []domain.CodeBlock {
	doc := s.md.Parser().Parse(text.NewReader(source))

	lineStarts := lineOffsets(source)
	var blocks []domain.CodeBlock

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok || fence.Info == nil {
			return ast.WalkContinue, nil
		}

		language := string(fence.Language(source))
		lines := fence.Lines()
		if language == "" || lines.Len() == 0 {
			return ast.WalkSkipChildren, nil
		}

		fenceStart := lineStart(source, fence.Info.Segment.Start)
		if !bytes.HasPrefix(bytes.TrimLeft(source[fenceStart:], " "), []byte("```")) {
			return ast.WalkSkipChildren, nil
		}

		var body strings.Builder
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			body.Write(seg.Value(source))
		}

		start := lines.At(0).Start
		blocks = append(blocks, domain.CodeBlock{
			Language: language,
			Text:     strings.TrimSuffix(body.String(), "\n"),
			Offset:   utf8.RuneCount(source[:start]),
			Line:     lineNumber(lineStarts, fenceStart),
		})
		return ast.WalkSkipChildren, nil
	})

	return blocks
}

func lineStart(source []byte, pos int) int {
	return bytes.LastIndexByte(source[:pos], '\n') + 1
}

func lineOffsets(source []byte) []int {
	offsets := []int{0}
	for i, b := range source {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// lineNumber returns the 1-based line containing byte offset pos.
func lineNumber(offsets []int, pos int) int {
	lo, hi := 0, len(offsets)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if offsets[mid] <= pos {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1
}
