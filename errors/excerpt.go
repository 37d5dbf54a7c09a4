package errors

import (
	"bytes"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/robinvdvleuten/vesti/ast"
)

// Excerpt is the source line a span starts on, with the geometry needed
// to underline the span in a terminal.
type Excerpt struct {
	LineNumber int
	Line       string

	// Indent is the whitespace printed before the carets. Tabs in the line
	// prefix are kept so the carets line up however the terminal expands
	// them.
	Indent string

	// Width is the display width of the underlined text, at least 1.
	Width int
}

// NewExcerpt cuts the line containing span.Start out of source. It reports
// false when the span lies outside source.
func NewExcerpt(source []byte, span ast.Span) (Excerpt, bool) {
	start := span.Start.Offset
	if start < 0 || start > len(source) || span.Start.Line == 0 {
		return Excerpt{}, false
	}

	lineStart := bytes.LastIndexByte(source[:start], '\n') + 1
	lineEnd := len(source)
	if i := bytes.IndexByte(source[start:], '\n'); i >= 0 {
		lineEnd = start + i
	}
	if lineEnd > start && source[lineEnd-1] == '\r' {
		lineEnd--
	}
	line := string(source[lineStart:lineEnd])

	end := span.End.Offset
	if end > lineEnd {
		end = lineEnd
	}
	width := 1
	if end > start {
		width = max(runewidth.StringWidth(string(source[start:end])), 1)
	}

	return Excerpt{
		LineNumber: span.Start.Line,
		Line:       line,
		Indent:     indentFor(string(source[lineStart:start])),
		Width:      width,
	}, true
}

// Carets returns the underline for the excerpt.
func (e Excerpt) Carets() string {
	return strings.Repeat("^", e.Width)
}

func indentFor(prefix string) string {
	var buf strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			buf.WriteByte('\t')
			continue
		}
		buf.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return buf.String()
}
