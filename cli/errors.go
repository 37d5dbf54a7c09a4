package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robinvdvleuten/vesti/errors"
	"github.com/robinvdvleuten/vesti/output"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// ErrorRenderer renders errors with terminal styling and source context.
type ErrorRenderer struct {
	source []byte
	styles *output.Styles
}

// ErrorRendererOption is a functional option for configuring an ErrorRenderer.
type ErrorRendererOption func(*ErrorRenderer)

// WithStyles sets the styles of the diagnostic header. They should match
// the writer the rendered error goes to.
func WithStyles(styles *output.Styles) ErrorRendererOption {
	return func(r *ErrorRenderer) {
		r.styles = styles
	}
}

// NewErrorRenderer creates a renderer with source content for context.
// Without WithStyles the header is plain text.
func NewErrorRenderer(source []byte, opts ...ErrorRendererOption) *ErrorRenderer {
	r := &ErrorRenderer{source: source, styles: output.NewStyles(io.Discard)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render formats a single error with styling and context.
func (r *ErrorRenderer) Render(err error) string {
	d, ok := errors.AsDiagnostic(err)
	if !ok {
		return errorStyle.Render(err.Error())
	}

	var buf strings.Builder
	span := d.GetSpan()

	fmt.Fprintf(&buf, "%s[%s]: %s\n", r.styles.Error("error"), r.styles.Code(d.Code()), r.styles.Keyword(d.Message()))

	excerpt, hasExcerpt := errors.NewExcerpt(r.source, span)
	pad := strings.Repeat(" ", len(strconv.Itoa(span.Start.Line)))

	fmt.Fprintf(&buf, "%s%s %s\n", pad, errContextStyle.Render("-->"), r.styles.FilePath(span.Start.String()))

	if hasExcerpt {
		gutter := errContextStyle.Render("|")
		fmt.Fprintf(&buf, "%s %s\n", pad, gutter)
		fmt.Fprintf(&buf, "%s %s %s\n", errContextStyle.Render(strconv.Itoa(excerpt.LineNumber)), gutter, excerpt.Line)
		fmt.Fprintf(&buf, "%s %s %s%s\n", pad, gutter, excerpt.Indent, errCaretStyle.Render(excerpt.Carets()))
	}

	for _, detail := range d.Details() {
		fmt.Fprintf(&buf, "%s %s %s\n", pad, errContextStyle.Render("="), infoStyle.Render("help: "+detail))
	}

	return strings.TrimSuffix(buf.String(), "\n")
}

// RenderAll formats multiple errors, separating them with blank lines.
func (r *ErrorRenderer) RenderAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf strings.Builder
	for i, err := range errs {
		buf.WriteString(r.Render(err))

		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}
