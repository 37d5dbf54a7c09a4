// Package errors renders compiler diagnostics.
//
// It separates presentation from the parser, so the same error can be
// shown in several formats:
//   - TextFormatter: plain text with a source excerpt, for logs and pipes
//   - JSONFormatter: structured JSON for editors and other tools
//
// The styled terminal renderer lives in the cli package and builds on
// Excerpt.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/robinvdvleuten/vesti/ast"
)

// Diagnostic is an error that points at source text. *parser.ParseError
// implements it.
type Diagnostic interface {
	error
	Code() string
	Message() string
	GetSpan() ast.Span
	Details() []string
}

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

// AsDiagnostic returns err as a Diagnostic when it is one or wraps one.
func AsDiagnostic(err error) (Diagnostic, bool) {
	var d Diagnostic
	if stderrors.As(err, &d) {
		return d, true
	}
	return nil, false
}

// TextFormatter formats diagnostics as plain text:
//
//	error[E0108]: `begenv` is not closed
//	 --> main.ves:3:1
//	  |
//	3 | begenv center
//	  | ^^^^^^
//	  = help: add `endenv` to close it
type TextFormatter struct {
	sourceContent []byte
}

// TextFormatterOption is an option for configuring TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the source content shown under each diagnostic.
func WithSource(source []byte) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.sourceContent = source
	}
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error. Errors that are not diagnostics are
// returned as their Error text.
func (tf *TextFormatter) Format(err error) string {
	d, ok := AsDiagnostic(err)
	if !ok {
		return err.Error()
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "error[%s]: %s\n", d.Code(), d.Message())

	span := d.GetSpan()
	excerpt, hasExcerpt := NewExcerpt(tf.sourceContent, span)
	gutter := strings.Repeat(" ", len(strconv.Itoa(span.Start.Line)))

	fmt.Fprintf(&buf, "%s--> %s\n", gutter, span.Start)
	if hasExcerpt {
		fmt.Fprintf(&buf, "%s |\n", gutter)
		fmt.Fprintf(&buf, "%d | %s\n", excerpt.LineNumber, excerpt.Line)
		fmt.Fprintf(&buf, "%s | %s%s\n", gutter, excerpt.Indent, excerpt.Carets())
	}
	for _, detail := range d.Details() {
		fmt.Fprintf(&buf, "%s = help: %s\n", gutter, detail)
	}

	return strings.TrimSuffix(buf.String(), "\n")
}

// FormatAll formats multiple errors, separating them with blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, tf.Format(err))
	}
	return strings.Join(parts, "\n\n")
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string         `json:"type"`
	Code     string         `json:"code,omitempty"`
	Message  string         `json:"message"`
	Position *PositionJSON  `json:"position,omitempty"`
	End      *PositionJSON  `json:"end,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
}

// PositionJSON represents a file position in JSON format.
type PositionJSON struct {
	Filename string `json:"filename,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.toJSON(err))
	return string(data)
}

// FormatAll formats multiple errors as a JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	data, _ := json.MarshalIndent(jf.FormatAllToSlice(errs), "", "  ")
	return string(data)
}

// FormatAllToSlice returns errors as a slice of ErrorJSON structs.
func (jf *JSONFormatter) FormatAllToSlice(errs []error) []ErrorJSON {
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		result = append(result, jf.toJSON(err))
	}
	return result
}

func (jf *JSONFormatter) toJSON(err error) ErrorJSON {
	d, ok := AsDiagnostic(err)
	if !ok {
		return ErrorJSON{Type: fmt.Sprintf("%T", err), Message: err.Error()}
	}

	span := d.GetSpan()
	errJSON := ErrorJSON{
		Type:     fmt.Sprintf("%T", d),
		Code:     d.Code(),
		Message:  d.Message(),
		Position: positionJSON(span.Start),
	}
	if !span.End.IsZero() {
		errJSON.End = positionJSON(span.End)
	}
	if help := d.Details(); len(help) > 0 {
		errJSON.Details = map[string]any{"help": help}
	}
	return errJSON
}

func positionJSON(pos ast.Position) *PositionJSON {
	return &PositionJSON{
		Filename: pos.Filename,
		Line:     pos.Line,
		Column:   pos.Column,
	}
}
