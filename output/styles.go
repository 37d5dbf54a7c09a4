// Package output styles the plain-text parts of vesti's terminal output:
// the telemetry report, diagnostic headers, the doctor dumps and the
// lines printed by vesti run.
package output

import (
	"io"

	"github.com/muesli/termenv"
)

// Styles wraps a termenv output. The color profile is detected from the
// writer, so writing to a pipe or a buffer yields unstyled text.
type Styles struct {
	out *termenv.Output
}

// NewStyles returns styles for text written to w.
func NewStyles(w io.Writer) *Styles {
	return &Styles{out: termenv.NewOutput(w)}
}

func (s *Styles) color(text, code string) termenv.Style {
	return s.out.String(text).Foreground(s.out.Color(code))
}

// Success styles the verb of a completed step, as in "Wrote main.tex".
func (s *Styles) Success(text string) string {
	return s.color(text, "2").Bold().String()
}

// Error styles the "error" label of a diagnostic header.
func (s *Styles) Error(text string) string {
	return s.color(text, "1").Bold().String()
}

// Warning styles the label of a skipped input.
func (s *Styles) Warning(text string) string {
	return s.color(text, "3").Bold().String()
}

// FilePath styles .ves and .tex paths and file:line:col locations.
func (s *Styles) FilePath(text string) string {
	return s.color(text, "6").String()
}

// Code styles a diagnostic code such as E0108.
func (s *Styles) Code(text string) string {
	return s.color(text, "5").String()
}

// TokenType styles the kind column of a token dump.
func (s *Styles) TokenType(text string) string {
	return s.color(text, "3").String()
}

// Keyword styles emphasized text: timer names and diagnostic messages.
func (s *Styles) Keyword(text string) string {
	return s.out.String(text).Bold().String()
}

// Dim styles secondary text such as the tree lines of a report.
func (s *Styles) Dim(text string) string {
	return s.out.String(text).Faint().String()
}

// Timing styles a duration. Slow steps are red.
func (s *Styles) Timing(text string, slow bool) string {
	if slow {
		return s.color(text, "1").String()
	}
	return s.Dim(text)
}
