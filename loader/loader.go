// Package loader reads vesti sources and parses them into documents.
//
// The loader is the one place that touches the filesystem on the input
// side; the parser itself works on bytes:
//
//	doc, err := loader.New().Load(ctx, "main.ves")
//	if err != nil {
//		return err
//	}
//	out := loader.OutputPath(doc.Filename, "build")
package loader

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/robinvdvleuten/vesti/ast"
	"github.com/robinvdvleuten/vesti/parser"
	"github.com/robinvdvleuten/vesti/telemetry"
)

// Extension is the file extension of vesti sources.
const Extension = ".ves"

// Document is a parsed source file.
type Document struct {
	Filename string
	Source   []byte
	Latex    ast.Latex
}

// Loader reads and parses vesti files.
type Loader struct {
	// FS is read instead of the operating system's filesystem when set.
	FS fs.FS
}

// Option configures a Loader.
type Option func(*Loader)

// WithFS makes the loader read from fsys. Paths are then slash-separated
// and relative to its root.
func WithFS(fsys fs.FS) Option {
	return func(l *Loader) {
		l.FS = fsys
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads and parses filename. Read failures are wrapped; syntax errors
// are returned as *parser.ParseError together with the document, so that
// callers can still show the source.
func (l *Loader) Load(ctx context.Context, filename string) (*Document, error) {
	data, err := l.read(ctx, filename)
	if err != nil {
		return nil, err
	}
	return l.LoadBytes(ctx, filename, data)
}

// LoadBytes parses data as the contents of filename.
func (l *Loader) LoadBytes(ctx context.Context, filename string, data []byte) (*Document, error) {
	doc := &Document{Filename: filename, Source: data}

	latex, err := parser.ParseBytesWithFilename(ctx, filename, data)
	if err != nil {
		return doc, err
	}
	doc.Latex = latex
	return doc, nil
}

func (l *Loader) read(ctx context.Context, filename string) ([]byte, error) {
	timer := telemetry.StartTimer(ctx, "loader.read")
	defer timer.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	if l.FS != nil {
		data, err = fs.ReadFile(l.FS, filename)
	} else {
		data, err = os.ReadFile(filename)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return data, nil
}

// OutputPath returns where the LaTeX output of input is written: the same
// name with a .tex extension, placed in outDir when it is not empty.
func OutputPath(input, outDir string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input)) + ".tex"
	if outDir == "" {
		return base
	}
	return filepath.Join(outDir, filepath.Base(base))
}

// IsSource reports whether path has the vesti extension.
func IsSource(path string) bool {
	return filepath.Ext(path) == Extension
}
