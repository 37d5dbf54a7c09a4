// Package vesti compiles vesti markup to LaTeX.
//
// Compile runs the whole pipeline on a single source:
//
//	latex, err := vesti.Compile(ctx, "main.ves", src, codegen.WithEngine(codegen.XeLatex))
//
// The parser, codegen and loader packages expose the individual stages.
package vesti

import (
	"context"

	"github.com/robinvdvleuten/vesti/codegen"
	"github.com/robinvdvleuten/vesti/parser"
)

// Compile parses src and renders it. filename is only used in error
// positions. Syntax errors are returned as *parser.ParseError.
func Compile(ctx context.Context, filename string, src []byte, opts ...codegen.Option) (string, error) {
	latex, err := parser.ParseBytesWithFilename(ctx, filename, src)
	if err != nil {
		return "", err
	}
	return codegen.New(opts...).String(latex), nil
}
