package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/vesti/loader"
	"github.com/robinvdvleuten/vesti/output"
	"github.com/robinvdvleuten/vesti/parser"
)

// DoctorCmd provides doctor utilities for debugging vesti files.
type DoctorCmd struct {
	Lex LexCmd `cmd:"" help:"Show lexical tokens from a vesti file."`
	AST ASTCmd `cmd:"" name:"ast" help:"Show the parsed syntax tree of a vesti file."`
}

// LexCmd shows lexical tokens from a vesti file.
type LexCmd struct {
	File FileOrStdin `help:"Vesti input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Math bool        `help:"Scan in math mode instead of text mode."`
}

// Run executes the lex command.
func (cmd *LexCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	content, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	mode := parser.TextMode
	if cmd.Math {
		mode = parser.MathMode
	}

	styles := output.NewStyles(ctx.Stdout)

	// Format: TYPE line:col "literal"
	for _, token := range parser.NewLexer(content, cmd.File.Filename).ScanAll(mode) {
		if token.Type == parser.EOF {
			continue
		}
		_, _ = fmt.Fprintf(ctx.Stdout, "%s %d:%d    %q\n",
			styles.TokenType(fmt.Sprintf("%-10s", token.Type)),
			token.Span.Start.Line,
			token.Span.Start.Column,
			token.Literal)
	}

	return nil
}

// ASTCmd dumps the syntax tree of a vesti file.
type ASTCmd struct {
	File FileOrStdin `help:"Vesti input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

// Run executes the ast command.
func (cmd *ASTCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	doc, err := cmd.File.LoadDocument(context.Background(), loader.New())
	if err != nil {
		var source []byte
		if doc != nil {
			source = doc.Source
		}
		reportError(ctx.Stderr, errorFormatText, source, err)
		return NewCommandError(1)
	}

	repr.New(ctx.Stdout, repr.Indent("  "), repr.OmitEmpty(true)).Println(doc.Latex)

	return nil
}
