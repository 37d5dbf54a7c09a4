// Package codegen renders an ast.Latex into LaTeX source.
//
// Rendering is deterministic: the same tree always produces the same bytes.
// Output is built in a buffer and written once.
package codegen

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/robinvdvleuten/vesti/ast"
	"github.com/robinvdvleuten/vesti/telemetry"
)

// Generator renders vesti syntax trees to LaTeX.
type Generator struct {
	// Banner prepends the generated-file comment. Disabled in test mode.
	Banner bool

	// Engine is the engine named in the banner.
	Engine Engine

	// Version is the vesti version named in the banner.
	Version string
}

// Option is a functional option for configuring the Generator.
type Option func(*Generator)

// WithBanner enables or disables the generated-file banner.
func WithBanner(banner bool) Option {
	return func(g *Generator) {
		g.Banner = banner
	}
}

// WithEngine sets the engine named in the banner.
func WithEngine(engine Engine) Option {
	return func(g *Generator) {
		g.Engine = engine
	}
}

// WithVersion sets the version named in the banner.
func WithVersion(version string) Option {
	return func(g *Generator) {
		g.Version = version
	}
}

// New creates a Generator with the given options.
func New(opts ...Option) *Generator {
	g := &Generator{
		Banner:  true,
		Engine:  Pdflatex,
		Version: "dev",
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders latex and writes the result to w.
func (g *Generator) Generate(ctx context.Context, latex ast.Latex, w io.Writer) error {
	timer := telemetry.StartTimer(ctx, "codegen.generate")
	defer timer.End()

	_, err := io.WriteString(w, g.String(latex))
	return err
}

// String renders latex to a string.
func (g *Generator) String(latex ast.Latex) string {
	var buf strings.Builder
	if g.Banner {
		fmt.Fprintf(&buf, "%%\n%%  This file was generated by vesti %s\n%%  Compile this file using %s engine\n", g.Version, g.Engine)
	}
	writeLatex(&buf, latex)
	return buf.String()
}

// Render renders latex without a banner.
func Render(latex ast.Latex) string {
	var buf strings.Builder
	writeLatex(&buf, latex)
	return buf.String()
}

func writeLatex(buf *strings.Builder, latex ast.Latex) {
	for _, stmt := range latex {
		writeStatement(buf, stmt)
	}
}

func writeStatement(buf *strings.Builder, stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Nop:
	case *ast.NonStopMode:
		buf.WriteString("\\nonstopmode\n")
	case *ast.MakeAtLetter:
		buf.WriteString("\\makeatletter\n")
	case *ast.MakeAtOther:
		buf.WriteString("\\makeatother\n")
	case *ast.Latex3On:
		buf.WriteString("\\ExplSyntaxOn\n")
	case *ast.Latex3Off:
		buf.WriteString("\\ExplSyntaxOff\n")
	case *ast.ImportExpl3:
		buf.WriteString("\\usepackage{expl3, xparse}\n")
	case *ast.DocumentClass:
		writeDeclaration(buf, "documentclass", s.Name, s.Options)
	case *ast.UsePackage:
		writeDeclaration(buf, "usepackage", s.Name, s.Options)
	case *ast.MultiUsePackages:
		for _, pkg := range s.Packages {
			writeDeclaration(buf, "usepackage", pkg.Name, pkg.Options)
		}
	case *ast.DocumentStart:
		buf.WriteString("\\begin{document}\n")
	case *ast.DocumentEnd:
		buf.WriteString("\n\\end{document}\n")
	case *ast.MainText:
		buf.WriteString(s.Value)
	case *ast.Integer:
		buf.WriteString(strconv.FormatInt(s.Value, 10))
	case *ast.Float:
		buf.WriteString(s.Value.String())
	case *ast.RawLatex:
		buf.WriteString(s.Value)
	case *ast.BracedStmt:
		buf.WriteByte('{')
		writeLatex(buf, s.Body)
		buf.WriteByte('}')
	case *ast.Fraction:
		buf.WriteString("\\frac{")
		writeLatex(buf, s.Numerator)
		buf.WriteString("}{")
		writeLatex(buf, s.Denominator)
		buf.WriteByte('}')
	case *ast.MathText:
		writeMath(buf, s)
	case *ast.MathDelimiter:
		writeDelimiter(buf, s)
	case *ast.PlainTextInMath:
		buf.WriteString("\\text{")
		writeLatex(buf, s.Body)
		buf.WriteByte('}')
	case *ast.LatexFunction:
		buf.WriteString(s.Name)
		writeArguments(buf, s.Args)
	case *ast.Environment:
		fmt.Fprintf(buf, "\\begin{%s}", s.Name)
		writeArguments(buf, s.Args)
		writeLatex(buf, s.Body)
		fmt.Fprintf(buf, "\\end{%s}\n", s.Name)
	case *ast.BeginPhantomEnvironment:
		fmt.Fprintf(buf, "\\begin{%s}", s.Name)
		if s.AddNewline {
			buf.WriteByte('\n')
		}
		writeArguments(buf, s.Args)
	case *ast.EndPhantomEnvironment:
		fmt.Fprintf(buf, "\\end{%s}", s.Name)
	case *ast.FunctionDefine:
		writeFunctionDefine(buf, s)
	case *ast.EnvironmentDefine:
		writeEnvironmentDefine(buf, s)
	default:
		panic(fmt.Sprintf("codegen: unsupported statement %T", stmt))
	}
}

// writeDeclaration renders \documentclass and \usepackage lines.
func writeDeclaration(buf *strings.Builder, command, name string, options []ast.Latex) {
	buf.WriteByte('\\')
	buf.WriteString(command)
	if options != nil {
		buf.WriteByte('[')
		for i, option := range options {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeLatex(buf, option)
		}
		buf.WriteByte(']')
	}
	fmt.Fprintf(buf, "{%s}\n", name)
}

func writeMath(buf *strings.Builder, math *ast.MathText) {
	switch math.State {
	case ast.InlineMath:
		buf.WriteString("\\[")
		writeLatex(buf, math.Body)
		buf.WriteString("\\]")
	default:
		buf.WriteByte('$')
		writeLatex(buf, math.Body)
		buf.WriteByte('$')
	}
}

func writeDelimiter(buf *strings.Builder, d *ast.MathDelimiter) {
	switch d.Size {
	case ast.LeftBig:
		buf.WriteString("\\left")
	case ast.RightBig:
		buf.WriteString("\\right")
	}
	buf.WriteString(d.Delimiter)
}

func writeArguments(buf *strings.Builder, args []ast.Argument) {
	for _, arg := range args {
		switch arg.Need {
		case ast.MainArg:
			buf.WriteByte('{')
			writeLatex(buf, arg.Body)
			buf.WriteByte('}')
		case ast.Optional:
			buf.WriteByte('[')
			writeLatex(buf, arg.Body)
			buf.WriteByte(']')
		case ast.StarArg:
			buf.WriteByte('*')
		}
	}
}

// Definer returns the TeX primitive that defines a macro with the given
// style, including its \long and \outer prefixes.
func Definer(style ast.DefStyle) string {
	var def strings.Builder
	if style.Long {
		def.WriteString("\\long")
	}
	if style.Outer {
		def.WriteString("\\outer")
	}
	switch {
	case style.Expand && style.Global:
		def.WriteString("\\xdef")
	case style.Global:
		def.WriteString("\\gdef")
	case style.Expand:
		def.WriteString("\\edef")
	default:
		def.WriteString("\\def")
	}
	return def.String()
}

func writeFunctionDefine(buf *strings.Builder, def *ast.FunctionDefine) {
	fmt.Fprintf(buf, "%s\\%s%s{", Definer(def.Style), def.Name, def.Params)
	if def.Trim.Start {
		buf.WriteString("%\n")
	}
	buf.WriteString(trimBody(Render(def.Body), def.Trim.Start, def.Trim.End))
	buf.WriteString("%\n}\n")
}

func writeEnvironmentDefine(buf *strings.Builder, def *ast.EnvironmentDefine) {
	if def.Trim.Mid == nil {
		panic("codegen: environment definition " + def.Name + " has no middle trim flag")
	}
	mid := *def.Trim.Mid

	if def.Redefine {
		fmt.Fprintf(buf, "\\renewenvironment{%s}", def.Name)
	} else {
		fmt.Fprintf(buf, "\\newenvironment{%s}", def.Name)
	}
	if def.ArgsNum > 0 {
		fmt.Fprintf(buf, "[%d]", def.ArgsNum)
		if def.OptionalArg != nil {
			buf.WriteByte('[')
			writeLatex(buf, def.OptionalArg)
			buf.WriteByte(']')
		}
	}

	buf.WriteByte('{')
	buf.WriteString(trimBody(Render(def.Begin), def.Trim.Start, mid))
	buf.WriteString("}{")
	buf.WriteString(trimBody(Render(def.End), mid, def.Trim.End))
	buf.WriteString("}\n")
}

// trimBody trims leading whitespace when left is set and trailing
// whitespace when right is set.
func trimBody(body string, left, right bool) string {
	if left {
		body = strings.TrimLeftFunc(body, unicode.IsSpace)
	}
	if right {
		body = strings.TrimRightFunc(body, unicode.IsSpace)
	}
	return body
}
