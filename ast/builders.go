package ast

import (
	"strings"

	"github.com/shopspring/decimal"
)

// The constructors below build syntax trees from code, for example to
// generate LaTeX preambles without writing vesti source first. The results
// are the same nodes the parser produces and render with the codegen
// package.

// NewText creates a verbatim text fragment.
func NewText(value string) *MainText {
	return &MainText{Value: value}
}

// NewInteger creates an integer literal.
func NewInteger(value int64) *Integer {
	return &Integer{Value: value}
}

// NewFloat parses value as an exact decimal literal.
//
// Example:
//
//	f, err := ast.NewFloat("0.25")
func NewFloat(value string) (*Float, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, err
	}
	return &Float{Value: d}, nil
}

// NewDocumentClass creates a document class declaration. Each option is a
// single text fragment.
//
// Example:
//
//	ast.NewDocumentClass("article", "a4paper", "11pt")
func NewDocumentClass(name string, options ...string) *DocumentClass {
	return &DocumentClass{Name: name, Options: textOptions(options)}
}

// NewUsePackage creates a single package import.
func NewUsePackage(name string, options ...string) *UsePackage {
	return &UsePackage{Name: name, Options: textOptions(options)}
}

func textOptions(options []string) []Latex {
	if len(options) == 0 {
		return nil
	}
	out := make([]Latex, len(options))
	for i, option := range options {
		out[i] = Latex{NewText(option)}
	}
	return out
}

// NewMainArg creates a mandatory {...} argument.
func NewMainArg(body ...Statement) Argument {
	return Argument{Need: MainArg, Body: body}
}

// NewOptionalArg creates an optional [...] argument.
func NewOptionalArg(body ...Statement) Argument {
	return Argument{Need: Optional, Body: body}
}

// NewStarArg creates the * marker of starred commands.
func NewStarArg() Argument {
	return Argument{Need: StarArg}
}

// NewFunction creates a LaTeX command. The leading backslash is added when
// name does not have one.
//
// Example:
//
//	ast.NewFunction("section", ast.NewStarArg(), ast.NewMainArg(ast.NewText("Intro")))
func NewFunction(name string, args ...Argument) *LatexFunction {
	if !strings.HasPrefix(name, `\`) {
		name = `\` + name
	}
	return &LatexFunction{Name: name, Args: args}
}

// NewEnvironment creates a \begin{name} ... \end{name} block.
func NewEnvironment(name string, body Latex, args ...Argument) *Environment {
	return &Environment{Name: name, Args: args, Body: body}
}

// NewMath creates $...$ math inside running text.
func NewMath(body ...Statement) *MathText {
	return &MathText{State: TextMath, Body: body}
}

// NewDisplayMath creates \[...\] math.
func NewDisplayMath(body ...Statement) *MathText {
	return &MathText{State: InlineMath, Body: body}
}

// NewFraction creates \frac{numerator}{denominator}.
func NewFraction(numerator, denominator Latex) *Fraction {
	return &Fraction{Numerator: numerator, Denominator: denominator}
}

// NewDelimiter creates a math delimiter such as ( or \{ with the given size.
func NewDelimiter(delimiter string, size DelimiterKind) *MathDelimiter {
	return &MathDelimiter{Delimiter: delimiter, Size: size}
}

// FunctionDefineOption is a functional option for configuring a FunctionDefine.
type FunctionDefineOption func(*FunctionDefine)

// NewFunctionDefine creates a \def of name. Both edges of the body are
// trimmed unless WithTrim says otherwise.
//
// Example:
//
//	def := ast.NewFunctionDefine("greet", body,
//	    ast.WithDefStyle(ast.DefStyle{Long: true}),
//	    ast.WithParams("#1"),
//	)
func NewFunctionDefine(name string, body Latex, opts ...FunctionDefineOption) *FunctionDefine {
	def := &FunctionDefine{
		Name: name,
		Trim: TrimWhitespace{Start: true, End: true},
		Body: body,
	}

	for _, opt := range opts {
		opt(def)
	}

	return def
}

// WithDefStyle sets the \long, \outer, expansion and global flags.
func WithDefStyle(style DefStyle) FunctionDefineOption {
	return func(d *FunctionDefine) {
		d.Style = style
	}
}

// WithParams sets the verbatim parameter text, e.g. "#1#2".
func WithParams(params string) FunctionDefineOption {
	return func(d *FunctionDefine) {
		d.Params = params
	}
}

// WithTrim sets which edges of the body are trimmed. Mid is ignored.
func WithTrim(start, end bool) FunctionDefineOption {
	return func(d *FunctionDefine) {
		d.Trim = TrimWhitespace{Start: start, End: end}
	}
}

// EnvironmentDefineOption is a functional option for configuring an EnvironmentDefine.
type EnvironmentDefineOption func(*EnvironmentDefine)

// NewEnvironmentDefine creates a \newenvironment of name with every edge
// trimmed.
func NewEnvironmentDefine(name string, begin, end Latex, opts ...EnvironmentDefineOption) *EnvironmentDefine {
	def := &EnvironmentDefine{
		Name:  name,
		Trim:  TrimAll(),
		Begin: begin,
		End:   end,
	}

	for _, opt := range opts {
		opt(def)
	}

	return def
}

// WithRedefine renders \renewenvironment instead of \newenvironment.
func WithRedefine() EnvironmentDefineOption {
	return func(d *EnvironmentDefine) {
		d.Redefine = true
	}
}

// WithArgs sets the argument count and the default of the first argument.
// defaultArg may be nil.
func WithArgs(count uint8, defaultArg Latex) EnvironmentDefineOption {
	return func(d *EnvironmentDefine) {
		d.ArgsNum = count
		d.OptionalArg = defaultArg
	}
}

// WithEnvironmentTrim sets which edges of the begin and end parts are trimmed.
func WithEnvironmentTrim(start, mid, end bool) EnvironmentDefineOption {
	return func(d *EnvironmentDefine) {
		d.Trim = TrimWhitespace{Start: start, Mid: &mid, End: end}
	}
}
