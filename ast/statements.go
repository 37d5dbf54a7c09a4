package ast

import "github.com/shopspring/decimal"

// Nop produces no output.
type Nop struct{}

// NonStopMode renders \nonstopmode.
type NonStopMode struct{}

// MakeAtLetter renders \makeatletter.
type MakeAtLetter struct{}

// MakeAtOther renders \makeatother.
type MakeAtOther struct{}

// Latex3On renders \ExplSyntaxOn.
type Latex3On struct{}

// Latex3Off renders \ExplSyntaxOff.
type Latex3Off struct{}

// ImportExpl3 imports the expl3 and xparse packages.
type ImportExpl3 struct{}

// DocumentClass declares the document class of the generated file.
//
// A nil Options means no option list was written; an empty non-nil
// Options renders as an empty [] list.
//
// Example:
//
//	docclass article (a4paper, 11pt)
type DocumentClass struct {
	Name    string
	Options []Latex
}

// UsePackage imports a single package.
//
// Example:
//
//	import geometry (margin = 1in)
type UsePackage struct {
	Name    string
	Options []Latex
}

// MultiUsePackages imports several packages written in one braced block.
//
// Example:
//
//	import {
//	    amsmath
//	    geometry (a4paper)
//	}
type MultiUsePackages struct {
	Packages []*UsePackage
}

// DocumentStart renders \begin{document}.
type DocumentStart struct{}

// DocumentEnd renders \end{document}.
type DocumentEnd struct{}

// MainText is a verbatim text fragment.
type MainText struct {
	Value string
}

// Integer is an integer literal.
type Integer struct {
	Value int64
}

// Float is a decimal literal kept exact for byte-stable output.
type Float struct {
	Value decimal.Decimal
}

// RawLatex is LaTeX passed through untouched.
type RawLatex struct {
	Value string
}

// BracedStmt is a {...} group.
type BracedStmt struct {
	Body Latex
}

// Fraction is a braced group split by a fraction divider.
type Fraction struct {
	Numerator   Latex
	Denominator Latex
}

// MathText is a math span.
type MathText struct {
	State MathState
	Body  Latex
}

// MathDelimiter is a delimiter inside math, optionally sized with \left
// or \right.
type MathDelimiter struct {
	Delimiter string
	Size      DelimiterKind
}

// PlainTextInMath is a text span inside math, rendered with \text.
type PlainTextInMath struct {
	Body Latex
}

// LatexFunction is a control sequence with its arguments in source order.
// Name includes the leading backslash.
type LatexFunction struct {
	Name string
	Args []Argument
}

// Environment is a complete \begin ... \end pair with its body.
type Environment struct {
	Name string
	Args []Argument
	Body Latex
}

// BeginPhantomEnvironment renders only \begin{Name} and its arguments.
// The body and the matching end marker are supplied elsewhere.
// AddNewline puts a newline between \begin{Name} and the arguments.
type BeginPhantomEnvironment struct {
	Name       string
	Args       []Argument
	AddNewline bool
}

// EndPhantomEnvironment renders only \end{Name}.
type EndPhantomEnvironment struct {
	Name string
}

func (*Nop) Kind() string                     { return "Nop" }
func (*NonStopMode) Kind() string             { return "NonStopMode" }
func (*MakeAtLetter) Kind() string            { return "MakeAtLetter" }
func (*MakeAtOther) Kind() string             { return "MakeAtOther" }
func (*Latex3On) Kind() string                { return "Latex3On" }
func (*Latex3Off) Kind() string               { return "Latex3Off" }
func (*ImportExpl3) Kind() string             { return "ImportExpl3" }
func (*DocumentClass) Kind() string           { return "DocumentClass" }
func (*UsePackage) Kind() string              { return "UsePackage" }
func (*MultiUsePackages) Kind() string        { return "MultiUsePackages" }
func (*DocumentStart) Kind() string           { return "DocumentStart" }
func (*DocumentEnd) Kind() string             { return "DocumentEnd" }
func (*MainText) Kind() string                { return "MainText" }
func (*Integer) Kind() string                 { return "Integer" }
func (*Float) Kind() string                   { return "Float" }
func (*RawLatex) Kind() string                { return "RawLatex" }
func (*BracedStmt) Kind() string              { return "BracedStmt" }
func (*Fraction) Kind() string                { return "Fraction" }
func (*MathText) Kind() string                { return "MathText" }
func (*MathDelimiter) Kind() string           { return "MathDelimiter" }
func (*PlainTextInMath) Kind() string         { return "PlainTextInMath" }
func (*LatexFunction) Kind() string           { return "LatexFunction" }
func (*Environment) Kind() string             { return "Environment" }
func (*BeginPhantomEnvironment) Kind() string { return "BeginPhantomEnvironment" }
func (*EndPhantomEnvironment) Kind() string   { return "EndPhantomEnvironment" }

func (*Nop) statementNode()                     {}
func (*NonStopMode) statementNode()             {}
func (*MakeAtLetter) statementNode()            {}
func (*MakeAtOther) statementNode()             {}
func (*Latex3On) statementNode()                {}
func (*Latex3Off) statementNode()               {}
func (*ImportExpl3) statementNode()             {}
func (*DocumentClass) statementNode()           {}
func (*UsePackage) statementNode()              {}
func (*MultiUsePackages) statementNode()        {}
func (*DocumentStart) statementNode()           {}
func (*DocumentEnd) statementNode()             {}
func (*MainText) statementNode()                {}
func (*Integer) statementNode()                 {}
func (*Float) statementNode()                   {}
func (*RawLatex) statementNode()                {}
func (*BracedStmt) statementNode()              {}
func (*Fraction) statementNode()                {}
func (*MathText) statementNode()                {}
func (*MathDelimiter) statementNode()           {}
func (*PlainTextInMath) statementNode()         {}
func (*LatexFunction) statementNode()           {}
func (*Environment) statementNode()             {}
func (*BeginPhantomEnvironment) statementNode() {}
func (*EndPhantomEnvironment) statementNode()   {}

var (
	_ Statement = &Nop{}
	_ Statement = &DocumentClass{}
	_ Statement = &MultiUsePackages{}
	_ Statement = &Float{}
	_ Statement = &Fraction{}
	_ Statement = &MathDelimiter{}
	_ Statement = &LatexFunction{}
	_ Statement = &Environment{}
	_ Statement = &EndPhantomEnvironment{}
)
