// Package ast defines the syntax tree produced by the vesti parser.
//
// A document is an ordered list of statements (Latex). Statements are plain
// data: rendering them to LaTeX is the job of the codegen package. Bodies of
// environments, arguments and definitions are themselves Latex values, so the
// tree is strictly nested and owns all of its children.
//
// Example:
//
//	docclass article
//	startdoc
//	Hello, $x^2$!
//
// parses into
//
//	Latex{
//		&DocumentClass{Name: "article"},
//		&DocumentStart{},
//		&MainText{Value: "Hello"}, &MainText{Value: ","}, ...
//		&MathText{State: TextMath, Body: Latex{...}},
//		&MainText{Value: "!"},
//		&DocumentEnd{},
//	}
package ast

// Latex is an ordered sequence of statements.
type Latex []Statement

// Statement is implemented by every node the parser can produce.
type Statement interface {
	// Kind returns a short, stable name of the statement variant.
	Kind() string
	statementNode()
}

// ArgNeed tells how an argument is bracketed in the generated LaTeX.
type ArgNeed uint8

const (
	// MainArg is a mandatory argument rendered as {...}.
	MainArg ArgNeed = iota
	// Optional is an optional argument rendered as [...].
	Optional
	// StarArg is a bare * marker.
	StarArg
)

var argNeedNames = map[ArgNeed]string{
	MainArg:  "MainArg",
	Optional: "Optional",
	StarArg:  "StarArg",
}

func (a ArgNeed) String() string {
	if name, ok := argNeedNames[a]; ok {
		return name
	}
	return "ArgNeed(?)"
}

// Argument is a single argument of a LaTeX function or environment.
// StarArg arguments always have an empty body.
type Argument struct {
	Need ArgNeed
	Body Latex
}

// MathState distinguishes inline text math from displayed math.
type MathState uint8

const (
	// TextMath is math inside running text: $...$.
	TextMath MathState = iota
	// InlineMath is displayed math: \[...\].
	InlineMath
)

func (m MathState) String() string {
	if m == InlineMath {
		return "InlineMath"
	}
	return "TextMath"
}

// DelimiterKind selects the sizing command of a MathDelimiter.
type DelimiterKind uint8

const (
	// DefaultDelimiter renders the delimiter as is.
	DefaultDelimiter DelimiterKind = iota
	// LeftBig renders \left before the delimiter.
	LeftBig
	// RightBig renders \right before the delimiter.
	RightBig
)

var delimiterKindNames = map[DelimiterKind]string{
	DefaultDelimiter: "Default",
	LeftBig:          "LeftBig",
	RightBig:         "RightBig",
}

func (d DelimiterKind) String() string {
	if name, ok := delimiterKindNames[d]; ok {
		return name
	}
	return "DelimiterKind(?)"
}
