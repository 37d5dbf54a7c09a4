package ast

// DefStyle describes how a function definition is declared. The four flags
// are independent; every combination is valid.
type DefStyle struct {
	Long   bool // \long prefix
	Outer  bool // \outer prefix
	Expand bool // expand the body at definition time (\edef, \xdef)
	Global bool // define globally (\gdef, \xdef)
}

// TrimWhitespace selects which edges of a definition body are trimmed.
//
// Function definitions use Start and End. Environment definitions also use
// Mid, the boundary between the begin and end parts; Mid is nil for function
// definitions.
type TrimWhitespace struct {
	Start bool
	Mid   *bool
	End   bool
}

// TrimAll returns a TrimWhitespace with every edge trimmed, including Mid.
func TrimAll() TrimWhitespace {
	mid := true
	return TrimWhitespace{Start: true, Mid: &mid, End: true}
}

// FunctionDefine defines a macro with \def and its variants.
//
// Example:
//
//	ldefun greet(#1)
//	    Hello, #1!
//	enddef
type FunctionDefine struct {
	Style  DefStyle
	Name   string
	Params string // verbatim parameter text, e.g. "#1#2"
	Trim   TrimWhitespace
	Body   Latex
}

// EnvironmentDefine defines an environment with \newenvironment or
// \renewenvironment.
//
// Example:
//
//	defenv note[1, Note]
//	    \textbf{#1}:
//	endswith
//	    \par
//	endenv
type EnvironmentDefine struct {
	Redefine    bool
	Name        string
	ArgsNum     uint8
	OptionalArg Latex // nil when no default is given
	Trim        TrimWhitespace
	Begin       Latex
	End         Latex
}

func (*FunctionDefine) Kind() string    { return "FunctionDefine" }
func (*EnvironmentDefine) Kind() string { return "EnvironmentDefine" }

func (*FunctionDefine) statementNode()    {}
func (*EnvironmentDefine) statementNode() {}

var (
	_ Statement = &FunctionDefine{}
	_ Statement = &EnvironmentDefine{}
)
