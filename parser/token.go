package parser

import (
	"github.com/robinvdvleuten/vesti/ast"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// TokenType represents the type of token scanned from the input.
type TokenType uint8

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Whitespace
	SPACE            // ' '
	SPACE2           // \ (text mode)
	TAB              // \t
	NEWLINE          // \n, \r\n, \r
	MATH_SMALL_SPACE // \, (math mode)
	MATH_LARGE_SPACE // \  (math mode)

	// Literals
	INTEGER        // 42
	FLOAT          // 3.14
	TEXT           // words and escaped characters
	LATEX_FUNCTION // \command
	RAW_LATEX      // #! ... !#  and  ##- ... -##

	// Keywords
	DOCCLASS     // docclass
	IMPORT       // import
	IMPORTLTX3   // importltx3
	STARTDOC     // startdoc
	ENDDOC       // enddoc
	DOCSTARTMODE // docstartmode
	NONSTOPMODE  // nonstopmode
	MAKEATLETTER // makeatletter
	MAKEATOTHER  // makeatother
	LTX3ON       // ltx3on
	LTX3OFF      // ltx3off
	BEGENV       // begenv
	ENDENV       // endenv
	USEENV       // useenv
	PBEGENV      // pbegenv
	PENDENV      // pendenv
	MTXT         // mtxt
	ETXT         // etxt
	DEFUN        // defun
	LDEFUN       // ldefun
	ODEFUN       // odefun
	LODEFUN      // lodefun
	EDEFUN       // edefun
	LEDEFUN      // ledefun
	OEDEFUN      // oedefun
	LOEDEFUN     // loedefun
	GDEFUN       // gdefun
	LGDEFUN      // lgdefun
	OGDEFUN      // ogdefun
	LOGDEFUN     // logdefun
	XDEFUN       // xdefun
	LXDEFUN      // lxdefun
	OXDEFUN      // oxdefun
	LOXDEFUN     // loxdefun
	ENDDEF       // enddef
	DEFENV       // defenv
	REDEFENV     // redefenv
	ENDSWITH     // endswith

	// Symbols
	PLUS         // +
	MINUS        // -
	STAR         // *
	SLASH        // /
	FRAC_DIVIDE  // // (math mode)
	EQUAL        // =
	LESS         // <
	GREAT        // >
	LESSEQ       // <=
	GREATEQ      // >=
	BANG         // !
	QUESTION     // ?
	AT           // @
	SUPERSCRIPT  // ^
	SUBSCRIPT    // _
	AMPERSAND    // &
	VERT         // |
	PERIOD       // .
	COMMA        // ,
	COLON        // :
	SEMICOLON    // ;
	TILDE        // ~
	QUOTE        // '
	QUOTE2       // `
	DOUBLEQUOTE  // "
	BACKSLASH    // \\
	SHARP        // \#
	DOLLAR       // \$
	PERCENT      // \%
	FNT_PARAM    // #
	ARG_SPLITER  // \;
	OBEY_NEWLINE // ##+ (deprecated)

	// Delimiters
	LPAREN            // (
	RPAREN            // )
	LBRACE            // {
	RBRACE            // }
	LSQBRACE          // [
	RSQBRACE          // ]
	MATH_LBRACE       // \{
	MATH_RBRACE       // \}
	TEXT_MATH_START   // $ or \(
	TEXT_MATH_END     // $ or \)
	INLINE_MATH_START // $$ or \[
	INLINE_MATH_END   // $$ or \]
)

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	SPACE:            "SPACE",
	SPACE2:           "SPACE2",
	TAB:              "TAB",
	NEWLINE:          "NEWLINE",
	MATH_SMALL_SPACE: "MATH_SMALL_SPACE",
	MATH_LARGE_SPACE: "MATH_LARGE_SPACE",

	INTEGER:        "INTEGER",
	FLOAT:          "FLOAT",
	TEXT:           "TEXT",
	LATEX_FUNCTION: "LATEX_FUNCTION",
	RAW_LATEX:      "RAW_LATEX",

	DOCCLASS:     "docclass",
	IMPORT:       "import",
	IMPORTLTX3:   "importltx3",
	STARTDOC:     "startdoc",
	ENDDOC:       "enddoc",
	DOCSTARTMODE: "docstartmode",
	NONSTOPMODE:  "nonstopmode",
	MAKEATLETTER: "makeatletter",
	MAKEATOTHER:  "makeatother",
	LTX3ON:       "ltx3on",
	LTX3OFF:      "ltx3off",
	BEGENV:       "begenv",
	ENDENV:       "endenv",
	USEENV:       "useenv",
	PBEGENV:      "pbegenv",
	PENDENV:      "pendenv",
	MTXT:         "mtxt",
	ETXT:         "etxt",
	DEFUN:        "defun",
	LDEFUN:       "ldefun",
	ODEFUN:       "odefun",
	LODEFUN:      "lodefun",
	EDEFUN:       "edefun",
	LEDEFUN:      "ledefun",
	OEDEFUN:      "oedefun",
	LOEDEFUN:     "loedefun",
	GDEFUN:       "gdefun",
	LGDEFUN:      "lgdefun",
	OGDEFUN:      "ogdefun",
	LOGDEFUN:     "logdefun",
	XDEFUN:       "xdefun",
	LXDEFUN:      "lxdefun",
	OXDEFUN:      "oxdefun",
	LOXDEFUN:     "loxdefun",
	ENDDEF:       "enddef",
	DEFENV:       "defenv",
	REDEFENV:     "redefenv",
	ENDSWITH:     "endswith",

	PLUS:         "+",
	MINUS:        "-",
	STAR:         "*",
	SLASH:        "/",
	FRAC_DIVIDE:  "//",
	EQUAL:        "=",
	LESS:         "<",
	GREAT:        ">",
	LESSEQ:       "<=",
	GREATEQ:      ">=",
	BANG:         "!",
	QUESTION:     "?",
	AT:           "@",
	SUPERSCRIPT:  "^",
	SUBSCRIPT:    "_",
	AMPERSAND:    "&",
	VERT:         "|",
	PERIOD:       ".",
	COMMA:        ",",
	COLON:        ":",
	SEMICOLON:    ";",
	TILDE:        "~",
	QUOTE:        "'",
	QUOTE2:       "`",
	DOUBLEQUOTE:  "\"",
	BACKSLASH:    "\\\\",
	SHARP:        "\\#",
	DOLLAR:       "\\$",
	PERCENT:      "\\%",
	FNT_PARAM:    "#",
	ARG_SPLITER:  "\\;",
	OBEY_NEWLINE: "##+",

	LPAREN:            "(",
	RPAREN:            ")",
	LBRACE:            "{",
	RBRACE:            "}",
	LSQBRACE:          "[",
	RSQBRACE:          "]",
	MATH_LBRACE:       "\\{",
	MATH_RBRACE:       "\\}",
	TEXT_MATH_START:   "TEXT_MATH_START",
	TEXT_MATH_END:     "TEXT_MATH_END",
	INLINE_MATH_START: "INLINE_MATH_START",
	INLINE_MATH_END:   "INLINE_MATH_END",
}

// String returns the string representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsKeyword reports whether t is one of the reserved words.
func (t TokenType) IsKeyword() bool {
	return t >= DOCCLASS && t <= ENDSWITH
}

var keywords = map[string]TokenType{}

func init() {
	for t := DOCCLASS; t <= ENDSWITH; t++ {
		keywords[tokenNames[t]] = t
	}
}

// LookupKeyword returns the keyword type for word, or TEXT if it is not reserved.
func LookupKeyword(word string) TokenType {
	if t, ok := keywords[word]; ok {
		return t
	}
	return TEXT
}

// Keywords returns every reserved word in lexical order.
func Keywords() []string {
	words := maps.Keys(keywords)
	slices.Sort(words)
	return words
}

// definitionStyles maps each function definition keyword to its style.
var definitionStyles = map[TokenType]ast.DefStyle{
	DEFUN:    {},
	LDEFUN:   {Long: true},
	ODEFUN:   {Outer: true},
	LODEFUN:  {Long: true, Outer: true},
	EDEFUN:   {Expand: true},
	LEDEFUN:  {Long: true, Expand: true},
	OEDEFUN:  {Outer: true, Expand: true},
	LOEDEFUN: {Long: true, Outer: true, Expand: true},
	GDEFUN:   {Global: true},
	LGDEFUN:  {Long: true, Global: true},
	OGDEFUN:  {Outer: true, Global: true},
	LOGDEFUN: {Long: true, Outer: true, Global: true},
	XDEFUN:   {Expand: true, Global: true},
	LXDEFUN:  {Long: true, Expand: true, Global: true},
	OXDEFUN:  {Outer: true, Expand: true, Global: true},
	LOXDEFUN: {Long: true, Outer: true, Expand: true, Global: true},
}

// isDefinitionStart reports whether t opens a function definition.
func isDefinitionStart(t TokenType) bool {
	_, ok := definitionStyles[t]
	return ok
}

// beforeDocumentForbidden lists tokens that only make sense in the
// document body.
var beforeDocumentForbidden = []TokenType{
	SPACE2,
	MATH_SMALL_SPACE,
	MATH_LARGE_SPACE,
	MATH_LBRACE,
	MATH_RBRACE,
	TEXT_MATH_START,
	TEXT_MATH_END,
	INLINE_MATH_START,
	INLINE_MATH_END,
}

func shouldNotUseBeforeDocument(t TokenType) bool {
	return slices.Contains(beforeDocumentForbidden, t)
}

// mathEnvironments switch math mode on for their body.
var mathEnvironments = []string{"equation", "align", "array", "eqnarray", "gather"}

func isMathEnvironment(name string) bool {
	return slices.Contains(mathEnvironments, name)
}

// Token is a lexed token. Literal is the text the token contributes to the
// generated LaTeX, which may differ from the source (for example "$$"
// has the literal "\[").
type Token struct {
	Type    TokenType
	Literal string
	Span    ast.Span
}

// Pos returns the start position of the token.
func (t Token) Pos() ast.Position {
	return t.Span.Start
}
