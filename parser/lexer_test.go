package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/vesti/ast"
)

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestLexerTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []TokenType
	}{
		{
			name:  "preamble line",
			input: "docclass article\n",
			want:  []TokenType{DOCCLASS, SPACE, TEXT, NEWLINE, EOF},
		},
		{
			name:  "keyword needs the whole word",
			input: "begenv2 startdoc",
			want:  []TokenType{TEXT, SPACE, STARTDOC, EOF},
		},
		{
			name:  "numbers",
			input: "3.14 .5 -2 -.5 1.",
			want:  []TokenType{FLOAT, SPACE, FLOAT, SPACE, INTEGER, SPACE, FLOAT, SPACE, INTEGER, PERIOD, EOF},
		},
		{
			name:  "trailing comment keeps newline",
			input: "a % note\nb",
			want:  []TokenType{TEXT, SPACE, NEWLINE, TEXT, EOF},
		},
		{
			name:  "full line comment swallows newline",
			input: "% note\nb",
			want:  []TokenType{TEXT, EOF},
		},
		{
			name:  "block comment",
			input: "a%* one\ntwo *%b",
			want:  []TokenType{TEXT, TEXT, EOF},
		},
		{
			name:  "escaped specials",
			input: `\#\$\%\\`,
			want:  []TokenType{SHARP, DOLLAR, PERCENT, BACKSLASH, EOF},
		},
		{
			name:  "math delimiters by backslash",
			input: `\(\)\[\]\{\}`,
			want:  []TokenType{TEXT_MATH_START, TEXT_MATH_END, INLINE_MATH_START, INLINE_MATH_END, MATH_LBRACE, MATH_RBRACE, EOF},
		},
		{
			name:  "argument splitter",
			input: `a\;b`,
			want:  []TokenType{TEXT, ARG_SPLITER, TEXT, EOF},
		},
		{
			name:  "parameters and deprecated marker",
			input: "#1 ##+",
			want:  []TokenType{FNT_PARAM, INTEGER, SPACE, OBEY_NEWLINE, EOF},
		},
		{
			name:  "comparisons",
			input: "<= >= < >",
			want:  []TokenType{LESSEQ, SPACE, GREATEQ, SPACE, LESS, SPACE, GREAT, EOF},
		},
		{
			name:  "crlf",
			input: "a\r\nb",
			want:  []TokenType{TEXT, NEWLINE, TEXT, EOF},
		},
		{
			name:  "brackets",
			input: "({[]})",
			want:  []TokenType{LPAREN, LBRACE, LSQBRACE, RSQBRACE, RBRACE, RPAREN, EOF},
		},
		{
			name:  "illegal control character",
			input: "\x01",
			want:  []TokenType{ILLEGAL, EOF},
		},
		{
			name:  "lone backslash",
			input: `\`,
			want:  []TokenType{ILLEGAL, EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := NewLexer([]byte(tt.input), "test.ves").ScanAll(TextMode)
			assert.Equal(t, tt.want, tokenTypes(tokens))
		})
	}
}

func TestLexerLiterals(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		typ     TokenType
		literal string
	}{
		{"control word", `\frac`, LATEX_FUNCTION, `\frac`},
		{"control word with at", `\@ifnextchar`, LATEX_FUNCTION, `\@ifnextchar`},
		{"escaped punctuation", `\&`, TEXT, `\&`},
		{"raw latex", `#!\raw{x}!#`, RAW_LATEX, `\raw{x}`},
		{"raw latex dashes", "##-a\nb-##", RAW_LATEX, "a\nb"},
		{"unterminated raw latex", "#!abc", RAW_LATEX, "abc"},
		{"splitter has no text", `\;`, ARG_SPLITER, ""},
		{"unicode word", "안녕", TEXT, "안녕"},
		{"float", "-0.25", FLOAT, "-0.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := NewLexer([]byte(tt.input), "").Next(TextMode)
			assert.Equal(t, tt.typ, tok.Type)
			assert.Equal(t, tt.literal, tok.Literal)
		})
	}
}

func TestLexerControlWordStopsAtNonASCII(t *testing.T) {
	tokens := NewLexer([]byte(`\LaTeX는`), "").ScanAll(TextMode)

	assert.Equal(t, []TokenType{LATEX_FUNCTION, TEXT, EOF}, tokenTypes(tokens))
	assert.Equal(t, `\LaTeX`, tokens[0].Literal)
	assert.Equal(t, "는", tokens[1].Literal)
}

func TestLexerModes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		text  []Token
		math  []Token
	}{
		{
			name:  "dollar",
			input: "$",
			text:  []Token{{Type: TEXT_MATH_START, Literal: "$"}},
			math:  []Token{{Type: TEXT_MATH_END, Literal: "$"}},
		},
		{
			name:  "double dollar",
			input: "$$",
			text:  []Token{{Type: INLINE_MATH_START, Literal: `\[`}},
			math:  []Token{{Type: INLINE_MATH_END, Literal: `\]`}},
		},
		{
			name:  "thin space",
			input: `\,`,
			text:  []Token{{Type: TEXT, Literal: ","}},
			math:  []Token{{Type: MATH_SMALL_SPACE, Literal: `\,`}},
		},
		{
			name:  "control space",
			input: `\ `,
			text:  []Token{{Type: SPACE2, Literal: `\ `}},
			math:  []Token{{Type: MATH_LARGE_SPACE, Literal: `\;`}},
		},
		{
			name:  "fraction divider",
			input: "//",
			text:  []Token{{Type: SLASH, Literal: "/"}, {Type: SLASH, Literal: "/"}},
			math:  []Token{{Type: FRAC_DIVIDE, Literal: "//"}},
		},
	}

	strip := func(tokens []Token) []Token {
		out := make([]Token, 0, len(tokens))
		for _, tok := range tokens {
			if tok.Type == EOF {
				continue
			}
			out = append(out, Token{Type: tok.Type, Literal: tok.Literal})
		}
		return out
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.text, strip(NewLexer([]byte(tt.input), "").ScanAll(TextMode)))
			assert.Equal(t, tt.math, strip(NewLexer([]byte(tt.input), "").ScanAll(MathMode)))
		})
	}
}

func TestLexerModeSwitchMidStream(t *testing.T) {
	lexer := NewLexer([]byte("$a$"), "")

	assert.Equal(t, TEXT_MATH_START, lexer.Next(TextMode).Type)
	assert.Equal(t, TEXT, lexer.Next(MathMode).Type)
	assert.Equal(t, TEXT_MATH_END, lexer.Next(MathMode).Type)
	assert.Equal(t, EOF, lexer.Next(TextMode).Type)
	assert.Equal(t, EOF, lexer.Next(TextMode).Type)
}

func TestLexerPositions(t *testing.T) {
	tokens := NewLexer([]byte("가 b\n c"), "main.ves").ScanAll(TextMode)

	want := []ast.Span{
		{Start: ast.Position{Filename: "main.ves", Offset: 0, Line: 1, Column: 1}, End: ast.Position{Filename: "main.ves", Offset: 3, Line: 1, Column: 2}},
		{Start: ast.Position{Filename: "main.ves", Offset: 3, Line: 1, Column: 2}, End: ast.Position{Filename: "main.ves", Offset: 4, Line: 1, Column: 3}},
		{Start: ast.Position{Filename: "main.ves", Offset: 4, Line: 1, Column: 3}, End: ast.Position{Filename: "main.ves", Offset: 5, Line: 1, Column: 4}},
		{Start: ast.Position{Filename: "main.ves", Offset: 5, Line: 1, Column: 4}, End: ast.Position{Filename: "main.ves", Offset: 6, Line: 2, Column: 1}},
		{Start: ast.Position{Filename: "main.ves", Offset: 6, Line: 2, Column: 1}, End: ast.Position{Filename: "main.ves", Offset: 7, Line: 2, Column: 2}},
		{Start: ast.Position{Filename: "main.ves", Offset: 7, Line: 2, Column: 2}, End: ast.Position{Filename: "main.ves", Offset: 8, Line: 2, Column: 3}},
	}

	assert.Equal(t, []TokenType{TEXT, SPACE, TEXT, NEWLINE, SPACE, TEXT, EOF}, tokenTypes(tokens))
	for i, span := range want {
		assert.Equal(t, span, tokens[i].Span, "token %d", i)
	}
	assert.Equal(t, "가", tokens[0].Span.Text([]byte("가 b\n c")))
}

func TestKeywords(t *testing.T) {
	words := Keywords()

	assert.Equal(t, 38, len(words))
	assert.Equal(t, "begenv", words[0])
	for _, word := range words {
		typ := LookupKeyword(word)
		assert.True(t, typ.IsKeyword(), word)
		assert.Equal(t, word, typ.String())
	}
	assert.Equal(t, TEXT, LookupKeyword("article"))
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "EOF", EOF.String())
	assert.Equal(t, "//", FRAC_DIVIDE.String())
	assert.Equal(t, "UNKNOWN", TokenType(255).String())
	assert.False(t, TEXT.IsKeyword())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "text", TextMode.String())
	assert.Equal(t, "math", MathMode.String())
}
