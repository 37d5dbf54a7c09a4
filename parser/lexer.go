package parser

// Lexer produces vesti tokens on demand.
//
// The lexer holds no math state of its own. Every call to Next receives the
// current Mode from the parser, and the handful of mode-sensitive lexemes
// ($, $$, \, \  and //) are resolved against it.

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/robinvdvleuten/vesti/ast"
)

// Mode selects the lexical rules for mode-sensitive lexemes.
type Mode uint8

const (
	// TextMode is the mode of running text.
	TextMode Mode = iota
	// MathMode is the mode inside math spans and math environments.
	MathMode
)

func (m Mode) String() string {
	if m == MathMode {
		return "math"
	}
	return "text"
}

// TokenSource is the contract between the parser and its tokenizer.
// Once input is exhausted, Next must keep returning EOF tokens.
type TokenSource interface {
	Next(mode Mode) Token
}

// Lexer tokenizes vesti source code.
type Lexer struct {
	source   []byte // Source buffer
	filename string // Filename for error reporting
	pos      int    // Current byte position
	line     int    // Current line (1-indexed)
	column   int    // Current column in runes (1-indexed)
}

var _ TokenSource = (*Lexer)(nil)

// NewLexer creates a new lexer for the given source.
func NewLexer(source []byte, filename string) *Lexer {
	return &Lexer{
		source:   source,
		filename: filename,
		line:     1,
		column:   1,
	}
}

// ScanAll lexes the whole source in a single mode, ending with an EOF token.
func (l *Lexer) ScanAll(mode Mode) []Token {
	tokens := make([]Token, 0, len(l.source)/4+1)
	for {
		tok := l.Next(mode)
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}
	}
}

// Next returns the next token, lexed under mode.
func (l *Lexer) Next(mode Mode) Token {
	for {
		start := l.position()
		if l.isAtEnd() {
			return Token{Type: EOF, Span: ast.Span{Start: start, End: start}}
		}

		// Comments produce no token
		if l.peek() == '%' {
			l.skipComment()
			continue
		}

		return l.scanToken(mode, start)
	}
}

// scanToken scans the next token from the current position.
func (l *Lexer) scanToken(mode Mode, start ast.Position) Token {
	ch := l.advance()

	switch ch {
	case ' ':
		return l.token(SPACE, " ", start)
	case '\t':
		return l.token(TAB, "\t", start)
	case '\n':
		return l.token(NEWLINE, "\n", start)
	case '\r':
		if l.peek() == '\n' {
			l.advance()
		}
		return l.token(NEWLINE, "\n", start)
	case '+':
		return l.token(PLUS, "+", start)
	case '-':
		if isDigit(l.peek()) || (l.peek() == '.' && isDigit(l.peekAt(1))) {
			return l.scanNumber(start)
		}
		return l.token(MINUS, "-", start)
	case '*':
		return l.token(STAR, "*", start)
	case '/':
		if mode == MathMode && l.peek() == '/' {
			l.advance()
			return l.token(FRAC_DIVIDE, "//", start)
		}
		return l.token(SLASH, "/", start)
	case '=':
		return l.token(EQUAL, "=", start)
	case '<':
		if l.peek() == '=' {
			l.advance()
			return l.token(LESSEQ, "<=", start)
		}
		return l.token(LESS, "<", start)
	case '>':
		if l.peek() == '=' {
			l.advance()
			return l.token(GREATEQ, ">=", start)
		}
		return l.token(GREAT, ">", start)
	case '!':
		return l.token(BANG, "!", start)
	case '?':
		return l.token(QUESTION, "?", start)
	case '@':
		return l.token(AT, "@", start)
	case '^':
		return l.token(SUPERSCRIPT, "^", start)
	case '_':
		return l.token(SUBSCRIPT, "_", start)
	case '&':
		return l.token(AMPERSAND, "&", start)
	case '|':
		return l.token(VERT, "|", start)
	case '.':
		if isDigit(l.peek()) {
			return l.scanNumber(start)
		}
		return l.token(PERIOD, ".", start)
	case ',':
		return l.token(COMMA, ",", start)
	case ':':
		return l.token(COLON, ":", start)
	case ';':
		return l.token(SEMICOLON, ";", start)
	case '~':
		return l.token(TILDE, "~", start)
	case '\'':
		return l.token(QUOTE, "'", start)
	case '`':
		return l.token(QUOTE2, "`", start)
	case '"':
		return l.token(DOUBLEQUOTE, "\"", start)
	case '(':
		return l.token(LPAREN, "(", start)
	case ')':
		return l.token(RPAREN, ")", start)
	case '{':
		return l.token(LBRACE, "{", start)
	case '}':
		return l.token(RBRACE, "}", start)
	case '[':
		return l.token(LSQBRACE, "[", start)
	case ']':
		return l.token(RSQBRACE, "]", start)
	case '$':
		return l.scanDollar(mode, start)
	case '#':
		return l.scanSharp(start)
	case '\\':
		return l.scanBackslash(mode, start)
	}

	switch {
	case isDigit(ch):
		return l.scanNumber(start)
	case unicode.IsLetter(ch):
		return l.scanWord(start)
	case ch != utf8.RuneError && unicode.IsPrint(ch):
		return l.token(TEXT, string(ch), start)
	}
	return l.token(ILLEGAL, l.text(start), start)
}

func (l *Lexer) scanDollar(mode Mode, start ast.Position) Token {
	if l.peek() == '$' {
		l.advance()
		if mode == MathMode {
			return l.token(INLINE_MATH_END, "\\]", start)
		}
		return l.token(INLINE_MATH_START, "\\[", start)
	}
	if mode == MathMode {
		return l.token(TEXT_MATH_END, "$", start)
	}
	return l.token(TEXT_MATH_START, "$", start)
}

// scanSharp handles raw LaTeX blocks, the deprecated ##+ marker and
// function parameters. The leading '#' is already consumed.
func (l *Lexer) scanSharp(start ast.Position) Token {
	switch {
	case l.peek() == '!':
		l.advance()
		return l.scanRaw("!#", start)
	case l.peek() == '#' && l.peekAt(1) == '-':
		l.advance()
		l.advance()
		return l.scanRaw("-##", start)
	case l.peek() == '#' && l.peekAt(1) == '+':
		l.advance()
		l.advance()
		return l.token(OBEY_NEWLINE, "##+", start)
	}
	return l.token(FNT_PARAM, "#", start)
}

// scanRaw reads verbatim text up to the terminator, which is consumed.
// An unterminated block runs to the end of input.
func (l *Lexer) scanRaw(terminator string, start ast.Position) Token {
	contentStart := l.pos
	for !l.isAtEnd() {
		if bytes.HasPrefix(l.source[l.pos:], []byte(terminator)) {
			content := string(l.source[contentStart:l.pos])
			for range terminator {
				l.advance()
			}
			return l.token(RAW_LATEX, content, start)
		}
		l.advance()
	}
	return l.token(RAW_LATEX, string(l.source[contentStart:]), start)
}

// scanBackslash handles every lexeme introduced by '\'. The backslash is
// already consumed.
func (l *Lexer) scanBackslash(mode Mode, start ast.Position) Token {
	ch := l.peek()

	if isControlWordRune(ch) {
		for isControlWordRune(l.peek()) {
			l.advance()
		}
		return l.token(LATEX_FUNCTION, l.text(start), start)
	}

	if ch >= utf8.RuneSelf || l.isAtEnd() {
		return l.token(ILLEGAL, "\\", start)
	}

	switch ch {
	case '#':
		l.advance()
		return l.token(SHARP, "\\#", start)
	case '$':
		l.advance()
		return l.token(DOLLAR, "\\$", start)
	case '%':
		l.advance()
		return l.token(PERCENT, "\\%", start)
	case ';':
		l.advance()
		return l.token(ARG_SPLITER, "", start)
	case ',':
		l.advance()
		if mode == MathMode {
			return l.token(MATH_SMALL_SPACE, "\\,", start)
		}
		return l.token(TEXT, ",", start)
	case ' ':
		l.advance()
		if mode == MathMode {
			return l.token(MATH_LARGE_SPACE, "\\;", start)
		}
		return l.token(SPACE2, "\\ ", start)
	case '(':
		l.advance()
		return l.token(TEXT_MATH_START, "$", start)
	case ')':
		l.advance()
		return l.token(TEXT_MATH_END, "$", start)
	case '[':
		l.advance()
		return l.token(INLINE_MATH_START, "\\[", start)
	case ']':
		l.advance()
		return l.token(INLINE_MATH_END, "\\]", start)
	case '{':
		l.advance()
		return l.token(MATH_LBRACE, "\\{", start)
	case '}':
		l.advance()
		return l.token(MATH_RBRACE, "\\}", start)
	case '\\':
		l.advance()
		return l.token(BACKSLASH, "\\\\", start)
	}

	if unicode.IsPunct(ch) || unicode.IsSymbol(ch) {
		l.advance()
		return l.token(TEXT, "\\"+string(ch), start)
	}
	return l.token(ILLEGAL, "\\", start)
}

// scanNumber scans an integer or decimal literal. A '.' belongs to the
// number only when a digit follows it.
func (l *Lexer) scanNumber(start ast.Position) Token {
	isFloat := strings.HasSuffix(l.text(start), ".")

	for isDigit(l.peek()) {
		l.advance()
	}

	if !isFloat && l.peek() == '.' && isDigit(l.peekAt(1)) {
		isFloat = true
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	if isFloat {
		return l.token(FLOAT, l.text(start), start)
	}
	return l.token(INTEGER, l.text(start), start)
}

// scanWord scans a run of letters and digits and resolves keywords.
func (l *Lexer) scanWord(start ast.Position) Token {
	for !l.isAtEnd() {
		r := l.peek()
		if !unicode.IsLetter(r) && !isDigit(r) {
			break
		}
		l.advance()
	}
	word := l.text(start)
	return l.token(LookupKeyword(word), word, start)
}

// skipComment skips a % line comment or a %* ... *% block comment.
// A line comment that starts its line also swallows the newline.
func (l *Lexer) skipComment() {
	firstOnLine := l.column == 1
	l.advance() // consume '%'

	if l.peek() == '*' {
		l.advance()
		for !l.isAtEnd() {
			if l.peek() == '*' && l.peekAt(1) == '%' {
				l.advance()
				l.advance()
				return
			}
			l.advance()
		}
		return
	}

	for !l.isAtEnd() && l.peek() != '\n' && l.peek() != '\r' {
		l.advance()
	}
	if firstOnLine {
		if l.peek() == '\r' {
			l.advance()
		}
		if l.peek() == '\n' {
			l.advance()
		}
	}
}

// advance consumes and returns the current rune.
func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRune(l.source[l.pos:])
	l.pos += size

	if r == '\n' || (r == '\r' && l.peek() != '\n') {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

// peek returns the current rune without consuming it.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.source[l.pos:])
	return r
}

// peekAt returns the rune n runes ahead without consuming anything.
func (l *Lexer) peekAt(n int) rune {
	pos := l.pos
	for i := 0; i < n && pos < len(l.source); i++ {
		_, size := utf8.DecodeRune(l.source[pos:])
		pos += size
	}
	if pos >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.source[pos:])
	return r
}

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

func (l *Lexer) position() ast.Position {
	return ast.Position{
		Filename: l.filename,
		Offset:   l.pos,
		Line:     l.line,
		Column:   l.column,
	}
}

// text returns the source consumed since start.
func (l *Lexer) text(start ast.Position) string {
	return string(l.source[start.Offset:l.pos])
}

func (l *Lexer) token(typ TokenType, literal string, start ast.Position) Token {
	return Token{
		Type:    typ,
		Literal: literal,
		Span:    ast.Span{Start: start, End: l.position()},
	}
}

// isControlWordRune reports whether r may appear in a control sequence name.
func isControlWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '@'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
