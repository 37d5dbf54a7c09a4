// Package parser turns vesti source into an ast.Latex.
//
// Parsing is recursive descent over a single token of lookahead. The parser
// owns the document state, including math mode, and hands the current mode
// to the tokenizer with every request for the next token.
package parser

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/vesti/ast"
	"github.com/robinvdvleuten/vesti/telemetry"
)

// docState is the document-level state threaded through parsing.
type docState struct {
	started    bool // startdoc or docstartmode seen
	ended      bool // explicit enddoc seen
	preventEnd bool // docstartmode: no DocumentEnd is synthesized
	defDepth   int  // nesting depth of definition bodies
	math       bool
}

// isPremiere reports whether the parser is still in the preamble.
func (s *docState) isPremiere() bool {
	return !s.started && s.defDepth == 0
}

func (s *docState) inDefinition() bool {
	return s.defDepth > 0
}

func (s *docState) isMathMode() bool {
	return s.math
}

func (s *docState) lexMode() Mode {
	if s.math {
		return MathMode
	}
	return TextMode
}

func (s *docState) needsAutoEnd() bool {
	return s.started && !s.preventEnd && !s.ended
}

// Parser is a recursive descent parser for vesti.
type Parser struct {
	source TokenSource
	peeked Token
	state  docState
}

// New creates a parser reading from source. The first token is requested
// immediately, in text mode.
func New(source TokenSource) *Parser {
	p := &Parser{source: source}
	p.peeked = source.Next(TextMode)
	return p
}

// ParseBytes parses vesti source from bytes.
func ParseBytes(ctx context.Context, data []byte) (ast.Latex, error) {
	return ParseBytesWithFilename(ctx, "", data)
}

// ParseString parses vesti source from a string.
func ParseString(ctx context.Context, s string) (ast.Latex, error) {
	return ParseBytesWithFilename(ctx, "", []byte(s))
}

// ParseBytesWithFilename parses vesti source, recording filename in positions.
func ParseBytesWithFilename(ctx context.Context, filename string, data []byte) (ast.Latex, error) {
	timer := telemetry.StartTimer(ctx, "parser.parse")
	defer timer.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return New(NewLexer(data, filename)).ParseLatex()
}

// ParseLatex parses statements until EOF. A DocumentEnd is appended when the
// document was started and neither docstartmode nor an explicit enddoc
// already settled how it ends.
func (p *Parser) ParseLatex() (ast.Latex, error) {
	var latex ast.Latex
	for !p.isAtEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		latex = append(latex, stmt)
	}

	if p.state.needsAutoEnd() {
		latex = append(latex, &ast.DocumentEnd{})
	}
	return latex, nil
}

// parseStatement dispatches on the lookahead token.
func (p *Parser) parseStatement() (ast.Statement, error) {
	tok := p.peek()

	switch tok.Type {
	case DOCCLASS:
		if p.state.isPremiere() {
			return p.parseDocumentClass()
		}
	case IMPORT:
		if p.state.isPremiere() {
			return p.parseUsePackage()
		}
	case IMPORTLTX3:
		if p.state.isPremiere() {
			p.advance()
			p.skipNewline()
			return &ast.ImportExpl3{}, nil
		}
	case STARTDOC:
		if p.state.isPremiere() {
			p.advance()
			p.eatWhitespaces(true)
			p.state.started = true
			return &ast.DocumentStart{}, nil
		}
	case ENDDOC:
		if p.state.started && !p.state.ended && !p.state.inDefinition() {
			p.advance()
			p.eatWhitespaces(true)
			p.state.ended = true
			return &ast.DocumentEnd{}, nil
		}

	case BEGENV:
		return p.parseEnvironment()
	case USEENV:
		return p.parseUseEnvironment()
	case PBEGENV:
		return p.parseBeginPhantomEnvironment()
	case PENDENV:
		return p.parseEndPhantomEnvironment()
	case ENDENV:
		return nil, notOpened(tok, BEGENV, DEFENV, REDEFENV, ENDSWITH)

	case MTXT:
		return p.parseTextInMath()
	case ETXT:
		return nil, notOpened(tok, MTXT)

	case DOCSTARTMODE:
		p.advance()
		p.state.started = true
		p.state.preventEnd = true
		if _, err := p.expect(NEWLINE); err != nil && !p.isAtEnd() {
			return nil, err
		}
		return &ast.Nop{}, nil
	case NONSTOPMODE:
		return p.parseMarker(&ast.NonStopMode{})
	case MAKEATLETTER:
		return p.parseMarker(&ast.MakeAtLetter{})
	case MAKEATOTHER:
		return p.parseMarker(&ast.MakeAtOther{})
	case LTX3ON:
		return p.parseMarker(&ast.Latex3On{})
	case LTX3OFF:
		return p.parseMarker(&ast.Latex3Off{})

	case ENDDEF:
		return nil, notOpened(tok, definitionStarts()...)
	case DEFENV, REDEFENV:
		return p.parseEnvironmentDefinition()
	case ENDSWITH:
		return nil, notOpened(tok, DEFENV, REDEFENV)

	case LATEX_FUNCTION:
		return p.parseLatexFunction()
	case RAW_LATEX:
		p.advance()
		return &ast.RawLatex{Value: tok.Literal}, nil
	case INTEGER:
		return p.parseInteger()
	case FLOAT:
		return p.parseFloat()

	case LBRACE:
		return p.parseBracedStatement()
	case RBRACE:
		return nil, notOpened(tok, LBRACE)

	case OBEY_NEWLINE:
		return nil, &ParseError{Kind: ErrDeprecated, Span: tok.Span, Got: tok.Type, Instead: DOCSTARTMODE.String()}
	case ILLEGAL:
		return nil, &ParseError{Kind: ErrIllegalCharacter, Span: tok.Span, Literal: tok.Literal}
	}

	if isDefinitionStart(tok.Type) {
		return p.parseFunctionDefinition()
	}

	if p.state.isPremiere() && shouldNotUseBeforeDocument(tok.Type) {
		return nil, &ParseError{Kind: ErrBeforeDocument, Span: tok.Span, Got: tok.Type}
	}

	switch tok.Type {
	case TEXT_MATH_START, INLINE_MATH_START:
		return p.parseMathStatement()
	case TEXT_MATH_END, INLINE_MATH_END:
		return nil, &ParseError{Kind: ErrInvalidTokToConvert, Span: tok.Span, Got: tok.Type}
	case SUPERSCRIPT, SUBSCRIPT:
		if !p.state.isMathMode() && !p.state.inDefinition() {
			return nil, illegalUse(tok)
		}
	case FRAC_DIVIDE:
		return nil, illegalUse(tok)
	}

	return p.parseMainStatement()
}

// parseMainStatement emits the lookahead token verbatim.
func (p *Parser) parseMainStatement() (ast.Statement, error) {
	if p.isAtEnd() {
		return nil, eofError(p.peek().Span)
	}
	tok := p.advance()
	return &ast.MainText{Value: tok.Literal}, nil
}

// parseMarker consumes a keyword that maps to a fixed statement and an
// optional trailing newline.
func (p *Parser) parseMarker(stmt ast.Statement) (ast.Statement, error) {
	p.advance()
	p.skipNewline()
	return stmt, nil
}

func (p *Parser) parseInteger() (ast.Statement, error) {
	tok := p.advance()
	value, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		return nil, &ParseError{Kind: ErrParseInt, Span: tok.Span, Literal: tok.Literal, Underlying: err}
	}
	return &ast.Integer{Value: value}, nil
}

func (p *Parser) parseFloat() (ast.Statement, error) {
	tok := p.advance()
	value, err := decimal.NewFromString(normalizeDecimal(tok.Literal))
	if err != nil {
		return nil, &ParseError{Kind: ErrParseFloat, Span: tok.Span, Literal: tok.Literal, Underlying: err}
	}
	return &ast.Float{Value: value}, nil
}

// normalizeDecimal turns ".5" and "-.5" into "0.5" and "-0.5".
func normalizeDecimal(lit string) string {
	switch {
	case strings.HasPrefix(lit, "."):
		return "0" + lit
	case strings.HasPrefix(lit, "-."):
		return "-0" + lit[1:]
	}
	return lit
}

func definitionStarts() []TokenType {
	starts := make([]TokenType, 0, len(definitionStyles))
	for t := DEFUN; t <= LOXDEFUN; t++ {
		starts = append(starts, t)
	}
	return starts
}
