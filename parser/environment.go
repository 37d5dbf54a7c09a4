package parser

import (
	"github.com/robinvdvleuten/vesti/ast"
)

// environmentHead is the part shared by every environment form: the name
// with its star suffixes and the argument list.
type environmentHead struct {
	keyword Token
	name    string
	args    []ast.Argument
	math    bool
}

// parseEnvironmentHead parses: KEYWORD NAME[*...] ARGS
//
// Math environments switch math mode on before the token following the name
// is requested.
func (p *Parser) parseEnvironmentHead(closer TokenType) (*environmentHead, error) {
	head := &environmentHead{keyword: p.advance()}
	p.eatWhitespaces(false)

	switch p.peek().Type {
	case TEXT:
	case EOF:
		return nil, notClosed(head.keyword.Span, head.keyword.Type, closer)
	default:
		return nil, nameMissing(head.keyword)
	}

	head.name = p.peek().Literal
	head.math = isMathEnvironment(head.name)
	if head.math {
		p.setMath(true)
	}
	p.advance()

	for p.match(STAR) {
		head.name += "*"
	}
	p.eatWhitespaces(false)

	args, err := p.parseFunctionArgs(LPAREN, RPAREN, LSQBRACE, RSQBRACE)
	if err != nil {
		return nil, err
	}
	head.args = args

	return head, nil
}

// parseEnvironment parses: begenv NAME ARGS BODY endenv
func (p *Parser) parseEnvironment() (ast.Statement, error) {
	head, err := p.parseEnvironmentHead(ENDENV)
	if err != nil {
		return nil, err
	}

	var body ast.Latex
	for !p.check(ENDENV) {
		if p.isAtEnd() {
			return nil, notClosed(head.keyword.Span, BEGENV, ENDENV)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}

	// The close of any math environment leaves math mode, even when an
	// enclosing math environment is still open.
	if head.math {
		p.setMath(false)
	}
	p.advance()
	p.skipNewline()

	return &ast.Environment{Name: head.name, Args: head.args, Body: body}, nil
}

// parseUseEnvironment parses: useenv NAME ARGS { BODY }
func (p *Parser) parseUseEnvironment() (ast.Statement, error) {
	head, err := p.parseEnvironmentHead(RBRACE)
	if err != nil {
		return nil, err
	}

	p.eatWhitespaces(true)
	open, err := p.expect(LBRACE)
	if err != nil {
		return nil, err
	}

	var body ast.Latex
	for !p.check(RBRACE) {
		if p.isAtEnd() {
			return nil, notClosed(open.Span, LBRACE, RBRACE)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}

	if head.math {
		p.setMath(false)
	}
	p.advance()
	p.skipNewline()

	return &ast.Environment{Name: head.name, Args: head.args, Body: body}, nil
}

// parseBeginPhantomEnvironment parses: pbegenv NAME ARGS
func (p *Parser) parseBeginPhantomEnvironment() (ast.Statement, error) {
	head, err := p.parseEnvironmentHead(PENDENV)
	if err != nil {
		return nil, err
	}
	return &ast.BeginPhantomEnvironment{Name: head.name, Args: head.args}, nil
}

// parseEndPhantomEnvironment parses: pendenv NAME[*...]
func (p *Parser) parseEndPhantomEnvironment() (ast.Statement, error) {
	keyword := p.advance()
	p.eatWhitespaces(false)

	switch p.peek().Type {
	case TEXT:
	case EOF:
		return nil, eofError(p.peek().Span)
	default:
		return nil, nameMissing(keyword)
	}

	name := p.peek().Literal
	if isMathEnvironment(name) {
		p.setMath(false)
	}
	p.advance()

	for p.match(STAR) {
		name += "*"
	}

	return &ast.EndPhantomEnvironment{Name: name}, nil
}

// parseMathStatement parses $...$, \(...\), $$...$$ and \[...\].
func (p *Parser) parseMathStatement() (ast.Statement, error) {
	start := p.peek()

	state, end := ast.TextMath, TEXT_MATH_END
	if start.Type == INLINE_MATH_START {
		state, end = ast.InlineMath, INLINE_MATH_END
	}

	p.setMath(true)
	p.advance()

	var body ast.Latex
	for !p.check(end) {
		if p.isAtEnd() {
			return nil, bracketMismatch(start.Span, end)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			if pe, ok := err.(*ParseError); ok && pe.Kind == ErrEOF {
				return nil, bracketMismatch(start.Span, end)
			}
			return nil, err
		}
		body = append(body, stmt)
	}

	p.setMath(false)
	p.advance()

	return &ast.MathText{State: state, Body: body}, nil
}

// parseTextInMath parses: mtxt TEXT etxt
//
// The span is lexed in text mode; the previous mode is restored after etxt.
// Leading whitespace is dropped while a trailing space stays in the text.
func (p *Parser) parseTextInMath() (ast.Statement, error) {
	previous := p.state.isMathMode()
	p.setMath(false)
	open := p.advance()
	p.eatWhitespaces(false)

	var body ast.Latex
	for !p.check(ETXT) {
		if p.isAtEnd() {
			return nil, bracketMismatch(open.Span, ETXT)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}

	p.setMath(previous)
	p.advance()

	return &ast.PlainTextInMath{Body: body}, nil
}

// parseBracedStatement parses a {...} group. A single fraction divider at
// the top level of the group turns it into a fraction.
func (p *Parser) parseBracedStatement() (ast.Statement, error) {
	open := p.advance()

	var (
		body      ast.Latex
		numerator ast.Latex
		fraction  bool
	)
	for !p.check(RBRACE) {
		if p.isAtEnd() {
			return nil, bracketCount(open)
		}
		if p.check(FRAC_DIVIDE) {
			if fraction {
				return nil, illegalUse(p.peek())
			}
			p.advance()
			fraction = true
			numerator, body = body, nil
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	p.advance()

	if fraction {
		return &ast.Fraction{Numerator: numerator, Denominator: body}, nil
	}
	return &ast.BracedStmt{Body: body}, nil
}
