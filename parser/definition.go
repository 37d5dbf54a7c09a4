package parser

import (
	"strconv"
	"strings"

	"github.com/robinvdvleuten/vesti/ast"
)

// parseFunctionDefinition parses:
//
//	KEYWORD[*] NAME [(PARAMS)] BODY enddef[*]
//
// A star after the keyword keeps leading whitespace of the body, a star
// after enddef keeps trailing whitespace.
func (p *Parser) parseFunctionDefinition() (ast.Statement, error) {
	keyword := p.advance()
	style, ok := definitionStyles[keyword.Type]
	if !ok {
		return nil, typeMismatch(keyword, definitionStarts()...)
	}

	trim := ast.TrimWhitespace{Start: true, End: true}
	if p.match(STAR) {
		trim.Start = false
	}
	p.eatWhitespaces(false)

	if p.isAtEnd() {
		return nil, notClosed(keyword.Span, keyword.Type, ENDDEF)
	}

	name, err := p.parseDefinitionName(keyword, LPAREN)
	if err != nil {
		return nil, err
	}
	p.eatWhitespaces(false)

	var params string
	if p.check(LPAREN) {
		if params, err = p.parseDefinitionParams(); err != nil {
			return nil, err
		}
	}

	body, err := p.parseDefineBody(keyword, ENDDEF)
	if err != nil {
		return nil, err
	}
	p.advance() // enddef

	if p.match(STAR) {
		trim.End = false
	}
	p.skipNewline()

	return &ast.FunctionDefine{
		Style:  style,
		Name:   name,
		Params: params,
		Trim:   trim,
		Body:   body,
	}, nil
}

// parseEnvironmentDefinition parses:
//
//	defenv[*] NAME [[N] | [N, DEFAULT]] BEGIN endswith[*] END endenv[*]
func (p *Parser) parseEnvironmentDefinition() (ast.Statement, error) {
	keyword := p.advance()
	def := &ast.EnvironmentDefine{Redefine: keyword.Type == REDEFENV}

	trimStart, trimMid, trimEnd := true, true, true
	if p.match(STAR) {
		trimStart = false
	}
	p.eatWhitespaces(false)

	if p.isAtEnd() {
		return nil, notClosed(keyword.Span, keyword.Type, ENDSWITH)
	}

	name, err := p.parseDefinitionName(keyword, LSQBRACE)
	if err != nil {
		return nil, err
	}
	def.Name = name
	p.eatWhitespaces(false)

	if p.match(LSQBRACE) {
		if err := p.parseEnvironmentArgSpec(keyword, def); err != nil {
			return nil, err
		}
	}

	if def.Begin, err = p.parseDefineBody(keyword, ENDSWITH); err != nil {
		return nil, err
	}
	middle := p.advance() // endswith
	if p.match(STAR) {
		trimMid = false
	}

	if def.End, err = p.parseDefineBody(middle, ENDENV); err != nil {
		return nil, err
	}
	p.advance() // endenv
	if p.match(STAR) {
		trimEnd = false
	}
	p.skipNewline()

	def.Trim = ast.TrimWhitespace{Start: trimStart, Mid: &trimMid, End: trimEnd}
	return def, nil
}

// parseEnvironmentArgSpec parses the argument count and optional default
// after the opening '[' of an environment definition.
func (p *Parser) parseEnvironmentArgSpec(keyword Token, def *ast.EnvironmentDefine) error {
	switch p.peek().Type {
	case INTEGER:
		tok := p.advance()
		n, err := strconv.ParseUint(tok.Literal, 10, 8)
		if err != nil {
			return &ParseError{Kind: ErrParseInt, Span: tok.Span, Literal: tok.Literal, Underlying: err}
		}
		def.ArgsNum = uint8(n)
	case EOF:
		return eofError(keyword.Span)
	default:
		return typeMismatch(p.peek(), INTEGER)
	}

	switch p.peek().Type {
	case COMMA:
		p.advance()
		p.match(SPACE)
		optional := ast.Latex{}
		for !p.check(RSQBRACE) {
			if p.isAtEnd() {
				return eofError(keyword.Span)
			}
			stmt, err := p.parseStatement()
			if err != nil {
				return err
			}
			optional = append(optional, stmt)
		}
		p.advance()
		def.OptionalArg = optional
	case RSQBRACE:
		p.advance()
	case EOF:
		return eofError(keyword.Span)
	default:
		return typeMismatch(p.peek(), RSQBRACE, COMMA)
	}
	return nil
}

// parseDefinitionName reads a definition name from text and argument
// splitter tokens. The name ends at whitespace or at stop.
func (p *Parser) parseDefinitionName(keyword Token, stop TokenType) (string, error) {
	var name strings.Builder
	for {
		tok := p.peek()
		switch tok.Type {
		case TEXT, ARG_SPLITER:
			name.WriteString(p.advance().Literal)
			continue
		case SPACE, TAB, NEWLINE, stop:
		case EOF:
			return "", eofError(keyword.Span)
		default:
			return "", nameMissing(keyword)
		}
		break
	}

	if name.Len() == 0 {
		return "", nameMissing(keyword)
	}
	return name.String(), nil
}

// parseDefinitionParams reads the parameter text between balanced
// parentheses verbatim. A space is inserted before a leading text token and
// before every keyword so they stay separated from the macro name.
func (p *Parser) parseDefinitionParams() (string, error) {
	open := p.advance()

	var params strings.Builder
	depth := 0
	first := true

	for {
		tok := p.peek()
		switch tok.Type {
		case EOF:
			return "", bracketCount(open)
		case LPAREN:
			depth++
		case RPAREN:
			depth--
		}
		if depth < 0 {
			break
		}

		if (first && tok.Type == TEXT) || tok.Type.IsKeyword() {
			params.WriteByte(' ')
		}
		first = false
		params.WriteString(p.advance().Literal)
	}

	p.advance() // )
	return params.String(), nil
}

// parseDefineBody parses statements up to the end token, which is left as
// the lookahead. Nested definitions consume their own end tokens, so only
// the end token of this definition terminates the loop.
func (p *Parser) parseDefineBody(begin Token, end TokenType) (ast.Latex, error) {
	p.state.defDepth++
	defer func() { p.state.defDepth-- }()

	var body ast.Latex
	for !p.check(end) {
		if p.isAtEnd() {
			return nil, notClosed(begin.Span, begin.Type, end)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	return body, nil
}
