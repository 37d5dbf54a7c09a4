package parser

import (
	"strings"

	"github.com/robinvdvleuten/vesti/ast"
)

// Preamble statements: docclass and import.

// parseDocumentClass parses: docclass NAME [(OPTIONS)]
func (p *Parser) parseDocumentClass() (ast.Statement, error) {
	keyword := p.advance()
	p.eatWhitespaces(false)

	name, err := p.takeName(keyword)
	if err != nil {
		return nil, err
	}

	options, err := p.parseCommaArgs()
	if err != nil {
		return nil, err
	}
	p.skipNewline()

	return &ast.DocumentClass{Name: name, Options: options}, nil
}

// parseUsePackage parses: import NAME [(OPTIONS)]  or  import { ... }
func (p *Parser) parseUsePackage() (ast.Statement, error) {
	keyword := p.advance()
	p.eatWhitespaces(false)

	if p.check(LBRACE) {
		return p.parseMultipleUsePackages()
	}

	name, err := p.takeName(keyword)
	if err != nil {
		return nil, err
	}

	options, err := p.parseCommaArgs()
	if err != nil {
		return nil, err
	}
	p.skipNewline()

	return &ast.UsePackage{Name: name, Options: options}, nil
}

// parseMultipleUsePackages parses a braced block of packages separated by
// newlines or commas.
func (p *Parser) parseMultipleUsePackages() (ast.Statement, error) {
	open, err := p.expect(LBRACE)
	if err != nil {
		return nil, err
	}
	p.eatWhitespaces(true)

	multi := &ast.MultiUsePackages{}

packages:
	for !p.check(RBRACE) {
		name, err := p.takeName(open)
		if err != nil {
			return nil, err
		}
		options, err := p.parseCommaArgs()
		if err != nil {
			return nil, err
		}
		multi.Packages = append(multi.Packages, &ast.UsePackage{Name: name, Options: options})

		switch p.peek().Type {
		case NEWLINE:
			p.eatWhitespaces(true)
		case COMMA:
			p.advance()
			p.eatWhitespaces(true)
		case TEXT:
		case RBRACE:
			break packages
		case EOF:
			return nil, eofError(p.peek().Span)
		default:
			return nil, typeMismatch(p.peek(), NEWLINE, COMMA, RBRACE)
		}
	}

	if _, err := p.expect(RBRACE); err != nil {
		return nil, err
	}
	p.eatWhitespaces(false)
	p.skipNewline()

	return multi, nil
}

// takeName reads a package or class name made of text, hyphens and digits.
// keyword is the token the name belongs to, used for error reporting.
func (p *Parser) takeName(keyword Token) (string, error) {
	var name strings.Builder
	for {
		switch p.peek().Type {
		case TEXT, MINUS, INTEGER:
			name.WriteString(p.advance().Literal)
			continue
		case EOF:
			if name.Len() == 0 {
				return "", eofError(p.peek().Span)
			}
		}
		break
	}

	if name.Len() == 0 {
		return "", nameMissing(keyword)
	}
	return name.String(), nil
}

// parseCommaArgs parses an optional parenthesized, comma separated option
// list. It returns nil when no list is present. Whitespace, including
// newlines, is not significant inside the list and a trailing comma is
// allowed.
func (p *Parser) parseCommaArgs() ([]ast.Latex, error) {
	p.eatWhitespaces(false)
	if !p.check(LPAREN) {
		return nil, nil
	}

	open := p.advance()
	p.eatWhitespaces(true)

	options := []ast.Latex{}
	for !p.check(RPAREN) {
		var option ast.Latex
		for !p.check(COMMA) {
			p.eatWhitespaces(true)
			if p.isAtEnd() {
				return nil, bracketCount(open)
			}
			if p.check(RPAREN) {
				break
			}
			stmt, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			option = append(option, stmt)
		}
		options = append(options, option)

		p.eatWhitespaces(true)
		if p.check(RPAREN) {
			break
		}
		if _, err := p.expect(COMMA); err != nil {
			return nil, err
		}
		p.eatWhitespaces(true)
	}

	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	p.eatWhitespaces(false)

	return options, nil
}
