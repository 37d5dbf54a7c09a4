package parser

import (
	"github.com/robinvdvleuten/vesti/ast"
)

// parseLatexFunction parses a control sequence and its arguments. When
// spaces follow the name and no argument is taken, the name keeps a single
// trailing space so it stays separated from the following text.
func (p *Parser) parseLatexFunction() (ast.Statement, error) {
	tok := p.advance()
	name := tok.Literal

	spaced := p.check(SPACE)
	if spaced {
		p.eatWhitespaces(false)
	}

	args, err := p.parseFunctionArgs(LBRACE, RBRACE, LSQBRACE, RSQBRACE)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 && spaced {
		name += " "
	}

	return &ast.LatexFunction{Name: name, Args: args}, nil
}

// parseFunctionArgs parses main, optional and star arguments in source
// order. It stops at the first token that opens none of them, and after any
// argument that is followed by EOF or a newline.
func (p *Parser) parseFunctionArgs(open, close, optOpen, optClose TokenType) ([]ast.Argument, error) {
	var args []ast.Argument

	for {
		var err error
		switch p.peek().Type {
		case open:
			args, err = p.parseFunctionArgsCore(args, open, close, ast.MainArg)
		case optOpen:
			args, err = p.parseFunctionArgsCore(args, optOpen, optClose, ast.Optional)
		case STAR:
			p.advance()
			args = append(args, ast.Argument{Need: ast.StarArg})
		default:
			return args, nil
		}
		if err != nil {
			return nil, err
		}

		if p.isAtEnd() || p.check(NEWLINE) {
			return args, nil
		}
	}
}

// parseFunctionArgsCore parses one bracketed argument group. An argument
// splitter inside the group starts another argument of the same kind.
//
// Braces never need depth tracking because a nested { is parsed as a
// complete braced group. Other openers are plain text, so their nesting is
// counted to find the matching close.
func (p *Parser) parseFunctionArgsCore(args []ast.Argument, open, close TokenType, need ast.ArgNeed) ([]ast.Argument, error) {
	opener, err := p.expect(open)
	if err != nil {
		return nil, err
	}

	tracksDepth := open != LBRACE
	depth := 0

	for {
		var body ast.Latex
		for (!p.check(close) || depth > 0) && !p.check(ARG_SPLITER) {
			if p.isAtEnd() {
				return nil, bracketCount(opener)
			}
			if tracksDepth {
				switch p.peek().Type {
				case open:
					depth++
				case close:
					depth--
				}
			}
			// An argument group is not a fraction group, so a bare //
			// here is rejected by parseStatement. Use \sqrt{{a // b}}.
			stmt, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			body = append(body, stmt)
		}
		args = append(args, ast.Argument{Need: need, Body: body})

		if !p.match(ARG_SPLITER) {
			break
		}
		p.eatWhitespaces(true)
	}

	if _, err := p.expect(close); err != nil {
		return nil, err
	}
	return args, nil
}
