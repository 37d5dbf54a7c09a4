package parser

// Token navigation shared by every production.

// peek returns the lookahead token without consuming it.
func (p *Parser) peek() Token {
	return p.peeked
}

// check returns true if the lookahead token has the given type.
func (p *Parser) check(typ TokenType) bool {
	return p.peeked.Type == typ
}

// isAtEnd returns true once the tokenizer is exhausted.
func (p *Parser) isAtEnd() bool {
	return p.peeked.Type == EOF
}

// advance consumes the lookahead token and requests the next one in the
// current mode. Productions that switch mode at a delimiter update the state
// before calling advance, so the token after the delimiter is lexed in the
// new mode.
func (p *Parser) advance() Token {
	tok := p.peeked
	if tok.Type != EOF {
		p.peeked = p.source.Next(p.state.lexMode())
	}
	return tok
}

// match consumes the lookahead token if it has the given type.
func (p *Parser) match(typ TokenType) bool {
	if p.check(typ) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of the given type or fails with a type mismatch
// (or EOF when input ran out).
func (p *Parser) expect(typ TokenType) (Token, error) {
	if !p.check(typ) {
		return Token{}, typeMismatch(p.peek(), typ)
	}
	return p.advance(), nil
}

// eatWhitespaces skips spaces and tabs, and newlines too when newline is set.
func (p *Parser) eatWhitespaces(newline bool) {
	for {
		switch p.peeked.Type {
		case SPACE, TAB:
			p.advance()
		case NEWLINE:
			if !newline {
				return
			}
			p.advance()
		default:
			return
		}
	}
}

// skipNewline consumes a single newline if one follows.
func (p *Parser) skipNewline() {
	p.match(NEWLINE)
}

// setMath switches math mode. It must be called before advancing past the
// delimiter that causes the switch.
func (p *Parser) setMath(on bool) {
	p.state.math = on
}
