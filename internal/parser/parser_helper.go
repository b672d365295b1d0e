package parser

import (
	"fmt"

	"silicon/internal/ast"
)

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		switch p.peek().Type {
		case BRACE_LEFT:
			p.depth++
		case BRACE_RIGHT:
			if p.depth > 0 {
				p.depth--
			}
		}
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tt TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tt
}

// checkNext looks one token past the current one.
func (p *Parser) checkNext(tt TokenType) bool {
	if p.current+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.current+1].Type == tt
}

func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

// consume reports an UnexpectedToken and returns false when the current
// token is not tt. The token is left in place for synchronize.
func (p *Parser) consume(tt TokenType, message string) (Token, bool) {
	if p.check(tt) {
		return p.advance(), true
	}
	p.errorAtCurrent(UnexpectedToken, message)
	return p.peek(), false
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

func (p *Parser) errorAtCurrent(kind ParseErrorKind, message string) {
	tok := p.peek()
	p.errorAt(kind, tok, fmt.Sprintf("%s, found %s", message, describe(tok)))
}

// errorAt records at most one diagnostic per declaration. Everything after
// the first failure is noise from the same root cause.
func (p *Parser) errorAt(kind ParseErrorKind, tok Token, message string) {
	if p.failed {
		return
	}
	p.failed = true
	err := ParseError{
		Kind:     kind,
		Message:  message,
		Position: tok.Position,
	}
	if tok.Type != EOF {
		err.Found = tok.Text()
	}
	p.errors = append(p.errors, err)
}

func (p *Parser) report(err ParseError) {
	p.errors = append(p.errors, err)
}

func describe(tok Token) string {
	if tok.Type == EOF {
		return "end of file"
	}
	return fmt.Sprintf("'%s'", tok.Text())
}

func (p *Parser) makePos(tok Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Position.Offset,
		Line:     tok.Position.Line,
		Column:   tok.Position.Column,
	}
}

func toPosition(pos ast.Position) Position {
	return Position{Line: pos.Line, Column: pos.Column, Offset: pos.Offset}
}

func isTopLevelStart(tt TokenType) bool {
	switch tt {
	case CLASS, VAR, CONST, FUNC, NATIVE, USE:
		return true
	}
	return false
}

// synchronize discards tokens until the next declaration keyword outside of
// any braces. It always moves past the declaration that started at start.
func (p *Parser) synchronize(start int) {
	if p.current == start {
		p.advance()
	}

	for !p.isAtEnd() {
		if p.depth == 0 && isTopLevelStart(p.peek().Type) {
			return
		}
		p.advance()
	}
}

// parseDottedName parses ID ("." ID)*.
func (p *Parser) parseDottedName(what string) (string, Token, bool) {
	first, ok := p.consume(ID, "expected "+what)
	if !ok {
		return "", first, false
	}

	name := first.Lexeme
	for p.match(DOT) {
		part, ok := p.consume(ID, "expected identifier after '.' in "+what)
		if !ok {
			return "", first, false
		}
		name += "." + part.Lexeme
	}
	return name, first, true
}

func (p *Parser) parseTypeRef() (*ast.Type, bool) {
	name, tok, ok := p.parseDottedName("type name")
	if !ok {
		return nil, false
	}
	return ast.NewType(name, p.makePos(tok)), true
}
