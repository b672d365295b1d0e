package parser

import "silicon/internal/ast"

// parseClass parses `class Name [: Super] { members }`. A class without an
// explicit supertype extends the root type.
func (p *Parser) parseClass() *ast.TypeNode {
	startToken := p.advance()

	name, ok := p.consume(ID, "expected class name after 'class'")
	if !ok {
		return nil
	}

	superType := ast.RootType()
	if p.match(COLON) {
		if superType, ok = p.parseTypeRef(); !ok {
			return nil
		}
	}

	body := p.parseBlock(true)
	if body == nil {
		return nil
	}

	return &ast.TypeNode{
		Pos:       p.makePos(startToken),
		Name:      name.Lexeme,
		SuperType: superType,
		Body:      body,
	}
}

// parseMember parses one class body entry: a field or a method.
func (p *Parser) parseMember() ast.Node {
	tok := p.peek()

	switch tok.Type {
	case VAR, CONST:
		if variable := p.parseVariable(); variable != nil {
			return variable
		}
	case FUNC, NATIVE:
		fn := p.parseFunction()
		if fn == nil {
			return nil
		}
		if fn.Name == "" {
			p.errorAt(MalformedDeclaration, tok, "method must have a name")
			return nil
		}
		return fn
	default:
		p.errorAtCurrent(UnexpectedToken, "expected var, const or func in class body")
	}
	return nil
}
