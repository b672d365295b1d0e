package parser

import (
	"fmt"

	"silicon/internal/ast"
)

// parseFunction parses both named declarations and anonymous function
// expressions:
//
//	[native] func [name] ( params ) [-> Type] [block]
//
// Native functions have no block; every other function must have one.
func (p *Parser) parseFunction() *ast.FunctionNode {
	startToken := p.peek()
	native := p.match(NATIVE)

	if _, ok := p.consume(FUNC, "expected 'func'"); !ok {
		return nil
	}

	fn := &ast.FunctionNode{
		Pos:    p.makePos(startToken),
		Native: native,
	}

	nameToken := startToken
	if p.check(ID) {
		nameToken = p.advance()
		fn.Name = nameToken.Lexeme
	}

	params, ok := p.parseFunctionParameters()
	if !ok {
		return nil
	}
	fn.Params = params

	if p.match(R_ARROW) {
		ret, ok := p.parseTypeRef()
		if !ok {
			return nil
		}
		fn.Return = ret
	}

	if native {
		if fn.Name == "" {
			p.errorAt(MalformedDeclaration, startToken, "native function must have a name")
			return nil
		}
		if p.check(BRACE_LEFT) {
			p.errorAt(MalformedDeclaration, nameToken, fmt.Sprintf("native function %s cannot have a body", fn.Name))
			return nil
		}
		return fn
	}

	if !p.check(BRACE_LEFT) {
		p.errorAt(MalformedDeclaration, p.peek(), fmt.Sprintf("function %s is missing a body", describeFunction(fn)))
		return nil
	}

	fn.Block = p.parseBlock(false)
	if fn.Block == nil {
		return nil
	}
	return fn
}

// parseFunctionParameters parses ( name: Type, ... ).
func (p *Parser) parseFunctionParameters() ([]*ast.Param, bool) {
	if _, ok := p.consume(PAREN_LEFT, "expected '(' to start parameter list"); !ok {
		return nil, false
	}

	var params []*ast.Param
	for !p.check(PAREN_RIGHT) && !p.isAtEnd() {
		name, ok := p.consume(ID, "expected parameter name")
		if !ok {
			return nil, false
		}
		if _, ok := p.consume(COLON, "expected ':' after parameter name"); !ok {
			return nil, false
		}
		typ, ok := p.parseTypeRef()
		if !ok {
			return nil, false
		}

		params = append(params, &ast.Param{
			Pos:  p.makePos(name),
			Name: name.Lexeme,
			Type: typ,
		})

		if !p.match(COMMA) {
			break
		}
	}

	if _, ok := p.consume(PAREN_RIGHT, "expected ')' after parameter list"); !ok {
		return nil, false
	}
	return params, true
}

func describeFunction(fn *ast.FunctionNode) string {
	if fn.Name == "" {
		return "literal"
	}
	return fn.Name
}
