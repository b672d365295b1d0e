package parser

import (
	"fmt"

	"silicon/internal/ast"
)

// parseVariable parses `var name [: Type] [= expr]` and
// `const name [: Type] = expr`.
func (p *Parser) parseVariable() *ast.VariableNode {
	startToken := p.advance()
	isConst := startToken.Type == CONST

	name, ok := p.consume(ID, fmt.Sprintf("expected name after '%s'", startToken.Lexeme))
	if !ok {
		return nil
	}

	variable := &ast.VariableNode{
		Pos:   p.makePos(startToken),
		Name:  name.Lexeme,
		Const: isConst,
	}

	if p.match(COLON) {
		if variable.Type, ok = p.parseTypeRef(); !ok {
			return nil
		}
	}

	if p.match(ASSIGN) {
		variable.Value = p.parseExpr()
		if variable.Value == nil {
			return nil
		}
	}

	switch {
	case isConst && variable.Value == nil:
		p.errorAt(MalformedDeclaration, name, fmt.Sprintf("constant %s must be initialized", name.Lexeme))
		return nil
	case variable.Type == nil && variable.Value == nil:
		p.errorAt(MalformedDeclaration, name, fmt.Sprintf("variable %s needs a type or an initializer", name.Lexeme))
		return nil
	}

	return variable
}

// parseBlock parses { ... }. Class bodies hold members; every other block
// holds statements.
func (p *Parser) parseBlock(members bool) *ast.BlockNode {
	open, ok := p.consume(BRACE_LEFT, "expected '{'")
	if !ok {
		return nil
	}

	block := &ast.BlockNode{Pos: p.makePos(open)}
	for !p.check(BRACE_RIGHT) && !p.isAtEnd() {
		var stmt ast.Node
		if members {
			stmt = p.parseMember()
		} else {
			stmt = p.parseStatement()
		}
		if stmt == nil {
			return nil
		}
		block.Statements = append(block.Statements, stmt)
	}

	closing, ok := p.consume(BRACE_RIGHT, "expected '}' to close block")
	if !ok {
		return nil
	}
	block.EndPos = p.makePos(closing)
	return block
}

func (p *Parser) parseStatement() ast.Node {
	tok := p.peek()

	switch tok.Type {
	case VAR, CONST:
		if variable := p.parseVariable(); variable != nil {
			return variable
		}
		return nil
	case NATIVE:
		if fn := p.parseFunction(); fn != nil {
			return fn
		}
		return nil
	case FUNC:
		// `func name(` declares a local function; `func (` starts a literal.
		if p.checkNext(ID) {
			if fn := p.parseFunction(); fn != nil {
				return fn
			}
			return nil
		}
	case IF:
		if stmt := p.parseIf(); stmt != nil {
			return stmt
		}
		return nil
	case RETURN:
		return p.parseReturn()
	case CLASS:
		p.errorAtCurrent(UnexpectedToken, "classes may only be declared at the top level")
		return nil
	}

	expr := p.parseExpr()
	if expr == nil {
		return nil
	}
	return &ast.ExprStmt{Pos: expr.NodePos(), Expr: expr}
}

// parseIf parses `if (cond) { } [else if ... | else { }]`.
func (p *Parser) parseIf() *ast.IfNode {
	startToken := p.advance()

	if _, ok := p.consume(PAREN_LEFT, "expected '(' after 'if'"); !ok {
		return nil
	}
	condition := p.parseExpr()
	if condition == nil {
		return nil
	}
	if _, ok := p.consume(PAREN_RIGHT, "expected ')' after condition"); !ok {
		return nil
	}

	then := p.parseBlock(false)
	if then == nil {
		return nil
	}

	stmt := &ast.IfNode{
		Pos:       p.makePos(startToken),
		Condition: condition,
		Then:      then,
	}

	if p.match(ELSE) {
		if p.check(IF) {
			elseIf := p.parseIf()
			if elseIf == nil {
				return nil
			}
			stmt.Else = elseIf
		} else {
			elseBlock := p.parseBlock(false)
			if elseBlock == nil {
				return nil
			}
			stmt.Else = elseBlock
		}
	}

	return stmt
}

func (p *Parser) parseReturn() ast.Node {
	startToken := p.advance()
	stmt := &ast.ReturnNode{Pos: p.makePos(startToken)}

	if startsExpression(p.peek().Type) {
		stmt.Value = p.parseExpr()
		if stmt.Value == nil {
			return nil
		}
	}
	return stmt
}

func startsExpression(tt TokenType) bool {
	switch tt {
	case ID, NUMBER, STRING, PAREN_LEFT, MINUS, NOT, FUNC:
		return true
	}
	return false
}
