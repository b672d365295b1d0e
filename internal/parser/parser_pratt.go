package parser

import (
	"silicon/internal/ast"
)

// Binary operators by binding power. Unary and `^` bind tighter than all of
// these and are handled by parseUnary and parsePower.
var binaryPrecedence = map[TokenType]int{
	EQUAL: 1, NOT_EQUAL: 1,
	LESS: 2, LESS_EQUAL: 2, GREATER: 2, GREATER_EQUAL: 2,
	PLUS: 3, MINUS: 3,
	MULTIPLY: 4, DIVIDE: 4,
}

var assignOperators = map[TokenType]ast.AssignType{
	ASSIGN:          ast.ASSIGN,
	PLUS_ASSIGN:     ast.PLUS_ASSIGN,
	MINUS_ASSIGN:    ast.MINUS_ASSIGN,
	MULTIPLY_ASSIGN: ast.MULTIPLY_ASSIGN,
	DIVIDE_ASSIGN:   ast.DIVIDE_ASSIGN,
	POW_ASSIGN:      ast.POW_ASSIGN,
}

func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssignment()
}

// parseAssignment is right associative: a = b = c assigns c to b first.
func (p *Parser) parseAssignment() ast.Expr {
	target := p.parsePrattExpr(1)
	if target == nil {
		return nil
	}

	op, ok := assignOperators[p.peek().Type]
	if !ok {
		return target
	}
	opToken := p.advance()

	switch target.(type) {
	case *ast.IdentExpr, *ast.FieldAccessExpr, *ast.IndexExpr:
	default:
		p.errorAt(UnexpectedToken, opToken, "invalid assignment target "+target.String())
		return nil
	}

	value := p.parseAssignment()
	if value == nil {
		return nil
	}

	return &ast.AssignExpr{
		Pos:      target.NodePos(),
		Operator: op,
		Target:   target,
		Value:    value,
	}
}

func (p *Parser) parsePrattExpr(minPrec int) ast.Expr {
	expr := p.parseUnary()
	if expr == nil {
		return nil
	}

	for {
		tok := p.peek()
		prec, ok := binaryPrecedence[tok.Type]
		if !ok || prec < minPrec {
			break
		}

		p.advance()
		right := p.parsePrattExpr(prec + 1)
		if right == nil {
			return nil
		}

		expr = &ast.BinaryExpr{
			Pos:   expr.NodePos(),
			Op:    tok.Lexeme,
			Left:  expr,
			Right: right,
		}
	}

	return expr
}

func (p *Parser) parseUnary() ast.Expr {
	if p.match(MINUS, NOT) {
		op := p.previous()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.UnaryExpr{
			Pos:     p.makePos(op),
			Op:      op.Lexeme,
			Operand: operand,
		}
	}

	return p.parsePower()
}

// parsePower handles `^`, which is right associative and binds tighter than
// unary minus on its left: -2 ^ 2 is -(2 ^ 2), while 2 ^ -1 is allowed.
func (p *Parser) parsePower() ast.Expr {
	base := p.parsePostfixExpr()
	if base == nil {
		return nil
	}

	if !p.match(POW) {
		return base
	}
	op := p.previous()

	exponent := p.parseUnary()
	if exponent == nil {
		return nil
	}

	return &ast.BinaryExpr{
		Pos:   base.NodePos(),
		Op:    op.Lexeme,
		Left:  base,
		Right: exponent,
	}
}

func (p *Parser) parsePostfixExpr() ast.Expr {
	expr := p.parsePrimaryExpr()
	if expr == nil {
		return nil
	}

	for {
		switch {
		case p.match(DOT):
			field, ok := p.consume(ID, "expected field name after '.'")
			if !ok {
				return nil
			}
			expr = &ast.FieldAccessExpr{
				Pos:    expr.NodePos(),
				Target: expr,
				Field:  field.Lexeme,
			}
		case p.match(PAREN_LEFT):
			args, ok := p.parseExprList(PAREN_RIGHT)
			if !ok {
				return nil
			}
			if _, ok := p.consume(PAREN_RIGHT, "expected ')' after arguments"); !ok {
				return nil
			}
			expr = &ast.CallExpr{
				Pos:    expr.NodePos(),
				Callee: expr,
				Args:   args,
			}
		case p.match(SQUARE_LEFT):
			index := p.parseExpr()
			if index == nil {
				return nil
			}
			if _, ok := p.consume(SQUARE_RIGHT, "expected ']' after index"); !ok {
				return nil
			}
			expr = &ast.IndexExpr{
				Pos:    expr.NodePos(),
				Target: expr,
				Index:  index,
			}
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimaryExpr() ast.Expr {
	tok := p.peek()

	switch tok.Type {
	case NUMBER:
		p.advance()
		value, _ := tok.Literal.(int64)
		return &ast.NumberLiteral{Pos: p.makePos(tok), Value: value}

	case STRING:
		p.advance()
		value, _ := tok.Literal.(string)
		return &ast.StringLiteral{Pos: p.makePos(tok), Value: value}

	case ID:
		p.advance()
		switch tok.Lexeme {
		case "true":
			return &ast.BoolLiteral{Pos: p.makePos(tok), Value: true}
		case "false":
			return &ast.BoolLiteral{Pos: p.makePos(tok), Value: false}
		}
		return &ast.IdentExpr{Pos: p.makePos(tok), Name: tok.Lexeme}

	case PAREN_LEFT:
		p.advance()
		inner := p.parseExpr()
		if inner == nil {
			return nil
		}
		if _, ok := p.consume(PAREN_RIGHT, "expected ')' after expression"); !ok {
			return nil
		}
		return &ast.ParenExpr{Pos: p.makePos(tok), Value: inner}

	case FUNC:
		fn := p.parseFunction()
		if fn == nil {
			return nil
		}
		return &ast.FunctionExpr{Pos: fn.Pos, Func: fn}
	}

	p.errorAtCurrent(UnexpectedToken, "expected expression")
	return nil
}

// parseExprList parses comma separated expressions up to, but not including,
// the closing token.
func (p *Parser) parseExprList(closing TokenType) ([]ast.Expr, bool) {
	var exprs []ast.Expr

	for !p.check(closing) && !p.isAtEnd() {
		expr := p.parseExpr()
		if expr == nil {
			return nil, false
		}
		exprs = append(exprs, expr)

		if !p.match(COMMA) {
			break
		}
	}

	return exprs, true
}
