package ast

type Expr interface {
	Node
	isExpr()
}

func (*IdentExpr) isExpr() {}

func (*NumberLiteral) isExpr() {}

func (*StringLiteral) isExpr() {}

func (*BoolLiteral) isExpr() {}

func (*UnaryExpr) isExpr() {}

func (*BinaryExpr) isExpr() {}

func (*AssignExpr) isExpr() {}

func (*CallExpr) isExpr() {}

func (*FieldAccessExpr) isExpr() {}

func (*IndexExpr) isExpr() {}

func (*ParenExpr) isExpr() {}

func (*FunctionExpr) isExpr() {}
