package ast

// Visitor is the double-dispatch hook for later passes. Declarations and
// statements get one method each; expressions share VisitExpr and are told
// apart with a type switch.
type Visitor interface {
	VisitFile(*FileNode)
	VisitType(*TypeNode)
	VisitVariable(*VariableNode)
	VisitFunction(*FunctionNode)
	VisitBlock(*BlockNode)
	VisitIf(*IfNode)
	VisitReturn(*ReturnNode)
	VisitExprStmt(*ExprStmt)
	VisitExpr(Expr)
}

func (f *FileNode) Accept(v Visitor)     { v.VisitFile(f) }
func (t *TypeNode) Accept(v Visitor)     { v.VisitType(t) }
func (n *VariableNode) Accept(v Visitor) { v.VisitVariable(n) }
func (f *FunctionNode) Accept(v Visitor) { v.VisitFunction(f) }
func (b *BlockNode) Accept(v Visitor)    { v.VisitBlock(b) }
func (i *IfNode) Accept(v Visitor)       { v.VisitIf(i) }
func (r *ReturnNode) Accept(v Visitor)   { v.VisitReturn(r) }
func (e *ExprStmt) Accept(v Visitor)     { v.VisitExprStmt(e) }

func (e *IdentExpr) Accept(v Visitor)       { v.VisitExpr(e) }
func (e *NumberLiteral) Accept(v Visitor)   { v.VisitExpr(e) }
func (e *StringLiteral) Accept(v Visitor)   { v.VisitExpr(e) }
func (e *BoolLiteral) Accept(v Visitor)     { v.VisitExpr(e) }
func (e *UnaryExpr) Accept(v Visitor)       { v.VisitExpr(e) }
func (e *BinaryExpr) Accept(v Visitor)      { v.VisitExpr(e) }
func (e *AssignExpr) Accept(v Visitor)      { v.VisitExpr(e) }
func (e *CallExpr) Accept(v Visitor)        { v.VisitExpr(e) }
func (e *FieldAccessExpr) Accept(v Visitor) { v.VisitExpr(e) }
func (e *IndexExpr) Accept(v Visitor)       { v.VisitExpr(e) }
func (e *ParenExpr) Accept(v Visitor)       { v.VisitExpr(e) }
func (e *FunctionExpr) Accept(v Visitor)    { v.VisitExpr(e) }

// Inspect traverses the tree rooted at node in depth-first order, calling f
// for each node. Children are skipped when f returns false. Top-level
// declarations of a file are visited in name order.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}

	switch n := node.(type) {
	case *FileNode:
		for _, name := range n.Names() {
			Inspect(n.Statements[name], f)
		}

	case *TypeNode:
		if n.Body != nil {
			Inspect(n.Body, f)
		}

	case *VariableNode:
		if n.Value != nil {
			Inspect(n.Value, f)
		}

	case *FunctionNode:
		if n.Block != nil {
			Inspect(n.Block, f)
		}

	case *BlockNode:
		for _, stmt := range n.Statements {
			Inspect(stmt, f)
		}

	case *IfNode:
		Inspect(n.Condition, f)
		if n.Then != nil {
			Inspect(n.Then, f)
		}
		if n.Else != nil {
			Inspect(n.Else, f)
		}

	case *ReturnNode:
		if n.Value != nil {
			Inspect(n.Value, f)
		}

	case *ExprStmt:
		Inspect(n.Expr, f)

	case *UnaryExpr:
		Inspect(n.Operand, f)

	case *BinaryExpr:
		Inspect(n.Left, f)
		Inspect(n.Right, f)

	case *AssignExpr:
		Inspect(n.Target, f)
		Inspect(n.Value, f)

	case *CallExpr:
		Inspect(n.Callee, f)
		for _, arg := range n.Args {
			Inspect(arg, f)
		}

	case *FieldAccessExpr:
		Inspect(n.Target, f)

	case *IndexExpr:
		Inspect(n.Target, f)
		Inspect(n.Index, f)

	case *ParenExpr:
		Inspect(n.Value, f)

	case *FunctionExpr:
		Inspect(n.Func, f)
	}
}

// Types collects every type reference reachable from node: supertypes,
// variable annotations, parameter and return types. A resolution pass walks
// this list to bind each reference.
func Types(node Node) []*Type {
	var refs []*Type
	add := func(t *Type) {
		if t != nil {
			refs = append(refs, t)
		}
	}

	Inspect(node, func(n Node) bool {
		switch n := n.(type) {
		case *TypeNode:
			add(n.SuperType)
		case *VariableNode:
			add(n.Type)
		case *FunctionNode:
			for _, p := range n.Params {
				add(p.Type)
			}
			add(n.Return)
		}
		return true
	})

	return refs
}
