package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingVisitor struct {
	files, types, variables, functions, blocks, ifs, returns, exprStmts, exprs int
}

func (c *countingVisitor) VisitFile(*FileNode)         { c.files++ }
func (c *countingVisitor) VisitType(*TypeNode)         { c.types++ }
func (c *countingVisitor) VisitVariable(*VariableNode) { c.variables++ }
func (c *countingVisitor) VisitFunction(*FunctionNode) { c.functions++ }
func (c *countingVisitor) VisitBlock(*BlockNode)       { c.blocks++ }
func (c *countingVisitor) VisitIf(*IfNode)             { c.ifs++ }
func (c *countingVisitor) VisitReturn(*ReturnNode)     { c.returns++ }
func (c *countingVisitor) VisitExprStmt(*ExprStmt)     { c.exprStmts++ }
func (c *countingVisitor) VisitExpr(Expr)              { c.exprs++ }

func sampleClass() *TypeNode {
	return &TypeNode{
		Name:      "Foo",
		SuperType: RootType(),
		Body: &BlockNode{Statements: []Node{
			&FunctionNode{
				Name:   "check",
				Params: []*Param{{Name: "str", Type: NewType("String", Position{})}},
				Return: NewType("Boolean", Position{}),
				Block: &BlockNode{Statements: []Node{
					&VariableNode{Name: "foo", Value: &IdentExpr{Name: "str"}},
					&IfNode{
						Condition: &BoolLiteral{Value: true},
						Then:      &BlockNode{Statements: []Node{&ReturnNode{Value: &BoolLiteral{Value: true}}}},
						Else:      &BlockNode{Statements: []Node{&ReturnNode{Value: &BoolLiteral{Value: false}}}},
					},
				}},
			},
			&FunctionNode{Name: "getHash", Native: true, Return: NewType("String", Position{})},
		}},
	}
}

func TestAcceptDispatchesByVariant(t *testing.T) {
	v := &countingVisitor{}
	nodes := []Node{
		&FileNode{},
		&TypeNode{},
		&VariableNode{},
		&FunctionNode{},
		&BlockNode{},
		&IfNode{},
		&ReturnNode{},
		&ExprStmt{},
		&IdentExpr{},
		&BinaryExpr{},
	}
	for _, n := range nodes {
		n.Accept(v)
	}

	assert.Equal(t, 1, v.files)
	assert.Equal(t, 1, v.types)
	assert.Equal(t, 1, v.variables)
	assert.Equal(t, 1, v.functions)
	assert.Equal(t, 1, v.blocks)
	assert.Equal(t, 1, v.ifs)
	assert.Equal(t, 1, v.returns)
	assert.Equal(t, 1, v.exprStmts)
	assert.Equal(t, 2, v.exprs)
}

func TestInspectVisitsEveryNode(t *testing.T) {
	v := &countingVisitor{}
	Inspect(sampleClass(), func(n Node) bool {
		n.Accept(v)
		return true
	})

	assert.Equal(t, 1, v.types)
	assert.Equal(t, 2, v.functions)
	assert.Equal(t, 1, v.variables)
	assert.Equal(t, 1, v.ifs)
	assert.Equal(t, 2, v.returns)
	assert.Equal(t, 4, v.blocks)
	assert.Equal(t, 4, v.exprs)
}

func TestInspectSkipsChildren(t *testing.T) {
	var seen []NodeType
	Inspect(sampleClass(), func(n Node) bool {
		seen = append(seen, n.NodeType())
		return n.NodeType() != FUNCTION
	})

	assert.Equal(t, []NodeType{TYPE, BLOCK, FUNCTION, FUNCTION}, seen)
}

func TestTypesCollectsReferences(t *testing.T) {
	refs := Types(sampleClass())

	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.CanonicalName)
	}
	assert.Equal(t, []string{RootTypeName, "String", "Boolean", "String"}, names)
}
