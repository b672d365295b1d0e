package ast

// Node is implemented by every variant of the closed node set. The unexported
// marker keeps the set closed; new passes are added as Visitors instead.
type Node interface {
	NodePos() Position
	NodeType() NodeType
	String() string
	Accept(v Visitor)
	node()
}

// Decl is a node that may be indexed by name in a FileDB.
type Decl interface {
	Node
	DeclName() string
}

func (t *TypeNode) DeclName() string     { return t.Name }
func (v *VariableNode) DeclName() string { return v.Name }
func (f *FunctionNode) DeclName() string { return f.Name }

func (f *FileNode) NodePos() Position { return f.Pos }
func (*FileNode) NodeType() NodeType  { return FILE }

func (t *TypeNode) NodePos() Position { return t.Pos }
func (*TypeNode) NodeType() NodeType  { return TYPE }

func (v *VariableNode) NodePos() Position { return v.Pos }
func (*VariableNode) NodeType() NodeType  { return VARIABLE }

func (f *FunctionNode) NodePos() Position { return f.Pos }
func (*FunctionNode) NodeType() NodeType  { return FUNCTION }

func (b *BlockNode) NodePos() Position { return b.Pos }
func (*BlockNode) NodeType() NodeType  { return BLOCK }

func (i *IfNode) NodePos() Position { return i.Pos }
func (*IfNode) NodeType() NodeType  { return IF_STMT }

func (r *ReturnNode) NodePos() Position { return r.Pos }
func (*ReturnNode) NodeType() NodeType  { return RETURN_STMT }

func (e *ExprStmt) NodePos() Position { return e.Pos }
func (*ExprStmt) NodeType() NodeType  { return EXPR_STMT }

func (i *IdentExpr) NodePos() Position { return i.Pos }
func (*IdentExpr) NodeType() NodeType  { return IDENT_EXPR }

func (n *NumberLiteral) NodePos() Position { return n.Pos }
func (*NumberLiteral) NodeType() NodeType  { return NUMBER_LITERAL }

func (s *StringLiteral) NodePos() Position { return s.Pos }
func (*StringLiteral) NodeType() NodeType  { return STRING_LITERAL }

func (b *BoolLiteral) NodePos() Position { return b.Pos }
func (*BoolLiteral) NodeType() NodeType  { return BOOL_LITERAL }

func (u *UnaryExpr) NodePos() Position { return u.Pos }
func (*UnaryExpr) NodeType() NodeType  { return UNARY_EXPR }

func (b *BinaryExpr) NodePos() Position { return b.Pos }
func (*BinaryExpr) NodeType() NodeType  { return BINARY_EXPR }

func (a *AssignExpr) NodePos() Position { return a.Pos }
func (*AssignExpr) NodeType() NodeType  { return ASSIGN_EXPR }

func (c *CallExpr) NodePos() Position { return c.Pos }
func (*CallExpr) NodeType() NodeType  { return CALL_EXPR }

func (f *FieldAccessExpr) NodePos() Position { return f.Pos }
func (*FieldAccessExpr) NodeType() NodeType  { return FIELD_ACCESS_EXPR }

func (i *IndexExpr) NodePos() Position { return i.Pos }
func (*IndexExpr) NodeType() NodeType  { return INDEX_EXPR }

func (p *ParenExpr) NodePos() Position { return p.Pos }
func (*ParenExpr) NodeType() NodeType  { return PAREN_EXPR }

func (f *FunctionExpr) NodePos() Position { return f.Pos }
func (*FunctionExpr) NodeType() NodeType  { return FUNCTION_EXPR }

func (*FileNode) node()        {}
func (*TypeNode) node()        {}
func (*VariableNode) node()    {}
func (*FunctionNode) node()    {}
func (*BlockNode) node()       {}
func (*IfNode) node()          {}
func (*ReturnNode) node()      {}
func (*ExprStmt) node()        {}
func (*IdentExpr) node()       {}
func (*NumberLiteral) node()   {}
func (*StringLiteral) node()   {}
func (*BoolLiteral) node()     {}
func (*UnaryExpr) node()       {}
func (*BinaryExpr) node()      {}
func (*AssignExpr) node()      {}
func (*CallExpr) node()        {}
func (*FieldAccessExpr) node() {}
func (*IndexExpr) node()       {}
func (*ParenExpr) node()       {}
func (*FunctionExpr) node()    {}
