package ast

import "sort"

// Position tracks location information for error reporting and tooling
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// FileNode represents one Silicon source file
// Example: "namespace silicon.misc\nuse silicon.io.File\nclass Foo { }"
type FileNode struct {
	Pos        Position
	Namespace  string            // dotted, empty if absent
	Imports    map[string]string // alias or last segment -> qualified path
	Statements map[string]Decl   // declared name -> top-level declaration
}

// Names returns the declared top-level names in sorted order.
func (f *FileNode) Names() []string {
	names := make([]string, 0, len(f.Statements))
	for name := range f.Statements {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TypeNode represents class declarations
// Example: "class Foo : silicon.lang.Base { func bar() { } }"
type TypeNode struct {
	Pos       Position
	Name      string
	SuperType *Type
	Body      *BlockNode
}

// VariableNode represents var and const declarations
// Example: "var count: Int = 0", "const limit = 10"
type VariableNode struct {
	Pos   Position
	Name  string
	Type  *Type // nil when left to inference
	Const bool
	Value Expr // nil if no initializer
}

// FunctionNode represents functions, native declarations and lambdas
// Example: "func printString(str: String) -> Boolean { ... }", "native func getHash() -> String"
type FunctionNode struct {
	Pos    Position
	Name   string // empty for anonymous functions
	Params []*Param
	Return *Type // nil when no return type is declared
	Native bool
	Block  *BlockNode // nil for native functions
}

// Param is one name/type pair of a parameter list.
// Example: "str: String"
type Param struct {
	Pos  Position
	Name string
	Type *Type
}

// BlockNode represents a braced sequence of statements or members
// Example: "{ var foo = str  return foo }"
type BlockNode struct {
	Pos        Position
	EndPos     Position
	Statements []Node
}

// IfNode represents conditionals; Else is nil, a *BlockNode or an *IfNode
// Example: "if (a < b) { return a } else { return b }"
type IfNode struct {
	Pos       Position
	Condition Expr
	Then      *BlockNode
	Else      Node
}

// ReturnNode represents return statements
// Example: "return true", "return"
type ReturnNode struct {
	Pos   Position
	Value Expr // nil for a bare return
}

// ExprStmt represents expression statements
// Example: "print(foo)", "count += 1"
type ExprStmt struct {
	Pos  Position
	Expr Expr
}

// IdentExpr represents simple identifiers
// Example: "str", "count"
type IdentExpr struct {
	Pos  Position
	Name string
}

// NumberLiteral represents integer literals
// Example: "122"
type NumberLiteral struct {
	Pos   Position
	Value int64
}

// StringLiteral keeps the literal exactly as written, quotes included
// Example: "\"Hello, world!\""
type StringLiteral struct {
	Pos   Position
	Value string
}

// Unquoted returns the literal text without its delimiting quotes.
func (s *StringLiteral) Unquoted() string {
	if len(s.Value) >= 2 {
		return s.Value[1 : len(s.Value)-1]
	}
	return s.Value
}

// BoolLiteral represents true and false
type BoolLiteral struct {
	Pos   Position
	Value bool
}

// UnaryExpr represents prefix operations
// Example: "-amount", "!done"
type UnaryExpr struct {
	Pos     Position
	Op      string
	Operand Expr
}

// BinaryExpr represents binary operations
// Example: "a + b", "x ^ 2", "count != 0"
type BinaryExpr struct {
	Pos   Position
	Op    string
	Left  Expr
	Right Expr
}

// AssignExpr represents plain and compound assignment
// Example: "foo = bar", "count += 1"
type AssignExpr struct {
	Pos      Position
	Operator AssignType
	Target   Expr
	Value    Expr
}

// CallExpr represents function calls
// Example: "print(str)", "list.get(0)"
type CallExpr struct {
	Pos    Position
	Callee Expr
	Args   []Expr
}

// FieldAccessExpr represents member access
// Example: "foo.bar"
type FieldAccessExpr struct {
	Pos    Position
	Target Expr
	Field  string
}

// IndexExpr represents subscripts
// Example: "items[0]"
type IndexExpr struct {
	Pos    Position
	Target Expr
	Index  Expr
}

// ParenExpr represents parenthesized expressions
// Example: "(a + b)"
type ParenExpr struct {
	Pos   Position
	Value Expr
}

// FunctionExpr represents an anonymous function used as a value
// Example: "func (x: Int) -> Int { return x * x }"
type FunctionExpr struct {
	Pos  Position
	Func *FunctionNode
}
