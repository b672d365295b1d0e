package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// File is the declarative counterpart of the hand-written parser. Operators
// are kept flat: precedence is the parser's concern, the grammar only decides
// whether a file is well formed.
type File struct {
	Pos       lexer.Position
	Namespace string    `"namespace" @Ident ( @"." @Ident )*`
	Imports   []*Import `@@*`
	Decls     []*Decl   `@@*`
}

type Import struct {
	Pos   lexer.Position
	Path  string `"use" @Ident ( @"." @Ident )*`
	Alias string `( "as" @Ident )?`
}

type Decl struct {
	Pos   lexer.Position
	Class *Class `  @@`
	Var   *Var   `| @@`
	Func  *Func  `| @@`
}

type Class struct {
	Pos     lexer.Position
	Name    string    `"class" @Ident`
	Super   *TypeRef  `( ":" @@ )?`
	Members []*Member `"{" @@* "}"`
}

type Member struct {
	Var  *Var  `  @@`
	Func *Func `| @@`
}

type Var struct {
	Pos   lexer.Position
	Const bool     `( "var" | @"const" )`
	Name  string   `@Ident`
	Type  *TypeRef `( ":" @@ )?`
	Value *Expr    `( "=" @@ )?`
}

type TypeRef struct {
	Name string `@Ident ( @"." @Ident )*`
}

type Func struct {
	Pos    lexer.Position
	Native bool     `@"native"?`
	Name   string   `"func" @Ident?`
	Params []*Param `"(" ( @@ ( "," @@ )* )? ")"`
	Return *TypeRef `( "->" @@ )?`
	Body   *Block   `@@?`
}

type Param struct {
	Name string   `@Ident ":"`
	Type *TypeRef `@@`
}

type Block struct {
	Open  bool    `@"{"`
	Stmts []*Stmt `@@* "}"`
}

type Stmt struct {
	Var    *Var    `  @@`
	Func   *Func   `| @@`
	If     *If     `| @@`
	Return *Return `| @@`
	Expr   *Expr   `| @@`
}

type If struct {
	Cond *Expr  `"if" "(" @@ ")"`
	Then *Block `@@`
	Else *Else  `( "else" @@ )?`
}

type Else struct {
	If    *If    `  @@`
	Block *Block `| @@`
}

type Return struct {
	Keyword bool  `@"return"`
	Value   *Expr `@@?`
}

type Expr struct {
	Left *Unary   `@@`
	Ops  []*BinOp `@@*`
}

type BinOp struct {
	Operator string `@( "==" | "!=" | "<=" | ">=" | "<" | ">" | "+=" | "-=" | "*=" | "/=" | "^=" | "+" | "-" | "*" | "/" | "^" | "=" )`
	Right    *Unary `@@`
}

type Unary struct {
	Ops   []string `@( "!" | "-" )*`
	Value *Postfix `@@`
}

type Postfix struct {
	Primary  *Primary  `@@`
	Suffixes []*Suffix `@@*`
}

type Suffix struct {
	Field string `  "." @Ident`
	Call  *Call  `| @@`
	Index *Expr  `| "[" @@ "]"`
}

type Call struct {
	Open bool    `@"("`
	Args []*Expr `( @@ ( "," @@ )* )? ")"`
}

type Primary struct {
	Number *int64  `  @Int`
	String *string `| @String`
	Lambda *Func   `| @@`
	Ident  *string `| @Ident`
	Paren  *Expr   `| "(" @@ ")"`
}
