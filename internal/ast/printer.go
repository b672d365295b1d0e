package ast

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

func (f *FileNode) String() string {
	var b strings.Builder

	if f.Namespace != "" {
		b.WriteString(fmt.Sprintf("namespace %s\n", f.Namespace))
	}

	aliases := make([]string, 0, len(f.Imports))
	for alias := range f.Imports {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	for _, alias := range aliases {
		path := f.Imports[alias]
		if path == alias || strings.HasSuffix(path, "."+alias) {
			b.WriteString(fmt.Sprintf("use %s\n", path))
		} else {
			b.WriteString(fmt.Sprintf("use %s as %s\n", path, alias))
		}
	}

	for _, name := range f.Names() {
		b.WriteString("\n")
		b.WriteString(f.Statements[name].String())
		b.WriteString("\n")
	}

	return b.String()
}

func (t *TypeNode) String() string {
	var b strings.Builder
	b.WriteString("class " + t.Name)
	if t.SuperType != nil && !t.SuperType.IsRoot() {
		b.WriteString(" : " + t.SuperType.String())
	}
	if t.Body != nil {
		b.WriteString(" " + t.Body.String())
	}
	return b.String()
}

func (v *VariableNode) String() string {
	var b strings.Builder
	if v.Const {
		b.WriteString("const ")
	} else {
		b.WriteString("var ")
	}
	b.WriteString(v.Name)
	if v.Type != nil {
		b.WriteString(": " + v.Type.String())
	}
	if v.Value != nil {
		b.WriteString(" = " + v.Value.String())
	}
	return b.String()
}

func (f *FunctionNode) String() string {
	var b strings.Builder
	if f.Native {
		b.WriteString("native ")
	}
	b.WriteString("func ")
	if f.Name != "" {
		b.WriteString(f.Name)
	}

	params := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		params = append(params, p.String())
	}
	b.WriteString("(" + strings.Join(params, ", ") + ")")

	if f.Return != nil {
		b.WriteString(" -> " + f.Return.String())
	}
	if f.Block != nil {
		b.WriteString(" " + f.Block.String())
	}
	return b.String()
}

func (p *Param) String() string {
	return fmt.Sprintf("%s: %s", p.Name, p.Type.String())
}

func (b *BlockNode) String() string {
	if len(b.Statements) == 0 {
		return "{}"
	}

	var out strings.Builder
	out.WriteString("{\n")
	for _, stmt := range b.Statements {
		out.WriteString("  " + strings.ReplaceAll(stmt.String(), "\n", "\n  ") + "\n")
	}
	out.WriteString("}")
	return out.String()
}

func (i *IfNode) String() string {
	s := fmt.Sprintf("if (%s) %s", i.Condition.String(), i.Then.String())
	if i.Else != nil {
		s += " else " + i.Else.String()
	}
	return s
}

func (r *ReturnNode) String() string {
	if r.Value == nil {
		return "return"
	}
	return "return " + r.Value.String()
}

func (e *ExprStmt) String() string {
	return e.Expr.String()
}

func (i *IdentExpr) String() string {
	return i.Name
}

func (n *NumberLiteral) String() string {
	return strconv.FormatInt(n.Value, 10)
}

func (s *StringLiteral) String() string {
	return s.Value
}

func (b *BoolLiteral) String() string {
	return strconv.FormatBool(b.Value)
}

func (u *UnaryExpr) String() string {
	return fmt.Sprintf("(%s%s)", u.Op, u.Operand.String())
}

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Op, b.Right.String())
}

func (a *AssignExpr) String() string {
	return fmt.Sprintf("%s %s %s", a.Target.String(), a.Operator, a.Value.String())
}

func (c *CallExpr) String() string {
	args := make([]string, 0, len(c.Args))
	for _, arg := range c.Args {
		args = append(args, arg.String())
	}
	return fmt.Sprintf("%s(%s)", c.Callee.String(), strings.Join(args, ", "))
}

func (f *FieldAccessExpr) String() string {
	return fmt.Sprintf("%s.%s", f.Target.String(), f.Field)
}

func (i *IndexExpr) String() string {
	return fmt.Sprintf("%s[%s]", i.Target.String(), i.Index.String())
}

func (p *ParenExpr) String() string {
	return fmt.Sprintf("(%s)", p.Value.String())
}

func (f *FunctionExpr) String() string {
	return f.Func.String()
}
