package grammar

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
)

var parser = participle.MustBuild[File](
	participle.Lexer(SiliconLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)

// Parse checks source against the reference grammar.
func Parse(filename, source string) (*File, error) {
	return parser.ParseString(filename, source)
}

func ParseFile(path string) (*File, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(path, string(source))
}

// Names lists the names of the top-level declarations in source order.
// Anonymous functions contribute nothing.
func (f *File) Names() []string {
	var names []string
	for _, decl := range f.Decls {
		if name := decl.Name(); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func (d *Decl) Name() string {
	switch {
	case d.Class != nil:
		return d.Class.Name
	case d.Var != nil:
		return d.Var.Name
	case d.Func != nil:
		return d.Func.Name
	}
	return ""
}

// String renders the grammar's EBNF, for documentation and debugging.
func String() string {
	return parser.String()
}
