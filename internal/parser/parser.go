package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"silicon/internal/ast"
	"silicon/internal/filedb"
)

type ParseErrorKind int

const (
	MissingNamespace ParseErrorKind = iota + 1
	UnexpectedToken
	DuplicateDeclaration
	MalformedDeclaration
)

func (k ParseErrorKind) String() string {
	switch k {
	case MissingNamespace:
		return "MissingNamespace"
	case UnexpectedToken:
		return "UnexpectedToken"
	case DuplicateDeclaration:
		return "DuplicateDeclaration"
	case MalformedDeclaration:
		return "MalformedDeclaration"
	default:
		return "ParseErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

type ParseError struct {
	Kind     ParseErrorKind
	Message  string
	Position Position
	Found    string    // offending token text, empty at end of file
	Previous *Position // first declaration, for DuplicateDeclaration
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}

// ParseErrors is every diagnostic collected while parsing one file.
type ParseErrors []ParseError

func (e ParseErrors) Error() string {
	switch len(e) {
	case 0:
		return "no parse errors"
	case 1:
		return e[0].Error()
	default:
		msgs := make([]string, 0, len(e))
		for _, err := range e {
			msgs = append(msgs, err.Error())
		}
		return fmt.Sprintf("%d parse errors:\n%s", len(e), strings.Join(msgs, "\n"))
	}
}

type Parser struct {
	filename string
	tokens   []Token
	current  int
	depth    int  // brace nesting of the tokens consumed so far
	failed   bool // the current declaration has already been reported
	errors   []ParseError
}

func NewParser(filename string, tokens []Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOF {
		tokens = append(tokens, Token{Type: EOF})
	}
	return &Parser{
		filename: filename,
		tokens:   tokens,
	}
}

// ParseSource lexes and parses one file. A lex failure is returned as a
// *ScanError with no tree; parse failures come back as ParseErrors next to
// whatever was recovered, except MissingNamespace which yields no tree.
func ParseSource(filename, source string) (*ast.FileNode, *filedb.FileDB, error) {
	tokens, err := Lex(source)
	if err != nil {
		return nil, nil, err
	}
	return Parse(filename, tokens)
}

func Parse(filename string, tokens []Token) (*ast.FileNode, *filedb.FileDB, error) {
	return NewParser(filename, tokens).ParseFile()
}

func (p *Parser) ParseFile() (*ast.FileNode, *filedb.FileDB, error) {
	file := &ast.FileNode{
		Pos:        p.makePos(p.peek()),
		Imports:    make(map[string]string),
		Statements: make(map[string]ast.Decl),
	}

	if !p.parseNamespace(file) {
		return nil, nil, p.result()
	}

	db := filedb.New(file.Namespace)
	p.parseImports(file)

	for !p.isAtEnd() {
		p.failed = false
		start := p.current

		decl := p.parseTopLevel()
		if decl == nil {
			p.synchronize(start)
			continue
		}
		p.declare(file, db, decl)
	}

	return file, db, p.result()
}

// Errors returns the diagnostics collected so far.
func (p *Parser) Errors() []ParseError {
	return p.errors
}

func (p *Parser) result() error {
	if len(p.errors) == 0 {
		return nil
	}
	return ParseErrors(p.errors)
}

func (p *Parser) parseTopLevel() ast.Decl {
	tok := p.peek()

	switch tok.Type {
	case CLASS:
		if class := p.parseClass(); class != nil {
			return class
		}
	case VAR, CONST:
		if variable := p.parseVariable(); variable != nil {
			return variable
		}
	case FUNC, NATIVE:
		fn := p.parseFunction()
		if fn == nil {
			return nil
		}
		if fn.Name == "" {
			p.errorAt(MalformedDeclaration, tok, "top-level function must have a name")
			return nil
		}
		return fn
	case USE:
		p.errorAtCurrent(UnexpectedToken, "imports must come before any declaration")
	case NAMESPACE:
		p.errorAtCurrent(UnexpectedToken, "namespace must be declared once, as the first construct")
	default:
		p.errorAtCurrent(UnexpectedToken, "expected class, var, const or func declaration")
	}
	return nil
}

// declare indexes decl by name. The first definition of a name wins; later
// ones are reported and dropped.
func (p *Parser) declare(file *ast.FileNode, db *filedb.FileDB, decl ast.Decl) {
	name := decl.DeclName()

	err := db.Insert(db.Canonical(name), decl)
	if err == nil {
		file.Statements[name] = decl
		return
	}

	pos := toPosition(decl.NodePos())
	var symErr *filedb.SymbolError
	if errors.As(err, &symErr) && symErr.Kind == filedb.Duplicate {
		previous := toPosition(symErr.Existing.NodePos())
		p.report(ParseError{
			Kind:     DuplicateDeclaration,
			Message:  fmt.Sprintf("%s is already declared at %s", name, previous),
			Position: pos,
			Previous: &previous,
		})
		return
	}

	p.report(ParseError{Kind: MalformedDeclaration, Message: err.Error(), Position: pos})
}
