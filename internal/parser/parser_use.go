package parser

import (
	"fmt"
	"strings"

	"silicon/internal/ast"
)

// parseNamespace handles the mandatory `namespace a.b.c` preamble. Without it
// nothing else in the file can be canonicalized, so failure is fatal.
func (p *Parser) parseNamespace(file *ast.FileNode) bool {
	if !p.check(NAMESPACE) {
		p.errorAtCurrent(MissingNamespace, "file must begin with a namespace declaration")
		return false
	}
	start := p.advance()

	name, _, ok := p.parseDottedName("namespace name")
	if !ok {
		p.errors[len(p.errors)-1].Kind = MissingNamespace
		return false
	}

	file.Pos = p.makePos(start)
	file.Namespace = name
	return true
}

func (p *Parser) parseImports(file *ast.FileNode) {
	positions := make(map[string]Position)

	for p.check(USE) {
		p.failed = false
		start := p.current

		if !p.parseUse(file, positions) {
			p.synchronize(start)
		}
	}
}

// parseUse parses `use a.b.C [as D]` and records it under D, or C when no
// alias is given.
func (p *Parser) parseUse(file *ast.FileNode, positions map[string]Position) bool {
	p.advance()

	path, pathTok, ok := p.parseDottedName("import path")
	if !ok {
		return false
	}

	key := path[strings.LastIndex(path, ".")+1:]
	keyPos := pathTok.Position
	if p.match(AS) {
		alias, ok := p.consume(ID, "expected alias after 'as'")
		if !ok {
			return false
		}
		key = alias.Lexeme
		keyPos = alias.Position
	}

	if first, exists := positions[key]; exists {
		p.report(ParseError{
			Kind:     DuplicateDeclaration,
			Message:  fmt.Sprintf("import name %s is already bound to %s", key, file.Imports[key]),
			Position: keyPos,
			Previous: &first,
		})
		return true
	}

	positions[key] = keyPos
	file.Imports[key] = path
	return true
}
