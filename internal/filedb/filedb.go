// Package filedb indexes the top-level declarations of one compilation unit
// by canonical name. The parser is its only writer; later passes read it.
package filedb

import (
	"errors"
	"fmt"
	"sort"

	"silicon/internal/ast"
)

type SymbolErrorKind int

const (
	NotFound SymbolErrorKind = iota + 1
	WrongKind
	Duplicate
	Unsupported
)

func (k SymbolErrorKind) String() string {
	switch k {
	case NotFound:
		return "NotFound"
	case WrongKind:
		return "WrongKind"
	case Duplicate:
		return "Duplicate"
	case Unsupported:
		return "Unsupported"
	default:
		return fmt.Sprintf("SymbolErrorKind(%d)", int(k))
	}
}

var ErrNotFound = errors.New("symbol not found")

type SymbolError struct {
	Kind     SymbolErrorKind
	Name     string
	Want     ast.NodeType // set for WrongKind
	Got      ast.NodeType // set for WrongKind and Unsupported
	Existing ast.Decl     // set for Duplicate
}

func (e *SymbolError) Error() string {
	switch e.Kind {
	case NotFound:
		return fmt.Sprintf("symbol %s not found", e.Name)
	case WrongKind:
		return fmt.Sprintf("symbol %s is a %s, not a %s", e.Name, e.Got, e.Want)
	case Duplicate:
		return fmt.Sprintf("symbol %s is already declared", e.Name)
	case Unsupported:
		return fmt.Sprintf("cannot index %s node %s", e.Got, e.Name)
	default:
		return fmt.Sprintf("symbol %s: %s", e.Name, e.Kind)
	}
}

// Is makes a lookup of the wrong kind count as not found, so callers that only
// care whether a usable definition exists can test for ErrNotFound.
func (e *SymbolError) Is(target error) bool {
	return target == ErrNotFound && (e.Kind == NotFound || e.Kind == WrongKind)
}

type FileDB struct {
	namespace string
	entries   map[string]ast.Decl
}

func New(namespace string) *FileDB {
	return &FileDB{
		namespace: namespace,
		entries:   make(map[string]ast.Decl),
	}
}

func (db *FileDB) Namespace() string {
	return db.namespace
}

// Canonical qualifies a declared name with the file's namespace.
func (db *FileDB) Canonical(name string) string {
	if db.namespace == "" {
		return name
	}
	return db.namespace + "." + name
}

// Insert indexes node under its canonical name. Only classes, functions and
// variables are accepted, and a name is written at most once: a second insert
// fails with Duplicate and leaves the first definition in place.
func (db *FileDB) Insert(canonicalName string, node ast.Decl) error {
	switch node.(type) {
	case *ast.TypeNode, *ast.FunctionNode, *ast.VariableNode:
	default:
		got := ast.ILLEGAL
		if node != nil {
			got = node.NodeType()
		}
		return &SymbolError{Kind: Unsupported, Name: canonicalName, Got: got}
	}

	if existing, ok := db.entries[canonicalName]; ok {
		return &SymbolError{Kind: Duplicate, Name: canonicalName, Existing: existing}
	}

	db.entries[canonicalName] = node
	return nil
}

func (db *FileDB) Lookup(canonicalName string) (ast.Decl, error) {
	node, ok := db.entries[canonicalName]
	if !ok {
		return nil, &SymbolError{Kind: NotFound, Name: canonicalName}
	}
	return node, nil
}

func (db *FileDB) LookupType(canonicalName string) (*ast.TypeNode, error) {
	return lookupAs[*ast.TypeNode](db, canonicalName, ast.TYPE)
}

func (db *FileDB) LookupFunction(canonicalName string) (*ast.FunctionNode, error) {
	return lookupAs[*ast.FunctionNode](db, canonicalName, ast.FUNCTION)
}

func (db *FileDB) LookupVariable(canonicalName string) (*ast.VariableNode, error) {
	return lookupAs[*ast.VariableNode](db, canonicalName, ast.VARIABLE)
}

func lookupAs[T ast.Decl](db *FileDB, canonicalName string, want ast.NodeType) (T, error) {
	var zero T
	node, err := db.Lookup(canonicalName)
	if err != nil {
		return zero, err
	}
	typed, ok := node.(T)
	if !ok {
		return zero, &SymbolError{Kind: WrongKind, Name: canonicalName, Want: want, Got: node.NodeType()}
	}
	return typed, nil
}

// Names returns every canonical name in sorted order.
func (db *FileDB) Names() []string {
	names := make([]string, 0, len(db.entries))
	for name := range db.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (db *FileDB) Len() int {
	return len(db.entries)
}
