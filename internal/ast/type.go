package ast

import (
	"errors"
	"fmt"
)

// RootTypeName is the supertype referenced by classes that declare none.
const RootTypeName = "Object"

var ErrAlreadyResolved = errors.New("type already resolved")

// AlreadyResolvedError reports a second Resolve on the same Type. It signals a
// pass-ordering bug in the caller, never a user error.
type AlreadyResolvedError struct {
	Name     string
	Existing *TypeNode
}

func (e *AlreadyResolvedError) Error() string {
	return fmt.Sprintf("type %s already resolved to %s", e.Name, e.Existing.Name)
}

func (e *AlreadyResolvedError) Is(target error) bool {
	return target == ErrAlreadyResolved
}

// Type is a reference to a type by name. The parser only fills in the name;
// a later pass binds it to its defining TypeNode exactly once.
type Type struct {
	Pos           Position
	CanonicalName string
	node          *TypeNode
}

func NewType(name string, pos Position) *Type {
	return &Type{Pos: pos, CanonicalName: name}
}

// RootType returns a fresh reference to the sentinel root supertype.
func RootType() *Type {
	return &Type{CanonicalName: RootTypeName}
}

// Resolve binds t to its definition. It fails with *AlreadyResolvedError if
// t is already bound, whether or not node is the same definition.
func (t *Type) Resolve(node *TypeNode) error {
	if node == nil {
		return fmt.Errorf("cannot resolve type %s to a nil definition", t.CanonicalName)
	}
	if t.node != nil {
		return &AlreadyResolvedError{Name: t.CanonicalName, Existing: t.node}
	}
	t.node = node
	return nil
}

// Node returns the bound definition, or nil while unresolved.
func (t *Type) Node() *TypeNode {
	return t.node
}

func (t *Type) Resolved() bool {
	return t.node != nil
}

func (t *Type) IsRoot() bool {
	return t.CanonicalName == RootTypeName
}

func (t *Type) String() string {
	if t == nil {
		return ""
	}
	return t.CanonicalName
}
