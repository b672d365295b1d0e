package filedb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"silicon/internal/ast"
)

func TestInsertAndLookup(t *testing.T) {
	db := New("silicon.misc")
	foo := &ast.TypeNode{Name: "Foo", SuperType: ast.RootType()}
	run := &ast.FunctionNode{Name: "run", Block: &ast.BlockNode{}}
	limit := &ast.VariableNode{Name: "limit", Const: true}

	require.NoError(t, db.Insert(db.Canonical("Foo"), foo))
	require.NoError(t, db.Insert(db.Canonical("run"), run))
	require.NoError(t, db.Insert(db.Canonical("limit"), limit))

	gotType, err := db.LookupType("silicon.misc.Foo")
	require.NoError(t, err)
	assert.Same(t, foo, gotType)

	gotFunc, err := db.LookupFunction("silicon.misc.run")
	require.NoError(t, err)
	assert.Same(t, run, gotFunc)

	gotVar, err := db.LookupVariable("silicon.misc.limit")
	require.NoError(t, err)
	assert.Same(t, limit, gotVar)

	assert.Equal(t, []string{"silicon.misc.Foo", "silicon.misc.limit", "silicon.misc.run"}, db.Names())
	assert.Equal(t, 3, db.Len())
}

func TestCanonicalWithoutNamespace(t *testing.T) {
	assert.Equal(t, "Foo", New("").Canonical("Foo"))
	assert.Equal(t, "a.b.Foo", New("a.b").Canonical("Foo"))
}

func TestDuplicateKeepsFirst(t *testing.T) {
	db := New("ns")
	first := &ast.TypeNode{Name: "Foo"}
	second := &ast.TypeNode{Name: "Foo"}

	require.NoError(t, db.Insert("ns.Foo", first))
	err := db.Insert("ns.Foo", second)

	var symErr *SymbolError
	require.ErrorAs(t, err, &symErr)
	assert.Equal(t, Duplicate, symErr.Kind)
	assert.Same(t, first, symErr.Existing)

	got, err := db.LookupType("ns.Foo")
	require.NoError(t, err)
	assert.Same(t, first, got)
}

func TestInsertRejectsOtherVariants(t *testing.T) {
	db := New("ns")
	err := db.Insert("ns.file", &ast.FileNode{})

	var symErr *SymbolError
	require.ErrorAs(t, err, &symErr)
	assert.Equal(t, Unsupported, symErr.Kind)
	assert.Equal(t, ast.FILE, symErr.Got)
	assert.Equal(t, 0, db.Len())

	err = db.Insert("ns.nothing", nil)
	require.ErrorAs(t, err, &symErr)
	assert.Equal(t, Unsupported, symErr.Kind)
}

func TestLookupMissing(t *testing.T) {
	db := New("ns")
	_, err := db.LookupType("ns.Missing")

	var symErr *SymbolError
	require.ErrorAs(t, err, &symErr)
	assert.Equal(t, NotFound, symErr.Kind)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLookupTypeOnFunctionName(t *testing.T) {
	db := New("ns")
	require.NoError(t, db.Insert("ns.Foo", &ast.FunctionNode{Name: "Foo"}))

	_, err := db.LookupType("ns.Foo")

	var symErr *SymbolError
	require.ErrorAs(t, err, &symErr)
	assert.Equal(t, WrongKind, symErr.Kind)
	assert.Equal(t, ast.TYPE, symErr.Want)
	assert.Equal(t, ast.FUNCTION, symErr.Got)
	assert.ErrorIs(t, err, ErrNotFound)
}
