package ast

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeResolveOnce(t *testing.T) {
	ref := NewType("silicon.misc.Foo", Position{Line: 3, Column: 9})
	foo := &TypeNode{Name: "Foo", SuperType: RootType()}

	assert.False(t, ref.Resolved())
	assert.Nil(t, ref.Node())

	require.NoError(t, ref.Resolve(foo))
	assert.True(t, ref.Resolved())
	assert.Same(t, foo, ref.Node())
}

func TestTypeResolveTwiceSameNode(t *testing.T) {
	ref := NewType("Foo", Position{})
	foo := &TypeNode{Name: "Foo"}

	require.NoError(t, ref.Resolve(foo))
	err := ref.Resolve(foo)

	var already *AlreadyResolvedError
	require.ErrorAs(t, err, &already)
	assert.Equal(t, "Foo", already.Name)
	assert.True(t, errors.Is(err, ErrAlreadyResolved))
}

func TestTypeResolveTwiceDifferentNode(t *testing.T) {
	ref := NewType("Foo", Position{})
	first := &TypeNode{Name: "Foo"}
	second := &TypeNode{Name: "Bar"}

	require.NoError(t, ref.Resolve(first))
	err := ref.Resolve(second)

	assert.ErrorIs(t, err, ErrAlreadyResolved)
	assert.Same(t, first, ref.Node(), "the first binding must survive")
}

func TestTypeResolveNil(t *testing.T) {
	ref := NewType("Foo", Position{})
	assert.Error(t, ref.Resolve(nil))
	assert.False(t, ref.Resolved())
}

func TestRootType(t *testing.T) {
	root := RootType()
	assert.True(t, root.IsRoot())
	assert.Equal(t, RootTypeName, root.String())
	assert.NotSame(t, root, RootType(), "each class gets its own reference")
}
