package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeResolve(t *testing.T) {
	t.Run("Resolves local bindings", func(t *testing.T) {
		s := NewScope(map[string]any{"x": int64(1)}, nil)

		v, ok := s.Resolve("x")
		require.True(t, ok)
		assert.Equal(t, int64(1), v)

		_, ok = s.Resolve("y")
		assert.False(t, ok)
	})

	t.Run("Falls back to the outer scope", func(t *testing.T) {
		outer := NewScope(map[string]any{"threshold": int64(100)}, nil)
		inner := outer.Child(map[string]any{"x": int64(1)})

		v, ok := inner.Resolve("threshold")
		require.True(t, ok)
		assert.Equal(t, int64(100), v)
	})

	t.Run("Inner bindings shadow outer ones", func(t *testing.T) {
		outer := NewScope(map[string]any{"x": "outer"}, nil)
		inner := outer.Child(map[string]any{"x": "inner"})

		v, ok := inner.Resolve("x")
		require.True(t, ok)
		assert.Equal(t, "inner", v)

		// The outer scope itself is untouched.
		v, ok = outer.Resolve("x")
		require.True(t, ok)
		assert.Equal(t, "outer", v)
	})

	t.Run("Walks chains of arbitrary depth", func(t *testing.T) {
		root := NewScope(map[string]any{"deep": true}, nil)
		leaf := root.Child(nil).Child(nil).Child(nil)

		v, ok := leaf.Resolve("deep")
		require.True(t, ok)
		assert.Equal(t, true, v)
	})

	t.Run("A nil scope resolves nothing", func(t *testing.T) {
		var s *Scope
		_, ok := s.Resolve("x")
		assert.False(t, ok)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("Child of a nil scope is a root", func(t *testing.T) {
		var s *Scope
		child := s.Child(map[string]any{"x": int64(1)})

		v, ok := child.Resolve("x")
		require.True(t, ok)
		assert.Equal(t, int64(1), v)
	})
}

func TestScopeBind(t *testing.T) {
	outer := NewScope(map[string]any{"x": int64(1)}, nil)
	inner := outer.Child(nil)

	inner.Bind("x", int64(2))

	v, _ := inner.Resolve("x")
	assert.Equal(t, int64(2), v)
	v, _ = outer.Resolve("x")
	assert.Equal(t, int64(1), v)
	assert.Equal(t, 1, inner.Len())
}

func TestNewBaseScope(t *testing.T) {
	s := NewBaseScope(Builtins())

	v, ok := s.Resolve("abs")
	require.True(t, ok)
	_, isFn := v.(Function)
	assert.True(t, isFn)

	_, ok = s.Resolve("missing")
	assert.False(t, ok)
}
