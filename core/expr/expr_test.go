package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteral(t *testing.T) {
	lit := NewLiteral(int64(42))

	v, err := lit.Eval(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
	assert.Equal(t, int64(42), lit.Value())
	assert.Equal(t, "42", lit.String())

	assert.Equal(t, `"hi"`, NewLiteral("hi").String())
}

func TestName(t *testing.T) {
	scope := NewScope(map[string]any{"a": int64(10)}, nil)

	t.Run("Resolves a bound name", func(t *testing.T) {
		v, err := NewName("a").Eval(scope)
		require.NoError(t, err)
		assert.Equal(t, int64(10), v)
	})

	t.Run("Fails on an unbound name", func(t *testing.T) {
		_, err := NewName("ghost").Eval(scope)
		require.Error(t, err)
		assert.True(t, ErrUnresolvedName.Is(err))
		assert.Contains(t, err.Error(), `"ghost"`)
	})

	assert.Equal(t, "a", NewName("a").String())
}

func TestArithmetic(t *testing.T) {
	scope := NewScope(map[string]any{
		"a": int64(10),
		"b": int64(3),
		"f": 2.5,
	}, nil)

	tests := []struct {
		name     string
		expr     Expression
		expected any
	}{
		{"integer addition", NewPlus(NewName("a"), NewName("b")), int64(13)},
		{"integer subtraction", NewMinus(NewName("a"), NewName("b")), int64(7)},
		{"integer multiplication", NewMult(NewName("a"), NewName("b")), int64(30)},
		{"integer division truncates", NewDiv(NewName("a"), NewName("b")), int64(3)},
		{"integer modulo", NewMod(NewName("a"), NewName("b")), int64(1)},
		{"float promotes the operation", NewPlus(NewName("a"), NewName("f")), 12.5},
		{"float division", NewDiv(NewLiteral(5.0), NewLiteral(2.0)), 2.5},
		{"string concatenation", NewPlus(NewLiteral("foo"), NewLiteral("bar")), "foobar"},
		{"nested expressions", NewPlus(NewName("a"), NewMult(NewLiteral(2), NewName("b"))), int64(16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.expr.Eval(scope)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}

	t.Run("Integer division by zero", func(t *testing.T) {
		_, err := NewDiv(NewName("a"), NewLiteral(0)).Eval(scope)
		require.Error(t, err)
		assert.True(t, ErrDivisionByZero.Is(err))
	})

	t.Run("Float division by zero", func(t *testing.T) {
		_, err := NewDiv(NewName("f"), NewLiteral(0.0)).Eval(scope)
		require.Error(t, err)
		assert.True(t, ErrDivisionByZero.Is(err))
	})

	t.Run("String plus number is invalid", func(t *testing.T) {
		_, err := NewPlus(NewLiteral("foo"), NewLiteral(1)).Eval(scope)
		require.Error(t, err)
		assert.True(t, ErrInvalidOperand.Is(err))
	})

	t.Run("Unresolved operand aborts the operation", func(t *testing.T) {
		_, err := NewPlus(NewName("ghost"), NewName("a")).Eval(scope)
		require.Error(t, err)
		assert.True(t, ErrUnresolvedName.Is(err))
	})

	assert.Equal(t, "(a + (2 * b))", NewPlus(NewName("a"), NewMult(NewLiteral(2), NewName("b"))).String())
}

func TestComparison(t *testing.T) {
	scope := NewScope(map[string]any{"n": int64(5), "s": "banana"}, nil)

	tests := []struct {
		name     string
		expr     Expression
		expected bool
	}{
		{"equals", NewEquals(NewName("n"), NewLiteral(5)), true},
		{"not equals", NewNotEquals(NewName("n"), NewLiteral(5)), false},
		{"less than", NewLessThan(NewName("n"), NewLiteral(6)), true},
		{"less than or equal", NewLessThanOrEqual(NewName("n"), NewLiteral(5)), true},
		{"greater than", NewGreaterThan(NewName("n"), NewLiteral(6)), false},
		{"greater than or equal", NewGreaterThanOrEqual(NewName("n"), NewLiteral(5)), true},
		{"int compares against float", NewLessThan(NewName("n"), NewLiteral(5.5)), true},
		{"string ordering", NewLessThan(NewName("s"), NewLiteral("cherry")), true},
		{"string equality", NewEquals(NewName("s"), NewLiteral("banana")), true},
		{"boolean equality", NewEquals(NewLiteral(true), NewLiteral(true)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.expr.Eval(scope)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}

	t.Run("String against number is uncomparable", func(t *testing.T) {
		_, err := NewLessThan(NewName("s"), NewName("n")).Eval(scope)
		require.Error(t, err)
		assert.True(t, ErrUncomparable.Is(err))
	})

	t.Run("Booleans have no ordering", func(t *testing.T) {
		_, err := NewLessThan(NewLiteral(true), NewLiteral(false)).Eval(scope)
		require.Error(t, err)
		assert.True(t, ErrUncomparable.Is(err))
	})
}

func TestBoolean(t *testing.T) {
	scope := NewScope(map[string]any{"t": true, "f": false}, nil)

	t.Run("And", func(t *testing.T) {
		v, err := NewAnd(NewName("t"), NewName("f")).Eval(scope)
		require.NoError(t, err)
		assert.Equal(t, false, v)
	})

	t.Run("Or", func(t *testing.T) {
		v, err := NewOr(NewName("f"), NewName("t")).Eval(scope)
		require.NoError(t, err)
		assert.Equal(t, true, v)
	})

	t.Run("Not", func(t *testing.T) {
		v, err := NewNot(NewName("f")).Eval(scope)
		require.NoError(t, err)
		assert.Equal(t, true, v)
	})

	t.Run("And short-circuits on false", func(t *testing.T) {
		// The right side would fail to resolve if it were evaluated.
		v, err := NewAnd(NewName("f"), NewName("ghost")).Eval(scope)
		require.NoError(t, err)
		assert.Equal(t, false, v)
	})

	t.Run("Or short-circuits on true", func(t *testing.T) {
		v, err := NewOr(NewName("t"), NewName("ghost")).Eval(scope)
		require.NoError(t, err)
		assert.Equal(t, true, v)
	})

	t.Run("Non-boolean operands are rejected", func(t *testing.T) {
		_, err := NewAnd(NewLiteral(1), NewName("t")).Eval(scope)
		require.Error(t, err)
		assert.True(t, ErrNotBoolean.Is(err))

		_, err = NewNot(NewLiteral("yes")).Eval(scope)
		require.Error(t, err)
		assert.True(t, ErrNotBoolean.Is(err))
	})
}

func TestTuple(t *testing.T) {
	scope := NewScope(map[string]any{"a": int64(1)}, nil)

	t.Run("Collects item results in order", func(t *testing.T) {
		v, err := NewTuple(NewName("a"), NewLiteral("x"), NewPlus(NewName("a"), NewLiteral(1))).Eval(scope)
		require.NoError(t, err)
		assert.Equal(t, []any{int64(1), "x", int64(2)}, v)
	})

	t.Run("First failing item aborts", func(t *testing.T) {
		_, err := NewTuple(NewName("a"), NewName("ghost")).Eval(scope)
		require.Error(t, err)
		assert.True(t, ErrUnresolvedName.Is(err))
	})

	assert.Equal(t, `(a, "x")`, NewTuple(NewName("a"), NewLiteral("x")).String())
}

func TestCall(t *testing.T) {
	base := NewBaseScope(Builtins())
	scope := base.Child(map[string]any{"n": int64(-7), "word": "go"})

	t.Run("Invokes a function from an enclosing scope", func(t *testing.T) {
		v, err := NewCall("abs", NewName("n")).Eval(scope)
		require.NoError(t, err)
		assert.Equal(t, int64(7), v)
	})

	t.Run("Custom functions resolve like any binding", func(t *testing.T) {
		base.Bind("double", Function(func(args ...any) (any, error) {
			return args[0].(int64) * 2, nil
		}))
		v, err := NewCall("double", NewLiteral(int64(21))).Eval(scope)
		require.NoError(t, err)
		assert.Equal(t, int64(42), v)
	})

	t.Run("Unknown function fails resolution", func(t *testing.T) {
		_, err := NewCall("nope", NewName("n")).Eval(scope)
		require.Error(t, err)
		assert.True(t, ErrUnresolvedName.Is(err))
	})

	t.Run("Non-function binding is rejected", func(t *testing.T) {
		_, err := NewCall("n").Eval(scope)
		require.Error(t, err)
		assert.True(t, ErrNotAFunction.Is(err))
	})

	t.Run("Row bindings shadow functions of the same name", func(t *testing.T) {
		shadowed := scope.Child(map[string]any{"abs": int64(1)})
		_, err := NewCall("abs", NewName("n")).Eval(shadowed)
		require.Error(t, err)
		assert.True(t, ErrNotAFunction.Is(err))
	})

	t.Run("Failing argument aborts before the call", func(t *testing.T) {
		_, err := NewCall("abs", NewName("ghost")).Eval(scope)
		require.Error(t, err)
		assert.True(t, ErrUnresolvedName.Is(err))
	})

	assert.Equal(t, "abs(n)", NewCall("abs", NewName("n")).String())
}

func TestBuiltins(t *testing.T) {
	scope := NewBaseScope(Builtins())

	tests := []struct {
		name     string
		expr     Expression
		expected any
	}{
		{"abs of negative int", NewCall("abs", NewLiteral(int64(-5))), int64(5)},
		{"abs of float", NewCall("abs", NewLiteral(-1.5)), 1.5},
		{"min of ints stays integral", NewCall("min", NewLiteral(int64(3)), NewLiteral(int64(1)), NewLiteral(int64(2))), int64(1)},
		{"max with a float goes float", NewCall("max", NewLiteral(int64(3)), NewLiteral(4.5)), 4.5},
		{"len of string", NewCall("len", NewLiteral("hello")), int64(5)},
		{"len of tuple", NewCall("len", NewTuple(NewLiteral(1), NewLiteral(2))), int64(2)},
		{"upper", NewCall("upper", NewLiteral("go")), "GO"},
		{"lower", NewCall("lower", NewLiteral("GO")), "go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.expr.Eval(scope)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}

	t.Run("Arity is enforced", func(t *testing.T) {
		_, err := NewCall("abs").Eval(scope)
		require.Error(t, err)
		assert.True(t, ErrArgumentCount.Is(err))

		_, err = NewCall("min").Eval(scope)
		require.Error(t, err)
		assert.True(t, ErrArgumentCount.Is(err))
	})

	t.Run("Operand kinds are enforced", func(t *testing.T) {
		_, err := NewCall("upper", NewLiteral(1)).Eval(scope)
		require.Error(t, err)
		assert.True(t, ErrInvalidOperand.Is(err))

		_, err = NewCall("len", NewLiteral(1)).Eval(scope)
		require.Error(t, err)
		assert.True(t, ErrInvalidOperand.Is(err))
	})
}
