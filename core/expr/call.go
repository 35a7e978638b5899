package expr

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Function is a callable value invoked through a Call expression. The name
// used to reach it is resolved through the scope chain like any other
// binding, so row values can shadow functions and functions can live in an
// enclosing scope.
type Function func(args ...any) (any, error)

// FunctionMap maps function names to implementations, typically installed
// into a root scope with NewBaseScope.
type FunctionMap map[string]Function

// Call applies a named function to its evaluated arguments.
type Call struct {
	name string
	args []Expression
}

// NewCall creates a call of name over the given arguments.
func NewCall(name string, args ...Expression) *Call {
	return &Call{name: name, args: args}
}

// Name returns the name the call resolves its function by.
func (c *Call) Name() string {
	return c.name
}

// Eval resolves the function through the scope chain, evaluates the
// arguments in order, and invokes it. The first failing argument aborts the
// call before the function runs.
func (c *Call) Eval(scope *Scope) (any, error) {
	value, ok := scope.Resolve(c.name)
	if !ok {
		return nil, ErrUnresolvedName.New(c.name)
	}
	fn, ok := value.(Function)
	if !ok {
		return nil, ErrNotAFunction.New(c.name, value)
	}

	args := make([]any, len(c.args))
	for i, arg := range c.args {
		val, err := arg.Eval(scope)
		if err != nil {
			return nil, err
		}
		args[i] = val
	}
	return fn(args...)
}

func (c *Call) String() string {
	parts := make([]string, len(c.args))
	for i, arg := range c.args {
		parts[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", c.name, strings.Join(parts, ", "))
}

// Builtins returns the built-in function map: abs, min, max, len, upper and
// lower. Install it with NewBaseScope or merge it into your own map.
func Builtins() FunctionMap {
	return FunctionMap{
		"abs":   builtinAbs,
		"min":   builtinMin,
		"max":   builtinMax,
		"len":   builtinLen,
		"upper": builtinUpper,
		"lower": builtinLower,
	}
}

func builtinAbs(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, ErrArgumentCount.New("abs", 1, len(args))
	}
	if isFloat(args[0]) {
		f, err := cast.ToFloat64E(args[0])
		if err != nil {
			return nil, ErrInvalidOperand.New("abs", args[0], args[0])
		}
		return math.Abs(f), nil
	}
	n, err := cast.ToInt64E(args[0])
	if err != nil {
		return nil, ErrInvalidOperand.New("abs", args[0], args[0])
	}
	if n < 0 {
		return -n, nil
	}
	return n, nil
}

func builtinMin(args ...any) (any, error) {
	return pickExtreme("min", args, func(candidate, best float64) bool { return candidate < best })
}

func builtinMax(args ...any) (any, error) {
	return pickExtreme("max", args, func(candidate, best float64) bool { return candidate > best })
}

// pickExtreme scans the arguments for the extreme value under better. The
// result stays integral when every argument is integral.
func pickExtreme(name string, args []any, better func(candidate, best float64) bool) (any, error) {
	if len(args) == 0 {
		return nil, ErrArgumentCount.New(name, 1, 0)
	}

	intsOnly := true
	best := 0.0
	for i, arg := range args {
		v, err := cast.ToFloat64E(arg)
		if err != nil {
			return nil, ErrInvalidOperand.New(name, arg, arg)
		}
		if isFloat(arg) {
			intsOnly = false
		}
		if i == 0 || better(v, best) {
			best = v
		}
	}

	if intsOnly {
		return int64(best), nil
	}
	return best, nil
}

func builtinLen(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, ErrArgumentCount.New("len", 1, len(args))
	}
	switch v := args[0].(type) {
	case string:
		return int64(len(v)), nil
	case []any:
		return int64(len(v)), nil
	}
	return nil, ErrInvalidOperand.New("len", args[0], args[0])
}

func builtinUpper(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, ErrArgumentCount.New("upper", 1, len(args))
	}
	s, ok := args[0].(string)
	if !ok {
		return nil, ErrInvalidOperand.New("upper", args[0], args[0])
	}
	return strings.ToUpper(s), nil
}

func builtinLower(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, ErrArgumentCount.New("lower", 1, len(args))
	}
	s, ok := args[0].(string)
	if !ok {
		return nil, ErrInvalidOperand.New("lower", args[0], args[0])
	}
	return strings.ToLower(s), nil
}
