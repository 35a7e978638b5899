// Package expr defines the expression model evaluated against scopes. An
// expression is an opaque, unevaluated computation; the only things the rest
// of the library assumes about it are the Eval and String methods. Names
// inside an expression are resolved through a scope chain at evaluation time,
// never at construction time.
package expr

// Expression is an unevaluated computation. Implementations resolve any
// names they reference through the scope passed to Eval.
type Expression interface {
	// Eval evaluates the expression against the given scope.
	Eval(scope *Scope) (any, error)
	// String returns a readable rendering of the expression.
	String() string
}

// UnaryExpression is the common shape of expressions with one operand.
type UnaryExpression struct {
	Child Expression
}

// BinaryExpression is the common shape of expressions with two operands.
type BinaryExpression struct {
	Left  Expression
	Right Expression
}

// isFloat reports whether v is a floating point value.
func isFloat(v any) bool {
	switch v.(type) {
	case float32, float64:
		return true
	}
	return false
}

// isNumeric reports whether v is an integer or floating point value.
func isNumeric(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	}
	return false
}
