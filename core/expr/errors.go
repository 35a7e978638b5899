package expr

import (
	errors "gopkg.in/src-d/go-errors.v1"
)

// Evaluation errors are errors.Kind values so callers can classify failures
// with Kind.Is without matching message strings. Name resolution failures
// get their own kind; every other kind below is a domain error raised during
// evaluation and surfaced to the caller unchanged.
var (
	// ErrUnresolvedName is returned when an expression references a name
	// that is absent from every scope in the chain.
	ErrUnresolvedName = errors.NewKind("name %q could not be resolved in the current or any enclosing scope")

	// ErrDivisionByZero is returned by / and % when the divisor is zero.
	ErrDivisionByZero = errors.NewKind("division by zero")

	// ErrInvalidOperand is returned when an operand cannot serve the
	// operation applied to it.
	ErrInvalidOperand = errors.NewKind("invalid operand for %s: %v (%T)")

	// ErrNotBoolean is returned when a logical operator receives a
	// non-boolean operand.
	ErrNotBoolean = errors.NewKind("expected a boolean operand for %s, got %v (%T)")

	// ErrUncomparable is returned when two values cannot be compared.
	ErrUncomparable = errors.NewKind("cannot compare %v (%T) with %v (%T)")

	// ErrNotAFunction is returned when a call resolves its name to a value
	// that is not a Function.
	ErrNotAFunction = errors.NewKind("%q is not a function (%T)")

	// ErrArgumentCount is returned when a function receives the wrong number
	// of arguments.
	ErrArgumentCount = errors.NewKind("%s expects %d argument(s), got %d")

	// ErrUnknownOperator guards against expressions assembled with an
	// operator the evaluator does not know.
	ErrUnknownOperator = errors.NewKind("unknown operator %q")
)
