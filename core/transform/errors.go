package transform

import (
	errors "gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrPredicateNotBoolean is returned when a filter predicate does not
	// evaluate to a boolean for every row.
	ErrPredicateNotBoolean = errors.NewKind("filter predicate %s must evaluate to booleans, got %s")

	// ErrNilExpression is returned when an evaluation is attempted with no
	// expression.
	ErrNilExpression = errors.NewKind("expression cannot be nil")
)
