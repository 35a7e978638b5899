package expr

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// Comparison is a binary comparison expression over =, !=, <, <=, > or >=.
type Comparison struct {
	BinaryExpression
	Op string
}

// NewComparison creates a comparison expression with the given operator.
func NewComparison(left, right Expression, op string) *Comparison {
	return &Comparison{BinaryExpression{Left: left, Right: right}, op}
}

// NewEquals creates an equality comparison.
func NewEquals(left, right Expression) *Comparison {
	return NewComparison(left, right, "=")
}

// NewNotEquals creates an inequality comparison.
func NewNotEquals(left, right Expression) *Comparison {
	return NewComparison(left, right, "!=")
}

// NewLessThan creates a less-than comparison.
func NewLessThan(left, right Expression) *Comparison {
	return NewComparison(left, right, "<")
}

// NewLessThanOrEqual creates a less-than-or-equal comparison.
func NewLessThanOrEqual(left, right Expression) *Comparison {
	return NewComparison(left, right, "<=")
}

// NewGreaterThan creates a greater-than comparison.
func NewGreaterThan(left, right Expression) *Comparison {
	return NewComparison(left, right, ">")
}

// NewGreaterThanOrEqual creates a greater-than-or-equal comparison.
func NewGreaterThanOrEqual(left, right Expression) *Comparison {
	return NewComparison(left, right, ">=")
}

// Eval evaluates both operands and compares them. Numbers compare
// numerically regardless of integer or float representation, strings compare
// lexicographically, and booleans support equality only.
func (c *Comparison) Eval(scope *Scope) (any, error) {
	lval, err := c.Left.Eval(scope)
	if err != nil {
		return nil, err
	}
	rval, err := c.Right.Eval(scope)
	if err != nil {
		return nil, err
	}

	cmp, err := c.compare(lval, rval)
	if err != nil {
		return nil, err
	}

	switch c.Op {
	case "=":
		return cmp == 0, nil
	case "!=":
		return cmp != 0, nil
	case "<":
		return cmp < 0, nil
	case "<=":
		return cmp <= 0, nil
	case ">":
		return cmp > 0, nil
	case ">=":
		return cmp >= 0, nil
	}
	return nil, ErrUnknownOperator.New(c.Op)
}

func (c *Comparison) compare(lval, rval any) (int, error) {
	if isNumeric(lval) && isNumeric(rval) {
		l, err := cast.ToFloat64E(lval)
		if err != nil {
			return 0, ErrUncomparable.New(lval, lval, rval, rval)
		}
		r, err := cast.ToFloat64E(rval)
		if err != nil {
			return 0, ErrUncomparable.New(lval, lval, rval, rval)
		}
		switch {
		case l < r:
			return -1, nil
		case l > r:
			return 1, nil
		}
		return 0, nil
	}

	if ls, ok := lval.(string); ok {
		if rs, ok := rval.(string); ok {
			return strings.Compare(ls, rs), nil
		}
	}

	if lb, ok := lval.(bool); ok {
		if rb, ok := rval.(bool); ok {
			if c.Op != "=" && c.Op != "!=" {
				return 0, ErrUncomparable.New(lval, lval, rval, rval)
			}
			if lb == rb {
				return 0, nil
			}
			return 1, nil
		}
	}

	return 0, ErrUncomparable.New(lval, lval, rval, rval)
}

func (c *Comparison) String() string {
	return fmt.Sprintf("(%s %s %s)", c.Left, c.Op, c.Right)
}
