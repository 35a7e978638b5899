package expr

import (
	"fmt"
)

// And is a short-circuiting logical conjunction. The right operand is not
// evaluated when the left operand is false.
type And struct {
	BinaryExpression
}

// NewAnd creates a logical AND over the given operands.
func NewAnd(left, right Expression) *And {
	return &And{BinaryExpression{Left: left, Right: right}}
}

func (a *And) Eval(scope *Scope) (any, error) {
	lval, err := a.Left.Eval(scope)
	if err != nil {
		return nil, err
	}
	l, ok := lval.(bool)
	if !ok {
		return nil, ErrNotBoolean.New("and", lval, lval)
	}
	if !l {
		return false, nil
	}

	rval, err := a.Right.Eval(scope)
	if err != nil {
		return nil, err
	}
	r, ok := rval.(bool)
	if !ok {
		return nil, ErrNotBoolean.New("and", rval, rval)
	}
	return r, nil
}

func (a *And) String() string {
	return fmt.Sprintf("(%s and %s)", a.Left, a.Right)
}

// Or is a short-circuiting logical disjunction. The right operand is not
// evaluated when the left operand is true.
type Or struct {
	BinaryExpression
}

// NewOr creates a logical OR over the given operands.
func NewOr(left, right Expression) *Or {
	return &Or{BinaryExpression{Left: left, Right: right}}
}

func (o *Or) Eval(scope *Scope) (any, error) {
	lval, err := o.Left.Eval(scope)
	if err != nil {
		return nil, err
	}
	l, ok := lval.(bool)
	if !ok {
		return nil, ErrNotBoolean.New("or", lval, lval)
	}
	if l {
		return true, nil
	}

	rval, err := o.Right.Eval(scope)
	if err != nil {
		return nil, err
	}
	r, ok := rval.(bool)
	if !ok {
		return nil, ErrNotBoolean.New("or", rval, rval)
	}
	return r, nil
}

func (o *Or) String() string {
	return fmt.Sprintf("(%s or %s)", o.Left, o.Right)
}

// Not negates a boolean operand.
type Not struct {
	UnaryExpression
}

// NewNot creates a logical NOT over the given operand.
func NewNot(child Expression) *Not {
	return &Not{UnaryExpression{Child: child}}
}

func (n *Not) Eval(scope *Scope) (any, error) {
	val, err := n.Child.Eval(scope)
	if err != nil {
		return nil, err
	}
	b, ok := val.(bool)
	if !ok {
		return nil, ErrNotBoolean.New("not", val, val)
	}
	return !b, nil
}

func (n *Not) String() string {
	return fmt.Sprintf("(not %s)", n.Child)
}
