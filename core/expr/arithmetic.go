package expr

import (
	"fmt"
	"math"

	"github.com/spf13/cast"
)

// Arithmetic is a binary arithmetic expression over +, -, *, / or %.
type Arithmetic struct {
	BinaryExpression
	Op string
}

// NewArithmetic creates an arithmetic expression with the given operator.
func NewArithmetic(left, right Expression, op string) *Arithmetic {
	return &Arithmetic{BinaryExpression{Left: left, Right: right}, op}
}

// NewPlus creates an addition. Two string operands concatenate instead.
func NewPlus(left, right Expression) *Arithmetic {
	return NewArithmetic(left, right, "+")
}

// NewMinus creates a subtraction.
func NewMinus(left, right Expression) *Arithmetic {
	return NewArithmetic(left, right, "-")
}

// NewMult creates a multiplication.
func NewMult(left, right Expression) *Arithmetic {
	return NewArithmetic(left, right, "*")
}

// NewDiv creates a division.
func NewDiv(left, right Expression) *Arithmetic {
	return NewArithmetic(left, right, "/")
}

// NewMod creates a modulo.
func NewMod(left, right Expression) *Arithmetic {
	return NewArithmetic(left, right, "%")
}

// Eval evaluates both operands and applies the operator. Two integer
// operands stay in integer arithmetic; any float operand promotes the whole
// operation to float. Strings are only valid for +, which concatenates.
func (a *Arithmetic) Eval(scope *Scope) (any, error) {
	lval, err := a.Left.Eval(scope)
	if err != nil {
		return nil, err
	}
	rval, err := a.Right.Eval(scope)
	if err != nil {
		return nil, err
	}

	if a.Op == "+" {
		if ls, ok := lval.(string); ok {
			if rs, ok := rval.(string); ok {
				return ls + rs, nil
			}
		}
	}

	if isFloat(lval) || isFloat(rval) {
		return a.evalFloat(lval, rval)
	}
	return a.evalInt(lval, rval)
}

func (a *Arithmetic) evalInt(lval, rval any) (any, error) {
	l, err := cast.ToInt64E(lval)
	if err != nil {
		return nil, ErrInvalidOperand.New(a.Op, lval, lval)
	}
	r, err := cast.ToInt64E(rval)
	if err != nil {
		return nil, ErrInvalidOperand.New(a.Op, rval, rval)
	}

	switch a.Op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return nil, ErrDivisionByZero.New()
		}
		return l / r, nil
	case "%":
		if r == 0 {
			return nil, ErrDivisionByZero.New()
		}
		return l % r, nil
	}
	return nil, ErrUnknownOperator.New(a.Op)
}

func (a *Arithmetic) evalFloat(lval, rval any) (any, error) {
	l, err := cast.ToFloat64E(lval)
	if err != nil {
		return nil, ErrInvalidOperand.New(a.Op, lval, lval)
	}
	r, err := cast.ToFloat64E(rval)
	if err != nil {
		return nil, ErrInvalidOperand.New(a.Op, rval, rval)
	}

	switch a.Op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return nil, ErrDivisionByZero.New()
		}
		return l / r, nil
	case "%":
		if r == 0 {
			return nil, ErrDivisionByZero.New()
		}
		return math.Mod(l, r), nil
	}
	return nil, ErrUnknownOperator.New(a.Op)
}

func (a *Arithmetic) String() string {
	return fmt.Sprintf("(%s %s %s)", a.Left, a.Op, a.Right)
}
