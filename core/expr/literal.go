package expr

import (
	"fmt"
)

// Literal is a self-evaluating constant.
type Literal struct {
	value any
}

// NewLiteral creates a literal carrying the given value.
func NewLiteral(value any) *Literal {
	return &Literal{value: value}
}

// Value returns the literal's value.
func (l *Literal) Value() any {
	return l.value
}

// Eval returns the literal's value. The scope is never consulted.
func (l *Literal) Eval(_ *Scope) (any, error) {
	return l.value, nil
}

func (l *Literal) String() string {
	if s, ok := l.value.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", l.value)
}
