package expr

import (
	"strings"
)

// Tuple evaluates each of its items and collects the results into a []any.
// A tuple result counts as a single multi-valued entry downstream and is
// never flattened.
type Tuple struct {
	items []Expression
}

// NewTuple creates a tuple over the given items.
func NewTuple(items ...Expression) *Tuple {
	return &Tuple{items: items}
}

// Eval evaluates every item in order and returns the collected values. The
// first failing item aborts the tuple.
func (t *Tuple) Eval(scope *Scope) (any, error) {
	values := make([]any, len(t.items))
	for i, item := range t.items {
		value, err := item.Eval(scope)
		if err != nil {
			return nil, err
		}
		values[i] = value
	}
	return values, nil
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.items))
	for i, item := range t.items {
		parts[i] = item.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
