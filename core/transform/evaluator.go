// Package transform applies row-wise computations to frames. Its centerpiece
// is the RowEvaluator, which evaluates one expression once per row with that
// row's values bound as the innermost scope, and the Processor, which chains
// filter, mutation and projection steps into whole-frame transformations.
package transform

import (
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/asaidimu/go-rowwise/core/expr"
	"github.com/asaidimu/go-rowwise/core/frame"
)

// Result holds the per-row outcomes of a row-wise evaluation, in row order.
// Kind reports the uniform scalar kind when the sequence simplified, and
// frame.KindAny when it did not.
type Result struct {
	Values []any
	Kind   frame.Kind
}

// Simplified reports whether the results collapsed to a flat sequence of a
// single scalar kind.
func (r *Result) Simplified() bool {
	return r.Kind != frame.KindAny
}

// Column converts the result into a frame column carrying the given name.
func (r *Result) Column(name string) frame.Column {
	return frame.Column{Name: name, Kind: r.Kind, Values: r.Values}
}

// RowEvaluator evaluates expressions once per row of a frame.
type RowEvaluator struct {
	logger *zap.Logger
}

// NewRowEvaluator creates a new RowEvaluator instance.
func NewRowEvaluator(logger *zap.Logger) *RowEvaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RowEvaluator{logger: logger}
}

// EvaluateByRow evaluates e once per row of fr, in row order. For each row a
// fresh scope is built over that row's column values with enclosing as its
// fallback, so column names shadow enclosing bindings and every other name
// falls through to the enclosing scope. The collected results are then
// simplified (see Simplify) into the returned Result.
//
// The frame is never modified, no state is carried between rows, and nothing
// is cached: calling twice with the same inputs re-evaluates every row and
// yields the same result. The first error from any row aborts the remaining
// rows and is returned exactly as the expression raised it, with no partial
// result. A frame with zero rows yields an empty result without ever
// evaluating e.
func (re *RowEvaluator) EvaluateByRow(fr *frame.Frame, e expr.Expression, enclosing *expr.Scope) (*Result, error) {
	if e == nil {
		return nil, ErrNilExpression.New()
	}

	rows := fr.Len()
	re.logger.Debug("Evaluating expression by row",
		zap.String("expression", e.String()),
		zap.Int("rows", rows))

	values := make([]any, 0, rows)
	for i := 0; i < rows; i++ {
		rowScope := enclosing.Child(fr.Row(i))
		value, err := e.Eval(rowScope)
		if err != nil {
			re.logger.Debug("Row evaluation aborted",
				zap.Int("row", i),
				zap.Error(err))
			return nil, err
		}
		values = append(values, value)
	}

	kind, simplified := Simplify(values)
	return &Result{Values: simplified, Kind: kind}, nil
}

// Simplify collapses a sequence of per-row results into a flat typed
// sequence when every entry is a single scalar of one combinable kind:
//
//   - all integers give frame.KindInt, values normalized to int64
//   - all floats, or integers mixed with floats, give frame.KindFloat,
//     values normalized to float64
//   - all booleans give frame.KindBool
//   - all strings give frame.KindString
//
// Any other sequence is left exactly as produced, under frame.KindAny. That
// covers nil entries, mixes of non-combinable kinds, and multi-valued
// entries such as tuple results. Multi-valued entries are never flattened
// into their elements.
func Simplify(values []any) (frame.Kind, []any) {
	if len(values) == 0 {
		return frame.KindAny, values
	}

	kind := frame.KindOf(values[0])
	if kind == frame.KindAny {
		return frame.KindAny, values
	}
	for _, v := range values[1:] {
		k := frame.KindOf(v)
		switch {
		case k == kind:
		case k.Numeric() && kind.Numeric():
			kind = frame.KindFloat
		default:
			return frame.KindAny, values
		}
	}

	switch kind {
	case frame.KindInt:
		normalized := make([]any, len(values))
		for i, v := range values {
			normalized[i] = cast.ToInt64(v)
		}
		return frame.KindInt, normalized
	case frame.KindFloat:
		normalized := make([]any, len(values))
		for i, v := range values {
			normalized[i] = cast.ToFloat64(v)
		}
		return frame.KindFloat, normalized
	}
	return kind, values
}
