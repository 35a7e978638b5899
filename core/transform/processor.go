package transform

import (
	"slices"

	"go.uber.org/zap"

	"github.com/asaidimu/go-rowwise/core/expr"
	"github.com/asaidimu/go-rowwise/core/frame"
)

// Processor applies transformation plans to frames: the filter first, then
// each mutation in order, then the projection. Every step produces a new
// frame and the input frame is never modified.
type Processor struct {
	evaluator *RowEvaluator
	logger    *zap.Logger
}

// Ensure Processor satisfies the Transformer interface.
var _ Transformer = (*Processor)(nil)

// NewProcessor creates a new Processor instance.
func NewProcessor(logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		evaluator: NewRowEvaluator(logger),
		logger:    logger,
	}
}

// Evaluator returns the processor's row evaluator.
func (p *Processor) Evaluator() *RowEvaluator {
	return p.evaluator
}

// Apply runs plan against fr and returns the transformed frame. Names in
// plan expressions resolve to the row's columns first and fall back to the
// enclosing scope. The first failing step aborts the run and its error is
// returned unchanged; the input frame is left exactly as it was. A nil plan
// returns the input frame.
func (p *Processor) Apply(fr *frame.Frame, plan *Plan, enclosing *expr.Scope) (*frame.Frame, error) {
	if plan == nil {
		return fr, nil
	}

	result, err := p.applyFilter(fr, plan.Filter, enclosing)
	if err != nil {
		return nil, err
	}
	result, err = p.applyMutations(result, plan.Mutations, enclosing)
	if err != nil {
		return nil, err
	}
	result, err = p.applyProjection(result, plan.Projection)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("Plan applied",
		zap.Int("rows", result.Len()),
		zap.Int("columns", result.Width()))
	return result, nil
}

// applyFilter evaluates the predicate against every row and keeps the rows
// where it is true. A nil predicate keeps every row.
func (p *Processor) applyFilter(fr *frame.Frame, predicate expr.Expression, enclosing *expr.Scope) (*frame.Frame, error) {
	if predicate == nil {
		return fr, nil
	}

	result, err := p.evaluator.EvaluateByRow(fr, predicate, enclosing)
	if err != nil {
		return nil, err
	}
	if result.Kind != frame.KindBool && fr.Len() > 0 {
		return nil, ErrPredicateNotBoolean.New(predicate.String(), result.Kind)
	}

	keep := make([]bool, len(result.Values))
	for i, v := range result.Values {
		keep[i], _ = v.(bool)
	}
	p.logger.Debug("Filter evaluated", zap.String("predicate", predicate.String()))
	return fr.Keep(keep)
}

// applyMutations derives each mutation's column in order, so later mutations
// see the columns added by earlier ones.
func (p *Processor) applyMutations(fr *frame.Frame, mutations []Mutation, enclosing *expr.Scope) (*frame.Frame, error) {
	result := fr
	for _, m := range mutations {
		evaluated, err := p.evaluator.EvaluateByRow(result, m.Expr, enclosing)
		if err != nil {
			return nil, err
		}
		result, err = result.WithColumn(evaluated.Column(m.Name))
		if err != nil {
			return nil, err
		}
		p.logger.Debug("Derived column",
			zap.String("column", m.Name),
			zap.String("kind", string(evaluated.Kind)))
	}
	return result, nil
}

// applyProjection narrows the frame to the projection's columns and applies
// renames. A nil projection returns the frame unchanged.
func (p *Processor) applyProjection(fr *frame.Frame, projection *Projection) (*frame.Frame, error) {
	if projection == nil {
		return fr, nil
	}

	result, err := fr.Select(projection.Include, projection.Exclude)
	if err != nil {
		return nil, err
	}

	// Apply renames in name order so overlapping renames behave the same
	// from run to run.
	froms := make([]string, 0, len(projection.Rename))
	for from := range projection.Rename {
		froms = append(froms, from)
	}
	slices.Sort(froms)
	for _, from := range froms {
		result, err = result.Rename(from, projection.Rename[from])
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}
