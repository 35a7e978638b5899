// Package transform defines the plan vocabulary for frame transformations:
// filter predicates, mutations deriving new columns row by row, and
// projections narrowing the final frame.
package transform

import (
	"fmt"
	"slices"
	"strings"

	"github.com/asaidimu/go-rowwise/core/expr"
)

// Mutation derives a column: Expr is evaluated once per row and the
// collected result is attached to the frame under Name, replacing any
// existing column of that name.
type Mutation struct {
	Name string          // The column to add or replace.
	Expr expr.Expression // The expression evaluated against each row.
}

// NewMutation creates a single mutation deriving name from e.
func NewMutation(name string, e expr.Expression) Mutation {
	return Mutation{Name: name, Expr: e}
}

// Projection narrows and renames the columns of the final frame.
type Projection struct {
	Include []string          // Columns to keep, in order. Empty keeps all.
	Exclude []string          // Columns to drop, applied after Include.
	Rename  map[string]string // Old-name to new-name pairs, applied last.
}

// Plan is the complete description of a frame transformation: an optional
// row filter, followed by mutations in declaration order, followed by an
// optional projection.
type Plan struct {
	Filter     expr.Expression
	Mutations  []Mutation
	Projection *Projection
}

// String returns a human-readable representation of the plan.
func (p Plan) String() string {
	var parts []string

	if p.Filter != nil {
		parts = append(parts, fmt.Sprintf("WHERE: %s", p.Filter))
	}

	for _, m := range p.Mutations {
		parts = append(parts, fmt.Sprintf("MUTATE: %s = %s", m.Name, m.Expr))
	}

	if p.Projection != nil {
		if len(p.Projection.Include) > 0 {
			parts = append(parts, fmt.Sprintf("SELECT: %s", strings.Join(p.Projection.Include, ", ")))
		}
		if len(p.Projection.Exclude) > 0 {
			parts = append(parts, fmt.Sprintf("EXCLUDE: %s", strings.Join(p.Projection.Exclude, ", ")))
		}
		if len(p.Projection.Rename) > 0 {
			renames := make([]string, 0, len(p.Projection.Rename))
			for from, to := range p.Projection.Rename {
				renames = append(renames, fmt.Sprintf("%s -> %s", from, to))
			}
			slices.Sort(renames)
			parts = append(parts, fmt.Sprintf("RENAME: %s", strings.Join(renames, ", ")))
		}
	}

	if len(parts) == 0 {
		return "EMPTY PLAN"
	}

	return strings.Join(parts, " | ")
}
