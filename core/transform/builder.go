// Package transform provides a fluent API for building transformation
// plans. The builder ensures plans are constructed readably and can be
// validated before use.
package transform

import (
	"fmt"
	"maps"
	"slices"

	"github.com/asaidimu/go-rowwise/core/expr"
)

// PlanBuilder provides a fluent API for building Plan structures step by
// step, culminating in a final Plan object.
type PlanBuilder struct {
	plan Plan
}

// NewPlanBuilder creates a new, empty plan builder instance.
func NewPlanBuilder() *PlanBuilder {
	return &PlanBuilder{plan: Plan{}}
}

// Build returns the constructed Plan object.
func (pb *PlanBuilder) Build() Plan {
	return pb.plan
}

// Clone creates a copy of the current plan builder, allowing new plans to be
// derived from an existing one without modifying the original.
func (pb *PlanBuilder) Clone() *PlanBuilder {
	clone := &PlanBuilder{plan: pb.plan}
	clone.plan.Mutations = slices.Clone(pb.plan.Mutations)
	if pb.plan.Projection != nil {
		projection := Projection{
			Include: slices.Clone(pb.plan.Projection.Include),
			Exclude: slices.Clone(pb.plan.Projection.Exclude),
			Rename:  maps.Clone(pb.plan.Projection.Rename),
		}
		clone.plan.Projection = &projection
	}
	return clone
}

// Reset clears all configuration from the plan builder, returning it to its
// initial state.
func (pb *PlanBuilder) Reset() *PlanBuilder {
	pb.plan = Plan{}
	return pb
}

// Where sets the row filter. The predicate is evaluated once per row and
// must produce a boolean; rows evaluating to false are dropped before any
// mutation runs. Calling Where again replaces the previous predicate.
func (pb *PlanBuilder) Where(predicate expr.Expression) *PlanBuilder {
	pb.plan.Filter = predicate
	return pb
}

// Mutate appends a mutation deriving the named column from e. Mutations run
// in the order they are added, so later mutations see the columns created by
// earlier ones.
func (pb *PlanBuilder) Mutate(name string, e expr.Expression) *PlanBuilder {
	pb.plan.Mutations = append(pb.plan.Mutations, Mutation{Name: name, Expr: e})
	return pb
}

// ProjectionBuilder is used to build the projection part of a plan, which
// defines the columns of the final frame.
type ProjectionBuilder struct {
	parent *PlanBuilder
	config *Projection
}

// Select begins the construction of the plan's projection.
func (pb *PlanBuilder) Select() *ProjectionBuilder {
	if pb.plan.Projection == nil {
		pb.plan.Projection = &Projection{}
	}
	return &ProjectionBuilder{parent: pb, config: pb.plan.Projection}
}

// Include specifies columns to keep in the final frame, in the order given.
func (pjb *ProjectionBuilder) Include(columns ...string) *ProjectionBuilder {
	pjb.config.Include = append(pjb.config.Include, columns...)
	return pjb
}

// Exclude specifies columns to drop from the final frame.
func (pjb *ProjectionBuilder) Exclude(columns ...string) *ProjectionBuilder {
	pjb.config.Exclude = append(pjb.config.Exclude, columns...)
	return pjb
}

// Rename maps a column to a new name in the final frame.
func (pjb *ProjectionBuilder) Rename(from, to string) *ProjectionBuilder {
	if pjb.config.Rename == nil {
		pjb.config.Rename = make(map[string]string)
	}
	pjb.config.Rename[from] = to
	return pjb
}

// End finalizes the projection and returns to the main plan builder.
func (pjb *ProjectionBuilder) End() *PlanBuilder {
	return pjb.parent
}

// PlanValidationError represents a single error found during plan
// validation.
type PlanValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for a PlanValidationError.
func (ve PlanValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", ve.Field, ve.Message)
}

// PlanValidationResult contains the results of a plan validation.
type PlanValidationResult struct {
	IsValid bool
	Errors  []PlanValidationError
}

// Validate performs a validation of the built plan, checking for unnamed or
// empty mutations and conflicting projection settings.
func (pb *PlanBuilder) Validate() PlanValidationResult {
	var errors []PlanValidationError

	for i, m := range pb.plan.Mutations {
		if m.Name == "" {
			errors = append(errors, PlanValidationError{
				Field:   fmt.Sprintf("mutations[%d].name", i),
				Message: "mutation name cannot be empty",
			})
		}
		if m.Expr == nil {
			errors = append(errors, PlanValidationError{
				Field:   fmt.Sprintf("mutations[%d].expr", i),
				Message: "mutation expression cannot be nil",
			})
		}
	}

	if pb.plan.Projection != nil {
		if len(pb.plan.Projection.Include) > 0 && len(pb.plan.Projection.Exclude) > 0 {
			errors = append(errors, PlanValidationError{
				Field:   "projection",
				Message: "cannot have both include and exclude columns",
			})
		}
	}

	return PlanValidationResult{IsValid: len(errors) == 0, Errors: errors}
}

// String returns a human-readable representation of the built plan.
func (pb *PlanBuilder) String() string {
	return pb.plan.String()
}
