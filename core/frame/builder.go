// Package frame provides a fluent builder for assembling frames column by
// column, with validation that catches shape problems before construction.
package frame

import (
	"fmt"
	"slices"
	"strings"
)

// FrameBuilder provides a fluent API for assembling a frame column by
// column, culminating in a call to Build.
type FrameBuilder struct {
	columns []Column
}

// NewFrameBuilder creates a new, empty frame builder.
func NewFrameBuilder() *FrameBuilder {
	return &FrameBuilder{}
}

// Ints appends an integer column.
func (fb *FrameBuilder) Ints(name string, values ...int64) *FrameBuilder {
	fb.columns = append(fb.columns, Ints(name, values...))
	return fb
}

// Floats appends a floating point column.
func (fb *FrameBuilder) Floats(name string, values ...float64) *FrameBuilder {
	fb.columns = append(fb.columns, Floats(name, values...))
	return fb
}

// Bools appends a boolean column.
func (fb *FrameBuilder) Bools(name string, values ...bool) *FrameBuilder {
	fb.columns = append(fb.columns, Bools(name, values...))
	return fb
}

// Strings appends a text column.
func (fb *FrameBuilder) Strings(name string, values ...string) *FrameBuilder {
	fb.columns = append(fb.columns, Strings(name, values...))
	return fb
}

// Anys appends an untyped column.
func (fb *FrameBuilder) Anys(name string, values ...any) *FrameBuilder {
	fb.columns = append(fb.columns, Anys(name, values...))
	return fb
}

// Column appends an already constructed column.
func (fb *FrameBuilder) Column(col Column) *FrameBuilder {
	fb.columns = append(fb.columns, col)
	return fb
}

// Clone creates a copy of the current builder, allowing new frames to be
// derived from a shared base without modifying the original.
func (fb *FrameBuilder) Clone() *FrameBuilder {
	return &FrameBuilder{columns: slices.Clone(fb.columns)}
}

// Reset clears all columns from the builder, returning it to its initial
// state.
func (fb *FrameBuilder) Reset() *FrameBuilder {
	fb.columns = nil
	return fb
}

// Build assembles the frame, validating column names and lengths.
func (fb *FrameBuilder) Build() (*Frame, error) {
	return New(fb.columns...)
}

// FrameValidationError represents a single error found during builder
// validation.
type FrameValidationError struct {
	Column  string
	Message string
}

// Error returns the error message for a FrameValidationError.
func (ve FrameValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", ve.Column, ve.Message)
}

// FrameValidationResult contains the results of a builder validation.
type FrameValidationResult struct {
	IsValid bool
	Errors  []FrameValidationError
}

// Validate checks the accumulated columns for empty or duplicate names and
// mismatched lengths, without building the frame.
func (fb *FrameBuilder) Validate() FrameValidationResult {
	var errors []FrameValidationError
	seen := make(map[string]struct{}, len(fb.columns))
	rows := -1

	for i, col := range fb.columns {
		if col.Name == "" {
			errors = append(errors, FrameValidationError{
				Column:  fmt.Sprintf("columns[%d]", i),
				Message: "column name cannot be empty",
			})
			continue
		}
		if _, dup := seen[col.Name]; dup {
			errors = append(errors, FrameValidationError{
				Column:  col.Name,
				Message: "duplicate column name",
			})
		}
		seen[col.Name] = struct{}{}

		if rows == -1 {
			rows = len(col.Values)
		} else if len(col.Values) != rows {
			errors = append(errors, FrameValidationError{
				Column:  col.Name,
				Message: fmt.Sprintf("has %d values, expected %d", len(col.Values), rows),
			})
		}
	}

	return FrameValidationResult{IsValid: len(errors) == 0, Errors: errors}
}

// String returns a human-readable representation of the columns accumulated
// so far.
func (fb *FrameBuilder) String() string {
	if len(fb.columns) == 0 {
		return "EMPTY FRAME"
	}
	parts := make([]string, len(fb.columns))
	for i, col := range fb.columns {
		parts[i] = fmt.Sprintf("%s(%s:%d)", col.Name, col.Kind, len(col.Values))
	}
	return "COLUMNS: " + strings.Join(parts, ", ")
}
