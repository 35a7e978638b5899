package frame

import (
	"fmt"
)

// Issue represents a single problem found while validating a frame.
type Issue struct {
	Code     string `json:"code"`               // A stable, machine-readable code, e.g. "KIND_MISMATCH".
	Message  string `json:"message"`            // A human-readable description of the problem.
	Path     string `json:"path,omitempty"`     // The column and row the issue was found at, e.g. "price[2]".
	Severity string `json:"severity,omitempty"` // The severity of the issue, currently always "error".
}

// ValidationResult reports the outcome of a validation pass.
type ValidationResult struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues"`
}

// Validate checks every column's values against its declared kind and
// reports each mismatch as an issue. nil values are permitted under any
// kind, and columns declared KindAny accept everything. Frames built through
// New are structurally sound by construction; Validate exists for frames
// whose columns were assembled by hand or loaded from outside.
func (f *Frame) Validate() *ValidationResult {
	issues := make([]Issue, 0)
	for _, col := range f.columns {
		if col.Kind == KindAny {
			continue
		}
		for i, v := range col.Values {
			if v == nil {
				continue
			}
			if KindOf(v) != col.Kind {
				issues = append(issues, Issue{
					Code:     "KIND_MISMATCH",
					Message:  fmt.Sprintf("expected %s, got %T", col.Kind, v),
					Path:     fmt.Sprintf("%s[%d]", col.Name, i),
					Severity: "error",
				})
			}
		}
	}
	return &ValidationResult{Valid: len(issues) == 0, Issues: issues}
}
