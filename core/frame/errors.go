package frame

import (
	errors "gopkg.in/src-d/go-errors.v1"
)

// Structural errors reported while building or reshaping frames. Each is an
// errors.Kind so callers can classify a failure with Kind.Is instead of
// matching message strings.
var (
	// ErrRowCountMismatch is returned when a column or row mask does not
	// match the frame's row count. Ragged input is rejected eagerly at
	// construction time so no later operation ever observes it.
	ErrRowCountMismatch = errors.NewKind("%q has %d values, expected %d rows")

	// ErrDuplicateColumn is returned when two columns share a name.
	ErrDuplicateColumn = errors.NewKind("duplicate column %q")

	// ErrEmptyColumnName is returned when a column has no name.
	ErrEmptyColumnName = errors.NewKind("column %d has an empty name")

	// ErrColumnNotFound is returned when a named column does not exist.
	ErrColumnNotFound = errors.NewKind("column %q could not be found")
)
