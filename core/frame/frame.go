// Package frame defines the tabular data model used throughout the library:
// an ordered collection of uniquely named, equal-length columns. Rows exist
// only as the shared index across columns, so a frame with no columns has no
// rows.
package frame

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/spf13/cast"
)

// Kind identifies the kind of value a column carries. It drives result
// simplification in the transform package and column type mapping in the
// sqlite package.
type Kind string

const (
	KindInt    Kind = "integer" // Whole numbers, normalized to int64.
	KindFloat  Kind = "float"   // Floating point numbers, normalized to float64.
	KindBool   Kind = "boolean" // True or false values.
	KindString Kind = "string"  // Text values.
	KindAny    Kind = "any"     // Untyped or mixed values, including tuples.
)

// KindOf reports the Kind of a single value. Values that fit none of the
// scalar kinds, including nil, report KindAny.
func KindOf(v any) Kind {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInt
	case float32, float64:
		return KindFloat
	case bool:
		return KindBool
	case string:
		return KindString
	default:
		return KindAny
	}
}

// Numeric reports whether the kind is one of the combinable numeric kinds,
// KindInt or KindFloat.
func (k Kind) Numeric() bool {
	return k == KindInt || k == KindFloat
}

// Column is a named, ordered sequence of values of a declared Kind.
type Column struct {
	Name   string
	Kind   Kind
	Values []any
}

// Len returns the number of values in the column.
func (c Column) Len() int {
	return len(c.Values)
}

// Ints builds an integer column from the given values.
func Ints(name string, values ...int64) Column {
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return Column{Name: name, Kind: KindInt, Values: vals}
}

// Floats builds a floating point column from the given values.
func Floats(name string, values ...float64) Column {
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return Column{Name: name, Kind: KindFloat, Values: vals}
}

// Bools builds a boolean column from the given values.
func Bools(name string, values ...bool) Column {
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return Column{Name: name, Kind: KindBool, Values: vals}
}

// Strings builds a text column from the given values.
func Strings(name string, values ...string) Column {
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return Column{Name: name, Kind: KindString, Values: vals}
}

// Anys builds an untyped column from the given values.
func Anys(name string, values ...any) Column {
	if values == nil {
		values = make([]any, 0)
	}
	return Column{Name: name, Kind: KindAny, Values: values}
}

// Frame is an ordered collection of uniquely named, equal-length columns.
// A frame is never mutated in place: every operation that changes shape or
// content returns a new frame sharing the unchanged column storage.
type Frame struct {
	columns []Column
	index   map[string]int
	rows    int
}

// New builds a frame from the given columns. Column names must be unique and
// non-empty, and every column must have the same length, so a frame that
// exists always has a well-defined row count. Mismatched lengths are rejected
// here rather than left to surface mid-operation.
func New(columns ...Column) (*Frame, error) {
	f := &Frame{
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		if col.Name == "" {
			return nil, ErrEmptyColumnName.New(i)
		}
		if _, exists := f.index[col.Name]; exists {
			return nil, ErrDuplicateColumn.New(col.Name)
		}
		if i == 0 {
			f.rows = len(col.Values)
		} else if len(col.Values) != f.rows {
			return nil, ErrRowCountMismatch.New(col.Name, len(col.Values), f.rows)
		}
		f.index[col.Name] = len(f.columns)
		f.columns = append(f.columns, col)
	}
	return f, nil
}

// FromMaps builds a frame from row maps. Column order follows the order
// argument when given, otherwise it is the sorted union of keys across all
// rows. Keys missing from a row become nil values. Each column's kind is
// inferred from its non-nil values: a uniform scalar kind is kept, integers
// mixed with floats promote the column to KindFloat, and any other mix
// leaves the column untyped. Numeric columns come back normalized, int64 for
// KindInt and float64 for KindFloat.
func FromMaps(rows []map[string]any, order ...string) (*Frame, error) {
	names := order
	if len(names) == 0 {
		seen := make(map[string]struct{})
		for _, row := range rows {
			for name := range row {
				if _, ok := seen[name]; !ok {
					seen[name] = struct{}{}
					names = append(names, name)
				}
			}
		}
		slices.Sort(names)
	}

	columns := make([]Column, len(names))
	for ci, name := range names {
		values := make([]any, len(rows))
		for ri, row := range rows {
			values[ri] = row[name]
		}

		kind := inferKind(values)
		switch kind {
		case KindInt:
			for ri, v := range values {
				if v != nil {
					values[ri] = cast.ToInt64(v)
				}
			}
		case KindFloat:
			for ri, v := range values {
				if v != nil {
					values[ri] = cast.ToFloat64(v)
				}
			}
		}
		columns[ci] = Column{Name: name, Kind: kind, Values: values}
	}
	return New(columns...)
}

// inferKind derives a column kind from its values, ignoring nils: a uniform
// scalar kind is kept, integers mixed with floats promote to KindFloat, and
// any other mix gives KindAny.
func inferKind(values []any) Kind {
	kind := KindAny
	seen := false
	for _, v := range values {
		if v == nil {
			continue
		}
		k := KindOf(v)
		switch {
		case !seen:
			kind, seen = k, true
		case k == kind:
		case k.Numeric() && kind.Numeric():
			kind = KindFloat
		default:
			return KindAny
		}
	}
	return kind
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return f.rows
}

// Width returns the number of columns.
func (f *Frame) Width() int {
	return len(f.columns)
}

// Names returns the column names in their defined order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.columns))
	for i, col := range f.columns {
		names[i] = col.Name
	}
	return names
}

// Has reports whether a column with the given name exists.
func (f *Frame) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Column returns the named column and whether it exists.
func (f *Frame) Column(name string) (Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return Column{}, false
	}
	return f.columns[i], true
}

// Columns returns the columns in order. The slice is a copy; the backing
// value slices are shared with the frame.
func (f *Frame) Columns() []Column {
	return slices.Clone(f.columns)
}

// At returns the value at row i of the named column.
func (f *Frame) At(name string, i int) (any, bool) {
	idx, ok := f.index[name]
	if !ok || i < 0 || i >= f.rows {
		return nil, false
	}
	return f.columns[idx].Values[i], true
}

// Row returns the binding of column names to the values at row i. The map is
// freshly allocated on every call and never aliases frame storage, so a
// caller mutating it cannot disturb the frame or any other row.
func (f *Frame) Row(i int) map[string]any {
	row := make(map[string]any, len(f.columns))
	for _, col := range f.columns {
		row[col.Name] = col.Values[i]
	}
	return row
}

// WithColumn returns a new frame with col added as the last column, or
// replacing an existing column of the same name in its original position.
// The column's length must match the frame's row count unless the frame has
// no columns yet, in which case the new column defines it.
func (f *Frame) WithColumn(col Column) (*Frame, error) {
	if f.Width() > 0 && len(col.Values) != f.rows {
		return nil, ErrRowCountMismatch.New(col.Name, len(col.Values), f.rows)
	}
	columns := slices.Clone(f.columns)
	if i, ok := f.index[col.Name]; ok {
		columns[i] = col
	} else {
		columns = append(columns, col)
	}
	return New(columns...)
}

// Select returns a new frame holding only the chosen columns. A non-empty
// include list keeps exactly those columns, in the order listed; an empty
// include list keeps every column. Exclusions are applied afterwards, and
// excluding a column that does not exist is not an error.
func (f *Frame) Select(include, exclude []string) (*Frame, error) {
	excluded := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		excluded[name] = struct{}{}
	}

	columns := make([]Column, 0, f.Width())
	if len(include) == 0 {
		for _, col := range f.columns {
			if _, skip := excluded[col.Name]; skip {
				continue
			}
			columns = append(columns, col)
		}
	} else {
		for _, name := range include {
			i, ok := f.index[name]
			if !ok {
				return nil, ErrColumnNotFound.New(name)
			}
			if _, skip := excluded[name]; skip {
				continue
			}
			columns = append(columns, f.columns[i])
		}
	}
	return New(columns...)
}

// Rename returns a new frame with the column called from renamed to to,
// keeping its position and values.
func (f *Frame) Rename(from, to string) (*Frame, error) {
	i, ok := f.index[from]
	if !ok {
		return nil, ErrColumnNotFound.New(from)
	}
	columns := slices.Clone(f.columns)
	col := columns[i]
	col.Name = to
	columns[i] = col
	return New(columns...)
}

// Keep returns a new frame holding only the rows where keep[i] is true,
// preserving relative row order. The mask must have one entry per row.
func (f *Frame) Keep(keep []bool) (*Frame, error) {
	if len(keep) != f.rows {
		return nil, ErrRowCountMismatch.New("row mask", len(keep), f.rows)
	}
	columns := make([]Column, len(f.columns))
	for ci, col := range f.columns {
		values := make([]any, 0, len(col.Values))
		for ri, v := range col.Values {
			if keep[ri] {
				values = append(values, v)
			}
		}
		columns[ci] = Column{Name: col.Name, Kind: col.Kind, Values: values}
	}
	return New(columns...)
}

// Equal reports whether two frames have the same columns, in the same order,
// with the same kinds and equal values.
func (f *Frame) Equal(other *Frame) bool {
	if other == nil || f.rows != other.rows || len(f.columns) != len(other.columns) {
		return false
	}
	for i, col := range f.columns {
		o := other.columns[i]
		if col.Name != o.Name || col.Kind != o.Kind {
			return false
		}
		if len(col.Values) != len(o.Values) {
			return false
		}
		for j, v := range col.Values {
			if !reflect.DeepEqual(v, o.Values[j]) {
				return false
			}
		}
	}
	return true
}

// String returns a compact summary of the frame's shape and columns.
func (f *Frame) String() string {
	parts := make([]string, len(f.columns))
	for i, col := range f.columns {
		parts[i] = fmt.Sprintf("%s(%s)", col.Name, col.Kind)
	}
	return fmt.Sprintf("Frame[%d rows: %s]", f.rows, strings.Join(parts, ", "))
}
