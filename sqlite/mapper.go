// Package sqlite provides the mapping logic from frame column kinds to
// concrete SQLite column types and back. It is responsible for generating
// the DDL needed to store a frame and for converting driver values into
// frame values on the way out.
package sqlite

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/asaidimu/go-rowwise/core/frame"
)

// quoteIdentifier safely quotes an identifier, such as a table or column
// name, handling names that might be keywords or contain special characters.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// columnType maps a frame.Kind to the SQLite type it is declared as.
// Booleans and untyped columns get their own declared type names, both legal
// in SQLite, so Load can recover the original kind from the table
// definition.
func columnType(kind frame.Kind) string {
	switch kind {
	case frame.KindString:
		return "TEXT"
	case frame.KindFloat:
		return "REAL"
	case frame.KindInt:
		return "INTEGER"
	case frame.KindBool:
		return "BOOLEAN"
	default:
		return "JSON"
	}
}

// kindFromColumnType recovers a frame.Kind from a declared SQLite column
// type. Declared types outside the mapping load as untyped columns.
func kindFromColumnType(columnType string) frame.Kind {
	switch strings.ToUpper(columnType) {
	case "INTEGER":
		return frame.KindInt
	case "REAL":
		return frame.KindFloat
	case "BOOLEAN":
		return frame.KindBool
	case "TEXT":
		return frame.KindString
	default:
		return frame.KindAny
	}
}

// bindValue converts a frame value into a driver-friendly parameter. Bools
// become 0/1 integers and untyped values are JSON-encoded so structured
// values survive the round trip.
func bindValue(kind frame.Kind, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch kind {
	case frame.KindBool:
		if b, ok := v.(bool); ok {
			if b {
				return int64(1), nil
			}
			return int64(0), nil
		}
		return v, nil
	case frame.KindAny:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal value to JSON: %w", err)
		}
		return string(encoded), nil
	default:
		return v, nil
	}
}

// scanValue converts a driver value back into a frame value for the given
// kind: booleans from integers, strings from byte slices, JSON decoding for
// untyped columns.
func scanValue(kind frame.Kind, v any) any {
	if v == nil {
		return nil
	}
	switch kind {
	case frame.KindBool:
		if intVal, isInt := v.(int64); isInt {
			return intVal != 0
		}
		if boolVal, isBool := v.(bool); isBool {
			return boolVal
		}
		return v
	case frame.KindString:
		if byteVal, isBytes := v.([]byte); isBytes {
			return string(byteVal)
		}
		return v
	case frame.KindInt:
		if intVal, isInt := v.(int64); isInt {
			return intVal
		}
		if floatVal, isFloat := v.(float64); isFloat {
			return int64(floatVal)
		}
		return v
	case frame.KindFloat:
		if floatVal, isFloat := v.(float64); isFloat {
			return floatVal
		}
		if intVal, isInt := v.(int64); isInt {
			return float64(intVal)
		}
		return v
	case frame.KindAny:
		var encoded []byte
		if byteVal, isBytes := v.([]byte); isBytes {
			encoded = byteVal
		} else if strVal, isString := v.(string); isString {
			encoded = []byte(strVal)
		}
		if encoded != nil {
			var decoded any
			if err := json.Unmarshal(encoded, &decoded); err == nil {
				return decoded
			}
			return string(encoded)
		}
		return v
	}
	return v
}
