package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// StructToMap converts a struct into a map[string]any through a JSON round
// trip, respecting json tags. Integral numbers come back as int64 and
// fractional ones as float64, so column kinds inferred from the result stay
// faithful to the struct. Nested objects and arrays are preserved as
// json.RawMessage so their exact representation survives until needed.
func StructToMap[T any](record T) (map[string]any, error) {
	jsonData, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal struct to JSON: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(jsonData, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON to map: %w", err)
	}

	result := make(map[string]any, len(raw))
	for key, value := range raw {
		decoded, err := decodeScalar(value)
		if err != nil {
			return nil, fmt.Errorf("failed to decode field %q: %w", key, err)
		}
		result[key] = decoded
	}
	return result, nil
}

// decodeScalar decodes a JSON value, keeping objects and arrays as raw
// messages and mapping numbers to int64 where they are integral.
func decodeScalar(value json.RawMessage) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(value))
	decoder.UseNumber()

	var decoded any
	if err := decoder.Decode(&decoded); err != nil {
		return nil, err
	}

	switch v := decoded.(type) {
	case map[string]any, []any:
		return value, nil
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		return v.Float64()
	default:
		return decoded, nil
	}
}

// StructsToMaps converts a slice of structs into row maps, one per element,
// in order. The result feeds directly into frame.FromMaps.
func StructsToMaps[T any](records []T) ([]map[string]any, error) {
	rows := make([]map[string]any, 0, len(records))
	for i, record := range records {
		row, err := StructToMap(record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// MapToStruct converts a map, such as a frame row, back into a struct of
// type T through a JSON round trip.
func MapToStruct[T any](input map[string]any) (T, error) {
	var result T

	jsonData, err := json.Marshal(input)
	if err != nil {
		return result, fmt.Errorf("failed to marshal map to JSON: %w", err)
	}
	if err := json.Unmarshal(jsonData, &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal JSON to struct: %w", err)
	}
	return result, nil
}
