// Package records defines the flat record type produced by the JSON parsers
// and consumed by the transform layer.
//
// A Record is one parsed input object: a song-metadata file yields exactly one
// Record, an activity-log file yields one Record per NDJSON line. Values hold
// whatever encoding/json produced; because the parsers decode with UseNumber,
// numeric fields arrive as json.Number and the typed accessors below perform
// the coercion the caller needs.
package records

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is a flat JSON object keyed by field name.
type Record map[string]any

// String returns the string value for key. Non-string values are rendered via
// fmt.Sprint; a missing or null key returns "".
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int returns the integer value for key. It accepts json.Number, float64, int,
// and numeric strings (activity logs carry userId as a quoted number).
func (r Record) Int(key string) (int, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("records: missing field %q", key)
	}
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			// Some sources encode integers as "123.0".
			f, ferr := n.Float64()
			if ferr != nil {
				return 0, fmt.Errorf("records: field %q: %w", key, err)
			}
			return int(f), nil
		}
		return int(i), nil
	case float64:
		return int(n), nil
	case int:
		return n, nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("records: field %q: %w", key, err)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("records: field %q has non-numeric type %T", key, v)
	}
}

// Int64 is Int for values that may exceed 32 bits (millisecond epochs).
func (r Record) Int64(key string) (int64, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("records: missing field %q", key)
	}
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("records: field %q: %w", key, err)
		}
		return i, nil
	case float64:
		return int64(n), nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("records: field %q: %w", key, err)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("records: field %q has non-numeric type %T", key, v)
	}
}

// Float returns the float64 value for key, accepting json.Number, float64,
// and numeric strings.
func (r Record) Float(key string) (float64, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("records: missing field %q", key)
	}
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("records: field %q: %w", key, err)
		}
		return f, nil
	case float64:
		return n, nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("records: field %q: %w", key, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("records: field %q has non-numeric type %T", key, v)
	}
}

// FloatPtr returns the float64 value for key, or nil when the key is absent,
// null, or not numeric. Used for nullable columns such as artist coordinates.
func (r Record) FloatPtr(key string) *float64 {
	v, ok := r[key]
	if !ok || v == nil {
		return nil
	}
	f, err := r.Float(key)
	if err != nil {
		return nil
	}
	return &f
}

// Has reports whether key is present and non-null.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}
