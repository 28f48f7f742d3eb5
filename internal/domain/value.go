package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// Document is the nested key/value structure persisted as one unit.
//
// Values held inside a Document are always one of nil, bool, float64, string,
// []any or map[string]any. Normalize converts arbitrary Go values into that
// set.
type Document = map[string]any

// NewDocument returns an empty Document.
func NewDocument() Document { return Document{} }

// Normalize converts v into the canonical value set of a Document. Values that
// are not one of the canonical kinds go through their JSON encoding.
func Normalize(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return t, nil
	case string:
		return t, nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, fmt.Errorf("%w: %v is not a finite number", ErrTypeMismatch, t)
		}
		return t, nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			n, err := Normalize(e)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			n, err := Normalize(e)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			n, err := Normalize(e)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(k)] = n
		}
		return out, nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		return Normalize(f)
	}
	if f, ok := AsNumber(v); ok {
		return Normalize(f)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %T cannot be stored: %v", ErrTypeMismatch, v, err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("%w: %T cannot be stored: %v", ErrTypeMismatch, v, err)
	}
	return out, nil
}

// Clone returns a deep copy of a canonical value.
func Clone(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Clone(e)
		}
		return out
	case map[string]any:
		return CloneDocument(t)
	default:
		return v
	}
}

// CloneDocument returns a deep copy of d. A nil d yields an empty Document.
func CloneDocument(d Document) Document {
	out := make(Document, len(d))
	for k, e := range d {
		out[k] = Clone(e)
	}
	return out
}

// Equal reports whether a and b are structurally equal. Numbers compare by
// value regardless of their Go type.
func Equal(a, b any) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case string:
		y, ok := b.(string)
		return ok && x == y
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, xv := range x {
			yv, ok := y[k]
			if !ok || !Equal(xv, yv) {
				return false
			}
		}
		return true
	}
	fa, ok := AsNumber(a)
	if !ok {
		return false
	}
	fb, ok := AsNumber(b)
	return ok && fa == fb
}

// AsNumber reports whether v is a Go numeric value and returns it as float64.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
