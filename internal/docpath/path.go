package docpath

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"docvault/internal/domain"
)

// Separator splits a path into segments.
const Separator = "."

// Split returns the segments of path.
func Split(path string) []string {
	return strings.Split(path, Separator)
}

// Lookup resolves path within doc and reports whether a key exists there. The
// returned value is not copied; it aliases doc.
//
// Presence is independent of the stored value: a key holding nil, false, 0 or
// "" is present.
func Lookup(doc domain.Document, path string) (any, bool) {
	segs := Split(path)
	cur := doc
	for _, seg := range segs[:len(segs)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	v, ok := cur[segs[len(segs)-1]]
	return v, ok
}

// Get returns a deep copy of the value at path, or def when the path is absent.
func Get(doc domain.Document, path string, def any) any {
	v, ok := Lookup(doc, path)
	if !ok {
		return def
	}
	return domain.Clone(v)
}

// Has reports whether a key exists at path.
func Has(doc domain.Document, path string) bool {
	_, ok := Lookup(doc, path)
	return ok
}

// Set assigns value at path, creating or replacing intermediates as needed.
// value is stored as is; callers normalise it beforehand.
func Set(doc domain.Document, path string, value any) {
	segs := Split(path)
	cur := doc
	for _, seg := range segs[:len(segs)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[seg] = next
		}
		cur = next
	}
	cur[segs[len(segs)-1]] = value
}

// Delete removes the key at path. Missing intermediates make it a no-op.
func Delete(doc domain.Document, path string) {
	segs := Split(path)
	cur := doc
	for _, seg := range segs[:len(segs)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			return
		}
		cur = next
	}
	delete(cur, segs[len(segs)-1])
}

// Push appends value to the sequence at path. An absent path becomes the
// single-element sequence [value].
func Push(doc domain.Document, path string, value any) error {
	cur, ok := Lookup(doc, path)
	if !ok {
		Set(doc, path, []any{value})
		return nil
	}
	seq, ok := cur.([]any)
	if !ok {
		return fmt.Errorf("%w: can only push to a sequence, %q holds %s", domain.ErrTypeMismatch, path, kindOf(cur))
	}
	Set(doc, path, append(seq, value))
	return nil
}

// Increment adds amount to the number at path.
func Increment(doc domain.Document, path string, amount any) error {
	return add(doc, path, amount, 1)
}

// Decrement subtracts amount from the number at path.
func Decrement(doc domain.Document, path string, amount any) error {
	return add(doc, path, amount, -1)
}

func add(doc domain.Document, path string, amount any, sign float64) error {
	cur, ok := Lookup(doc, path)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrPathNotFound, path)
	}
	n, ok := cur.(float64)
	if !ok {
		return fmt.Errorf("%w: %q holds %s, not a number", domain.ErrTypeMismatch, path, kindOf(cur))
	}
	delta, ok := domain.AsNumber(amount)
	if !ok {
		return fmt.Errorf("%w: amount %v is not a number", domain.ErrTypeMismatch, amount)
	}
	if !finite(delta) {
		return fmt.Errorf("%w: amount %v is not a finite number", domain.ErrTypeMismatch, delta)
	}
	next := n + sign*delta
	if !finite(next) {
		return fmt.Errorf("%w: %q would overflow to %v", domain.ErrTypeMismatch, path, next)
	}
	Set(doc, path, next)
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Updater transforms the current value at a path into its replacement. It
// receives a copy and must not retain it.
type Updater func(current any) any

// Update replaces the value at path with fn applied to it. The result is
// normalised before it is stored.
func Update(doc domain.Document, path string, fn Updater) error {
	cur, ok := Lookup(doc, path)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrPathNotFound, path)
	}
	next, err := domain.Normalize(fn(domain.Clone(cur)))
	if err != nil {
		return err
	}
	Set(doc, path, next)
	return nil
}

// Keys returns the sorted keys of the mapping at path; an empty path names the
// Document itself. It returns nil when the path is absent or does not hold a
// mapping.
func Keys(doc domain.Document, path string) []string {
	var m map[string]any
	if path == "" {
		m = doc
	} else {
		v, ok := Lookup(doc, path)
		if !ok {
			return nil
		}
		if m, ok = v.(map[string]any); !ok {
			return nil
		}
	}
	return slices.Sorted(maps.Keys(m))
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case float64:
		return "a number"
	case string:
		return "a string"
	case []any:
		return "a sequence"
	case map[string]any:
		return "a mapping"
	}
	return fmt.Sprintf("%T", v)
}
