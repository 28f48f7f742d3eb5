package query

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"

	"docvault/internal/docpath"
	"docvault/internal/domain"
)

// Criterion is either a literal value or a regular expression.
type Criterion struct {
	literal any
	pattern *regexp.Regexp
}

// Literal returns a Criterion matching values structurally equal to v.
func Literal(v any) (Criterion, error) {
	n, err := domain.Normalize(v)
	if err != nil {
		return Criterion{}, err
	}
	return Criterion{literal: n}, nil
}

// Pattern returns a Criterion matching string values accepted by re.
func Pattern(re *regexp.Regexp) Criterion {
	return Criterion{pattern: re}
}

// IsPattern reports whether c matches by regular expression.
func (c Criterion) IsPattern() bool { return c.pattern != nil }

func (c Criterion) match(v any, present bool) bool {
	if !present {
		return false
	}
	if c.pattern != nil {
		s, ok := v.(string)
		return ok && c.pattern.MatchString(s)
	}
	return domain.Equal(c.literal, v)
}

type term struct {
	field string
	crit  Criterion
}

// Query is a compiled set of field criteria. The zero Query matches every
// record.
type Query struct {
	terms []term
}

// Compile builds a Query from a flat mapping of field names to criteria.
// Values of type *regexp.Regexp become patterns, Criterion values are used as
// given, and anything else is a literal.
func Compile(q any) (Query, error) {
	var fields map[string]any
	switch t := q.(type) {
	case map[string]any:
		fields = t
	case map[string]Criterion:
		fields = make(map[string]any, len(t))
		for k, c := range t {
			fields[k] = c
		}
	default:
		return Query{}, fmt.Errorf("%w: expected a mapping, got %T", domain.ErrInvalidQuery, q)
	}

	out := Query{terms: make([]term, 0, len(fields))}
	for field, v := range fields {
		var c Criterion
		switch t := v.(type) {
		case Criterion:
			c = t
		case *regexp.Regexp:
			if t == nil {
				return Query{}, fmt.Errorf("%w: nil pattern for field %q", domain.ErrInvalidQuery, field)
			}
			c = Pattern(t)
		default:
			var err error
			if c, err = Literal(v); err != nil {
				return Query{}, fmt.Errorf("%w: field %q: %w", domain.ErrInvalidQuery, field, err)
			}
		}
		out.terms = append(out.terms, term{field: field, crit: c})
	}
	slices.SortFunc(out.terms, func(a, b term) int { return cmp.Compare(a.field, b.field) })
	return out, nil
}

// Match reports whether record satisfies every criterion of q. Field names
// resolve as paths within record.
func (q Query) Match(record any) bool {
	m, _ := record.(map[string]any)
	for _, t := range q.terms {
		v, ok := docpath.Lookup(m, t.field)
		if !t.crit.match(v, ok) {
			return false
		}
	}
	return true
}

// Find returns copies of the elements of seq matching q, in order. A seq that
// is not a sequence yields an empty result.
func Find(seq any, q Query) []any {
	out := []any{}
	items, ok := seq.([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		if q.Match(item) {
			out = append(out, domain.Clone(item))
		}
	}
	return out
}

// FindOne returns a copy of the first element of seq matching q.
func FindOne(seq any, q Query) (any, bool) {
	items, ok := seq.([]any)
	if !ok {
		return nil, false
	}
	for _, item := range items {
		if q.Match(item) {
			return domain.Clone(item), true
		}
	}
	return nil, false
}
