package searcher

import (
	"strings"

	"github.com/dshills/cloudscape-mcp/pkg/types"
)

// DefaultFuzzyThreshold is the minimum similarity for an approximate match.
const DefaultFuzzyThreshold = 0.7

// matchOptions controls a single entity match.
type matchOptions struct {
	fields         []Field
	fuzzy          bool
	fuzzyThreshold float64
}

// matchFields returns the fields of c that match query, which must already be
// lower-cased. Approximate matching only runs when no field matched exactly.
func matchFields(c *types.Component, query string, opts matchOptions) []Field {
	if query == "" {
		return nil
	}

	var matched []Field
	for _, f := range opts.fields {
		values, ok := textValues(c, f)
		if !ok {
			continue
		}
		for _, v := range values {
			if strings.Contains(strings.ToLower(v), query) {
				matched = append(matched, f)
				break
			}
		}
	}

	if len(matched) > 0 || !opts.fuzzy {
		return matched
	}

	for _, f := range opts.fields {
		values, ok := textValues(c, f)
		if !ok {
			continue
		}
		best := 0.0
		for _, v := range values {
			if sim := Similarity(strings.ToLower(v), query); sim > best {
				best = sim
			}
		}
		if len(values) > 0 && best >= opts.fuzzyThreshold {
			matched = append(matched, f)
		}
	}

	return matched
}

// score converts matched fields into a relevance value. A field whose value
// equals the query exactly doubles the total, once.
func score(c *types.Component, query string, matched []Field) int {
	if query == "" {
		return 1
	}

	total := 0
	for _, f := range matched {
		total += f.Weight()
	}

	for _, f := range matched {
		if exactValue(c, f, query) {
			total *= 2
			break
		}
	}

	return total
}

func exactValue(c *types.Component, f Field, query string) bool {
	values, _ := textValues(c, f)
	for _, v := range values {
		if strings.ToLower(v) == query {
			return true
		}
	}
	return false
}
