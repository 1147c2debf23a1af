// Package searcher implements relevance-ranked component search.
//
// A search runs in four stages over the full component collection:
//
//   - Filter: category (exact), tags (any overlap) and field filters
//     (all must be equal) drop components before matching.
//   - Match: each searchable field is checked for a case-insensitive
//     substring match. When nothing matches and fuzzy matching is enabled,
//     fields whose normalized edit-distance similarity to the query meets
//     the threshold match instead.
//   - Score: matched fields contribute their weight (id 5, name 4,
//     description 3, tags 2, anything else 1). A field whose value equals
//     the query doubles the score once.
//   - Sort and page: survivors are ordered by relevance or by a string
//     field using collation, then sliced by offset and limit.
//
// # Basic Usage
//
//	s := searcher.New(registry)
//
//	limit := 5
//	res := s.Search(searcher.SearchOptions{
//	    Query:      "buton",
//	    FuzzyMatch: true,
//	    Limit:      &limit,
//	})
//
//	for _, r := range res.Results {
//	    fmt.Printf("%s (%d) %v\n", r.ID, r.Relevance, r.MatchedFields)
//	}
//
// An empty query matches every component that passes the filters, each with
// relevance 1 and no matched fields.
//
// Match data is returned alongside each result; the source components are
// never modified, so one collection can serve any number of concurrent
// searches.
package searcher
