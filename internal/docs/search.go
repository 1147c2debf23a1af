package docs

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/cloudscape-mcp/pkg/types"
)

// Scope restricts SearchDocumentation to one kind of document.
type Scope string

const (
	ScopeAll        Scope = "all"
	ScopeComponents Scope = "components"
	ScopeCategories Scope = "categories"
	ScopePatterns   Scope = "patterns"
)

// DefaultSearchLimit is used when a search has no positive limit.
const DefaultSearchLimit = 10

// ErrInvalidScope is returned for a scope other than the Scope constants.
var ErrInvalidScope = errors.New("invalid documentation scope")

// nameBoost is added when a record's name starts with the query.
const nameBoost = 5

// SearchResult is one matching document.
type SearchResult struct {
	Type        string `json:"type"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Relevance   int    `json:"relevance"`
}

// SearchResponse is a page of documentation matches.
type SearchResponse struct {
	Results      []SearchResult `json:"results"`
	TotalResults int            `json:"totalResults"`
	Query        string         `json:"query"`
	Scope        Scope          `json:"scope"`
}

// SearchDocumentation finds documents containing query, case-insensitively.
// Relevance is the number of occurrences in the document plus a boost when
// the name starts with the query. Results are ordered by relevance, ties
// keeping component, category, pattern order.
func (p *Provider) SearchDocumentation(query string, scope Scope, limit int) (*SearchResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, types.ErrEmptyQuery
	}
	if scope == "" {
		scope = ScopeAll
	}
	switch scope {
	case ScopeAll, ScopeComponents, ScopeCategories, ScopePatterns:
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidScope, scope)
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	q := strings.ToLower(query)
	results := []SearchResult{}
	add := func(kind, id, name, description, text string) {
		count := strings.Count(strings.ToLower(text), q)
		if count == 0 {
			return
		}
		if strings.HasPrefix(strings.ToLower(name), q) {
			count += nameBoost
		}
		results = append(results, SearchResult{Type: kind, ID: id, Name: name, Description: description, Relevance: count})
	}

	if scope == ScopeAll || scope == ScopeComponents {
		for _, c := range p.lookup.AllComponents() {
			desc := c.Description
			if desc == "" {
				desc = c.Name + " component"
			}
			add("component", c.ID, c.Name, desc, joinSections(p.componentSections(c), ComponentSections, " "))
		}
	}
	if scope == ScopeAll || scope == ScopeCategories {
		for _, cat := range p.lookup.AllCategories() {
			members := p.summaries(cat.Components)
			add("category", cat.ID, cat.Name, cat.Description, joinSections(p.categorySections(cat, members), CategorySections, " "))
		}
	}
	if scope == ScopeAll || scope == ScopePatterns {
		for _, pat := range p.lookup.AllPatterns() {
			members := p.summaries(pat.Components)
			add("pattern", pat.ID, pat.Name, pat.Description, joinSections(p.patternSections(pat, members), PatternSections, " "))
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})

	total := len(results)
	if len(results) > limit {
		results = results[:limit]
	}
	return &SearchResponse{Results: results, TotalResults: total, Query: query, Scope: scope}, nil
}
