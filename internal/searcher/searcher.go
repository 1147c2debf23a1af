package searcher

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dshills/cloudscape-mcp/internal/metrics"
	"github.com/dshills/cloudscape-mcp/pkg/types"
)

// Sort orders.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// DefaultLimit is the page size used when a request does not set one.
const DefaultLimit = 10

// ComponentSource supplies the component collection. Implementations return
// the same immutable records on every call, ordered by ID.
type ComponentSource interface {
	AllComponents() []*types.Component
}

// SearchOptions describes a component search. The zero value lists every
// component, ten per page, in source order.
//
// Limit and FuzzyThreshold are optional: nil selects DefaultLimit and
// DefaultFuzzyThreshold, while an explicit zero is used as given.
type SearchOptions struct {
	Query          string         `json:"query"`
	Category       string         `json:"category,omitempty"`
	Tags           []string       `json:"tags,omitempty"`
	Filters        map[string]any `json:"filters,omitempty"`
	Limit          *int           `json:"limit,omitempty"`
	Offset         int            `json:"offset"`
	FuzzyMatch     bool           `json:"fuzzyMatch"`
	FuzzyThreshold *float64       `json:"fuzzyThreshold,omitempty"`
	SortBy         string         `json:"sortBy"`
	SortOrder      string         `json:"sortOrder"`
	Fields         []Field        `json:"fields,omitempty"`
}

// Result is one ranked component.
type Result struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	Relevance      int      `json:"relevance"`
	MatchedFields  []string `json:"matchedFields"`
	Tags           []string `json:"tags"`
	ImportPath     string   `json:"importPath"`
	Version        string   `json:"version"`
	IsExperimental bool     `json:"isExperimental"`
}

// SearchResults is a page of results plus the request echo.
type SearchResults struct {
	Results      []Result `json:"results"`
	TotalResults int      `json:"totalResults"`
	Query        string   `json:"query"`
	Category     string   `json:"category,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Limit        int      `json:"limit"`
	Offset       int      `json:"offset"`
}

// FunctionalityResults is returned by SearchByFunctionality.
type FunctionalityResults struct {
	Results       []Result `json:"results"`
	TotalResults  int      `json:"totalResults"`
	Functionality string   `json:"functionality"`
}

// Searcher ranks components from a ComponentSource. It holds no per-query
// state and is safe for concurrent use.
type Searcher struct {
	source ComponentSource
	lang   language.Tag
	logger *zap.Logger
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithLogger sets the logger used for search diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Searcher) {
		s.logger = logger
	}
}

// WithLanguage sets the collation language for field sorts.
func WithLanguage(tag language.Tag) Option {
	return func(s *Searcher) {
		s.lang = tag
	}
}

// New creates a Searcher over source.
func New(source ComponentSource, opts ...Option) *Searcher {
	s := &Searcher{
		source: source,
		lang:   language.English,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// scored pairs a component with its per-query match data. Components are
// shared records and are never written to.
type scored struct {
	component *types.Component
	matched   []Field
	relevance int
}

// Search filters, matches, sorts and paginates the component collection.
// It never fails: no matches yields an empty page with TotalResults 0.
func (s *Searcher) Search(opts SearchOptions) *SearchResults {
	start := time.Now()
	normalizeOptions(&opts)
	limit := valueOr(opts.Limit, DefaultLimit)

	query := strings.ToLower(opts.Query)
	mopts := matchOptions{
		fields:         opts.Fields,
		fuzzy:          opts.FuzzyMatch,
		fuzzyThreshold: valueOr(opts.FuzzyThreshold, DefaultFuzzyThreshold),
	}

	var survivors []scored
	for _, c := range s.source.AllComponents() {
		if !passesFilters(c, opts) {
			continue
		}

		matched := matchFields(c, query, mopts)
		if query != "" && len(matched) == 0 {
			continue
		}
		survivors = append(survivors, scored{
			component: c,
			matched:   matched,
			relevance: score(c, query, matched),
		})
	}

	s.sortResults(survivors, opts.SortBy, opts.SortOrder)

	total := len(survivors)
	page := paginate(survivors, opts.Offset, limit)

	results := make([]Result, 0, len(page))
	for _, sc := range page {
		results = append(results, toResult(sc))
	}

	mode := "exact"
	switch {
	case query == "":
		mode = "all"
	case opts.FuzzyMatch:
		mode = "fuzzy"
	}
	metrics.SearchResultsTotal.WithLabelValues(mode).Inc()
	metrics.SearchDuration.Observe(time.Since(start).Seconds())

	s.logger.Debug("component search",
		zap.String("query", opts.Query),
		zap.Int("total", total),
		zap.Int("returned", len(results)),
		zap.Duration("duration", time.Since(start)))

	return &SearchResults{
		Results:      results,
		TotalResults: total,
		Query:        opts.Query,
		Category:     opts.Category,
		Tags:         opts.Tags,
		Limit:        limit,
		Offset:       opts.Offset,
	}
}

// SearchByFunctionality searches with functionality as the query.
func (s *Searcher) SearchByFunctionality(functionality string, opts SearchOptions) *FunctionalityResults {
	opts.Query = functionality
	res := s.Search(opts)
	return &FunctionalityResults{
		Results:       res.Results,
		TotalResults:  res.TotalResults,
		Functionality: functionality,
	}
}

// normalizeOptions fills the sort and field defaults. Limit and threshold
// are resolved by the caller so an explicit zero survives; out-of-range
// values are resolved during pagination.
func normalizeOptions(opts *SearchOptions) {
	if opts.SortBy == "" {
		opts.SortBy = string(FieldRelevance)
	}
	if opts.SortOrder != SortAsc {
		opts.SortOrder = SortDesc
	}
	if len(opts.Fields) == 0 {
		opts.Fields = DefaultSearchFields
	}
}

// valueOr dereferences p, or returns def when p is nil.
func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

func passesFilters(c *types.Component, opts SearchOptions) bool {
	if opts.Category != "" && c.Category != opts.Category {
		return false
	}

	if len(opts.Tags) > 0 {
		shared := false
		for _, tag := range opts.Tags {
			if c.HasTag(tag) {
				shared = true
				break
			}
		}
		if !shared {
			return false
		}
	}

	for name, want := range opts.Filters {
		equal, supported := fieldEquals(c, Field(name), want)
		if supported && !equal {
			return false
		}
	}

	return true
}

func (s *Searcher) sortResults(items []scored, sortBy, order string) {
	desc := order == SortDesc

	if Field(sortBy) == FieldRelevance {
		sort.SliceStable(items, func(i, j int) bool {
			if desc {
				return items[i].relevance > items[j].relevance
			}
			return items[i].relevance < items[j].relevance
		})
		return
	}

	field := Field(sortBy)
	if _, ok := scalarText(&types.Component{}, field); !ok {
		// No string value to compare; keep source order.
		return
	}

	col := collate.New(s.lang)
	sort.SliceStable(items, func(i, j int) bool {
		a, _ := scalarText(items[i].component, field)
		b, _ := scalarText(items[j].component, field)
		cmp := col.CompareString(a, b)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// paginate returns items[offset:offset+limit], clamped to the slice.
func paginate(items []scored, offset, limit int) []scored {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || offset >= len(items) {
		return nil
	}
	end := len(items)
	if limit < end-offset {
		end = offset + limit
	}
	return items[offset:end]
}

func toResult(sc scored) Result {
	c := sc.component

	matched := make([]string, len(sc.matched))
	for i, f := range sc.matched {
		matched[i] = string(f)
	}
	tags := make([]string, len(c.Tags))
	copy(tags, c.Tags)

	return Result{
		ID:             c.ID,
		Name:           c.Name,
		Category:       c.Category,
		Description:    c.Description,
		Relevance:      sc.relevance,
		MatchedFields:  matched,
		Tags:           tags,
		ImportPath:     c.ImportPath,
		Version:        c.Version,
		IsExperimental: c.IsExperimental,
	}
}
