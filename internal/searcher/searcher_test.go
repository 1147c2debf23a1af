package searcher

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/cloudscape-mcp/pkg/types"
)

// staticSource serves a fixed component list.
type staticSource struct {
	components []*types.Component
}

func (s *staticSource) AllComponents() []*types.Component {
	return s.components
}

func setupTestSearcher(t *testing.T, components ...*types.Component) *Searcher {
	t.Helper()
	return New(&staticSource{components: components})
}

func buttonAndTable() []*types.Component {
	return []*types.Component{
		{ID: "button", Name: "Button", Category: "input", Tags: []string{"input", "action"}},
		{ID: "table", Name: "Table", Category: "data", Tags: []string{"data", "display"}},
	}
}

func ptr[T any](v T) *T {
	return &v
}

func resultIDs(res *SearchResults) []string {
	ids := make([]string, len(res.Results))
	for i, r := range res.Results {
		ids[i] = r.ID
	}
	return ids
}

func TestSearchSubstring(t *testing.T) {
	s := setupTestSearcher(t, buttonAndTable()...)

	res := s.Search(SearchOptions{Query: "but"})

	require.Equal(t, []string{"button"}, resultIDs(res))
	assert.Equal(t, 1, res.TotalResults)
	assert.Contains(t, res.Results[0].MatchedFields, "id")
}

func TestSearchFuzzy(t *testing.T) {
	s := setupTestSearcher(t, buttonAndTable()...)

	res := s.Search(SearchOptions{Query: "buton", FuzzyMatch: true, FuzzyThreshold: ptr(0.7)})
	require.Equal(t, []string{"button"}, resultIDs(res))
	assert.Subset(t, []string{"id", "name"}, res.Results[0].MatchedFields)

	res = s.Search(SearchOptions{Query: "buton"})
	assert.Empty(t, res.Results, "fuzzy pass must be opt-in")
	assert.Equal(t, 0, res.TotalResults)
}

func TestSearchFuzzyThresholdUsedAsGiven(t *testing.T) {
	s := setupTestSearcher(t, buttonAndTable()...)

	res := s.Search(SearchOptions{Query: "zzzzzz", FuzzyMatch: true, FuzzyThreshold: ptr(0.0)})
	assert.ElementsMatch(t, []string{"button", "table"}, resultIDs(res))
	assert.Equal(t, 2, res.TotalResults)

	res = s.Search(SearchOptions{Query: "zzzzzz", FuzzyMatch: true})
	assert.Empty(t, res.Results, "nil threshold falls back to the default")
}

func TestSearchFuzzySkippedAfterExactMatch(t *testing.T) {
	s := setupTestSearcher(t,
		&types.Component{ID: "tabs", Name: "Tabs", Description: "tab navigation"},
	)

	res := s.Search(SearchOptions{Query: "tab", FuzzyMatch: true})

	require.Len(t, res.Results, 1)
	assert.Equal(t, []string{"id", "name", "description"}, res.Results[0].MatchedFields)
}

func TestRelevanceWeights(t *testing.T) {
	tests := []struct {
		name      string
		component *types.Component
		query     string
		want      int
		fields    []string
	}{
		{
			name:      "name only",
			component: &types.Component{ID: "x1", Name: "Primary Widget"},
			query:     "widget",
			want:      4,
			fields:    []string{"name"},
		},
		{
			name:      "exact id doubles",
			component: &types.Component{ID: "alert", Name: "Notice"},
			query:     "alert",
			want:      10,
			fields:    []string{"id"},
		},
		{
			name:      "id and name exact doubles once",
			component: &types.Component{ID: "button", Name: "Button"},
			query:     "button",
			want:      18,
			fields:    []string{"id", "name"},
		},
		{
			name:      "description and tag",
			component: &types.Component{ID: "c1", Name: "C", Description: "shows a modal", Tags: []string{"modal"}},
			query:     "modal",
			want:      10,
			fields:    []string{"description", "tags"},
		},
		{
			name:      "tag element exact",
			component: &types.Component{ID: "c2", Name: "C", Tags: []string{"form", "input"}},
			query:     "INPUT",
			want:      4,
			fields:    []string{"tags"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestSearcher(t, tt.component)
			res := s.Search(SearchOptions{Query: tt.query})

			require.Len(t, res.Results, 1)
			assert.Equal(t, tt.want, res.Results[0].Relevance)
			assert.Equal(t, tt.fields, res.Results[0].MatchedFields)
		})
	}
}

func TestEmptyQueryIncludesAll(t *testing.T) {
	s := setupTestSearcher(t, buttonAndTable()...)

	res := s.Search(SearchOptions{})

	assert.Equal(t, 2, res.TotalResults)
	for _, r := range res.Results {
		assert.Equal(t, 1, r.Relevance)
		assert.Empty(t, r.MatchedFields)
	}
	assert.Equal(t, DefaultLimit, res.Limit)
}

func TestFilters(t *testing.T) {
	components := []*types.Component{
		{ID: "button", Name: "Button", Category: "input", Tags: []string{"input", "action"}, Version: "3.0"},
		{ID: "table", Name: "Table", Category: "data", Tags: []string{"data", "display"}, Version: "3.0"},
		{ID: "chart", Name: "Chart", Category: "data", Tags: []string{"visualization"}, Version: "2.1", IsExperimental: true},
	}

	tests := []struct {
		name string
		opts SearchOptions
		want []string
	}{
		{"category", SearchOptions{Category: "data"}, []string{"table", "chart"}},
		{"tags any overlap", SearchOptions{Tags: []string{"action", "visualization"}}, []string{"button", "chart"}},
		{"string filter", SearchOptions{Filters: map[string]any{"version": "2.1"}}, []string{"chart"}},
		{"bool filter", SearchOptions{Filters: map[string]any{"isExperimental": false}}, []string{"button", "table"}},
		{"unknown filter ignored", SearchOptions{Filters: map[string]any{"color": "red"}}, []string{"button", "table", "chart"}},
		{"filter type mismatch", SearchOptions{Filters: map[string]any{"version": 3}}, []string{}},
		{"combined", SearchOptions{Category: "data", Tags: []string{"display"}, Query: "tab"}, []string{"table"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestSearcher(t, components...)
			res := s.Search(tt.opts)
			assert.Equal(t, tt.want, resultIDs(res))
			assert.Equal(t, len(tt.want), res.TotalResults)
		})
	}
}

func TestSortByRelevance(t *testing.T) {
	s := setupTestSearcher(t,
		&types.Component{ID: "a", Name: "Form field", Description: "wraps a form control"},
		&types.Component{ID: "form", Name: "Form"},
		&types.Component{ID: "b", Name: "B", Tags: []string{"form"}},
	)

	desc := s.Search(SearchOptions{Query: "form"})
	for i := 0; i+1 < len(desc.Results); i++ {
		assert.GreaterOrEqual(t, desc.Results[i].Relevance, desc.Results[i+1].Relevance)
	}
	assert.Equal(t, "form", desc.Results[0].ID)

	asc := s.Search(SearchOptions{Query: "form", SortOrder: SortAsc})
	for i := 0; i+1 < len(asc.Results); i++ {
		assert.LessOrEqual(t, asc.Results[i].Relevance, asc.Results[i+1].Relevance)
	}
}

func TestSortByField(t *testing.T) {
	s := setupTestSearcher(t,
		&types.Component{ID: "c", Name: "charlie"},
		&types.Component{ID: "a", Name: "Alpha"},
		&types.Component{ID: "b", Name: "bravo"},
	)

	asc := s.Search(SearchOptions{SortBy: "name", SortOrder: SortAsc})
	assert.Equal(t, []string{"a", "b", "c"}, resultIDs(asc))

	desc := s.Search(SearchOptions{SortBy: "name", SortOrder: SortDesc})
	assert.Equal(t, []string{"c", "b", "a"}, resultIDs(desc))

	// Non-string fields leave source order untouched.
	tags := s.Search(SearchOptions{SortBy: "tags"})
	assert.Equal(t, []string{"c", "a", "b"}, resultIDs(tags))

	unknown := s.Search(SearchOptions{SortBy: "popularity"})
	assert.Equal(t, []string{"c", "a", "b"}, resultIDs(unknown))
}

func TestPagination(t *testing.T) {
	var components []*types.Component
	for i := 0; i < 12; i++ {
		components = append(components, &types.Component{
			ID:   fmt.Sprintf("component-%02d", i),
			Name: fmt.Sprintf("Component %d", i),
		})
	}
	s := setupTestSearcher(t, components...)

	first := s.Search(SearchOptions{Limit: ptr(5)})
	second := s.Search(SearchOptions{Limit: ptr(5), Offset: 5})

	assert.Len(t, first.Results, 5)
	assert.Equal(t, 12, first.TotalResults)
	assert.Len(t, second.Results, 5)
	assert.NotContains(t, resultIDs(second), first.Results[0].ID)
	for _, id := range resultIDs(first) {
		assert.NotContains(t, resultIDs(second), id)
	}

	tests := []struct {
		name   string
		limit  int
		offset int
		want   int
	}{
		{"zero limit", 0, 0, 0},
		{"tail page", 5, 10, 2},
		{"offset past end", 5, 20, 0},
		{"negative limit", -1, 0, 0},
		{"negative offset", 3, -4, 3},
		{"huge limit", int(^uint(0) >> 1), 1, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Search(SearchOptions{Limit: ptr(tt.limit), Offset: tt.offset})
			assert.Len(t, res.Results, tt.want)
			assert.Equal(t, 12, res.TotalResults)
			assert.Equal(t, tt.limit, res.Limit)
		})
	}
}

func TestSearchIsIdempotent(t *testing.T) {
	s := setupTestSearcher(t, buttonAndTable()...)
	opts := SearchOptions{Query: "a", FuzzyMatch: true}

	first := s.Search(opts)
	second := s.Search(opts)

	assert.Equal(t, first, second)
}

func TestSearchDoesNotLeakMatchData(t *testing.T) {
	components := buttonAndTable()
	s := setupTestSearcher(t, components...)

	first := s.Search(SearchOptions{Query: "button"})
	require.Len(t, first.Results, 1)

	second := s.Search(SearchOptions{})
	for _, r := range second.Results {
		assert.Equal(t, 1, r.Relevance)
		assert.Empty(t, r.MatchedFields)
	}

	first.Results[0].Tags[0] = "mutated"
	assert.Equal(t, "input", components[0].Tags[0])
}

func TestSearchByFunctionality(t *testing.T) {
	s := setupTestSearcher(t,
		&types.Component{ID: "date-picker", Name: "Date picker", Description: "Lets users select a date"},
		&types.Component{ID: "table", Name: "Table", Description: "Displays tabular data"},
	)

	res := s.SearchByFunctionality("select a date", SearchOptions{})

	assert.Equal(t, "select a date", res.Functionality)
	assert.Equal(t, 1, res.TotalResults)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "date-picker", res.Results[0].ID)
}
