package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchProperties(t *testing.T) {
	r := newTestRegistry()

	tests := []struct {
		name  string
		query PropertyQuery
		want  []string
	}{
		{name: "no filters", query: PropertyQuery{}, want: []string{"button.disabled", "button.iconUrl", "button.variant", "table.items", "table.loading"}},
		{name: "query matches description", query: PropertyQuery{Query: "LOADING"}, want: []string{"table.loading"}},
		{name: "type", query: PropertyQuery{Type: "boolean"}, want: []string{"button.disabled", "table.loading"}},
		{name: "required", query: PropertyQuery{Required: boolPtr(true)}, want: []string{"table.items"}},
		{name: "deprecated", query: PropertyQuery{Deprecated: boolPtr(true)}, want: []string{"button.iconUrl"}},
		{name: "component scope", query: PropertyQuery{ComponentID: "table", Type: "array"}, want: []string{"table.items"}},
		{name: "unknown component", query: PropertyQuery{ComponentID: "modal"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, m := range r.SearchProperties(tt.query) {
				got = append(got, m.ComponentID+"."+m.Property.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchEvents(t *testing.T) {
	r := newTestRegistry()

	all := r.SearchEvents(EventQuery{})
	assert.Len(t, all, 3)

	cancelable := r.SearchEvents(EventQuery{Cancelable: boolPtr(true)})
	require.Len(t, cancelable, 2)
	assert.Equal(t, "Button", cancelable[0].ComponentName)

	followed := r.SearchEvents(EventQuery{Query: "followed"})
	require.Len(t, followed, 1)
	assert.Equal(t, "onFollow", followed[0].Event.Name)
}

func TestSearchFunctions(t *testing.T) {
	r := newTestRegistry()

	got := r.SearchFunctions(FunctionQuery{Query: "focus", ReturnType: "void"})
	require.Len(t, got, 1)
	assert.Equal(t, "button", got[0].ComponentID)

	assert.Empty(t, r.SearchFunctions(FunctionQuery{ReturnType: "string"}))
}

func TestSearchPatterns(t *testing.T) {
	r := newTestRegistry()

	tests := []struct {
		name  string
		query PatternQuery
		want  []string
	}{
		{name: "all", query: PatternQuery{}, want: []string{"data-table", "form-layout"}},
		{name: "text", query: PatternQuery{Query: "container"}, want: []string{"form-layout"}},
		{name: "component", query: PatternQuery{Component: "table"}, want: []string{"data-table"}},
		{name: "tags match component substrings", query: PatternQuery{Tags: []string{"PAGIN"}}, want: []string{"data-table"}},
		{name: "no match", query: PatternQuery{Component: "modal"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, p := range r.SearchPatterns(tt.query) {
				got = append(got, p.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchUsageGuidelines(t *testing.T) {
	r := newTestRegistry()

	t.Run("no filters returns every component with guidelines", func(t *testing.T) {
		got := r.SearchUsageGuidelines(UsageQuery{})
		require.Len(t, got, 2)
		assert.Nil(t, got[0].MatchedSections)
	})

	t.Run("query reports matching sections", func(t *testing.T) {
		got := r.SearchUsageGuidelines(UsageQuery{Query: "data"})
		require.Len(t, got, 2)
		assert.Equal(t, "button", got[0].ComponentID)
		assert.Nil(t, got[0].MatchedSections, "lines before the first header have no section")
		assert.Equal(t, []string{"When to use", "Sorting"}, got[1].MatchedSections)
	})

	t.Run("section only", func(t *testing.T) {
		got := r.SearchUsageGuidelines(UsageQuery{Section: "accessibility"})
		require.Len(t, got, 1)
		assert.Equal(t, "button", got[0].ComponentID)
		assert.Equal(t, []string{"accessibility"}, got[0].MatchedSections)
	})

	t.Run("query and section must both match", func(t *testing.T) {
		assert.Empty(t, r.SearchUsageGuidelines(UsageQuery{Query: "sorting", Section: "Accessibility"}))

		got := r.SearchUsageGuidelines(UsageQuery{Query: "icon", Section: "Accessibility"})
		require.Len(t, got, 1)
		assert.Equal(t, []string{"Accessibility"}, got[0].MatchedSections)
	})

	t.Run("third level headers are not sections", func(t *testing.T) {
		assert.Empty(t, r.SearchUsageGuidelines(UsageQuery{Section: "Sorting"}))
	})

	t.Run("section text is literal", func(t *testing.T) {
		assert.Empty(t, r.SearchUsageGuidelines(UsageQuery{Section: "When.*"}))
	})

	t.Run("component scope", func(t *testing.T) {
		got := r.SearchUsageGuidelines(UsageQuery{ComponentID: "table"})
		require.Len(t, got, 1)
		assert.Equal(t, "Table", got[0].ComponentName)
	})
}
