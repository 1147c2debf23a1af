package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/cloudscape-mcp/internal/catalog"
	"github.com/dshills/cloudscape-mcp/internal/indexer"
	"github.com/dshills/cloudscape-mcp/internal/storage"
	"github.com/dshills/cloudscape-mcp/pkg/types"
)

func boolPtr(b bool) *bool { return &b }

func newTestRegistry() *Registry {
	components := []*types.Component{
		{
			ID:       "table",
			Name:     "Table",
			Category: "display",
			Properties: map[string]types.Property{
				"items":   {Name: "items", Type: "array", Description: "Rows to display", Required: true},
				"loading": {Name: "loading", Type: "boolean", Description: "Shows a loading state"},
			},
			Events: map[string]types.Event{
				"onSortingChange": {Name: "onSortingChange", Description: "Fires when sorting changes"},
			},
			UsageGuidelines: "## When to use\nUse a table for tabular data.\n### Sorting\nEnable sorting for large data sets.\n",
		},
		{
			ID:       "button",
			Name:     "Button",
			Category: "input",
			Properties: map[string]types.Property{
				"variant":  {Name: "variant", Type: "string", Description: "Visual style"},
				"disabled": {Name: "disabled", Type: "boolean", Description: "Prevents clicks", IsDeprecated: false},
				"iconUrl":  {Name: "iconUrl", Type: "string", Description: "Legacy icon", IsDeprecated: true},
			},
			Events: map[string]types.Event{
				"onClick":  {Name: "onClick", Description: "Fires on click", Cancelable: true},
				"onFollow": {Name: "onFollow", Description: "Fires when a link button is followed", Cancelable: true},
			},
			Functions: map[string]types.Function{
				"focus": {Name: "focus", Description: "Focuses the button", ReturnType: "void"},
			},
			UsageGuidelines: "Intro line about data.\n## When to use\nUse buttons for actions.\n## Accessibility\nLabel icon buttons.\n",
		},
		{ID: "badge", Name: "Badge", Category: "status"},
	}
	categories := []*types.Category{
		{ID: "input", Name: "Input", Description: "Form controls", Components: []string{"select"}},
	}
	patterns := []*types.Pattern{
		{ID: "form-layout", Name: "Form layout", Description: "A form in a container", Components: []string{"form", "button", "input"}},
		{ID: "data-table", Name: "Data table", Description: "Table with filtering", Components: []string{"table", "pagination"}},
	}
	examples := []*types.Example{
		{ID: "table-sorting", Component: "table", Type: "advanced"},
		{ID: "table-basic", Component: "table", Type: "basic"},
		{ID: "button-basic", Component: "button", Type: "basic"},
	}
	return New(components, categories, patterns, examples)
}

func TestRegistry_Lookups(t *testing.T) {
	r := newTestRegistry()

	ids := []string{}
	for _, c := range r.AllComponents() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"badge", "button", "table"}, ids, "components must be ordered by id")

	c, ok := r.Component("button")
	require.True(t, ok)
	assert.Equal(t, "Button", c.Name)

	_, ok = r.Component("missing")
	assert.False(t, ok)

	p, ok := r.Pattern("data-table")
	require.True(t, ok)
	assert.Equal(t, "Data table", p.Name)
	assert.Len(t, r.AllPatterns(), 2)

	e, ok := r.ExampleByID("table-basic")
	require.True(t, ok)
	assert.Equal(t, "table", e.Component)
	assert.Len(t, r.AllExamples(), 3)
}

func TestRegistry_Categories(t *testing.T) {
	r := newTestRegistry()

	input, ok := r.Category("input")
	require.True(t, ok)
	assert.Equal(t, "Form controls", input.Description, "explicit categories are kept")
	assert.Equal(t, []string{"select", "button"}, input.Components)

	display, ok := r.Category("display")
	require.True(t, ok)
	assert.Equal(t, "Display", display.Name)
	assert.Equal(t, "Display components", display.Description)
	assert.Equal(t, []string{"table"}, display.Components)

	assert.Len(t, r.AllCategories(), 3)
	assert.Equal(t, "display", r.AllCategories()[0].ID)
}

func TestRegistry_ComponentExamples(t *testing.T) {
	r := newTestRegistry()

	tests := []struct {
		name        string
		componentID string
		exampleType string
		limit       int
		want        []string
	}{
		{name: "all", componentID: "table", want: []string{"table-basic", "table-sorting"}},
		{name: "by type", componentID: "table", exampleType: "advanced", want: []string{"table-sorting"}},
		{name: "limit", componentID: "table", limit: 1, want: []string{"table-basic"}},
		{name: "unknown component", componentID: "modal", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, e := range r.ComponentExamples(tt.componentID, tt.exampleType, tt.limit) {
				got = append(got, e.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_ComponentUsage(t *testing.T) {
	r := newTestRegistry()

	assert.Contains(t, r.ComponentUsage("button"), "Use buttons for actions.")
	assert.Empty(t, r.ComponentUsage("badge"))
	assert.Empty(t, r.ComponentUsage("missing"))
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = indexer.New(store).IndexCatalog(ctx, catalog.Seed(), nil, nil)
	require.NoError(t, err)

	r, err := Load(ctx, store)
	require.NoError(t, err)

	button, ok := r.Component("button")
	require.True(t, ok)
	assert.Equal(t, "@cloudscape-design/components/button", button.ImportPath)
	assert.NotEmpty(t, r.AllCategories())
	assert.NotEmpty(t, r.AllPatterns())
	assert.NotEmpty(t, r.ComponentExamples("table", "", 0))
}
