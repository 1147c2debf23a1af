package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/cloudscape-mcp/pkg/types"
)

func newCompareRegistry() *Registry {
	return New([]*types.Component{
		{
			ID: "input", Name: "Input", Category: "input", Version: "3.0.0",
			Properties: map[string]types.Property{
				"value":    {Name: "value", Required: true},
				"disabled": {Name: "disabled"},
				"type":     {Name: "type"},
			},
		},
		{
			ID: "textarea", Name: "Textarea", Category: "input",
			Properties: map[string]types.Property{
				"value":    {Name: "value", Required: true},
				"disabled": {Name: "disabled"},
				"rows":     {Name: "rows"},
			},
		},
		{ID: "select", Name: "Select", Category: "input", IsExperimental: true},
		{ID: "table", Name: "Table", Category: "display"},
	}, nil, nil, nil)
}

func TestCompare(t *testing.T) {
	r := newCompareRegistry()

	cmp, err := r.Compare([]string{"input", "textarea", "missing"})
	require.NoError(t, err)

	require.Len(t, cmp.Components, 2)
	assert.Equal(t, "3.0.0", cmp.Components[0].Version)
	assert.Equal(t, "0.0.0", cmp.Components[1].Version)
	assert.Equal(t, 3, cmp.Components[0].PropertyCount)
	assert.Equal(t, 1, cmp.Components[0].RequiredPropertyCount)
	assert.Equal(t, []string{"disabled", "value"}, cmp.CommonProperties)
	assert.Equal(t, map[string][]string{"input": {"type"}, "textarea": {"rows"}}, cmp.UniqueProperties)
	assert.Equal(t, []string{"missing"}, cmp.Unknown)

	_, err = r.Compare([]string{"missing"})
	assert.ErrorIs(t, err, ErrNothingToCompare)
}

func TestAlternatives(t *testing.T) {
	r := newCompareRegistry()

	alts, err := r.Alternatives("input", 0)
	require.NoError(t, err)
	require.Len(t, alts, 2)

	assert.Equal(t, "select", alts[0].ID)
	assert.Equal(t, []string{"Both are input components"}, alts[0].Similarities)
	assert.Equal(t, []string{
		"Input has 3 properties, while Select has 0",
		"Input is stable, while Select is experimental",
	}, alts[0].Differences)

	assert.Equal(t, "textarea", alts[1].ID)
	assert.Equal(t, []string{"Both are input components", "Share 2 common properties"}, alts[1].Similarities)
	assert.Equal(t, []string{"No significant differences found"}, alts[1].Differences)

	limited, err := r.Alternatives("input", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := r.Alternatives("table", 3)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = r.Alternatives("missing", 3)
	assert.ErrorIs(t, err, types.ErrComponentNotFound)
}
