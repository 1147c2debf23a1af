package catalog

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/cloudscape-mcp/pkg/types"
)

func loadSeed(t *testing.T) *Document {
	t.Helper()

	merged := &Document{}
	for _, name := range Files {
		data, err := fs.ReadFile(Seed(), name)
		require.NoError(t, err, name)

		doc, err := Decode(data)
		require.NoError(t, err, name)
		merged.Components = append(merged.Components, doc.Components...)
		merged.Categories = append(merged.Categories, doc.Categories...)
		merged.Patterns = append(merged.Patterns, doc.Patterns...)
		merged.Examples = append(merged.Examples, doc.Examples...)
	}
	return merged
}

func TestSeedIsValid(t *testing.T) {
	doc := loadSeed(t)

	require.NoError(t, doc.Validate())
	assert.NotEmpty(t, doc.Components)
	assert.NotEmpty(t, doc.Categories)
	assert.NotEmpty(t, doc.Patterns)
	assert.NotEmpty(t, doc.Examples)
}

func TestSeedExamplesReferenceComponents(t *testing.T) {
	doc := loadSeed(t)

	ids := make(map[string]bool, len(doc.Components))
	for _, c := range doc.Components {
		assert.False(t, ids[c.ID], "duplicate component %s", c.ID)
		ids[c.ID] = true
	}
	for _, e := range doc.Examples {
		assert.True(t, ids[e.Component], "example %s references unknown component %s", e.ID, e.Component)
	}
}

func TestSeedButton(t *testing.T) {
	doc := loadSeed(t)

	var button *types.Component
	for _, c := range doc.Components {
		if c.ID == "button" {
			button = c
		}
	}
	require.NotNil(t, button)
	assert.Equal(t, "Button", button.Name)
	assert.Equal(t, "@cloudscape-design/components/button", button.ImportPath)
	assert.Contains(t, button.Tags, "action")
	assert.Contains(t, button.Properties, "variant")
	assert.Contains(t, button.Events, "onClick")
	assert.Contains(t, button.UsageGuidelines, "## When to use")
}

func TestDecode(t *testing.T) {
	doc, err := Decode([]byte(`
components:
  - id: badge
    name: Badge
    tags: [status]
`))
	require.NoError(t, err)
	require.Len(t, doc.Components, 1)
	assert.Equal(t, []string{"status"}, doc.Components[0].Tags)
	assert.Equal(t, 1, doc.Len())

	empty, err := Decode(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	_, err = Decode([]byte("components:\n  - id: badge\n    colour: red\n"))
	assert.Error(t, err, "unknown keys must be rejected")
}

func TestValidateReportsAllErrors(t *testing.T) {
	doc := &Document{
		Components: []*types.Component{{ID: "Bad ID", Name: "x"}, {ID: "ok", Name: ""}},
		Examples:   []*types.Example{{ID: "e1", Component: "Bad ID"}},
	}

	err := doc.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidID)
	assert.ErrorIs(t, err, types.ErrEmptyName)
	assert.ErrorIs(t, err, types.ErrInvalidComponentRef)
}
