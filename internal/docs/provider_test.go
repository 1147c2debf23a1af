package docs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/cloudscape-mcp/internal/registry"
	"github.com/dshills/cloudscape-mcp/pkg/types"
)

func newTestProvider() *Provider {
	components := []*types.Component{
		{
			ID:          "button",
			Name:        "Button",
			Category:    "input",
			Description: "Allows users to initiate actions",
			ImportPath:  "@cloudscape-design/components/button",
			Properties: map[string]types.Property{
				"variant": {
					Name: "variant", Type: "string", Description: "Visual style of the button",
					DefaultValue: "normal", AcceptedValues: []any{"normal", "primary"},
				},
				"wrapText": {Name: "wrapText", Type: "boolean", Description: "Wraps long labels", IsDeprecated: true},
			},
		},
		{
			ID:             "board",
			Name:           "Board",
			Category:       "layout",
			Description:    "Drag and drop layout",
			ImportPath:     "@cloudscape-design/board-components/board",
			IsExperimental: true,
		},
	}
	patterns := []*types.Pattern{
		{
			ID:          "form-layout",
			Name:        "Form Layout",
			Description: "A form with validation",
			Components:  []string{"button", "unknown"},
			Code:        "<Form />\n",
			CustomizationOptions: map[string]types.CustomizationOption{
				"header": {Name: "header", Type: "string", Description: "Heading text", DefaultValue: "Create"},
			},
		},
	}
	examples := []*types.Example{
		{ID: "button-basic", Name: "Basic button", Description: "A primary button", Component: "button", Code: "<Button>Go</Button>"},
	}
	return NewProvider(registry.New(components, nil, patterns, examples))
}

func TestComponentDocumentation_Markdown(t *testing.T) {
	p := newTestProvider()

	doc, err := p.ComponentDocumentation("button", "", FormatMarkdown)
	require.NoError(t, err)
	assert.Empty(t, doc.Content)
	require.Len(t, doc.Sections, len(ComponentSections))

	assert.Contains(t, doc.Sections[SectionOverview], "# Button")
	assert.Contains(t, doc.Sections[SectionOverview], `import Button from "@cloudscape-design/components/button";`)
	assert.Contains(t, doc.Sections[SectionProps], "Optional - Default: `\"normal\"`\nAccepted values: `normal`, `primary`")
	assert.Contains(t, doc.Sections[SectionProps], "**Deprecated**")
	assert.Less(t, strings.Index(doc.Sections[SectionProps], "### variant"), strings.Index(doc.Sections[SectionProps], "### wrapText"))
	assert.Contains(t, doc.Sections[SectionUsage], "- Use Button for allows users to initiate actions")
	assert.Contains(t, doc.Sections[SectionUsage], "- Use primary buttons for the main action")
	assert.Contains(t, doc.Sections[SectionMigrationGuides], "### Migrating from v1 to v2")
	assert.Contains(t, doc.Sections[SectionExamples], "### Basic button")
	assert.Contains(t, doc.Sections[SectionExamples], "<Button>Go</Button>")
}

func TestComponentDocumentation_Sections(t *testing.T) {
	p := newTestProvider()

	t.Run("single section", func(t *testing.T) {
		doc, err := p.ComponentDocumentation("board", SectionMigrationGuides, FormatMarkdown)
		require.NoError(t, err)
		assert.Equal(t, SectionMigrationGuides, doc.Section)
		assert.Contains(t, doc.Content, "experimental")
		assert.Nil(t, doc.Sections)
	})

	t.Run("no examples", func(t *testing.T) {
		doc, err := p.ComponentDocumentation("board", SectionExamples, FormatMarkdown)
		require.NoError(t, err)
		assert.Contains(t, doc.Content, "No examples available for this component.")
	})

	t.Run("unknown section returns everything", func(t *testing.T) {
		doc, err := p.ComponentDocumentation("board", "changelog", FormatMarkdown)
		require.NoError(t, err)
		assert.Len(t, doc.Sections, len(ComponentSections))
	})

	t.Run("not found", func(t *testing.T) {
		_, err := p.ComponentDocumentation("missing", "", FormatMarkdown)
		assert.ErrorIs(t, err, types.ErrComponentNotFound)
	})
}

func TestComponentDocumentation_Formats(t *testing.T) {
	p := newTestProvider()

	html, err := p.ComponentDocumentation("button", SectionOverview, FormatHTML)
	require.NoError(t, err)
	assert.Contains(t, html.Content, "<h1")
	assert.Contains(t, html.Content, "Button</h1>")
	assert.Contains(t, html.Content, "<code")

	full, err := p.ComponentDocumentation("button", "", FormatHTML)
	require.NoError(t, err)
	assert.Nil(t, full.Sections)
	assert.Contains(t, full.Content, "Accessibility</h2>")

	plain, err := p.ComponentDocumentation("button", SectionOverview, FormatPlain)
	require.NoError(t, err)
	assert.Contains(t, plain.Content, "Button")
	assert.Contains(t, plain.Content, "import Button from")
}

func TestComponentMarkdown(t *testing.T) {
	p := newTestProvider()

	md, err := p.ComponentMarkdown("button")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(md, "# Button"))
	assert.Less(t, strings.Index(md, "## Usage Guidelines"), strings.Index(md, "## Examples"))

	_, err = p.ComponentMarkdown("nope")
	assert.ErrorIs(t, err, types.ErrComponentNotFound)
}

func TestHTMLIsSanitised(t *testing.T) {
	out, err := newRenderer().Render("# Title\n\n<script>alert(1)</script>\n\n[x](javascript:alert(1))\n", FormatHTML)
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "javascript:")
}

func TestCategoryDocumentation(t *testing.T) {
	p := newTestProvider()

	doc, err := p.CategoryDocumentation("input", "", FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, doc.Sections[SectionOverview], "# Input Components")
	assert.Contains(t, doc.Sections[SectionOverview], "- **Button**: Allows users to initiate actions")
	assert.Contains(t, doc.Sections[SectionUsage], "Group related form fields together")
	require.Len(t, doc.Components, 1)
	assert.Equal(t, "button", doc.Components[0].ID)

	layout, err := p.CategoryDocumentation("layout", SectionUsage, FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, layout.Content, "Use containers to group related content")

	_, err = p.CategoryDocumentation("missing", "", FormatMarkdown)
	assert.ErrorIs(t, err, types.ErrCategoryNotFound)
}

func TestPatternDocumentation(t *testing.T) {
	p := newTestProvider()

	doc, err := p.PatternDocumentation("form-layout", "", FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, doc.Sections[SectionOverview], "## Code Example\n\n```jsx\n<Form />\n```")
	assert.Contains(t, doc.Sections[SectionCustomizationOptions], "### header\n\nType: `string`\nDefault: `\"Create\"`")
	assert.Contains(t, doc.Sections[SectionUsage], "Include appropriate actions (submit, cancel)")
	require.Len(t, doc.Components, 1, "unknown member components are dropped")

	comps, err := p.PatternDocumentation("form-layout", SectionComponents, FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "- **Button**: Allows users to initiate actions\n", comps.Content)

	_, err = p.PatternDocumentation("missing", "", FormatMarkdown)
	assert.ErrorIs(t, err, types.ErrPatternNotFound)
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatHTML, ParseFormat("html"))
	assert.Equal(t, FormatPlain, ParseFormat("plain"))
	assert.Equal(t, FormatMarkdown, ParseFormat("markdown"))
	assert.Equal(t, FormatMarkdown, ParseFormat(""))
	assert.Equal(t, FormatMarkdown, ParseFormat("pdf"))
}
