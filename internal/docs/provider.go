package docs

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/cloudscape-mcp/pkg/types"
)

// Section names a part of a document.
type Section string

const (
	SectionOverview             Section = "overview"
	SectionProps                Section = "props"
	SectionUsage                Section = "usage"
	SectionAccessibility        Section = "accessibility"
	SectionDesign               Section = "design"
	SectionBestPractices        Section = "bestPractices"
	SectionCommonPitfalls       Section = "commonPitfalls"
	SectionMigrationGuides      Section = "migrationGuides"
	SectionExamples             Section = "examples"
	SectionComponents           Section = "components"
	SectionCustomizationOptions Section = "customizationOptions"
)

// ComponentSections lists component document sections in render order.
var ComponentSections = []Section{
	SectionOverview, SectionProps, SectionUsage, SectionAccessibility, SectionDesign,
	SectionBestPractices, SectionCommonPitfalls, SectionMigrationGuides, SectionExamples,
}

// CategorySections lists category document sections in render order.
var CategorySections = []Section{SectionOverview, SectionComponents, SectionUsage}

// PatternSections lists pattern document sections in render order.
var PatternSections = []Section{
	SectionOverview, SectionComponents, SectionCustomizationOptions, SectionUsage, SectionBestPractices,
}

// Lookup resolves the catalogue records documentation is built from.
type Lookup interface {
	AllComponents() []*types.Component
	Component(id string) (*types.Component, bool)
	AllCategories() []*types.Category
	Category(id string) (*types.Category, bool)
	AllPatterns() []*types.Pattern
	Pattern(id string) (*types.Pattern, bool)
	ComponentExamples(componentID, exampleType string, limit int) []*types.Example
}

// Summary identifies a component referenced by a category or pattern.
type Summary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Document is rendered documentation. A full markdown request fills
// Sections; every other request fills Content.
type Document struct {
	ID         string             `json:"id"`
	Format     Format             `json:"format"`
	Section    Section            `json:"section,omitempty"`
	Sections   map[Section]string `json:"sections,omitempty"`
	Content    string             `json:"content,omitempty"`
	Components []Summary          `json:"components,omitempty"`
}

// Provider builds documentation. It is safe for concurrent use.
type Provider struct {
	lookup   Lookup
	renderer *renderer
}

// NewProvider returns a Provider backed by lookup.
func NewProvider(lookup Lookup) *Provider {
	return &Provider{lookup: lookup, renderer: newRenderer()}
}

// ComponentDocumentation documents a component. An unknown section returns
// the whole document.
func (p *Provider) ComponentDocumentation(id string, section Section, format Format) (*Document, error) {
	c, ok := p.lookup.Component(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrComponentNotFound, id)
	}
	return p.assemble(id, p.componentSections(c), ComponentSections, section, format, nil)
}

// ComponentMarkdown returns the whole component document as one markdown text.
func (p *Provider) ComponentMarkdown(id string) (string, error) {
	c, ok := p.lookup.Component(id)
	if !ok {
		return "", fmt.Errorf("%w: %s", types.ErrComponentNotFound, id)
	}
	return joinSections(p.componentSections(c), ComponentSections, "\n\n"), nil
}

// CategoryDocumentation documents a category and its components.
func (p *Provider) CategoryDocumentation(id string, section Section, format Format) (*Document, error) {
	cat, ok := p.lookup.Category(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrCategoryNotFound, id)
	}
	members := p.summaries(cat.Components)
	return p.assemble(id, p.categorySections(cat, members), CategorySections, section, format, members)
}

// PatternDocumentation documents a pattern.
func (p *Provider) PatternDocumentation(id string, section Section, format Format) (*Document, error) {
	pat, ok := p.lookup.Pattern(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrPatternNotFound, id)
	}
	members := p.summaries(pat.Components)
	return p.assemble(id, p.patternSections(pat, members), PatternSections, section, format, members)
}

func (p *Provider) assemble(id string, sections map[Section]string, order []Section,
	section Section, format Format, members []Summary) (*Document, error) {

	doc := &Document{ID: id, Format: format, Components: members}

	if text, ok := sections[section]; ok {
		out, err := p.renderer.Render(text, format)
		if err != nil {
			return nil, err
		}
		doc.Section = section
		doc.Content = out
		return doc, nil
	}

	if format == FormatMarkdown {
		doc.Sections = sections
		return doc, nil
	}

	out, err := p.renderer.Render(joinSections(sections, order, "\n\n"), format)
	if err != nil {
		return nil, err
	}
	doc.Content = out
	return doc, nil
}

func joinSections(sections map[Section]string, order []Section, sep string) string {
	parts := make([]string, 0, len(order))
	for _, s := range order {
		parts = append(parts, sections[s])
	}
	return strings.Join(parts, sep)
}

func (p *Provider) summaries(ids []string) []Summary {
	var out []Summary
	for _, id := range ids {
		if c, ok := p.lookup.Component(id); ok {
			out = append(out, Summary{ID: c.ID, Name: c.Name, Description: c.Description})
		}
	}
	return out
}

func bullets(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return "- " + strings.Join(items, "\n- ") + "\n"
}

func summaryList(members []Summary) string {
	lines := make([]string, len(members))
	for i, m := range members {
		lines[i] = fmt.Sprintf("- **%s**: %s", m.Name, m.Description)
	}
	return strings.Join(lines, "\n")
}

func jsonValue(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func (p *Provider) componentSections(c *types.Component) map[Section]string {
	s := make(map[Section]string, len(ComponentSections))

	s[SectionOverview] = fmt.Sprintf("# %s\n\n%s\n\n## Import\n\n```jsx\nimport %s from \"%s\";\n```\n\n## Basic Usage\n\n```jsx\n<%s />\n```\n",
		c.Name, c.Description, c.Name, c.ImportPath, c.Name)

	keys := make([]string, 0, len(c.Properties))
	for k := range c.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	props := make([]string, 0, len(keys))
	for _, k := range keys {
		props = append(props, propertyDoc(c.Properties[k]))
	}
	s[SectionProps] = strings.Join(props, "\n")

	purpose := "its intended purpose"
	if c.Description != "" {
		purpose = strings.ToLower(c.Description)
	}
	s[SectionUsage] = "## Usage Guidelines\n\n" + bullets(append([]string{
		fmt.Sprintf("Use %s for %s", c.Name, purpose),
		"Follow accessibility best practices",
		"Ensure proper keyboard navigation",
	}, componentGuidance[SectionUsage][c.ID]...))

	s[SectionAccessibility] = fmt.Sprintf("## Accessibility\n\n%s follows WAI-ARIA guidelines for accessibility:\n\n", c.Name) +
		bullets(append([]string{
			"Proper ARIA roles and attributes",
			"Keyboard navigation support",
			"Screen reader compatibility",
		}, componentGuidance[SectionAccessibility][c.ID]...))

	s[SectionDesign] = "## Design Guidelines\n\n" + bullets(append([]string{
		"Use consistent spacing and alignment",
		"Follow Cloudscape Design System typography guidelines",
		"Maintain visual hierarchy",
	}, componentGuidance[SectionDesign][c.ID]...))

	s[SectionBestPractices] = "## Best Practices\n\n" + bullets(append([]string{
		"Keep content concise and focused",
		"Use clear and descriptive labels",
		"Provide feedback for user interactions",
		"Test with different screen sizes",
	}, componentGuidance[SectionBestPractices][c.ID]...))

	s[SectionCommonPitfalls] = "## Common Pitfalls\n\n" + bullets(append([]string{
		"Overriding default styles without considering accessibility",
		"Nesting components incorrectly",
		"Not handling error states properly",
		"Ignoring responsive design considerations",
	}, componentGuidance[SectionCommonPitfalls][c.ID]...))

	if c.IsExperimental {
		s[SectionMigrationGuides] = "## Migration Guides\n\nThis component is experimental and may change in future versions. " +
			"Be prepared to update your code when upgrading Cloudscape.\n"
	} else {
		s[SectionMigrationGuides] = "## Migration Guides\n\nWhen upgrading Cloudscape versions, check the changelog for any breaking changes to this component.\n"
		if note, ok := migrationNotes[c.ID]; ok {
			s[SectionMigrationGuides] += "\n" + note + "\n"
		}
	}

	s[SectionExamples] = "## Examples\n\n" + p.examplesDoc(c.ID)
	return s
}

func propertyDoc(prop types.Property) string {
	required := "Optional"
	if prop.Required {
		required = "Required"
	}
	def := "No default value"
	if prop.DefaultValue != nil {
		def = fmt.Sprintf("Default: `%s`", jsonValue(prop.DefaultValue))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n\nType: `%s`\n%s - %s", prop.Name, prop.Type, required, def)
	if len(prop.AcceptedValues) > 0 {
		vals := make([]string, len(prop.AcceptedValues))
		for i, v := range prop.AcceptedValues {
			vals[i] = fmt.Sprintf("`%v`", v)
		}
		b.WriteString("\nAccepted values: " + strings.Join(vals, ", "))
	}
	if prop.IsDeprecated {
		b.WriteString("\n**Deprecated**")
	}
	fmt.Fprintf(&b, "\n\n%s\n", prop.Description)
	return b.String()
}

func (p *Provider) examplesDoc(componentID string) string {
	examples := p.lookup.ComponentExamples(componentID, "", 0)
	if len(examples) == 0 {
		return "No examples available for this component.\n"
	}
	parts := make([]string, len(examples))
	for i, e := range examples {
		parts[i] = fmt.Sprintf("### %s\n\n%s\n\n```jsx\n%s\n```\n", e.Name, e.Description, strings.TrimRight(e.Code, "\n"))
	}
	return strings.Join(parts, "\n")
}

func (p *Provider) categorySections(cat *types.Category, members []Summary) map[Section]string {
	guidance := defaultCategoryGuidance
	if items, ok := categoryGuidance[cat.ID]; ok {
		guidance = bullets(items)
	}
	return map[Section]string{
		SectionOverview: fmt.Sprintf("# %s Components\n\n%s\n\n## Components in this Category\n\n%s\n",
			cat.Name, cat.Description, summaryList(members)),
		SectionComponents: summaryList(members) + "\n",
		SectionUsage:      "## Usage Guidelines\n\n" + guidance + "\n",
	}
}

func (p *Provider) patternSections(pat *types.Pattern, members []Summary) map[Section]string {
	keys := make([]string, 0, len(pat.CustomizationOptions))
	for k := range pat.CustomizationOptions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	options := make([]string, 0, len(keys))
	for _, k := range keys {
		opt := pat.CustomizationOptions[k]
		def := "No default value"
		if opt.DefaultValue != nil {
			def = fmt.Sprintf("Default: `%s`", jsonValue(opt.DefaultValue))
		}
		options = append(options, fmt.Sprintf("### %s\n\nType: `%s`\n%s\n\n%s\n", opt.Name, opt.Type, def, opt.Description))
	}

	usage := defaultPatternUsage
	if items, ok := patternGuidance[SectionUsage][pat.ID]; ok {
		usage = bullets(items)
	}
	practices := defaultPatternPractices
	if items, ok := patternGuidance[SectionBestPractices][pat.ID]; ok {
		practices = bullets(items)
	}

	return map[Section]string{
		SectionOverview: fmt.Sprintf("# %s\n\n%s\n\n## Components Used\n\n%s\n\n## Code Example\n\n```jsx\n%s\n```\n",
			pat.Name, pat.Description, summaryList(members), strings.TrimRight(pat.Code, "\n")),
		SectionComponents:           summaryList(members) + "\n",
		SectionCustomizationOptions: strings.Join(options, "\n"),
		SectionUsage:                "## Usage Guidelines\n\n" + usage + "\n",
		SectionBestPractices:        "## Best Practices\n\n" + practices + "\n",
	}
}
