package codegen

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dshills/cloudscape-mcp/pkg/types"
)

const reactImport = `import React from "react";`

var (
	importRe      = regexp.MustCompile(`import\s+(?:[\w\s{},*]+)\s+from\s+["']([^"']+)["'];?`)
	placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// Lookup resolves catalogue records for generation.
type Lookup interface {
	Component(id string) (*types.Component, bool)
	Pattern(id string) (*types.Pattern, bool)
}

// Generator renders code for catalogue records.
type Generator struct {
	lookup Lookup
}

// New returns a Generator backed by lookup.
func New(lookup Lookup) *Generator {
	return &Generator{lookup: lookup}
}

// ComponentRequest describes a component snippet.
type ComponentRequest struct {
	ComponentID    string            `json:"componentId"`
	Props          map[string]any    `json:"props,omitempty"`
	Children       string            `json:"children,omitempty"`
	EventHandlers  map[string]string `json:"eventHandlers,omitempty"`
	TypeScript     bool              `json:"typescript"`
	Style          Style             `json:"style"`
	IncludeImports bool              `json:"includeImports"`
}

// PatternRequest describes a pattern snippet.
type PatternRequest struct {
	PatternID      string         `json:"patternId"`
	Customizations map[string]any `json:"customizations,omitempty"`
	TypeScript     bool           `json:"typescript"`
	Style          Style          `json:"style"`
	IncludeImports bool           `json:"includeImports"`
}

// Result is generated source with its imports.
type Result struct {
	Code     string   `json:"code"`
	Imports  []string `json:"imports"`
	Language string   `json:"language"`
	Format   string   `json:"format"`
}

func newResult(code string, imports []string, typescript bool) *Result {
	if typescript {
		return &Result{Code: code, Imports: imports, Language: "typescript", Format: "tsx"}
	}
	return &Result{Code: code, Imports: imports, Language: "javascript", Format: "jsx"}
}

// GenerateComponentCode renders a JSX element for a component.
func (g *Generator) GenerateComponentCode(req ComponentRequest) (*Result, error) {
	c, ok := g.lookup.Component(req.ComponentID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrComponentNotFound, req.ComponentID)
	}
	style := ParseStyle(string(req.Style))

	imports := []string{fmt.Sprintf("import %s from %q;", c.Name, c.ImportPath)}
	if req.TypeScript {
		imports = append([]string{reactImport}, imports...)
	}

	var attrs []string
	for _, key := range sortedKeys(req.Props) {
		if attr := formatProp(key, req.Props[key], style); attr != "" {
			attrs = append(attrs, attr)
		}
	}
	for _, key := range sortedKeys(req.EventHandlers) {
		attrs = append(attrs, key+"={"+req.EventHandlers[key]+"}")
	}

	code := renderElement(c.Name, attrs, req.Children, style)
	if req.IncludeImports {
		code = strings.Join(imports, "\n") + "\n\n" + code
	}
	return newResult(code, imports, req.TypeScript), nil
}

func renderElement(name string, attrs []string, children string, style Style) string {
	var b strings.Builder
	b.WriteString("<" + name)

	if style == StyleCompact {
		for _, a := range attrs {
			b.WriteString(" " + a)
		}
		if children != "" {
			b.WriteString(">" + children + "</" + name + ">")
		} else {
			b.WriteString(" />")
		}
		return b.String()
	}

	if len(attrs) == 0 {
		if children == "" {
			return "<" + name + " />"
		}
		return "<" + name + ">\n  " + children + "\n</" + name + ">"
	}
	for _, a := range attrs {
		b.WriteString("\n  " + a)
	}
	if children != "" {
		b.WriteString("\n>\n  " + children + "\n</" + name + ">")
	} else {
		b.WriteString("\n/>")
	}
	return b.String()
}

// GeneratePatternCode fills a pattern's placeholders. Placeholders without a
// customization fall back to the option's default value; unknown
// placeholders are left in place.
func (g *Generator) GeneratePatternCode(req PatternRequest) (*Result, error) {
	p, ok := g.lookup.Pattern(req.PatternID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrPatternNotFound, req.PatternID)
	}
	style := ParseStyle(string(req.Style))

	code := placeholderRe.ReplaceAllStringFunc(p.Code, func(m string) string {
		key := placeholderRe.FindStringSubmatch(m)[1]
		if v, ok := req.Customizations[key]; ok {
			return FormatValue(v, style)
		}
		if opt, ok := p.CustomizationOptions[key]; ok {
			return FormatValue(opt.DefaultValue, style)
		}
		return m
	})

	imports := importRe.FindAllString(code, -1)
	if imports == nil {
		imports = []string{}
	}
	if req.TypeScript && !hasReactImport(imports) {
		imports = append([]string{reactImport}, imports...)
	}

	if style == StyleCompact {
		code = whitespaceRe.ReplaceAllString(code, " ")
	}
	if !req.IncludeImports {
		code = strings.TrimSpace(importRe.ReplaceAllString(code, ""))
	}
	return newResult(code, imports, req.TypeScript), nil
}

func hasReactImport(imports []string) bool {
	for _, imp := range imports {
		if strings.Contains(imp, "import React") {
			return true
		}
	}
	return false
}

// GenerateComponentInterface renders a TypeScript props interface.
func (g *Generator) GenerateComponentInterface(componentID string) (string, error) {
	c, ok := g.lookup.Component(componentID)
	if !ok {
		return "", fmt.Errorf("%w: %s", types.ErrComponentNotFound, componentID)
	}

	members := make([]string, 0, len(c.Properties))
	for _, key := range sortedKeys(c.Properties) {
		p := c.Properties[key]
		optional := "?"
		if p.Required {
			optional = ""
		}
		members = append(members, fmt.Sprintf("  /**\n   * %s\n   */\n  %s%s: %s;",
			p.Description, p.Name, optional, MapTypeToTypeScript(p.Type)))
	}

	return fmt.Sprintf("/**\n * Props for the %s component\n */\ninterface %sProps {\n%s\n}",
		c.Name, c.Name, strings.Join(members, "\n\n")), nil
}

// MapTypeToTypeScript converts a catalogue property type to a TypeScript type.
func MapTypeToTypeScript(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "string":
		return "string"
	case "number":
		return "number"
	case "boolean":
		return "boolean"
	case "function":
		return "() => void"
	case "array":
		return "any[]"
	case "object":
		return "Record<string, any>"
	case "node":
		return "React.ReactNode"
	case "element":
		return "React.ReactElement"
	case "date":
		return "Date"
	}

	if strings.Contains(t, "|") {
		parts := strings.Split(t, "|")
		for i, part := range parts {
			parts[i] = MapTypeToTypeScript(strings.TrimSpace(part))
		}
		return strings.Join(parts, " | ")
	}
	if base, ok := strings.CutSuffix(strings.TrimSpace(t), "[]"); ok {
		return MapTypeToTypeScript(base) + "[]"
	}
	return "any"
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
