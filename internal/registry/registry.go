// Package registry holds an immutable in-memory snapshot of the component
// catalogue and the lookups served from it.
package registry

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/cloudscape-mcp/internal/storage"
	"github.com/dshills/cloudscape-mcp/pkg/types"
)

// Registry is safe for concurrent use. Returned records are shared and must
// not be modified by callers.
type Registry struct {
	components map[string]*types.Component
	categories map[string]*types.Category
	patterns   map[string]*types.Pattern
	examples   map[string]*types.Example

	// id-ordered views
	componentList []*types.Component
	categoryList  []*types.Category
	patternList   []*types.Pattern
	exampleList   []*types.Example
}

// Load snapshots every record in store.
func Load(ctx context.Context, store storage.Storage) (*Registry, error) {
	components, err := store.ListComponents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list components: %w", err)
	}
	categories, err := store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	patterns, err := store.ListPatterns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patterns: %w", err)
	}
	examples, err := store.ListExamples(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list examples: %w", err)
	}
	return New(components, categories, patterns, examples), nil
}

// New builds a registry from records. Later duplicates replace earlier ones.
func New(components []*types.Component, categories []*types.Category, patterns []*types.Pattern, examples []*types.Example) *Registry {
	r := &Registry{
		components: make(map[string]*types.Component, len(components)),
		categories: make(map[string]*types.Category),
		patterns:   make(map[string]*types.Pattern, len(patterns)),
		examples:   make(map[string]*types.Example, len(examples)),
	}
	for _, c := range components {
		r.components[c.ID] = c
	}
	for _, p := range patterns {
		r.patterns[p.ID] = p
	}
	for _, e := range examples {
		r.examples[e.ID] = e
	}

	r.componentList = sortedValues(r.components)
	r.patternList = sortedValues(r.patterns)
	r.exampleList = sortedValues(r.examples)

	r.categories = mergeCategories(categories, r.componentList)
	r.categoryList = sortedValues(r.categories)
	return r
}

// mergeCategories keeps explicit categories, appends components that declare
// them, and derives a category for every other component category.
func mergeCategories(explicit []*types.Category, components []*types.Component) map[string]*types.Category {
	title := cases.Title(language.English)
	out := make(map[string]*types.Category, len(explicit))

	for _, c := range explicit {
		cp := *c
		cp.Components = append([]string(nil), c.Components...)
		out[c.ID] = &cp
	}

	for _, comp := range components {
		if comp.Category == "" {
			continue
		}
		cat, ok := out[comp.Category]
		if !ok {
			name := title.String(comp.Category)
			cat = &types.Category{
				ID:          comp.Category,
				Name:        name,
				Description: name + " components",
			}
			out[comp.Category] = cat
		}
		if !contains(cat.Components, comp.ID) {
			cat.Components = append(cat.Components, comp.ID)
		}
	}
	return out
}

// AllComponents returns every component ordered by id.
func (r *Registry) AllComponents() []*types.Component {
	return r.componentList
}

// Component returns the component with id.
func (r *Registry) Component(id string) (*types.Component, bool) {
	c, ok := r.components[id]
	return c, ok
}

// AllCategories returns every category ordered by id.
func (r *Registry) AllCategories() []*types.Category {
	return r.categoryList
}

// Category returns the category with id.
func (r *Registry) Category(id string) (*types.Category, bool) {
	c, ok := r.categories[id]
	return c, ok
}

// AllPatterns returns every pattern ordered by id.
func (r *Registry) AllPatterns() []*types.Pattern {
	return r.patternList
}

// Pattern returns the pattern with id.
func (r *Registry) Pattern(id string) (*types.Pattern, bool) {
	p, ok := r.patterns[id]
	return p, ok
}

// AllExamples returns every example ordered by id.
func (r *Registry) AllExamples() []*types.Example {
	return r.exampleList
}

// ExampleByID returns the example with id.
func (r *Registry) ExampleByID(id string) (*types.Example, bool) {
	e, ok := r.examples[id]
	return e, ok
}

// ComponentExamples returns the examples of a component, optionally
// restricted to one type. A limit of zero or less means no limit.
func (r *Registry) ComponentExamples(componentID, exampleType string, limit int) []*types.Example {
	var out []*types.Example
	for _, e := range r.exampleList {
		if e.Component != componentID {
			continue
		}
		if exampleType != "" && e.Type != exampleType {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// ComponentUsage returns the usage guidelines of a component, or "" when the
// component is unknown or has none.
func (r *Registry) ComponentUsage(componentID string) string {
	c, ok := r.components[componentID]
	if !ok {
		return ""
	}
	return c.UsageGuidelines
}

func sortedValues[T any](m map[string]T) []T {
	keys := sortedKeys(m)
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
