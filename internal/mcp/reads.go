package mcp

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dshills/cloudscape-mcp/internal/cache"
	"github.com/dshills/cloudscape-mcp/internal/codegen"
	"github.com/dshills/cloudscape-mcp/internal/docs"
	"github.com/dshills/cloudscape-mcp/internal/examples"
	"github.com/dshills/cloudscape-mcp/internal/registry"
	"github.com/dshills/cloudscape-mcp/internal/searcher"
	"github.com/dshills/cloudscape-mcp/internal/validate"
	"github.com/dshills/cloudscape-mcp/pkg/types"
)

// call is the cache key for one tool invocation. Tools sharing a bucket
// are told apart by name.
type call[A any] struct {
	Tool string `json:"tool"`
	Args A      `json:"args"`
}

// memoize caches fn in bucket t under keys scoped to tool.
func memoize[A, R any](m *cache.Manager, t cache.Type, tool string, fn func(A) (R, error)) func(A) (R, error) {
	cached := cache.Memoize(m, t, func(c call[A]) (R, error) {
		return fn(c.Args)
	})
	return func(args A) (R, error) {
		return cached(call[A]{Tool: tool, Args: args})
	}
}

// errInvalidNamePattern is returned when a property name filter does not compile.
var errInvalidNamePattern = errors.New("invalid name pattern")

// detailsArgs selects the optional parts of get_component_details.
type detailsArgs struct {
	ComponentID              string `json:"componentId"`
	IncludeExamples          bool   `json:"includeExamples"`
	IncludeRelatedComponents bool   `json:"includeRelatedComponents"`
	IncludeProperties        bool   `json:"includeProperties"`
}

type relatedComponent struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
}

type exampleSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// componentDetails is the get_component_details response.
type componentDetails struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Category          string             `json:"category"`
	Description       string             `json:"description"`
	ImportPath        string             `json:"importPath"`
	Version           string             `json:"version"`
	IsExperimental    bool               `json:"isExperimental"`
	Tags              []string           `json:"tags"`
	RelatedComponents []relatedComponent `json:"relatedComponents,omitempty"`
	Properties        []types.Property   `json:"properties,omitempty"`
	Examples          []exampleSummary   `json:"examples,omitempty"`
}

// detailsExampleLimit caps the examples embedded in component details.
const detailsExampleLimit = 5

// propertiesArgs filters get_component_properties.
type propertiesArgs struct {
	ComponentID string `json:"componentId"`
	Required    *bool  `json:"required,omitempty"`
	Deprecated  *bool  `json:"deprecated,omitempty"`
	Type        string `json:"type,omitempty"`
	NamePattern string `json:"namePattern,omitempty"`
}

type componentProperties struct {
	ComponentID   string           `json:"componentId"`
	ComponentName string           `json:"componentName"`
	Properties    []types.Property `json:"properties"`
}

type eventHandler struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsRequired  bool   `json:"isRequired"`
}

type componentEvents struct {
	ComponentID   string         `json:"componentId"`
	ComponentName string         `json:"componentName"`
	Events        []types.Event  `json:"events"`
	EventHandlers []eventHandler `json:"eventHandlers"`
}

type componentPatterns struct {
	ComponentID string           `json:"componentId"`
	Patterns    []*types.Pattern `json:"patterns"`
}

type alternatives struct {
	ComponentID   string                 `json:"componentId"`
	ComponentName string                 `json:"componentName"`
	Alternatives  []registry.Alternative `json:"alternatives"`
}

// comparison adds an interface diff to a registry comparison of two components.
type comparison struct {
	*registry.Comparison
	InterfaceDiff string `json:"interfaceDiff,omitempty"`
}

type docArgs struct {
	ID      string       `json:"id"`
	Section docs.Section `json:"section,omitempty"`
	Format  docs.Format  `json:"format"`
}

type docSearchArgs struct {
	Query string     `json:"query"`
	Scope docs.Scope `json:"scope"`
	Limit int        `json:"limit"`
}

type limitArgs struct {
	ID    string `json:"id"`
	Limit int    `json:"limit"`
}

type byTypeArgs struct {
	Type   string `json:"type"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

type exampleIndex struct {
	Categories []examples.Category `json:"categories"`
	Tags       []examples.Tag      `json:"tags"`
}

// reads holds the memoized read paths behind the tools and resources.
type reads struct {
	search           func(searcher.SearchOptions) (*searcher.SearchResults, error)
	functionality    func(searcher.SearchOptions) (*searcher.FunctionalityResults, error)
	details          func(detailsArgs) (*componentDetails, error)
	properties       func(propertiesArgs) (*componentProperties, error)
	events           func(string) (*componentEvents, error)
	accessibility    func(string) (*docs.Accessibility, error)
	versions         func(string) (*registry.VersionInfo, error)
	dependencies     func(string) (*registry.Dependencies, error)
	patterns         func(limitArgs) (*componentPatterns, error)
	compare          func([]string) (*comparison, error)
	alternatives     func(limitArgs) (*alternatives, error)
	searchProperties func(registry.PropertyQuery) ([]registry.PropertyMatch, error)
	searchUsage      func(registry.UsageQuery) ([]registry.UsageMatch, error)
	componentCode    func(codegen.ComponentRequest) (*codegen.Result, error)
	patternCode      func(codegen.PatternRequest) (*codegen.Result, error)
	componentIface   func(string) (string, error)
	componentDocs    func(docArgs) (*docs.Document, error)
	categoryDocs     func(docArgs) (*docs.Document, error)
	patternDocs      func(docArgs) (*docs.Document, error)
	searchDocs       func(docSearchArgs) (*docs.SearchResponse, error)
	examples         func(examples.Request) (*examples.Page, error)
	examplesByType   func(byTypeArgs) (*examples.Page, error)
	searchExamples   func(examples.SearchRequest) (*examples.Page, error)
	example          func(string) (*examples.Detail, error)
	exampleIndex     func(struct{}) (*exampleIndex, error)
}

func (s *Server) newReads() *reads {
	m := s.cache
	return &reads{
		search: memoize(m, cache.ComponentSearch, "search_components",
			func(o searcher.SearchOptions) (*searcher.SearchResults, error) {
				return s.searcher.Search(o), nil
			}),
		functionality: memoize(m, cache.ComponentSearch, "search_components_by_functionality",
			func(o searcher.SearchOptions) (*searcher.FunctionalityResults, error) {
				return s.searcher.SearchByFunctionality(o.Query, o), nil
			}),
		details:       memoize(m, cache.ComponentDetails, "get_component_details", s.componentDetails),
		properties:    memoize(m, cache.ComponentDetails, "get_component_properties", s.componentProperties),
		events:        memoize(m, cache.ComponentDetails, "get_component_events", s.componentEvents),
		patterns:      memoize(m, cache.ComponentDetails, "get_component_patterns", s.componentPatterns),
		accessibility: memoize(m, cache.Documentation, "get_component_accessibility", s.docs.ComponentAccessibility),
		versions:      memoize(m, cache.ComponentDetails, "get_component_versions", s.registry.Versions),
		dependencies:  memoize(m, cache.ComponentDetails, "get_component_dependencies", s.registry.Dependencies),
		compare:       memoize(m, cache.ComponentDetails, "compare_components", s.compareComponents),
		alternatives: memoize(m, cache.ComponentDetails, "get_component_alternatives",
			func(a limitArgs) (*alternatives, error) {
				c, err := s.component(a.ID)
				if err != nil {
					return nil, err
				}
				alts, err := s.registry.Alternatives(a.ID, a.Limit)
				if err != nil {
					return nil, err
				}
				return &alternatives{ComponentID: c.ID, ComponentName: c.Name, Alternatives: alts}, nil
			}),
		searchProperties: memoize(m, cache.ComponentSearch, "search_properties",
			func(q registry.PropertyQuery) ([]registry.PropertyMatch, error) {
				return s.registry.SearchProperties(q), nil
			}),
		searchUsage: memoize(m, cache.Documentation, "search_usage_guidelines",
			func(q registry.UsageQuery) ([]registry.UsageMatch, error) {
				return s.registry.SearchUsageGuidelines(q), nil
			}),
		componentCode: memoize(m, cache.ComponentCode, "generate_component_code",
			func(req codegen.ComponentRequest) (*codegen.Result, error) {
				res, err := s.generator.GenerateComponentCode(req)
				if err != nil {
					return nil, err
				}
				return sanitizeResult(res), nil
			}),
		patternCode: memoize(m, cache.PatternCode, "generate_pattern_code",
			func(req codegen.PatternRequest) (*codegen.Result, error) {
				res, err := s.generator.GeneratePatternCode(req)
				if err != nil {
					return nil, err
				}
				return sanitizeResult(res), nil
			}),
		componentIface: memoize(m, cache.ComponentCode, "generate_component_interface", s.generator.GenerateComponentInterface),
		componentDocs: memoize(m, cache.Documentation, "get_component_documentation",
			func(a docArgs) (*docs.Document, error) {
				return s.docs.ComponentDocumentation(a.ID, a.Section, a.Format)
			}),
		categoryDocs: memoize(m, cache.Documentation, "category_documentation",
			func(a docArgs) (*docs.Document, error) {
				return s.docs.CategoryDocumentation(a.ID, a.Section, a.Format)
			}),
		patternDocs: memoize(m, cache.Documentation, "pattern_documentation",
			func(a docArgs) (*docs.Document, error) {
				return s.docs.PatternDocumentation(a.ID, a.Section, a.Format)
			}),
		searchDocs: memoize(m, cache.Documentation, "search_documentation",
			func(a docSearchArgs) (*docs.SearchResponse, error) {
				return s.docs.SearchDocumentation(a.Query, a.Scope, a.Limit)
			}),
		examples: memoize(m, cache.Examples, "get_component_examples", s.examples.Examples),
		examplesByType: memoize(m, cache.Examples, "examples_by_type",
			func(a byTypeArgs) (*examples.Page, error) {
				return s.examples.ByType(a.Type, a.Limit, a.Offset)
			}),
		searchExamples: memoize(m, cache.Examples, "search_examples", s.examples.Search),
		example:        memoize(m, cache.Examples, "get_example", s.examples.Example),
		exampleIndex: memoize(m, cache.Examples, "get_example_categories",
			func(struct{}) (*exampleIndex, error) {
				return &exampleIndex{Categories: s.examples.Categories(), Tags: s.examples.Tags()}, nil
			}),
	}
}

func (s *Server) component(id string) (*types.Component, error) {
	c, ok := s.registry.Component(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrComponentNotFound, id)
	}
	return c, nil
}

func (s *Server) componentDetails(a detailsArgs) (*componentDetails, error) {
	c, err := s.component(a.ComponentID)
	if err != nil {
		return nil, err
	}

	d := &componentDetails{
		ID:             c.ID,
		Name:           c.Name,
		Category:       c.Category,
		Description:    c.Description,
		ImportPath:     c.ImportPath,
		Version:        c.Version,
		IsExperimental: c.IsExperimental,
		Tags:           c.Tags,
	}
	if a.IncludeRelatedComponents {
		d.RelatedComponents = []relatedComponent{}
		for _, id := range c.RelatedComponents {
			rel := relatedComponent{ID: id, Name: id}
			if other, ok := s.registry.Component(id); ok {
				rel.Name = other.Name
				rel.Category = other.Category
				rel.Description = other.Description
			}
			d.RelatedComponents = append(d.RelatedComponents, rel)
		}
	}
	if a.IncludeProperties {
		d.Properties = sortedProperties(c.Properties)
	}
	if a.IncludeExamples {
		d.Examples = []exampleSummary{}
		for _, e := range s.registry.ComponentExamples(c.ID, "", detailsExampleLimit) {
			d.Examples = append(d.Examples, exampleSummary{
				ID:          e.ID,
				Name:        e.Name,
				Description: e.Description,
				Type:        e.Type,
			})
		}
	}
	return d, nil
}

func (s *Server) componentProperties(a propertiesArgs) (*componentProperties, error) {
	c, err := s.component(a.ComponentID)
	if err != nil {
		return nil, err
	}

	var nameRe *regexp.Regexp
	if a.NamePattern != "" {
		nameRe, err = regexp.Compile(a.NamePattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidNamePattern, err)
		}
	}

	matches := s.registry.SearchProperties(registry.PropertyQuery{
		Type:        a.Type,
		Required:    a.Required,
		Deprecated:  a.Deprecated,
		ComponentID: c.ID,
	})
	out := &componentProperties{ComponentID: c.ID, ComponentName: c.Name, Properties: []types.Property{}}
	for _, m := range matches {
		if nameRe != nil && !nameRe.MatchString(m.Property.Name) {
			continue
		}
		out.Properties = append(out.Properties, m.Property)
	}
	return out, nil
}

func (s *Server) componentEvents(id string) (*componentEvents, error) {
	c, err := s.component(id)
	if err != nil {
		return nil, err
	}

	out := &componentEvents{
		ComponentID:   c.ID,
		ComponentName: c.Name,
		Events:        []types.Event{},
		EventHandlers: []eventHandler{},
	}
	for _, m := range s.registry.SearchEvents(registry.EventQuery{ComponentID: c.ID}) {
		out.Events = append(out.Events, m.Event)
	}
	for _, p := range sortedProperties(c.Properties) {
		if strings.HasPrefix(p.Name, "on") && p.Type == "function" {
			out.EventHandlers = append(out.EventHandlers, eventHandler{
				Name:        p.Name,
				Description: p.Description,
				IsRequired:  p.Required,
			})
		}
	}
	return out, nil
}

func (s *Server) componentPatterns(a limitArgs) (*componentPatterns, error) {
	if _, err := s.component(a.ID); err != nil {
		return nil, err
	}
	patterns := s.registry.SearchPatterns(registry.PatternQuery{Component: a.ID})
	if a.Limit > 0 && len(patterns) > a.Limit {
		patterns = patterns[:a.Limit]
	}
	return &componentPatterns{ComponentID: a.ID, Patterns: patterns}, nil
}

func (s *Server) compareComponents(ids []string) (*comparison, error) {
	cmp, err := s.registry.Compare(ids)
	if err != nil {
		return nil, err
	}
	out := &comparison{Comparison: cmp}
	if len(ids) == 2 && len(cmp.Unknown) == 0 {
		diff, err := s.generator.DiffInterfaces(ids[0], ids[1])
		if err != nil {
			return nil, err
		}
		out.InterfaceDiff = diff
	}
	return out, nil
}

func sortedProperties(props map[string]types.Property) []types.Property {
	out := make([]types.Property, 0, len(props))
	for _, p := range props {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// sanitizeResult returns a copy of res with unsafe browser APIs disabled.
func sanitizeResult(res *codegen.Result) *codegen.Result {
	out := *res
	out.Code = validate.SanitizeCode(res.Code)
	return &out
}
