package registry

import (
	"regexp"
	"strings"

	"github.com/dshills/cloudscape-mcp/pkg/types"
)

// PropertyQuery filters SearchProperties. Nil pointers and empty strings
// disable the corresponding filter.
type PropertyQuery struct {
	Query       string `json:"query,omitempty"`
	Type        string `json:"type,omitempty"`
	Required    *bool  `json:"required,omitempty"`
	Deprecated  *bool  `json:"deprecated,omitempty"`
	ComponentID string `json:"componentId,omitempty"`
}

// PropertyMatch is a property together with its owning component.
type PropertyMatch struct {
	ComponentID   string         `json:"componentId"`
	ComponentName string         `json:"componentName"`
	Property      types.Property `json:"property"`
}

// EventQuery filters SearchEvents.
type EventQuery struct {
	Query       string `json:"query,omitempty"`
	Cancelable  *bool  `json:"cancelable,omitempty"`
	ComponentID string `json:"componentId,omitempty"`
}

// EventMatch is an event together with its owning component.
type EventMatch struct {
	ComponentID   string      `json:"componentId"`
	ComponentName string      `json:"componentName"`
	Event         types.Event `json:"event"`
}

// FunctionQuery filters SearchFunctions.
type FunctionQuery struct {
	Query       string `json:"query,omitempty"`
	ReturnType  string `json:"returnType,omitempty"`
	ComponentID string `json:"componentId,omitempty"`
}

// FunctionMatch is a function together with its owning component.
type FunctionMatch struct {
	ComponentID   string         `json:"componentId"`
	ComponentName string         `json:"componentName"`
	Function      types.Function `json:"function"`
}

// PatternQuery filters SearchPatterns. Tags match against the pattern's
// component ids by substring.
type PatternQuery struct {
	Query     string   `json:"query,omitempty"`
	Component string   `json:"component,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// UsageQuery filters SearchUsageGuidelines.
type UsageQuery struct {
	Query       string `json:"query,omitempty"`
	Section     string `json:"section,omitempty"`
	ComponentID string `json:"componentId,omitempty"`
}

// UsageMatch is a component's usage guidelines and the sections that matched.
type UsageMatch struct {
	ComponentID     string   `json:"componentId"`
	ComponentName   string   `json:"componentName"`
	Content         string   `json:"content"`
	MatchedSections []string `json:"matchedSections,omitempty"`
}

// scope returns the components a query applies to. An unknown id yields none.
func (r *Registry) scope(componentID string) []*types.Component {
	if componentID == "" {
		return r.componentList
	}
	if c, ok := r.components[componentID]; ok {
		return []*types.Component{c}
	}
	return nil
}

// textMatches reports whether query is empty or occurs in name or description.
func textMatches(query, name, description string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(name), q) ||
		strings.Contains(strings.ToLower(description), q)
}

// SearchProperties finds properties across components.
func (r *Registry) SearchProperties(q PropertyQuery) []PropertyMatch {
	results := []PropertyMatch{}
	for _, c := range r.scope(q.ComponentID) {
		for _, key := range sortedKeys(c.Properties) {
			p := c.Properties[key]
			if !textMatches(q.Query, p.Name, p.Description) {
				continue
			}
			if q.Type != "" && p.Type != q.Type {
				continue
			}
			if q.Required != nil && p.Required != *q.Required {
				continue
			}
			if q.Deprecated != nil && p.IsDeprecated != *q.Deprecated {
				continue
			}
			results = append(results, PropertyMatch{ComponentID: c.ID, ComponentName: c.Name, Property: p})
		}
	}
	return results
}

// SearchEvents finds events across components.
func (r *Registry) SearchEvents(q EventQuery) []EventMatch {
	results := []EventMatch{}
	for _, c := range r.scope(q.ComponentID) {
		for _, key := range sortedKeys(c.Events) {
			e := c.Events[key]
			if !textMatches(q.Query, e.Name, e.Description) {
				continue
			}
			if q.Cancelable != nil && e.Cancelable != *q.Cancelable {
				continue
			}
			results = append(results, EventMatch{ComponentID: c.ID, ComponentName: c.Name, Event: e})
		}
	}
	return results
}

// SearchFunctions finds functions across components.
func (r *Registry) SearchFunctions(q FunctionQuery) []FunctionMatch {
	results := []FunctionMatch{}
	for _, c := range r.scope(q.ComponentID) {
		for _, key := range sortedKeys(c.Functions) {
			f := c.Functions[key]
			if !textMatches(q.Query, f.Name, f.Description) {
				continue
			}
			if q.ReturnType != "" && f.ReturnType != q.ReturnType {
				continue
			}
			results = append(results, FunctionMatch{ComponentID: c.ID, ComponentName: c.Name, Function: f})
		}
	}
	return results
}

// SearchPatterns finds patterns by text, member component and tags.
func (r *Registry) SearchPatterns(q PatternQuery) []*types.Pattern {
	results := []*types.Pattern{}
	for _, p := range r.patternList {
		if !textMatches(q.Query, p.Name, p.Description) {
			continue
		}
		if q.Component != "" && !contains(p.Components, q.Component) {
			continue
		}
		if len(q.Tags) > 0 && !anyComponentContains(p.Components, q.Tags) {
			continue
		}
		results = append(results, p)
	}
	return results
}

func anyComponentContains(components, tags []string) bool {
	for _, tag := range tags {
		t := strings.ToLower(tag)
		for _, c := range components {
			if strings.Contains(strings.ToLower(c), t) {
				return true
			}
		}
	}
	return false
}

// SearchUsageGuidelines finds components whose usage guidelines contain the
// query and, when given, a "## <section>" header. Both conditions must hold.
// MatchedSections lists the nearest "##" or "###" header above each line
// containing the query, followed by the requested section.
func (r *Registry) SearchUsageGuidelines(q UsageQuery) []UsageMatch {
	var sectionRe *regexp.Regexp
	if q.Section != "" {
		sectionRe = regexp.MustCompile(`(?im)^##\s+` + regexp.QuoteMeta(q.Section))
	}
	query := strings.ToLower(q.Query)

	results := []UsageMatch{}
	for _, c := range r.scope(q.ComponentID) {
		content := c.UsageGuidelines
		if content == "" {
			continue
		}

		var matched []string
		if query != "" {
			if !strings.Contains(strings.ToLower(content), query) {
				continue
			}
			matched = sectionsContaining(content, query)
		}
		if sectionRe != nil {
			if !sectionRe.MatchString(content) {
				continue
			}
			if !contains(matched, q.Section) {
				matched = append(matched, q.Section)
			}
		}

		results = append(results, UsageMatch{
			ComponentID:     c.ID,
			ComponentName:   c.Name,
			Content:         content,
			MatchedSections: matched,
		})
	}
	return results
}

// sectionsContaining returns, in order of appearance, the headers of the
// sections with a line containing query. Lines before the first header are
// not attributed to any section.
func sectionsContaining(content, query string) []string {
	var out []string
	current := ""
	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(line, "## "):
			current = strings.TrimSpace(strings.TrimPrefix(line, "## "))
		case strings.HasPrefix(line, "### "):
			current = strings.TrimSpace(strings.TrimPrefix(line, "### "))
		}
		if current != "" && strings.Contains(strings.ToLower(line), query) && !contains(out, current) {
			out = append(out, current)
		}
	}
	return out
}
