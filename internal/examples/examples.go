// Package examples serves paged, filtered views of the catalogue's code
// examples.
package examples

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/cloudscape-mcp/pkg/types"
)

// DefaultLimit is the page size used when a request has no positive limit.
const DefaultLimit = 10

// ErrTypeRequired is returned by ByType for an empty type.
var ErrTypeRequired = errors.New("example type is required")

// Lookup resolves catalogue records.
type Lookup interface {
	Component(id string) (*types.Component, bool)
	AllExamples() []*types.Example
	ExampleByID(id string) (*types.Example, bool)
}

// Provider answers example queries. It is safe for concurrent use.
type Provider struct {
	lookup Lookup
}

// NewProvider returns a Provider backed by lookup.
func NewProvider(lookup Lookup) *Provider {
	return &Provider{lookup: lookup}
}

// Request selects the examples of one component.
type Request struct {
	ComponentID string   `json:"componentId"`
	Type        string   `json:"type,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Limit       int      `json:"limit"`
	Offset      int      `json:"offset"`
}

// Page is a page of a component's examples.
type Page struct {
	Examples      []*types.Example `json:"examples"`
	TotalExamples int              `json:"totalExamples"`
	ComponentID   string           `json:"componentId,omitempty"`
	ComponentName string           `json:"componentName,omitempty"`
	Type          string           `json:"type,omitempty"`
	Query         string           `json:"query,omitempty"`
	Tags          []string         `json:"tags,omitempty"`
	Limit         int              `json:"limit"`
	Offset        int              `json:"offset"`
}

// Detail is an example with its component's display name.
type Detail struct {
	*types.Example
	ComponentName string `json:"componentName"`
}

// SearchRequest searches every example.
type SearchRequest struct {
	Query  string   `json:"query"`
	Tags   []string `json:"tags,omitempty"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}

// Category counts the examples of one type.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Tag counts the examples carrying one tag.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Examples returns a page of a component's examples. Tags match when any
// requested tag is on the example.
func (p *Provider) Examples(req Request) (*Page, error) {
	c, ok := p.lookup.Component(req.ComponentID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrComponentNotFound, req.ComponentID)
	}

	var matched []*types.Example
	for _, e := range p.lookup.AllExamples() {
		if e.Component != req.ComponentID {
			continue
		}
		if req.Type != "" && e.Type != req.Type {
			continue
		}
		if !anyTag(e.Tags, req.Tags) {
			continue
		}
		matched = append(matched, e)
	}

	page := newPage(matched, req.Limit, req.Offset)
	page.ComponentID = c.ID
	page.ComponentName = c.Name
	page.Type = req.Type
	return page, nil
}

// ByType returns a page of examples of one type across all components.
func (p *Provider) ByType(exampleType string, limit, offset int) (*Page, error) {
	if exampleType == "" {
		return nil, ErrTypeRequired
	}
	var matched []*types.Example
	for _, e := range p.lookup.AllExamples() {
		if e.Type == exampleType {
			matched = append(matched, e)
		}
	}
	page := newPage(matched, limit, offset)
	page.Type = exampleType
	return page, nil
}

// Example returns one example. Examples of unknown components report the
// component id as their name.
func (p *Provider) Example(id string) (*Detail, error) {
	e, ok := p.lookup.ExampleByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrExampleNotFound, id)
	}
	name := e.Component
	if c, ok := p.lookup.Component(e.Component); ok {
		name = c.Name
	}
	return &Detail{Example: e, ComponentName: name}, nil
}

// Search finds examples whose name, description, component, type, code or
// tags contain the query, case-insensitively.
func (p *Provider) Search(req SearchRequest) (*Page, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, types.ErrEmptyQuery
	}
	q := strings.ToLower(req.Query)

	var matched []*types.Example
	for _, e := range p.lookup.AllExamples() {
		text := strings.ToLower(strings.Join(append([]string{e.Name, e.Description, e.Component, e.Type, e.Code}, e.Tags...), " "))
		if !strings.Contains(text, q) {
			continue
		}
		if !anyTag(e.Tags, req.Tags) {
			continue
		}
		matched = append(matched, e)
	}

	page := newPage(matched, req.Limit, req.Offset)
	page.Query = req.Query
	page.Tags = req.Tags
	return page, nil
}

// Categories counts examples per type, ordered by type.
func (p *Provider) Categories() []Category {
	counts := map[string]int{}
	for _, e := range p.lookup.AllExamples() {
		counts[e.Type]++
	}
	title := cases.Title(language.English)
	out := make([]Category, 0, len(counts))
	for _, t := range sortedKeys(counts) {
		out = append(out, Category{ID: t, Name: title.String(t), Count: counts[t]})
	}
	return out
}

// Tags counts examples per tag, ordered by tag.
func (p *Provider) Tags() []Tag {
	counts := map[string]int{}
	for _, e := range p.lookup.AllExamples() {
		for _, t := range e.Tags {
			counts[t]++
		}
	}
	out := make([]Tag, 0, len(counts))
	for _, t := range sortedKeys(counts) {
		out = append(out, Tag{ID: t, Name: t, Count: counts[t]})
	}
	return out
}

// anyTag reports whether want is empty or shares a tag with have.
func anyTag(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

// newPage slices items after counting them. A negative offset starts at zero.
func newPage(items []*types.Example, limit, offset int) *Page {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	total := len(items)

	page := &Page{Examples: []*types.Example{}, TotalExamples: total, Limit: limit, Offset: offset}
	if offset >= total {
		return page
	}
	end := total
	if limit < end-offset {
		end = offset + limit
	}
	page.Examples = items[offset:end]
	return page
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
