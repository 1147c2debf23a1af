package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/cloudscape-mcp/pkg/types"
)

// ErrNothingToCompare is returned when none of the requested ids resolve.
var ErrNothingToCompare = errors.New("no valid components found to compare")

// ComponentOverview summarises a component within a comparison.
type ComponentOverview struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	Category              string `json:"category"`
	Description           string `json:"description"`
	Version               string `json:"version"`
	IsExperimental        bool   `json:"isExperimental"`
	PropertyCount         int    `json:"propertyCount"`
	RequiredPropertyCount int    `json:"requiredPropertyCount"`
}

// Comparison contrasts the properties of several components.
type Comparison struct {
	Components       []ComponentOverview `json:"components"`
	CommonProperties []string            `json:"commonProperties"`
	UniqueProperties map[string][]string `json:"uniqueProperties"`
	Unknown          []string            `json:"unknown,omitempty"`
}

// Alternative is a same-category component that could replace another.
type Alternative struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Similarities []string `json:"similarities"`
	Differences  []string `json:"differences"`
}

// Compare contrasts the components named by ids. Unknown ids are reported
// in Comparison.Unknown.
func (r *Registry) Compare(ids []string) (*Comparison, error) {
	var found []*types.Component
	cmp := &Comparison{UniqueProperties: map[string][]string{}}
	for _, id := range ids {
		c, ok := r.components[id]
		if !ok {
			cmp.Unknown = append(cmp.Unknown, id)
			continue
		}
		found = append(found, c)
	}
	if len(found) == 0 {
		return nil, ErrNothingToCompare
	}

	for _, c := range found {
		required := 0
		for _, p := range c.Properties {
			if p.Required {
				required++
			}
		}
		cmp.Components = append(cmp.Components, ComponentOverview{
			ID:                    c.ID,
			Name:                  c.Name,
			Category:              c.Category,
			Description:           c.Description,
			Version:               orDefault(c.Version, "0.0.0"),
			IsExperimental:        c.IsExperimental,
			PropertyCount:         len(c.Properties),
			RequiredPropertyCount: required,
		})
	}
	cmp.CommonProperties = commonProperties(found)
	for _, c := range found {
		cmp.UniqueProperties[c.ID] = uniqueProperties(c, found)
	}
	return cmp, nil
}

// Alternatives returns up to limit other components in the same category.
func (r *Registry) Alternatives(componentID string, limit int) ([]Alternative, error) {
	c, ok := r.components[componentID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrComponentNotFound, componentID)
	}
	out := []Alternative{}
	for _, other := range r.componentList {
		if limit > 0 && len(out) == limit {
			break
		}
		if other.ID == c.ID || other.Category != c.Category {
			continue
		}
		out = append(out, Alternative{
			ID:           other.ID,
			Name:         other.Name,
			Description:  other.Description,
			Similarities: similarities(c, other),
			Differences:  differences(c, other),
		})
	}
	return out, nil
}

// commonProperties lists the first component's properties present on all.
func commonProperties(components []*types.Component) []string {
	out := []string{}
	for _, key := range sortedKeys(components[0].Properties) {
		shared := true
		for _, c := range components[1:] {
			if _, ok := c.Properties[key]; !ok {
				shared = false
				break
			}
		}
		if shared {
			out = append(out, key)
		}
	}
	return out
}

func uniqueProperties(c *types.Component, all []*types.Component) []string {
	out := []string{}
	for _, key := range sortedKeys(c.Properties) {
		unique := true
		for _, other := range all {
			if other.ID == c.ID {
				continue
			}
			if _, ok := other.Properties[key]; ok {
				unique = false
				break
			}
		}
		if unique {
			out = append(out, key)
		}
	}
	return out
}

func similarities(a, b *types.Component) []string {
	var out []string
	if a.Category == b.Category {
		out = append(out, fmt.Sprintf("Both are %s components", a.Category))
	}
	if n := len(commonProperties([]*types.Component{a, b})); n > 0 {
		out = append(out, fmt.Sprintf("Share %d common properties", n))
	}
	if len(out) == 0 {
		return []string{"No significant similarities found"}
	}
	return out
}

func differences(a, b *types.Component) []string {
	var out []string
	if len(a.Properties) != len(b.Properties) {
		out = append(out, fmt.Sprintf("%s has %d properties, while %s has %d",
			a.Name, len(a.Properties), b.Name, len(b.Properties)))
	}
	if a.IsExperimental != b.IsExperimental {
		state := func(c *types.Component) string {
			if c.IsExperimental {
				return "experimental"
			}
			return "stable"
		}
		out = append(out, fmt.Sprintf("%s is %s, while %s is %s", a.Name, state(a), b.Name, state(b)))
	}
	if len(out) == 0 {
		return []string{"No significant differences found"}
	}
	return out
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
