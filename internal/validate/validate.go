// Package validate checks identifiers and component props received from MCP
// clients and strips unsafe content from free-form input.
package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dshills/cloudscape-mcp/pkg/types"
)

var (
	lowerIDRe   = regexp.MustCompile(`^[a-z0-9-]+$`)
	propertyRe  = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
	exampleIDRe = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

// Kinds of identifier checked by ID.
const (
	KindComponent = "component"
	KindPattern   = "pattern"
	KindCategory  = "category"
	KindExample   = "example"
	KindProperty  = "property"
)

// ComponentID reports whether id is a valid component id.
func ComponentID(id string) bool { return lowerIDRe.MatchString(id) }

// PatternID reports whether id is a valid pattern id.
func PatternID(id string) bool { return lowerIDRe.MatchString(id) }

// CategoryID reports whether id is a valid category id.
func CategoryID(id string) bool { return lowerIDRe.MatchString(id) }

// ExampleID reports whether id is a valid example id. Underscores are
// allowed for ids derived from example file names.
func ExampleID(id string) bool { return exampleIDRe.MatchString(id) }

// PropertyID reports whether id is a valid property name.
func PropertyID(id string) bool { return propertyRe.MatchString(id) }

// ID checks id against the rule for kind and returns an error wrapping
// types.ErrInvalidID when it does not match.
func ID(kind, id string) error {
	var ok bool
	switch kind {
	case KindComponent:
		ok = ComponentID(id)
	case KindPattern:
		ok = PatternID(id)
	case KindCategory:
		ok = CategoryID(id)
	case KindExample:
		ok = ExampleID(id)
	case KindProperty:
		ok = PropertyID(id)
	default:
		return fmt.Errorf("unknown identifier kind %q", kind)
	}
	if !ok {
		return fmt.Errorf("%w: %s ID %q", types.ErrInvalidID, kind, id)
	}
	return nil
}

// PropsResult reports the outcome of ValidateProps.
type PropsResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidateProps checks props against a component's property definitions.
// Unknown props are warnings; missing or null required props and type
// mismatches are errors. Messages are ordered by prop name.
func ValidateProps(c *types.Component, props map[string]any) *PropsResult {
	res := &PropsResult{IsValid: true, Errors: []string{}, Warnings: []string{}}
	fail := func(format string, args ...any) {
		res.IsValid = false
		res.Errors = append(res.Errors, fmt.Sprintf(format, args...))
	}

	for _, key := range sortedKeys(props) {
		value := props[key]
		def, ok := c.Properties[key]
		switch {
		case !ok:
			res.Warnings = append(res.Warnings, "Unknown property: "+key)
		case value == nil:
			if def.Required {
				fail("Required property %s is missing", key)
			}
		case !TypeMatches(value, def.Type):
			fail("Property %s has invalid type: expected %s", key, def.Type)
		}
	}

	for _, key := range sortedKeys(c.Properties) {
		if !c.Properties[key].Required {
			continue
		}
		if _, ok := props[key]; !ok {
			fail("Required property %s is missing", key)
		}
	}
	return res
}

// TypeMatches reports whether a JSON-decoded value fits a catalogue type
// expression. Unions match when any member matches, quoted members are
// literals, and unrecognised types accept any value.
func TypeMatches(value any, typ string) bool {
	typ = strings.TrimSpace(typ)
	if strings.Contains(typ, "|") {
		for _, part := range strings.Split(typ, "|") {
			if TypeMatches(value, part) {
				return true
			}
		}
		return false
	}
	if len(typ) >= 2 && (typ[0] == '"' || typ[0] == '\'') && typ[len(typ)-1] == typ[0] {
		s, ok := value.(string)
		return ok && s == typ[1:len(typ)-1]
	}
	if strings.HasSuffix(typ, "[]") {
		_, ok := value.([]any)
		return ok
	}

	switch strings.ToLower(typ) {
	case "string":
		_, ok := value.(string)
		return ok
	case "number":
		switch value.(type) {
		case float64, float32, int, int64:
			return true
		}
		return false
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "array":
		_, ok := value.([]any)
		return ok
	case "object":
		_, ok := value.(map[string]any)
		return ok
	case "function":
		// functions arrive as source text
		_, ok := value.(string)
		return ok
	case "node", "element", "react.reactnode":
		switch value.(type) {
		case string, float64, map[string]any, []any:
			return true
		}
		return false
	default:
		return true
	}
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
