package types

import "regexp"

// idPattern matches catalogue identifiers: lowercase letters, digits and hyphens.
var idPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Component is the metadata record for a single UI component
type Component struct {
	// Identification
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`

	// Classification
	Category       string   `json:"category" yaml:"category"`
	Description    string   `json:"description" yaml:"description"`
	ImportPath     string   `json:"importPath" yaml:"importPath"`
	IsExperimental bool     `json:"isExperimental" yaml:"isExperimental"`
	Tags           []string `json:"tags" yaml:"tags"`

	RelatedComponents []string `json:"relatedComponents" yaml:"relatedComponents"`

	// API surface
	Properties map[string]Property `json:"properties" yaml:"properties"`
	Events     map[string]Event    `json:"events" yaml:"events"`
	Functions  map[string]Function `json:"functions" yaml:"functions"`
	Regions    []Region            `json:"regions,omitempty" yaml:"regions"`

	Examples        []string `json:"examples" yaml:"examples"`
	UsageGuidelines string   `json:"usageGuidelines,omitempty" yaml:"usageGuidelines"`
}

// Property describes one prop accepted by a component
type Property struct {
	Name           string `json:"name" yaml:"name"`
	Type           string `json:"type" yaml:"type"`
	Description    string `json:"description" yaml:"description"`
	DefaultValue   any    `json:"defaultValue,omitempty" yaml:"defaultValue"`
	Required       bool   `json:"required" yaml:"required"`
	AcceptedValues []any  `json:"acceptedValues,omitempty" yaml:"acceptedValues"`
	IsDeprecated   bool   `json:"isDeprecated,omitempty" yaml:"isDeprecated"`
	Examples       []any  `json:"examples,omitempty" yaml:"examples"`
}

// Event describes a callback fired by a component
type Event struct {
	Name             string      `json:"name" yaml:"name"`
	Description      string      `json:"description" yaml:"description"`
	Cancelable       bool        `json:"cancelable" yaml:"cancelable"`
	DetailType       string      `json:"detailType,omitempty" yaml:"detailType"`
	DetailProperties []Parameter `json:"detailProperties,omitempty" yaml:"detailProperties"`
}

// Function describes an imperative method exposed through a component ref
type Function struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	ReturnType  string      `json:"returnType" yaml:"returnType"`
	Parameters  []Parameter `json:"parameters" yaml:"parameters"`
}

// Parameter is a named, typed argument or detail field
type Parameter struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Optional    bool   `json:"optional,omitempty" yaml:"optional"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// Region is a named content slot of a component
type Region struct {
	Name          string `json:"name" yaml:"name"`
	Description   string `json:"description" yaml:"description"`
	IsDefault     bool   `json:"isDefault" yaml:"isDefault"`
	DeprecatedTag string `json:"deprecatedTag,omitempty" yaml:"deprecatedTag"`
}

// Validate checks that the component can be stored and served
func (c *Component) Validate() error {
	if !ValidID(c.ID) {
		return ErrInvalidID
	}
	if c.Name == "" {
		return ErrEmptyName
	}
	return nil
}

// HasTag reports whether the component carries the exact tag
func (c *Component) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ValidID reports whether id is a well-formed catalogue identifier
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}
