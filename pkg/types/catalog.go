package types

// Category groups components by purpose
type Category struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Components  []string `json:"components" yaml:"components"`
}

// Pattern is a reusable composition of several components
type Pattern struct {
	ID                   string                         `json:"id" yaml:"id"`
	Name                 string                         `json:"name" yaml:"name"`
	Description          string                         `json:"description" yaml:"description"`
	Components           []string                       `json:"components" yaml:"components"`
	Code                 string                         `json:"code" yaml:"code"`
	CustomizationOptions map[string]CustomizationOption `json:"customizationOptions" yaml:"customizationOptions"`
}

// CustomizationOption is a placeholder that pattern code generation can substitute
type CustomizationOption struct {
	Name           string `json:"name" yaml:"name"`
	Type           string `json:"type" yaml:"type"`
	Description    string `json:"description" yaml:"description"`
	DefaultValue   any    `json:"defaultValue" yaml:"defaultValue"`
	AcceptedValues []any  `json:"acceptedValues,omitempty" yaml:"acceptedValues"`
}

// Example is a code sample attached to a component
type Example struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Component   string   `json:"component" yaml:"component"`
	Type        string   `json:"type" yaml:"type"`
	Code        string   `json:"code,omitempty" yaml:"code"`
	Tags        []string `json:"tags,omitempty" yaml:"tags"`
}

// Validate checks that the pattern can be stored and served
func (p *Pattern) Validate() error {
	if !ValidID(p.ID) {
		return ErrInvalidID
	}
	if p.Name == "" {
		return ErrEmptyName
	}
	return nil
}

// Validate checks that the category can be stored and served
func (c *Category) Validate() error {
	if !ValidID(c.ID) {
		return ErrInvalidID
	}
	return nil
}

// Validate checks that the example can be stored and served
func (e *Example) Validate() error {
	if e.ID == "" {
		return ErrInvalidID
	}
	if !ValidID(e.Component) {
		return ErrInvalidComponentRef
	}
	return nil
}
