package docs

import (
	"fmt"

	"github.com/dshills/cloudscape-mcp/pkg/types"
)

// Accessibility describes how a component supports assistive technology.
type Accessibility struct {
	ComponentID         string            `json:"componentId"`
	Name                string            `json:"name"`
	AriaRoles           []string          `json:"ariaRoles"`
	KeyboardNavigation  map[string]string `json:"keyboardNavigation"`
	ScreenReaderSupport []string          `json:"screenReaderSupport"`
	BestPractices       []string          `json:"bestPractices"`
	CommonIssues        []string          `json:"commonIssues"`
}

var ariaRoles = map[string][]string{
	"button":   {"button"},
	"link":     {"link"},
	"checkbox": {"checkbox"},
	"table":    {"table", "grid"},
	"form":     {"form"},
	"alert":    {"alert"},
	"modal":    {"dialog"},
	"tabs":     {"tablist", "tab", "tabpanel"},
	"menu":     {"menu", "menuitem"},
	"select":   {"listbox", "option"},
}

var keyboardNavigation = map[string]map[string]string{
	"button":   {"Enter/Space": "Activates the button"},
	"link":     {"Enter": "Activates the link"},
	"checkbox": {"Space": "Toggles the checkbox"},
	"table": {
		"Tab":        "Moves focus to the next focusable element",
		"Arrow keys": "Navigates between cells",
		"Home/End":   "Moves to the first/last cell in a row",
	},
	"tabs": {
		"Tab":         "Moves focus to the next tab",
		"Arrow keys":  "Moves between tabs",
		"Enter/Space": "Activates the focused tab",
	},
}

var screenReaderSupport = map[string][]string{
	"button":   {"Announces button text", "Announces button state (disabled, pressed)"},
	"link":     {"Announces link text", "Announces if link opens in a new window"},
	"checkbox": {"Announces checkbox label", "Announces checkbox state (checked, unchecked, indeterminate)"},
	"table": {
		"Announces table caption",
		"Announces row and column headers",
		"Announces cell content with context",
	},
}

var accessibilityPractices = map[string][]string{
	"button": {
		"Use clear and concise button text",
		`Avoid generic text like "Click here"`,
		"Ensure sufficient color contrast",
	},
	"link": {
		"Use descriptive link text",
		`Avoid generic text like "Click here"`,
		"Indicate if links open in a new window",
	},
	"checkbox": {
		"Use clear and concise labels",
		"Group related checkboxes with fieldset and legend",
	},
	"table": {
		"Use proper table headers",
		"Include a caption or summary",
		"Keep tables simple and avoid complex nesting",
	},
}

var accessibilityIssues = map[string][]string{
	"button":   {"Missing accessible name", "Insufficient color contrast", "Not keyboard accessible"},
	"link":     {"Generic link text", "Missing indication for links opening in new windows", "Links that look like buttons"},
	"checkbox": {"Missing or unclear labels", "Not keyboard accessible", "Missing state changes announcement"},
	"table":    {"Missing table headers", "Complex tables without proper structure", "Missing caption or summary"},
}

var (
	defaultPractices = []string{
		"Follow WCAG 2.1 AA guidelines",
		"Ensure keyboard accessibility",
		"Provide text alternatives for non-text content",
		"Ensure sufficient color contrast",
	}
	defaultIssues = []string{
		"Insufficient color contrast",
		"Missing keyboard accessibility",
		"Missing text alternatives",
		"Missing ARIA attributes",
	}
)

// ComponentAccessibility reports ARIA roles, keyboard behaviour, screen
// reader support and accessibility guidance for a component. Components
// without specific data get generic guidance.
func (p *Provider) ComponentAccessibility(id string) (*Accessibility, error) {
	c, ok := p.lookup.Component(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrComponentNotFound, id)
	}

	a := &Accessibility{
		ComponentID:         c.ID,
		Name:                c.Name,
		AriaRoles:           lookupOr(ariaRoles, c.ID, []string{"none"}),
		KeyboardNavigation:  lookupOr(keyboardNavigation, c.ID, map[string]string{}),
		ScreenReaderSupport: lookupOr(screenReaderSupport, c.ID, []string{"Standard screen reader support"}),
		CommonIssues:        lookupOr(accessibilityIssues, c.ID, defaultIssues),
	}
	// Guidance shared with the documentation section follows the specific practices.
	practices := lookupOr(accessibilityPractices, c.ID, defaultPractices)
	a.BestPractices = append(append([]string{}, practices...), componentGuidance[SectionAccessibility][c.ID]...)
	return a, nil
}

func lookupOr[V any](m map[string]V, key string, def V) V {
	if v, ok := m[key]; ok {
		return v
	}
	return def
}
