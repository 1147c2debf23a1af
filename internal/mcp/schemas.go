package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var componentIDProperty = map[string]interface{}{
	"type":        "string",
	"description": "Component ID (lowercase letters, digits and hyphens, e.g. 'button')",
}

// searchComponentsTool returns the tool definition for search_components
func searchComponentsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_components",
		Description: "Search Cloudscape components by name, description or tags with optional fuzzy matching, filters, sorting and pagination",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query; empty lists every component",
				},
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Restrict results to one category (e.g. 'layout', 'input')",
				},
				"tags": map[string]interface{}{
					"type":        "array",
					"description": "Only return components carrying at least one of these tags",
					"items":       map[string]interface{}{"type": "string"},
				},
				"filters": map[string]interface{}{
					"type":        "object",
					"description": "Field equality filters; array values match when any element is present",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return",
					"default":     10,
				},
				"offset": map[string]interface{}{
					"type":        "integer",
					"description": "Number of results to skip",
					"default":     0,
				},
				"fuzzyMatch": map[string]interface{}{
					"type":        "boolean",
					"description": "Also match words within the fuzzy threshold",
					"default":     false,
				},
				"fuzzyThreshold": map[string]interface{}{
					"type":        "number",
					"description": "Minimum similarity (0-1) for a fuzzy match",
					"default":     0.7,
				},
				"sortBy": map[string]interface{}{
					"type":        "string",
					"description": "Field to sort by (relevance, name, id, category, version)",
					"default":     "relevance",
				},
				"sortOrder": map[string]interface{}{
					"type":        "string",
					"description": "Sort order",
					"enum":        []string{"asc", "desc"},
					"default":     "desc",
				},
			},
		},
	}
}

// searchByFunctionalityTool returns the tool definition for search_components_by_functionality
func searchByFunctionalityTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_components_by_functionality",
		Description: "Find components that provide a described functionality (e.g. 'date selection')",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"functionality": map[string]interface{}{
					"type":        "string",
					"description": "Description of the functionality needed",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return",
					"default":     10,
				},
				"fuzzyMatch": map[string]interface{}{
					"type":        "boolean",
					"description": "Also match words within the fuzzy threshold",
					"default":     false,
				},
			},
			Required: []string{"functionality"},
		},
	}
}

// getComponentDetailsTool returns the tool definition for get_component_details
func getComponentDetailsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_component_details",
		Description: "Get detailed information about a component",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"componentId": componentIDProperty,
				"includeExamples": map[string]interface{}{
					"type":        "boolean",
					"description": "Include up to five example summaries",
					"default":     true,
				},
				"includeRelatedComponents": map[string]interface{}{
					"type":        "boolean",
					"description": "Include related components",
					"default":     true,
				},
				"includeProperties": map[string]interface{}{
					"type":        "boolean",
					"description": "Include property definitions",
					"default":     true,
				},
			},
			Required: []string{"componentId"},
		},
	}
}

// getComponentPropertiesTool returns the tool definition for get_component_properties
func getComponentPropertiesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_component_properties",
		Description: "Retrieve property definitions for a component",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"componentId": componentIDProperty,
				"filter": map[string]interface{}{
					"type":        "object",
					"description": "Optional property filters",
					"properties": map[string]interface{}{
						"required":    map[string]interface{}{"type": "boolean", "description": "Filter by required status"},
						"deprecated":  map[string]interface{}{"type": "boolean", "description": "Filter by deprecated status"},
						"type":        map[string]interface{}{"type": "string", "description": "Filter by property type"},
						"namePattern": map[string]interface{}{"type": "string", "description": "Regular expression the property name must match"},
					},
				},
			},
			Required: []string{"componentId"},
		},
	}
}

// getComponentEventsTool returns the tool definition for get_component_events
func getComponentEventsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_component_events",
		Description: "Get the events a component emits and its event handler props",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"componentId": componentIDProperty},
			Required:   []string{"componentId"},
		},
	}
}

// getComponentAccessibilityTool returns the tool definition for get_component_accessibility
func getComponentAccessibilityTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_component_accessibility",
		Description: "Get accessibility information and best practices for a component",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"componentId": componentIDProperty},
			Required:   []string{"componentId"},
		},
	}
}

// getComponentVersionsTool returns the tool definition for get_component_versions
func getComponentVersionsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_component_versions",
		Description: "Get the release, stability and deprecated API of a component",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"componentId": componentIDProperty},
			Required:   []string{"componentId"},
		},
	}
}

// getComponentDependenciesTool returns the tool definition for get_component_dependencies
func getComponentDependenciesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_component_dependencies",
		Description: "Get the packages required to use a component",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"componentId": componentIDProperty},
			Required:   []string{"componentId"},
		},
	}
}

// getComponentExamplesTool returns the tool definition for get_component_examples
func getComponentExamplesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_component_examples",
		Description: "Get usage examples for a component",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"componentId": componentIDProperty,
				"type": map[string]interface{}{
					"type":        "string",
					"description": "Example type (e.g. 'basic', 'variants')",
				},
				"tags": map[string]interface{}{
					"type":        "array",
					"description": "Only return examples carrying at least one of these tags",
					"items":       map[string]interface{}{"type": "string"},
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of examples to return",
					"default":     5,
				},
				"offset": map[string]interface{}{
					"type":        "integer",
					"description": "Number of examples to skip",
					"default":     0,
				},
			},
			Required: []string{"componentId"},
		},
	}
}

// searchExamplesTool returns the tool definition for search_examples
func searchExamplesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_examples",
		Description: "Search examples across all components by text, or list examples of one type",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Text matched against example name, description, component, code and tags",
				},
				"type": map[string]interface{}{
					"type":        "string",
					"description": "List examples of this type when no query is given",
				},
				"tags": map[string]interface{}{
					"type":        "array",
					"description": "Only return examples carrying at least one of these tags",
					"items":       map[string]interface{}{"type": "string"},
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of examples to return",
					"default":     10,
				},
				"offset": map[string]interface{}{
					"type":        "integer",
					"description": "Number of examples to skip",
					"default":     0,
				},
			},
		},
	}
}

// getExampleCategoriesTool returns the tool definition for get_example_categories
func getExampleCategoriesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_example_categories",
		Description: "List example types and tags with the number of examples for each",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

var codeStyleProperties = map[string]interface{}{
	"typescript": map[string]interface{}{
		"type":        "boolean",
		"description": "Generate TypeScript (tsx) instead of JavaScript (jsx)",
		"default":     false,
	},
	"style": map[string]interface{}{
		"type":        "string",
		"description": "Code layout",
		"enum":        []string{"compact", "expanded"},
		"default":     "expanded",
	},
	"includeImports": map[string]interface{}{
		"type":        "boolean",
		"description": "Prefix the code with its import statements",
		"default":     true,
	},
}

func withCodeStyle(props map[string]interface{}) map[string]interface{} {
	for k, v := range codeStyleProperties {
		props[k] = v
	}
	return props
}

// generateComponentCodeTool returns the tool definition for generate_component_code
func generateComponentCodeTool() mcp.Tool {
	return mcp.Tool{
		Name:        "generate_component_code",
		Description: "Generate JSX for a component with the given props, children and event handlers",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: withCodeStyle(map[string]interface{}{
				"componentId": componentIDProperty,
				"props": map[string]interface{}{
					"type":        "object",
					"description": "Prop values; strings containing '=>' are emitted as expressions",
				},
				"children": map[string]interface{}{
					"type":        "string",
					"description": "Element children",
				},
				"eventHandlers": map[string]interface{}{
					"type":                 "object",
					"description":          "Event handler props mapped to handler expressions",
					"additionalProperties": map[string]interface{}{"type": "string"},
				},
			}),
			Required: []string{"componentId"},
		},
	}
}

// generatePatternCodeTool returns the tool definition for generate_pattern_code
func generatePatternCodeTool() mcp.Tool {
	return mcp.Tool{
		Name:        "generate_pattern_code",
		Description: "Generate code for a page pattern, filling its customization placeholders",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: withCodeStyle(map[string]interface{}{
				"patternId": map[string]interface{}{
					"type":        "string",
					"description": "Pattern ID (e.g. 'data-table')",
				},
				"customizations": map[string]interface{}{
					"type":        "object",
					"description": "Values for the pattern's customization options",
				},
			}),
			Required: []string{"patternId"},
		},
	}
}

// generateComponentInterfaceTool returns the tool definition for generate_component_interface
func generateComponentInterfaceTool() mcp.Tool {
	return mcp.Tool{
		Name:        "generate_component_interface",
		Description: "Generate the TypeScript props interface of a component",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"componentId": componentIDProperty},
			Required:   []string{"componentId"},
		},
	}
}

// searchDocumentationTool returns the tool definition for search_documentation
func searchDocumentationTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_documentation",
		Description: "Search component, category and pattern documentation",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"scope": map[string]interface{}{
					"type":        "string",
					"description": "Documents to search",
					"enum":        []string{"all", "components", "categories", "patterns"},
					"default":     "all",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return",
					"default":     10,
				},
			},
			Required: []string{"query"},
		},
	}
}

// getComponentDocumentationTool returns the tool definition for get_component_documentation
func getComponentDocumentationTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_component_documentation",
		Description: "Get documentation for a component, optionally a single section, as markdown, html or plain text",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"componentId": componentIDProperty,
				"section": map[string]interface{}{
					"type":        "string",
					"description": "Single section to return",
					"enum": []string{
						"overview", "props", "usage", "accessibility", "design",
						"bestPractices", "commonPitfalls", "migrationGuides", "examples",
					},
				},
				"format": map[string]interface{}{
					"type":        "string",
					"description": "Output format",
					"enum":        []string{"markdown", "html", "plain"},
					"default":     "markdown",
				},
			},
			Required: []string{"componentId"},
		},
	}
}

// validateComponentPropsTool returns the tool definition for validate_component_props
func validateComponentPropsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "validate_component_props",
		Description: "Check props against a component's property definitions",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"componentId": componentIDProperty,
				"props": map[string]interface{}{
					"type":        "object",
					"description": "Props to validate",
				},
			},
			Required: []string{"componentId", "props"},
		},
	}
}

// getComponentPatternsTool returns the tool definition for get_component_patterns
func getComponentPatternsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_component_patterns",
		Description: "Get page patterns that use a component",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"componentId": componentIDProperty,
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of patterns to return",
					"default":     5,
				},
			},
			Required: []string{"componentId"},
		},
	}
}

// compareComponentsTool returns the tool definition for compare_components
func compareComponentsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "compare_components",
		Description: "Compare the properties of several components; two components also get a props interface diff",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"componentIds": map[string]interface{}{
					"type":        "array",
					"description": "Component IDs to compare",
					"items":       map[string]interface{}{"type": "string"},
					"minItems":    1,
				},
			},
			Required: []string{"componentIds"},
		},
	}
}

// getComponentAlternativesTool returns the tool definition for get_component_alternatives
func getComponentAlternativesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_component_alternatives",
		Description: "Get components from the same category that could be used instead",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"componentId": componentIDProperty,
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of alternatives to return",
					"default":     3,
				},
			},
			Required: []string{"componentId"},
		},
	}
}

// searchPropertiesTool returns the tool definition for search_properties
func searchPropertiesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_properties",
		Description: "Search properties across all components",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Text matched against property name and description",
				},
				"type": map[string]interface{}{
					"type":        "string",
					"description": "Exact property type",
				},
				"required": map[string]interface{}{
					"type":        "boolean",
					"description": "Filter by required status",
				},
				"deprecated": map[string]interface{}{
					"type":        "boolean",
					"description": "Filter by deprecated status",
				},
				"componentId": componentIDProperty,
			},
		},
	}
}

// searchUsageGuidelinesTool returns the tool definition for search_usage_guidelines
func searchUsageGuidelinesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_usage_guidelines",
		Description: "Search component usage guidelines by text and section header",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Text the guidelines must contain",
				},
				"section": map[string]interface{}{
					"type":        "string",
					"description": "Section header the guidelines must contain (e.g. 'When to use')",
				},
				"componentId": componentIDProperty,
			},
		},
	}
}

// clearCacheTool returns the tool definition for clear_cache
func clearCacheTool() mcp.Tool {
	return mcp.Tool{
		Name:        "clear_cache",
		Description: "Clear one cache bucket, or every bucket when none is given",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"cacheType": map[string]interface{}{
					"type":        "string",
					"description": "Bucket to clear",
					"enum": []string{
						"componentSearch", "componentDetails", "componentCode",
						"patternCode", "documentation", "examples",
					},
				},
			},
		},
	}
}
