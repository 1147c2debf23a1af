// Package types provides shared type definitions for the Cloudscape MCP server.
//
// This package defines the catalogue records served by the registry and
// consumed by search, documentation, code generation and the MCP tools.
//
// # Core Types
//
// Component is the metadata record for one UI component:
//
//	button := &types.Component{
//	    ID:         "button",
//	    Name:       "Button",
//	    Category:   "input",
//	    ImportPath: "@cloudscape-design/components/button",
//	    Tags:       []string{"input", "action"},
//	}
//
// Category, Pattern and Example complete the catalogue. Records are created
// once when the catalogue is loaded and are never mutated afterwards; every
// consumer treats them as read-only.
//
// # Validation
//
// Identifiers are lowercase, digit and hyphen strings:
//
//	if err := button.Validate(); err != nil {
//	    return fmt.Errorf("load component: %w", err)
//	}
package types
