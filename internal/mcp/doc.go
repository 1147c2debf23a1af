// Package mcp implements the Model Context Protocol (MCP) server for the
// Cloudscape component catalogue.
//
// The server exposes the catalogue to AI coding assistants as tools and
// resources. Every read goes through the memoizing cache; each tool owns a
// key prefix inside one of the cache buckets (componentSearch,
// componentDetails, componentCode, patternCode, documentation, examples).
//
// # Tools
//
// Search:
//   - search_components: ranked component search with filters, fuzzy
//     matching, sorting and pagination
//   - search_components_by_functionality: search by a described capability
//   - search_properties: property search across components
//   - search_usage_guidelines: section-aware usage guideline search
//
// Component metadata:
//   - get_component_details, get_component_properties, get_component_events
//   - get_component_patterns, get_component_alternatives
//   - get_component_accessibility: ARIA roles, keyboard and screen reader
//     support, accessibility practices and common issues
//   - get_component_versions, get_component_dependencies
//   - compare_components: common and unique properties; for exactly two
//     components also a line diff of their TypeScript props interfaces
//   - validate_component_props
//
// Examples:
//   - get_component_examples, search_examples, get_example_categories
//
// Code generation:
//   - generate_component_code, generate_pattern_code,
//     generate_component_interface
//
// Documentation:
//   - search_documentation, get_component_documentation
//
// Maintenance:
//   - clear_cache: clears one bucket or all of them
//
// # Resources
//
//	cloudscape://components                  every component, summarised
//	cloudscape://components/{componentId}    component metadata and docs
//	cloudscape://categories/{categoryId}     category and member components
//	cloudscape://patterns/{patternId}        pattern code and docs
//	cloudscape://examples/{exampleId}        example code
//
// # Example
//
//	Request:
//	{
//	  "name": "search_components",
//	  "arguments": {"query": "button", "limit": 2}
//	}
//
//	Response:
//	{
//	  "results": [
//	    {"id": "button", "name": "Button", ...}
//	  ],
//	  "totalResults": 1,
//	  "query": "button",
//	  "limit": 2,
//	  "offset": 0
//	}
//
// # Errors
//
// Malformed arguments and identifiers that fail validation are returned as
// JSON-RPC errors (-32602 invalid params, -32004 empty query). Unknown
// components, patterns, categories and examples are returned as tool
// results with isError set, so the model can retry with another id.
// Resources report them with -32001.
//
// # Transports
//
// Serve runs the server over stdio; stdout carries only protocol messages
// and logs go to stderr. MCPServer exposes the protocol server so the HTTP
// transport can serve it over SSE.
package mcp
