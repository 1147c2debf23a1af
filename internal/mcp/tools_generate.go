package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/cloudscape-mcp/internal/codegen"
	"github.com/dshills/cloudscape-mcp/internal/validate"
)

// handleGenerateComponentCode handles the generate_component_code tool invocation
func (s *Server) handleGenerateComponentCode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, id, err := componentArgs(request)
	if err != nil {
		return nil, err
	}

	handlers := map[string]string{}
	for name, v := range getObject(args, "eventHandlers") {
		expr, ok := v.(string)
		if !ok || !validate.PropertyID(name) {
			return nil, newMCPError(ErrorCodeInvalidParams, "invalid event handler", map[string]interface{}{
				"param":  "eventHandlers." + name,
				"reason": "name must be alphanumeric and value a string expression",
			})
		}
		handlers[name] = expr
	}

	props := getObject(args, "props")
	for name := range props {
		if !validate.PropertyID(name) {
			return nil, newMCPError(ErrorCodeInvalidParams, "invalid prop name", map[string]interface{}{
				"param": "props." + name,
			})
		}
	}

	res, err := s.reads.componentCode(codegen.ComponentRequest{
		ComponentID:    id,
		Props:          props,
		Children:       getStringDefault(args, "children", ""),
		EventHandlers:  handlers,
		TypeScript:     getBoolDefault(args, "typescript", false),
		Style:          codegen.ParseStyle(getStringDefault(args, "style", "")),
		IncludeImports: getBoolDefault(args, "includeImports", true),
	})
	if err != nil {
		return s.toolError(ctx, err)
	}
	return mcp.NewToolResultText(formatJSON(res)), nil
}

// handleGeneratePatternCode handles the generate_pattern_code tool invocation
func (s *Server) handleGeneratePatternCode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	id, ok := args["patternId"].(string)
	if !ok || id == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "patternId parameter is required", map[string]interface{}{
			"param":  "patternId",
			"reason": "missing or empty",
		})
	}
	if err := validate.ID(validate.KindPattern, id); err != nil {
		return nil, invalidParam("patternId", err)
	}

	res, err := s.reads.patternCode(codegen.PatternRequest{
		PatternID:      id,
		Customizations: validate.SanitizeMap(getObject(args, "customizations")),
		TypeScript:     getBoolDefault(args, "typescript", false),
		Style:          codegen.ParseStyle(getStringDefault(args, "style", "")),
		IncludeImports: getBoolDefault(args, "includeImports", true),
	})
	if err != nil {
		return s.toolError(ctx, err)
	}
	return mcp.NewToolResultText(formatJSON(res)), nil
}

// handleGenerateComponentInterface handles the generate_component_interface tool invocation
func (s *Server) handleGenerateComponentInterface(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, id, err := componentArgs(request)
	if err != nil {
		return nil, err
	}

	iface, err := s.reads.componentIface(id)
	if err != nil {
		return s.toolError(ctx, err)
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"componentId": id,
		"interface":   iface,
		"language":    "typescript",
	})), nil
}
