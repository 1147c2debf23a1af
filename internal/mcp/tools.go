package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/dshills/cloudscape-mcp/internal/cache"
	"github.com/dshills/cloudscape-mcp/internal/docs"
	"github.com/dshills/cloudscape-mcp/internal/examples"
	"github.com/dshills/cloudscape-mcp/internal/logger"
	"github.com/dshills/cloudscape-mcp/internal/registry"
	"github.com/dshills/cloudscape-mcp/internal/searcher"
	"github.com/dshills/cloudscape-mcp/internal/validate"
	"github.com/dshills/cloudscape-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
	ErrorCodeNotFound      = -32001 // Requested catalogue record does not exist
	ErrorCodeEmptyQuery    = -32004 // Query parameter is empty
)

// handleSearchComponents handles the search_components tool invocation
func (s *Server) handleSearchComponents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		args = map[string]interface{}{}
	}

	sortOrder := getStringDefault(args, "sortOrder", searcher.SortDesc)
	if sortOrder != searcher.SortAsc && sortOrder != searcher.SortDesc {
		return nil, newMCPError(ErrorCodeInvalidParams, "sortOrder must be asc or desc", map[string]interface{}{
			"param": "sortOrder",
			"value": sortOrder,
		})
	}

	opts := searcher.SearchOptions{
		Query:          validate.Query(getStringDefault(args, "query", "")),
		Category:       getStringDefault(args, "category", ""),
		Tags:           getStringSlice(args, "tags"),
		Filters:        getObject(args, "filters"),
		Limit:          getIntPtr(args, "limit"),
		Offset:         getIntDefault(args, "offset", 0),
		FuzzyMatch:     getBoolDefault(args, "fuzzyMatch", false),
		FuzzyThreshold: getFloatPtr(args, "fuzzyThreshold"),
		SortBy:         getStringDefault(args, "sortBy", string(searcher.FieldRelevance)),
		SortOrder:      sortOrder,
	}

	results, err := s.reads.search(opts)
	if err != nil {
		return s.toolError(ctx, err)
	}
	return mcp.NewToolResultText(formatJSON(results)), nil
}

// handleSearchByFunctionality handles the search_components_by_functionality tool invocation
func (s *Server) handleSearchByFunctionality(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	functionality := validate.Query(getStringDefault(args, "functionality", ""))
	if strings.TrimSpace(functionality) == "" {
		return nil, newMCPError(ErrorCodeEmptyQuery, "functionality parameter is required and cannot be empty", map[string]interface{}{
			"param":  "functionality",
			"reason": "missing or empty",
		})
	}

	results, err := s.reads.functionality(searcher.SearchOptions{
		Query:      functionality,
		Limit:      getIntPtr(args, "limit"),
		FuzzyMatch: getBoolDefault(args, "fuzzyMatch", false),
	})
	if err != nil {
		return s.toolError(ctx, err)
	}
	return mcp.NewToolResultText(formatJSON(results)), nil
}

// handleGetComponentDetails handles the get_component_details tool invocation
func (s *Server) handleGetComponentDetails(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, id, err := componentArgs(request)
	if err != nil {
		return nil, err
	}

	details, err := s.reads.details(detailsArgs{
		ComponentID:              id,
		IncludeExamples:          getBoolDefault(args, "includeExamples", true),
		IncludeRelatedComponents: getBoolDefault(args, "includeRelatedComponents", true),
		IncludeProperties:        getBoolDefault(args, "includeProperties", true),
	})
	if err != nil {
		return s.toolError(ctx, err)
	}
	return mcp.NewToolResultText(formatJSON(details)), nil
}

// handleGetComponentProperties handles the get_component_properties tool invocation
func (s *Server) handleGetComponentProperties(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, id, err := componentArgs(request)
	if err != nil {
		return nil, err
	}

	filter := getObject(args, "filter")
	query := propertiesArgs{
		ComponentID: id,
		Required:    getBoolPtr(filter, "required"),
		Deprecated:  getBoolPtr(filter, "deprecated"),
		Type:        getStringDefault(filter, "type", ""),
		NamePattern: getStringDefault(filter, "namePattern", ""),
	}

	props, err := s.reads.properties(query)
	if err != nil {
		return s.toolError(ctx, err)
	}
	return mcp.NewToolResultText(formatJSON(props)), nil
}

// handleGetComponentEvents handles the get_component_events tool invocation
func (s *Server) handleGetComponentEvents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, id, err := componentArgs(request)
	if err != nil {
		return nil, err
	}

	events, err := s.reads.events(id)
	if err != nil {
		return s.toolError(ctx, err)
	}
	return mcp.NewToolResultText(formatJSON(events)), nil
}

// handleGetComponentAccessibility handles the get_component_accessibility tool invocation
func (s *Server) handleGetComponentAccessibility(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, id, err := componentArgs(request)
	if err != nil {
		return nil, err
	}

	info, err := s.reads.accessibility(id)
	if err != nil {
		return s.toolError(ctx, err)
	}
	return mcp.NewToolResultText(formatJSON(info)), nil
}

// handleGetComponentVersions handles the get_component_versions tool invocation
func (s *Server) handleGetComponentVersions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, id, err := componentArgs(request)
	if err != nil {
		return nil, err
	}

	info, err := s.reads.versions(id)
	if err != nil {
		return s.toolError(ctx, err)
	}
	return mcp.NewToolResultText(formatJSON(info)), nil
}

// handleGetComponentDependencies handles the get_component_dependencies tool invocation
func (s *Server) handleGetComponentDependencies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, id, err := componentArgs(request)
	if err != nil {
		return nil, err
	}

	deps, err := s.reads.dependencies(id)
	if err != nil {
		return s.toolError(ctx, err)
	}
	return mcp.NewToolResultText(formatJSON(deps)), nil
}

// handleGetComponentPatterns handles the get_component_patterns tool invocation
func (s *Server) handleGetComponentPatterns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, id, err := componentArgs(request)
	if err != nil {
		return nil, err
	}

	patterns, err := s.reads.patterns(limitArgs{ID: id, Limit: getIntDefault(args, "limit", 5)})
	if err != nil {
		return s.toolError(ctx, err)
	}
	return mcp.NewToolResultText(formatJSON(patterns)), nil
}

// handleCompareComponents handles the compare_components tool invocation
func (s *Server) handleCompareComponents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	ids := getStringSlice(args, "componentIds")
	if len(ids) == 0 {
		return nil, newMCPError(ErrorCodeInvalidParams, "componentIds parameter is required", map[string]interface{}{
			"param":  "componentIds",
			"reason": "missing or empty",
		})
	}
	for _, id := range ids {
		if err := validate.ID(validate.KindComponent, id); err != nil {
			return nil, invalidParam("componentIds", err)
		}
	}

	cmp, err := s.reads.compare(ids)
	if err != nil {
		return s.toolError(ctx, err)
	}
	return mcp.NewToolResultText(formatJSON(cmp)), nil
}

// handleGetComponentAlternatives handles the get_component_alternatives tool invocation
func (s *Server) handleGetComponentAlternatives(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, id, err := componentArgs(request)
	if err != nil {
		return nil, err
	}

	alts, err := s.reads.alternatives(limitArgs{ID: id, Limit: getIntDefault(args, "limit", 3)})
	if err != nil {
		return s.toolError(ctx, err)
	}
	return mcp.NewToolResultText(formatJSON(alts)), nil
}

// handleSearchProperties handles the search_properties tool invocation
func (s *Server) handleSearchProperties(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		args = map[string]interface{}{}
	}

	componentID := getStringDefault(args, "componentId", "")
	if componentID != "" {
		if err := validate.ID(validate.KindComponent, componentID); err != nil {
			return nil, invalidParam("componentId", err)
		}
	}

	matches, err := s.reads.searchProperties(registry.PropertyQuery{
		Query:       validate.Query(getStringDefault(args, "query", "")),
		Type:        getStringDefault(args, "type", ""),
		Required:    getBoolPtr(args, "required"),
		Deprecated:  getBoolPtr(args, "deprecated"),
		ComponentID: componentID,
	})
	if err != nil {
		return s.toolError(ctx, err)
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"results":      matches,
		"totalResults": len(matches),
	})), nil
}

// handleSearchUsageGuidelines handles the search_usage_guidelines tool invocation
func (s *Server) handleSearchUsageGuidelines(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		args = map[string]interface{}{}
	}

	componentID := getStringDefault(args, "componentId", "")
	if componentID != "" {
		if err := validate.ID(validate.KindComponent, componentID); err != nil {
			return nil, invalidParam("componentId", err)
		}
	}

	matches, err := s.reads.searchUsage(registry.UsageQuery{
		Query:       validate.Query(getStringDefault(args, "query", "")),
		Section:     validate.Query(getStringDefault(args, "section", "")),
		ComponentID: componentID,
	})
	if err != nil {
		return s.toolError(ctx, err)
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"results":      matches,
		"totalResults": len(matches),
	})), nil
}

// handleGetComponentExamples handles the get_component_examples tool invocation
func (s *Server) handleGetComponentExamples(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, id, err := componentArgs(request)
	if err != nil {
		return nil, err
	}

	page, err := s.reads.examples(examples.Request{
		ComponentID: id,
		Type:        getStringDefault(args, "type", ""),
		Tags:        getStringSlice(args, "tags"),
		Limit:       getIntDefault(args, "limit", 5),
		Offset:      getIntDefault(args, "offset", 0),
	})
	if err != nil {
		return s.toolError(ctx, err)
	}
	return mcp.NewToolResultText(formatJSON(page)), nil
}

// handleSearchExamples handles the search_examples tool invocation
func (s *Server) handleSearchExamples(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	query := validate.Query(getStringDefault(args, "query", ""))
	exampleType := getStringDefault(args, "type", "")
	limit := getIntDefault(args, "limit", examples.DefaultLimit)
	offset := getIntDefault(args, "offset", 0)

	var (
		page *examples.Page
		err  error
	)
	switch {
	case strings.TrimSpace(query) != "":
		page, err = s.reads.searchExamples(examples.SearchRequest{
			Query:  query,
			Tags:   getStringSlice(args, "tags"),
			Limit:  limit,
			Offset: offset,
		})
	case exampleType != "":
		page, err = s.reads.examplesByType(byTypeArgs{Type: exampleType, Limit: limit, Offset: offset})
	default:
		return nil, newMCPError(ErrorCodeEmptyQuery, "query or type parameter is required", map[string]interface{}{
			"param":  "query",
			"reason": "missing or empty",
		})
	}
	if err != nil {
		return s.toolError(ctx, err)
	}
	return mcp.NewToolResultText(formatJSON(page)), nil
}

// handleGetExampleCategories handles the get_example_categories tool invocation
func (s *Server) handleGetExampleCategories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	index, err := s.reads.exampleIndex(struct{}{})
	if err != nil {
		return s.toolError(ctx, err)
	}
	return mcp.NewToolResultText(formatJSON(index)), nil
}

// handleSearchDocumentation handles the search_documentation tool invocation
func (s *Server) handleSearchDocumentation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	res, err := s.reads.searchDocs(docSearchArgs{
		Query: validate.Query(getStringDefault(args, "query", "")),
		Scope: docs.Scope(getStringDefault(args, "scope", string(docs.ScopeAll))),
		Limit: getIntDefault(args, "limit", docs.DefaultSearchLimit),
	})
	if err != nil {
		return s.toolError(ctx, err)
	}
	return mcp.NewToolResultText(formatJSON(res)), nil
}

// handleGetComponentDocumentation handles the get_component_documentation tool invocation
func (s *Server) handleGetComponentDocumentation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, id, err := componentArgs(request)
	if err != nil {
		return nil, err
	}

	doc, err := s.reads.componentDocs(docArgs{
		ID:      id,
		Section: docs.Section(getStringDefault(args, "section", "")),
		Format:  docs.ParseFormat(getStringDefault(args, "format", "")),
	})
	if err != nil {
		return s.toolError(ctx, err)
	}
	return mcp.NewToolResultText(formatJSON(doc)), nil
}

// handleValidateComponentProps handles the validate_component_props tool invocation
func (s *Server) handleValidateComponentProps(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, id, err := componentArgs(request)
	if err != nil {
		return nil, err
	}

	props, ok := args["props"].(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "props parameter is required", map[string]interface{}{
			"param":  "props",
			"reason": "missing or not an object",
		})
	}

	c, err := s.component(id)
	if err != nil {
		return s.toolError(ctx, err)
	}
	return mcp.NewToolResultText(formatJSON(validate.ValidateProps(c, props))), nil
}

// handleClearCache handles the clear_cache tool invocation
func (s *Server) handleClearCache(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		args = map[string]interface{}{}
	}

	cleared := s.cache.Types()
	if name := getStringDefault(args, "cacheType", ""); name != "" {
		cleared = []cache.Type{cache.Type(name)}
	}
	if err := s.cache.Clear(cleared...); err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "unknown cache type", map[string]interface{}{
			"param":  "cacheType",
			"reason": err.Error(),
		})
	}

	logger.FromContext(ctx).Info("cache cleared", zap.Any("buckets", cleared))
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"cleared": cleared,
	})), nil
}

// Helper functions

// componentArgs extracts the arguments and a validated componentId.
func componentArgs(request mcp.CallToolRequest) (map[string]interface{}, string, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, "", newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	id, ok := args["componentId"].(string)
	if !ok || id == "" {
		return nil, "", newMCPError(ErrorCodeInvalidParams, "componentId parameter is required", map[string]interface{}{
			"param":  "componentId",
			"reason": "missing or empty",
		})
	}
	if err := validate.ID(validate.KindComponent, id); err != nil {
		return nil, "", invalidParam("componentId", err)
	}
	return args, id, nil
}

// toolError maps a domain error to a tool result or protocol error.
// Missing records are reported to the model as tool errors so it can retry
// with another id.
func (s *Server) toolError(ctx context.Context, err error) (*mcp.CallToolResult, error) {
	switch {
	case isNotFound(err), errors.Is(err, registry.ErrNothingToCompare):
		return mcp.NewToolResultError(err.Error()), nil
	case errors.Is(err, types.ErrEmptyQuery):
		return nil, newMCPError(ErrorCodeEmptyQuery, "query parameter is required and cannot be empty", map[string]interface{}{
			"param":  "query",
			"reason": "missing or empty",
		})
	case errors.Is(err, types.ErrInvalidID), errors.Is(err, docs.ErrInvalidScope), errors.Is(err, examples.ErrTypeRequired):
		return nil, newMCPError(ErrorCodeInvalidParams, err.Error(), nil)
	case errors.Is(err, errInvalidNamePattern):
		return nil, newMCPError(ErrorCodeInvalidParams, err.Error(), map[string]interface{}{
			"param": "filter.namePattern",
		})
	default:
		logger.FromContext(ctx).Error("tool failed", zap.Error(err))
		return nil, newMCPError(ErrorCodeInternalError, "internal error", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, types.ErrComponentNotFound) ||
		errors.Is(err, types.ErrPatternNotFound) ||
		errors.Is(err, types.ErrCategoryNotFound) ||
		errors.Is(err, types.ErrExampleNotFound)
}

func invalidParam(param string, err error) error {
	return newMCPError(ErrorCodeInvalidParams, "invalid "+param, map[string]interface{}{
		"param":  param,
		"reason": err.Error(),
	})
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a value as indented JSON
func formatJSON(data interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getBoolPtr extracts an optional boolean parameter
func getBoolPtr(args map[string]interface{}, key string) *bool {
	if val, ok := args[key].(bool); ok {
		return &val
	}
	return nil
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getIntPtr extracts an optional integer parameter, nil when absent
func getIntPtr(args map[string]interface{}, key string) *int {
	switch val := args[key].(type) {
	case float64:
		n := int(val)
		return &n
	case int:
		return &val
	}
	return nil
}

// getFloatPtr extracts an optional number parameter, nil when absent
func getFloatPtr(args map[string]interface{}, key string) *float64 {
	switch val := args[key].(type) {
	case float64:
		return &val
	case int:
		f := float64(val)
		return &f
	}
	return nil
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

// getStringSlice extracts a string array parameter, skipping non-string items
func getStringSlice(args map[string]interface{}, key string) []string {
	switch val := args[key].(type) {
	case []string:
		return val
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// getObject extracts an object parameter
func getObject(args map[string]interface{}, key string) map[string]interface{} {
	if val, ok := args[key].(map[string]interface{}); ok {
		return val
	}
	return nil
}
