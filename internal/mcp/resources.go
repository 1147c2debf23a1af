package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/cloudscape-mcp/internal/docs"
	"github.com/dshills/cloudscape-mcp/internal/validate"
)

// Resource URIs
const (
	resourceScheme        = "cloudscape://"
	componentsResourceURI = resourceScheme + "components"
	componentResourcePfx  = componentsResourceURI + "/"
	categoryResourcePfx   = resourceScheme + "categories/"
	patternResourcePfx    = resourceScheme + "patterns/"
	exampleResourcePfx    = resourceScheme + "examples/"
	jsonMIMEType          = "application/json"
)

// registerResources registers the catalogue resources
func (s *Server) registerResources() {
	s.mcp.AddResource(
		mcp.NewResource(componentsResourceURI, "Component Overview",
			mcp.WithResourceDescription("Every Cloudscape component with its category and description"),
			mcp.WithMIMEType(jsonMIMEType),
		),
		s.handleComponentsResource,
	)

	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(componentResourcePfx+"{componentId}", "Component Details",
			mcp.WithTemplateDescription("Component metadata with its markdown documentation"),
			mcp.WithTemplateMIMEType(jsonMIMEType),
		),
		s.handleComponentResource,
	)
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(categoryResourcePfx+"{categoryId}", "Category Details",
			mcp.WithTemplateDescription("Category metadata with its member components"),
			mcp.WithTemplateMIMEType(jsonMIMEType),
		),
		s.handleCategoryResource,
	)
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(patternResourcePfx+"{patternId}", "Pattern Details",
			mcp.WithTemplateDescription("Page pattern with its code and documentation"),
			mcp.WithTemplateMIMEType(jsonMIMEType),
		),
		s.handlePatternResource,
	)
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(exampleResourcePfx+"{exampleId}", "Example",
			mcp.WithTemplateDescription("Example code with its component name"),
			mcp.WithTemplateMIMEType(jsonMIMEType),
		),
		s.handleExampleResource,
	)
}

type componentSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	Description    string `json:"description"`
	IsExperimental bool   `json:"isExperimental"`
}

func (s *Server) handleComponentsResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	components := s.registry.AllComponents()
	out := make([]componentSummary, 0, len(components))
	for _, c := range components {
		out = append(out, componentSummary{
			ID:             c.ID,
			Name:           c.Name,
			Category:       c.Category,
			Description:    c.Description,
			IsExperimental: c.IsExperimental,
		})
	}
	return jsonContents(request.Params.URI, map[string]interface{}{
		"components":      out,
		"totalComponents": len(out),
	}), nil
}

func (s *Server) handleComponentResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	id, err := resourceID(request.Params.URI, componentResourcePfx, validate.KindComponent)
	if err != nil {
		return nil, err
	}

	c, err := s.component(id)
	if err != nil {
		return nil, resourceError(err)
	}
	doc, err := s.reads.componentDocs(docArgs{ID: id, Format: docs.FormatMarkdown})
	if err != nil {
		return nil, resourceError(err)
	}

	return jsonContents(request.Params.URI, map[string]interface{}{
		"id":             c.ID,
		"name":           c.Name,
		"category":       c.Category,
		"description":    c.Description,
		"importPath":     c.ImportPath,
		"version":        c.Version,
		"isExperimental": c.IsExperimental,
		"documentation":  doc,
	}), nil
}

func (s *Server) handleCategoryResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	id, err := resourceID(request.Params.URI, categoryResourcePfx, validate.KindCategory)
	if err != nil {
		return nil, err
	}

	doc, err := s.reads.categoryDocs(docArgs{ID: id, Format: docs.FormatMarkdown})
	if err != nil {
		return nil, resourceError(err)
	}
	cat, _ := s.registry.Category(id)

	return jsonContents(request.Params.URI, map[string]interface{}{
		"id":            cat.ID,
		"name":          cat.Name,
		"description":   cat.Description,
		"components":    doc.Components,
		"documentation": doc.Sections,
	}), nil
}

func (s *Server) handlePatternResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	id, err := resourceID(request.Params.URI, patternResourcePfx, validate.KindPattern)
	if err != nil {
		return nil, err
	}

	doc, err := s.reads.patternDocs(docArgs{ID: id, Format: docs.FormatMarkdown})
	if err != nil {
		return nil, resourceError(err)
	}
	pat, _ := s.registry.Pattern(id)

	return jsonContents(request.Params.URI, map[string]interface{}{
		"id":                   pat.ID,
		"name":                 pat.Name,
		"description":          pat.Description,
		"components":           doc.Components,
		"code":                 pat.Code,
		"customizationOptions": pat.CustomizationOptions,
		"documentation":        doc.Sections,
	}), nil
}

func (s *Server) handleExampleResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	id, err := resourceID(request.Params.URI, exampleResourcePfx, validate.KindExample)
	if err != nil {
		return nil, err
	}

	example, err := s.reads.example(id)
	if err != nil {
		return nil, resourceError(err)
	}
	return jsonContents(request.Params.URI, example), nil
}

// resourceID extracts and validates the identifier following prefix in uri.
func resourceID(uri, prefix, kind string) (string, error) {
	id := strings.TrimPrefix(uri, prefix)
	if id == uri || id == "" {
		return "", newMCPError(ErrorCodeInvalidParams, "invalid resource URI", map[string]interface{}{
			"uri": uri,
		})
	}
	if err := validate.ID(kind, id); err != nil {
		return "", newMCPError(ErrorCodeInvalidParams, err.Error(), map[string]interface{}{
			"uri": uri,
		})
	}
	return id, nil
}

func resourceError(err error) error {
	if isNotFound(err) {
		return newMCPError(ErrorCodeNotFound, err.Error(), nil)
	}
	return newMCPError(ErrorCodeInternalError, "internal error", map[string]interface{}{
		"error": err.Error(),
	})
}

func jsonContents(uri string, v interface{}) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: jsonMIMEType,
			Text:     formatJSON(v),
		},
	}
}
