package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readResource(t *testing.T, handler server.ResourceHandlerFunc, uri string) (map[string]interface{}, error) {
	t.Helper()
	request := mcp.ReadResourceRequest{}
	request.Params.URI = uri

	contents, err := handler(context.Background(), request)
	if err != nil {
		return nil, err
	}
	require.Len(t, contents, 1)
	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, uri, text.URI)
	assert.Equal(t, jsonMIMEType, text.MIMEType)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &out))
	return out, nil
}

func TestResources(t *testing.T) {
	s := newTestServer(t)

	t.Run("components overview", func(t *testing.T) {
		out, err := readResource(t, s.handleComponentsResource, "cloudscape://components")
		require.NoError(t, err)
		assert.Equal(t, float64(len(s.registry.AllComponents())), out["totalComponents"])
	})

	t.Run("component", func(t *testing.T) {
		out, err := readResource(t, s.handleComponentResource, "cloudscape://components/button")
		require.NoError(t, err)
		assert.Equal(t, "Button", out["name"])
		doc := out["documentation"].(map[string]interface{})
		assert.Contains(t, doc["sections"], "overview")
	})

	t.Run("category", func(t *testing.T) {
		out, err := readResource(t, s.handleCategoryResource, "cloudscape://categories/layout")
		require.NoError(t, err)
		assert.Equal(t, "Layout", out["name"])
		assert.NotEmpty(t, out["components"])
	})

	t.Run("pattern", func(t *testing.T) {
		out, err := readResource(t, s.handlePatternResource, "cloudscape://patterns/data-table")
		require.NoError(t, err)
		assert.Equal(t, "Data Table", out["name"])
		assert.Contains(t, out["code"], "{{ pageSize }}")
	})

	t.Run("example", func(t *testing.T) {
		out, err := readResource(t, s.handleExampleResource, "cloudscape://examples/button-variants")
		require.NoError(t, err)
		assert.Equal(t, "button", out["component"])
		assert.Equal(t, "Button", out["componentName"])
	})
}

func TestResourceErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name    string
		handler server.ResourceHandlerFunc
		uri     string
		code    int
	}{
		{"unknown component", s.handleComponentResource, "cloudscape://components/nope", ErrorCodeNotFound},
		{"invalid component id", s.handleComponentResource, "cloudscape://components/Bad%20Id", ErrorCodeInvalidParams},
		{"empty id", s.handleComponentResource, "cloudscape://components/", ErrorCodeInvalidParams},
		{"unknown category", s.handleCategoryResource, "cloudscape://categories/nope", ErrorCodeNotFound},
		{"unknown pattern", s.handlePatternResource, "cloudscape://patterns/nope", ErrorCodeNotFound},
		{"unknown example", s.handleExampleResource, "cloudscape://examples/nope", ErrorCodeNotFound},
		{"wrong prefix", s.handleExampleResource, "cloudscape://patterns/data-table", ErrorCodeInvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readResource(t, tt.handler, tt.uri)
			requireMCPError(t, err, tt.code)
		})
	}
}
