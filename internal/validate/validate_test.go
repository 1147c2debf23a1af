package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/cloudscape-mcp/pkg/types"
)

func TestID(t *testing.T) {
	tests := []struct {
		kind    string
		id      string
		wantErr bool
	}{
		{KindComponent, "app-layout", false},
		{KindComponent, "App-Layout", true},
		{KindComponent, "", true},
		{KindComponent, "../etc/passwd", true},
		{KindPattern, "data-table", false},
		{KindCategory, "layout", false},
		{KindCategory, "lay out", true},
		{KindExample, "table-with_sorting", false},
		{KindExample, "table.basic", true},
		{KindProperty, "ariaLabel", false},
		{KindProperty, "aria_label", true},
	}

	for _, tt := range tests {
		t.Run(tt.kind+"/"+tt.id, func(t *testing.T) {
			err := ID(tt.kind, tt.id)
			if tt.wantErr {
				assert.ErrorIs(t, err, types.ErrInvalidID)
				return
			}
			assert.NoError(t, err)
		})
	}

	assert.Error(t, ID("widget", "x"))
}

func TestValidateProps(t *testing.T) {
	button := &types.Component{
		ID: "button",
		Properties: map[string]types.Property{
			"variant":  {Name: "variant", Type: `"normal" | "primary" | "link"`},
			"disabled": {Name: "disabled", Type: "boolean"},
			"text":     {Name: "text", Type: "string", Required: true},
			"onClick":  {Name: "onClick", Type: "function"},
			"items":    {Name: "items", Type: "string[]"},
		},
	}

	tests := []struct {
		name     string
		props    map[string]any
		valid    bool
		errors   []string
		warnings []string
	}{
		{
			name:  "valid",
			props: map[string]any{"text": "Save", "variant": "primary", "disabled": false, "onClick": "() => save()", "items": []any{"a"}},
			valid: true,
		},
		{
			name:     "unknown prop warns",
			props:    map[string]any{"text": "Save", "colour": "red"},
			valid:    true,
			warnings: []string{"Unknown property: colour"},
		},
		{
			name:   "missing required",
			props:  map[string]any{"disabled": true},
			errors: []string{"Required property text is missing"},
		},
		{
			name:   "null required",
			props:  map[string]any{"text": nil},
			errors: []string{"Required property text is missing"},
		},
		{
			name:  "type mismatches",
			props: map[string]any{"text": "Save", "disabled": "yes", "variant": "huge"},
			errors: []string{
				"Property disabled has invalid type: expected boolean",
				`Property variant has invalid type: expected "normal" | "primary" | "link"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateProps(button, tt.props)
			assert.Equal(t, tt.valid, res.IsValid)
			if tt.errors == nil {
				tt.errors = []string{}
			}
			if tt.warnings == nil {
				tt.warnings = []string{}
			}
			assert.Equal(t, tt.errors, res.Errors)
			assert.Equal(t, tt.warnings, res.Warnings)
		})
	}
}

func TestTypeMatches(t *testing.T) {
	tests := []struct {
		typ   string
		value any
		want  bool
	}{
		{"string", "x", true},
		{"string", 1.0, false},
		{"number", 1.0, true},
		{"number", "1", false},
		{"boolean", true, true},
		{"array", []any{}, true},
		{"object", map[string]any{}, true},
		{"object", []any{}, false},
		{"node", "text", true},
		{"node", true, false},
		{"string | number", 2.0, true},
		{"string | number", false, false},
		{"'a' | 'b'", "b", true},
		{"TableProps.ColumnDefinition", 42.0, true},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeMatches(tt.value, tt.typ))
		})
	}
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "scriptalert(1)/script", SanitizeString(`<script>alert(1)</script>`))
	assert.Equal(t, "Tom  Jerrys", SanitizeString(`Tom & Jerry's`))

	in := map[string]any{"a": "<b>", "nested": map[string]any{"c": []any{"d;", 1.0}}}
	out := SanitizeMap(in)
	assert.Equal(t, map[string]any{"a": "b", "nested": map[string]any{"c": []any{"d", 1.0}}}, out)
	assert.Equal(t, "<b>", in["a"], "input is not modified")
	assert.Nil(t, SanitizeMap(nil))

	code := SanitizeCode(`eval ("x"); new Function("y"); window.location = "/"; setTimeout(f)`)
	assert.Equal(t, `disabledEval("x"); disabledFunction("y"); disabledWindowLocation = "/"; disabledSetTimeout(f)`, code)
}

func TestQuery(t *testing.T) {
	assert.Equal(t, "button", Query("<button>"))

	long := Query(strings.Repeat("é", 150))
	require.Equal(t, MaxQueryLength, len([]rune(long)))
}
