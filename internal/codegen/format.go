package codegen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Style selects the layout of generated code.
type Style string

const (
	StyleCompact  Style = "compact"
	StyleExpanded Style = "expanded"
)

// ParseStyle maps s to a Style. Anything other than "compact" is expanded.
func ParseStyle(s string) Style {
	if Style(s) == StyleCompact {
		return StyleCompact
	}
	return StyleExpanded
}

// FormatValue renders v as a JavaScript literal. Maps are emitted with their
// keys sorted.
func FormatValue(v any, style Style) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return `"` + val + `"`
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case []any:
		items := make([]string, len(val))
		for i, item := range val {
			items[i] = FormatValue(item, style)
		}
		return wrap("[", "]", items, style)
	case []string:
		items := make([]string, len(val))
		for i, item := range val {
			items[i] = FormatValue(item, style)
		}
		return wrap("[", "]", items, style)
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		items := make([]string, len(keys))
		for i, k := range keys {
			items[i] = k + ": " + FormatValue(val[k], style)
		}
		return wrap("{", "}", items, style)
	default:
		return fmt.Sprint(val)
	}
}

func wrap(open, close string, items []string, style Style) string {
	if len(items) == 0 {
		return open + close
	}
	if style == StyleCompact {
		return open + strings.Join(items, ", ") + close
	}
	return open + "\n  " + strings.Join(items, ",\n  ") + "\n" + close
}

// formatProp renders one JSX attribute. Strings containing "=>" are treated
// as expressions.
func formatProp(key string, v any, style Style) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		if strings.Contains(val, "=>") {
			return key + "={" + val + "}"
		}
		return key + `="` + val + `"`
	default:
		return key + "={" + FormatValue(val, style) + "}"
	}
}
