package validate

import (
	"regexp"
	"strings"
)

// MaxQueryLength bounds free-text queries accepted from clients.
const MaxQueryLength = 100

var unsafeChars = strings.NewReplacer("<", "", ">", "", "'", "", `"`, "", "&", "", ";", "")

var unsafeCode = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`eval\s*\(`), "disabledEval("},
	{regexp.MustCompile(`new\s+Function`), "disabledFunction"},
	{regexp.MustCompile(`document\.write`), "disabledDocumentWrite"},
	{regexp.MustCompile(`window\.location`), "disabledWindowLocation"},
	{regexp.MustCompile(`localStorage`), "disabledLocalStorage"},
	{regexp.MustCompile(`sessionStorage`), "disabledSessionStorage"},
	{regexp.MustCompile(`setTimeout`), "disabledSetTimeout"},
	{regexp.MustCompile(`setInterval`), "disabledSetInterval"},
}

// SanitizeString removes characters that could break out of markup or
// string literals.
func SanitizeString(s string) string {
	return unsafeChars.Replace(s)
}

// SanitizeValue applies SanitizeString to every string in a JSON-decoded
// value, recursing into maps and slices. Other values are returned as is.
func SanitizeValue(v any) any {
	switch val := v.(type) {
	case string:
		return SanitizeString(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = SanitizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = SanitizeValue(item)
		}
		return out
	default:
		return v
	}
}

// SanitizeMap is SanitizeValue for a props or customizations map.
func SanitizeMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	return SanitizeValue(m).(map[string]any)
}

// SanitizeCode disables browser APIs commonly used for injection in
// generated snippets.
func SanitizeCode(code string) string {
	for _, p := range unsafeCode {
		code = p.re.ReplaceAllLiteralString(code, p.repl)
	}
	return code
}

// Query sanitises a free-text query and truncates it to MaxQueryLength runes.
func Query(q string) string {
	q = SanitizeString(q)
	if r := []rune(q); len(r) > MaxQueryLength {
		q = string(r[:MaxQueryLength])
	}
	return q
}
