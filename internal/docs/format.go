package docs

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Format is an output format for documentation.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatPlain    Format = "plain"
)

// ParseFormat maps s to a Format. Unknown and empty values are markdown.
func ParseFormat(s string) Format {
	switch Format(s) {
	case FormatHTML:
		return FormatHTML
	case FormatPlain:
		return FormatPlain
	default:
		return FormatMarkdown
	}
}

// renderer converts Markdown to the other formats. It is safe for
// concurrent use.
type renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func newRenderer() *renderer {
	return &renderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render converts markdown to format.
func (r *renderer) Render(markdown string, format Format) (string, error) {
	switch format {
	case FormatHTML:
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(markdown), &buf); err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
		return r.policy.Sanitize(buf.String()), nil
	case FormatPlain:
		out, err := glamour.Render(markdown, "notty")
		if err != nil {
			return "", fmt.Errorf("render plain: %w", err)
		}
		return out, nil
	default:
		return markdown, nil
	}
}
