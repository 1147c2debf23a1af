package codegen

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffInterfaces returns a line diff between the prop interfaces of two
// components. Removed lines are prefixed "- ", added lines "+ ", and shared
// lines two spaces.
func (g *Generator) DiffInterfaces(fromID, toID string) (string, error) {
	from, err := g.GenerateComponentInterface(fromID)
	if err != nil {
		return "", err
	}
	to, err := g.GenerateComponentInterface(toID)
	if err != nil {
		return "", err
	}
	return lineDiff(from, to), nil
}

func lineDiff(from, to string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from+"\n", to+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix + line)
		}
	}
	return out.String()
}
