package searcher

import (
	"github.com/dshills/cloudscape-mcp/pkg/types"
)

// Field names a component attribute that can be matched, filtered or sorted on.
type Field string

// Supported fields.
const (
	FieldID             Field = "id"
	FieldName           Field = "name"
	FieldDescription    Field = "description"
	FieldTags           Field = "tags"
	FieldCategory       Field = "category"
	FieldImportPath     Field = "importPath"
	FieldVersion        Field = "version"
	FieldIsExperimental Field = "isExperimental"
	FieldRelevance      Field = "relevance"
)

// DefaultSearchFields are matched, in order, when a request names none.
var DefaultSearchFields = []Field{FieldID, FieldName, FieldDescription, FieldTags}

var fieldWeights = map[Field]int{
	FieldID:          5,
	FieldName:        4,
	FieldDescription: 3,
	FieldTags:        2,
}

// Weight returns the relevance contribution of a match on f.
func (f Field) Weight() int {
	if w, ok := fieldWeights[f]; ok {
		return w
	}
	return 1
}

// fieldAccessor reads a field from a component. Scalar string fields return
// a single value; list fields return every element.
type fieldAccessor struct {
	list   bool
	values func(c *types.Component) []string
}

var textAccessors = map[Field]fieldAccessor{
	FieldID:          {values: func(c *types.Component) []string { return []string{c.ID} }},
	FieldName:        {values: func(c *types.Component) []string { return []string{c.Name} }},
	FieldDescription: {values: func(c *types.Component) []string { return []string{c.Description} }},
	FieldCategory:    {values: func(c *types.Component) []string { return []string{c.Category} }},
	FieldImportPath:  {values: func(c *types.Component) []string { return []string{c.ImportPath} }},
	FieldVersion:     {values: func(c *types.Component) []string { return []string{c.Version} }},
	FieldTags:        {list: true, values: func(c *types.Component) []string { return c.Tags }},
}

// textValues returns the string values of f, or false if f holds no text.
func textValues(c *types.Component, f Field) ([]string, bool) {
	acc, ok := textAccessors[f]
	if !ok {
		return nil, false
	}
	return acc.values(c), true
}

// scalarText returns the value of a single-valued string field.
func scalarText(c *types.Component, f Field) (string, bool) {
	acc, ok := textAccessors[f]
	if !ok || acc.list {
		return "", false
	}
	return acc.values(c)[0], true
}

// fieldEquals reports whether a scalar field equals want. The second result
// is false when f cannot be compared against a scalar value.
func fieldEquals(c *types.Component, f Field, want any) (bool, bool) {
	if f == FieldIsExperimental {
		b, ok := want.(bool)
		return ok && b == c.IsExperimental, true
	}

	v, ok := scalarText(c, f)
	if !ok {
		return false, false
	}
	s, isString := want.(string)
	return isString && s == v, true
}
