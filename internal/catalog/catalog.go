// Package catalog holds the embedded Cloudscape seed data and its YAML decoder.
package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/dshills/cloudscape-mcp/pkg/types"
)

//go:embed data/*.yaml
var seed embed.FS

// Seed file names, in load order.
const (
	ComponentsFile = "components.yaml"
	CategoriesFile = "categories.yaml"
	PatternsFile   = "patterns.yaml"
	ExamplesFile   = "examples.yaml"
)

// Files lists the seed files in the order their records must be stored.
// Examples reference components, so components come first.
var Files = []string{ComponentsFile, CategoriesFile, PatternsFile, ExamplesFile}

// Seed returns the embedded seed files rooted at the data directory.
func Seed() fs.FS {
	sub, err := fs.Sub(seed, "data")
	if err != nil {
		// The directory is embedded at build time.
		panic(err)
	}
	return sub
}

// Document is the decoded content of one or more seed files.
type Document struct {
	Components []*types.Component `yaml:"components"`
	Categories []*types.Category  `yaml:"categories"`
	Patterns   []*types.Pattern   `yaml:"patterns"`
	Examples   []*types.Example   `yaml:"examples"`
}

// Len returns the number of records in d.
func (d *Document) Len() int {
	return len(d.Components) + len(d.Categories) + len(d.Patterns) + len(d.Examples)
}

// Decode parses a seed file. Unknown keys are rejected.
func Decode(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("decode catalogue: %w", err)
	}
	return &doc, nil
}

// Validate checks every record's identifiers and names.
func (d *Document) Validate() error {
	var errs []error
	for _, c := range d.Components {
		if err := c.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("component %q: %w", c.ID, err))
		}
	}
	for _, c := range d.Categories {
		if err := c.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("category %q: %w", c.ID, err))
		}
	}
	for _, p := range d.Patterns {
		if err := p.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("pattern %q: %w", p.ID, err))
		}
	}
	for _, e := range d.Examples {
		if err := e.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("example %q: %w", e.ID, err))
		}
	}
	return errors.Join(errs...)
}
