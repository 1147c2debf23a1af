package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/dshills/cloudscape-mcp/pkg/types"
)

// Stability levels reported for a component release.
const (
	StabilityStable       = "stable"
	StabilityExperimental = "experimental"
	StabilityPrerelease   = "prerelease"
	StabilityUnknown      = "unknown"
)

// defaultPackage is assumed when a component has no import path.
const defaultPackage = "@cloudscape-design/components"

// Deprecation is a deprecated part of a component's API.
type Deprecation struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
	Note string `json:"note,omitempty"`
}

// VersionInfo describes the release a component ships in.
type VersionInfo struct {
	ComponentID    string        `json:"componentId"`
	ComponentName  string        `json:"componentName"`
	CurrentVersion string        `json:"currentVersion"`
	Major          uint64        `json:"major"`
	Minor          uint64        `json:"minor"`
	Patch          uint64        `json:"patch"`
	Prerelease     string        `json:"prerelease,omitempty"`
	Stability      string        `json:"stability"`
	Deprecations   []Deprecation `json:"deprecations"`
}

// Dependency is a package a component needs at build or run time.
type Dependency struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Purpose string `json:"purpose,omitempty"`
}

// Dependencies groups the packages a component relies on.
type Dependencies struct {
	ComponentID      string       `json:"componentId"`
	ComponentName    string       `json:"componentName"`
	Required         []Dependency `json:"required"`
	Optional         []Dependency `json:"optional"`
	PeerDependencies []Dependency `json:"peerDependencies"`
}

// Versions reports the parsed release of a component and the deprecated
// parts of its API. An unparsable version is reported with unknown stability.
func (r *Registry) Versions(componentID string) (*VersionInfo, error) {
	c, ok := r.components[componentID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrComponentNotFound, componentID)
	}

	info := &VersionInfo{
		ComponentID:    c.ID,
		ComponentName:  c.Name,
		CurrentVersion: orDefault(c.Version, "0.0.0"),
		Stability:      StabilityUnknown,
		Deprecations:   deprecations(c),
	}

	v, err := semver.NewVersion(info.CurrentVersion)
	if err != nil {
		return info, nil
	}
	info.Major, info.Minor, info.Patch = v.Major(), v.Minor(), v.Patch()
	info.Prerelease = v.Prerelease()
	switch {
	case c.IsExperimental:
		info.Stability = StabilityExperimental
	case v.Prerelease() != "" || v.Major() == 0:
		info.Stability = StabilityPrerelease
	default:
		info.Stability = StabilityStable
	}
	return info, nil
}

// Dependencies reports the packages needed to use a component. The required
// package is taken from the import path and pinned to the component's major
// version.
func (r *Registry) Dependencies(componentID string) (*Dependencies, error) {
	c, ok := r.components[componentID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrComponentNotFound, componentID)
	}

	return &Dependencies{
		ComponentID:   c.ID,
		ComponentName: c.Name,
		Required: []Dependency{
			{Name: packageName(c.ImportPath), Version: caretRange(c.Version)},
		},
		Optional: []Dependency{
			{
				Name:    "@cloudscape-design/global-styles",
				Version: "^1.0.0",
				Purpose: "For consistent styling across components",
			},
		},
		PeerDependencies: []Dependency{
			{Name: "react", Version: "^17.0.0 || ^18.0.0"},
			{Name: "react-dom", Version: "^17.0.0 || ^18.0.0"},
		},
	}, nil
}

func deprecations(c *types.Component) []Deprecation {
	out := []Deprecation{}
	for _, name := range sortedKeys(c.Properties) {
		if c.Properties[name].IsDeprecated {
			out = append(out, Deprecation{Kind: "property", Name: name})
		}
	}
	regions := make([]types.Region, 0, len(c.Regions))
	for _, reg := range c.Regions {
		if reg.DeprecatedTag != "" {
			regions = append(regions, reg)
		}
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i].Name < regions[j].Name })
	for _, reg := range regions {
		out = append(out, Deprecation{Kind: "region", Name: reg.Name, Note: reg.DeprecatedTag})
	}
	return out
}

// packageName returns the npm package of an import path: the first segment,
// or the first two for a scoped package.
func packageName(importPath string) string {
	if importPath == "" {
		return defaultPackage
	}
	parts := strings.Split(importPath, "/")
	if strings.HasPrefix(importPath, "@") && len(parts) > 1 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}

// caretRange returns ^MAJOR.0.0 for version, or ^3.0.0 when it does not parse.
func caretRange(version string) string {
	v, err := semver.NewVersion(version)
	if err != nil {
		return "^3.0.0"
	}
	return fmt.Sprintf("^%d.0.0", v.Major())
}
