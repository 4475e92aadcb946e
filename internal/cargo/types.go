package cargo

import (
	"encoding/json"
	"fmt"
)

// Dependency kinds as reported by cargo. Cargo emits null for normal
// dependencies; Dependency.NormalizedKind maps that to KindNormal.
const (
	KindNormal = "normal"
	KindBuild  = "build"
	KindDev    = "dev"
)

// Metadata is the full project graph document produced by
// `cargo metadata --format-version 1`: every package reachable from the
// manifest, workspace membership and the resolved dependency graph.
type Metadata struct {
	Packages                []Package       `json:"packages"`
	WorkspaceMembers        []string        `json:"workspace_members"`
	WorkspaceDefaultMembers []string        `json:"workspace_default_members,omitempty"`
	Resolve                 *Resolve        `json:"resolve,omitempty"`
	TargetDirectory         string          `json:"target_directory,omitempty"`
	Version                 int             `json:"version"`
	WorkspaceRoot           string          `json:"workspace_root,omitempty"`
	Metadata                json.RawMessage `json:"metadata,omitempty"`

	// raw holds the exact bytes cargo produced, so the document can be
	// returned without re-marshaling losses.
	raw json.RawMessage
}

// Package is one unit in the project graph.
type Package struct {
	Name          string              `json:"name"`
	Version       string              `json:"version"`
	ID            string              `json:"id"`
	License       string              `json:"license,omitempty"`
	LicenseFile   string              `json:"license_file,omitempty"`
	Description   string              `json:"description,omitempty"`
	Source        string              `json:"source,omitempty"`
	Dependencies  []Dependency        `json:"dependencies"`
	Targets       []Target            `json:"targets"`
	Features      map[string][]string `json:"features"`
	ManifestPath  string              `json:"manifest_path"`
	Authors       []string            `json:"authors,omitempty"`
	Categories    []string            `json:"categories,omitempty"`
	Keywords      []string            `json:"keywords,omitempty"`
	Edition       string              `json:"edition,omitempty"`
	Repository    string              `json:"repository,omitempty"`
	Homepage      string              `json:"homepage,omitempty"`
	Documentation string              `json:"documentation,omitempty"`
	DefaultRun    string              `json:"default_run,omitempty"`
	RustVersion   string              `json:"rust_version,omitempty"`
	Links         string              `json:"links,omitempty"`
	Publish       []string            `json:"publish,omitempty"`
	Metadata      json.RawMessage     `json:"metadata,omitempty"`
}

// Dependency is a declared requirement of a package: the edge of the
// dependency graph, carrying the version requirement and kind.
type Dependency struct {
	Name                string   `json:"name"`
	Source              string   `json:"source,omitempty"`
	Req                 string   `json:"req"`
	Kind                string   `json:"kind,omitempty"`
	Rename              string   `json:"rename,omitempty"`
	Optional            bool     `json:"optional"`
	UsesDefaultFeatures bool     `json:"uses_default_features"`
	Features            []string `json:"features,omitempty"`
	Target              string   `json:"target,omitempty"`
	Path                string   `json:"path,omitempty"`
	Registry            string   `json:"registry,omitempty"`
}

// NormalizedKind returns the dependency kind with cargo's null/empty value
// mapped to KindNormal.
func (d Dependency) NormalizedKind() string {
	if d.Kind == "" {
		return KindNormal
	}
	return d.Kind
}

// Target is a buildable artifact declared by a package (binary, library,
// example, test or benchmark).
type Target struct {
	Kind             []string `json:"kind"`
	CrateTypes       []string `json:"crate_types,omitempty"`
	Name             string   `json:"name"`
	SrcPath          string   `json:"src_path"`
	Edition          string   `json:"edition,omitempty"`
	RequiredFeatures []string `json:"required-features,omitempty"`
	Doc              bool     `json:"doc,omitempty"`
	Doctest          bool     `json:"doctest,omitempty"`
	Test             bool     `json:"test,omitempty"`
}

// Resolve is the resolved dependency graph section of the document.
type Resolve struct {
	Nodes []Node `json:"nodes"`
	Root  string `json:"root,omitempty"`
}

// Node is one resolved package in the dependency graph.
type Node struct {
	ID           string    `json:"id"`
	Dependencies []string  `json:"dependencies"`
	Deps         []NodeDep `json:"deps,omitempty"`
	Features     []string  `json:"features,omitempty"`
}

// NodeDep is a resolved edge with the kinds it was resolved for.
type NodeDep struct {
	Name     string        `json:"name"`
	Pkg      string        `json:"pkg"`
	DepKinds []DepKindInfo `json:"dep_kinds,omitempty"`
}

// DepKindInfo qualifies a resolved edge with a kind and optional platform.
type DepKindInfo struct {
	Kind   string `json:"kind,omitempty"`
	Target string `json:"target,omitempty"`
}

// ParseMetadata unmarshals a format-version 1 metadata document and retains
// the original bytes for as-is serialization.
func ParseMetadata(data []byte) (*Metadata, error) {
	var md Metadata
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("failed to parse cargo metadata output: %w", err)
	}
	md.raw = append(json.RawMessage(nil), data...)
	return &md, nil
}

// Raw returns the exact bytes the document was parsed from, or nil if the
// document was constructed in memory.
func (m *Metadata) Raw() json.RawMessage {
	return m.raw
}

// PackageByID returns the package with the given cargo package ID, or nil.
func (m *Metadata) PackageByID(id string) *Package {
	for i := range m.Packages {
		if m.Packages[i].ID == id {
			return &m.Packages[i]
		}
	}
	return nil
}

// PackageByName returns the first package with the given name, or nil.
func (m *Metadata) PackageByName(name string) *Package {
	for i := range m.Packages {
		if m.Packages[i].Name == name {
			return &m.Packages[i]
		}
	}
	return nil
}

// WorkspacePackages resolves the workspace member IDs to their packages.
// Member IDs with no matching package entry are skipped.
func (m *Metadata) WorkspacePackages() []*Package {
	members := make([]*Package, 0, len(m.WorkspaceMembers))
	for _, id := range m.WorkspaceMembers {
		if pkg := m.PackageByID(id); pkg != nil {
			members = append(members, pkg)
		}
	}
	return members
}
