package query

import "cargomcp/internal/cargo"

// PackageRecord summarizes one package of the document.
type PackageRecord struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	ManifestPath    string `json:"manifest_path"`
	DependencyCount int    `json:"dependency_count"`
	TargetCount     int    `json:"target_count"`
}

// DependencyRecord is one declared dependency edge, tagged with the package
// that declares it. Version carries the concrete version when the dependency
// resolves to a package present in the document, otherwise the declared
// requirement.
type DependencyRecord struct {
	Package  string   `json:"package"`
	Name     string   `json:"name"`
	Req      string   `json:"req"`
	Version  string   `json:"version"`
	Kind     string   `json:"kind"`
	Optional bool     `json:"optional"`
	Features []string `json:"features,omitempty"`
	Target   string   `json:"target,omitempty"`
}

// TargetRecord is one build target, tagged with the package that declares it.
type TargetRecord struct {
	Package string   `json:"package"`
	Name    string   `json:"name"`
	Kind    []string `json:"kind"`
	SrcPath string   `json:"src_path"`
	Edition string   `json:"edition,omitempty"`
}

// MemberRecord identifies a workspace member package.
type MemberRecord struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	ManifestPath string `json:"manifest_path"`
}

// WorkspaceInfo describes the multi-package grouping of the project. For a
// single-package project the member list contains exactly that package.
type WorkspaceInfo struct {
	WorkspaceRoot  string         `json:"workspace_root"`
	Members        []MemberRecord `json:"members"`
	DefaultMembers []string       `json:"default_members,omitempty"`
}

// FeatureSet maps a feature name to the features and optional dependencies
// it enables.
type FeatureSet map[string][]string

// ProjectPackageInfo builds one PackageRecord per package in the document.
func ProjectPackageInfo(md *cargo.Metadata) []PackageRecord {
	records := make([]PackageRecord, 0, len(md.Packages))
	for _, pkg := range md.Packages {
		records = append(records, PackageRecord{
			Name:            pkg.Name,
			Version:         pkg.Version,
			ManifestPath:    pkg.ManifestPath,
			DependencyCount: len(pkg.Dependencies),
			TargetCount:     len(pkg.Targets),
		})
	}
	return records
}

// ProjectDependencies collects the declared dependency edges of every
// package, each tagged with its owning package name.
func ProjectDependencies(md *cargo.Metadata) []DependencyRecord {
	records := make([]DependencyRecord, 0)
	for _, pkg := range md.Packages {
		for _, dep := range pkg.Dependencies {
			version := dep.Req
			if resolved := md.PackageByName(dep.Name); resolved != nil {
				version = resolved.Version
			}
			records = append(records, DependencyRecord{
				Package:  pkg.Name,
				Name:     dep.Name,
				Req:      dep.Req,
				Version:  version,
				Kind:     dep.NormalizedKind(),
				Optional: dep.Optional,
				Features: dep.Features,
				Target:   dep.Target,
			})
		}
	}
	return records
}

// ProjectTargets collects the build targets of every package, each tagged
// with its owning package name.
func ProjectTargets(md *cargo.Metadata) []TargetRecord {
	records := make([]TargetRecord, 0)
	for _, pkg := range md.Packages {
		for _, target := range pkg.Targets {
			records = append(records, TargetRecord{
				Package: pkg.Name,
				Name:    target.Name,
				Kind:    target.Kind,
				SrcPath: target.SrcPath,
				Edition: target.Edition,
			})
		}
	}
	return records
}

// ProjectWorkspaceInfo builds the workspace view: root path, member package
// identities and the default member set.
func ProjectWorkspaceInfo(md *cargo.Metadata) WorkspaceInfo {
	info := WorkspaceInfo{
		WorkspaceRoot: md.WorkspaceRoot,
		Members:       make([]MemberRecord, 0, len(md.WorkspaceMembers)),
	}
	for _, pkg := range md.WorkspacePackages() {
		info.Members = append(info.Members, MemberRecord{
			Name:         pkg.Name,
			Version:      pkg.Version,
			ManifestPath: pkg.ManifestPath,
		})
	}
	for _, id := range md.WorkspaceDefaultMembers {
		if pkg := md.PackageByID(id); pkg != nil {
			info.DefaultMembers = append(info.DefaultMembers, pkg.Name)
		}
	}
	return info
}

// ProjectFeatures maps every package name to its declared feature set.
func ProjectFeatures(md *cargo.Metadata) map[string]FeatureSet {
	features := make(map[string]FeatureSet, len(md.Packages))
	for _, pkg := range md.Packages {
		set := FeatureSet{}
		for name, enables := range pkg.Features {
			set[name] = enables
		}
		features[pkg.Name] = set
	}
	return features
}
