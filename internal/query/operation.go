package query

import "fmt"

// Operation names one of the six metadata queries. The set is closed:
// dispatch happens once, by value, with no reflection.
type Operation string

const (
	// OpGetMetadata returns the entire metadata document as cargo produced it.
	OpGetMetadata Operation = "get_metadata"

	// OpGetPackageInfo returns summary records for every package.
	OpGetPackageInfo Operation = "get_package_info"

	// OpGetDependencies returns every declared dependency edge, tagged with
	// its owning package.
	OpGetDependencies Operation = "get_dependencies"

	// OpGetTargets returns every build target, tagged with its owning package.
	OpGetTargets Operation = "get_targets"

	// OpGetWorkspaceInfo returns the workspace root and member identities.
	OpGetWorkspaceInfo Operation = "get_workspace_info"

	// OpGetFeatures returns the feature map of every package.
	OpGetFeatures Operation = "get_features"
)

// Operations returns the six operations in their canonical order.
func Operations() []Operation {
	return []Operation{
		OpGetMetadata,
		OpGetPackageInfo,
		OpGetDependencies,
		OpGetTargets,
		OpGetWorkspaceInfo,
		OpGetFeatures,
	}
}

// ParseOperation validates an operation name.
func ParseOperation(name string) (Operation, error) {
	for _, op := range Operations() {
		if string(op) == name {
			return op, nil
		}
	}
	return "", fmt.Errorf("unknown operation %q", name)
}

// Description returns the human-readable summary used for tool registration
// and CLI help.
func (op Operation) Description() string {
	switch op {
	case OpGetMetadata:
		return "Get the full cargo metadata document for a Cargo project"
	case OpGetPackageInfo:
		return "Get summary information (name, version, manifest path, dependency and target counts) for every package in a Cargo project"
	case OpGetDependencies:
		return "Get the declared dependencies of every package in a Cargo project"
	case OpGetTargets:
		return "Get the build targets (binaries, libraries, examples, tests, benchmarks) of every package in a Cargo project"
	case OpGetWorkspaceInfo:
		return "Get workspace information (root path, members, default members) for a Cargo project"
	case OpGetFeatures:
		return "Get the feature flags declared by every package in a Cargo project"
	default:
		return ""
	}
}
