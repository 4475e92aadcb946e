package formatting

import (
	"strings"
	"testing"

	"cargomcp/internal/query"

	"github.com/stretchr/testify/assert"
)

func TestFormatPackageTable(t *testing.T) {
	out := FormatPackageTable([]query.PackageRecord{
		{Name: "demo", Version: "0.1.0", ManifestPath: "/work/demo/Cargo.toml", DependencyCount: 3, TargetCount: 2},
	})

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "demo")
	assert.Contains(t, out, "0.1.0")
	assert.Contains(t, out, "/work/demo/Cargo.toml")
}

func TestFormatPackageTableEmpty(t *testing.T) {
	out := FormatPackageTable(nil)
	assert.Contains(t, out, "No packages found")
}

func TestFormatDependencyTable(t *testing.T) {
	out := FormatDependencyTable([]query.DependencyRecord{
		{Package: "demo", Name: "serde", Req: "^1.0", Version: "1.0.210", Kind: "normal"},
		{Package: "demo", Name: "criterion", Req: "^0.5", Version: "^0.5", Kind: "dev"},
	})

	assert.Contains(t, out, "serde")
	assert.Contains(t, out, "1.0.210")
	assert.Contains(t, out, "dev")
}

func TestFormatTargetTable(t *testing.T) {
	out := FormatTargetTable([]query.TargetRecord{
		{Package: "demo", Name: "demo-cli", Kind: []string{"bin"}, SrcPath: "/work/demo/src/main.rs"},
	})

	assert.Contains(t, out, "demo-cli")
	assert.Contains(t, out, "bin")
}

func TestFormatWorkspaceTable(t *testing.T) {
	out := FormatWorkspaceTable(query.WorkspaceInfo{
		WorkspaceRoot:  "/ws",
		Members:        []query.MemberRecord{{Name: "core", Version: "0.2.0", ManifestPath: "/ws/core/Cargo.toml"}},
		DefaultMembers: []string{"core"},
	})

	assert.Contains(t, out, "Workspace /ws")
	assert.Contains(t, out, "core")
	assert.Contains(t, out, "true")
}

func TestFormatFeatureTableSorted(t *testing.T) {
	out := FormatFeatureTable(map[string]query.FeatureSet{
		"zeta":  {"default": nil},
		"alpha": {"std": {"dep:libc"}},
	})

	// Packages render in sorted order for stable output.
	assert.Less(t, strings.Index(out, "alpha"), strings.Index(out, "zeta"))
	assert.Contains(t, out, "dep:libc")
}

func TestFormatOperationsTable(t *testing.T) {
	out := FormatOperationsTable(query.Operations())

	for _, op := range query.Operations() {
		assert.Contains(t, out, string(op))
	}
}
