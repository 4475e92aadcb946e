package query

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"cargomcp/internal/cargo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// workspaceMetadata is a format-version 1 document for a two-member
// workspace plus one registry dependency.
const workspaceMetadata = `{
  "packages": [
    {
      "name": "core",
      "version": "0.2.0",
      "id": "path+file:///ws/core#0.2.0",
      "dependencies": [
        {
          "name": "anyhow",
          "source": "registry+https://github.com/rust-lang/crates.io-index",
          "req": "^1.0",
          "kind": null,
          "optional": false,
          "uses_default_features": true,
          "features": []
        },
        {
          "name": "tempfile",
          "source": "registry+https://github.com/rust-lang/crates.io-index",
          "req": "^3.8",
          "kind": "dev",
          "optional": false,
          "uses_default_features": true,
          "features": []
        }
      ],
      "targets": [
        {
          "kind": ["lib"],
          "crate_types": ["lib"],
          "name": "core",
          "src_path": "/ws/core/src/lib.rs",
          "edition": "2021"
        }
      ],
      "features": {
        "default": [],
        "extras": ["anyhow/backtrace"]
      },
      "manifest_path": "/ws/core/Cargo.toml"
    },
    {
      "name": "cli",
      "version": "0.2.0",
      "id": "path+file:///ws/cli#0.2.0",
      "dependencies": [
        {
          "name": "core",
          "req": "^0.2.0",
          "kind": null,
          "optional": false,
          "uses_default_features": true,
          "features": [],
          "path": "/ws/core"
        }
      ],
      "targets": [
        {
          "kind": ["bin"],
          "crate_types": ["bin"],
          "name": "cli",
          "src_path": "/ws/cli/src/main.rs",
          "edition": "2021"
        }
      ],
      "features": {},
      "manifest_path": "/ws/cli/Cargo.toml"
    },
    {
      "name": "anyhow",
      "version": "1.0.86",
      "id": "registry+https://github.com/rust-lang/crates.io-index#anyhow@1.0.86",
      "source": "registry+https://github.com/rust-lang/crates.io-index",
      "dependencies": [],
      "targets": [
        {
          "kind": ["lib"],
          "crate_types": ["lib"],
          "name": "anyhow",
          "src_path": "/registry/anyhow-1.0.86/src/lib.rs",
          "edition": "2018"
        }
      ],
      "features": {
        "default": ["std"],
        "backtrace": [],
        "std": []
      },
      "manifest_path": "/registry/anyhow-1.0.86/Cargo.toml"
    }
  ],
  "workspace_members": ["path+file:///ws/core#0.2.0", "path+file:///ws/cli#0.2.0"],
  "workspace_default_members": ["path+file:///ws/cli#0.2.0"],
  "target_directory": "/ws/target",
  "version": 1,
  "workspace_root": "/ws"
}`

// singleMetadata is a document for a single-package (non-workspace) project.
const singleMetadata = `{
  "packages": [
    {
      "name": "solo",
      "version": "1.2.3",
      "id": "path+file:///solo#1.2.3",
      "dependencies": [],
      "targets": [
        {
          "kind": ["bin"],
          "crate_types": ["bin"],
          "name": "solo",
          "src_path": "/solo/src/main.rs",
          "edition": "2021"
        }
      ],
      "features": {},
      "manifest_path": "/solo/Cargo.toml"
    }
  ],
  "workspace_members": ["path+file:///solo#1.2.3"],
  "target_directory": "/solo/target",
  "version": 1,
  "workspace_root": "/solo"
}`

// fakeExtractor serves canned documents without invoking cargo. Each call
// re-parses the fixture so the service always sees a fresh document, the
// same way the real extractor behaves.
type fakeExtractor struct {
	document     string
	err          error
	calls        int
	lastManifest string
}

func (f *fakeExtractor) Metadata(ctx context.Context, manifestPath string) (*cargo.Metadata, error) {
	f.calls++
	f.lastManifest = manifestPath
	if f.err != nil {
		return nil, f.err
	}
	return cargo.ParseMetadata([]byte(f.document))
}

func newWorkspaceService() (*Service, *fakeExtractor) {
	extractor := &fakeExtractor{document: workspaceMetadata}
	return NewService(extractor), extractor
}

func TestRunAllOperationsWithDefaultManifest(t *testing.T) {
	service, extractor := newWorkspaceService()

	for _, op := range Operations() {
		out, err := service.Run(context.Background(), op, "")
		require.NoError(t, err, "operation %s", op)
		assert.NotEmpty(t, out, "operation %s", op)
		assert.True(t, json.Valid([]byte(out)), "operation %s should return valid JSON", op)
	}

	assert.Equal(t, len(Operations()), extractor.calls)
	assert.Equal(t, "", extractor.lastManifest)
}

func TestRunPropagatesExtractionFailure(t *testing.T) {
	extractor := &fakeExtractor{err: errors.New("no such manifest")}
	service := NewService(extractor)

	for _, op := range Operations() {
		out, err := service.Run(context.Background(), op, "missing/Cargo.toml")
		require.Error(t, err, "operation %s", op)
		assert.Empty(t, out, "operation %s must not return a partial result", op)
	}
}

func TestRunUnknownOperation(t *testing.T) {
	service, _ := newWorkspaceService()

	_, err := service.Run(context.Background(), Operation("get_everything"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown operation")
}

func TestRunIdempotence(t *testing.T) {
	service, _ := newWorkspaceService()

	for _, op := range Operations() {
		first, err := service.Run(context.Background(), op, "")
		require.NoError(t, err)
		second, err := service.Run(context.Background(), op, "")
		require.NoError(t, err)
		assert.Equal(t, first, second, "operation %s must be byte-identical across calls", op)
	}
}

func TestGetMetadataReturnsDocumentAsIs(t *testing.T) {
	service, _ := newWorkspaceService()

	out, err := service.Run(context.Background(), OpGetMetadata, "")
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	packages, ok := doc["packages"].([]interface{})
	require.True(t, ok)
	assert.Len(t, packages, 3)

	// Fields outside our model survive because the raw bytes are returned.
	assert.Equal(t, "/ws/target", doc["target_directory"])
}

func TestGetMetadataWithoutRawBytes(t *testing.T) {
	md := &cargo.Metadata{
		Packages:      []cargo.Package{{Name: "synthetic", Version: "0.0.1"}},
		Version:       1,
		WorkspaceRoot: "/synthetic",
	}
	out, err := documentJSON(md)
	require.NoError(t, err)
	assert.Contains(t, out, `"synthetic"`)
}

func TestGetPackageInfoCountMatchesDocument(t *testing.T) {
	service, _ := newWorkspaceService()

	out, err := service.Run(context.Background(), OpGetPackageInfo, "")
	require.NoError(t, err)

	var records []PackageRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 3)

	assert.Equal(t, PackageRecord{
		Name:            "core",
		Version:         "0.2.0",
		ManifestPath:    "/ws/core/Cargo.toml",
		DependencyCount: 2,
		TargetCount:     1,
	}, records[0])
}

func TestGetDependenciesIsUnionOfDeclaredEdges(t *testing.T) {
	service, _ := newWorkspaceService()

	out, err := service.Run(context.Background(), OpGetDependencies, "")
	require.NoError(t, err)

	var records []DependencyRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 3)

	owners := map[string][]string{}
	for _, rec := range records {
		owners[rec.Package] = append(owners[rec.Package], rec.Name)
	}
	assert.Equal(t, []string{"anyhow", "tempfile"}, owners["core"])
	assert.Equal(t, []string{"core"}, owners["cli"])

	// anyhow resolves to a package in the document, so the concrete version
	// is reported next to the declared requirement.
	assert.Equal(t, "^1.0", records[0].Req)
	assert.Equal(t, "1.0.86", records[0].Version)
	assert.Equal(t, cargo.KindNormal, records[0].Kind)

	// tempfile is declared but not resolved in this document; the
	// requirement stands in for the version.
	assert.Equal(t, "^3.8", records[1].Version)
	assert.Equal(t, cargo.KindDev, records[1].Kind)
}

func TestGetTargetsTaggedWithOwningPackage(t *testing.T) {
	service, _ := newWorkspaceService()

	out, err := service.Run(context.Background(), OpGetTargets, "")
	require.NoError(t, err)

	var records []TargetRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 3)

	assert.Equal(t, "core", records[0].Package)
	assert.Equal(t, []string{"lib"}, records[0].Kind)
	assert.Equal(t, "cli", records[1].Package)
	assert.Equal(t, []string{"bin"}, records[1].Kind)
	assert.Equal(t, "/ws/cli/src/main.rs", records[1].SrcPath)
}

func TestGetWorkspaceInfo(t *testing.T) {
	service, _ := newWorkspaceService()

	out, err := service.Run(context.Background(), OpGetWorkspaceInfo, "")
	require.NoError(t, err)

	var info WorkspaceInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))

	assert.Equal(t, "/ws", info.WorkspaceRoot)
	require.Len(t, info.Members, 2)
	assert.Equal(t, "core", info.Members[0].Name)
	assert.Equal(t, "cli", info.Members[1].Name)
	assert.Equal(t, []string{"cli"}, info.DefaultMembers)
}

func TestGetWorkspaceInfoSinglePackageProject(t *testing.T) {
	extractor := &fakeExtractor{document: singleMetadata}
	service := NewService(extractor)

	out, err := service.Run(context.Background(), OpGetWorkspaceInfo, "")
	require.NoError(t, err)

	var info WorkspaceInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))

	require.Len(t, info.Members, 1)
	assert.Equal(t, MemberRecord{
		Name:         "solo",
		Version:      "1.2.3",
		ManifestPath: "/solo/Cargo.toml",
	}, info.Members[0])
}

func TestGetFeaturesKeysMatchPackageNames(t *testing.T) {
	service, _ := newWorkspaceService()

	out, err := service.Run(context.Background(), OpGetFeatures, "")
	require.NoError(t, err)

	var features map[string]FeatureSet
	require.NoError(t, json.Unmarshal([]byte(out), &features))

	require.Len(t, features, 3)
	assert.Contains(t, features, "core")
	assert.Contains(t, features, "cli")
	assert.Contains(t, features, "anyhow")

	assert.Equal(t, []string{"anyhow/backtrace"}, features["core"]["extras"])
	assert.Empty(t, features["cli"])
}

func TestZeroPackageDocumentIsValid(t *testing.T) {
	extractor := &fakeExtractor{document: `{"packages": [], "workspace_members": [], "version": 1, "workspace_root": "/empty"}`}
	service := NewService(extractor)

	out, err := service.Run(context.Background(), OpGetPackageInfo, "")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)

	out, err = service.Run(context.Background(), OpGetWorkspaceInfo, "")
	require.NoError(t, err)

	var info WorkspaceInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Empty(t, info.Members)
}
