package cargo

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"cargomcp/pkg/logging"
)

const cargoSubsystem = "Cargo"

// execCommandContext is a variable to allow mocking in tests
var execCommandContext = exec.CommandContext

// Extractor obtains the full metadata document for a project. An empty
// manifest path means the conventional manifest of the current working
// directory.
type Extractor interface {
	Metadata(ctx context.Context, manifestPath string) (*Metadata, error)
}

// MetadataCommand configures a single `cargo metadata` invocation.
// The zero value runs `cargo metadata --format-version 1` against the
// current directory's manifest.
type MetadataCommand struct {
	// CargoPath is the cargo binary to invoke. Defaults to "cargo" on PATH.
	CargoPath string

	// ManifestPath is the manifest to inspect. Empty means cargo's own
	// current-directory discovery.
	ManifestPath string

	// NoDeps restricts the document to workspace members only.
	NoDeps bool

	// Locked requires Cargo.lock to be up to date.
	Locked bool

	// Offline forbids network access during resolution.
	Offline bool

	// ExtraArgs are appended verbatim to the invocation.
	ExtraArgs []string
}

// Exec runs the configured invocation and parses the resulting document.
// A supplied manifest path is checked for readability before the subprocess
// starts; subprocess failures are wrapped in ExtractionError with cargo's
// stderr attached.
func (c *MetadataCommand) Exec(ctx context.Context) (*Metadata, error) {
	if c.ManifestPath != "" {
		if _, err := os.Stat(c.ManifestPath); err != nil {
			return nil, &ManifestNotFoundError{Path: c.ManifestPath, Err: err}
		}
	}

	bin := c.CargoPath
	if bin == "" {
		bin = "cargo"
	}

	args := []string{"metadata", "--format-version", "1"}
	if c.ManifestPath != "" {
		args = append(args, "--manifest-path", c.ManifestPath)
	}
	if c.NoDeps {
		args = append(args, "--no-deps")
	}
	if c.Locked {
		args = append(args, "--locked")
	}
	if c.Offline {
		args = append(args, "--offline")
	}
	args = append(args, c.ExtraArgs...)

	logging.Debug(cargoSubsystem, "Running %s %s", bin, strings.Join(args, " "))

	cmd := execCommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &ExtractionError{Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}

	md, err := ParseMetadata(stdout.Bytes())
	if err != nil {
		return nil, err
	}

	logging.Debug(cargoSubsystem, "Extracted metadata for %d packages", len(md.Packages))
	return md, nil
}

// CommandExtractor implements Extractor by running the cargo binary for
// every call. It holds no state between calls.
type CommandExtractor struct {
	// CargoPath is the cargo binary to invoke. Defaults to "cargo" on PATH.
	CargoPath string

	// Locked requires Cargo.lock to be up to date on every invocation.
	Locked bool

	// Offline forbids network access during resolution.
	Offline bool
}

// Metadata runs `cargo metadata` for the given manifest path.
func (e *CommandExtractor) Metadata(ctx context.Context, manifestPath string) (*Metadata, error) {
	cmd := &MetadataCommand{
		CargoPath:    e.CargoPath,
		ManifestPath: manifestPath,
		Locked:       e.Locked,
		Offline:      e.Offline,
	}
	return cmd.Exec(ctx)
}
