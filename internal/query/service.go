package query

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"cargomcp/internal/cargo"
	"cargomcp/pkg/logging"
)

const querySubsystem = "Query"

// Service runs metadata query operations. It holds only the injected
// extractor; every call builds and discards its own document, so a single
// Service is safe for concurrent use.
type Service struct {
	extractor cargo.Extractor
}

// NewService creates a query service on top of the given extractor.
func NewService(extractor cargo.Extractor) *Service {
	return &Service{extractor: extractor}
}

// Run fetches a fresh metadata document for the manifest path (empty means
// the conventional current-directory manifest), applies the operation's
// projection and returns it serialized as indented JSON. Any failure is
// terminal for the call; no partial result is returned.
func (s *Service) Run(ctx context.Context, op Operation, manifestPath string) (string, error) {
	logging.Debug(querySubsystem, "Running %s for manifest %q", op, manifestPath)

	md, err := s.extractor.Metadata(ctx, manifestPath)
	if err != nil {
		return "", err
	}

	if op == OpGetMetadata {
		return documentJSON(md)
	}

	var projection interface{}
	switch op {
	case OpGetPackageInfo:
		projection = ProjectPackageInfo(md)
	case OpGetDependencies:
		projection = ProjectDependencies(md)
	case OpGetTargets:
		projection = ProjectTargets(md)
	case OpGetWorkspaceInfo:
		projection = ProjectWorkspaceInfo(md)
	case OpGetFeatures:
		projection = ProjectFeatures(md)
	default:
		return "", fmt.Errorf("unknown operation %q", op)
	}

	out, err := json.MarshalIndent(projection, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize %s result: %w", op, err)
	}
	return string(out), nil
}

// documentJSON serializes the whole document. When the original cargo bytes
// are available they are re-indented rather than re-marshaled, so no field
// unknown to our model is dropped.
func documentJSON(md *cargo.Metadata) (string, error) {
	if raw := md.Raw(); len(raw) > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return "", fmt.Errorf("failed to serialize metadata document: %w", err)
		}
		return buf.String(), nil
	}

	out, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize metadata document: %w", err)
	}
	return string(out), nil
}
