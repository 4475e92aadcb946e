package server

import (
	"context"
	"fmt"

	"cargomcp/internal/query"
	"cargomcp/pkg/logging"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// operationHandler builds the tool handler for one query operation. The six
// handlers differ only in the operation they dispatch, so a single factory
// covers the whole tool surface.
//
// Contract:
//   - manifest_path (optional): manifest of the project to inspect; absent
//     means the conventional current-directory manifest
//   - success: the serialized projection as text content
//   - failure: an error result carrying the underlying message; the handler
//     itself never returns a Go error for call-level failures
func (m *MCPServer) operationHandler(op query.Operation) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		callID := shortCallID()
		manifestPath := request.GetString("manifest_path", "")
		logging.Debug(serverSubsystem, "[%s] %s manifest=%q", callID, op, manifestPath)

		result, err := m.service.Run(ctx, op, manifestPath)
		if err != nil {
			logging.Error(serverSubsystem, err, "[%s] %s failed", callID, op)
			return mcp.NewToolResultError(fmt.Sprintf("Failed to run %s: %v", op, err)), nil
		}

		logging.Debug(serverSubsystem, "[%s] %s returned %d bytes", callID, op, len(result))
		return mcp.NewToolResultText(result), nil
	}
}

const metadataPromptText = `This server answers questions about Cargo projects through six tools:

- get_metadata: the full cargo metadata document
- get_package_info: name, version, manifest path and dependency/target counts per package
- get_dependencies: every declared dependency edge, tagged with its owning package
- get_targets: every build target (bin, lib, example, test, bench), tagged with its owning package
- get_workspace_info: workspace root, members and default members
- get_features: the feature flags of every package

Every tool accepts an optional manifest_path argument pointing at the
project's Cargo.toml. Without it, the Cargo.toml of the current working
directory is used.`

// handleMetadataPrompt serves the cargo_metadata prompt: a short usage
// overview for assistants connecting to the server.
func (m *MCPServer) handleMetadataPrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return mcp.NewGetPromptResult(
		"How to query Cargo project metadata with this server",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(metadataPromptText)),
		},
	), nil
}

// shortCallID returns a short correlation ID for tying together the log
// lines of one tool call.
func shortCallID() string {
	return uuid.NewString()[:8]
}
