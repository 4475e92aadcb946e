package server

import (
	"context"

	"cargomcp/internal/query"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const serverSubsystem = "Server"

// MCPServer exposes the six metadata query operations as MCP tools for AI
// assistants. It is a thin adapter: each tool call fetches one fresh
// metadata document through the query service, projects the requested view
// and returns it as the call result.
//
// Key properties:
//   - Stdio transport for AI assistant integration
//   - One optional manifest_path argument shared by all six tools
//   - No state between calls; concurrent calls are independent
//   - Failures become protocol-level error results, never crashes
type MCPServer struct {
	service   *query.Service
	mcpServer *server.MCPServer
}

// NewMCPServer creates an MCP server exposing the metadata query tools.
//
// The server registers one tool per query operation (get_metadata,
// get_package_info, get_dependencies, get_targets, get_workspace_info,
// get_features) plus a cargo_metadata prompt describing the tool surface.
func NewMCPServer(service *query.Service, version string) *MCPServer {
	mcpServer := server.NewMCPServer(
		"cargomcp",
		version,
		server.WithToolCapabilities(false),
		server.WithPromptCapabilities(false),
	)

	ms := &MCPServer{
		service:   service,
		mcpServer: mcpServer,
	}

	ms.registerTools()
	ms.registerPrompts()

	return ms
}

// Start serves the MCP protocol over stdio. It blocks until the client
// closes the connection. Logging must already be directed at stderr so
// stdout stays reserved for the protocol.
func (m *MCPServer) Start(ctx context.Context) error {
	return server.ServeStdio(m.mcpServer)
}

// registerTools registers one MCP tool per query operation. All six share
// the same parameter contract: a single optional manifest_path string.
func (m *MCPServer) registerTools() {
	for _, op := range query.Operations() {
		tool := mcp.NewTool(string(op),
			mcp.WithDescription(op.Description()),
			mcp.WithString("manifest_path",
				mcp.Description("Path to the Cargo.toml manifest of the project to inspect. When omitted, the manifest of the current working directory is used."),
			),
		)
		m.mcpServer.AddTool(tool, m.operationHandler(op))
	}
}

// registerPrompts registers the cargo_metadata welcome prompt.
func (m *MCPServer) registerPrompts() {
	prompt := mcp.NewPrompt("cargo_metadata",
		mcp.WithPromptDescription("Overview of the Cargo metadata query tools exposed by this server"),
	)
	m.mcpServer.AddPrompt(prompt, m.handleMetadataPrompt)
}
