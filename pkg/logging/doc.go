// Package logging provides a structured logging system for cargomcp with
// subsystem tagging and level filtering.
//
// It is a thin wrapper around Go's standard log/slog package. Every entry
// carries a subsystem identifier so that output from the cargo invoker, the
// MCP server and the CLI can be told apart.
//
// # Usage
//
//	import "cargomcp/pkg/logging"
//
//	// Initialize once at startup. When serving MCP over stdio the writer
//	// must be os.Stderr so stdout stays reserved for the protocol.
//	logging.Init(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Bootstrap", "starting up")
//	logging.Debug("Cargo", "running cargo metadata for %s", manifestPath)
//	logging.Error("Server", err, "tool call failed")
//
// # Subsystems
//
//   - Bootstrap: application initialization
//   - Config: configuration loading
//   - Cargo: cargo metadata subprocess invocation
//   - Server: MCP tool dispatch
//   - CLI: direct query commands
package logging
