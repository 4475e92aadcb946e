// Package server exposes the metadata query operations as an MCP server
// over stdio.
//
// The server advertises six tools with an identical parameter contract (one
// optional manifest_path string) and a welcome prompt. Tool dispatch goes
// through a single handler factory so the operation set stays closed; all
// call-level failures are converted to MCP error results and never crash
// the process.
package server
