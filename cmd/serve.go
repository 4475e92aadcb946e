package cmd

import (
	"context"
	"os"

	"cargomcp/internal/cargo"
	"cargomcp/internal/config"
	"cargomcp/internal/query"
	"cargomcp/internal/server"
	"cargomcp/pkg/logging"

	"github.com/spf13/cobra"
)

var (
	serveDebug      bool
	serveConfigPath string
	serveCargoPath  string
	serveLocked     bool
	serveOffline    bool
)

// serveCmd defines the serve command structure.
// This is the main command of cargomcp: it starts the MCP server on stdio
// so an AI assistant can query Cargo project metadata.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	Long: `Starts the cargomcp MCP server using stdio transport.

The server exposes six tools (get_metadata, get_package_info,
get_dependencies, get_targets, get_workspace_info, get_features), each
accepting an optional manifest_path argument. Configure it in your AI
assistant's MCP settings, for example:

  {
    "mcpServers": {
      "cargo-metadata": {
        "command": "cargomcp",
        "args": ["serve"]
      }
    }
  }

Stdout is reserved for the protocol; all logging goes to stderr.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// runServe is the main entry point for the serve command
func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return err
	}

	level := logging.ParseLevel(cfg.LogLevel)
	if serveDebug {
		level = logging.LevelDebug
	}
	// Stdout carries the MCP protocol, so logs must go to stderr.
	logging.Init(level, os.Stderr)

	if serveCargoPath != "" {
		cfg.Cargo.Binary = serveCargoPath
	}
	if cmd.Flags().Changed("locked") {
		cfg.Cargo.Locked = serveLocked
	}
	if cmd.Flags().Changed("offline") {
		cfg.Cargo.Offline = serveOffline
	}

	extractor := &cargo.CommandExtractor{
		CargoPath: cfg.Cargo.Binary,
		Locked:    cfg.Cargo.Locked,
		Offline:   cfg.Cargo.Offline,
	}
	srv := server.NewMCPServer(query.NewService(extractor), GetVersion())

	logging.Info("Bootstrap", "Starting cargomcp MCP server on stdio (cargo=%s)", cfg.Cargo.Binary)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return srv.Start(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
	serveCmd.Flags().StringVar(&serveConfigPath, "config-path", config.GetDefaultConfigPathOrPanic(), "Configuration directory")
	serveCmd.Flags().StringVar(&serveCargoPath, "cargo", "", "Cargo binary to invoke (default: from config, then PATH)")
	serveCmd.Flags().BoolVar(&serveLocked, "locked", false, "Pass --locked to cargo metadata")
	serveCmd.Flags().BoolVar(&serveOffline, "offline", false, "Pass --offline to cargo metadata")
}
