package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
)

// rootCmd represents the base command for the cargomcp application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cargomcp",
	Short: "Expose Cargo project metadata to AI assistants over MCP",
	Long: `cargomcp answers questions about Cargo projects - dependencies, build
targets, workspace layout, feature flags - through a small set of query
tools served over the Model Context Protocol.

It shells out to 'cargo metadata' for every call, projects the requested
view of the resulting document and returns it as JSON. Nothing is parsed
or resolved locally, nothing is cached between calls, and the project is
never mutated.

Run 'cargomcp serve' to start the stdio MCP server for an AI assistant,
or 'cargomcp get <operation>' to run a query directly.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It initializes and executes the root command, which in turn handles subcommands and flags.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "cargomcp version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitCodeError)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
}
