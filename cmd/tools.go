package cmd

import (
	"fmt"

	"cargomcp/internal/formatting"
	"cargomcp/internal/query"

	"github.com/spf13/cobra"
)

// toolsCmd lists the MCP tool surface without starting the server.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the MCP tools this server exposes",
	Long: `Prints the six metadata query tools with their descriptions. This is
the complete tool surface an MCP client sees after connecting to
'cargomcp serve'.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), formatting.FormatOperationsTable(query.Operations()))
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
