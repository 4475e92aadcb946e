package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"cargomcp/internal/cargo"
	"cargomcp/internal/config"
	"cargomcp/internal/formatting"
	"cargomcp/internal/query"
	"cargomcp/pkg/logging"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	getOutputFormat string
	getQuiet        bool
	getConfigPath   string
	getCargoPath    string
	getLocked       bool
	getOffline      bool
)

// getCmd runs one of the six query operations directly, without an MCP
// client attached. Useful for scripting and for checking what an assistant
// would see.
var getCmd = &cobra.Command{
	Use:   "get <operation> [manifest-path...]",
	Short: "Run a metadata query directly, without an MCP client",
	Long: `Runs one of the six metadata query operations and prints the result.

Operations:
  get_metadata        the full cargo metadata document
  get_package_info    summary records for every package
  get_dependencies    every declared dependency edge
  get_targets         every build target
  get_workspace_info  workspace root, members and default members
  get_features        the feature flags of every package

With no manifest path the Cargo.toml of the current directory is used.
Multiple manifest paths are queried concurrently and printed in order.`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: getOperationCompletion,
	RunE:              runGet,
}

// getOperationCompletion offers the operation names for shell completion.
func getOperationCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	var completions []string
	for _, op := range query.Operations() {
		completions = append(completions, string(op))
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// runGet is the main entry point for the get command
func runGet(cmd *cobra.Command, args []string) error {
	op, err := query.ParseOperation(args[0])
	if err != nil {
		return err
	}

	cfg, err := config.Load(getConfigPath)
	if err != nil {
		return err
	}
	logging.Init(logging.ParseLevel(cfg.LogLevel), os.Stderr)

	if getCargoPath != "" {
		cfg.Cargo.Binary = getCargoPath
	}
	if cmd.Flags().Changed("locked") {
		cfg.Cargo.Locked = getLocked
	}
	if cmd.Flags().Changed("offline") {
		cfg.Cargo.Offline = getOffline
	}

	extractor := &cargo.CommandExtractor{
		CargoPath: cfg.Cargo.Binary,
		Locked:    cfg.Cargo.Locked,
		Offline:   cfg.Cargo.Offline,
	}
	service := query.NewService(extractor)

	manifests := args[1:]
	if len(manifests) == 0 {
		// Conventional current-directory manifest.
		manifests = []string{""}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var s *spinner.Spinner
	if !getQuiet {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = " Running cargo metadata..."
		s.Start()
	}

	results := make([]string, len(manifests))
	g, gctx := errgroup.WithContext(ctx)
	for i, manifest := range manifests {
		g.Go(func() error {
			out, err := service.Run(gctx, op, manifest)
			if err != nil {
				if manifest != "" {
					return fmt.Errorf("%s: %w", manifest, err)
				}
				return err
			}
			results[i] = out
			return nil
		})
	}
	err = g.Wait()
	if s != nil {
		s.Stop()
	}
	if err != nil {
		return err
	}

	for i, result := range results {
		if len(manifests) > 1 {
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", manifests[i])
		}
		if err := printResult(cmd, op, result); err != nil {
			return err
		}
	}
	return nil
}

// printResult renders one serialized projection in the requested output
// format. Tables re-decode the JSON the service produced; get_metadata has
// no table form and always prints JSON.
func printResult(cmd *cobra.Command, op query.Operation, result string) error {
	out := cmd.OutOrStdout()

	if getOutputFormat == "json" || op == query.OpGetMetadata {
		fmt.Fprintln(out, result)
		return nil
	}

	switch op {
	case query.OpGetPackageInfo:
		var records []query.PackageRecord
		if err := json.Unmarshal([]byte(result), &records); err != nil {
			return err
		}
		fmt.Fprintln(out, formatting.FormatPackageTable(records))
	case query.OpGetDependencies:
		var records []query.DependencyRecord
		if err := json.Unmarshal([]byte(result), &records); err != nil {
			return err
		}
		fmt.Fprintln(out, formatting.FormatDependencyTable(records))
	case query.OpGetTargets:
		var records []query.TargetRecord
		if err := json.Unmarshal([]byte(result), &records); err != nil {
			return err
		}
		fmt.Fprintln(out, formatting.FormatTargetTable(records))
	case query.OpGetWorkspaceInfo:
		var info query.WorkspaceInfo
		if err := json.Unmarshal([]byte(result), &info); err != nil {
			return err
		}
		fmt.Fprintln(out, formatting.FormatWorkspaceTable(info))
	case query.OpGetFeatures:
		var features map[string]query.FeatureSet
		if err := json.Unmarshal([]byte(result), &features); err != nil {
			return err
		}
		fmt.Fprintln(out, formatting.FormatFeatureTable(features))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringVarP(&getOutputFormat, "output", "o", "table", "Output format (table, json)")
	getCmd.Flags().BoolVarP(&getQuiet, "quiet", "q", false, "Suppress the progress spinner")
	getCmd.Flags().StringVar(&getConfigPath, "config-path", config.GetDefaultConfigPathOrPanic(), "Configuration directory")
	getCmd.Flags().StringVar(&getCargoPath, "cargo", "", "Cargo binary to invoke (default: from config, then PATH)")
	getCmd.Flags().BoolVar(&getLocked, "locked", false, "Pass --locked to cargo metadata")
	getCmd.Flags().BoolVar(&getOffline, "offline", false, "Pass --offline to cargo metadata")
}
