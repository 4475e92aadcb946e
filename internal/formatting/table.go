// Package formatting renders query projections for human consumption in the
// CLI. The MCP surface always returns JSON; these tables exist for direct
// terminal use.
package formatting

import (
	"fmt"
	"sort"
	"strings"

	"cargomcp/internal/query"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// newTable creates a table with the standard styling.
func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	return t
}

// emptyMessage formats the message shown when a projection has no rows.
func emptyMessage(message string) string {
	return text.FgYellow.Sprint(message)
}

// FormatPackageTable renders package summary records.
func FormatPackageTable(records []query.PackageRecord) string {
	if len(records) == 0 {
		return emptyMessage("No packages found")
	}

	t := newTable()
	t.AppendHeader(table.Row{"NAME", "VERSION", "DEPS", "TARGETS", "MANIFEST"})
	for _, rec := range records {
		t.AppendRow(table.Row{rec.Name, rec.Version, rec.DependencyCount, rec.TargetCount, rec.ManifestPath})
	}
	return t.Render()
}

// FormatDependencyTable renders dependency edges.
func FormatDependencyTable(records []query.DependencyRecord) string {
	if len(records) == 0 {
		return emptyMessage("No dependencies found")
	}

	t := newTable()
	t.AppendHeader(table.Row{"PACKAGE", "DEPENDENCY", "REQ", "VERSION", "KIND", "OPTIONAL"})
	for _, rec := range records {
		t.AppendRow(table.Row{rec.Package, rec.Name, rec.Req, rec.Version, rec.Kind, rec.Optional})
	}
	return t.Render()
}

// FormatTargetTable renders build targets.
func FormatTargetTable(records []query.TargetRecord) string {
	if len(records) == 0 {
		return emptyMessage("No targets found")
	}

	t := newTable()
	t.AppendHeader(table.Row{"PACKAGE", "TARGET", "KIND", "SRC"})
	for _, rec := range records {
		t.AppendRow(table.Row{rec.Package, rec.Name, strings.Join(rec.Kind, ","), rec.SrcPath})
	}
	return t.Render()
}

// FormatWorkspaceTable renders workspace membership.
func FormatWorkspaceTable(info query.WorkspaceInfo) string {
	defaults := make(map[string]bool, len(info.DefaultMembers))
	for _, name := range info.DefaultMembers {
		defaults[name] = true
	}

	t := newTable()
	t.SetTitle(fmt.Sprintf("Workspace %s", info.WorkspaceRoot))
	t.AppendHeader(table.Row{"MEMBER", "VERSION", "DEFAULT", "MANIFEST"})
	for _, member := range info.Members {
		t.AppendRow(table.Row{member.Name, member.Version, defaults[member.Name], member.ManifestPath})
	}
	return t.Render()
}

// FormatFeatureTable renders feature sets, sorted by package and feature
// name for stable output.
func FormatFeatureTable(features map[string]query.FeatureSet) string {
	if len(features) == 0 {
		return emptyMessage("No packages found")
	}

	packages := make([]string, 0, len(features))
	for name := range features {
		packages = append(packages, name)
	}
	sort.Strings(packages)

	t := newTable()
	t.AppendHeader(table.Row{"PACKAGE", "FEATURE", "ENABLES"})
	for _, pkg := range packages {
		set := features[pkg]
		names := make([]string, 0, len(set))
		for name := range set {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			t.AppendRow(table.Row{pkg, name, strings.Join(set[name], ", ")})
		}
	}
	return t.Render()
}

// FormatOperationsTable renders the tool surface for `cargomcp tools`.
func FormatOperationsTable(ops []query.Operation) string {
	t := newTable()
	t.AppendHeader(table.Row{"TOOL", "DESCRIPTION"})
	for _, op := range ops {
		t.AppendRow(table.Row{string(op), op.Description()})
	}
	return t.Render()
}
