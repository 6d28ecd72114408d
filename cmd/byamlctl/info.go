package main

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Validate a BYAML file and report header and pool statistics",
		Long: `The info command decodes a BYAML file and displays its header offsets,
pool sizes, root type, node counts and nesting depth.

Example:
  byamlctl info Course_muunt.byaml
  byamlctl info Course_muunt.byaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

func runInfo(args []string) error {
	path := args[0]

	f, err := openFile(path)
	if err != nil {
		return err
	}
	stats := f.Stats()

	// Output as JSON if requested
	if jsonOut {
		return printJSON(map[string]any{
			"file":  path,
			"stats": stats,
		})
	}

	printInfo("\nBYAML Information:\n")
	printInfo("  File: %s\n", path)
	if stat, err := os.Stat(path); err == nil {
		printInfo("  Size: %s\n", formatSize(stat.Size()))
	}
	printInfo("  Version: %d\n", f.Header.Version)

	printInfo("\nHeader:\n")
	printInfo("  Name pool:   %s\n", formatOffset(f.Header.NamePoolOffset))
	printInfo("  String pool: %s\n", formatOffset(f.Header.StrPoolOffset))
	printInfo("  Path pool:   %s\n", formatOffset(f.Header.PathPoolOffset))
	printInfo("  Root:        %s\n", formatOffset(f.Header.RootOffset))

	printInfo("\nPools:\n")
	printInfo("  Names:   %d\n", stats.Names)
	printInfo("  Strings: %d\n", stats.Strings)
	if stats.HasPathPool {
		printInfo("  Paths:   %d (%d points)\n", stats.Paths, stats.PathPoints)
	} else {
		printInfo("  Paths:   (none)\n")
	}

	printInfo("\nTree:\n")
	printInfo("  Root type: %s\n", stats.RootType)
	printInfo("  Max depth: %d\n", stats.MaxDepth)
	for _, name := range slices.Sorted(maps.Keys(stats.Nodes)) {
		printInfo("  %s: %d\n", name, stats.Nodes[name])
	}
	return nil
}

func formatOffset(off uint32) string {
	if off == 0 {
		return "(absent)"
	}
	return fmt.Sprintf("0x%08X", off)
}

func formatSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d bytes", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}
