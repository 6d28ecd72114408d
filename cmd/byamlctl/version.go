package main

import (
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/joshuapare/byamlkit/internal/format"
)

// Set through -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and supported format information",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVersion()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

type versionInfo struct {
	Version       string `json:"version"`
	Commit        string `json:"commit"`
	GoVersion     string `json:"go_version"`
	FormatVersion int    `json:"byaml_version"`
}

// buildVersion fills in module and VCS details when the binary was built
// without -ldflags, e.g. by go install.
func buildVersion() versionInfo {
	v := versionInfo{Version: version, Commit: commit, FormatVersion: format.Version}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}
	v.GoVersion = bi.GoVersion
	if v.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		v.Version = bi.Main.Version
	}
	if v.Commit == "none" {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				v.Commit = s.Value
			}
		}
	}
	return v
}

func runVersion() error {
	v := buildVersion()
	if jsonOut {
		return printJSON(v)
	}
	printInfo("byamlctl %s\n", v.Version)
	printInfo("  commit: %s\n", v.Commit)
	if v.GoVersion != "" {
		printInfo("  go:     %s\n", v.GoVersion)
	}
	printInfo("  reads and writes BYAML version %d\n", v.FormatVersion)
	return nil
}
