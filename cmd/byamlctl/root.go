package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/byamlkit/internal/logger"
	"github.com/joshuapare/byamlkit/pkg/byaml"
)

var (
	// Global flags
	verbose      bool
	quiet        bool
	jsonOut      bool
	encodingName string
	limitsName   string
)

var rootCmd = &cobra.Command{
	Use:   "byamlctl",
	Short: "Inspect and convert BYAML files",
	Long: `byamlctl reads BYAML (big-endian binary YAML) files as used by
Mario Kart 8 course and object data. It prints header and pool statistics,
dumps and queries the node tree, and converts to and from YAML.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{Enabled: verbose && !quiet, Level: slog.LevelDebug})
	},
	SilenceUsage: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVar(&encodingName, "encoding", "utf-8", "String table encoding (utf-8, shift-jis, windows-1252)")
	rootCmd.PersistentFlags().
		StringVar(&limitsName, "limits", "default", "Decode limits (default, relaxed, strict)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func decodeOptions() (byaml.Options, error) {
	enc, err := byaml.ParseStringEncoding(encodingName)
	if err != nil {
		return byaml.Options{}, err
	}
	limits, err := parseLimits(limitsName)
	if err != nil {
		return byaml.Options{}, err
	}
	opts := byaml.DefaultOptions()
	opts.StringEncoding = enc
	opts.Limits = limits
	opts.Logger = logger.L
	return opts, nil
}

// parseLimits maps a --limits value to decode limits.
func parseLimits(name string) (byaml.Limits, error) {
	switch name {
	case "", "default":
		return byaml.DefaultLimits(), nil
	case "relaxed":
		return byaml.RelaxedLimits(), nil
	case "strict":
		return byaml.StrictLimits(), nil
	default:
		return byaml.Limits{}, fmt.Errorf("unknown limits %q (want default, relaxed or strict)", name)
	}
}

// openFile parses the BYAML file at path using the global flags.
func openFile(path string) (*byaml.File, error) {
	opts, err := decodeOptions()
	if err != nil {
		return nil, err
	}
	printVerbose("Opening BYAML: %s (%v)\n", path, opts.StringEncoding)
	logger.Debug("opening file", "path", path, "encoding", opts.StringEncoding, "limits", limitsName)
	f, err := byaml.OpenWithOptions(path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BYAML: %w", err)
	}
	return f, nil
}
