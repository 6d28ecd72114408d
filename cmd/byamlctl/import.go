package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/byamlkit/internal/logger"
	"github.com/joshuapare/byamlkit/internal/yamltext"
	"github.com/joshuapare/byamlkit/pkg/byaml"
)

var (
	importOutput   string
	importSortKeys bool
	importForce    bool
)

var importCmd = &cobra.Command{
	Use:   "import <yaml-file> -o <output.byaml>",
	Short: "Build a BYAML file from YAML",
	Long: `Build a new BYAML file from YAML text, typically the output of
'byamlctl export'.

Untagged YAML scalars keep their plain type: integers become Int, numbers
with a fraction become Float, true/false become Bool and anything else a
String. Sequences tagged !path, !paths and !strings become path references,
path arrays and string arrays.

Examples:
  # Round trip through YAML
  byamlctl export course.byaml -o course.yml
  byamlctl import course.yml -o course.new.byaml

  # Write dictionary entries in name-pool order
  byamlctl import course.yml -o course.new.byaml --sort-keys`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importOutput, "output", "o", "", "Output BYAML file (required)")
	importCmd.Flags().BoolVar(&importSortKeys, "sort-keys", false, "Sort dictionary entries by name")
	importCmd.Flags().BoolVar(&importForce, "force", false, "Overwrite an existing output file")
	_ = importCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	yamlPath := args[0]

	enc, err := byaml.ParseStringEncoding(encodingName)
	if err != nil {
		return err
	}

	// Check if output already exists
	if _, err := os.Stat(importOutput); err == nil {
		if !importForce {
			return fmt.Errorf("output file already exists: %s (use --force to overwrite)", importOutput)
		}
		logger.Warn("overwriting existing file", "path", importOutput)
	}

	data, err := os.ReadFile(yamlPath)
	if err != nil {
		return fmt.Errorf("failed to read YAML: %w", err)
	}
	root, err := yamltext.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", yamlPath, err)
	}

	printVerbose("  Input:  %s\n", yamlPath)
	printVerbose("  Output: %s\n", importOutput)

	f := &byaml.File{Root: root}
	opts := byaml.EncodeOptions{
		StringEncoding: enc,
		SortKeys:       importSortKeys,
		Logger:         logger.L,
	}
	if err := f.Save(importOutput, opts); err != nil {
		return fmt.Errorf("failed to write BYAML: %w", err)
	}

	logger.Info("wrote BYAML", "path", importOutput, "sort_keys", importSortKeys)
	if info, err := os.Stat(importOutput); err == nil {
		printInfo("✓ BYAML created successfully: %s (%d bytes)\n", importOutput, info.Size())
	} else {
		printInfo("✓ BYAML created successfully: %s\n", importOutput)
	}
	return nil
}
