package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/byamlkit/internal/yamltext"
)

var exportOutput string

func init() {
	cmd := newExportCmd()
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(cmd)
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a BYAML file to YAML",
		Long: `The export command converts a BYAML tree to YAML text. Dictionary order
is preserved; paths and string tables carry !path, !paths and !strings tags
so that import can rebuild the same tree.

Example:
  byamlctl export Course_muunt.byaml
  byamlctl export Course_muunt.byaml -o course.yml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args)
		},
	}
	return cmd
}

func runExport(args []string) error {
	path := args[0]

	f, err := openFile(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := yamltext.Encode(&buf, f.Root); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	if exportOutput == "" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(exportOutput, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	printInfo("✓ Exported %s to %s (%d bytes)\n", path, exportOutput, buf.Len())
	return nil
}
