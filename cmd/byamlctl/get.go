package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/byamlkit/pkg/byaml"
)

var getVector bool

func init() {
	cmd := newGetCmd()
	cmd.Flags().BoolVar(&getVector, "vector", false, "Read an {X, Y, Z} dictionary as a remapped 3D vector")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <file> <path>",
		Short: "Get the node at a slash-separated path",
		Long: `The get command looks up a node by path and prints it. Dictionary
segments are keys; array segments are decimal indices.

Example:
  byamlctl get Course_muunt.byaml LapNumber
  byamlctl get Course_muunt.byaml Obj/0/UnitIdName
  byamlctl get Course_muunt.byaml Obj/0/Translate --vector
  byamlctl get Course_muunt.byaml Obj/0 --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
	return cmd
}

func runGet(args []string) error {
	path, nodePath := args[0], args[1]

	f, err := openFile(path)
	if err != nil {
		return err
	}
	n, err := byaml.Lookup(f.Root, nodePath)
	if err != nil {
		return fmt.Errorf("failed to get node: %w", err)
	}
	if n == nil {
		return fmt.Errorf("failed to get node: %q: file has no root", nodePath)
	}

	if getVector {
		d, ok := n.(*byaml.Dictionary)
		if !ok {
			return fmt.Errorf("%s is %s, not a vector dictionary", nodePath, n.Type())
		}
		v, err := d.Vector3()
		if err != nil {
			return fmt.Errorf("failed to read vector: %w", err)
		}
		if jsonOut {
			return printJSON(v)
		}
		printInfo("%s\n", formatVector(v))
		return nil
	}

	if jsonOut {
		return printJSON(n)
	}
	if quiet {
		return nil
	}
	switch v := n.(type) {
	case byaml.String:
		printInfo("%s\n", string(v))
	case byaml.Int, byaml.Float, byaml.Bool:
		printInfo("%v\n", byaml.Value(v))
	default:
		writeTree(os.Stdout, "", n, 0, 0)
	}
	return nil
}
