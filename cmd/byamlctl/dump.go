package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/byamlkit/pkg/byaml"
)

var dumpDepth int

func init() {
	cmd := newDumpCmd()
	cmd.Flags().IntVar(&dumpDepth, "depth", 0, "Maximum depth (0 = unlimited)")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Human-readable dump of the node tree",
		Long: `The dump command prints every node of a BYAML file as an indented tree.

Example:
  byamlctl dump Course_muunt.byaml
  byamlctl dump Course_muunt.byaml --depth 2
  byamlctl dump Course_muunt.byaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	path := args[0]

	f, err := openFile(path)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]any{
			"file": path,
			"root": f.Root,
		})
	}
	if quiet {
		return nil
	}

	printInfo("\nBYAML Dump: %s\n", path)
	printInfo("%s\n\n", strings.Repeat("═", 40))
	if f.Root == nil {
		printInfo("(no root)\n")
		return nil
	}
	writeTree(os.Stdout, "", f.Root, 0, dumpDepth)
	return nil
}

// writeTree prints n and its descendants, one node per line. Nodes deeper
// than maxDepth levels below the root are summarized as "..."; 0 means
// unlimited.
func writeTree(w io.Writer, label string, n byaml.Node, depth, maxDepth int) {
	indent := strings.Repeat("  ", depth)
	prefix := indent
	if label != "" {
		prefix += label + ": "
	}
	fmt.Fprintf(w, "%s%s\n", prefix, describe(n))

	if ref, ok := n.(byaml.PathRef); ok {
		if maxDepth == 0 || depth < maxDepth {
			writePoints(w, ref.Path, depth+1)
		}
		return
	}
	if n.Len() == 0 {
		return
	}
	if maxDepth > 0 && depth >= maxDepth {
		fmt.Fprintf(w, "%s  ...\n", indent)
		return
	}
	switch n := n.(type) {
	case *byaml.Dictionary:
		for k, c := range n.All() {
			writeTree(w, k, c, depth+1, maxDepth)
		}
	case *byaml.Array:
		for i, c := range n.All() {
			writeTree(w, "["+strconv.Itoa(i)+"]", c, depth+1, maxDepth)
		}
	case *byaml.StringArray:
		for i, s := range n.All() {
			fmt.Fprintf(w, "%s  [%d]: %s\n", indent, i, strconv.Quote(s))
		}
	case *byaml.PathArray:
		for i, p := range n.All() {
			fmt.Fprintf(w, "%s  [%d]: Path (%d points)\n", indent, i, len(p))
			writePoints(w, p, depth+2)
		}
	}
}

func writePoints(w io.Writer, p byaml.Path, depth int) {
	indent := strings.Repeat("  ", depth)
	for i, pt := range p {
		fmt.Fprintf(w, "%s[%d]: pos=%s nrm=%s unk=0x%08X\n",
			indent, i, formatVector(pt.Position), formatVector(pt.Normal), pt.Unknown)
	}
}

// describe renders a node on one line: its type plus either its value or
// its size.
func describe(n byaml.Node) string {
	switch v := n.(type) {
	case byaml.String:
		return "String " + strconv.Quote(string(v))
	case byaml.Int:
		return "Int " + strconv.FormatInt(int64(v), 10)
	case byaml.Float:
		return "Float " + strconv.FormatFloat(float64(v), 'g', -1, 32)
	case byaml.Bool:
		return "Bool " + strconv.FormatBool(bool(v))
	case byaml.PathRef:
		return fmt.Sprintf("Path (%d points)", len(v.Path))
	case *byaml.Dictionary:
		return fmt.Sprintf("Dictionary {%d}", v.Len())
	default:
		return fmt.Sprintf("%s [%d]", n.Type(), n.Len())
	}
}

func formatVector(v byaml.Vector3) string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
