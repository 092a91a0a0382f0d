package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/latword/internal/presentation/graph"
	"github.com/aretw0/latword/pkg/domain"
	"github.com/aretw0/latword/pkg/lattice"
	"github.com/aretw0/latword/pkg/pipeline"
	"github.com/aretw0/latword/pkg/semiring"
	"github.com/aretw0/latword/pkg/symbols"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [in]",
	Short: "Export one lattice as a Mermaid diagram",
	Long: `Reads a lattice archive and outputs a Mermaid diagram (graph LR) of one
entry: the first one, or the one named by --key. Labels are printed with
the entry's own symbol table when it has one, or with --symbols.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		symbolsPath, _ := cmd.Flags().GetString("symbols")
		weights, _ := cmd.Flags().GetBool("weights")
		highlight, _ := cmd.Flags().GetString("highlight")

		in, err := openInput(cmd, argAt(args, 0))
		if err != nil {
			return err
		}
		defer in.Close()

		var sr semiring.Lattice
		entry, err := findEntry(lattice.NewReader[pipeline.Weight](in, sr), key)
		if err != nil {
			return err
		}

		style := graph.Style[pipeline.Weight]{Symbols: symbols.Names(entry.Symbols)}
		if symbolsPath != "" {
			f, err := openInput(cmd, symbolsPath)
			if err != nil {
				return err
			}
			table, err := symbols.ReadText(f)
			f.Close()
			if err != nil {
				return err
			}
			style.Symbols = symbols.Names(table)
		}
		if weights {
			style.Weight = sr.Format
		}

		overlay, err := parseOverlay(highlight)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid[pipeline.Weight](entry.Automaton, sr, style, overlay))
		return nil
	},
}

func findEntry(r *lattice.Reader[pipeline.Weight], key string) (lattice.Entry[pipeline.Weight], error) {
	for {
		e, err := r.Next()
		if errors.Is(err, io.EOF) {
			if key == "" {
				return e, errors.New("archive is empty")
			}
			return e, fmt.Errorf("no entry with key %q", key)
		}
		if err != nil {
			return e, err
		}
		if key == "" || e.Key == key {
			return e, nil
		}
	}
}

// parseOverlay reads a space-separated list of states to highlight.
func parseOverlay(s string) (*graph.GraphOverlay, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, nil
	}
	overlay := &graph.GraphOverlay{}
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid state %q", f)
		}
		overlay.Highlighted = append(overlay.Highlighted, domain.StateID(n))
	}
	return overlay, nil
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().String("key", "", "Key of the entry to draw (default first)")
	graphCmd.Flags().String("symbols", "", "Symbol table used to name labels")
	graphCmd.Flags().Bool("weights", false, "Print arc and final weights")
	graphCmd.Flags().String("highlight", "", "Space-separated states to highlight")
}
