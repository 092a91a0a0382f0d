package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/latword/internal/presentation/tui"
	"github.com/aretw0/latword/pkg/fst"
	"github.com/aretw0/latword/pkg/lattice"
	"github.com/aretw0/latword/pkg/pipeline"
	"github.com/aretw0/latword/pkg/semiring"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [in]",
	Short: "Summarise the entries of a lattice archive",
	Long: `Counts states, arcs, final states and epsilon arcs of every entry. The
table is rendered for the terminal when stdout is one, and printed as
plain markdown otherwise.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openInput(cmd, argAt(args, 0))
		if err != nil {
			return err
		}
		defer in.Close()

		var sr semiring.Lattice
		r := lattice.NewReader[pipeline.Weight](in, sr)
		var rows []tui.Row
		for {
			e, err := r.Next()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return err
			}
			rows = append(rows, tui.Row{Key: e.Key, Summary: fst.Info[pipeline.Weight](e.Automaton, sr)})
		}

		title := "Lattice archive"
		if name := argAt(args, 0); name != "" && name != "-" {
			title = name
		}
		md := tui.SummaryMarkdown(title, rows)

		raw, _ := cmd.Flags().GetBool("raw")
		if !raw && isTerminal(cmd) {
			rendered, err := tui.NewRenderer()(md)
			if err == nil {
				md = rendered
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	},
}

func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("raw", false, "Print markdown even on a terminal")
}
