package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/latword/internal/presentation/tui"
	"github.com/aretw0/latword/pkg/lattice"
	"github.com/aretw0/latword/pkg/pipeline"
	"github.com/aretw0/latword/pkg/semiring"
	"github.com/aretw0/latword/pkg/symbols"
	"github.com/spf13/cobra"
)

var expandCmd = &cobra.Command{
	Use:   "expand <delimiters> [in] [out]",
	Short: "Expand a character lattice archive into word arcs",
	Long: `Reads a lattice archive (stdin when [in] is missing or "-"), joins the
character arcs between delimiters into word arcs and writes the result
(stdout when [out] is missing or "-").

<delimiters> is a space-separated list of labels, e.g. "3 4". Pass "" to
treat every path as a single word.

Each entry carries its own symbol table, unless --save-symbols or a Redis
symbol space is used: then one table is shared by the whole archive.`,
	Args: cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, map[string]any{"delimiters": args[0]})
		if err != nil {
			return err
		}
		logger := cfg.Logger()

		expCfg, err := cfg.Expand()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		space := openSymbolSpace(cfg, logger)
		defer space.Close()

		pcfg := pipeline.Config{
			Expand:        expCfg,
			AcousticScale: cfg.AcousticScale,
			GraphScale:    cfg.GraphScale,
			Beam:          cfg.Beam,
			Workers:       cfg.Workers,
			Symbols:       pipeline.SymbolsPerLattice,
		}
		if cfg.SaveSymbols != "" || space.shared() {
			pcfg.Symbols = pipeline.SymbolsShared
		}

		var processed int
		p, err := pipeline.New(pcfg,
			pipeline.WithInterner(space),
			pipeline.WithLogger(logger),
			pipeline.WithHooks(pipeline.Hooks{
				OnEntry: func(ctx context.Context, e pipeline.EntryEvent) {
					processed++
					logger.Debug("entry expanded",
						"key", e.Key,
						"word_arcs", e.Stats.WordArcs,
						"pruned", e.Stats.Pruned,
						"duration", e.Duration,
					)
				},
			}),
		)
		if err != nil {
			return err
		}

		in, err := openInput(cmd, argAt(args, 1))
		if err != nil {
			return err
		}
		defer in.Close()
		out, err := createOutput(cmd, argAt(args, 2))
		if err != nil {
			return err
		}

		start := time.Now()
		var sr semiring.Lattice
		var sum pipeline.Summary
		err = space.exclusive(ctx, func(ctx context.Context) error {
			var runErr error
			sum, runErr = p.Run(ctx, lattice.NewReader[pipeline.Weight](in, sr), lattice.NewWriter[pipeline.Weight](out, sr))
			if runErr != nil || cfg.SaveSymbols == "" {
				return runErr
			}
			return saveSymbols(ctx, space, cfg.SaveSymbols)
		})
		err = errors.Join(err, out.Close())
		if err != nil {
			tui.Status(cmd.ErrOrStderr(), false, fmt.Sprintf("expansion stopped after %d entries", processed))
			return err
		}

		tui.Status(cmd.ErrOrStderr(), true, fmt.Sprintf("expanded %d entries into %d word arcs in %s",
			sum.Entries, sum.Stats.WordArcs, time.Since(start).Round(time.Millisecond)))
		return nil
	},
}

func saveSymbols(ctx context.Context, space *symbolSpace, path string) error {
	table, err := space.table(ctx)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create symbol table: %w", err)
	}
	if err := symbols.WriteText(f, table); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func init() {
	rootCmd.AddCommand(expandCmd)

	expandCmd.Flags().Int("max-length", 0, "Maximum number of labels in a word (default unbounded)")
	expandCmd.Flags().String("match-side", "output", "Arc side compared with the delimiters: output or input")
	expandCmd.Flags().Float64("acoustic-scale", 1, "Acoustic scale applied before pruning")
	expandCmd.Flags().Float64("graph-scale", 1, "Graph scale applied before pruning")
	expandCmd.Flags().String("beam", "inf", "Pruning beam applied before expansion")
	expandCmd.Flags().String("save-symbols", "", "Write the shared word symbol table to this file")
	expandCmd.Flags().Int("workers", 1, "Number of entries expanded in parallel")
}
