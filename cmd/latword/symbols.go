package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/latword/internal/presentation/tui"
	"github.com/aretw0/latword/pkg/symbols"
	"github.com/spf13/cobra"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "Print or reset the shared Redis symbol space",
	Long: `Prints the word symbol table of the Redis symbol space configured with
--redis-addr (or redis.addr in the configuration file), one "<id> <name>"
line per word. With --reset the space is emptied instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, nil)
		if err != nil {
			return err
		}
		if cfg.Redis.Addr == "" {
			return fmt.Errorf("symbols needs a Redis symbol space (--redis-addr)")
		}
		logger := cfg.Logger()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		space := openSymbolSpace(cfg, logger)
		defer space.Close()

		reset, _ := cmd.Flags().GetBool("reset")
		if reset {
			if err := space.exclusive(ctx, space.Reset); err != nil {
				return err
			}
			tui.Status(cmd.ErrOrStderr(), true, "symbol space reset")
			return nil
		}

		return space.exclusive(ctx, func(ctx context.Context) error {
			table, err := space.table(ctx)
			if err != nil {
				return err
			}
			return symbols.WriteText(cmd.OutOrStdout(), table)
		})
	},
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
	symbolsCmd.Flags().Bool("reset", false, "Empty the symbol space")
}
