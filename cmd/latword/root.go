package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/latword/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "latword",
	Short: "latword turns character-level lattices into word-level lattices",
	Long: `latword merges runs of character arcs between delimiter symbols (such as
word boundaries) into single word arcs, interning each character sequence
as one word label.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "latword.yaml", "Configuration file (ignored when missing)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().String("redis-addr", "", "Redis address of a shared symbol space")
	rootCmd.PersistentFlags().String("redis-prefix", "", "Key prefix of the shared symbol space")
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"log-level":      "log_level",
	"log-format":     "log_format",
	"redis-addr":     "redis.addr",
	"redis-prefix":   "redis.prefix",
	"max-length":     "max_length",
	"match-side":     "match_side",
	"acoustic-scale": "acoustic_scale",
	"graph-scale":    "graph_scale",
	"beam":           "beam",
	"save-symbols":   "save_symbols",
	"workers":        "workers",
}

// loadConfig reads the configuration file and overlays every flag the user
// set explicitly, plus extra.
func loadConfig(cmd *cobra.Command, extra map[string]any) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	overrides := map[string]any{}
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}
	for k, v := range extra {
		overrides[k] = v
	}
	return config.Load(path, overrides)
}

// openInput opens name for reading; "" and "-" mean stdin.
func openInput(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, nil
}

// createOutput creates name for writing; "" and "-" mean stdout.
func createOutput(cmd *cobra.Command, name string) (io.WriteCloser, error) {
	if name == "" || name == "-" {
		return nopWriteCloser{cmd.OutOrStdout()}, nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("failed to create output: %w", err)
	}
	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
