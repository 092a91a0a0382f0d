package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/latword"
	"github.com/aretw0/latword/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of latword",
	Run: func(cmd *cobra.Command, args []string) {
		if banner, _ := cmd.Flags().GetBool("banner"); banner {
			tui.PrintBanner(cmd.OutOrStdout(), strings.TrimSpace(latword.Version))
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "latword version %s\n", strings.TrimSpace(latword.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("banner", false, "Print the banner too")
}
