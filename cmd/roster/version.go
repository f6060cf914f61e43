package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/roster"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of roster",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "roster version %s\n", strings.TrimSpace(roster.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
