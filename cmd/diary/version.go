// ABOUTME: Version command for the diary CLI.
// ABOUTME: Prints the build version set via -ldflags.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the diary version",
	Run: func(cmd *cobra.Command, args []string) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "diary %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
