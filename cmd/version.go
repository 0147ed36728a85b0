package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Actual version can be overridden via -ldflags at build time.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the jobscout version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s version: %s\n", app, version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
