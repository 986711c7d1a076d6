// Package main implements the squish CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"squish/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "squish",
	Short: "Squish script and stylesheet minifier",
	Long:  `Squish rewrites scripts and stylesheets into their smallest equivalent form`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(jsCmd)
	rootCmd.AddCommand(cssCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
