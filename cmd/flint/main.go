package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"flint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "flint",
	Short: "Static analysis for dynamic multiple-dispatch code",
	Long:  `Flint inspects source without executing it and reports suspicious or erroneous constructs.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(codesCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	rootCmd.PersistentFlags().String("target-version", "", "language version for reachability (overrides flint.toml)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func colorEnabled(cmd *cobra.Command) bool {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	return isTerminal(os.Stdout)
}
