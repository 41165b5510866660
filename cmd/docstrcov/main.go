// Package main provides the entry point for the docstrcov CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docstrcov/docstrcov/cmd/docstrcov/commands"
	"github.com/docstrcov/docstrcov/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "docstrcov",
		Short: "Docstring coverage analysis for Python sources",
		Long: `docstrcov measures how many of the functions, classes and modules
in a Python codebase carry docstrings.

Commands:
  scan      Measure docstring coverage of paths`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewScanCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "docstrcov %s (commit: %s, built: %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}
}
