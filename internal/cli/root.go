// Package cli provides the Cobra command structure for gramlint.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gramlint/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// usageArgs wraps a positional-argument validator so its failures map to
// the usage exit code rather than the internal-error default.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return WithExitCode(ExitUsageError, err)
		}
		return nil
	}
}

// NewRootCommand creates the root gramlint command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string
	var server string

	rootCmd := &cobra.Command{
		Use:   "gramlint",
		Short: "Grammar and style checking powered by LanguageTool",
		Long: `gramlint checks prose for grammar, style, and spelling problems using a
LanguageTool server.

It talks to the hosted languagetool.org API, any self-hosted server, or a
local Java server launched on demand from a LanguageTool jar. Markdown is
checked with its markup annotated, so code spans and URLs do not produce
spurious findings. Rules you disagree with can be ignored persistently and
re-activated later.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return WithExitCode(ExitUsageError,
				fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath()))
		},
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&server, "server", "",
		"server to check against: local, remote, or a base URL")

	// Flag parse failures are usage errors.
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WithExitCode(ExitUsageError, err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newFixCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newLanguagesCommand())
	rootCmd.AddCommand(newWordsCommand())
	rootCmd.AddCommand(newServerCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
