package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gramlint/internal/logging"
	"github.com/yaklabco/gramlint/pkg/check"
	"github.com/yaklabco/gramlint/pkg/config"
	"github.com/yaklabco/gramlint/pkg/reporter"
	"github.com/yaklabco/gramlint/pkg/runner"
)

type checkFlags struct {
	language       string
	format         string
	payload        string
	jobs           int
	ignore         []string
	noIgnoredRules bool
	watch          bool
	compact        bool
	showURLs       bool
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check files for grammar and style problems",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	addCheckFlags(cmd, flags)

	return cmd
}

const checkLongDescription = `Check prose in Markdown and plain-text files against a LanguageTool
server.

By default, checks all .md, .markdown, .txt, and .text files in the
current directory and subdirectories. Specify paths to check specific
files or directories. Markdown files are submitted with markup annotated
so code spans and URLs are not flagged.

Examples:
  gramlint check                         # Check current directory
  gramlint check docs/                   # Check docs directory
  gramlint check README.md               # Check single file
  gramlint check --language en-US        # Pin the language
  gramlint check --server local          # Use the local server
  gramlint check --format json           # Output as JSON for tooling
  gramlint check --watch                 # Re-check on file changes`

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	logger := logging.Default()
	ctx := commandContext(cmd)

	finalCfg, workDir, err := loadConfig(cmd, checkCLIConfig(cmd, flags))
	if err != nil {
		return err
	}

	client, err := newClient(finalCfg)
	if err != nil {
		return err
	}

	checker := check.New(client, newStore(), logger)

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   finalCfg.Check.Extensions,
		ExcludeGlobs: finalCfg.Exclude,
		Jobs:         finalCfg.Jobs,
		Checker:      checker,
		Check: check.Options{
			Language:       finalCfg.Check.Language,
			Payload:        finalCfg.Check.Payload,
			IgnoredScopes:  finalCfg.Check.IgnoredScopes,
			NoIgnoredRules: finalCfg.NoIgnoredRules,
		},
	}

	logger.Debug("starting check run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldServer, client.BaseURL(),
		logging.FieldLanguage, runOpts.Check.Language,
		logging.FieldJobs, runOpts.Jobs,
	)

	rep, err := newCheckReporter(cmd, finalCfg, flags, workDir)
	if err != nil {
		return err
	}

	if finalCfg.Watch {
		return runWatch(ctx, runOpts, rep)
	}

	result, err := runner.Run(ctx, runOpts)
	if err != nil {
		return WithExitCode(ExitIOError, fmt.Errorf("check run: %w", err))
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	switch {
	case result.HasErrors():
		return ErrFilesFailed
	case result.HasProblems():
		return ErrProblemsFound
	}

	return nil
}

// checkCLIConfig translates check flags into a CLI-level config overlay.
// Flags with meaningful zero values only apply when explicitly set, so a
// config file keeps its say.
func checkCLIConfig(cmd *cobra.Command, flags *checkFlags) *config.Config {
	cfg := &config.Config{}

	if cmd.Flags().Changed("language") {
		cfg.Check.Language = flags.language
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("payload") {
		cfg.Check.Payload = config.PayloadKind(flags.payload)
	}

	cfg.Jobs = flags.jobs
	cfg.Exclude = flags.ignore
	cfg.NoIgnoredRules = flags.noIgnoredRules
	cfg.Watch = flags.watch

	return cfg
}

// newCheckReporter builds the reporter for the resolved output settings.
func newCheckReporter(
	cmd *cobra.Command,
	cfg *config.Config,
	flags *checkFlags,
	workDir string,
) (reporter.Reporter, error) {
	format, err := reporter.ParseFormat(string(cfg.Output.Format))
	if err != nil {
		return nil, WithExitCode(ExitUsageError, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:           cmd.OutOrStdout(),
		ErrorWriter:      cmd.ErrOrStderr(),
		Format:           format,
		Color:            string(cfg.Output.Color),
		ShowURLs:         flags.showURLs,
		ShowReplacements: true,
		ShowSummary:      true,
		GroupByFile:      true,
		Compact:          flags.compact,
		WorkingDir:       workDir,
	})
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}
	return rep, nil
}

// runWatch runs the batch continuously, reporting after every pass.
func runWatch(ctx context.Context, opts runner.Options, rep reporter.Reporter) error {
	logger := logging.Default()
	logger.Info("watching for changes; press Ctrl-C to stop",
		logging.FieldPaths, opts.Paths)

	err := runner.Watch(ctx, opts, func(result *runner.Result) {
		if _, reportErr := rep.Report(ctx, result); reportErr != nil {
			logger.Error("report failed", logging.FieldError, reportErr)
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return WithExitCode(ExitInternalError, fmt.Errorf("watch: %w", err))
	}

	return nil
}

func addCheckFlags(cmd *cobra.Command, flags *checkFlags) {
	cmd.Flags().StringVar(&flags.language, "language", "",
		"language code to check against (default from config, auto = detect)")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json, summary")
	cmd.Flags().StringVar(&flags.payload, "payload", "",
		"request payload kind: data (markup-aware) or text")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip")
	cmd.Flags().BoolVar(&flags.noIgnoredRules, "no-ignored-rules", false,
		"report problems even for rules on the ignored list")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "re-run when watched files change")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "omit source-line context")
	cmd.Flags().BoolVar(&flags.showURLs, "show-urls", false, "include rule documentation links")
}
