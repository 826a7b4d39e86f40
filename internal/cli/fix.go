package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gramlint/internal/logging"
	"github.com/yaklabco/gramlint/internal/tui"
	"github.com/yaklabco/gramlint/pkg/annotate"
	"github.com/yaklabco/gramlint/pkg/check"
	"github.com/yaklabco/gramlint/pkg/config"
	"github.com/yaklabco/gramlint/pkg/fix"
)

type fixFlags struct {
	language string
	backup   bool
	diff     bool
}

func newFixCommand() *cobra.Command {
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix <file>",
		Short: "Interactively fix problems in a file",
		Long:  fixLongDescription,
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.language, "language", "l", "",
		"language code to check against (default: auto-detect)")
	cmd.Flags().BoolVar(&flags.backup, "backup", false,
		"write a backup sidecar with the original content before saving")
	cmd.Flags().BoolVar(&flags.diff, "diff", false,
		"preview mode: never write, print a unified diff of the edits on exit")

	return cmd
}

const fixLongDescription = `Walk through the problems LanguageTool found in a file and fix them
interactively.

The session checks the file, highlights every problem, and steps through
them one by one. Suggested corrections apply with a keypress; problems can
be dismissed for the session, or their rule deactivated permanently. The
file is only written when asked, atomically.

Examples:
  gramlint fix README.md                 # Fix a file in place
  gramlint fix --backup README.md        # Keep a README.md.bak sidecar
  gramlint fix --diff README.md          # Preview edits as a unified diff
  gramlint fix --language de-DE notes.md # Pin the language`

func runFix(cmd *cobra.Command, path string, flags *fixFlags) error {
	logger := logging.Default()

	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return WithExitCode(ExitUsageError,
			fmt.Errorf("fix needs an interactive terminal; use 'gramlint check' in scripts"))
	}

	cliCfg := &config.Config{}
	if cmd.Flags().Changed("language") {
		cliCfg.Check.Language = flags.language
	}

	finalCfg, _, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	client, err := newClient(finalCfg)
	if err != nil {
		return err
	}

	store := newStore()
	checker := check.New(client, store, logger)

	content, err := os.ReadFile(path)
	if err != nil {
		return WithExitCode(ExitIOError, fmt.Errorf("read %s: %w", path, err))
	}

	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	logger.Debug("starting fix session",
		logging.FieldPath, path,
		logging.FieldServer, client.BaseURL(),
		logging.FieldLanguage, finalCfg.Check.Language,
	)

	model := tui.NewModel(tui.Options{
		Path:     path,
		Content:  content,
		FileMode: mode,
		Checker:  checker,
		Store:    store,
		Check: check.Options{
			Language:       finalCfg.Check.Language,
			Payload:        finalCfg.Check.Payload,
			Format:         annotate.DetectFormat(path, content),
			IgnoredScopes:  finalCfg.Check.IgnoredScopes,
			HighlightScope: finalCfg.Highlight.Scope,
			Display:        finalCfg.Highlight.Display,
			NoIgnoredRules: finalCfg.NoIgnoredRules,
		},
		Backup:  flags.backup,
		Preview: flags.diff,
	})

	program := tea.NewProgram(model, tea.WithMouseCellMotion())
	final, err := program.Run()
	if err != nil {
		return WithExitCode(ExitInternalError, fmt.Errorf("fix session: %w", err))
	}

	result, ok := final.(*tui.Model)
	if !ok {
		return WithExitCode(ExitInternalError, fmt.Errorf("fix session: unexpected model %T", final))
	}

	if err := result.Err(); err != nil {
		return WithExitCode(ExitDataError, err)
	}

	if flags.diff && result.Modified() {
		d := fix.GenerateDiff(path, content, result.Content())
		if d.HasChanges() {
			fmt.Fprint(cmd.OutOrStdout(), d.FullString())
		}
	}

	if result.Modified() && !result.Saved() && !flags.diff {
		logger.Warn("session ended without writing; the file is unchanged",
			logging.FieldPath, path)
	}

	return nil
}
