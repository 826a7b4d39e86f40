package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gramlint/internal/logging"
)

func newWordsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Manage the personal dictionary",
		Long: `Manage the personal dictionary stored with your LanguageTool premium
account. Dictionary words are never flagged as spelling mistakes.`,
	}

	cmd.AddCommand(newWordsAddCommand())

	return cmd
}

func newWordsAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <word...>",
		Short: "Add words to the personal dictionary",
		Long: `Add one or more words to the personal dictionary. Requires auth.username
and auth.api_key to be configured.

Examples:
  gramlint words add gramlint
  gramlint words add kubectl systemd`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWordsAdd(cmd, args)
		},
	}
	return cmd
}

func runWordsAdd(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	logger := logging.NewInteractive()

	cfg, _, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	if !cfg.Auth.Complete() {
		return WithExitCode(ExitDataError,
			errors.New("adding words requires both auth.username and auth.api_key"))
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	added := 0
	for _, word := range args {
		ok, err := client.AddWord(ctx, word)
		if err != nil {
			return WithExitCode(ExitDataError, fmt.Errorf("add word %q: %w", word, err))
		}
		if ok {
			added++
			logger.Info("word added", logging.FieldWord, word)
		} else {
			logger.Info("word already in dictionary", logging.FieldWord, word)
		}
	}

	logger.Info("dictionary updated", logging.FieldCount, added)
	return nil
}
