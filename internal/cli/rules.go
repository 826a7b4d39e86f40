package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gramlint/internal/logging"
	"github.com/yaklabco/gramlint/pkg/rulestore"
)

// ruleEntry represents an ignored rule in JSON output. Index is the
// 1-based position used by `rules activate`.
type ruleEntry struct {
	Index       int    `json:"index"`
	ID          string `json:"id"`
	Description string `json:"description"`
}

func newRulesCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage the ignored-rule list",
		Long: `List the rules on the persistent ignored list. Ignored rules are sent
to the server as disabled, so their problems are never reported.

Use 'rules ignore' to add a rule and 'rules activate' to re-enable one by
its list position.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRulesList(cmd, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	cmd.AddCommand(newRulesIgnoreCommand())
	cmd.AddCommand(newRulesActivateCommand())

	return cmd
}

func runRulesList(cmd *cobra.Command, asJSON bool) error {
	ctx := commandContext(cmd)

	store := newStore()
	if store == nil {
		return WithExitCode(ExitIOError, errors.New("ignored-rule store unavailable"))
	}

	entries, err := store.Load(ctx)
	if err != nil {
		return WithExitCode(ExitIOError, fmt.Errorf("load ignored rules: %w", err))
	}

	if asJSON {
		out := make([]ruleEntry, 0, len(entries))
		for i, e := range entries {
			out = append(out, ruleEntry{Index: i + 1, ID: e.ID, Description: e.Description})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode rules: %w", err)
		}
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No ignored rules.")
		return nil
	}

	for i, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%3d  %-30s %s\n", i+1, e.ID, e.Description)
	}

	return nil
}

func newRulesIgnoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ignore <rule-id> [description]",
		Short: "Add a rule to the ignored list",
		Long: `Add a rule to the persistent ignored list. The optional description is
stored alongside the ID so the list stays reviewable; problem output shows
each problem's rule ID in parentheses.

Examples:
  gramlint rules ignore MORFOLOGIK_RULE_EN_US "Possible spelling mistake"
  gramlint rules ignore UPPERCASE_SENTENCE_START`,
		Args: usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRulesIgnore(cmd, args)
		},
	}
	return cmd
}

func runRulesIgnore(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	logger := logging.NewInteractive()

	store := newStore()
	if store == nil {
		return WithExitCode(ExitIOError, errors.New("ignored-rule store unavailable"))
	}

	entry := rulestore.Entry{ID: args[0]}
	if len(args) == 2 {
		entry.Description = args[1]
	}

	if err := store.Add(ctx, entry); err != nil {
		return WithExitCode(ExitIOError, fmt.Errorf("save ignored rule: %w", err))
	}

	logger.Info("rule ignored", logging.FieldRule, entry.ID, logging.FieldPath, store.Path())
	return nil
}

func newRulesActivateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activate <index>",
		Short: "Re-enable an ignored rule by list position",
		Long: `Remove an entry from the ignored list by its 1-based position as shown
by 'gramlint rules'. The rule's problems are reported again from the next
check on.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRulesActivate(cmd, args)
		},
	}
	return cmd
}

func runRulesActivate(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	logger := logging.NewInteractive()

	index, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return WithExitCode(ExitUsageError, fmt.Errorf("invalid index %q: want a list position", args[0]))
	}

	store := newStore()
	if store == nil {
		return WithExitCode(ExitIOError, errors.New("ignored-rule store unavailable"))
	}

	removed, err := store.Remove(ctx, index-1)
	if err != nil {
		if errors.Is(err, rulestore.ErrIndexOutOfRange) {
			return WithExitCode(ExitUsageError, err)
		}
		return WithExitCode(ExitIOError, fmt.Errorf("update ignored rules: %w", err))
	}

	logger.Info("rule activated", logging.FieldRule, removed.ID)
	return nil
}
