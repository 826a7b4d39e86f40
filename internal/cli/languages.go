package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gramlint/pkg/languagetool"
)

func newLanguagesCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List the languages the server supports",
		Long: `Fetch the configured server's language catalog and print each language
with its long code, the value accepted by --language.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLanguages(cmd, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	return cmd
}

func runLanguages(cmd *cobra.Command, asJSON bool) error {
	ctx := commandContext(cmd)

	cfg, _, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	languages, err := client.Languages(ctx)
	if err != nil {
		return WithExitCode(ExitDataError, fmt.Errorf("fetch languages: %w", err))
	}

	sort.Slice(languages, func(i, j int) bool {
		if languages[i].Name != languages[j].Name {
			return languages[i].Name < languages[j].Name
		}
		return languages[i].LongCode < languages[j].LongCode
	})

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(languages); err != nil {
			return fmt.Errorf("encode languages: %w", err)
		}
		return nil
	}

	printLanguages(cmd, languages)
	return nil
}

func printLanguages(cmd *cobra.Command, languages []languagetool.Language) {
	for _, lang := range languages {
		fmt.Fprintf(cmd.OutOrStdout(), "%-40s %s\n", lang.Name, lang.LongCode)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d languages\n", len(languages))
}
