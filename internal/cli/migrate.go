package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gramlint/internal/configloader"
	"github.com/yaklabco/gramlint/internal/logging"
	"github.com/yaklabco/gramlint/pkg/fsutil"
)

// migrateFlags holds the flags for the migrate command.
type migrateFlags struct {
	force  bool
	output string
	input  string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [settings-file]",
		Short: "Convert Sublime Text plugin settings to gramlint format",
		Long: `Convert a LanguageTool.sublime-settings file from the Sublime Text
plugin to a gramlint configuration file. Server URLs lose their /check
endpoint suffix, and the plugin's display and scope settings carry over.

If no settings file is specified, the command looks for
LanguageTool.sublime-settings in the current directory.

Examples:
  gramlint migrate                                Auto-detect and convert
  gramlint migrate ~/Library/LanguageTool.sublime-settings
  gramlint migrate --output config.yml            Write to custom output path`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.input = args[0]
			}
			return runMigrate(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing output file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", ".gramlint.yml", "Output file path")

	return cmd
}

func runMigrate(cmd *cobra.Command, flags *migrateFlags) error {
	logger := logging.NewInteractive()

	inputPath := flags.input
	if inputPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return WithExitCode(ExitIOError, fmt.Errorf("get working directory: %w", err))
		}

		inputPath = filepath.Join(cwd, configloader.SublimeSettingsName)
		if _, err := os.Stat(inputPath); err != nil {
			return WithExitCode(ExitUsageError,
				fmt.Errorf("no %s in the current directory; pass the settings file explicitly",
					configloader.SublimeSettingsName))
		}

		logger.Info("found settings file", logging.FieldPath, inputPath)
	}

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return WithExitCode(ExitIOError, fmt.Errorf("input file does not exist: %s", inputPath))
	}

	absOutput, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	if _, err := os.Stat(absOutput); err == nil {
		if !flags.force {
			return WithExitCode(ExitUsageError,
				fmt.Errorf("output file %q already exists; use --force to overwrite", flags.output))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	result, err := configloader.ConvertSublimeSettings(inputPath)
	if err != nil {
		return WithExitCode(ExitDataError, fmt.Errorf("convert settings: %w", err))
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	header := configloader.GenerateMigrationHeader(inputPath)
	content, err := result.Config.ToYAMLWithHeader(header)
	if err != nil {
		return fmt.Errorf("serialize configuration: %w", err)
	}

	if err := fsutil.WriteAtomic(commandContext(cmd), absOutput, content, configFilePermissions); err != nil {
		return WithExitCode(ExitIOError, fmt.Errorf("write output file: %w", err))
	}

	logger.Info("migration complete", logging.FieldInput, inputPath, logging.FieldOutput, flags.output)

	if len(result.Warnings) > 0 {
		logger.Warn("review warnings above and verify the migrated configuration")
	}

	logger.Info("you can now delete the old settings file")

	return nil
}
