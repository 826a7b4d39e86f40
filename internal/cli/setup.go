package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gramlint/internal/configloader"
	"github.com/yaklabco/gramlint/internal/logging"
	"github.com/yaklabco/gramlint/pkg/config"
	"github.com/yaklabco/gramlint/pkg/languagetool"
	"github.com/yaklabco/gramlint/pkg/rulestore"
)

// commandContext returns the command's context, falling back to Background.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the effective configuration for a command run. The
// root command's persistent flags (--config, --server, --color) are folded
// into the CLI-level config before loading. Returns the final config and
// the working directory used for discovery.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	logger := logging.Default()

	if cliCfg == nil {
		cliCfg = &config.Config{}
	}

	if serverFlag, err := cmd.Flags().GetString("server"); err == nil && serverFlag != "" {
		if err := cliCfg.ApplyServer(serverFlag); err != nil {
			return nil, "", WithExitCode(ExitUsageError, err)
		}
	}
	if cmd.Flags().Changed("color") {
		colorFlag, err := cmd.Flags().GetString("color")
		if err == nil {
			cliCfg.Output.Color = config.ColorMode(colorFlag)
		}
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", WithExitCode(ExitIOError, fmt.Errorf("get working directory: %w", err))
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", WithExitCode(ExitDataError, fmt.Errorf("load configuration: %w", err))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult.Config, workDir, nil
}

// newClient builds the transport client for the configured server.
func newClient(cfg *config.Config) (*languagetool.Client, error) {
	client, err := languagetool.New(languagetool.Options{
		BaseURL:  cfg.ServerURL(""),
		Username: cfg.Auth.Username,
		APIKey:   cfg.Auth.APIKey,
		Timeout:  cfg.Server.Timeout.Std(),
	})
	if err != nil {
		return nil, WithExitCode(ExitDataError, fmt.Errorf("server client: %w", err))
	}
	return client, nil
}

// newStore opens the ignored-rule store at its default location. A store
// that cannot be located degrades to no rule filtering rather than failing
// the run.
func newStore() *rulestore.Store {
	path, err := rulestore.DefaultPath()
	if err != nil {
		logging.Default().Warn("ignored-rule store unavailable", logging.FieldError, err)
		return nil
	}
	return rulestore.New(path)
}
