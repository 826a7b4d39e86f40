package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gramlint/internal/logging"
	"github.com/yaklabco/gramlint/pkg/languagetool"
	"github.com/yaklabco/gramlint/pkg/launcher"
)

// serverStartTimeout bounds the readiness poll after launching the jar.
const serverStartTimeout = 60 * time.Second

func newServerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Manage the local LanguageTool server",
		Long: `Start and probe a local LanguageTool server. The server runs from
languagetool-server.jar (server.jar_path) and keeps running after gramlint
exits; point checks at it with --server local.`,
	}

	cmd.AddCommand(newServerStartCommand())
	cmd.AddCommand(newServerPingCommand())

	return cmd
}

func newServerStartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the local server and wait until it answers",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServerStart(cmd)
		},
	}
	return cmd
}

func runServerStart(cmd *cobra.Command) error {
	logger := logging.NewInteractive()
	ctx := commandContext(cmd)

	cfg, _, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	l := launcher.Launcher{
		JarPath: cfg.Server.JarPath,
		Port:    cfg.Server.Port,
		Logger:  logger,
	}

	proc, err := l.Start(ctx)
	if err != nil {
		return WithExitCode(ExitDataError, err)
	}

	client, err := languagetool.New(languagetool.Options{
		BaseURL: proc.URL(),
		Timeout: cfg.Server.Timeout.Std(),
	})
	if err != nil {
		return WithExitCode(ExitInternalError, fmt.Errorf("server client: %w", err))
	}

	waitCtx, cancel := context.WithTimeout(ctx, serverStartTimeout)
	defer cancel()

	logger.Info("waiting for server", logging.FieldURL, proc.URL())
	if err := launcher.WaitReady(waitCtx, client, 0); err != nil {
		return WithExitCode(ExitInternalError, err)
	}

	logger.Info("server ready",
		logging.FieldURL, proc.URL(),
		logging.FieldPID, proc.PID(),
	)
	fmt.Fprintln(cmd.OutOrStdout(), proc.URL())

	return nil
}

func newServerPingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check that the configured server answers",
		Long: `Make one languages round-trip against the configured server and report
the latency. Honors --server, so 'gramlint server ping --server local'
probes the local instance.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServerPing(cmd)
		},
	}
	return cmd
}

func runServerPing(cmd *cobra.Command) error {
	logger := logging.NewInteractive()
	ctx := commandContext(cmd)

	cfg, _, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	languages, err := client.Languages(ctx)
	if err != nil {
		return WithExitCode(ExitDataError,
			fmt.Errorf("server %s did not answer: %w", client.BaseURL(), err))
	}

	logger.Info("server answered",
		logging.FieldServer, client.BaseURL(),
		logging.FieldLatency, time.Since(start).Round(time.Millisecond),
		logging.FieldCount, len(languages),
	)

	return nil
}
