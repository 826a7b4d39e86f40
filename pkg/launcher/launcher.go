// Package launcher starts a local LanguageTool server process and waits
// for it to come up.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gramlint/internal/logging"
	"github.com/yaklabco/gramlint/pkg/languagetool"
)

// ServerClass is the Java entry point inside the LanguageTool jar.
const ServerClass = "org.languagetool.server.HTTPServer"

// DefaultJavaPath is used when no Java binary is configured.
const DefaultJavaPath = "java"

// DefaultPort is the listening port used when none is configured.
const DefaultPort = 8081

// DefaultPollInterval is the readiness poll spacing.
const DefaultPollInterval = 500 * time.Millisecond

// ErrNoJar indicates the jar path setting is absent.
var ErrNoJar = errors.New("no LanguageTool jar configured: set server.jar_path")

// Launcher spawns the server process. The zero value is not usable without
// a JarPath.
type Launcher struct {
	// JarPath locates languagetool-server.jar.
	JarPath string

	// JavaPath is the Java binary. Defaults to DefaultJavaPath.
	JavaPath string

	// Port is the listening port. Defaults to DefaultPort.
	Port int

	// ExtraArgs are appended to the server command line.
	ExtraArgs []string

	// Logger defaults to the package logger.
	Logger *log.Logger
}

// Process is a started server.
type Process struct {
	cmd  *exec.Cmd
	port int
}

// PID returns the server's process ID.
func (p *Process) PID() int {
	return p.cmd.Process.Pid
}

// URL returns the server's API root.
func (p *Process) URL() string {
	return fmt.Sprintf("http://localhost:%d/v2", p.port)
}

// Stop kills the server process.
func (p *Process) Stop() error {
	if err := p.cmd.Process.Kill(); err != nil {
		return fmt.Errorf("stop server process: %w", err)
	}
	return nil
}

// Start spawns `java -cp <jar> org.languagetool.server.HTTPServer --port
// <port>`. The process is detached from the CLI's lifetime: on Unix it gets
// its own session, on Windows no console window is shown.
func (l *Launcher) Start(ctx context.Context) (*Process, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("start server: %w", ctx.Err())
	default:
	}

	if l.JarPath == "" {
		return nil, ErrNoJar
	}
	if _, err := os.Stat(l.JarPath); err != nil {
		return nil, fmt.Errorf("could not find LanguageTool's JAR file (%s): install it there or change server.jar_path: %w", l.JarPath, err)
	}

	javaPath := l.JavaPath
	if javaPath == "" {
		javaPath = DefaultJavaPath
	}
	port := l.Port
	if port == 0 {
		port = DefaultPort
	}

	args := []string{"-cp", l.JarPath, ServerClass, "--port", strconv.Itoa(port)}
	args = append(args, l.ExtraArgs...)

	cmd := exec.Command(javaPath, args...)
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start server process: %w", err)
	}

	// Reap the child if it exits while we are still around.
	go func() { _ = cmd.Wait() }()

	logger := l.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger.Info("started local LanguageTool server",
		logging.FieldPID, cmd.Process.Pid,
		logging.FieldPort, port)

	return &Process{cmd: cmd, port: port}, nil
}

// WaitReady polls the server's languages endpoint until it answers or the
// context expires. An interval of zero uses DefaultPollInterval.
func WaitReady(ctx context.Context, client *languagetool.Client, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	for {
		if _, err := client.Languages(ctx); err == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("server did not become ready: %w", ctx.Err())
		case <-time.After(interval):
		}
	}
}
