//go:build unix

package launcher

import (
	"os/exec"
	"syscall"
)

// detach puts the server in its own session so it outlives the CLI.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
