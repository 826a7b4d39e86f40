//go:build windows

package launcher

import (
	"os/exec"
	"syscall"
)

// detach suppresses the console window the server would otherwise open.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
