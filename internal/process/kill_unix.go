//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	// Best-effort; the caller's Wait still reaps the leader.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}

// isolateGroup starts cmd in its own process group so KillProcessGroup
// reaches the office suite's helper processes too.
func isolateGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
