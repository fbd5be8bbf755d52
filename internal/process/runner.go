// Package process runs external converters and cleans up their process trees.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrTimeout is returned when a command outlives its context deadline.
var ErrTimeout = errors.New("command timed out")

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
// The command runs in its own process group; when ctx ends the whole group is killed.
type ExecRunner struct {
	// Dir is the working directory of the command. Empty means the current one.
	Dir string
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.Command(name, args...) // #nosec G204 -- binary resolved by the driver
	cmd.Dir = r.Dir
	isolateGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return "", "", fmt.Errorf("starting command: %w", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		return stdout.String(), stderr.String(), err
	case <-ctx.Done():
		KillProcessGroup(cmd.Process.Pid)
		<-done
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return stdout.String(), stderr.String(), ErrTimeout
		}
		return stdout.String(), stderr.String(), ctx.Err()
	}
}
