package linter

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// RunOpts controls a single command execution.
type RunOpts struct {
	// IgnoreErrors treats a non-zero exit as data in Output.Status.
	// When false a non-zero exit is returned as an *ExitStatusError.
	IgnoreErrors bool
	Timeout      time.Duration
}

// CommandRunner abstracts command execution for testability.
type CommandRunner interface {
	Run(ctx context.Context, dir string, command string, opts RunOpts) (*Output, error)
}

// Prober abstracts PATH lookups for testability.
type Prober interface {
	Exists(program string) bool
}

// ExitStatusError is returned when IgnoreErrors is false and the command
// exits non-zero.
type ExitStatusError struct {
	Command string
	Status  int
	Stderr  string
}

func (e *ExitStatusError) Error() string {
	msg := fmt.Sprintf("command %q exited with status %d", e.Command, e.Status)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// ExecRunner implements CommandRunner by shelling out.
type ExecRunner struct{}

func (e *ExecRunner) Run(ctx context.Context, dir string, command string, opts RunOpts) (*Output, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir

	var stdoutBuf, stderrBuf strings.Builder
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	out := &Output{Stdout: stdoutBuf.String(), Stderr: stderrBuf.String()}
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			out.Status = -1
			return out, fmt.Errorf("exec: %w", err)
		}
		out.Status = exitErr.ExitCode()
	}

	if out.Status != 0 && !opts.IgnoreErrors {
		return out, &ExitStatusError{Command: command, Status: out.Status, Stderr: out.Stderr}
	}
	return out, nil
}

// PathProber implements Prober against the system PATH.
type PathProber struct{}

func (p *PathProber) Exists(program string) bool {
	_, err := exec.LookPath(program)
	return err == nil
}
