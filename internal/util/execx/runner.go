// Package execx wraps subprocess execution behind a small interface so that
// provisioning phases and their idempotency predicates can be exercised in
// tests without spawning real processes.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Command describes a single external command invocation.
type Command struct {
	// Name is the binary name, resolved against PATH.
	Name string

	// Args are the command arguments, not including the binary name.
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env holds KEY=VALUE pairs appended to the inherited environment.
	// Delegated builders read NUM_JOBS, RISCV and DV_SIMULATORS from here.
	Env []string
}

// String renders the invocation for log and error messages.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Runner executes external commands.
type Runner interface {
	// Run executes the command, streaming its output to the user's terminal.
	// A non-zero exit is returned as a *SubprocessError.
	Run(ctx context.Context, cmd Command) error

	// Output executes the command and returns its captured standard output.
	// A non-zero exit is returned as a *SubprocessError with captured stderr.
	Output(ctx context.Context, cmd Command) (string, error)
}

// SubprocessError reports a delegated command that exited non-zero.
type SubprocessError struct {
	Command  Command
	ExitCode int
	Stderr   string
}

func (e *SubprocessError) Error() string {
	msg := fmt.Sprintf("command %q exited with code %d", e.Command.String(), e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + strings.TrimSpace(e.Stderr)
	}
	return msg
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

// NewExecRunner creates a Runner that spawns real processes.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	// #nosec G204 - command names come from fixed phase definitions, not user input
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = append(os.Environ(), cmd.Env...)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	c.Stdin = os.Stdin

	if err := c.Run(); err != nil {
		return wrapExecErr(cmd, err, "")
	}
	return nil
}

// Output implements Runner.
func (r *ExecRunner) Output(ctx context.Context, cmd Command) (string, error) {
	// #nosec G204 - command names come from fixed phase definitions, not user input
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = append(os.Environ(), cmd.Env...)

	var stderr bytes.Buffer
	c.Stderr = &stderr

	out, err := c.Output()
	if err != nil {
		return "", wrapExecErr(cmd, err, stderr.String())
	}
	return string(out), nil
}

// wrapExecErr converts exec errors into *SubprocessError where an exit code
// is available, and passes through spawn failures (binary not found) as-is.
func wrapExecErr(cmd Command, err error, stderr string) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &SubprocessError{
			Command:  cmd,
			ExitCode: exitErr.ExitCode(),
			Stderr:   stderr,
		}
	}
	return fmt.Errorf("failed to start %q: %w", cmd.String(), err)
}
