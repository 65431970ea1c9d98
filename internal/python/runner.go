// Package python locates a Python interpreter and drives pip and import
// probes through it. All subprocess access goes through the Runner interface
// so the workflow can be exercised without a real interpreter.
package python

import (
	"context"
	"io"
	"os"
	"os/exec"
)

// Runner executes external commands. Run streams the child's output to the
// operator; RunQuiet discards it (used for probes whose failure is expected);
// RunIn runs with an explicit working directory.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
	RunQuiet(ctx context.Context, name string, args ...string) error
	RunIn(ctx context.Context, dir, name string, args ...string) error
}

// ExecRunner is the os/exec backed Runner used outside tests.
type ExecRunner struct{}

// Run executes the command with stdout/stderr passed through.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// RunIn executes the command in dir with stdout/stderr passed through.
func (ExecRunner) RunIn(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// RunQuiet executes the command with all output discarded.
func (ExecRunner) RunQuiet(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run()
}
