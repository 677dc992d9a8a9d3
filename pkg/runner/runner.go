// Package runner executes the project setup commands sequentially in
// the new project directory, with per-command timeouts and captured
// output surfaced on failure.
package runner

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bsp-cli/bsp/pkg/errors"
	"github.com/bsp-cli/bsp/pkg/logging"
)

// Command is one external invocation of the setup sequence.
type Command struct {
	Name    string
	Args    []string
	Timeout time.Duration
	// Label is a short human-readable description shown in progress
	// output, e.g. "Synchronizing dependencies".
	Label string
}

// String returns the command line as it would be typed in a shell.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// CheckTools verifies each named tool resolves on PATH.
func CheckTools(tools ...string) error {
	for _, tool := range tools {
		if _, err := exec.LookPath(tool); err != nil {
			return errors.Newf(errors.ErrToolMissing, "required tool not found: %s", tool)
		}
	}
	return nil
}

// Runner executes Commands in a fixed working directory.
type Runner struct {
	dir string
	log zerolog.Logger
}

// New returns a Runner that executes commands in dir.
func New(dir string) *Runner {
	return &Runner{
		dir: dir,
		log: logging.GetLogger("runner"),
	}
}

// Run executes one command to completion. Failure classification:
// deadline exhaustion maps to a timeout error, context cancellation to
// an interruption, and a non-zero exit to a command failure carrying
// the captured stdout and stderr.
func (r *Runner) Run(ctx context.Context, command Command) error {
	cmdCtx := ctx
	if command.Timeout > 0 {
		var cancel context.CancelFunc
		cmdCtx, cancel = context.WithTimeout(ctx, command.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(cmdCtx, command.Name, command.Args...)
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	r.log.Debug().
		Str("command", command.String()).
		Dur("duration", time.Since(start)).
		Bool("success", err == nil).
		Msg("command finished")

	if err == nil {
		return nil
	}

	if cmdCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
		return errors.Newf(errors.ErrCommandTimeout,
			"command timed out after %s: %s", command.Timeout, command.String())
	}
	if ctx.Err() != nil {
		return errors.New(errors.ErrInterrupted, "command execution cancelled")
	}

	wrapped := errors.Wrapf(err, errors.ErrCommandFailed, "command failed: %s", command.String())
	if out := strings.TrimSpace(stdout.String()); out != "" {
		wrapped = wrapped.WithDetail("stdout", out)
	}
	if errOut := strings.TrimSpace(stderr.String()); errOut != "" {
		wrapped = wrapped.WithDetail("stderr", errOut)
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		wrapped = wrapped.WithDetail("exit_code", exitErr.ExitCode())
	}
	return wrapped
}

// RunAll executes commands in order, stopping at the first failure.
// The optional observer is called before each command starts.
func (r *Runner) RunAll(ctx context.Context, commands []Command, observer func(Command)) error {
	for _, command := range commands {
		if err := ctx.Err(); err != nil {
			return errors.New(errors.ErrInterrupted, "command execution cancelled")
		}
		if observer != nil {
			observer(command)
		}
		if err := r.Run(ctx, command); err != nil {
			return err
		}
	}
	return nil
}
