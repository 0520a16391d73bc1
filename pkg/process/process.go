// Package process runs the external tools the tester drives: the dependency
// installer, the compiler and the linter.
//
// Callers depend on [Runner] so tests can substitute scripted results for
// real subprocesses.
package process

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Command is one invocation of an external tool.
type Command struct {
	Name string   // Executable, resolved through PATH
	Args []string // Arguments after the executable
	Dir  string   // Working directory, empty for the current one
}

// String renders c the way it would be typed in a shell, without quoting.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Result is the outcome of a command that ran to completion.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// OK reports whether the command exited with status zero.
func (r Result) OK() bool { return r.ExitCode == 0 }

// Output returns stdout followed by stderr, trimmed.
func (r Result) Output() string {
	switch {
	case r.Stdout == "":
		return strings.TrimSpace(r.Stderr)
	case r.Stderr == "":
		return strings.TrimSpace(r.Stdout)
	}
	return strings.TrimSpace(r.Stdout) + "\n" + strings.TrimSpace(r.Stderr)
}

// Runner executes commands. A non-zero exit is reported through
// Result.ExitCode; the error is reserved for commands that could not be
// started or were interrupted by ctx.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner runs commands as local subprocesses.
type ExecRunner struct {
	// Env is appended to the inherited environment.
	Env []string
}

// Run starts cmd and waits for it to exit.
func (r ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(r.Env) > 0 {
		c.Env = append(c.Environ(), r.Env...)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, ctxErr
		}
		return res, err
	}
	return res, nil
}

var _ Runner = ExecRunner{}
