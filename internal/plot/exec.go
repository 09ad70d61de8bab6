package plot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ErrInterpreterNotFound is wrapped by ExecError when no interpreter is on PATH.
var ErrInterpreterNotFound = errors.New("python interpreter not found on PATH")

// defaultInterpreters are tried in order when none is configured.
var defaultInterpreters = []string{"python", "python3"}

// ExecError reports a script that could not be started or exited non-zero.
type ExecError struct {
	Command  string
	ExitCode int // -1 when the process never ran to completion
	Err      error
}

func (e *ExecError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("run %q: exit status %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("run %q: %v", e.Command, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// Executor runs a script file relative to dir.
type Executor interface {
	Run(ctx context.Context, dir, script string) error
}

// ScriptRunner runs scripts with a Python interpreter.
type ScriptRunner struct {
	// Interpreter overrides the PATH search for python, then python3.
	Interpreter string
	Stdout      io.Writer
	Stderr      io.Writer

	// LookPath defaults to exec.LookPath.
	LookPath func(string) (string, error)
}

func (r *ScriptRunner) resolve() (string, error) {
	look := r.LookPath
	if look == nil {
		look = exec.LookPath
	}
	candidates := defaultInterpreters
	if r.Interpreter != "" {
		candidates = []string{r.Interpreter}
	}
	for _, c := range candidates {
		if p, err := look(c); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrInterpreterNotFound, strings.Join(candidates, ", "))
}

// Run blocks until the child exits. Any failure, including a non-zero exit,
// is returned as an *ExecError.
func (r *ScriptRunner) Run(ctx context.Context, dir, script string) error {
	interp, err := r.resolve()
	if err != nil {
		return &ExecError{Command: script, ExitCode: -1, Err: err}
	}

	cmd := exec.CommandContext(ctx, interp, script)
	cmd.Dir = dir
	cmd.Stdout = orDefault(r.Stdout, os.Stdout)
	cmd.Stderr = orDefault(r.Stderr, os.Stderr)

	if err := cmd.Run(); err != nil {
		code := -1
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			code = ee.ExitCode()
		}
		return &ExecError{Command: interp + " " + script, ExitCode: code, Err: err}
	}
	return nil
}

func orDefault(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}
