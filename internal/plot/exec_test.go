package plot_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petasbytes/repostats-agent/internal/plot"
)

func shellScript(t *testing.T, body string) (dir, name string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on Windows")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not on PATH")
	}
	dir = t.TempDir()
	name = "script.sh"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	return dir, name
}

func TestScriptRunner_Success(t *testing.T) {
	dir, name := shellScript(t, "echo ran in $(pwd)\n")
	var out bytes.Buffer
	r := &plot.ScriptRunner{Interpreter: "sh", Stdout: &out, Stderr: &out}

	require.NoError(t, r.Run(context.Background(), dir, name))
	assert.Contains(t, out.String(), "ran in")
}

func TestScriptRunner_NonZeroExit(t *testing.T) {
	dir, name := shellScript(t, "exit 3\n")
	r := &plot.ScriptRunner{Interpreter: "sh", Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	err := r.Run(context.Background(), dir, name)
	var ee *plot.ExecError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 3, ee.ExitCode)
	assert.Contains(t, err.Error(), "exit status 3")
}

func TestScriptRunner_InterpreterNotFound(t *testing.T) {
	r := &plot.ScriptRunner{LookPath: func(string) (string, error) { return "", exec.ErrNotFound }}

	err := r.Run(context.Background(), t.TempDir(), "plot_github_stats.py")
	assert.ErrorIs(t, err, plot.ErrInterpreterNotFound)
	var ee *plot.ExecError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, -1, ee.ExitCode)
}

func TestScriptRunner_FallsBackToPython3(t *testing.T) {
	var tried []string
	r := &plot.ScriptRunner{LookPath: func(name string) (string, error) {
		tried = append(tried, name)
		if name == "python3" {
			return filepath.Join(t.TempDir(), "missing-python3"), nil
		}
		return "", exec.ErrNotFound
	}}

	err := r.Run(context.Background(), t.TempDir(), "plot_github_stats.py")
	assert.Equal(t, []string{"python", "python3"}, tried)

	// The resolved binary does not exist, so the start itself fails.
	var ee *plot.ExecError
	require.ErrorAs(t, err, &ee)
	assert.Contains(t, ee.Command, "missing-python3")
	assert.False(t, errors.Is(err, plot.ErrInterpreterNotFound))
}
