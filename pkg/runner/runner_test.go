package runner

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bsp-cli/bsp/pkg/errors"
)

func TestCheckTools(t *testing.T) {
	// sh is present on every supported platform
	if runtime.GOOS == "windows" {
		t.Skip("posix shell assumed")
	}
	assert.NoError(t, CheckTools("sh"))

	err := CheckTools("sh", "definitely-not-a-real-tool-bsp")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrToolMissing))
	assert.Contains(t, err.Error(), "definitely-not-a-real-tool-bsp")
}

func TestRunSuccess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix shell assumed")
	}
	r := New(t.TempDir())

	err := r.Run(context.Background(), Command{Name: "true"})
	assert.NoError(t, err)
}

func TestRunUsesWorkingDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix shell assumed")
	}
	dir := t.TempDir()
	r := New(dir)

	err := r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "test \"$(pwd)\" = \"" + dir + "\""}})
	assert.NoError(t, err)
}

func TestRunFailureCapturesOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix shell assumed")
	}
	r := New(t.TempDir())

	err := r.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "echo some output; echo the problem >&2; exit 3"},
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCommandFailed))

	var bspErr *errors.Error
	require.ErrorAs(t, err, &bspErr)
	assert.Equal(t, "some output", bspErr.Details["stdout"])
	assert.Equal(t, "the problem", bspErr.Details["stderr"])
	assert.Equal(t, 3, bspErr.Details["exit_code"])
}

func TestRunTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix shell assumed")
	}
	r := New(t.TempDir())

	err := r.Run(context.Background(), Command{
		Name:    "sleep",
		Args:    []string{"5"},
		Timeout: 50 * time.Millisecond,
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCommandTimeout))
}

func TestRunCancelled(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix shell assumed")
	}
	r := New(t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := r.Run(ctx, Command{Name: "sleep", Args: []string{"5"}})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInterrupted))
}

func TestRunAllStopsAtFirstFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix shell assumed")
	}
	r := New(t.TempDir())

	var started []string
	err := r.RunAll(context.Background(), []Command{
		{Name: "true", Label: "first"},
		{Name: "false", Label: "second"},
		{Name: "true", Label: "third"},
	}, func(c Command) {
		started = append(started, c.Label)
	})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCommandFailed))
	assert.Equal(t, []string{"first", "second"}, started)
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "git init", Command{Name: "git", Args: []string{"init"}}.String())
	assert.Equal(t, "true", Command{Name: "true"}.String())
}
