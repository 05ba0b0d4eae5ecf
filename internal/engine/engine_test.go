package engine

import (
	"context"
	"io"
	"os/exec"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestNewDefaults(t *testing.T) {
	e := New(Options{}, log.New(io.Discard))

	assert.Equal(t, "docker", e.binary)
	assert.Equal(t, []string{"history", "--no-trunc"}, e.historyArgs)
	assert.Equal(t, []string{"images"}, e.imagesArgs)
}

func TestHistoryAppendsImage(t *testing.T) {
	requireShell(t)

	e := New(Options{
		Binary:      "sh",
		HistoryArgs: []string{"-c", `echo "history of $1"`, "sh"},
	}, log.New(io.Discard))

	out, err := e.History(context.Background(), "alpine:3.20")
	require.NoError(t, err)
	assert.Equal(t, "history of alpine:3.20\n", out.Stdout)
	assert.Empty(t, out.Stderr)

	// the configured args are not mutated between calls
	out, err = e.History(context.Background(), "nginx")
	require.NoError(t, err)
	assert.Equal(t, "history of nginx\n", out.Stdout)
}

func TestRunCapturesOutputOnFailure(t *testing.T) {
	requireShell(t)

	e := New(Options{
		Binary:     "sh",
		ImagesArgs: []string{"-c", "echo partial; echo 'daemon not running' >&2; exit 3"},
	}, log.New(io.Discard))

	out, err := e.Images(context.Background())
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
	assert.Equal(t, "partial\n", out.Stdout)
	assert.Equal(t, "daemon not running\n", out.Stderr)
}

func TestRunMissingBinary(t *testing.T) {
	e := New(Options{Binary: "docker-convert-no-such-binary"}, log.New(io.Discard))

	_, err := e.Images(context.Background())
	require.ErrorIs(t, err, exec.ErrNotFound)
}
