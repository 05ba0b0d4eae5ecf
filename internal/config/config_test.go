package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigEmptyPath(t *testing.T) {
	t.Setenv(EngineEnv, "")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv(EngineEnv, "")

	path := writeConfig(t, `
engine:
  binary: podman
  history_args: [history, --no-trunc, --human]
keywords: [RUN, COPY]
output:
  dir: out
  prefix: Containerfile
secrets:
  disabled: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "podman", cfg.Engine.Binary)
	assert.Equal(t, []string{"history", "--no-trunc", "--human"}, cfg.Engine.HistoryArgs)
	assert.Empty(t, cfg.Engine.ImagesArgs)
	assert.Equal(t, []string{"RUN", "COPY"}, cfg.Keywords)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "Containerfile", cfg.Output.Prefix)
	assert.True(t, cfg.Secrets.Disabled)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv(EngineEnv, "nerdctl")

	cfg, err := LoadConfig(writeConfig(t, "engine:\n  binary: podman\n"))
	require.NoError(t, err)
	assert.Equal(t, "nerdctl", cfg.Engine.Binary)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Setenv(EngineEnv, "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeConfig(t, "keywords: [RUN\n"))
	require.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "keywords: [RUN, \"\"]\n"))
	require.ErrorContains(t, err, "keywords[1]")

	_, err = LoadConfig(writeConfig(t, "output:\n  prefix: a/b\n"))
	require.ErrorContains(t, err, "path separator")
}
