package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ANTHROPIC_API_KEY", "SMARTTODO_MODEL", "SMARTTODO_DATA_DIR", "SMARTTODO_LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SMARTTODO_DATA_DIR", "/tmp/smarttodo-test")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "no-such.yaml"))
	require.NoError(t, err)

	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "/tmp/smarttodo-test", cfg.DataDir)
	assert.Equal(t, filepath.Join("/tmp/smarttodo-test", "tasks.json"), cfg.TaskPath())
	assert.Equal(t, filepath.Join("/tmp/smarttodo-test", "memory.json"), cfg.MemoryPath())
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "api_key: file-key\nmodel: claude-3-5-haiku-20241022\ndata_dir: /data/todo\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "claude-3-5-haiku-20241022", cfg.Model)
	assert.Equal(t, "/data/todo", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_key: file-key\ndata_dir: /data/todo\n"), 0o600))

	t.Setenv("ANTHROPIC_API_KEY", "env-key")
	t.Setenv("SMARTTODO_DATA_DIR", "/env/todo")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "/env/todo", cfg.DataDir)
}

func TestLoadFromInvalidYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_key: [unclosed"), 0o600))

	_, err := LoadFrom(path)
	require.Error(t, err)
}

func TestValidateRequiresAPIKey(t *testing.T) {
	cfg := &Config{}
	require.Error(t, cfg.Validate())

	cfg.APIKey = "sk-test"
	require.NoError(t, cfg.Validate())
}
