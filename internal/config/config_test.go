package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultMaxErrors, cfg.ErrorLimit())
	assert.True(t, cfg.ColorEnabled())
	assert.False(t, cfg.CrossCheck)
	assert.NoError(t, cfg.CheckCompatibility("0.1.0"))
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "silicon.toml", `
color = false
max_errors = 5
cross_check = true
requires = ">= 0.1, < 1.0"

[log]
verbosity = 2
file = "silicon.log"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.ColorEnabled())
	assert.Equal(t, 5, cfg.ErrorLimit())
	assert.True(t, cfg.CrossCheck)
	assert.Equal(t, 2, cfg.Log.Verbosity)
	assert.Equal(t, "silicon.log", cfg.Log.File)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "silicon.yml", `
max_errors: 3
log:
  verbosity: 1
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.ErrorLimit())
	assert.Equal(t, 1, cfg.Log.Verbosity)
	assert.True(t, cfg.ColorEnabled())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "failed to read config")

	_, err = Load(writeFile(t, "silicon.json", `{}`))
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = Load(writeFile(t, "bad.toml", `max_errors = "many"`))
	assert.ErrorContains(t, err, "failed to parse config")

	_, err = Load(writeFile(t, "negative.yaml", `max_errors: -1`))
	assert.ErrorContains(t, err, "max_errors must not be negative")

	_, err = Load(writeFile(t, "constraint.toml", `requires = "not a version"`))
	assert.ErrorContains(t, err, "invalid requires constraint")
}

func TestCheckCompatibility(t *testing.T) {
	cfg := Default()
	cfg.Requires = "^0.3"

	assert.NoError(t, cfg.CheckCompatibility("0.3.2"))
	assert.ErrorContains(t, cfg.CheckCompatibility("0.4.0"), "does not satisfy")
	assert.ErrorContains(t, cfg.CheckCompatibility("dev"), "invalid version")
}

func TestErrorLimit(t *testing.T) {
	cfg, err := Load(writeFile(t, "unlimited.toml", "max_errors = 0"))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.ErrorLimit())

	cfg.SetErrorLimit(4)
	assert.Equal(t, 4, cfg.ErrorLimit())
	assert.Equal(t, DefaultMaxErrors, (&Config{}).ErrorLimit())
}

func TestLoadFromEnv(t *testing.T) {
	path := writeFile(t, "custom.toml", "max_errors = 7")
	t.Setenv(EnvVar, path)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.ErrorLimit())
}

func TestLoadFromEnvFallsBackToDefaults(t *testing.T) {
	t.Setenv(EnvVar, "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxErrors, cfg.ErrorLimit())
}
