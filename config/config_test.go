package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), false)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 10000, cfg.Cache.MaxEntries)
	assert.Equal(t, 200, cfg.Solver.MaxIterations)
	assert.InDelta(t, 0.05, cfg.Solver.Guess, 1e-12)
	assert.InDelta(t, 1e-7, cfg.Solver.Tolerance, 1e-15)
	assert.Equal(t, 30, cfg.Projection.DefaultHorizon)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  http_addr: ":9090"
cache:
  driver: redis
  ttl: 5m
solver:
  max_iterations: 50
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	t.Setenv("PI_LOG_LEVEL", "debug")

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.HTTPAddr)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 50, cfg.Solver.MaxIterations)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOnlyIgnoresFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  http_addr: \":9090\"\n"), 0o600))

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [\n"), 0o600))

	_, err := Load(path, false)
	assert.Error(t, err)
}
