package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 200, cfg.Solver.MaxDepth)
	assert.Equal(t, 8192, cfg.Solver.TTInitialCap)
	assert.Equal(t, 1000, cfg.Topdown.PrioMax)
	assert.Equal(t, 10000, cfg.Reporting.ProgressInterval)
	assert.Equal(t, "", cfg.Metrics.Addr)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "solver:\n  max_depth: 50\nmetrics:\n  addr: \":9400\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Solver.MaxDepth)
	assert.Equal(t, ":9400", cfg.Metrics.Addr)
	assert.Equal(t, 8192, cfg.Solver.TTInitialCap) // untouched default
}
