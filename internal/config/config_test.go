package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udp-cs/groupassign/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.False(t, cfg.IncludeMissing)
	assert.Equal(t, 600, cfg.TimeBudgetS)
	assert.Equal(t, 8, cfg.WAvail)
	assert.Equal(t, 4, cfg.WMeet)
	assert.Equal(t, 1, cfg.WSection)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadOverlaysYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("time_budget_s: 120\ninclude_missing: true\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.TimeBudgetS)
	assert.True(t, cfg.IncludeMissing)
	assert.Equal(t, 8, cfg.WAvail) // untouched fields keep their default
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := config.Load("/nonexistent/path/cfg.yaml")
	assert.Error(t, err)
}

func TestWeightsValidatesOrdering(t *testing.T) {
	cfg := config.Default()
	w, err := cfg.Weights()
	require.NoError(t, err)
	assert.True(t, w.Valid())

	cfg.WAvail = 1
	cfg.WMeet = 2
	_, err = cfg.Weights()
	assert.Error(t, err)
}
