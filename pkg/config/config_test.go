package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.5, cfg.Spatial.Theta)
	assert.Equal(t, 50.0, cfg.Spatial.CellSize)
	assert.Equal(t, 0.10, cfg.Layout.FullRelayoutFraction)
	assert.Equal(t, "breadth-first", cfg.Partition.Algorithm)
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
spatial:
  theta: 0.8
layout:
  iterations: 100
`))
	require.NoError(t, err)

	assert.Equal(t, 0.8, cfg.Spatial.Theta)
	assert.Equal(t, 100, cfg.Layout.Iterations)
	// Untouched fields keep the defaults.
	assert.Equal(t, 50.0, cfg.Spatial.CellSize)
	assert.Equal(t, 10000.0, cfg.Layout.RepulsionStrength)
}

func TestParse_RejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"negative theta", "spatial:\n  theta: -0.5\n"},
		{"zero cell size", "spatial:\n  cell_size: 0\n"},
		{"zero fov", "frustum:\n  fov: 0\n"},
		{"far before near", "frustum:\n  near: 100\n  far: 50\n"},
		{"hysteresis at one", "lod:\n  hysteresis: 1.0\n"},
		{"descending lod distances", "lod:\n  distances: [100, 50, 1000, 2000]\n"},
		{"unknown algorithm", "partition:\n  algorithm: metis\n"},
		{"min above max", "partition:\n  min_size: 2000\n"},
		{"zero iterations", "layout:\n  iterations: 0\n"},
		{"relayout fraction above one", "layout:\n  full_relayout_fraction: 1.5\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "expected ErrInvalidConfig, got %v", err)
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("spatial: [not a map"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidConfig), "syntax errors are not validation errors")
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("spatial:\n  theta: 0.75\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.75, cfg.Spatial.Theta)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
