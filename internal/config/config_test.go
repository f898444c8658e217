package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10000, cfg.Particles.Capacity)
	assert.Equal(t, 10*time.Second, cfg.Particles.Lifetime)
	assert.Equal(t, 8, cfg.Hanoi.Disks)
	assert.Equal(t, 100, cfg.Hanoi.Speed)
}

func TestLoadTOMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, "demo.toml", `
[demo]
name = "particles"
seed = 42

[particles]
capacity = 500
lifetime = "2s"
direction = [0.0, 2.0, 0.0]

[logging]
level = "debug"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "particles", cfg.Demo.Name)
	assert.Equal(t, uint64(42), cfg.Demo.Seed)
	assert.Equal(t, 500, cfg.Particles.Capacity)
	assert.Equal(t, 2*time.Second, cfg.Particles.Lifetime)
	assert.Equal(t, [3]float32{0, 2, 0}, cfg.Particles.Direction)
	assert.Equal(t, 10, cfg.Particles.BatchSize, "untouched keys keep defaults")
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "demo.yml", `
hanoi:
  disks: 5
  speed: 250
  auto_solve: true
  exit_when_done: true
headless:
  enabled: true
  fast: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Hanoi.Disks)
	assert.Equal(t, 250, cfg.Hanoi.Speed)
	assert.True(t, cfg.Hanoi.AutoSolve)
	assert.True(t, cfg.Hanoi.ExitWhenDone)
	assert.True(t, cfg.Headless.Enabled)
	assert.True(t, cfg.Headless.Fast)
	assert.Equal(t, 60, cfg.Headless.Hz)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeFile(t, "bad.toml", `
[demo]
name = "snake"

[particles]
batch_size = 20000
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "demo.name")
	assert.Contains(t, err.Error(), "particles.batch_size")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "demo.ini", "x=1"))
	assert.ErrorContains(t, err, "unknown format")

	_, err = Load(writeFile(t, "broken.toml", "[demo"))
	assert.ErrorContains(t, err, "parse config")
}

func TestValidateBoundsDiskCount(t *testing.T) {
	cfg := Default()
	cfg.Hanoi.Disks = 24
	require.NoError(t, cfg.Validate())

	for _, n := range []int{-1, 25, 64} {
		cfg.Hanoi.Disks = n
		err := cfg.Validate()
		assert.ErrorIs(t, err, ErrInvalidConfig, "disks %d", n)
		assert.ErrorContains(t, err, "hanoi.disks")
	}
}
