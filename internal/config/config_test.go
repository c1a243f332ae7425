package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typeview.yml")
	data := `checker: dmypy
args: [run, --, --strict]
include:
  - "src/**/*.py"
exclude:
  - "src/generated/**"
batch: 10
editor: nvim
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dmypy", cfg.Checker)
	assert.Equal(t, []string{"run", "--", "--strict"}, cfg.Args)
	assert.Equal(t, []string{"src/**/*.py"}, cfg.Include)
	assert.Equal(t, []string{"src/generated/**"}, cfg.Exclude)
	assert.Equal(t, 10, cfg.Batch)
	assert.Equal(t, "nvim", cfg.Editor)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typeview.yml")
	require.NoError(t, os.WriteFile(path, []byte("args: [--strict]\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mypy", cfg.Checker)
	assert.Equal(t, 50, cfg.Batch)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typeview.yml")
	require.NoError(t, os.WriteFile(path, []byte("checker: [unterminated\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDiscoverFindsLocalConfig(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".typeview.yml"), []byte("checker: pyright\n"), 0o644))

	cfg, path, err := Discover(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".typeview.yml"), path)
	assert.Equal(t, "pyright", cfg.Checker)
}

func TestDiscoverNoConfig(t *testing.T) {
	cfg, path, err := Discover(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), cfg)
}
