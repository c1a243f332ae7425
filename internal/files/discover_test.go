package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, paths ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("x = 1\n"), 0o644))
	}
	return root
}

func TestDiscoverDefaults(t *testing.T) {
	root := writeTree(t,
		"app.py",
		"pkg/util.py",
		"pkg/types.pyi",
		"README.md",
		"scripts/run.sh",
	)

	got, err := Discover(Options{Root: root})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.py", "pkg/types.pyi", "pkg/util.py"}, got)
}

func TestDiscoverSkipsDefaultDirs(t *testing.T) {
	root := writeTree(t,
		"app.py",
		".venv/lib/site.py",
		"__pycache__/app.cpython-312.py",
		".mypy_cache/3.12/app.py",
		"node_modules/thing/setup.py",
	)

	got, err := Discover(Options{Root: root})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.py"}, got)
}

func TestDiscoverExcludeGlobs(t *testing.T) {
	root := writeTree(t,
		"app.py",
		"tests/test_app.py",
		"pkg/util.py",
	)

	got, err := Discover(Options{Root: root, Exclude: []string{"tests/**"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.py", "pkg/util.py"}, got)
}

func TestDiscoverCustomInclude(t *testing.T) {
	root := writeTree(t,
		"app.py",
		"lib/core.py",
		"lib/data.json",
	)

	got, err := Discover(Options{Root: root, Include: []string{"lib/**/*.py"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/core.py"}, got)
}

func TestIsPythonSource(t *testing.T) {
	assert.True(t, isPythonSource("a/b.py"))
	assert.True(t, isPythonSource("a/b.pyi"))
	assert.False(t, isPythonSource("a/b.pyc"))
	assert.False(t, isPythonSource("Makefile"))
}
