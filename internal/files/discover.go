// Package files discovers the Python sources a scan should cover.
package files

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// DefaultInclude matches the Python sources checkers understand.
var DefaultInclude = []string{"**/*.py", "**/*.pyi"}

// defaultDirExcludes are directory names skipped during the walk.
var defaultDirExcludes = map[string]bool{
	".git":          true,
	".hg":           true,
	".svn":          true,
	".venv":         true,
	"venv":          true,
	"node_modules":  true,
	"__pycache__":   true,
	".mypy_cache":   true,
	".pytest_cache": true,
	".tox":          true,
}

// Options control discovery.
type Options struct {
	Root    string
	Include []string // doublestar globs relative to Root; nil means DefaultInclude
	Exclude []string // doublestar globs; matching files are skipped
}

// Discover walks Root and returns the matching files as sorted
// Root-relative paths.
func Discover(opts Options) ([]string, error) {
	include := opts.Include
	if len(include) == 0 {
		include = DefaultInclude
	}

	var found []string
	err := filepath.WalkDir(opts.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != opts.Root && defaultDirExcludes[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(opts.Root, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if !matchesAny(include, rel) {
			return nil
		}
		if matchesAny(opts.Exclude, rel) {
			return nil
		}
		found = append(found, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(found)
	return found, nil
}

func matchesAny(globs []string, rel string) bool {
	for _, g := range globs {
		g = strings.TrimPrefix(g, "./")
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(rel)); ok {
			return true
		}
	}
	return false
}
