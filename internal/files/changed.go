package files

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// Changed returns the Python files touched in the working tree relative
// to HEAD, as root-relative paths. Files changed outside root are not
// reported. Deleted files are skipped. The root must be inside a git
// repository.
func Changed(root string) ([]string, error) {
	raw, err := gitDiff(root)
	if err != nil {
		return nil, fmt.Errorf("not in a git repository (or git not installed): %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parsed, _, err := gitdiff.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}

	var changed []string
	for _, f := range parsed {
		if f.IsDelete {
			continue
		}
		name := f.NewName
		if name == "" {
			name = f.OldName
		}
		if isPythonSource(name) {
			changed = append(changed, name)
		}
	}
	return changed, nil
}

func isPythonSource(name string) bool {
	return strings.HasSuffix(name, ".py") || strings.HasSuffix(name, ".pyi")
}

func gitDiff(root string) (string, error) {
	// --relative rebases the paths from the repository top-level onto
	// root, so they line up with Discover's output.
	cmd := exec.Command("git", "diff", "HEAD", "--relative", "--", ".")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
