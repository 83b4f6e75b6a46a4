package grenrc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coronawarn/grenrc/internal/git"
)

// ErrNotFound is returned when no config file can be discovered.
var ErrNotFound = errors.New("no gren configuration found")

// FileNames are the config file names gren looks for, in priority order.
// .grenrc.js is last: it is reported but cannot be loaded.
var FileNames = []string{".grenrc", ".grenrc.json", ".grenrc.yml", ".grenrc.yaml", ".grenrc.js"}

// Discover returns the path of the first config file in dir, falling back
// to the root of the git repository containing dir.
func Discover(dir string) (string, error) {
	if path, ok := findIn(dir); ok {
		return path, nil
	}

	root, err := git.RepositoryRoot(dir)
	if err != nil {
		logDebug("[grenrc] %s is not inside a repository: %v", dir, err)
		return "", fmt.Errorf("searching %s: %w", dir, ErrNotFound)
	}

	if path, ok := findIn(root); ok {
		return path, nil
	}
	return "", fmt.Errorf("searching %s and %s: %w", dir, root, ErrNotFound)
}

func findIn(dir string) (string, bool) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			logDebug("[grenrc] discovered %s", path)
			return path, true
		}
	}
	return "", false
}
