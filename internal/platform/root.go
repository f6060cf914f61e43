package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDataDir is the data directory used when none is configured.
const DefaultDataDir = ".roster"

// ConfigFileName marks a project root alongside DefaultDataDir.
const ConfigFileName = "roster.yaml"

// FindRoot looks upwards from startDir for a directory holding DefaultDataDir
// or ConfigFileName and returns its absolute path.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, DefaultDataDir) || hasFile(dir, ConfigFileName) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found")
}

// DefaultDataPath returns DefaultDataDir under the nearest root, or under
// startDir when there is none.
func DefaultDataPath(startDir string) string {
	root, err := FindRoot(startDir)
	if err != nil {
		root = startDir
	}
	return filepath.Join(root, DefaultDataDir)
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
