package platform

import (
	"errors"
	"os"
	"path/filepath"
)

const (
	// SystemDir is the hidden directory holding a workspace's fs data.
	SystemDir = ".notepad"
	// ConfigFile is the name of the workspace configuration file.
	ConfigFile = "notepad.yaml"
)

// ErrRootNotFound is returned by FindRoot when no ancestor is a workspace.
var ErrRootNotFound = errors.New("workspace root not found")

// FindRoot recursively looks upwards for a workspace root indicator.
// Indicators are: a .notepad directory or a notepad.yaml file.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, SystemDir) || hasFile(dir, ConfigFile) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", ErrRootNotFound
}

func hasFile(dir, name string) bool {
	path := filepath.Join(dir, name)
	_, err := os.Stat(path)
	return err == nil
}
