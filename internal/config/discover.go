package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

var fileNames = []string{
	".mvn/srcdeps.yaml",
	"srcdeps.yaml",
	"srcdeps.yml",
	"srcdeps.json",
	"srcdeps.jsonc",
}

// FileNames lists the configuration files FindFile looks for, in order.
// Paths are relative to the project directory and use forward slashes.
func FileNames() []string {
	return slices.Clone(fileNames)
}

// FindFile returns the first configuration file present in dir, or "".
func FindFile(dir string) string {
	for _, name := range fileNames {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// DefaultSourcesDirectory is where sources are checked out when the
// configuration leaves sourcesDirectory empty: ~/.m2/srcdeps.
func DefaultSourcesDirectory() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating default sources directory: %w", err)
	}
	return filepath.Join(home, ".m2", "srcdeps"), nil
}

// ResolveSourcesDirectory returns c.SourcesDirectory, or
// DefaultSourcesDirectory when it is empty.
func (c *Configuration) ResolveSourcesDirectory() (string, error) {
	if c.SourcesDirectory != "" {
		return c.SourcesDirectory, nil
	}
	return DefaultSourcesDirectory()
}
