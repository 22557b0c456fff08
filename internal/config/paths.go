package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// expandHome replaces a leading "~" with the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expanding %q: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Root returns the absolute root directory.
func (gc *GlobalConfig) Root() (string, error) {
	root, err := expandHome(gc.RootDir)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving root directory: %w", err)
	}
	return abs, nil
}

// Path joins parts under the root directory.
func (gc *GlobalConfig) Path(parts ...string) (string, error) {
	root, err := gc.Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{root}, parts...)...), nil
}

// BuildsPath returns the source build directory.
func (gc *GlobalConfig) BuildsPath() (string, error) {
	return gc.dirOrDefault(gc.BuildsDir, buildsName)
}

// VersionsPath returns the directory holding installed versions.
func (gc *GlobalConfig) VersionsPath() (string, error) {
	return gc.dirOrDefault(gc.VersionsDir, versionsName)
}

func (gc *GlobalConfig) dirOrDefault(dir, name string) (string, error) {
	if dir == "" {
		return gc.Path(name)
	}
	expanded, err := expandHome(dir)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolving %s directory: %w", name, err)
	}
	return abs, nil
}

// PvmPath joins parts under the global root directory.
func PvmPath(parts ...string) (string, error) {
	return Global().Path(parts...)
}

func BuildsPath() (string, error) {
	return Global().BuildsPath()
}

func VersionsPath() (string, error) {
	return Global().VersionsPath()
}
