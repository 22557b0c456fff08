// Package installation reads the PHP versions installed under the versions
// directory. Each subdirectory named after a PHP version is one installation.
package installation

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pvm-php/pvm/internal/utils/logger"
)

var log = logger.Logger()

var (
	ErrInvalidVersion = errors.New("invalid PHP version")
	ErrNotInstalled   = errors.New("PHP version is not installed")
)

// Installation is one installed PHP version.
type Installation struct {
	Version *semver.Version
	Path    string
}

// ParseVersion parses a user supplied PHP version such as "8", "8.1",
// "8.1.9", "v8.1.9" or "php-8.1.9".
func ParseVersion(s string) (*semver.Version, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "php-")
	v, err := semver.NewVersion(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidVersion, s, err)
	}
	return v, nil
}

// Path returns the directory that holds version under versionsDir.
func Path(versionsDir string, version *semver.Version) string {
	return filepath.Join(versionsDir, version.String())
}

// List returns the installations under versionsDir sorted by ascending
// version. A missing directory holds no installations.
func List(versionsDir string) ([]Installation, error) {
	entries, err := os.ReadDir(versionsDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading versions directory %s: %w", versionsDir, err)
	}

	var installs []Installation
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		v, err := semver.NewVersion(entry.Name())
		if err != nil {
			log.Debugf("Skipping %s: not a PHP version directory", filepath.Join(versionsDir, entry.Name()))
			continue
		}
		installs = append(installs, Installation{
			Version: v,
			Path:    filepath.Join(versionsDir, entry.Name()),
		})
	}

	sort.Slice(installs, func(i, j int) bool {
		return installs[i].Version.LessThan(installs[j].Version)
	})
	return installs, nil
}

// Find returns the installation of version, matching "8.1" and "8.1.0"
// alike.
func Find(versionsDir string, version *semver.Version) (Installation, error) {
	installs, err := List(versionsDir)
	if err != nil {
		return Installation{}, err
	}
	for _, inst := range installs {
		if inst.Version.Equal(version) {
			return inst, nil
		}
	}
	return Installation{}, fmt.Errorf("%w: %s", ErrNotInstalled, version)
}
