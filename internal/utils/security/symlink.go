package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// SymlinkPolicy decides what happens when a path turns out to be a symlink.
type SymlinkPolicy int

const (
	// RejectSymlinks fails with ErrSymlink.
	RejectSymlinks SymlinkPolicy = iota
	// ResolveSymlinks follows the link and uses its target.
	ResolveSymlinks
)

var ErrSymlink = errors.New("symlinks are not allowed")

// CheckSymlink applies policy to path and returns the path to operate on.
func CheckSymlink(path string, policy SymlinkPolicy) (string, error) {
	if policy != RejectSymlinks && policy != ResolveSymlinks {
		return "", fmt.Errorf("invalid symlink policy: %d", policy)
	}

	info, err := os.Lstat(path)
	if err != nil {
		return "", fmt.Errorf("failed to get file info for %s: %w", path, err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return path, nil
	}

	if policy == RejectSymlinks {
		return "", fmt.Errorf("%s: %w", path, ErrSymlink)
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve symlink %s: %w", path, err)
	}
	return resolved, nil
}

// SafeReadFile reads path after applying policy.
func SafeReadFile(path string, policy SymlinkPolicy) ([]byte, error) {
	target, err := CheckSymlink(path, policy)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(target)
}

// SafeWriteFile writes data to path after applying policy to the file, when
// it already exists, and to its parent directory.
func SafeWriteFile(path string, data []byte, perm os.FileMode, policy SymlinkPolicy) error {
	if _, err := os.Lstat(path); err == nil {
		target, err := CheckSymlink(path, policy)
		if err != nil {
			return fmt.Errorf("existing file symlink check failed: %w", err)
		}
		path = target
	}

	if dir := filepath.Dir(path); dir != "." && dir != "/" {
		target, err := CheckSymlink(dir, policy)
		if err != nil {
			return fmt.Errorf("parent directory symlink check failed: %w", err)
		}
		if target != dir {
			path = filepath.Join(target, filepath.Base(path))
		}
	}

	return os.WriteFile(path, data, perm)
}
