package security

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func makeLink(t *testing.T) (target, link string) {
	t.Helper()
	dir := t.TempDir()
	target = filepath.Join(dir, "target.yml")
	if err := os.WriteFile(target, []byte("root_dir: /opt/pvm\n"), 0o600); err != nil {
		t.Fatalf("failed to write target: %v", err)
	}
	link = filepath.Join(dir, "link.yml")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	return target, link
}

func TestCheckSymlink(t *testing.T) {
	target, link := makeLink(t)

	got, err := CheckSymlink(target, RejectSymlinks)
	if err != nil || got != target {
		t.Errorf("CheckSymlink(regular) = %q, %v", got, err)
	}

	if _, err := CheckSymlink(link, RejectSymlinks); !errors.Is(err, ErrSymlink) {
		t.Errorf("expected ErrSymlink, got %v", err)
	}

	resolved, err := CheckSymlink(link, ResolveSymlinks)
	if err != nil {
		t.Fatalf("ResolveSymlinks failed: %v", err)
	}
	want, _ := filepath.EvalSymlinks(target)
	if resolved != want {
		t.Errorf("resolved = %q, want %q", resolved, want)
	}

	if _, err := CheckSymlink(target, SymlinkPolicy(42)); err == nil {
		t.Error("expected an error for an invalid policy")
	}
	if _, err := CheckSymlink(filepath.Join(t.TempDir(), "missing"), RejectSymlinks); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestSafeReadFile(t *testing.T) {
	target, link := makeLink(t)

	data, err := SafeReadFile(target, RejectSymlinks)
	if err != nil || string(data) != "root_dir: /opt/pvm\n" {
		t.Errorf("SafeReadFile(regular) = %q, %v", data, err)
	}
	if _, err := SafeReadFile(link, RejectSymlinks); err == nil {
		t.Error("expected symlink to be rejected")
	}
	if data, err := SafeReadFile(link, ResolveSymlinks); err != nil || len(data) == 0 {
		t.Errorf("SafeReadFile(resolve) = %q, %v", data, err)
	}
}

func TestSafeWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pvm.yml")

	if err := SafeWriteFile(path, []byte("a"), 0o600, RejectSymlinks); err != nil {
		t.Fatalf("SafeWriteFile(new) failed: %v", err)
	}
	if err := SafeWriteFile(path, []byte("b"), 0o600, RejectSymlinks); err != nil {
		t.Fatalf("SafeWriteFile(overwrite) failed: %v", err)
	}
	if data, _ := os.ReadFile(path); string(data) != "b" {
		t.Errorf("file content = %q, want b", data)
	}

	_, link := makeLink(t)
	if err := SafeWriteFile(link, []byte("x"), 0o600, RejectSymlinks); err == nil {
		t.Error("expected write through symlink to be rejected")
	}
}
