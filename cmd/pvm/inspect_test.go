package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pvm-php/pvm/internal/installation"
)

func TestInspect(t *testing.T) {
	root := setupHome(t)
	installVersions(t, root, "8.2.4")

	tests := []struct {
		name    string
		ds      fakeDiscovery
		version string
		want    []string
	}{
		{
			name:    "installed on debian",
			ds:      debianHost,
			version: "8.2.4",
			want:    []string{"8.2.4", filepath.Join(root, "versions", "8.2.4"), "yes", "linux/debian", "apt"},
		},
		{
			name:    "missing on arch",
			ds:      fakeDiscovery{vendor: "Linux", distro: "arch"},
			version: "php-7.4",
			want:    []string{"7.4.0", "no", "linux/arch", "pacman"},
		},
		{
			name:    "macos",
			ds:      fakeDiscovery{vendor: "Darwin"},
			version: "8.2.4",
			want:    []string{"macos", "brew"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runPvm(t, tt.ds, "inspect", tt.version)
			if err != nil {
				t.Fatalf("inspect: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("expected %q in output:\n%s", w, out)
				}
			}
		})
	}
}

func TestInspectInvalidVersion(t *testing.T) {
	setupHome(t)

	_, err := runPvm(t, debianHost, "inspect", "latest")
	if !errors.Is(err, installation.ErrInvalidVersion) {
		t.Fatalf("expected ErrInvalidVersion, got %v", err)
	}
}
