package appctx

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pvm-php/pvm/internal/config"
	"github.com/pvm-php/pvm/internal/lenaris"
)

type stubDiscovery struct {
	vendor, distro string
	err            error
}

func (s stubDiscovery) VendorID() (string, error) { return s.vendor, s.err }
func (s stubDiscovery) DistroID() (string, error) { return s.distro, nil }

var archHost = stubDiscovery{vendor: "Linux", distro: "arch"}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	ctx, err := NewBuilder().
		BuildPath(filepath.Join(dir, "builds")).
		VersionPath(filepath.Join(dir, "versions")).
		Discovery(archHost).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if ctx.BuildPath() != filepath.Join(dir, "builds") {
		t.Errorf("BuildPath() = %q", ctx.BuildPath())
	}
	if ctx.VersionPath() != filepath.Join(dir, "versions") {
		t.Errorf("VersionPath() = %q", ctx.VersionPath())
	}
	if want, _ := lenaris.LinuxVendor(lenaris.DistroArch); ctx.Vendor() != want {
		t.Errorf("Vendor() = %v, want linux/arch", ctx.Vendor())
	}
}

func TestBuildMissingProperty(t *testing.T) {
	tests := []struct {
		name     string
		builder  *Builder
		property string
	}{
		{"nothing set", NewBuilder(), "build path"},
		{"no version path", NewBuilder().BuildPath("/tmp/builds"), "version path"},
		{"no build path", NewBuilder().VersionPath("/tmp/versions"), "build path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Discovery(archHost).Build()
			if !errors.Is(err, ErrMissingProperty) {
				t.Fatalf("expected ErrMissingProperty, got %v", err)
			}
			var mpe *MissingPropertyError
			if !errors.As(err, &mpe) || mpe.Property != tt.property {
				t.Errorf("expected missing %q, got %v", tt.property, err)
			}
			if got, want := err.Error(), "property "+tt.property+" is missing"; got != want {
				t.Errorf("Error() = %q, want %q", got, want)
			}
		})
	}
}

func TestBuildDiscoveryFailure(t *testing.T) {
	_, err := NewBuilder().
		BuildPath("/tmp/builds").
		VersionPath("/tmp/versions").
		Discovery(stubDiscovery{vendor: "Windows"}).
		Build()
	if !errors.Is(err, lenaris.ErrUnsupportedSystem) {
		t.Errorf("expected ErrUnsupportedSystem, got %v", err)
	}

	_, err = NewBuilder().
		BuildPath("/tmp/builds").
		VersionPath("/tmp/versions").
		Discovery(stubDiscovery{err: errors.New("uname failed")}).
		Build()
	if !errors.Is(err, lenaris.ErrDiscoveryFailed) {
		t.Errorf("expected ErrDiscoveryFailed, got %v", err)
	}
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	ctx, err := NewBuilder().
		BuildPath(filepath.Join(dir, "pvm", "builds")).
		VersionPath(filepath.Join(dir, "pvm", "versions")).
		Discovery(stubDiscovery{vendor: "Darwin"}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := ctx.Init(); err != nil {
			t.Fatalf("Init #%d failed: %v", i+1, err)
		}
	}
	for _, p := range []string{ctx.BuildPath(), ctx.VersionPath()} {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			t.Errorf("expected directory %s, err=%v", p, err)
		}
	}
}

func TestInitRejectsFile(t *testing.T) {
	dir := t.TempDir()
	versions := filepath.Join(dir, "versions")
	if err := os.WriteFile(versions, []byte("not a directory"), 0o644); err != nil {
		t.Fatal(err)
	}
	ctx, err := NewBuilder().
		BuildPath(filepath.Join(dir, "builds")).
		VersionPath(versions).
		Discovery(archHost).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	err = ctx.Init()
	if err == nil || !strings.Contains(err.Error(), "is not a directory") {
		t.Fatalf("expected a not-a-directory error, got %v", err)
	}
}

func TestDefault(t *testing.T) {
	root := t.TempDir()
	cfg := &config.GlobalConfig{RootDir: root, Logging: config.LoggingConfig{Level: "info"}}

	ctx, err := Default(cfg, archHost)
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if ctx.BuildPath() != filepath.Join(root, "builds") {
		t.Errorf("BuildPath() = %q", ctx.BuildPath())
	}
	if ctx.VersionPath() != filepath.Join(root, "versions") {
		t.Errorf("VersionPath() = %q", ctx.VersionPath())
	}
}
