package lenaris

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeRelease(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "os-release")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write os-release: %v", err)
	}
	return path
}

func TestParseOSRelease(t *testing.T) {
	content := `# comment
NAME="Fedora Linux"
ID=fedora
ID_LIKE='rhel fedora'

VERSION_ID=39
broken line
`
	got, err := parseOSRelease(strings.NewReader(content))
	if err != nil {
		t.Fatalf("parseOSRelease failed: %v", err)
	}

	want := map[string]string{
		"NAME":       "Fedora Linux",
		"ID":         "fedora",
		"ID_LIKE":    "rhel fedora",
		"VERSION_ID": "39",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseOSRelease mismatch (-want +got):\n%s", diff)
	}
}

func TestSysInfoDistroID(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"quoted", "ID=rocky\nID_LIKE=\"rhel centos fedora\"\n", "rhel centos fedora"},
		{"bare", "ID=endeavouros\nID_LIKE=arch\n", "arch"},
		{"ubuntu", "ID=ubuntu\nID_LIKE=debian\n", "debian"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			si := SysInfo{ReleaseFiles: []string{writeRelease(t, tt.content)}}
			got, err := si.DistroID()
			if err != nil {
				t.Fatalf("DistroID failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("DistroID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSysInfoDistroIDFieldAbsent(t *testing.T) {
	si := SysInfo{ReleaseFiles: []string{writeRelease(t, "ID=arch\nNAME=\"Arch Linux\"\n")}}

	_, err := si.DistroID()
	if !errors.Is(err, ErrFieldAbsent) {
		t.Fatalf("expected ErrFieldAbsent, got %v", err)
	}
}

func TestSysInfoDistroIDFallback(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	present := writeRelease(t, "ID_LIKE=debian\n")

	si := SysInfo{ReleaseFiles: []string{missing, present}}
	got, err := si.DistroID()
	if err != nil {
		t.Fatalf("DistroID failed: %v", err)
	}
	if got != "debian" {
		t.Errorf("DistroID() = %q, want %q", got, "debian")
	}
}

func TestSysInfoDistroIDNoReleaseFile(t *testing.T) {
	si := SysInfo{ReleaseFiles: []string{filepath.Join(t.TempDir(), "missing")}}

	_, err := si.DistroID()
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
	if errors.Is(err, ErrFieldAbsent) {
		t.Error("a missing file must not be reported as an absent field")
	}
}

func TestSysInfoDiscoverWithReleaseFile(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("requires a Linux host")
	}

	si := SysInfo{ReleaseFiles: []string{writeRelease(t, "ID=fedora\nID_LIKE=\"rhel fedora\"\n")}}
	v, err := Discover(si)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if v != mustLinuxVendor(DistroRhel) {
		t.Errorf("Discover() = %v, want linux/rhel", v)
	}
}

func TestSysInfoVendorID(t *testing.T) {
	want := map[string]string{
		"linux":  "Linux",
		"darwin": "Darwin",
	}[runtime.GOOS]
	if want == "" {
		t.Skipf("no expected kernel name for %s", runtime.GOOS)
	}

	got, err := SysInfo{}.VendorID()
	if err != nil {
		t.Fatalf("VendorID failed: %v", err)
	}
	if got != want {
		t.Errorf("VendorID() = %q, want %q", got, want)
	}
}

func TestSysInfoDarwinSkipsRelease(t *testing.T) {
	if runtime.GOOS != "darwin" {
		t.Skip("requires a macOS host")
	}

	si := SysInfo{ReleaseFiles: []string{filepath.Join(t.TempDir(), "missing")}}
	v, err := Discover(si)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if v != MacOSVendor() {
		t.Errorf("Discover() = %v, want macos", v)
	}
}
