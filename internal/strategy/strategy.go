// Package strategy selects how PHP build dependencies are installed on a
// resolved host vendor.
package strategy

import (
	"errors"
	"fmt"

	"github.com/pvm-php/pvm/internal/lenaris"
	"github.com/pvm-php/pvm/internal/utils/shell"
)

var ErrNoStrategy = errors.New("no install strategy")

// Strategy describes the host package manager used to prepare a PHP build.
type Strategy struct {
	PackageManager string
	InstallCommand []string
	BuildDeps      []string
}

// Command returns the full command line installing the build dependencies.
func (s Strategy) Command() []string {
	cmd := make([]string, 0, len(s.InstallCommand)+len(s.BuildDeps))
	cmd = append(cmd, s.InstallCommand...)
	return append(cmd, s.BuildDeps...)
}

// Available reports whether the install command is present on the host.
func (s Strategy) Available() bool {
	if len(s.InstallCommand) == 0 {
		return false
	}
	return shell.IsCommandExist(s.InstallCommand[0])
}

// For returns the strategy of v.
func For(v lenaris.Vendor) (Strategy, error) {
	if v.IsZero() {
		return Strategy{}, fmt.Errorf("%w: vendor was not resolved", ErrNoStrategy)
	}
	switch v.ID() {
	case lenaris.VendorMacOS:
		return Strategy{
			PackageManager: "brew",
			InstallCommand: []string{"brew", "install"},
			BuildDeps:      []string{"autoconf", "bison", "re2c", "pkg-config", "libxml2", "openssl@3", "sqlite"},
		}, nil
	case lenaris.VendorLinux:
		distro, _ := v.Distro()
		return forDistro(distro)
	}
	return Strategy{}, fmt.Errorf("%w for vendor %v", ErrNoStrategy, v.ID())
}

func forDistro(distro lenaris.DistroID) (Strategy, error) {
	switch distro {
	case lenaris.DistroDebian:
		return Strategy{
			PackageManager: "apt",
			InstallCommand: []string{"apt-get", "install", "-y"},
			BuildDeps:      []string{"build-essential", "autoconf", "bison", "re2c", "pkg-config", "libxml2-dev", "libssl-dev", "libsqlite3-dev"},
		}, nil
	case lenaris.DistroArch:
		return Strategy{
			PackageManager: "pacman",
			InstallCommand: []string{"pacman", "-S", "--noconfirm"},
			BuildDeps:      []string{"base-devel", "autoconf", "bison", "re2c", "pkgconf", "libxml2", "openssl", "sqlite"},
		}, nil
	case lenaris.DistroRhel:
		return Strategy{
			PackageManager: "dnf",
			InstallCommand: []string{"dnf", "install", "-y"},
			BuildDeps:      []string{"gcc", "make", "autoconf", "bison", "re2c", "pkgconf-pkg-config", "libxml2-devel", "openssl-devel", "sqlite-devel"},
		}, nil
	}
	return Strategy{}, fmt.Errorf("%w for distro %v", ErrNoStrategy, distro)
}
