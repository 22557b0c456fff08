// Package lenaris detects the host operating system and, on Linux, the
// distribution family used to pick a PHP installation strategy.
package lenaris

import (
	"encoding/json"
	"fmt"
	"strings"
)

// VendorID identifies the host operating system family.
type VendorID int

const (
	VendorLinux VendorID = iota + 1
	VendorMacOS
)

func (v VendorID) String() string {
	switch v {
	case VendorLinux:
		return "linux"
	case VendorMacOS:
		return "macos"
	default:
		return fmt.Sprintf("VendorID(%d)", int(v))
	}
}

// ParseVendorID classifies a raw kernel name such as "Linux" or "Darwin".
func ParseVendorID(raw string) (VendorID, error) {
	token := strings.ToLower(raw)
	switch token {
	case "linux":
		return VendorLinux, nil
	case "darwin":
		return VendorMacOS, nil
	default:
		return 0, &UnsupportedSystemError{Token: token}
	}
}

// DistroID identifies a Linux distribution family.
type DistroID int

const (
	DistroArch DistroID = iota + 1
	DistroDebian
	DistroRhel
)

func (d DistroID) String() string {
	switch d {
	case DistroArch:
		return "arch"
	case DistroDebian:
		return "debian"
	case DistroRhel:
		return "rhel"
	default:
		return fmt.Sprintf("DistroID(%d)", int(d))
	}
}

// ParseDistroID classifies a raw ID_LIKE value. Only whole-field literals are
// recognized; "rhel fedora" is accepted as written and not split.
func ParseDistroID(raw string) (DistroID, error) {
	token := strings.ToLower(raw)
	switch token {
	case "debian":
		return DistroDebian, nil
	case "arch":
		return DistroArch, nil
	case "rhel", "rhel fedora":
		return DistroRhel, nil
	default:
		return 0, &UnsupportedDistroError{Token: token}
	}
}

// Vendor is the resolved host platform. A Linux vendor always carries a
// distro and a macOS vendor never does.
type Vendor struct {
	id     VendorID
	distro DistroID
}

// LinuxVendor returns the vendor of a Linux host of the given family. Ids
// outside the known families are rejected with an UnsupportedDistroError.
func LinuxVendor(distro DistroID) (Vendor, error) {
	switch distro {
	case DistroArch, DistroDebian, DistroRhel:
		return Vendor{id: VendorLinux, distro: distro}, nil
	}
	return Vendor{}, &UnsupportedDistroError{Token: strings.ToLower(distro.String())}
}

// MacOSVendor returns the vendor of a macOS host.
func MacOSVendor() Vendor {
	return Vendor{id: VendorMacOS}
}

func (v Vendor) ID() VendorID {
	return v.id
}

// Distro reports the distribution family. ok is false for non-Linux vendors.
func (v Vendor) Distro() (distro DistroID, ok bool) {
	if v.id != VendorLinux {
		return 0, false
	}
	return v.distro, true
}

// IsZero reports whether v was never resolved.
func (v Vendor) IsZero() bool {
	return v.id == 0
}

func (v Vendor) String() string {
	if distro, ok := v.Distro(); ok {
		return v.id.String() + "/" + distro.String()
	}
	return v.id.String()
}

type vendorJSON struct {
	Vendor string `json:"vendor"`
	Distro string `json:"distro,omitempty"`
}

func (v Vendor) MarshalJSON() ([]byte, error) {
	out := vendorJSON{Vendor: v.id.String()}
	if distro, ok := v.Distro(); ok {
		out.Distro = distro.String()
	}
	return json.Marshal(out)
}
