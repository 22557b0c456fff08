package lenaris

import "errors"

// DiscoveryService queries a machine for its raw platform identity.
type DiscoveryService interface {
	// VendorID returns the unnormalized kernel name, e.g. "Linux" or "Darwin".
	VendorID() (string, error)
	// DistroID returns the unnormalized ID_LIKE release field. It is only
	// meaningful on Linux hosts.
	DistroID() (string, error)
}

// Discover resolves the Vendor of the machine behind ds. DistroID is only
// queried once VendorID has classified the host as Linux. Results are not
// cached; every call queries ds again.
func Discover(ds DiscoveryService) (Vendor, error) {
	raw, err := ds.VendorID()
	if err != nil {
		return Vendor{}, discoveryFailed("failed vendor id discovery", err)
	}
	id, err := ParseVendorID(raw)
	if err != nil {
		return Vendor{}, err
	}

	if id == VendorMacOS {
		return MacOSVendor(), nil
	}

	raw, err = ds.DistroID()
	if err != nil {
		if errors.Is(err, ErrFieldAbsent) {
			return Vendor{}, discoveryFailed("unable to discover distro id", err)
		}
		return Vendor{}, discoveryFailed("unable to fetch release details", err)
	}
	distro, err := ParseDistroID(raw)
	if err != nil {
		return Vendor{}, err
	}
	return LinuxVendor(distro)
}

func discoveryFailed(reason string, err error) error {
	var de *DiscoveryError
	if errors.As(err, &de) {
		return de
	}
	return &DiscoveryError{Reason: reason, Err: err}
}
