package lenaris

import "errors"

var (
	ErrDiscoveryFailed   = errors.New("discovery failed")
	ErrUnsupportedSystem = errors.New("unsupported system")
	ErrUnsupportedDistro = errors.New("unsupported distro")

	// ErrFieldAbsent is returned by a DiscoveryService when the release
	// metadata was read but does not carry the requested field.
	ErrFieldAbsent = errors.New("release field absent")
)

// DiscoveryError reports that the host could not be queried.
type DiscoveryError struct {
	Reason string
	Err    error
}

func (e *DiscoveryError) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	return e.Reason + ": " + e.Err.Error()
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

func (e *DiscoveryError) Is(target error) bool {
	return target == ErrDiscoveryFailed
}

// UnsupportedSystemError carries the lower-cased kernel name that was not
// recognized.
type UnsupportedSystemError struct {
	Token string
}

func (e *UnsupportedSystemError) Error() string {
	return e.Token + " is not supported yet"
}

func (e *UnsupportedSystemError) Is(target error) bool {
	return target == ErrUnsupportedSystem
}

// UnsupportedDistroError carries the lower-cased ID_LIKE value that was not
// recognized.
type UnsupportedDistroError struct {
	Token string
}

func (e *UnsupportedDistroError) Error() string {
	return e.Token + " is not supported yet"
}

func (e *UnsupportedDistroError) Is(target error) bool {
	return target == ErrUnsupportedDistro
}
