package version

// Build metadata, overridden at link time with
// -ldflags "-X github.com/pvm-php/pvm/internal/config/version.Version=...".
var (
	Version   = "0.1.0-dev"
	Toolname  = "pvm"
	BuildDate = "unknown"
	CommitSHA = "unknown"
)
