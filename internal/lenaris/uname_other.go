//go:build !unix

package lenaris

import "runtime"

// kernelName falls back to the Go target name on hosts without uname(2).
// Such hosts classify as unsupported.
func kernelName() (string, error) {
	return runtime.GOOS, nil
}
