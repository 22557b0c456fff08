//go:build unix

package lenaris

import "golang.org/x/sys/unix"

func kernelName() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", err
	}
	return unix.ByteSliceToString(uts.Sysname[:]), nil
}
