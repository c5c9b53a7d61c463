//go:build unix && !linux && !darwin

package hostinfo

import (
	"runtime"

	"golang.org/x/sys/unix"
)

func osVersion() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return runtime.GOOS
	}
	return unix.ByteSliceToString(uts.Sysname[:]) + " " + unix.ByteSliceToString(uts.Release[:])
}
