//go:build darwin

package hostinfo

import "golang.org/x/sys/unix"

func osVersion() string {
	product, err := unix.Sysctl("kern.osproductversion")
	if err != nil || product == "" {
		return uname("macOS")
	}

	version := "macOS " + product
	if build, err := unix.Sysctl("kern.osversion"); err == nil && build != "" {
		version += " (" + build + ")"
	}
	return version
}

func uname(fallback string) string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return fallback
	}
	return unix.ByteSliceToString(uts.Sysname[:]) + " " + unix.ByteSliceToString(uts.Release[:])
}
