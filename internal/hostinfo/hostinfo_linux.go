//go:build linux

package hostinfo

import (
	"github.com/subosito/gotenv"
	"golang.org/x/sys/unix"
)

var osReleasePaths = []string{"/etc/os-release", "/usr/lib/os-release"}

func osVersion() string {
	version := "Linux"

	var uts unix.Utsname
	if err := unix.Uname(&uts); err == nil {
		version += " " + unix.ByteSliceToString(uts.Release[:])
	}

	if distro := distribution(); distro != "" {
		version += " (" + distro + ")"
	}
	return version
}

// distribution reads PRETTY_NAME (or NAME VERSION_ID) from os-release.
func distribution() string {
	for _, p := range osReleasePaths {
		env, err := gotenv.Read(p)
		if err != nil {
			continue
		}
		if pretty := env["PRETTY_NAME"]; pretty != "" {
			return pretty
		}
		if name := env["NAME"]; name != "" {
			if id := env["VERSION_ID"]; id != "" {
				return name + " " + id
			}
			return name
		}
	}
	return ""
}
