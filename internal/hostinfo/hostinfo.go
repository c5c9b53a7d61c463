// Package hostinfo describes the operating system a crash happened on.
package hostinfo

import (
	"runtime"
	"strings"
)

// Unknown is reported when the operating system cannot be identified.
const Unknown = "unknown"

// Describe returns the long operating system name and version followed by
// the CPU architecture, e.g. "Linux 6.8.0 (Ubuntu 24.04 LTS) [amd64]".
// It never fails; missing details are replaced with Unknown.
func Describe() string {
	return format(safeOSVersion(), runtime.GOARCH)
}

func format(osVersion, arch string) string {
	osVersion = strings.TrimSpace(osVersion)
	if osVersion == "" {
		osVersion = Unknown
	}
	return osVersion + " [" + arch + "]"
}

func safeOSVersion() (version string) {
	defer func() {
		if recover() != nil {
			version = Unknown
		}
	}()
	return osVersion()
}
