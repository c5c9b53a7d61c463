//go:build !unix && !windows

package hostinfo

import "runtime"

func osVersion() string {
	return runtime.GOOS
}
