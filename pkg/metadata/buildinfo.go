package metadata

import (
	"os"
	"path"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const unknownVersion = "unknown"

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// FromBuildInfo derives Metadata from the module information embedded by the
// Go toolchain. The name is the last element of the main module path (or the
// executable name when no build info is present), the version is the module
// version, and the homepage is derived from module paths hosted on a domain.
func FromBuildInfo() Metadata {
	bi, ok := readBuildInfo()
	if !ok || bi.Main.Path == "" {
		return New(executableName(), unknownVersion)
	}

	version := bi.Main.Version
	if version == "" || version == "(devel)" {
		version = unknownVersion
	}

	return New(path.Base(bi.Main.Path), version).
		WithHomepage(homepageFor(bi.Main.Path))
}

func executableName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return "program"
	}
	return strings.TrimSuffix(filepath.Base(os.Args[0]), ".exe")
}

// homepageFor returns https://<module path> when the first path element looks
// like a host name, and "" otherwise.
func homepageFor(modulePath string) string {
	host, _, found := strings.Cut(modulePath, "/")
	if !found || !strings.Contains(host, ".") {
		return ""
	}
	return "https://" + modulePath
}
