//go:build linux

package hostinfo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOSVersion_Linux(t *testing.T) {
	if got := osVersion(); !strings.HasPrefix(got, "Linux") {
		t.Errorf("osVersion() = %q, want prefix %q", got, "Linux")
	}
}

func TestDistribution(t *testing.T) {
	orig := osReleasePaths
	t.Cleanup(func() { osReleasePaths = orig })

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"pretty name", "NAME=\"Ubuntu\"\nVERSION_ID=\"24.04\"\nPRETTY_NAME=\"Ubuntu 24.04 LTS\"\n", "Ubuntu 24.04 LTS"},
		{"name and version", "NAME=Alpine\nVERSION_ID=3.20.1\n", "Alpine 3.20.1"},
		{"name only", "NAME=\"Arch Linux\"\n", "Arch Linux"},
		{"nothing useful", "ID=custom\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "os-release")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write os-release: %v", err)
			}
			osReleasePaths = []string{filepath.Join(t.TempDir(), "missing"), path}

			if got := distribution(); got != tt.want {
				t.Errorf("distribution() = %q, want %q", got, tt.want)
			}
		})
	}
}
