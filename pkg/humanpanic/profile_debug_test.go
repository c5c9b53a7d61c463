//go:build humanpanic_debug

package humanpanic

import "testing"

func TestCurrentMode_DebugBuild(t *testing.T) {
	if got := CurrentMode(); got != ModeDebug {
		t.Errorf("CurrentMode() = %v, want %v", got, ModeDebug)
	}
}
