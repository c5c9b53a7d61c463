package main

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ColonelBlimp/humanpanic/pkg/humanpanic"
	"github.com/ColonelBlimp/humanpanic/pkg/report"
)

const mainReportDirEnv = "HUMANPANIC_MAIN_TEST_DIR"

// TestMain_CrashIsHandled runs main() in a child process with the crash
// command and checks that the deferred handler turns the panic into a report
// and the human message.
func TestMain_CrashIsHandled(t *testing.T) {
	if dir := os.Getenv(mainReportDirEnv); dir != "" {
		os.Args = []string{"humanpanic", "crash", "--report-dir", dir, "--color", "never", "--message", "main-crash"}
		main()
		os.Exit(3)
	}
	if _, ok := os.LookupEnv(humanpanic.BacktraceEnv); ok {
		t.Skip("GOTRACEBACK is set; panics are left to the runtime")
	}
	if humanpanic.CurrentMode() == humanpanic.ModeDebug {
		t.Skip("debug build; panics are left to the runtime")
	}

	dir := t.TempDir()
	cmd := exec.Command(os.Args[0], "-test.run=^TestMain_CrashIsHandled$")
	cmd.Env = append(os.Environ(),
		mainReportDirEnv+"="+dir,
		"HOME="+t.TempDir(),
		"XDG_CONFIG_HOME=",
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected process to exit with error, got %v\nstderr:\n%s", err, stderr.String())
	}
	if exitErr.ExitCode() != humanpanic.DefaultExitCode {
		t.Errorf("exit code = %d, want %d\nstderr:\n%s", exitErr.ExitCode(), humanpanic.DefaultExitCode, stderr.String())
	}
	if !strings.Contains(stderr.String(), "Well, this is embarrassing.") {
		t.Errorf("stderr should contain the crash message, got:\n%s", stderr.String())
	}

	matches, _ := filepath.Glob(filepath.Join(dir, report.FilePattern))
	if len(matches) != 1 {
		t.Fatalf("expected 1 report in %s, found %d", dir, len(matches))
	}
	r, err := report.Load(matches[0])
	if err != nil {
		t.Fatalf("report.Load() error = %v", err)
	}
	if r.Cause != "main-crash" {
		t.Errorf("report cause = %q, want %q", r.Cause, "main-crash")
	}
}
