package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ColonelBlimp/humanpanic/internal/config"
	"github.com/ColonelBlimp/humanpanic/pkg/humanpanic"
)

func resetViperForTest() {
	viper.Reset()
}

// setupConfig isolates HOME and writes content as the user config file.
func setupConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", "")
	configDir := filepath.Join(tmpDir, ".config", "humanpanic")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return tmpDir
}

func TestRootCmd_HasExpectedFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	tests := []struct {
		name      string
		shorthand string
	}{
		{"report-dir", ""},
		{"color", "c"},
		{"dialog", ""},
		{"formatter", "F"},
		{"exit-code", ""},
		{"log-level", "l"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := flags.Lookup(tt.name)
			if flag == nil {
				t.Errorf("flag %q not found", tt.name)
				return
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("flag %q shorthand = %q, want %q", tt.name, flag.Shorthand, tt.shorthand)
			}
		})
	}
}

func TestRootCmd_Properties(t *testing.T) {
	if rootCmd.Use != "humanpanic" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "humanpanic")
	}
	if rootCmd.Short == "" {
		t.Error("rootCmd.Short is empty")
	}
	if rootCmd.Long == "" {
		t.Error("rootCmd.Long is empty")
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	for _, name := range []string{"crash", "report"} {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootCmd_HelpOutput(t *testing.T) {
	resetViperForTest()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"--help"})

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("Execute() with --help error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "humanpanic") {
		t.Errorf("help output should contain 'humanpanic'")
	}
	if !strings.Contains(output, "--report-dir") {
		t.Errorf("help output should contain '--report-dir'")
	}
}

func TestRootCmd_FlagDefaults(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	tests := []struct {
		name         string
		defaultValue string
	}{
		{"report-dir", ""},
		{"color", "auto"},
		{"dialog", "false"},
		{"formatter", "default"},
		{"exit-code", "2"},
		{"log-level", "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := flags.Lookup(tt.name)
			if flag == nil {
				t.Fatalf("flag %q not found", tt.name)
			}
			if flag.DefValue != tt.defaultValue {
				t.Errorf("flag %q default = %q, want %q", tt.name, flag.DefValue, tt.defaultValue)
			}
		})
	}
}

func TestRootCmd_FlagDescriptions(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	flagsToCheck := []string{"report-dir", "color", "dialog", "formatter", "exit-code", "log-level"}

	for _, name := range flagsToCheck {
		t.Run(name, func(t *testing.T) {
			flag := flags.Lookup(name)
			if flag == nil {
				t.Fatalf("flag %q not found", name)
			}
			if flag.Usage == "" {
				t.Errorf("flag %q has no description", name)
			}
		})
	}
}

func TestInitConfig(t *testing.T) {
	resetViperForTest()
	setupConfig(t, "exit_code: 42")

	// Should not panic
	initConfig()

	// Verify config was loaded
	if viper.GetInt("exit_code") != 42 {
		t.Errorf("viper.GetInt(exit_code) = %d, want 42", viper.GetInt("exit_code"))
	}
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	resetViperForTest()
	setupConfig(t, `color: rainbow`)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"report", "list", "--dir", t.TempDir()})

	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected error for invalid config, got nil")
	}
	if !strings.Contains(err.Error(), "config") {
		t.Errorf("expected config error, got: %v", err)
	}
}

func TestRootCmd_InvalidExitCode(t *testing.T) {
	resetViperForTest()
	setupConfig(t, `exit_code: 200`)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"report", "list", "--dir", t.TempDir()})

	if err := rootCmd.Execute(); err == nil {
		t.Error("expected error for invalid exit code, got nil")
	}
}

func TestHandlerOptions(t *testing.T) {
	resetViperForTest()
	setupConfig(t, "")

	tests := []struct {
		name     string
		settings func() *config.Settings
		want     int
	}{
		{"defaults", func() *config.Settings { return validSettings() }, 5},
		{"minimal formatter", func() *config.Settings {
			s := validSettings()
			s.Formatter = "minimal"
			return s
		}, 6},
		{"dialog", func() *config.Settings {
			s := validSettings()
			s.Dialog = true
			return s
		}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := handlerOptions(rootCmd, tt.settings(), zap.NewNop())
			if len(opts) != tt.want {
				t.Errorf("handlerOptions() returned %d options, want %d", len(opts), tt.want)
			}
		})
	}
}

func validSettings() *config.Settings {
	return &config.Settings{
		ExitCode:  humanpanic.DefaultExitCode,
		Color:     "never",
		Formatter: "default",
		LogLevel:  "error",
	}
}
