// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ColonelBlimp/humanpanic/pkg/humanpanic"
)

const (
	AppName       = "humanpanic"
	ConfigType    = "yaml"
	EnvPrefix     = "HUMANPANIC"
	DefaultConfig = `# humanpanic configuration

# Crash reports
report_dir: ""          # Directory for report-<uuid>.toml files ("" = OS temp dir)
exit_code: 2            # Exit status after a handled panic (1-125)

# Presentation
color: "auto"           # auto, always or never
dialog: false           # Also draw the message in a boxed dialog
formatter: "default"    # default or minimal

# Contact details shown in the crash message
authors: ""
homepage: ""
support: ""

# Diagnostics
log_level: "error"      # debug, info, warn or error
`
)

// Settings holds all application configuration
type Settings struct {
	// Crash reports
	ReportDir string `mapstructure:"report_dir"`
	ExitCode  int    `mapstructure:"exit_code"`

	// Presentation
	Color     string `mapstructure:"color"`
	Dialog    bool   `mapstructure:"dialog"`
	Formatter string `mapstructure:"formatter"`

	// Contact details
	Authors  string `mapstructure:"authors"`
	Homepage string `mapstructure:"homepage"`
	Support  string `mapstructure:"support"`

	// Diagnostics
	LogLevel string `mapstructure:"log_level"`
}

// Init initializes Viper with defaults, environment and config file.
// Config file search order: current directory, then ~/.config/humanpanic/
func Init() error {
	viper.SetDefault("report_dir", "")
	viper.SetDefault("exit_code", humanpanic.DefaultExitCode)
	viper.SetDefault("color", "auto")
	viper.SetDefault("dialog", false)
	viper.SetDefault("formatter", "default")
	viper.SetDefault("authors", "")
	viper.SetDefault("homepage", "")
	viper.SetDefault("support", "")
	viper.SetDefault("log_level", "error")

	// HUMANPANIC_REPORT_DIR, HUMANPANIC_COLOR, ...
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetConfigType(ConfigType)

	// Priority order: current directory first, then XDG config
	viper.AddConfigPath(".")

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	viper.AddConfigPath(filepath.Join(configDir, AppName))

	// Try .config.yaml first (hidden file), then config.yaml
	viper.SetConfigName(".config")
	if err = viper.ReadInConfig(); err != nil {
		viper.SetConfigName("config")
		err = viper.ReadInConfig()
	}

	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// No config found - create default in ~/.config/humanpanic/
			xdgConfigPath := filepath.Join(configDir, AppName)
			if err = ensureConfigExists(xdgConfigPath); err != nil {
				return err
			}
			if err = viper.ReadInConfig(); err != nil {
				return fmt.Errorf("read config: %w", err)
			}
		} else {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return nil
}

func ensureConfigExists(configPath string) error {
	configFile := filepath.Join(configPath, "config.yaml")

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err = os.MkdirAll(configPath, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
		if err = os.WriteFile(configFile, []byte(DefaultConfig), 0644); err != nil {
			return fmt.Errorf("write default config: %w", err)
		}
	}
	return nil
}

// Get returns the current settings
func Get() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &s, nil
}

// Validate checks that all settings are within acceptable ranges
func (s *Settings) Validate() error {
	var errs []error

	if _, err := humanpanic.ParseColorMode(s.Color); err != nil {
		errs = append(errs, fmt.Errorf("color must be one of auto, always, never, got %q", s.Color))
	}

	// Exit codes above 125 collide with shell conventions for signals
	if s.ExitCode < 1 || s.ExitCode > 125 {
		errs = append(errs, fmt.Errorf("exit_code must be between 1 and 125, got %d", s.ExitCode))
	}

	validFormatters := map[string]bool{
		"default": true,
		"minimal": true,
	}
	if !validFormatters[s.Formatter] {
		errs = append(errs, fmt.Errorf("formatter must be one of default, minimal, got %q", s.Formatter))
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[s.LogLevel] {
		errs = append(errs, fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", s.LogLevel))
	}

	if s.ReportDir != "" {
		info, err := os.Stat(s.ReportDir)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("report_dir %q: %w", s.ReportDir, err))
		case !info.IsDir():
			errs = append(errs, fmt.Errorf("report_dir %q is not a directory", s.ReportDir))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ColorMode returns the parsed color setting.
func (s *Settings) ColorMode() humanpanic.ColorMode {
	mode, _ := humanpanic.ParseColorMode(s.Color)
	return mode
}
