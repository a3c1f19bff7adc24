package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/jamesainslie/strung/pkg/strung/types"
)

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level      string            `mapstructure:"level"`
	Path       string            `mapstructure:"path"`
	Components map[string]string `mapstructure:"components"`
}

// Config represents the application configuration.
type Config struct {
	// InstrumentsPath is the instrument definitions file. Empty means
	// the default under the config directory.
	InstrumentsPath string `mapstructure:"instruments_path"`

	// SelectionsPath is the saved gauge selections file.
	SelectionsPath string `mapstructure:"selections_path"`

	// CatalogPath optionally replaces the embedded gauge catalog.
	CatalogPath string `mapstructure:"catalog_path"`

	// Targets holds the default tension windows applied to instruments
	// that do not set their own.
	Targets struct {
		Plain []float64 `mapstructure:"plain"`
		Wound []float64 `mapstructure:"wound"`
	} `mapstructure:"targets"`

	Logging LoggingConfig `mapstructure:"logging"`
}

// PlainTarget returns the configured default plain-string window, falling
// back to the built-in default when unset or malformed.
func (c *Config) PlainTarget() types.Range {
	if len(c.Targets.Plain) == 2 {
		return types.Range{Min: c.Targets.Plain[0], Max: c.Targets.Plain[1]}
	}
	return types.DefaultPlainTarget
}

// WoundTarget returns the configured default wound-string window.
func (c *Config) WoundTarget() types.Range {
	if len(c.Targets.Wound) == 2 {
		return types.Range{Min: c.Targets.Wound[0], Max: c.Targets.Wound[1]}
	}
	return types.DefaultWoundTarget
}

// Load loads configuration from file and environment variables.
// Config file locations (in order of precedence):
//   - $XDG_CONFIG_HOME/strung/config.yaml
//   - $HOME/.config/strung/config.yaml
//
// Environment variables are prefixed with STRUNG_ (e.g., STRUNG_CATALOG_PATH).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		v.AddConfigPath(filepath.Join(xdgConfigHome, "strung"))
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	v.AddConfigPath(filepath.Join(homeDir, ".config", "strung"))

	v.SetEnvPrefix("STRUNG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is acceptable; we use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	for _, path := range []*string{&cfg.InstrumentsPath, &cfg.SelectionsPath, &cfg.CatalogPath} {
		if *path, err = ExpandPath(*path); err != nil {
			return nil, err
		}
	}
	if cfg.InstrumentsPath == "" {
		cfg.InstrumentsPath = DefaultInstrumentsPath()
	}
	if cfg.SelectionsPath == "" {
		cfg.SelectionsPath = DefaultSelectionsPath()
	}

	return &cfg, nil
}

// setDefaults installs the default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("instruments_path", "")
	v.SetDefault("selections_path", "")
	v.SetDefault("catalog_path", "")
	v.SetDefault("targets.plain", []float64{types.DefaultPlainTarget.Min, types.DefaultPlainTarget.Max})
	v.SetDefault("targets.wound", []float64{types.DefaultWoundTarget.Min, types.DefaultWoundTarget.Max})
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.path", "")
	v.SetDefault("logging.components", map[string]string{
		"engine": "info",
		"store":  "info",
		"watch":  "info",
	})
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "strung"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "strung"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

// DefaultInstrumentsPath returns the default instruments file path.
func DefaultInstrumentsPath() string {
	return filepath.Join(xdg.ConfigHome, "strung", "instruments.yaml")
}

// DefaultSelectionsPath returns the default selections file path.
func DefaultSelectionsPath() string {
	return filepath.Join(xdg.ConfigHome, "strung", "selections.yaml")
}

// StateDir returns $XDG_STATE_HOME/strung/ for log files.
func StateDir() string {
	return filepath.Join(xdg.StateHome, "strung")
}

// ExpandPath expands a leading ~ in a path to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, path[1:]), nil
}

// WriteDefault writes a default config file if none exists.
// Returns nil if a config file already exists.
func WriteDefault() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	configDir, err := ConfigDir()
	if err != nil {
		return err
	}
	configPath := filepath.Join(configDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	defaultConfig := fmt.Sprintf(`# Strung Configuration

# Instrument definitions file (empty means %s)
instruments_path: ""

# Saved gauge selections file (empty means %s)
selections_path: ""

# Gauge catalog override (empty means the built-in catalog)
catalog_path: ""

# Default target tension windows in pounds, applied to instruments that
# do not set their own
targets:
  plain: [%.1f, %.1f]
  wound: [%.1f, %.1f]

# Logging configuration
logging:
  # Log level: debug, info, warn, error
  level: info
  # Log file path (empty means use default: $XDG_STATE_HOME/strung/strung.log)
  path: ""
  # Per-component log levels
  components:
    engine: info
    store: info
    watch: info
`,
		DefaultInstrumentsPath(), DefaultSelectionsPath(),
		types.DefaultPlainTarget.Min, types.DefaultPlainTarget.Max,
		types.DefaultWoundTarget.Min, types.DefaultWoundTarget.Max)

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}
	return nil
}
