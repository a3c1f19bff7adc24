package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jamesainslie/strung/pkg/strung/types"
)

func TestLoad_Defaults(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.InstrumentsPath == "" {
		t.Error("InstrumentsPath is empty, want a default")
	}
	if cfg.SelectionsPath == "" {
		t.Error("SelectionsPath is empty, want a default")
	}
	if cfg.CatalogPath != "" {
		t.Errorf("CatalogPath = %q, want empty (built-in catalog)", cfg.CatalogPath)
	}
	if got := cfg.PlainTarget(); got != types.DefaultPlainTarget {
		t.Errorf("PlainTarget() = %+v, want %+v", got, types.DefaultPlainTarget)
	}
	if got := cfg.WoundTarget(); got != types.DefaultWoundTarget {
		t.Errorf("WoundTarget() = %+v, want %+v", got, types.DefaultWoundTarget)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoad_FromFile(t *testing.T) {
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, "strung")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	configContent := `
catalog_path: /opt/catalogs/flatwound.yaml
targets:
  plain: [12.0, 14.0]
  wound: [15.0, 19.0]
logging:
  level: debug
  components:
    engine: warn
`
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.CatalogPath != "/opt/catalogs/flatwound.yaml" {
		t.Errorf("CatalogPath = %q", cfg.CatalogPath)
	}
	if got := cfg.PlainTarget(); got != (types.Range{Min: 12, Max: 14}) {
		t.Errorf("PlainTarget() = %+v, want {12 14}", got)
	}
	if got := cfg.WoundTarget(); got != (types.Range{Min: 15, Max: 19}) {
		t.Errorf("WoundTarget() = %+v, want {15 19}", got)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.Components["engine"] != "warn" {
		t.Errorf("Logging.Components[engine] = %q, want warn", cfg.Logging.Components["engine"])
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("STRUNG_CATALOG_PATH", "/tmp/custom.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.CatalogPath != "/tmp/custom.yaml" {
		t.Errorf("CatalogPath = %q, want env override /tmp/custom.yaml", cfg.CatalogPath)
	}
}

func TestConfig_TargetFallbacks(t *testing.T) {
	var cfg Config

	if got := cfg.PlainTarget(); got != types.DefaultPlainTarget {
		t.Errorf("empty PlainTarget() = %+v, want default", got)
	}

	// A malformed single-element target falls back too.
	cfg.Targets.Plain = []float64{13}
	if got := cfg.PlainTarget(); got != types.DefaultPlainTarget {
		t.Errorf("malformed PlainTarget() = %+v, want default", got)
	}

	cfg.Targets.Wound = []float64{17, 21}
	if got := cfg.WoundTarget(); got != (types.Range{Min: 17, Max: 21}) {
		t.Errorf("WoundTarget() = %+v, want {17 21}", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "tilde expands", input: "~/catalogs/x.yaml", want: filepath.Join(home, "catalogs", "x.yaml")},
		{name: "bare tilde", input: "~", want: home},
		{name: "absolute untouched", input: "/etc/strung.yaml", want: "/etc/strung.yaml"},
		{name: "empty untouched", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			if err != nil {
				t.Fatalf("ExpandPath(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if dir != "/custom/config/strung" {
		t.Errorf("ConfigDir() = %q, want /custom/config/strung", dir)
	}
}

func TestWriteDefault(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	if err := WriteDefault(); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	configPath := filepath.Join(tempDir, "strung", "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	for _, want := range []string{"targets:", "logging:", "catalog_path:"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("default config missing %q", want)
		}
	}

	// A second call must not clobber the existing file.
	if err := os.WriteFile(configPath, []byte("catalog_path: /keep\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteDefault(); err != nil {
		t.Fatalf("second WriteDefault() error = %v", err)
	}
	data, err = os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "catalog_path: /keep\n" {
		t.Error("WriteDefault() overwrote an existing config file")
	}
}
