package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/jamesainslie/strung/pkg/strung/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    log.Level
		wantErr bool
	}{
		{name: "debug", input: "debug", want: log.DebugLevel},
		{name: "info", input: "info", want: log.InfoLevel},
		{name: "warn", input: "warn", want: log.WarnLevel},
		{name: "warning alias", input: "warning", want: log.WarnLevel},
		{name: "error", input: "error", want: log.ErrorLevel},
		{name: "mixed case", input: "DEBUG", want: log.DebugLevel},
		{name: "unknown", input: "trace", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := logging.ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// Note: no t.Parallel() in the tests below; they share the package-global
// logging state.

func TestGet_BeforeInit(t *testing.T) {
	logger := logging.Get("uninitialized")
	if logger == nil {
		t.Fatal("Get() returned nil before Init")
	}
	// Safe to log; output goes to io.Discard.
	logger.Info("dropped on the floor")
}

func TestInit_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strung.log")
	if err := logging.Init(logging.Config{Level: "info", Path: path}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	logging.Get("engine").Info("optimized", "instruments", 2)

	if err := logging.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "optimized") {
		t.Errorf("log file missing message, got %q", data)
	}
	if !strings.Contains(string(data), "engine") {
		t.Errorf("log file missing component prefix, got %q", data)
	}
}

func TestInit_InvalidLevel(t *testing.T) {
	err := logging.Init(logging.Config{Level: "loud", Path: filepath.Join(t.TempDir(), "x.log")})
	if err == nil {
		t.Fatal("Init() error = nil, want error")
	}
}

func TestInit_CreatesLogDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "strung.log")
	if err := logging.Init(logging.Config{Level: "info", Path: path}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer func() { _ = logging.Close() }()

	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("log directory not created: %v", err)
	}
}

func TestGet_ComponentLevelOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strung.log")
	cfg := logging.Config{
		Level:      "error",
		Path:       path,
		Components: map[string]string{"store": "debug"},
	}
	if err := logging.Init(cfg); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer func() { _ = logging.Close() }()

	if got := logging.Get("store").GetLevel(); got != log.DebugLevel {
		t.Errorf("store level = %v, want debug", got)
	}
	if got := logging.Get("engine").GetLevel(); got != log.ErrorLevel {
		t.Errorf("engine level = %v, want error", got)
	}
}

func TestGet_SameInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strung.log")
	if err := logging.Init(logging.Config{Level: "info", Path: path}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer func() { _ = logging.Close() }()

	if logging.Get("watch") != logging.Get("watch") {
		t.Error("Get() returned different instances for the same component")
	}
}

func TestClose_WithoutInit(t *testing.T) {
	// Close must tolerate being called when nothing was initialized.
	_ = logging.Close()
	if err := logging.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
}
