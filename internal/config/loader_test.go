package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}
	return path
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader returned nil")
	}
	if len(loader.configPaths) != 3 {
		t.Errorf("Expected 3 config paths, got %d", len(loader.configPaths))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	loader := NewLoaderWithPaths([]string{filepath.Join(t.TempDir(), "missing.yaml")})

	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}
	if cfg.Service.Endpoint != "http://localhost:8000" {
		t.Errorf("Expected default endpoint, got %s", cfg.Service.Endpoint)
	}
	if cfg.Output.DefaultFormat != "text" {
		t.Errorf("Expected default output format text, got %s", cfg.Output.DefaultFormat)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "test-config.yaml", `version: "1.0"
service:
  endpoint: "https://radar.example.com"
  timeout: 45s
analysis:
  default_threshold: strict
  histogram_buckets: 10
output:
  default_format: "json"
  verbose: true
history:
  enabled: true
  path: /tmp/radar.db
`)

	cfg, err := NewLoader().LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config from file: %v", err)
	}

	if cfg.Service.Endpoint != "https://radar.example.com" {
		t.Errorf("Expected endpoint from file, got %s", cfg.Service.Endpoint)
	}
	if cfg.Service.Timeout != 45*time.Second {
		t.Errorf("Expected timeout 45s, got %v", cfg.Service.Timeout)
	}
	if cfg.Analysis.HistogramBuckets != 10 {
		t.Errorf("Expected 10 buckets, got %d", cfg.Analysis.HistogramBuckets)
	}
	if cfg.Output.DefaultFormat != "json" || !cfg.Output.Verbose {
		t.Errorf("Unexpected output config %+v", cfg.Output)
	}
	if !cfg.History.Enabled || cfg.HistoryPath() != "/tmp/radar.db" {
		t.Errorf("Unexpected history config %+v", cfg.History)
	}
	// untouched keys keep defaults
	if cfg.Service.UserAgent != "reviewradar" || cfg.Analysis.OverflowPolicy != "clamp" {
		t.Errorf("Defaults lost during merge: %+v", cfg)
	}
}

func TestLoadConfigPriority(t *testing.T) {
	dir := t.TempDir()
	high := writeConfig(t, dir, "project.yaml", `
output:
  verbose: false
analysis:
  default_threshold: lenient
`)
	low := writeConfig(t, dir, "user.yaml", `
output:
  verbose: true
  theme: minimal
analysis:
  default_threshold: strict
`)

	cfg, err := NewLoaderWithPaths([]string{high, low}).LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Analysis.DefaultThreshold != "lenient" {
		t.Errorf("Expected higher priority threshold, got %s", cfg.Analysis.DefaultThreshold)
	}
	if cfg.Output.Verbose {
		t.Error("Expected explicit false in higher priority file to win")
	}
	if cfg.Output.Theme != "minimal" {
		t.Errorf("Expected theme from lower priority file, got %s", cfg.Output.Theme)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "invalid-config.yaml", `version: "1.0"
service:
  endpoint: "http://localhost
`)

	if _, err := NewLoader().LoadConfig(path); err == nil {
		t.Error("Expected error loading invalid YAML config, but got none")
	}
}

func TestLoadConfigInvalidPath(t *testing.T) {
	tests := []string{"../outside.yaml", "config.toml"}
	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			if _, err := NewLoader().LoadConfig(path); err == nil {
				t.Errorf("Expected error for %s", path)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("REVIEWRADAR_SERVICE_ENDPOINT", "http://analysis:9000")
	t.Setenv("REVIEWRADAR_SERVICE_TIMEOUT", "2m")
	t.Setenv("REVIEWRADAR_ANALYSIS_HISTOGRAM_BUCKETS", "10")
	t.Setenv("REVIEWRADAR_ANALYSIS_OVERFLOW_POLICY", "drop")
	t.Setenv("REVIEWRADAR_OUTPUT_VERBOSE", "true")
	t.Setenv("REVIEWRADAR_HISTORY_ENABLED", "1")

	cfg, err := NewLoaderWithPaths(nil).LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Service.Endpoint != "http://analysis:9000" {
		t.Errorf("Expected endpoint from env, got %s", cfg.Service.Endpoint)
	}
	if cfg.Service.Timeout != 2*time.Minute {
		t.Errorf("Expected timeout from env, got %v", cfg.Service.Timeout)
	}
	if cfg.Analysis.HistogramBuckets != 10 || cfg.Overflow() != "drop" {
		t.Errorf("Unexpected analysis config %+v", cfg.Analysis)
	}
	if !cfg.Output.Verbose || !cfg.History.Enabled {
		t.Errorf("Expected boolean overrides applied")
	}
}

func TestApplyEnvOverridesInvalid(t *testing.T) {
	tests := map[string]string{
		"REVIEWRADAR_SERVICE_TIMEOUT":            "soon",
		"REVIEWRADAR_ANALYSIS_HISTOGRAM_BUCKETS": "many",
		"REVIEWRADAR_OUTPUT_VERBOSE":             "perhaps",
	}

	for env, value := range tests {
		t.Run(env, func(t *testing.T) {
			t.Setenv(env, value)
			if _, err := NewLoaderWithPaths(nil).LoadConfig(""); err == nil {
				t.Errorf("Expected error for %s=%s", env, value)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandPath("~/x/history.db"); got != filepath.Join(home, "x", "history.db") {
		t.Errorf("Unexpected expansion %s", got)
	}
	if got := expandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("Absolute path changed: %s", got)
	}
}
