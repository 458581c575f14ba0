package config

import (
	"strings"
	"testing"
	"time"

	"github.com/yildizm/ReviewRadar/internal/aggregate"
	"github.com/yildizm/ReviewRadar/internal/review"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", cfg.Version)
	}
	if cfg.Service.Endpoint != "http://localhost:8000" {
		t.Errorf("Expected default endpoint, got %s", cfg.Service.Endpoint)
	}
	if cfg.Service.Timeout != 0 {
		t.Errorf("Expected no timeout, got %v", cfg.Service.Timeout)
	}
	if cfg.Analysis.HistogramBuckets != 5 {
		t.Errorf("Expected 5 histogram buckets, got %d", cfg.Analysis.HistogramBuckets)
	}
	if cfg.Threshold() != review.ThresholdAverage {
		t.Errorf("Expected average fallback, got %s", cfg.Threshold())
	}
	if cfg.Overflow() != aggregate.OverflowClamp {
		t.Errorf("Expected clamp policy, got %s", cfg.Overflow())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing endpoint",
			modify:  func(c *Config) { c.Service.Endpoint = "" },
			wantErr: true,
			errMsg:  "service.endpoint is required",
		},
		{
			name:    "negative timeout",
			modify:  func(c *Config) { c.Service.Timeout = -time.Second },
			wantErr: true,
			errMsg:  "service.timeout must be non-negative",
		},
		{
			name:    "invalid threshold",
			modify:  func(c *Config) { c.Analysis.DefaultThreshold = "harsh" },
			wantErr: true,
			errMsg:  "invalid threshold",
		},
		{
			name:    "buckets not dividing 100",
			modify:  func(c *Config) { c.Analysis.HistogramBuckets = 3 },
			wantErr: true,
			errMsg:  "divide",
		},
		{
			name:    "invalid overflow policy",
			modify:  func(c *Config) { c.Analysis.OverflowPolicy = "wrap" },
			wantErr: true,
			errMsg:  "invalid overflow policy",
		},
		{
			name:    "invalid output format",
			modify:  func(c *Config) { c.Output.DefaultFormat = "xml" },
			wantErr: true,
			errMsg:  "invalid output format: xml (must be one of: json, text, markdown, csv, html)",
		},
		{
			name:    "invalid color mode",
			modify:  func(c *Config) { c.Output.ColorMode = "sometimes" },
			wantErr: true,
			errMsg:  "invalid color mode: sometimes (must be one of: auto, always, never)",
		},
		{
			name:    "invalid theme",
			modify:  func(c *Config) { c.Output.Theme = "neon" },
			wantErr: true,
			errMsg:  "invalid theme",
		},
		{
			name:    "history without path",
			modify:  func(c *Config) { c.History.Enabled = true; c.History.Path = "" },
			wantErr: true,
			errMsg:  "history.path is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				} else if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestServiceClientConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Service.Endpoint = "https://radar.example.com"
	cfg.Service.Timeout = 15 * time.Second

	sc := cfg.ServiceClientConfig()
	if sc.Endpoint != "https://radar.example.com" || sc.Timeout != 15*time.Second || sc.UserAgent != "reviewradar" {
		t.Errorf("Unexpected service config %+v", sc)
	}
}

func TestSampleConfig(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		want     string
	}{
		{name: "default endpoint", endpoint: "", want: "http://localhost:8000"},
		{name: "custom endpoint", endpoint: "https://radar.example.com", want: "https://radar.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Service.Endpoint = ""
			if err := yaml.Unmarshal([]byte(SampleConfig(tt.endpoint)), cfg); err != nil {
				t.Fatalf("Sample config does not parse: %v", err)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Sample config is invalid: %v", err)
			}
			if cfg.Service.Endpoint != tt.want {
				t.Errorf("Expected endpoint %s, got %s", tt.want, cfg.Service.Endpoint)
			}
		})
	}
}
