package config

import (
	"fmt"
	"time"

	"github.com/yildizm/ReviewRadar/internal/aggregate"
	"github.com/yildizm/ReviewRadar/internal/review"
	"github.com/yildizm/ReviewRadar/internal/service"
)

// Config holds the complete application configuration
type Config struct {
	Version  string         `yaml:"version" json:"version"`
	Service  ServiceConfig  `yaml:"service" json:"service"`
	Analysis AnalysisConfig `yaml:"analysis" json:"analysis"`
	Output   OutputConfig   `yaml:"output" json:"output"`
	History  HistoryConfig  `yaml:"history" json:"history"`
}

// ServiceConfig configures the analysis service client
type ServiceConfig struct {
	Endpoint  string        `yaml:"endpoint" json:"endpoint"`     // base URL
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`       // 0 = no client timeout
	UserAgent string        `yaml:"user_agent" json:"user_agent"` // sent with every request
}

// AnalysisConfig configures submissions and aggregation
type AnalysisConfig struct {
	DefaultThreshold string `yaml:"default_threshold" json:"default_threshold"` // lenient|average|strict
	HistogramBuckets int    `yaml:"histogram_buckets" json:"histogram_buckets"` // divides 100
	OverflowPolicy   string `yaml:"overflow_policy" json:"overflow_policy"`     // clamp|drop
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown|csv|html
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`               // default verbosity
	Theme         string `yaml:"theme" json:"theme"`                   // default|high-contrast|minimal
}

// HistoryConfig configures the local analysis history
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Service: ServiceConfig{
			Endpoint:  "http://localhost:8000",
			Timeout:   0,
			UserAgent: "reviewradar",
		},
		Analysis: AnalysisConfig{
			DefaultThreshold: review.DefaultManualThreshold.String(),
			HistogramBuckets: aggregate.DefaultBuckets,
			OverflowPolicy:   string(aggregate.OverflowClamp),
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
			Theme:         "default",
		},
		History: HistoryConfig{
			Enabled: false,
			Path:    "~/.local/share/reviewradar/history.db",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateServiceConfig(); err != nil {
		return err
	}
	if err := c.validateAnalysisConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history.path is required when history is enabled")
	}
	return nil
}

// validateServiceConfig validates service-related configuration
func (c *Config) validateServiceConfig() error {
	if c.Service.Endpoint == "" {
		return fmt.Errorf("service.endpoint is required")
	}
	if c.Service.Timeout < 0 {
		return fmt.Errorf("service.timeout must be non-negative")
	}
	return nil
}

// validateAnalysisConfig validates analysis-related configuration
func (c *Config) validateAnalysisConfig() error {
	if c.Analysis.DefaultThreshold != "" {
		if _, err := review.ParseThreshold(c.Analysis.DefaultThreshold); err != nil {
			return err
		}
	}
	if err := aggregate.ValidateBuckets(c.Analysis.HistogramBuckets); err != nil {
		return err
	}
	if _, err := aggregate.ParseOverflowPolicy(c.Analysis.OverflowPolicy); err != nil {
		return err
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"csv":      true,
			"html":     true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown, csv, html)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	if c.Output.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.Output.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.Output.Theme)
		}
	}
	return nil
}

// ServiceClientConfig returns the service client settings
func (c *Config) ServiceClientConfig() *service.Config {
	return &service.Config{
		Endpoint:  c.Service.Endpoint,
		Timeout:   c.Service.Timeout,
		UserAgent: c.Service.UserAgent,
	}
}

// Threshold returns the manual-mode fallback tier
func (c *Config) Threshold() review.Threshold {
	t, err := review.ParseThreshold(c.Analysis.DefaultThreshold)
	if err != nil || !t.IsSet() {
		return review.DefaultManualThreshold
	}
	return t
}

// Overflow returns the histogram overflow policy
func (c *Config) Overflow() aggregate.OverflowPolicy {
	p, err := aggregate.ParseOverflowPolicy(c.Analysis.OverflowPolicy)
	if err != nil {
		return aggregate.OverflowClamp
	}
	return p
}

// HistoryPath returns the history database path with ~ expanded
func (c *Config) HistoryPath() string {
	return expandPath(c.History.Path)
}
