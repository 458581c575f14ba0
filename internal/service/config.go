package service

import "time"

// Config holds analysis service client settings
type Config struct {
	// Endpoint is the base URL of the analysis service
	Endpoint string `json:"endpoint"`

	// Timeout for HTTP requests; zero means wait indefinitely
	Timeout time.Duration `json:"timeout"`

	// UserAgent sent with every request
	UserAgent string `json:"user_agent"`
}

// DefaultConfig returns a default client configuration
func DefaultConfig() *Config {
	return &Config{
		Endpoint:  "http://localhost:8000",
		Timeout:   0,
		UserAgent: "reviewradar",
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return NewError(ErrTypeConfiguration, "endpoint is required")
	}
	if c.Timeout < 0 {
		return NewError(ErrTypeConfiguration, "timeout must be non-negative")
	}
	return nil
}
