package config

import "fmt"

// SampleConfig returns a commented configuration file pointing at
// endpoint, or at the default endpoint when it is empty
func SampleConfig(endpoint string) string {
	if endpoint == "" {
		endpoint = DefaultConfig().Service.Endpoint
	}
	return fmt.Sprintf(sampleConfig, endpoint)
}

const sampleConfig = `# ReviewRadar configuration
version: "1.0"

service:
  # Base URL of the review analysis service
  endpoint: %s
  # Request timeout; 0s waits for the service indefinitely
  timeout: 0s
  user_agent: reviewradar

analysis:
  # Tier used by manual submissions when none is selected (lenient|average|strict)
  default_threshold: average
  # Number of equal-width confidence buckets; must divide 100
  histogram_buckets: 5
  # What to do with a confidence of exactly 100 (clamp|drop)
  overflow_policy: clamp

output:
  # text|json|markdown|csv|html
  default_format: text
  # auto|always|never
  color_mode: auto
  verbose: false
  # default|high-contrast|minimal
  theme: default

history:
  # Record every completed analysis in a local SQLite database
  enabled: false
  path: ~/.local/share/reviewradar/history.db
`
