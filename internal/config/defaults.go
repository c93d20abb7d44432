package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel       = "info"
	DefaultJSONLog        = false
	DefaultUserAgent      = "Bulletin/1.0 (https://github.com/law-makers/bulletin)"
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultBaseURL        = "https://travel.state.gov/content/travel/en/legal/visa-law0/visa-bulletin"
	DefaultNotFoundMarker = "Page Not Found"
	DefaultCategory       = "Family"
	DefaultOutputDir      = "./public/data"
	DefaultRateLimitRPS   = 1.0
	DefaultRateLimitBurst = 1
	MaxRateLimitRPS       = 10.0
)
