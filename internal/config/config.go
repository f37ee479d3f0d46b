// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() defaults that Load layers file and env values over.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Timezone is the IANA zone used for calendar-day bucketing and for
	// interpreting offset-free datetimes. Empty means the process zone.
	Timezone string `koanf:"timezone"`

	// MongoURI selects the MongoDB backend when set; empty runs the
	// in-memory store.
	MongoURI string `koanf:"mongo_uri"`

	// MongoDatabase names the database holding the event collection.
	MongoDatabase string `koanf:"mongo_database"`

	// DefaultPageLimit applies when GET /api/events carries no limit.
	DefaultPageLimit int `koanf:"default_page_limit"`

	// MaxPageLimit caps the limit query parameter.
	MaxPageLimit int `koanf:"max_page_limit"`

	// UpcomingLimit applies when the upcoming feed carries no limit.
	UpcomingLimit int `koanf:"upcoming_limit"`

	// RateLimitRPS and RateLimitBurst configure the per-client token
	// bucket. RPS <= 0 disables rate limiting.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":5000",
		Timezone:         "",
		MongoURI:         "",
		MongoDatabase:    "event-planner",
		DefaultPageLimit: 100,
		MaxPageLimit:     500,
		UpcomingLimit:    10,
		RateLimitRPS:     0,
		RateLimitBurst:   20,
	}
}
