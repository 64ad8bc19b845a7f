// Package config loads runtime settings for the blogkeeper CLI.
//
// Values are resolved in layers, later sources taking precedence:
// defaults, then a JSON file (-c/-config), then environment variables,
// then command-line flags.
package config

import "time"

// Config holds runtime settings for the CLI.
type Config struct {
	// APIEndpoint is the base URL of the remote post collection endpoint.
	APIEndpoint string `env:"BLOG_API_ENDPOINT"`

	// DatabaseDSN locates the local SQLite database backing the key/value
	// layer.
	DatabaseDSN string `env:"BLOG_DATABASE_DSN"`

	// CookieJarPath is the JSON file standing in for the browser cookie
	// store.
	CookieJarPath string `env:"BLOG_COOKIE_JAR"`

	// TokenSecret signs session tokens.
	TokenSecret string `env:"BLOG_TOKEN_SECRET"`

	// SessionTTL bounds session token validity.
	SessionTTL time.Duration `env:"BLOG_SESSION_TTL"`

	// RequestTimeout bounds each remote API call.
	RequestTimeout time.Duration `env:"BLOG_REQUEST_TIMEOUT"`

	// SimulatedLatency delays store operations to mimic network round
	// trips; zero disables it.
	SimulatedLatency time.Duration `env:"BLOG_SIMULATED_LATENCY"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIEndpoint = "https://jsonplaceholder.typicode.com"
	c.DatabaseDSN = "blog.db"
	c.CookieJarPath = "cookies.json"
	c.TokenSecret = "blogkeeper-dev-secret"
	c.SessionTTL = 7 * 24 * time.Hour
	c.RequestTimeout = 10 * time.Second
	c.SimulatedLatency = 0
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), the environment, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
