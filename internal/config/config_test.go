package config

import (
	"testing"
	"time"

	"github.com/avoronov/blogkeeper/internal/timex"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "https://jsonplaceholder.typicode.com", cfg.APIEndpoint)
	assert.Equal(t, "blog.db", cfg.DatabaseDSN)
	assert.Equal(t, "cookies.json", cfg.CookieJarPath)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Zero(t, cfg.SimulatedLatency)
}

func TestApplyJson_OverridesNonZeroFields(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	applyJson(cfg, &JsonConfig{
		APIEndpoint:    "http://localhost:3000",
		RequestTimeout: timex.Duration{Duration: 3 * time.Second},
	})

	assert.Equal(t, "http://localhost:3000", cfg.APIEndpoint)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	// untouched fields keep their defaults
	assert.Equal(t, "blog.db", cfg.DatabaseDSN)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("BLOG_API_ENDPOINT", "http://env:9000")
	t.Setenv("BLOG_SESSION_TTL", "48h")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "http://env:9000", cfg.APIEndpoint)
	assert.Equal(t, 48*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "blog.db", cfg.DatabaseDSN)
}
