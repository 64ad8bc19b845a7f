package config

import (
	"encoding/json"
	"os"

	"github.com/avoronov/blogkeeper/internal/flagx"
	"github.com/avoronov/blogkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like
// "10s" or as integer nanoseconds.
type JsonConfig struct {
	APIEndpoint      string         `json:"api_endpoint"`
	DatabaseDSN      string         `json:"database_dsn"`
	CookieJarPath    string         `json:"cookie_jar_path"`
	TokenSecret      string         `json:"token_secret"`
	SessionTTL       timex.Duration `json:"session_ttl"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	SimulatedLatency timex.Duration `json:"simulated_latency"`
}

// parseJson overlays cfg with values from the JSON file named by -c or
// -config. Absent flags mean no JSON is loaded; zero-valued fields leave
// the current value in place. Read or unmarshal errors panic (the caller
// cannot start without its requested config).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	applyJson(cfg, &jc)
}

func applyJson(cfg *Config, jc *JsonConfig) {
	if jc.APIEndpoint != "" {
		cfg.APIEndpoint = jc.APIEndpoint
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.CookieJarPath != "" {
		cfg.CookieJarPath = jc.CookieJarPath
	}
	if jc.TokenSecret != "" {
		cfg.TokenSecret = jc.TokenSecret
	}
	if jc.SessionTTL.Duration != 0 {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SimulatedLatency.Duration != 0 {
		cfg.SimulatedLatency = jc.SimulatedLatency.Duration
	}
}
