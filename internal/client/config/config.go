package config

import "time"

// Config holds runtime settings for the edupilot CLI.
//
// Fields:
//   - ServerURL: base URL of the edupilot HTTP API.
//   - DraftDB: path of the local sqlite file keeping unsent drafts.
//   - FocusMinutes: length of a focus timer session.
//   - RequestTimeout: per-request deadline for API calls.
type Config struct {
	ServerURL      string
	DraftDB        string
	FocusMinutes   int
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.DraftDB = "edupilot-client.db"
	c.FocusMinutes = 25
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
