package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/edupilot/internal/flagx"
	"github.com/dmitrijs2005/edupilot/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell absent keys apart from zero values.
type JsonConfig struct {
	ServerURL      *string         `json:"server_url"`
	DraftDB        *string         `json:"draft_db"`
	FocusMinutes   *int            `json:"focus_minutes"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. It panics on read or unmarshal errors.
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

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.DraftDB != nil {
		cfg.DraftDB = *jc.DraftDB
	}
	if jc.FocusMinutes != nil {
		cfg.FocusMinutes = *jc.FocusMinutes
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
