package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/edupilot/internal/flagx"
	"github.com/dmitrijs2005/edupilot/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations may
// be written as "168h" or as integer nanoseconds. Absent keys keep the
// value already in Config.
type JsonConfig struct {
	HTTPAddr             *string         `json:"http_addr"`
	StorageDriver        *string         `json:"storage_driver"`
	DatabaseDSN          *string         `json:"database_dsn"`
	SecretKey            *string         `json:"secret_key"`
	SessionTTL           *timex.Duration `json:"session_ttl"`
	RequireAPISession    *bool           `json:"require_api_session"`
	CORSAllowedOrigins   []string        `json:"cors_allowed_origins"`
	LogLevel             *string         `json:"log_level"`
	SessionPurgeSchedule *string         `json:"session_purge_schedule"`
	S3RootUser           *string         `json:"s3_root_user"`
	S3RootPassword       *string         `json:"s3_root_password"`
	S3Bucket             *string         `json:"s3_bucket"`
	S3Region             *string         `json:"s3_region"`
	S3BaseEndpoint       *string         `json:"s3_base_endpoint"`
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// parseJson loads the file named by -c/-config into config. Without the
// flag nothing happens. An unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.StorageDriver, c.StorageDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.SessionTTL != nil {
		config.SessionTTL = c.SessionTTL.Duration
	}
	if c.RequireAPISession != nil {
		config.RequireAPISession = *c.RequireAPISession
	}
	if c.CORSAllowedOrigins != nil {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.SessionPurgeSchedule, c.SessionPurgeSchedule)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}
