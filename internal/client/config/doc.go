// Package config loads runtime configuration for the edupilot CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the edupilot server
//	-d string   path of the local draft database
//	-f int      focus session length (minutes)
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// Absent keys keep their default. The timeout uses timex.Duration, so it can
// be a string like "10s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "draft_db": "edupilot-client.db",
//	  "focus_minutes": 25,
//	  "request_timeout": "10s"
//	}
package config
