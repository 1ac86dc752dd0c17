package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/flagx"
	"github.com/joho/godotenv"
)

const envPrefix = "EDUPILOT_"

// parseEnv overlays EDUPILOT_* environment variables. A dotenv file named by
// -env is loaded first; without the flag ".env" in the working directory is
// used when present. Variables already set in the process win over the file.
// Malformed values panic.
func parseEnv(config *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	lookup := func(name string) (string, bool) {
		v, ok := os.LookupEnv(envPrefix + name)
		return strings.TrimSpace(v), ok
	}

	strs := map[string]*string{
		"HTTP_ADDR":              &config.HTTPAddr,
		"STORAGE_DRIVER":         &config.StorageDriver,
		"DATABASE_DSN":           &config.DatabaseDSN,
		"SECRET_KEY":             &config.SecretKey,
		"LOG_LEVEL":              &config.LogLevel,
		"SESSION_PURGE_SCHEDULE": &config.SessionPurgeSchedule,
		"S3_ROOT_USER":           &config.S3RootUser,
		"S3_ROOT_PASSWORD":       &config.S3RootPassword,
		"S3_BUCKET":              &config.S3Bucket,
		"S3_REGION":              &config.S3Region,
		"S3_BASE_ENDPOINT":       &config.S3BaseEndpoint,
	}
	for name, dst := range strs {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}

	if v, ok := lookup("SESSION_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.SessionTTL = d
	}
	if v, ok := lookup("REQUIRE_API_SESSION"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		config.RequireAPISession = b
	}
	if v, ok := lookup("CORS_ALLOWED_ORIGINS"); ok {
		config.CORSAllowedOrigins = splitList(v)
	}
}

// splitList splits a comma separated list, trimming and dropping empty items.
func splitList(s string) []string {
	out := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
