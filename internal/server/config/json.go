package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/saciinol/watchkeeper/internal/flagx"
	"github.com/saciinol/watchkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It uses
// timex.Duration so durations can be written either as strings such as
// "24h" or as integer nanoseconds. After unmarshalling, values are copied
// into the runtime Config.
type JsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	TMDBAPIKey            string         `json:"tmdb_api_key"`
	TMDBBaseURL           string         `json:"tmdb_base_url"`
}

// parseJson overlays config with values loaded from the JSON file named by
// the -c/-config flags. Missing flag means no JSON is loaded. Read and
// unmarshal errors panic; a broken config file is fatal.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	}
	if c.TMDBAPIKey != "" {
		config.TMDBAPIKey = c.TMDBAPIKey
	}
	if c.TMDBBaseURL != "" {
		config.TMDBBaseURL = c.TMDBBaseURL
	}
}
