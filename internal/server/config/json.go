package config

import (
	"encoding/json"
	"os"

	"github.com/tnguye65/pokecollection/internal/flagx"
	"github.com/tnguye65/pokecollection/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Durations use
// timex.Duration so both "10s" and integer nanoseconds are accepted.
// Pointer fields distinguish "absent" from "false".
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	SecureCookie          *bool          `json:"secure_cookie"`
	CatalogBaseURL        string         `json:"catalog_base_url"`
	CatalogConnectTimeout timex.Duration `json:"catalog_connect_timeout"`
	CatalogReadTimeout    timex.Duration `json:"catalog_read_timeout"`
	LoginRatePerMinute    int            `json:"login_rate_per_minute"`
	LoginBurst            int            `json:"login_burst"`
	LogLevel              string         `json:"log_level"`
	Debug                 *bool          `json:"debug"`
}

// parseJson overlays values from the JSON file named by -c/-config onto
// config. Fields missing from the file keep their current value. An
// unreadable or malformed file panics: the server must not start on a
// half-applied configuration.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
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

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.CatalogBaseURL, c.CatalogBaseURL)
	setString(&config.LogLevel, c.LogLevel)

	if c.TokenValidityDuration.Duration > 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.CatalogConnectTimeout.Duration > 0 {
		config.CatalogConnectTimeout = c.CatalogConnectTimeout.Duration
	}
	if c.CatalogReadTimeout.Duration > 0 {
		config.CatalogReadTimeout = c.CatalogReadTimeout.Duration
	}
	if c.LoginRatePerMinute > 0 {
		config.LoginRatePerMinute = c.LoginRatePerMinute
	}
	if c.LoginBurst > 0 {
		config.LoginBurst = c.LoginBurst
	}
	if c.SecureCookie != nil {
		config.SecureCookie = *c.SecureCookie
	}
	if c.Debug != nil {
		config.Debug = *c.Debug
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
