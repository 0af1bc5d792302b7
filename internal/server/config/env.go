package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/tnguye65/pokecollection/internal/flagx"
)

// Environment variables read by parseEnv.
const (
	envHTTPAddr        = "POKE_HTTP_ADDR"
	envDatabaseDSN     = "POKE_DATABASE_DSN"
	envSecretKey       = "POKE_SECRET_KEY"
	envTokenTTL        = "POKE_TOKEN_TTL"
	envSecureCookie    = "POKE_SECURE_COOKIE"
	envCatalogBaseURL  = "POKE_CATALOG_BASE_URL"
	envCatalogConnect  = "POKE_CATALOG_CONNECT_TIMEOUT"
	envCatalogRead     = "POKE_CATALOG_READ_TIMEOUT"
	envLoginRatePerMin = "POKE_LOGIN_RATE_PER_MINUTE"
	envLoginBurst      = "POKE_LOGIN_BURST"
	envLogLevel        = "POKE_LOG_LEVEL"
	envDebug           = "POKE_DEBUG"
	defaultDotenvFile  = ".env"
)

// loadDotenv seeds the process environment from the file named by
// -env/-envfile, or from ./.env when it exists. Variables already set in the
// environment are not overridden.
func loadDotenv() {
	path := flagx.EnvFileFlag()
	if path == "" {
		if _, err := os.Stat(defaultDotenvFile); err != nil {
			return
		}
		path = defaultDotenvFile
	}
	if err := godotenv.Load(path); err != nil {
		panic(fmt.Errorf("load env file %s: %w", path, err))
	}
}

// parseEnv overlays environment variables onto config. Malformed values
// panic, same as a malformed JSON file.
func parseEnv(config *Config) {
	loadDotenv()

	if v, ok := os.LookupEnv(envHTTPAddr); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv(envDatabaseDSN); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv(envSecretKey); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv(envCatalogBaseURL); ok {
		config.CatalogBaseURL = v
	}
	if v, ok := os.LookupEnv(envLogLevel); ok {
		config.LogLevel = v
	}

	envDuration(envTokenTTL, &config.TokenValidityDuration)
	envDuration(envCatalogConnect, &config.CatalogConnectTimeout)
	envDuration(envCatalogRead, &config.CatalogReadTimeout)
	envInt(envLoginRatePerMin, &config.LoginRatePerMinute)
	envInt(envLoginBurst, &config.LoginBurst)
	envBool(envSecureCookie, &config.SecureCookie)
	envBool(envDebug, &config.Debug)
}

func envDuration(name string, dst *time.Duration) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", name, err))
	}
	*dst = d
}

func envInt(name string, dst *int) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", name, err))
	}
	*dst = n
}

func envBool(name string, dst *bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", name, err))
	}
	*dst = b
}
