// config.go
//
// Environment-driven configuration. `.env` is loaded first (godotenv), then
// process variables win; command flags override both.
//
//   LOG_LEVEL            zerolog level (default: info; warn for play)
//   CATALOG_FILE         JSON catalog; empty uses the embedded one
//   CATALOG_DB           SQLite catalog path; empty keeps the catalog in memory
//   PORT                 serve port (default 5175)
//   CLIENT_ORIGIN        CORS origin for serve
//   JWT_SECRET           admin token key
//   JWT_EXPIRES_HOURS    admin token lifetime (default 12)
//   ADMIN_PASSWORD_HASH  bcrypt hash of the admin password
//   DAILY_SALT           salt for the review of the day
//   STEAM_BASE_URL       Steam store base URL
//   STEAM_TIMEOUT        Steam HTTP timeout (default 5s)

package main

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config is the resolved process configuration.
type Config struct {
	LogLevel          string
	CatalogFile       string
	CatalogDB         string
	Port              string
	ClientOrigin      string
	JWTSecret         string
	TokenTTL          time.Duration
	AdminPasswordHash string
	DailySalt         string
	SteamBaseURL      string
	SteamTimeout      time.Duration
}

// loadConfig reads `.env` (if present) and the environment.
func loadConfig() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("load .env")
	}
	return Config{
		LogLevel:          os.Getenv("LOG_LEVEL"),
		CatalogFile:       os.Getenv("CATALOG_FILE"),
		CatalogDB:         os.Getenv("CATALOG_DB"),
		Port:              getEnv("PORT", "5175"),
		ClientOrigin:      os.Getenv("CLIENT_ORIGIN"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTL:          time.Duration(envInt("JWT_EXPIRES_HOURS", 12)) * time.Hour,
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		DailySalt:         os.Getenv("DAILY_SALT"),
		SteamBaseURL:      os.Getenv("STEAM_BASE_URL"),
		SteamTimeout:      envDuration("STEAM_TIMEOUT", 5*time.Second),
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt parses k as an int, falling back to def.
func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-integer env value")
	}
	return def
}

// envDuration parses k with time.ParseDuration, falling back to def.
func envDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Warn().Str("key", k).Str("value", v).Msg("ignoring invalid duration env value")
	}
	return def
}
