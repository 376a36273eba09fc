// Package config loads application settings from a .env file and environment
// variables. Environment variables always take precedence over .env values.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// JWT signing secret (required in production).
	JWTSecret string

	// Server
	Debug      bool
	Port       string
	TLSDomains []string

	// Scraper / sync
	UserAgent     string
	ThrottleDelay time.Duration

	// Seed files
	RacesFile  string
	PricesFile string

	// Price matching
	PriceSource    string
	MatchMediumMax int
	MatchLowMax    int
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	v := newViper()

	// Defaults
	v.SetDefault("DB_USER", "padraic")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "classicsdata")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("PORT", ":9000")
	v.SetDefault("TLS_DOMAINS", "classics.padraicbc.com")
	v.SetDefault("DEBUG", false)
	v.SetDefault("USER_AGENT", "classics-startlist-sync")
	v.SetDefault("THROTTLE_DELAY_MS", 1000)
	v.SetDefault("RACES_FILE", "config/races.classics.yaml")
	v.SetDefault("PRICES_FILE", "config/prices.classics.yaml")
	v.SetDefault("PRICE_SOURCE", "scorito-2026")
	v.SetDefault("MATCH_MEDIUM_MAX", 2)
	v.SetDefault("MATCH_LOW_MAX", 4)

	cfg := &Config{
		DatabaseURL:    v.GetString("DATABASE_URL"),
		DBUser:         v.GetString("DB_USER"),
		DBPass:         v.GetString("DB_PASS"),
		DBHost:         v.GetString("DB_HOST"),
		DBPort:         v.GetString("DB_PORT"),
		DBName:         v.GetString("DB_NAME"),
		DBSSLMode:      v.GetString("DB_SSLMODE"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		Debug:          v.GetBool("DEBUG"),
		Port:           v.GetString("PORT"),
		TLSDomains:     splitTrimmed(v.GetString("TLS_DOMAINS")),
		UserAgent:      v.GetString("USER_AGENT"),
		ThrottleDelay:  time.Duration(v.GetInt("THROTTLE_DELAY_MS")) * time.Millisecond,
		RacesFile:      v.GetString("RACES_FILE"),
		PricesFile:     v.GetString("PRICES_FILE"),
		PriceSource:    v.GetString("PRICE_SOURCE"),
		MatchMediumMax: v.GetInt("MATCH_MEDIUM_MAX"),
		MatchLowMax:    v.GetInt("MATCH_LOW_MAX"),
	}

	cfg.validate()
	return cfg
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// JWTKey returns the JWT signing key as a byte slice.
func (c *Config) JWTKey() []byte {
	return []byte(c.JWTSecret)
}

func (c *Config) validate() {
	if c.DatabaseURL == "" && c.DBPass == "" {
		log.Fatal("config: DATABASE_URL or DB_PASS must be set")
	}
	if c.JWTSecret == "" {
		log.Fatal("config: JWT_SECRET must be set")
	}
	if c.MatchMediumMax < 0 || c.MatchLowMax < c.MatchMediumMax {
		log.Fatal("config: MATCH_MEDIUM_MAX/MATCH_LOW_MAX must be ordered, non-negative")
	}
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
