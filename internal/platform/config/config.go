package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultPort           = "8080"
	defaultMigrationsPath = "file://migrations"
	defaultRateLimit      = "100-M"
	defaultCORSOrigins    = "http://localhost:5173"
	defaultSessionTTL     = 24 * time.Hour
	defaultMaxImportBytes = 5 << 20
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// DatabaseURL selects the PostgreSQL draft store; empty keeps drafts in memory.
	DatabaseURL    string
	RunMigrations  bool
	MigrationsPath string

	RateLimit          string
	CORSAllowedOrigins []string

	SessionTTL     time.Duration
	MaxImportBytes int64
}

// UsesDatabase reports whether drafts are stored in PostgreSQL.
func (c *Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("MIGRATIONS_PATH", defaultMigrationsPath)
	v.SetDefault("RATE_LIMIT", defaultRateLimit)
	v.SetDefault("CORS_ALLOWED_ORIGINS", defaultCORSOrigins)
	v.SetDefault("SESSION_TTL", defaultSessionTTL.String())
	v.SetDefault("MAX_IMPORT_BYTES", defaultMaxImportBytes)

	v.AutomaticEnv()

	cfg := &Config{
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		DatabaseURL:    v.GetString("PGSQL_URL"),
		RunMigrations:  v.GetBool("RUN_MIGRATIONS"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		RateLimit:      v.GetString("RATE_LIMIT"),
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Drafts are kept in memory.")
	}

	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = defaultMigrationsPath
	}

	if cfg.RateLimit == "" {
		cfg.RateLimit = defaultRateLimit
		log.Printf("Warning: RATE_LIMIT not set. Defaulting to %s.\n", cfg.RateLimit)
	}

	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	sessionTTLStr := v.GetString("SESSION_TTL")
	sessionTTL, err := time.ParseDuration(sessionTTLStr)
	if err != nil || sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
		log.Printf("Warning: Invalid value for SESSION_TTL ('%s'). Defaulting to %s.\n", sessionTTLStr, sessionTTL.String())
	}
	cfg.SessionTTL = sessionTTL

	cfg.MaxImportBytes = v.GetInt64("MAX_IMPORT_BYTES")
	if cfg.MaxImportBytes <= 0 {
		cfg.MaxImportBytes = defaultMaxImportBytes
		log.Printf("Warning: Invalid value for MAX_IMPORT_BYTES. Defaulting to %d.\n", cfg.MaxImportBytes)
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
