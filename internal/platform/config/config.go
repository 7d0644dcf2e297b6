package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"
	defaultPort      = "8080"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	DBMaxConns        int32
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	LogLevel          string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	FrontendBaseURL   string

	// CooperativeID scopes member codes and surplus distributions.
	CooperativeID string

	// RateLimit uses the ulule limiter format, e.g. "100-M".
	RateLimit      string
	RequestTimeout time.Duration
	PosthogAPIKey  string

	// ServiceAPIKeyHashes are bcrypt hashes of keys accepted in the x-api-key header.
	ServiceAPIKeyHashes []string

	SideEffectTimeout     time.Duration
	SideEffectConcurrency int64
	TxMaxRetries          int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	return load(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "coop-savings-app")
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("COOPERATIVE_ID", "default")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("REQUEST_TIMEOUT", "15s")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("SERVICE_API_KEY_HASHES", "")
	v.SetDefault("SIDE_EFFECT_TIMEOUT", "10s")
	v.SetDefault("SIDE_EFFECT_CONCURRENCY", 8)
	v.SetDefault("TX_MAX_RETRIES", 3)
}

func load(v *viper.Viper) *Config {
	setDefaults(v)

	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.DBMaxConns = v.GetInt32("DB_MAX_CONNS")
	if cfg.DBMaxConns <= 0 {
		log.Printf("Warning: Invalid DB_MAX_CONNS (%d). Defaulting to 10.\n", cfg.DBMaxConns)
		cfg.DBMaxConns = 10
	}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = defaultPort
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")
	cfg.LogLevel = strings.ToLower(v.GetString("LOG_LEVEL"))

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTExpiryDuration = durationOr(v, "JWT_EXPIRY_DURATION", time.Hour)
	cfg.JWTIssuer = v.GetString("JWT_ISSUER")
	cfg.FrontendBaseURL = v.GetString("FRONTEND_BASE_URL")

	cfg.CooperativeID = strings.TrimSpace(v.GetString("COOPERATIVE_ID"))
	if cfg.CooperativeID == "" {
		cfg.CooperativeID = "default"
		log.Println("Warning: COOPERATIVE_ID not set. Defaulting to \"default\".")
	}

	cfg.RateLimit = v.GetString("RATE_LIMIT")
	cfg.RequestTimeout = durationOr(v, "REQUEST_TIMEOUT", 15*time.Second)
	cfg.PosthogAPIKey = v.GetString("POSTHOG_API_KEY")
	cfg.ServiceAPIKeyHashes = splitList(v.GetString("SERVICE_API_KEY_HASHES"))

	cfg.SideEffectTimeout = durationOr(v, "SIDE_EFFECT_TIMEOUT", 10*time.Second)
	cfg.SideEffectConcurrency = v.GetInt64("SIDE_EFFECT_CONCURRENCY")
	if cfg.SideEffectConcurrency <= 0 {
		log.Printf("Warning: Invalid SIDE_EFFECT_CONCURRENCY (%d). Defaulting to 8.\n", cfg.SideEffectConcurrency)
		cfg.SideEffectConcurrency = 8
	}
	cfg.TxMaxRetries = v.GetInt("TX_MAX_RETRIES")
	if cfg.TxMaxRetries < 0 {
		cfg.TxMaxRetries = 0
	}

	return cfg
}

func durationOr(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
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
