package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Assignment lifecycle tuning
	MaxActiveAssignmentsPerWorker int

	// Quota gate tuning
	QuotaAlertThresholdPercent float64
	QuotaResetInterval         time.Duration

	// Rate limiting (requests per period, e.g. "30-M")
	AuthRateLimit string

	// Optional Redis URL for the shared rate limit store. Empty means the
	// in-memory store, which is per-instance only.
	RedisURL string

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`

	// Analytics
	PosthogAPIKey string `mapstructure:"POSTHOG_API_KEY"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "workforce-app")
	viper.SetDefault("MAX_ACTIVE_ASSIGNMENTS_PER_WORKER", 5)
	viper.SetDefault("QUOTA_ALERT_THRESHOLD_PERCENT", 80.0)
	viper.SetDefault("QUOTA_RESET_INTERVAL", "1h")
	viper.SetDefault("AUTH_RATE_LIMIT", "30-M")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	// Load JWT Expiry Duration (e.g., "60m", "1h")
	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 1
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}

	jwtIssuer := viper.GetString("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "workforce-app"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", jwtIssuer)
	}

	maxActive := viper.GetInt("MAX_ACTIVE_ASSIGNMENTS_PER_WORKER")
	if maxActive < 1 {
		maxActive = 5
		log.Printf("Warning: Invalid MAX_ACTIVE_ASSIGNMENTS_PER_WORKER. Defaulting to %d.\n", maxActive)
	}

	alertThreshold := viper.GetFloat64("QUOTA_ALERT_THRESHOLD_PERCENT")
	if alertThreshold <= 0 || alertThreshold > 100 {
		alertThreshold = 80.0
		log.Printf("Warning: Invalid QUOTA_ALERT_THRESHOLD_PERCENT. Defaulting to %.0f.\n", alertThreshold)
	}

	quotaResetStr := viper.GetString("QUOTA_RESET_INTERVAL")
	quotaResetInterval, err := time.ParseDuration(quotaResetStr)
	if err != nil || quotaResetInterval <= 0 {
		quotaResetInterval = time.Hour
		if quotaResetStr != "" {
			log.Printf("Warning: Invalid value for QUOTA_RESET_INTERVAL ('%s'). Defaulting to %s.\n", quotaResetStr, quotaResetInterval.String())
		}
	}

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google OAuth will not function.")
	}
	if cfg.GoogleClientSecret == "" {
		log.Println("Warning: GOOGLE_CLIENT_SECRET not set. Google OAuth will not function.")
	}
	if cfg.GoogleRedirectURL == "" {
		log.Println("Warning: GOOGLE_REDIRECT_URL not set. Google OAuth will not function.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTSecret = jwtSecret
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = jwtIssuer
	cfg.MaxActiveAssignmentsPerWorker = maxActive
	cfg.QuotaAlertThresholdPercent = alertThreshold
	cfg.QuotaResetInterval = quotaResetInterval
	cfg.AuthRateLimit = viper.GetString("AUTH_RATE_LIMIT")
	cfg.RedisURL = viper.GetString("REDIS_URL")

	return cfg, nil
}
