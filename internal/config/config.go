package config

import (
	"errors"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// devJWTSecret is only accepted when DEV_MODE is on.
const devJWTSecret = "dev-only-jwt-secret-do-not-use-in-production-0123"

// Config holds all application configuration
type Config struct {
	AppPort               int    `mapstructure:"APP_PORT"`
	BcryptCost            int    `mapstructure:"BCRYPT_COST"`
	RegisterRatePerMin    int    `mapstructure:"REGISTER_RATE_PER_MIN"`
	LogLevel              string `mapstructure:"LOG_LEVEL"`
	LogFormat             string `mapstructure:"LOG_FORMAT"`
	LogFile               string `mapstructure:"LOG_FILE"`
	MongoURI              string `mapstructure:"MONGO_URI"`
	MongoDBName           string `mapstructure:"MONGO_DB_NAME"`
	JWTSecret             string `mapstructure:"JWT_SECRET"`
	TokenTTLMinutes       int    `mapstructure:"TOKEN_TTL_MINUTES"`
	ListingTimezone       string `mapstructure:"LISTING_TIMEZONE"`
	RouteMetricsEnabled   bool   `mapstructure:"ROUTE_METRICS_ENABLED"`
	RequestLoggingEnabled bool   `mapstructure:"REQUEST_LOGGING_ENABLED"`
	PyroscopeServerAddr   string `mapstructure:"PYROSCOPE_SERVER_ADDRESS"`
	DevMode               bool   `mapstructure:"DEV_MODE"`
}

var (
	cachedConfig *Config
	configMutex  sync.RWMutex
)

// Load loads configuration from environment variables and .env file
// It caches the result for subsequent calls
func Load() (Config, error) {
	configMutex.RLock()
	if cachedConfig != nil {
		defer configMutex.RUnlock()
		return *cachedConfig, nil
	}
	configMutex.RUnlock()

	configMutex.Lock()
	defer configMutex.Unlock()

	// Double-check in case another goroutine loaded it while we waited for the lock
	if cachedConfig != nil {
		return *cachedConfig, nil
	}

	v := viper.New()

	v.SetDefault("APP_PORT", 8080)
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("REGISTER_RATE_PER_MIN", 20)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("MONGO_URI", "mongodb://mongo:27017")
	v.SetDefault("MONGO_DB_NAME", "geousers")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL_MINUTES", 0) // 0 = no exp claim
	v.SetDefault("LISTING_TIMEZONE", "UTC")
	v.SetDefault("ROUTE_METRICS_ENABLED", true)
	v.SetDefault("REQUEST_LOGGING_ENABLED", true)
	v.SetDefault("PYROSCOPE_SERVER_ADDRESS", "")
	v.SetDefault("DEV_MODE", false)

	// Configure Viper to read from .env file (if present)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	// Try to read .env file (it's okay if it doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	// Override with OS environment variables
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.DevMode && cfg.JWTSecret == "" {
		cfg.JWTSecret = devJWTSecret
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	cachedConfig = &cfg

	return cfg, nil
}

// ResetCache clears the cached configuration (for testing purposes)
func ResetCache() {
	configMutex.Lock()
	defer configMutex.Unlock()
	cachedConfig = nil
}

// Validate checks if required configuration fields are properly set
func (c Config) Validate() error {
	if c.AppPort <= 0 {
		return errors.New("APP_PORT must be greater than 0")
	}
	if c.BcryptCost < 10 || c.BcryptCost > 16 {
		return errors.New("BCRYPT_COST must be between 10 and 16")
	}
	if c.RegisterRatePerMin < 0 {
		return errors.New("REGISTER_RATE_PER_MIN cannot be negative")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("LOG_LEVEL must be one of debug, info, warn, error")
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return errors.New("LOG_FORMAT must be either json or text")
	}
	if c.MongoURI == "" {
		return errors.New("MONGO_URI cannot be empty")
	}
	if c.MongoDBName == "" {
		return errors.New("MONGO_DB_NAME cannot be empty")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET cannot be empty")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters for HS256")
	}
	if c.TokenTTLMinutes < 0 {
		return errors.New("TOKEN_TTL_MINUTES cannot be negative")
	}
	// "Local" resolves in Go but means nothing to the database server
	if _, err := time.LoadLocation(c.ListingTimezone); err != nil || c.ListingTimezone == "Local" {
		return errors.New("LISTING_TIMEZONE must be a valid IANA time zone")
	}
	return nil
}

// TokenTTL returns the lifetime of issued tokens; zero means no expiry.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}
