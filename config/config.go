package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	OFF     OFFConfig
	USDA    USDAConfig
	Cache   CacheConfig
	Scoring ScoringConfig
	OCR     OCRConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OFFConfig holds Open Food Facts client configuration
type OFFConfig struct {
	// Domains is the ordered fallback list of candidate base URLs.
	Domains        []string      `mapstructure:"domains"`
	TriesPerDomain int           `mapstructure:"tries_per_domain"`
	RetryPause     time.Duration `mapstructure:"retry_pause"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// USDAConfig holds USDA API configuration for the secondary nutrition
// lookup. An empty API key disables the feature.
type USDAConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	// SodiumDivisor converts the reported sodium value to grams; the
	// upstream unit is not reliably documented.
	SodiumDivisor float64 `mapstructure:"sodium_divisor"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// ScoringConfig holds personalization engine configuration
type ScoringConfig struct {
	ModelPath string `mapstructure:"model_path"`
	// NovaDefault substitutes for an unreported processing level. 4 is
	// deliberately conservative: unknown is treated as most processed.
	NovaDefault int `mapstructure:"nova_default"`
	// SodiumToSalt converts sodium per 100g to the salt figure the rule
	// table consumes.
	SodiumToSalt float64 `mapstructure:"sodium_to_salt"`
}

// OCRConfig holds OCR capability configuration
type OCRConfig struct {
	TesseractPath string `mapstructure:"tesseract_path"`
	Language      string `mapstructure:"language"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/foodscan/")

	// Environment variable settings: FOODSCAN_CACHE_TYPE overrides cache.type
	v.SetEnvPrefix("FOODSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Open Food Facts defaults
	v.SetDefault("off.domains", []string{
		"https://world.openfoodfacts.net",
		"https://world.openfoodfacts.org",
		"https://us.openfoodfacts.org",
	})
	v.SetDefault("off.tries_per_domain", 2)
	v.SetDefault("off.retry_pause", "1s")
	v.SetDefault("off.timeout", "10s")

	// USDA defaults. The empty api_key default keeps the key visible to
	// viper so the environment variable binds; an empty key disables the
	// USDA lookup.
	v.SetDefault("usda.api_key", "")
	v.SetDefault("usda.base_url", "https://api.nal.usda.gov/fdc")
	v.SetDefault("usda.sodium_divisor", 1000.0)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "24h")

	// Scoring defaults
	v.SetDefault("scoring.model_path", "personalization_model.json")
	v.SetDefault("scoring.nova_default", 4)
	v.SetDefault("scoring.sodium_to_salt", 2.5)

	// OCR defaults
	v.SetDefault("ocr.tesseract_path", "")
	v.SetDefault("ocr.language", "eng")
}

// validate validates the configuration
func validate(config *Config) error {
	if len(config.OFF.Domains) == 0 {
		return fmt.Errorf("at least one Open Food Facts domain is required")
	}

	if config.OFF.TriesPerDomain < 1 {
		return fmt.Errorf("off.tries_per_domain must be at least 1, got: %d", config.OFF.TriesPerDomain)
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.Scoring.SodiumToSalt <= 0 {
		return fmt.Errorf("scoring.sodium_to_salt must be positive, got: %v", config.Scoring.SodiumToSalt)
	}

	if config.Scoring.NovaDefault < 1 || config.Scoring.NovaDefault > 4 {
		return fmt.Errorf("scoring.nova_default must be in 1..4, got: %d", config.Scoring.NovaDefault)
	}

	return nil
}
