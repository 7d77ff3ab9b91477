package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("FOODSCAN_SERVER_PORT")
		os.Unsetenv("FOODSCAN_SERVER_ENVIRONMENT")
		os.Unsetenv("FOODSCAN_USDA_API_KEY")
		os.Unsetenv("FOODSCAN_CACHE_TYPE")
		os.Unsetenv("FOODSCAN_CACHE_REDIS_URL")
		os.Unsetenv("FOODSCAN_CACHE_TTL")
		os.Unsetenv("FOODSCAN_OFF_TIMEOUT")
		os.Unsetenv("FOODSCAN_SCORING_NOVA_DEFAULT")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if len(cfg.OFF.Domains) != 3 {
			t.Errorf("OFF.Domains = %v, want 3 fallback domains", cfg.OFF.Domains)
		}
		if cfg.OFF.Domains[0] != "https://world.openfoodfacts.net" {
			t.Errorf("OFF.Domains[0] = %s", cfg.OFF.Domains[0])
		}
		if cfg.OFF.TriesPerDomain != 2 {
			t.Errorf("OFF.TriesPerDomain = %d, want 2", cfg.OFF.TriesPerDomain)
		}
		if cfg.OFF.RetryPause != time.Second {
			t.Errorf("OFF.RetryPause = %v, want 1s", cfg.OFF.RetryPause)
		}
		if cfg.OFF.Timeout != 10*time.Second {
			t.Errorf("OFF.Timeout = %v, want 10s", cfg.OFF.Timeout)
		}
		if cfg.USDA.BaseURL != "https://api.nal.usda.gov/fdc" {
			t.Errorf("USDA.BaseURL = %s", cfg.USDA.BaseURL)
		}
		if cfg.USDA.SodiumDivisor != 1000.0 {
			t.Errorf("USDA.SodiumDivisor = %v, want 1000", cfg.USDA.SodiumDivisor)
		}
		if cfg.Cache.Type != "memory" {
			t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
		if cfg.Scoring.NovaDefault != 4 {
			t.Errorf("Scoring.NovaDefault = %d, want 4", cfg.Scoring.NovaDefault)
		}
		if cfg.Scoring.SodiumToSalt != 2.5 {
			t.Errorf("Scoring.SodiumToSalt = %v, want 2.5", cfg.Scoring.SodiumToSalt)
		}
		if cfg.OCR.Language != "eng" {
			t.Errorf("OCR.Language = %s, want eng", cfg.OCR.Language)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("FOODSCAN_SERVER_PORT", "9000")
		os.Setenv("FOODSCAN_CACHE_TTL", "1h")
		os.Setenv("FOODSCAN_USDA_API_KEY", "secret-key")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9000" {
			t.Errorf("Server.Port = %s, want 9000", cfg.Server.Port)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
		if cfg.USDA.APIKey != "secret-key" {
			t.Errorf("USDA.APIKey = %s, want secret-key", cfg.USDA.APIKey)
		}
	})

	t.Run("rejects invalid cache type", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("FOODSCAN_CACHE_TYPE", "memcached")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want cache type validation error")
		}
	})

	t.Run("requires redis url for redis cache", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("FOODSCAN_CACHE_TYPE", "redis")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want redis url validation error")
		}
	})

	t.Run("rejects out-of-range nova default", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("FOODSCAN_SCORING_NOVA_DEFAULT", "7")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want nova default validation error")
		}
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			OFF: OFFConfig{
				Domains:        []string{"https://world.openfoodfacts.net"},
				TriesPerDomain: 2,
			},
			Cache:   CacheConfig{Type: "memory"},
			Scoring: ScoringConfig{NovaDefault: 4, SodiumToSalt: 2.5},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		if err := validate(base()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("empty domain list fails", func(t *testing.T) {
		cfg := base()
		cfg.OFF.Domains = nil
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want domain list error")
		}
	})

	t.Run("non-positive sodium-to-salt fails", func(t *testing.T) {
		cfg := base()
		cfg.Scoring.SodiumToSalt = 0
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want sodium_to_salt error")
		}
	})

	t.Run("zero tries per domain fails", func(t *testing.T) {
		cfg := base()
		cfg.OFF.TriesPerDomain = 0
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want tries_per_domain error")
		}
	})
}
