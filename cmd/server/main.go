package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/foodscan/backend/config"
	httpDelivery "github.com/foodscan/backend/internal/delivery/http"
	"github.com/foodscan/backend/internal/domain"
	"github.com/foodscan/backend/internal/infrastructure/cache"
	"github.com/foodscan/backend/internal/infrastructure/off"
	"github.com/foodscan/backend/internal/infrastructure/usda"
	"github.com/foodscan/backend/internal/infrastructure/vision"
	"github.com/foodscan/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting FoodScan Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s", cfg.Cache.Type)

	// Initialize infrastructure dependencies
	productCache := buildCache(cfg)
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	offClient := off.NewClient(off.Config{
		Domains:        cfg.OFF.Domains,
		TriesPerDomain: cfg.OFF.TriesPerDomain,
		RetryPause:     cfg.OFF.RetryPause,
		Timeout:        cfg.OFF.Timeout,
	})
	log.Printf("Open Food Facts domains: %v", cfg.OFF.Domains)

	decoder := vision.NewZXingDecoder()

	// OCR is an optional capability; without a tesseract binary the image
	// pipeline simply stops after the barcode stage.
	var ocr domain.TextExtractor
	if extractor, err := vision.NewTesseractExtractor(cfg.OCR.TesseractPath, cfg.OCR.Language); err != nil {
		log.Printf("WARNING: OCR unavailable: %v", err)
	} else {
		ocr = extractor
	}

	// USDA lookup is only wired when an API key is configured.
	var nutrition domain.NutritionSource
	if cfg.USDA.APIKey != "" {
		nutrition = usda.NewClient(cfg.USDA.APIKey, cfg.USDA.BaseURL, cfg.USDA.SodiumDivisor)
		log.Printf("USDA API configured: %s", cfg.USDA.BaseURL)
	} else {
		log.Printf("USDA API key not configured, nutrition search disabled")
	}

	// Initialize usecase layer
	resolver := usecase.NewResolverService(offClient, productCache, decoder, ocr, usecase.ResolverConfig{
		CacheTTL: cfg.Cache.TTL,
	})

	engine := usecase.NewPersonalizationEngine(usecase.ScoringConfig{
		ModelPath:    cfg.Scoring.ModelPath,
		NovaDefault:  cfg.Scoring.NovaDefault,
		SodiumToSalt: cfg.Scoring.SodiumToSalt,
	})
	log.Printf("Scoring: model_path=%s nova_default=%d sodium_to_salt=%.2f",
		cfg.Scoring.ModelPath, cfg.Scoring.NovaDefault, cfg.Scoring.SodiumToSalt)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(resolver, engine, nutrition)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildCache selects the cache backend from configuration. A Redis
// connection failure is fatal: a misconfigured cache should not silently
// degrade to an empty in-process one.
func buildCache(cfg *config.Config) domain.CacheRepository {
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(context.Background(), cfg.Cache.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		return redisCache
	default:
		return cache.NewMemoryCache()
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
