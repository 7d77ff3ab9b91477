package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching resolved products.
// Values are stored as serialized bytes so memory and Redis backends
// behave identically.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ProductSource defines the interface to the external product database.
type ProductSource interface {
	// LookupBarcode resolves a normalized barcode to a product record.
	LookupBarcode(ctx context.Context, barcode string) (*ProductRecord, error)
	// SearchByName performs a free-text search and returns the best hit.
	SearchByName(ctx context.Context, query string) (*ProductRecord, error)
}

// BarcodeDecoder extracts a barcode payload from raw image bytes.
type BarcodeDecoder interface {
	Decode(ctx context.Context, imageBytes []byte) (string, error)
}

// TextExtractor runs OCR over raw image bytes and returns the detected
// text fragments joined with single spaces.
type TextExtractor interface {
	ExtractText(ctx context.Context, imageBytes []byte) (string, error)
}

// NutritionSource defines the interface for the secondary nutrition
// database lookup (USDA FoodData Central).
type NutritionSource interface {
	SearchFood(ctx context.Context, query string) (*FoodSummary, error)
}
