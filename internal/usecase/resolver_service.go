package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/foodscan/backend/internal/domain"
)

// ResolverConfig holds configuration for the product resolver.
type ResolverConfig struct {
	CacheTTL time.Duration
}

// ResolverService resolves barcodes and images to canonical product
// records. The barcode decoder and text extractor are optional
// capabilities; a nil capability skips its pipeline stage.
type ResolverService struct {
	source   domain.ProductSource
	cache    domain.CacheRepository
	decoder  domain.BarcodeDecoder
	ocr      domain.TextExtractor
	cacheTTL time.Duration
}

// NewResolverService creates a resolver with its dependencies. cache,
// decoder and ocr may each be nil.
func NewResolverService(
	source domain.ProductSource,
	cache domain.CacheRepository,
	decoder domain.BarcodeDecoder,
	ocr domain.TextExtractor,
	cfg ResolverConfig,
) *ResolverService {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}
	return &ResolverService{
		source:   source,
		cache:    cache,
		decoder:  decoder,
		ocr:      ocr,
		cacheTTL: cacheTTL,
	}
}

// normalizeBarcode strips whitespace and hyphens before any network access.
func normalizeBarcode(barcode string) string {
	var b strings.Builder
	for _, r := range barcode {
		switch r {
		case ' ', '\t', '\n', '\r', '-':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ResolveBarcode resolves a barcode string to a product record.
// Flow: normalize input -> check cache -> query product database -> cache.
func (s *ResolverService) ResolveBarcode(ctx context.Context, barcode string) (*domain.ProductRecord, error) {
	code := normalizeBarcode(barcode)
	if code == "" {
		return nil, domain.ErrInvalidRequest
	}

	cacheKey := "product:" + code
	if cached := s.getFromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	record, err := s.source.LookupBarcode(ctx, code)
	if err != nil {
		return nil, err
	}

	s.setInCache(ctx, cacheKey, record)
	return record, nil
}

// ResolveImage resolves raw image bytes to a product record.
// Stage 1 attempts barcode decoding and delegates any hit entirely to
// ResolveBarcode. Stage 2 falls back to OCR plus a free-text search.
// Capability absence and decode failures are soft: the result collapses to
// not-found rather than propagating.
func (s *ResolverService) ResolveImage(ctx context.Context, imageBytes []byte) (*domain.ProductRecord, error) {
	if len(imageBytes) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	if s.decoder != nil {
		code, err := s.decoder.Decode(ctx, imageBytes)
		if err == nil && code != "" {
			log.Printf("[Resolver] image contained barcode %s", code)
			return s.ResolveBarcode(ctx, code)
		}
	}

	if s.ocr == nil {
		return nil, domain.ErrProductNotFound
	}

	text, err := s.ocr.ExtractText(ctx, imageBytes)
	if err != nil {
		log.Printf("[Resolver] OCR failed: %v", err)
		return nil, domain.ErrProductNotFound
	}
	query := strings.TrimSpace(text)
	if query == "" {
		return nil, domain.ErrProductNotFound
	}

	log.Printf("[Resolver] OCR extracted query: %q", query)
	record, err := s.source.SearchByName(ctx, query)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, err
		}
		return nil, domain.ErrProductNotFound
	}
	return record, nil
}

// getFromCache returns a cached record, or nil on any miss or decode issue.
func (s *ResolverService) getFromCache(ctx context.Context, key string) *domain.ProductRecord {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil
	}
	var record domain.ProductRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil
	}
	return &record
}

// setInCache stores a record; caching failures are logged, not fatal.
func (s *ResolverService) setInCache(ctx context.Context, key string, record *domain.ProductRecord) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(record)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		log.Printf("[Resolver] cache set failed: %v", err)
	}
}
