// Package off implements the Open Food Facts product database client with
// multi-domain fallback and bounded retries.
package off

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/foodscan/backend/internal/domain"
	"golang.org/x/time/rate"
)

// tryOutcome classifies a single lookup attempt. Retry and fallback
// orchestration is an explicit loop over these outcomes rather than
// error-driven control flow.
type tryOutcome int

const (
	outcomeSuccess tryOutcome = iota
	outcomeNotFound
	outcomeTransient
)

// Config holds Open Food Facts client configuration.
type Config struct {
	// Domains is the ordered list of candidate service base URLs. The first
	// success wins; a definitive not-found short-circuits the rest.
	Domains []string
	// TriesPerDomain bounds attempts against a single domain.
	TriesPerDomain int
	// RetryPause is the pause inserted before a second try on the same domain.
	RetryPause time.Duration
	// Timeout bounds each outbound call.
	Timeout time.Duration
}

// Client handles communication with the Open Food Facts API across an
// ordered list of candidate domains.
type Client struct {
	httpClient     *http.Client
	domains        []string
	triesPerDomain int
	retryPause     time.Duration
	rateLimiter    *rate.Limiter
}

// NewClient creates a new Open Food Facts client.
func NewClient(cfg Config) *Client {
	if len(cfg.Domains) == 0 {
		cfg.Domains = []string{
			"https://world.openfoodfacts.net",
			"https://world.openfoodfacts.org",
			"https://us.openfoodfacts.org",
		}
	}
	if cfg.TriesPerDomain <= 0 {
		cfg.TriesPerDomain = 2
	}
	if cfg.RetryPause <= 0 {
		cfg.RetryPause = time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	// OFF asks unauthenticated clients to stay under 100 req/min on
	// product endpoints.
	limiter := rate.NewLimiter(rate.Limit(1.5), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		domains:        cfg.Domains,
		triesPerDomain: cfg.TriesPerDomain,
		retryPause:     cfg.RetryPause,
		rateLimiter:    limiter,
	}
}

// LookupBarcode resolves a barcode against each configured domain in order,
// with up to TriesPerDomain attempts per domain. A well-formed "product does
// not exist" response returns ErrProductNotFound immediately; transport-level
// failures continue to the next try or domain. Exhausting every domain
// without a definitive answer returns ErrUpstreamUnavailable.
func (c *Client) LookupBarcode(ctx context.Context, barcode string) (*domain.ProductRecord, error) {
	var lastErr error

	for _, dom := range c.domains {
		for attempt := 1; attempt <= c.triesPerDomain; attempt++ {
			if attempt > 1 {
				select {
				case <-time.After(c.retryPause):
				case <-ctx.Done():
					return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, ctx.Err())
				}
			}

			if err := c.rateLimiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
			}

			reqURL := fmt.Sprintf("%s/api/v2/product/%s", dom, url.PathEscape(barcode))
			payload, outcome, err := c.fetchProduct(ctx, reqURL)
			switch outcome {
			case outcomeSuccess:
				record := mapProduct(payload.Product, barcode, domain.SourceOpenFoodFacts)
				log.Printf("[OFF] barcode %s resolved via %s", barcode, dom)
				return record, nil
			case outcomeNotFound:
				log.Printf("[OFF] barcode %s not in database (%s)", barcode, dom)
				return nil, domain.ErrProductNotFound
			case outcomeTransient:
				log.Printf("[OFF] transient failure (domain %s, attempt %d): %v", dom, attempt, err)
				lastErr = err
			}
		}
	}

	return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, lastErr)
}

// fetchProduct executes one lookup attempt and classifies the result.
func (c *Client) fetchProduct(ctx context.Context, reqURL string) (*productPayload, tryOutcome, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, outcomeTransient, err
	}
	req.Header.Set("User-Agent", "FoodScan/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, outcomeTransient, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, outcomeTransient, fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, outcomeTransient, err
	}

	var payload productPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		// A 200 response we cannot parse aborts resolution rather than
		// propagating or retrying.
		log.Printf("[OFF] JSON decode error: %v", err)
		return nil, outcomeNotFound, err
	}

	if payload.Status == 1 || payload.Product != nil {
		if payload.Product == nil {
			return nil, outcomeNotFound, nil
		}
		return &payload, outcomeSuccess, nil
	}
	return nil, outcomeNotFound, nil
}

// SearchByName performs a free-text search (single page, first result only)
// against the first configured domain's search endpoint.
func (c *Client) SearchByName(ctx context.Context, query string) (*domain.ProductRecord, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}

	params := url.Values{}
	params.Add("search_terms", query)
	params.Add("search_simple", "1")
	params.Add("action", "process")
	params.Add("json", "1")
	params.Add("page_size", "1")

	reqURL := fmt.Sprintf("%s/cgi/search.pl?%s", c.domains[0], params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	req.Header.Set("User-Agent", "FoodScan/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var payload searchPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("[OFF] search decode error: %v", err)
		return nil, domain.ErrProductNotFound
	}

	if payload.Count == 0 || len(payload.Products) == 0 {
		log.Printf("[OFF] no search results for %q", query)
		return nil, domain.ErrProductNotFound
	}

	log.Printf("[OFF] search %q matched %d products", query, payload.Count)
	return mapProduct(&payload.Products[0], "search_result", domain.SourceOpenFoodFactsSearch), nil
}
