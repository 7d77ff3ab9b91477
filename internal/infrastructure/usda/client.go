// Package usda implements the secondary nutrition lookup against the USDA
// FoodData Central API. It is not part of the product resolution pipeline;
// it backs a standalone nutrition-search endpoint.
package usda

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

// Client handles communication with the USDA FoodData Central API
type Client struct {
	httpClient    *http.Client
	apiKey        string
	baseURL       string
	sodiumDivisor float64
	rateLimiter   *rate.Limiter
}

// NewClient creates a new USDA API client. sodiumDivisor converts the
// reported sodium value (usually mg) to grams; the upstream unit is not
// reliably documented, so it is configurable.
func NewClient(apiKey, baseURL string, sodiumDivisor float64) *Client {
	// USDA allows 1000 requests per hour: 1000/3600 ≈ 0.278 requests/sec
	limiter := rate.NewLimiter(rate.Limit(0.278), 10)

	if sodiumDivisor <= 0 {
		sodiumDivisor = 1000
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:        apiKey,
		baseURL:       baseURL,
		sodiumDivisor: sodiumDivisor,
		rateLimiter:   limiter,
	}
}

// SearchFood searches the USDA database and returns the first hit as a
// normalized food summary.
func (c *Client) SearchFood(ctx context.Context, query string) (*domain.FoodSummary, error) {
	log.Printf("[USDA] SearchFood called with query: %q", query)

	endpoint := fmt.Sprintf("%s/v1/foods/search", c.baseURL)
	params := url.Values{}
	params.Add("query", query)
	params.Add("api_key", c.apiKey)
	params.Add("pageSize", "1")

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	// Retry up to 3 times for transient failures
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", "FoodScan/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			log.Printf("[USDA] Request error (attempt %d): %v", attempt, err)
			lastErr = err
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			log.Printf("[USDA] API error (attempt %d) - Status: %d", attempt, resp.StatusCode)
			if resp.StatusCode == http.StatusNotFound {
				return nil, domain.ErrProductNotFound
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		var searchResp domain.USDASearchResponse
		if err := json.Unmarshal(body, &searchResp); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		if len(searchResp.Foods) == 0 {
			log.Printf("[USDA] No foods found for query: %q", query)
			return nil, domain.ErrProductNotFound
		}

		return MapToFoodSummary(&searchResp.Foods[0], c.sodiumDivisor), nil
	}

	log.Printf("[USDA] All retries failed for query: %q", query)
	return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, lastErr)
}
