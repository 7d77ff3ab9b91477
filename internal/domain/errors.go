package domain

import "errors"

var (
	// ErrProductNotFound is returned when no stage can resolve a product.
	ErrProductNotFound = errors.New("product not found")

	// ErrUpstreamUnavailable is returned when all lookup domains and tries
	// are exhausted without a definitive answer.
	ErrUpstreamUnavailable = errors.New("product database unavailable")

	// ErrDecodeFailure is returned when image bytes cannot be decoded or an
	// optional vision capability is missing.
	ErrDecodeFailure = errors.New("image decode failure")

	// ErrInvalidProfile is returned for malformed caller-supplied user
	// profile data.
	ErrInvalidProfile = errors.New("invalid user profile")

	// ErrModelInference is returned when the trained model fails during
	// prediction. It is absorbed by the rule-based fallback, never surfaced.
	ErrModelInference = errors.New("model inference failed")

	// ErrInvalidRequest is returned when request parameters are invalid.
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache.
	ErrCacheMiss = errors.New("cache miss")
)
