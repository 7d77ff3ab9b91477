package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodscan/backend/internal/domain"
	"github.com/foodscan/backend/internal/usecase"
)

// ProductResolver is the resolver surface the handlers consume.
type ProductResolver interface {
	ResolveBarcode(ctx context.Context, barcode string) (*domain.ProductRecord, error)
	ResolveImage(ctx context.Context, imageBytes []byte) (*domain.ProductRecord, error)
}

// Scorer is the personalization surface the handlers consume.
type Scorer interface {
	Predict(product *domain.ProductRecord, user *domain.UserProfile) domain.ScoreResult
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	resolver  ProductResolver
	scorer    Scorer
	nutrition domain.NutritionSource // nil when USDA is not configured
}

// NewHandler creates a new HTTP handler
func NewHandler(resolver ProductResolver, scorer Scorer, nutrition domain.NutritionSource) *Handler {
	return &Handler{
		resolver:  resolver,
		scorer:    scorer,
		nutrition: nutrition,
	}
}

// barcodeRequest is the body of a barcode scan request.
type barcodeRequest struct {
	Barcode     string              `json:"barcode" binding:"required"`
	UserProfile *domain.UserProfile `json:"user_profile"`
}

// personalizedProduct is a product record with its suitability score.
type personalizedProduct struct {
	domain.ProductRecord
	domain.ScoreResult
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "foodscan-backend",
		"version": "1.0.0",
	})
}

// ScanBarcode resolves a barcode to a product record.
func (h *Handler) ScanBarcode(c *gin.Context) {
	var req barcodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.resolver.ResolveBarcode(c.Request.Context(), req.Barcode)
	if err != nil {
		h.writeResolveError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// ScanBarcodePersonalized resolves a barcode and scores the product
// against the supplied user profile.
func (h *Handler) ScanBarcodePersonalized(c *gin.Context) {
	var req barcodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := req.UserProfile
	if profile == nil {
		profile = &domain.UserProfile{}
	}
	if err := profile.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.resolver.ResolveBarcode(c.Request.Context(), req.Barcode)
	if err != nil {
		h.writeResolveError(c, err)
		return
	}

	c.JSON(http.StatusOK, personalizedProduct{
		ProductRecord: *record,
		ScoreResult:   h.scorer.Predict(record, profile),
	})
}

// ScanImage resolves an uploaded image to a product record.
func (h *Handler) ScanImage(c *gin.Context) {
	imageBytes, ok := h.readImageFile(c)
	if !ok {
		return
	}

	record, err := h.resolver.ResolveImage(c.Request.Context(), imageBytes)
	if err != nil {
		h.writeResolveError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// ScanImagePersonalized resolves an uploaded image and scores the product.
// The profile travels as a JSON string form field because the request body
// is multipart.
func (h *Handler) ScanImagePersonalized(c *gin.Context) {
	imageBytes, ok := h.readImageFile(c)
	if !ok {
		return
	}

	profile := &domain.UserProfile{}
	if raw := c.PostForm("user_profile"); raw != "" {
		if err := json.Unmarshal([]byte(raw), profile); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_profile JSON"})
			return
		}
	}
	if err := profile.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.resolver.ResolveImage(c.Request.Context(), imageBytes)
	if err != nil {
		h.writeResolveError(c, err)
		return
	}

	c.JSON(http.StatusOK, personalizedProduct{
		ProductRecord: *record,
		ScoreResult:   h.scorer.Predict(record, profile),
	})
}

// CheckCompliance runs the regulatory compliance check for a barcode.
func (h *Handler) CheckCompliance(c *gin.Context) {
	var req barcodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.resolver.ResolveBarcode(c.Request.Context(), req.Barcode)
	if err != nil {
		h.writeResolveError(c, err)
		return
	}
	c.JSON(http.StatusOK, usecase.CheckCompliance(record))
}

// SearchNutrition queries the secondary USDA nutrition database.
func (h *Handler) SearchNutrition(c *gin.Context) {
	if h.nutrition == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "USDA lookup not configured"})
		return
	}

	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
		return
	}

	summary, err := h.nutrition.SearchFood(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no matching food found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "nutrition database unavailable"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// readImageFile extracts the uploaded file's bytes, writing the error
// response itself on failure.
func (h *Handler) readImageFile(c *gin.Context) ([]byte, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file upload is required"})
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return nil, false
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil || len(imageBytes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return nil, false
	}
	return imageBytes, true
}

// writeResolveError maps resolver errors to HTTP status codes. Not-found
// and upstream exhaustion are both surfaced as 404: "not found" is the
// only externally observable failure mode of the resolution pipeline.
func (h *Handler) writeResolveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrUpstreamUnavailable):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found or could not be identified"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
