package http

import (
	"github.com/gin-gonic/gin"

	"github.com/foodscan/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		scan := v1.Group("/scan")
		{
			scan.POST("/barcode", handler.ScanBarcode)
			scan.POST("/barcode/personalized", handler.ScanBarcodePersonalized)
			scan.POST("/image", handler.ScanImage)
			scan.POST("/image/personalized", handler.ScanImagePersonalized)
		}

		v1.POST("/compliance/check", handler.CheckCompliance)
		v1.GET("/nutrition/search", handler.SearchNutrition)
	}

	return router
}
