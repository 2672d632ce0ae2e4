package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restock-backend/catalog"
	"restock-backend/telemetry"
)

// SystemController serves catalog listing, health and telemetry endpoints.
type SystemController struct {
	catalog   *catalog.Catalog
	telemetry *telemetry.Client
}

// NewSystemController creates a SystemController.
func NewSystemController(cat *catalog.Catalog, tel *telemetry.Client) *SystemController {
	return &SystemController{catalog: cat, telemetry: tel}
}

// ListProducts handles GET /catalog/products
func (sc *SystemController) ListProducts(ctx *gin.Context) {
	products := sc.catalog.Products()
	ctx.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    len(products),
	})
}

// Health handles GET /system/health
func (sc *SystemController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "OK", "service": "restock-backend"})
}

// Telemetry handles GET /system/telemetry
func (sc *SystemController) Telemetry(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"summary": sc.telemetry.Summarize(),
		"recent":  sc.telemetry.Recent(),
	})
}
