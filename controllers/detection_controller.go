package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restock-backend/models"
	"restock-backend/services"
)

// DetectionController handles detection ingestion and intent lookups.
type DetectionController struct {
	detectionService *services.DetectionService
}

// NewDetectionController creates a DetectionController.
func NewDetectionController(svc *services.DetectionService) *DetectionController {
	return &DetectionController{detectionService: svc}
}

// Ingest handles POST /detections
func (dc *DetectionController) Ingest(ctx *gin.Context) {
	var event models.DetectionEvent
	if err := ctx.ShouldBindJSON(&event); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	response, svcErr := dc.detectionService.Ingest(ctx.Request.Context(), event)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetIntent handles GET /detections/intents/:intent_id
func (dc *DetectionController) GetIntent(ctx *gin.Context) {
	intentID := ctx.Param("intent_id")
	if intentID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Intent id is required"})
		return
	}

	intent, svcErr := dc.detectionService.GetIntent(ctx.Request.Context(), intentID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, intent)
}
