package services

import (
	"context"

	"go.uber.org/zap"

	"restock-backend/catalog"
	"restock-backend/intents"
	"restock-backend/models"
	"restock-backend/telemetry"
)

// DetectionService resolves detection events against the catalog and feeds
// them into the intent store. Identity resolution lives here; the store only
// manages throttling and state.
type DetectionService struct {
	catalog   *catalog.Catalog
	store     *intents.Store
	telemetry *telemetry.Client
	logger    *zap.Logger
}

// NewDetectionService creates a DetectionService.
func NewDetectionService(cat *catalog.Catalog, store *intents.Store, tel *telemetry.Client, logger *zap.Logger) *DetectionService {
	return &DetectionService{
		catalog:   cat,
		store:     store,
		telemetry: tel,
		logger:    logger,
	}
}

// Ingest handles a detection event end to end: catalog resolution, telemetry
// and throttled intent creation.
func (s *DetectionService) Ingest(_ context.Context, event models.DetectionEvent) (models.DetectionIngestResponse, *ServiceError) {
	product, ok := s.catalog.GetByObjectClass(event.ObjectClass)
	if !ok {
		s.telemetry.Emit("detection_unknown", map[string]string{
			"device_id":    event.DeviceID,
			"object_class": event.ObjectClass,
		})
		return models.DetectionIngestResponse{}, &ServiceError{StatusCode: 404, Message: "object_class_not_supported"}
	}

	variant, ok := s.catalog.ResolveVariant(event.ObjectClass, "")
	if !ok {
		s.logger.Error("catalog entry has no resolvable default variant",
			zap.String("object_class", event.ObjectClass),
			zap.String("product_id", product.ID),
		)
		return models.DetectionIngestResponse{}, &ServiceError{StatusCode: 500, Message: "catalog_variant_missing"}
	}

	s.telemetry.Emit("detection", map[string]string{
		"device_id":    event.DeviceID,
		"object_class": event.ObjectClass,
		"fill_level":   string(event.FillLevel),
		"confidence":   string(event.Confidence),
	})

	response := s.store.RegisterDetection(event, product, variant)
	if response.ShouldPrompt {
		s.logger.Info("prompt intent created",
			zap.String("intent_id", response.PendingIntentID),
			zap.String("device_id", event.DeviceID),
			zap.String("object_class", event.ObjectClass),
		)
	}
	return response, nil
}

// GetIntent returns the open prompt intent for the given id.
func (s *DetectionService) GetIntent(_ context.Context, intentID string) (models.PromptIntent, *ServiceError) {
	state := s.store.GetIntent(intentID)
	if state == nil {
		return models.PromptIntent{}, &ServiceError{StatusCode: 404, Message: "intent_not_found"}
	}
	return state.Intent, nil
}
