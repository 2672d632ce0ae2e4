package services

import (
	"context"

	"go.uber.org/zap"

	"restock-backend/intents"
	"restock-backend/models"
	"restock-backend/providers"
	"restock-backend/repository"
	"restock-backend/telemetry"
)

// OrderService orchestrates the decision-to-order flow: it records the
// user's decision in the intent store, submits accepted orders to the
// commerce provider off any store lock, and writes the result back.
type OrderService struct {
	store     *intents.Store
	provider  providers.CommerceProvider
	prefs     PreferencesReader
	archive   repository.OrderArchive // nil when no database is configured
	telemetry *telemetry.Client
	logger    *zap.Logger
}

// PreferencesReader is the slice of the user service the order flow needs to
// resolve a delivery destination.
type PreferencesReader interface {
	DefaultDestination(ctx context.Context, userID string) map[string]string
}

// NewOrderService creates an OrderService. archive may be nil.
func NewOrderService(
	store *intents.Store,
	provider providers.CommerceProvider,
	prefs PreferencesReader,
	archive repository.OrderArchive,
	tel *telemetry.Client,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		store:     store,
		provider:  provider,
		prefs:     prefs,
		archive:   archive,
		telemetry: tel,
		logger:    logger,
	}
}

// Decide applies a prompt decision and, when the decision queued an order,
// submits it to the commerce provider and records the outcome.
func (s *OrderService) Decide(ctx context.Context, req models.PromptDecisionRequest) (models.PromptDecisionResponse, *ServiceError) {
	response, reserved := s.store.RecordDecision(req)
	if !reserved {
		// Declines, unknown intents and replayed decisions: the store's
		// outcome is final and the provider is never called again.
		s.telemetry.Emit("prompt_decision", map[string]string{
			"intent_id": req.IntentID,
			"channel":   string(req.Channel),
			"accepted":  boolString(req.Accepted),
		})
		return response, nil
	}

	// Only reached by the call that reserved the order id.
	state := s.store.GetIntent(req.IntentID)
	if state == nil {
		return models.PromptDecisionResponse{}, &ServiceError{StatusCode: 404, Message: "intent_expired"}
	}

	orderReq := models.OrderRequest{
		IntentID:    req.IntentID,
		ProductID:   state.Product.ID,
		VariantSKU:  state.Variant.SKU,
		Quantity:    1,
		Destination: s.destination(ctx, req),
	}

	// The provider call happens outside any store lock; a slow upstream
	// never blocks other intent operations.
	order := s.provider.SubmitOrder(ctx, orderReq)
	s.store.MarkOrderSubmitted(req.IntentID, order)
	s.archiveOrder(ctx, order)

	s.telemetry.Emit("order_submitted", map[string]string{
		"order_id": order.OrderID,
		"status":   string(order.Status),
		"provider": order.Provider,
	})

	if order.Status == models.OrderStatusFailed {
		s.telemetry.Emit("order_failed", map[string]string{
			"order_id": order.OrderID,
			"provider": order.Provider,
		})
		message := order.Error
		if message == "" {
			message = "order_failed"
		}
		return models.PromptDecisionResponse{
			OrderID: order.OrderID,
			Status:  order.Status,
			Message: message,
		}, nil
	}

	return models.PromptDecisionResponse{
		OrderID: order.OrderID,
		Status:  order.Status,
		Message: "Order submitted successfully.",
	}, nil
}

// GetOrder returns the stored order record for the given id.
func (s *OrderService) GetOrder(_ context.Context, orderID string) (models.OrderStatusResponse, *ServiceError) {
	order := s.store.GetOrder(orderID)
	if order == nil {
		return models.OrderStatusResponse{}, &ServiceError{StatusCode: 404, Message: "order_not_found"}
	}
	return models.OrderStatusResponse{Order: *order}, nil
}

// History returns paginated archived orders, newest first.
func (s *OrderService) History(ctx context.Context, page, limit int) ([]models.ArchivedOrder, int64, *ServiceError) {
	if s.archive == nil {
		return nil, 0, &ServiceError{StatusCode: 503, Message: "archive_disabled"}
	}
	orders, total, err := s.archive.Recent(ctx, page, limit)
	if err != nil {
		s.logger.Error("order history query failed", zap.Error(err))
		return nil, 0, &ServiceError{StatusCode: 500, Message: "Failed to load order history"}
	}
	return orders, total, nil
}

func (s *OrderService) destination(ctx context.Context, req models.PromptDecisionRequest) map[string]string {
	userID := ""
	if req.RawPayload != nil {
		userID = req.RawPayload["user_id"]
	}
	if userID != "" && s.prefs != nil {
		if dest := s.prefs.DefaultDestination(ctx, userID); dest != nil {
			return dest
		}
	}
	return map[string]string{"address_id": "default"}
}

func (s *OrderService) archiveOrder(ctx context.Context, order models.OrderRecord) {
	if s.archive == nil {
		return
	}
	if err := s.archive.Save(ctx, models.NewArchivedOrder(order)); err != nil {
		// Best-effort: the in-memory record stays authoritative.
		s.logger.Warn("order archive write failed",
			zap.String("order_id", order.OrderID),
			zap.Error(err),
		)
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
