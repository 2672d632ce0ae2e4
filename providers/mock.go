package providers

import (
	"context"

	"restock-backend/models"
)

// MockProvider synthesizes deterministic successful orders without any
// network calls. It keeps the system demoable without live credentials and
// has no failure path.
type MockProvider struct{}

// NewMockProvider creates a MockProvider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Name returns the provider name.
func (p *MockProvider) Name() string { return "mock" }

// SubmitOrder immediately returns a CONFIRMED record with a fresh order id.
func (p *MockProvider) SubmitOrder(_ context.Context, req models.OrderRequest) models.OrderRecord {
	created := nowMs()
	return models.OrderRecord{
		OrderID:           newOrderToken(),
		IntentID:          req.IntentID,
		ProductID:         req.ProductID,
		VariantSKU:        req.VariantSKU,
		Quantity:          req.Quantity,
		Status:            models.OrderStatusConfirmed,
		CreatedAtMs:       created,
		UpdatedAtMs:       created,
		Provider:          "mock",
		ProviderReference: "offline-sim",
	}
}
