package providers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"restock-backend/models"
	"restock-backend/providers"
)

func sampleOrderRequest() models.OrderRequest {
	return models.OrderRequest{
		IntentID:    "intent-000001",
		ProductID:   "hydration_001",
		VariantSKU:  "WATER-24PK",
		Quantity:    1,
		Destination: map[string]string{"address_id": "default"},
	}
}

func TestMockProvider_AlwaysConfirms(t *testing.T) {
	provider := providers.NewMockProvider()

	record := provider.SubmitOrder(context.Background(), sampleOrderRequest())

	assert.Equal(t, models.OrderStatusConfirmed, record.Status)
	assert.Equal(t, "mock", record.Provider)
	assert.Equal(t, "offline-sim", record.ProviderReference)
	assert.NotEmpty(t, record.OrderID)
	assert.Empty(t, record.Error)

	// Even a degenerate request confirms; mock mode has no failure path.
	empty := provider.SubmitOrder(context.Background(), models.OrderRequest{})
	assert.Equal(t, models.OrderStatusConfirmed, empty.Status)
}

func TestNewFromConfig_SelectsMockWithoutBaseURL(t *testing.T) {
	provider := providers.NewFromConfig(providers.Config{Provider: "amazon"})
	assert.Equal(t, "mock", provider.Name())

	provider = providers.NewFromConfig(providers.Config{Provider: "mock", BaseURL: "http://example.com"})
	assert.Equal(t, "mock", provider.Name())

	provider = providers.NewFromConfig(providers.Config{Provider: "amazon", BaseURL: "http://example.com"})
	assert.Equal(t, "amazon", provider.Name())
}

func TestHTTPProvider_ParsesResponse(t *testing.T) {
	var gotAuth string
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"order_id":"remote-123","status":"CONFIRMED","order_reference":"ref-77"}`))
	}))
	defer srv.Close()

	provider := providers.NewHTTPProvider(providers.Config{
		Provider: "amazon",
		BaseURL:  srv.URL,
		APIKey:   "secret-key",
	})

	record := provider.SubmitOrder(context.Background(), sampleOrderRequest())

	assert.Equal(t, "/order", gotPath)
	assert.Equal(t, "Bearer secret-key", gotAuth)
	assert.Equal(t, "remote-123", record.OrderID)
	assert.Equal(t, models.OrderStatusConfirmed, record.Status)
	assert.Equal(t, "ref-77", record.ProviderReference)
	assert.Equal(t, "amazon", record.Provider)
	assert.Empty(t, record.Error)
}

func TestHTTPProvider_FallsBackOnMissingFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	provider := providers.NewHTTPProvider(providers.Config{Provider: "amazon", BaseURL: srv.URL})

	record := provider.SubmitOrder(context.Background(), sampleOrderRequest())

	assert.NotEmpty(t, record.OrderID)
	assert.Equal(t, models.OrderStatusSubmitted, record.Status)
	assert.Empty(t, record.Error)
}

func TestHTTPProvider_HTTPErrorBecomesFailedRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	provider := providers.NewHTTPProvider(providers.Config{Provider: "amazon", BaseURL: srv.URL})

	record := provider.SubmitOrder(context.Background(), sampleOrderRequest())

	assert.Equal(t, models.OrderStatusFailed, record.Status)
	assert.NotEmpty(t, record.OrderID)
	assert.Contains(t, record.Error, "502")
	assert.Equal(t, "intent-000001", record.IntentID)
}

func TestHTTPProvider_ConnectionErrorBecomesFailedRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	provider := providers.NewHTTPProvider(providers.Config{
		Provider:       "amazon",
		BaseURL:        srv.URL,
		RequestTimeout: 2 * time.Second,
	})

	record := provider.SubmitOrder(context.Background(), sampleOrderRequest())

	assert.Equal(t, models.OrderStatusFailed, record.Status)
	assert.NotEmpty(t, record.Error)
}
