package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"restock-backend/models"
)

const defaultRequestTimeout = 10 * time.Second

// HTTPProvider submits orders to an external fulfillment API over HTTP.
type HTTPProvider struct {
	name       string
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPProvider creates an HTTPProvider from the given config.
func NewHTTPProvider(cfg Config) *HTTPProvider {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	name := cfg.Provider
	if name == "" {
		name = "http"
	}
	return &HTTPProvider{
		name:    name,
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name returns the configured provider name.
func (p *HTTPProvider) Name() string { return p.name }

type submitOrderResponse struct {
	OrderID        string `json:"order_id"`
	Status         string `json:"status"`
	OrderReference string `json:"order_reference"`
}

// SubmitOrder POSTs the order to {base_url}/order and normalizes the result.
// Transport and HTTP errors degrade to a FAILED record; they are never
// propagated as Go errors and never retried here.
func (p *HTTPProvider) SubmitOrder(ctx context.Context, req models.OrderRequest) models.OrderRecord {
	created := nowMs()

	body, err := json.Marshal(req)
	if err != nil {
		return p.failedRecord(req, created, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/order", bytes.NewReader(body))
	if err != nil {
		return p.failedRecord(req, created, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return p.failedRecord(req, created, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return p.failedRecord(req, created, fmt.Errorf("order endpoint returned %d: %s", resp.StatusCode, string(data)))
	}

	var parsed submitOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return p.failedRecord(req, created, fmt.Errorf("decode order response: %w", err))
	}

	orderID := parsed.OrderID
	if orderID == "" {
		orderID = newOrderToken()
	}
	status := models.OrderStatus(parsed.Status)
	if parsed.Status == "" {
		status = models.OrderStatusSubmitted
	}

	return models.OrderRecord{
		OrderID:           orderID,
		IntentID:          req.IntentID,
		ProductID:         req.ProductID,
		VariantSKU:        req.VariantSKU,
		Quantity:          req.Quantity,
		Status:            status,
		CreatedAtMs:       created,
		UpdatedAtMs:       nowMs(),
		Provider:          p.name,
		ProviderReference: parsed.OrderReference,
	}
}

func (p *HTTPProvider) failedRecord(req models.OrderRequest, createdAtMs int64, err error) models.OrderRecord {
	return models.OrderRecord{
		OrderID:     newOrderToken(),
		IntentID:    req.IntentID,
		ProductID:   req.ProductID,
		VariantSKU:  req.VariantSKU,
		Quantity:    req.Quantity,
		Status:      models.OrderStatusFailed,
		CreatedAtMs: createdAtMs,
		UpdatedAtMs: nowMs(),
		Provider:    p.name,
		Error:       err.Error(),
	}
}
