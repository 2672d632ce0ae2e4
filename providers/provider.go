// Package providers integrates external commerce fulfillment APIs.
package providers

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"restock-backend/models"
)

// CommerceProvider submits confirmed orders to a fulfillment backend.
//
// SubmitOrder never returns an error: every failure mode is normalized into
// an OrderRecord with status FAILED and the error text preserved. Retries
// are the caller's concern and are deliberately not attempted here.
type CommerceProvider interface {
	SubmitOrder(ctx context.Context, req models.OrderRequest) models.OrderRecord
	Name() string
}

// Config selects and parameterizes the commerce provider.
type Config struct {
	Provider       string // provider name, "mock" by default
	BaseURL        string // empty means mock mode
	APIKey         string
	RequestTimeout time.Duration
}

// NewFromConfig returns the provider matching the config: the HTTP provider
// when a base URL is configured, otherwise the offline mock.
func NewFromConfig(cfg Config) CommerceProvider {
	if cfg.BaseURL == "" || cfg.Provider == "mock" {
		return NewMockProvider()
	}
	return NewHTTPProvider(cfg)
}

func nowMs() int64 { return time.Now().UnixMilli() }

// newOrderToken mints a 12-hex order identifier.
func newOrderToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
