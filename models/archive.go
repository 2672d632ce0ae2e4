package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ArchivedOrder is the GORM model persisted for order history. The in-memory
// intent store remains the source of truth for live lookups; the archive only
// serves history queries and survives restarts.
type ArchivedOrder struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID           string         `gorm:"type:varchar(64);not null;uniqueIndex" json:"order_id"`
	IntentID          string         `gorm:"type:varchar(64);not null;index" json:"intent_id"`
	ProductID         string         `gorm:"type:varchar(128);not null" json:"product_id"`
	VariantSKU        string         `gorm:"type:varchar(128);not null" json:"variant_sku"`
	Quantity          int            `gorm:"not null;default:1" json:"quantity"`
	Status            string         `gorm:"type:varchar(32);not null;index" json:"status"`
	Provider          string         `gorm:"type:varchar(64);not null" json:"provider"`
	ProviderReference string         `gorm:"type:varchar(128)" json:"provider_reference,omitempty"`
	Error             string         `gorm:"type:text" json:"error,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// NewArchivedOrder builds an archive row from an order record.
func NewArchivedOrder(rec OrderRecord) *ArchivedOrder {
	return &ArchivedOrder{
		OrderID:           rec.OrderID,
		IntentID:          rec.IntentID,
		ProductID:         rec.ProductID,
		VariantSKU:        rec.VariantSKU,
		Quantity:          rec.Quantity,
		Status:            string(rec.Status),
		Provider:          rec.Provider,
		ProviderReference: rec.ProviderReference,
		Error:             rec.Error,
	}
}
