package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"restock-backend/models"
)

// OrderArchive persists submitted orders for history queries. The intent
// store stays authoritative for live lookups; the archive is write-behind
// and best-effort.
type OrderArchive interface {
	Save(ctx context.Context, order *models.ArchivedOrder) error
	FindByOrderID(ctx context.Context, orderID string) (*models.ArchivedOrder, error)
	Recent(ctx context.Context, page, limit int) ([]models.ArchivedOrder, int64, error)
}

// GormOrderArchive implements OrderArchive using GORM.
type GormOrderArchive struct {
	db *gorm.DB
}

// NewGormOrderArchive creates a GORM-backed archive.
func NewGormOrderArchive(db *gorm.DB) *GormOrderArchive {
	return &GormOrderArchive{db: db}
}

// Save inserts the archived order.
func (r *GormOrderArchive) Save(ctx context.Context, order *models.ArchivedOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// FindByOrderID returns the archived order, or nil when not found.
func (r *GormOrderArchive) FindByOrderID(ctx context.Context, orderID string) (*models.ArchivedOrder, error) {
	var order models.ArchivedOrder
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Recent returns paginated archived orders, newest first.
func (r *GormOrderArchive) Recent(ctx context.Context, page, limit int) ([]models.ArchivedOrder, int64, error) {
	var orders []models.ArchivedOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ArchivedOrder{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
