package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"restock-backend/models"
	"restock-backend/repository"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gormDB, mock
}

func TestSave_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderArchive(gormDB)

	order := models.NewArchivedOrder(models.OrderRecord{
		OrderID:    "ord-1",
		IntentID:   "int-1",
		ProductID:  "hydration_001",
		VariantSKU: "WATER-24PK",
		Quantity:   1,
		Status:     models.OrderStatusConfirmed,
		Provider:   "mock",
	})

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "archived_orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectCommit()

	err := repo.Save(context.Background(), order)
	assert.NoError(t, err)
}

func TestFindByOrderID_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderArchive(gormDB)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "order_id", "intent_id", "product_id", "variant_sku", "quantity", "status", "provider", "created_at", "updated_at"}).
		AddRow(uuid.New(), "ord-9", "int-9", "hydration_001", "WATER-24PK", 1, "CONFIRMED", "mock", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "archived_orders"`)).
		WithArgs("ord-9", 1).
		WillReturnRows(rows)

	order, err := repo.FindByOrderID(context.Background(), "ord-9")
	assert.NoError(t, err)
	assert.Equal(t, "ord-9", order.OrderID)
	assert.Equal(t, "CONFIRMED", order.Status)
}

func TestFindByOrderID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderArchive(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "archived_orders"`)).
		WithArgs("missing", 1).
		WillReturnRows(sqlmock.NewRows([]string{}))

	order, err := repo.FindByOrderID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, order)
}

func TestRecent_Paginates(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderArchive(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "archived_orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "order_id", "intent_id", "product_id", "variant_sku", "quantity", "status", "provider", "created_at", "updated_at"}).
		AddRow(uuid.New(), "ord-2", "int-2", "sunscreen_001", "SPF50-1CT", 1, "CONFIRMED", "mock", now, now).
		AddRow(uuid.New(), "ord-1", "int-1", "hydration_001", "WATER-24PK", 1, "FAILED", "http", now.Add(-time.Minute), now.Add(-time.Minute))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "archived_orders"`)).
		WillReturnRows(rows)

	orders, total, err := repo.Recent(context.Background(), 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, orders, 2)
	assert.Equal(t, "ord-2", orders[0].OrderID)
}
