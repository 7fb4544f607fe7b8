package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopbooks/backend/internal/domain/inventory"
	"github.com/shopbooks/backend/internal/infrastructure/persistence/models"
)

// movementOrder keeps replays deterministic: same-day rows apply in the
// order they were recorded.
const movementOrder = "date ASC, created_at ASC, id ASC"

// GormInventoryTransactionRepository implements InventoryTransactionRepository using GORM
type GormInventoryTransactionRepository struct {
	db *gorm.DB
}

// NewGormInventoryTransactionRepository creates a new GormInventoryTransactionRepository
func NewGormInventoryTransactionRepository(db *gorm.DB) *GormInventoryTransactionRepository {
	return &GormInventoryTransactionRepository{db: db}
}

// FindByID finds a transaction by ID, returning nil when it does not exist
func (r *GormInventoryTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryTransaction, error) {
	var m models.InventoryTransactionModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	tx := m.ToDomain()
	return &tx, nil
}

// FindByProduct returns all transactions for a product in movement order
func (r *GormInventoryTransactionRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.InventoryTransaction, error) {
	var rows []models.InventoryTransactionModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order(movementOrder).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainTransactions(rows), nil
}

// FindInboundByProduct returns the opening and purchase transactions for a
// product in movement order
func (r *GormInventoryTransactionRepository) FindInboundByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.InventoryTransaction, error) {
	var rows []models.InventoryTransactionModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND type IN ?", productID,
			[]inventory.TransactionType{inventory.TransactionTypeOpening, inventory.TransactionTypePurchase}).
		Order(movementOrder).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainTransactions(rows), nil
}

// FindByProductUpTo returns all transactions for a product dated on or
// before asOf, in movement order
func (r *GormInventoryTransactionRepository) FindByProductUpTo(ctx context.Context, productID uuid.UUID, asOf time.Time) ([]inventory.InventoryTransaction, error) {
	var rows []models.InventoryTransactionModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND date <= ?", productID, asOf).
		Order(movementOrder).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainTransactions(rows), nil
}

// SaveAll persists a set of transactions
func (r *GormInventoryTransactionRepository) SaveAll(ctx context.Context, transactions []inventory.InventoryTransaction) error {
	if len(transactions) == 0 {
		return nil
	}
	rows := make([]models.InventoryTransactionModel, 0, len(transactions))
	for i := range transactions {
		rows = append(rows, *models.InventoryTransactionModelFromDomain(&transactions[i]))
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// DeleteBySource removes every transaction recorded for a source document
func (r *GormInventoryTransactionRepository) DeleteBySource(ctx context.Context, referenceType string, referenceID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.InventoryTransactionModel{},
			"reference_type = ? AND reference_id = ?", referenceType, referenceID).Error
}

// CountBySource counts the transactions recorded for a source document
func (r *GormInventoryTransactionRepository) CountBySource(ctx context.Context, referenceType string, referenceID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InventoryTransactionModel{}).
		Where("reference_type = ? AND reference_id = ?", referenceType, referenceID).
		Count(&count).Error
	return count, err
}

func toDomainTransactions(rows []models.InventoryTransactionModel) []inventory.InventoryTransaction {
	txs := make([]inventory.InventoryTransaction, 0, len(rows))
	for i := range rows {
		txs = append(txs, rows[i].ToDomain())
	}
	return txs
}

var _ inventory.InventoryTransactionRepository = (*GormInventoryTransactionRepository)(nil)
