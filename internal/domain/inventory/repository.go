package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InventoryTransactionRepository defines persistence for inventory transactions
type InventoryTransactionRepository interface {
	// FindByID finds a transaction by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryTransaction, error)

	// FindByProduct returns all transactions for a product ordered by
	// date then insertion order
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]InventoryTransaction, error)

	// FindInboundByProduct returns the opening and purchase transactions
	// for a product ordered by date then insertion order
	FindInboundByProduct(ctx context.Context, productID uuid.UUID) ([]InventoryTransaction, error)

	// FindByProductUpTo returns all transactions for a product dated on
	// or before asOf, ordered by date then insertion order
	FindByProductUpTo(ctx context.Context, productID uuid.UUID, asOf time.Time) ([]InventoryTransaction, error)

	// SaveAll persists a set of transactions
	SaveAll(ctx context.Context, transactions []InventoryTransaction) error

	// DeleteBySource removes every transaction recorded for a source document
	DeleteBySource(ctx context.Context, referenceType string, referenceID uuid.UUID) error

	// CountBySource counts the transactions recorded for a source document
	CountBySource(ctx context.Context, referenceType string, referenceID uuid.UUID) (int64, error)
}
