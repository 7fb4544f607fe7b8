package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionType(t *testing.T) {
	t.Run("only opening and purchase open cost batches", func(t *testing.T) {
		assert.True(t, TransactionTypeOpening.IsInbound())
		assert.True(t, TransactionTypePurchase.IsInbound())
		assert.False(t, TransactionTypeSalesReturn.IsInbound())
		assert.False(t, TransactionTypeAdjustment.IsInbound())
		assert.False(t, TransactionTypeStockTake.IsInbound())
	})

	t.Run("IsValid returns false for invalid type", func(t *testing.T) {
		assert.False(t, TransactionType("CONSIGNMENT").IsValid())
	})
}

func TestNewInventoryTransaction(t *testing.T) {
	productID := uuid.New()
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("creates a valid movement", func(t *testing.T) {
		tx, err := NewInventoryTransaction(productID, date, TransactionTypePurchase,
			decimal.NewFromFloat(10), decimal.Zero, decimal.NewFromFloat(5.00),
			"PurchaseInvoice", uuid.New())
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, tx.ID)
		assert.True(t, decimal.NewFromFloat(10).Equal(tx.Net()))
	})

	t.Run("rejects missing product", func(t *testing.T) {
		_, err := NewInventoryTransaction(uuid.Nil, date, TransactionTypePurchase,
			decimal.NewFromFloat(10), decimal.Zero, decimal.Zero, "", uuid.Nil)
		assert.Error(t, err)
	})

	t.Run("rejects negative quantities", func(t *testing.T) {
		_, err := NewInventoryTransaction(productID, date, TransactionTypeSales,
			decimal.Zero, decimal.NewFromFloat(-2), decimal.Zero, "", uuid.Nil)
		assert.Error(t, err)
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		_, err := NewInventoryTransaction(productID, date, TransactionType("BAD"),
			decimal.NewFromFloat(1), decimal.Zero, decimal.Zero, "", uuid.Nil)
		assert.Error(t, err)
	})

	t.Run("rejects zero date", func(t *testing.T) {
		_, err := NewInventoryTransaction(productID, time.Time{}, TransactionTypeSales,
			decimal.Zero, decimal.NewFromFloat(1), decimal.Zero, "", uuid.Nil)
		assert.Error(t, err)
	})
}
