package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostMode(t *testing.T) {
	t.Run("IsValid returns true for valid modes", func(t *testing.T) {
		assert.True(t, CostModeAverage.IsValid())
		assert.True(t, CostModeLastPurchase.IsValid())
		assert.True(t, CostModeBatch.IsValid())
	})

	t.Run("IsValid returns false for invalid mode", func(t *testing.T) {
		assert.False(t, CostMode("FIFO").IsValid())
	})
}

func TestAverageCost(t *testing.T) {
	t.Run("unweighted mean over remaining batches", func(t *testing.T) {
		remaining := []Batch{
			{Remaining: decimal.NewFromFloat(1), CostPrice: decimal.NewFromFloat(4.00)},
			{Remaining: decimal.NewFromFloat(99), CostPrice: decimal.NewFromFloat(8.00)},
		}
		// quantity is irrelevant: (4 + 8) / 2
		cost := AverageCost(remaining, nil)
		assert.True(t, decimal.NewFromFloat(6.00).Equal(cost))
	})

	t.Run("falls back to most recent inbound cost when all consumed", func(t *testing.T) {
		batchRows := []InventoryTransaction{
			inboundRow(1, 10, 5.00),
			inboundRow(2, 10, 7.50),
		}
		cost := AverageCost(nil, batchRows)
		assert.True(t, decimal.NewFromFloat(7.50).Equal(cost))
	})

	t.Run("zero when no batches exist at all", func(t *testing.T) {
		assert.True(t, AverageCost(nil, nil).IsZero())
	})
}

func TestLastPurchaseRate(t *testing.T) {
	t.Run("most recent inbound with positive quantity and cost", func(t *testing.T) {
		batchRows := []InventoryTransaction{
			inboundRow(1, 10, 5.00),
			inboundRow(2, 10, 7.00),
		}
		rate := LastPurchaseRate(batchRows)
		assert.True(t, decimal.NewFromFloat(7.00).Equal(rate))
	})

	t.Run("skips rows with zero cost", func(t *testing.T) {
		batchRows := []InventoryTransaction{
			inboundRow(1, 10, 6.00),
			inboundRow(2, 10, 0),
		}
		rate := LastPurchaseRate(batchRows)
		assert.True(t, decimal.NewFromFloat(6.00).Equal(rate))
	})

	t.Run("independent of remaining stock", func(t *testing.T) {
		batchRows := []InventoryTransaction{
			inboundRow(1, 10, 5.00),
			inboundRow(2, 10, 7.00),
		}
		// both batches fully consumed; the rate still comes from the latest row
		remaining := AllocateFIFO(batchRows, decimal.Zero)
		require.Empty(t, remaining)
		assert.True(t, decimal.NewFromFloat(7.00).Equal(LastPurchaseRate(batchRows)))
	})

	t.Run("zero when nothing qualifies", func(t *testing.T) {
		batchRows := []InventoryTransaction{
			inboundRow(1, 10, 0),
		}
		assert.True(t, LastPurchaseRate(batchRows).IsZero())
	})
}

func TestCollapseBatches(t *testing.T) {
	t.Run("merges remaining batches at the unweighted average", func(t *testing.T) {
		remaining := []Batch{
			{Remaining: decimal.NewFromFloat(3), CostPrice: decimal.NewFromFloat(4.00)},
			{Remaining: decimal.NewFromFloat(5), CostPrice: decimal.NewFromFloat(6.00)},
		}
		merged := CollapseBatches(remaining, nil)
		assert.True(t, decimal.NewFromFloat(8).Equal(merged.Remaining))
		assert.True(t, decimal.NewFromFloat(5.00).Equal(merged.CostPrice))
	})

	t.Run("empty input produces a zero row with fallback cost", func(t *testing.T) {
		batchRows := []InventoryTransaction{
			inboundRow(1, 2, 9.00),
		}
		merged := CollapseBatches(nil, batchRows)
		assert.True(t, merged.Remaining.IsZero())
		assert.True(t, decimal.NewFromFloat(9.00).Equal(merged.CostPrice))
	})
}

func TestBaseUnitMovement(t *testing.T) {
	t.Run("converts quantity and amortizes discount", func(t *testing.T) {
		// 5 cartons of 12 at 120 per carton with a 60 line discount:
		// effective carton price 108, so 9 per base unit
		qty, cost := BaseUnitMovement(
			decimal.NewFromFloat(5),
			decimal.NewFromFloat(120.00),
			decimal.NewFromFloat(60.00),
			decimal.NewFromFloat(12),
		)
		assert.True(t, decimal.NewFromFloat(60).Equal(qty))
		assert.True(t, decimal.NewFromFloat(9.00).Equal(cost))
	})

	t.Run("no discount", func(t *testing.T) {
		qty, cost := BaseUnitMovement(
			decimal.NewFromFloat(2),
			decimal.NewFromFloat(50.00),
			decimal.Zero,
			decimal.NewFromFloat(10),
		)
		assert.True(t, decimal.NewFromFloat(20).Equal(qty))
		assert.True(t, decimal.NewFromFloat(5.00).Equal(cost))
	})

	t.Run("non-positive conversion treated as base unit", func(t *testing.T) {
		qty, cost := BaseUnitMovement(
			decimal.NewFromFloat(3),
			decimal.NewFromFloat(15.00),
			decimal.Zero,
			decimal.Zero,
		)
		assert.True(t, decimal.NewFromFloat(3).Equal(qty))
		assert.True(t, decimal.NewFromFloat(15.00).Equal(cost))
	})
}
