package inventory

import (
	"github.com/shopspring/decimal"
)

// CostMode selects how the remaining stock of a product is valued.
type CostMode string

const (
	// CostModeAverage values stock at the arithmetic mean of the costs
	// of batches that still have quantity remaining.
	CostModeAverage CostMode = "AVERAGE"
	// CostModeLastPurchase values stock at the cost of the most recent
	// inbound transaction with a positive quantity and cost.
	CostModeLastPurchase CostMode = "LAST_PURCHASE"
	// CostModeBatch reports one valuation row per remaining batch.
	CostModeBatch CostMode = "BATCH"
)

// IsValid checks if the cost mode is valid
func (m CostMode) IsValid() bool {
	switch m {
	case CostModeAverage, CostModeLastPurchase, CostModeBatch:
		return true
	}
	return false
}

// String returns the string representation
func (m CostMode) String() string {
	return string(m)
}

// AverageCost returns the unweighted mean of the costs of the remaining
// batches. The mean is not quantity-weighted: a batch with 1 unit left
// counts the same as a batch with 100. When every batch is fully consumed
// the cost of the most recent inbound row is used instead, so a product
// that is momentarily out of stock still values at a sensible rate.
func AverageCost(remaining []Batch, batchRows []InventoryTransaction) decimal.Decimal {
	if len(remaining) == 0 {
		if len(batchRows) == 0 {
			return decimal.Zero
		}
		return batchRows[len(batchRows)-1].CostPrice
	}
	sum := decimal.Zero
	for i := range remaining {
		sum = sum.Add(remaining[i].CostPrice)
	}
	return sum.Div(decimal.NewFromInt(int64(len(remaining))))
}

// LastPurchaseRate returns the cost of the most recent inbound transaction
// with quantityIn > 0 and costPrice > 0, regardless of whether that batch
// still has stock remaining. Returns zero when no such transaction exists.
func LastPurchaseRate(batchRows []InventoryTransaction) decimal.Decimal {
	for i := len(batchRows) - 1; i >= 0; i-- {
		row := &batchRows[i]
		if row.QuantityIn.GreaterThan(decimal.Zero) && row.CostPrice.GreaterThan(decimal.Zero) {
			return row.CostPrice
		}
	}
	return decimal.Zero
}

// CollapseBatches merges remaining batches into a single row carrying the
// total remaining quantity at the unweighted average cost. Used for
// products that do not track batches individually.
func CollapseBatches(remaining []Batch, batchRows []InventoryTransaction) Batch {
	total := decimal.Zero
	for i := range remaining {
		total = total.Add(remaining[i].Remaining)
	}
	merged := Batch{
		Quantity:  total,
		Remaining: total,
		CostPrice: AverageCost(remaining, batchRows),
	}
	if len(remaining) > 0 {
		merged.TransactionID = remaining[0].TransactionID
		merged.Date = remaining[0].Date
	}
	return merged
}
