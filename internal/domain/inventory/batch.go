package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Batch is one inbound lot with its quantity remaining after FIFO
// consumption. Batches are derived from opening/purchase transactions;
// they are never stored.
type Batch struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	Date          time.Time       `json:"date"`
	Quantity      decimal.Decimal `json:"quantity"`
	Remaining     decimal.Decimal `json:"remaining"`
	CostPrice     decimal.Decimal `json:"cost_price"`
}

// TotalValue returns the remaining quantity valued at the batch cost
func (b Batch) TotalValue() decimal.Decimal {
	return b.Remaining.Mul(b.CostPrice)
}

// AllocateFIFO consumes sold stock against inbound batches oldest-first and
// returns the batches that still have quantity remaining.
//
// batchRows must contain only OPENING and PURCHASE transactions, ordered by
// date then insertion order. The quantity sold is derived, not tracked:
// total purchased minus the product's current stock. Batches fully consumed
// by that allocation are omitted from the result.
func AllocateFIFO(batchRows []InventoryTransaction, currentStock decimal.Decimal) []Batch {
	totalPurchased := decimal.Zero
	for i := range batchRows {
		totalPurchased = totalPurchased.Add(batchRows[i].QuantityIn)
	}

	remainingToConsume := totalPurchased.Sub(currentStock)
	if remainingToConsume.IsNegative() {
		remainingToConsume = decimal.Zero
	}

	batches := make([]Batch, 0, len(batchRows))
	for i := range batchRows {
		row := &batchRows[i]
		if row.QuantityIn.LessThanOrEqual(decimal.Zero) {
			continue
		}
		consumed := decimal.Min(remainingToConsume, row.QuantityIn)
		remainingToConsume = remainingToConsume.Sub(consumed)
		remaining := row.QuantityIn.Sub(consumed)
		if remaining.LessThanOrEqual(decimal.Zero) {
			continue
		}
		batches = append(batches, Batch{
			TransactionID: row.ID,
			Date:          row.Date,
			Quantity:      row.QuantityIn,
			Remaining:     remaining,
			CostPrice:     row.CostPrice,
		})
	}
	return batches
}
