package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopbooks/backend/internal/domain/inventory"
)

// RecordMovementRequest represents a request to record one stock movement.
// When Unit names one of the product's alternate units, quantities are
// recorded in that unit and LinePrice/LineDiscount carry the document line
// amounts; the service converts everything into the base stock unit.
type RecordMovementRequest struct {
	ProductID     uuid.UUID       `json:"product_id" binding:"required"`
	Date          time.Time       `json:"date" binding:"required"`
	Type          string          `json:"type" binding:"required"`
	QuantityIn    decimal.Decimal `json:"quantity_in"`
	QuantityOut   decimal.Decimal `json:"quantity_out"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	Unit          string          `json:"unit"`
	LinePrice     decimal.Decimal `json:"line_price"`
	LineDiscount  decimal.Decimal `json:"line_discount"`
	ReferenceType string          `json:"reference_type"`
	ReferenceID   uuid.UUID       `json:"reference_id"`
}

// MovementResponse represents a stock movement in API responses
type MovementResponse struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     uuid.UUID       `json:"product_id"`
	Date          time.Time       `json:"date"`
	Type          string          `json:"type"`
	QuantityIn    decimal.Decimal `json:"quantity_in"`
	QuantityOut   decimal.Decimal `json:"quantity_out"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	ReferenceType string          `json:"reference_type"`
	ReferenceID   uuid.UUID       `json:"reference_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToMovementResponse converts a domain transaction to its response form.
// Amounts are rounded to two decimals at this boundary; storage keeps full
// precision.
func ToMovementResponse(tx *inventory.InventoryTransaction) MovementResponse {
	return MovementResponse{
		ID:            tx.ID,
		ProductID:     tx.ProductID,
		Date:          tx.Date,
		Type:          tx.Type.String(),
		QuantityIn:    tx.QuantityIn.Round(2),
		QuantityOut:   tx.QuantityOut.Round(2),
		CostPrice:     tx.CostPrice.Round(2),
		ReferenceType: tx.ReferenceType,
		ReferenceID:   tx.ReferenceID,
		CreatedAt:     tx.CreatedAt,
	}
}

// BatchResponse represents one remaining cost batch in API responses
type BatchResponse struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	Date          time.Time       `json:"date"`
	Quantity      decimal.Decimal `json:"quantity"`
	Remaining     decimal.Decimal `json:"remaining"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// ToBatchResponse converts a domain batch to its response form, rounding
// amounts to two decimals.
func ToBatchResponse(b inventory.Batch) BatchResponse {
	return BatchResponse{
		TransactionID: b.TransactionID,
		Date:          b.Date,
		Quantity:      b.Quantity.Round(2),
		Remaining:     b.Remaining.Round(2),
		CostPrice:     b.CostPrice.Round(2),
		TotalValue:    b.TotalValue().Round(2),
	}
}

// StockReportFilter represents stock report query options
type StockReportFilter struct {
	Search      string `form:"search"`
	SearchField string `form:"search_field" binding:"omitempty,oneof=code name"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=500"`
}

// StockReportRow is one product (or one batch of a product, in batch mode)
// in the stock valuation report.
type StockReportRow struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	BatchDate   *time.Time      `json:"batch_date,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	StockValue  decimal.Decimal `json:"stock_value"`
}

// rounded returns the row with its amounts rounded to two decimals. The
// stock value is computed from full-precision inputs first, so rounding
// never compounds.
func (r StockReportRow) rounded() StockReportRow {
	r.Quantity = r.Quantity.Round(2)
	r.CostPrice = r.CostPrice.Round(2)
	r.StockValue = r.StockValue.Round(2)
	return r
}
