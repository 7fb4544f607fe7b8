package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// TransactionType represents the kind of stock movement
type TransactionType string

const (
	TransactionTypeOpening        TransactionType = "OPENING"
	TransactionTypePurchase       TransactionType = "PURCHASE"
	TransactionTypePurchaseReturn TransactionType = "PURCHASE_RETURN"
	TransactionTypeSales          TransactionType = "SALES"
	TransactionTypeSalesReturn    TransactionType = "SALES_RETURN"
	TransactionTypeAdjustment     TransactionType = "ADJUSTMENT"
	TransactionTypeDamage         TransactionType = "DAMAGE"
	TransactionTypeWastage        TransactionType = "WASTAGE"
	TransactionTypeTransfer       TransactionType = "TRANSFER"
	TransactionTypeStockTake      TransactionType = "STOCK_TAKE"
)

// String returns the string representation
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeOpening,
		TransactionTypePurchase,
		TransactionTypePurchaseReturn,
		TransactionTypeSales,
		TransactionTypeSalesReturn,
		TransactionTypeAdjustment,
		TransactionTypeDamage,
		TransactionTypeWastage,
		TransactionTypeTransfer,
		TransactionTypeStockTake:
		return true
	}
	return false
}

// IsInbound returns true for the types that open cost batches.
// Only opening stock and purchases carry a fresh unit cost.
func (t TransactionType) IsInbound() bool {
	return t == TransactionTypeOpening || t == TransactionTypePurchase
}

// InventoryTransaction is one immutable stock movement. Current stock for a
// product is the sum of QuantityIn minus QuantityOut over all of its rows;
// no stock level is cached anywhere else. Corrections are made by inserting
// offsetting rows or by replacing the full set tied to a source document.
type InventoryTransaction struct {
	shared.BaseEntity
	ProductID     uuid.UUID       `json:"product_id"`
	Date          time.Time       `json:"date"`
	Type          TransactionType `json:"type"`
	QuantityIn    decimal.Decimal `json:"quantity_in"`
	QuantityOut   decimal.Decimal `json:"quantity_out"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	ReferenceType string          `json:"reference_type"`
	ReferenceID   uuid.UUID       `json:"reference_id"`
}

// NewInventoryTransaction creates a stock movement row
func NewInventoryTransaction(
	productID uuid.UUID,
	date time.Time,
	txType TransactionType,
	quantityIn, quantityOut, costPrice decimal.Decimal,
	referenceType string,
	referenceID uuid.UUID,
) (*InventoryTransaction, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Transaction date is required")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Transaction type is not valid")
	}
	if quantityIn.IsNegative() || quantityOut.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantities cannot be negative")
	}
	if costPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Cost price cannot be negative")
	}

	return &InventoryTransaction{
		BaseEntity:    shared.NewBaseEntity(),
		ProductID:     productID,
		Date:          date,
		Type:          txType,
		QuantityIn:    quantityIn,
		QuantityOut:   quantityOut,
		CostPrice:     costPrice,
		ReferenceType: referenceType,
		ReferenceID:   referenceID,
	}, nil
}

// Net returns the signed quantity effect of the transaction
func (t *InventoryTransaction) Net() decimal.Decimal {
	return t.QuantityIn.Sub(t.QuantityOut)
}

// CurrentStock sums quantity in minus quantity out over all transactions,
// every type included.
func CurrentStock(transactions []InventoryTransaction) decimal.Decimal {
	stock := decimal.Zero
	for i := range transactions {
		stock = stock.Add(transactions[i].Net())
	}
	return stock
}
