package inventory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// UnitConversion is one alternate selling/purchasing unit and its conversion
// factor into the product's base stock unit.
type UnitConversion struct {
	Name       string          `json:"name"`
	Conversion decimal.Decimal `json:"conversion"`
}

// ProductInfo is the slice of the product catalog this engine needs.
// Product CRUD lives outside the core; the catalog is a read-only port.
type ProductInfo struct {
	ID            uuid.UUID        `json:"id"`
	Code          string           `json:"code"`
	Name          string           `json:"name"`
	PurchasePrice decimal.Decimal  `json:"purchase_price"`
	AllowBatches  bool             `json:"allow_batches"`
	Units         []UnitConversion `json:"units"`
}

// UnitConversionFor returns the conversion factor of the named alternate
// unit. The match ignores case; the product's base unit is not listed here.
func (p *ProductInfo) UnitConversionFor(name string) (decimal.Decimal, bool) {
	for _, u := range p.Units {
		if strings.EqualFold(u.Name, name) {
			return u.Conversion, true
		}
	}
	return decimal.Decimal{}, false
}

// ProductCatalog provides product master data to the valuation engine
type ProductCatalog interface {
	// FindProduct returns product info or shared.ErrNotFound
	FindProduct(ctx context.Context, id uuid.UUID) (*ProductInfo, error)

	// FindProducts lists products, optionally narrowed by a filter
	FindProducts(ctx context.Context, filter shared.Filter) ([]ProductInfo, error)
}

// BaseUnitMovement converts a document line recorded in an alternate unit
// into its base-unit quantity and cost. The line discount is amortized per
// line unit before dividing by the conversion factor.
func BaseUnitMovement(lineQuantity, linePrice, lineDiscount, conversion decimal.Decimal) (quantity, unitCost decimal.Decimal) {
	if conversion.LessThanOrEqual(decimal.Zero) {
		conversion = decimal.NewFromInt(1)
	}
	quantity = lineQuantity.Mul(conversion)
	effectivePrice := linePrice
	if lineQuantity.GreaterThan(decimal.Zero) && !lineDiscount.IsZero() {
		effectivePrice = linePrice.Sub(lineDiscount.Div(lineQuantity))
	}
	unitCost = effectivePrice.Div(conversion)
	return quantity, unitCost
}
