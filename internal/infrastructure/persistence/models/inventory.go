package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopbooks/backend/internal/domain/inventory"
)

// InventoryTransactionModel is the persistence model for stock movements
type InventoryTransactionModel struct {
	BaseModel
	ProductID     uuid.UUID                 `gorm:"type:uuid;not null;index:idx_invtx_product_date,priority:1"`
	Date          time.Time                 `gorm:"not null;index:idx_invtx_product_date,priority:2"`
	Type          inventory.TransactionType `gorm:"type:varchar(30);not null;index"`
	QuantityIn    decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	QuantityOut   decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	CostPrice     decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	ReferenceType string                    `gorm:"type:varchar(50);not null;index:idx_invtx_source,priority:1"`
	ReferenceID   uuid.UUID                 `gorm:"type:uuid;not null;index:idx_invtx_source,priority:2"`
}

// TableName returns the table name for GORM
func (InventoryTransactionModel) TableName() string {
	return "inventory_transactions"
}

// ToDomain converts the persistence model to a domain InventoryTransaction
func (m *InventoryTransactionModel) ToDomain() inventory.InventoryTransaction {
	return inventory.InventoryTransaction{
		BaseEntity:    m.BaseModel.ToDomain(),
		ProductID:     m.ProductID,
		Date:          m.Date,
		Type:          m.Type,
		QuantityIn:    m.QuantityIn,
		QuantityOut:   m.QuantityOut,
		CostPrice:     m.CostPrice,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
	}
}

// FromDomain populates the persistence model from a domain InventoryTransaction
func (m *InventoryTransactionModel) FromDomain(tx *inventory.InventoryTransaction) {
	m.FromDomainBaseEntity(tx.BaseEntity)
	m.ProductID = tx.ProductID
	m.Date = tx.Date
	m.Type = tx.Type
	m.QuantityIn = tx.QuantityIn
	m.QuantityOut = tx.QuantityOut
	m.CostPrice = tx.CostPrice
	m.ReferenceType = tx.ReferenceType
	m.ReferenceID = tx.ReferenceID
}

// InventoryTransactionModelFromDomain creates a persistence model from a domain transaction
func InventoryTransactionModelFromDomain(tx *inventory.InventoryTransaction) *InventoryTransactionModel {
	m := &InventoryTransactionModel{}
	m.FromDomain(tx)
	return m
}

// UnitConversionList stores a product's alternate units as JSONB
type UnitConversionList []inventory.UnitConversion

// Value implements driver.Valuer for JSONB storage
func (u UnitConversionList) Value() (driver.Value, error) {
	if u == nil {
		return "[]", nil
	}
	return json.Marshal(u)
}

// Scan implements sql.Scanner for JSONB reads
func (u *UnitConversionList) Scan(value interface{}) error {
	if value == nil {
		*u = UnitConversionList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan UnitConversionList: unsupported type")
	}

	if len(bytes) == 0 {
		*u = UnitConversionList{}
		return nil
	}
	return json.Unmarshal(bytes, u)
}

// ProductModel is the persistence model for the product master data the
// valuation engine reads. Product CRUD lives outside this service; rows are
// maintained by the catalog service sharing the same database.
type ProductModel struct {
	BaseModel
	Code          string             `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string             `gorm:"type:varchar(200);not null;index"`
	PurchasePrice decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	AllowBatches  bool               `gorm:"not null;default:false"`
	Units         UnitConversionList `gorm:"type:jsonb;default:'[]'"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to domain ProductInfo
func (m *ProductModel) ToDomain() inventory.ProductInfo {
	return inventory.ProductInfo{
		ID:            m.ID,
		Code:          m.Code,
		Name:          m.Name,
		PurchasePrice: m.PurchasePrice,
		AllowBatches:  m.AllowBatches,
		Units:         m.Units,
	}
}
