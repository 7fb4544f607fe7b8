package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// RefType distinguishes the two kinds of bill reference rows
type RefType string

const (
	// RefTypeNew opens a receivable/payable for an invoice
	RefTypeNew RefType = "NEW_REF"
	// RefTypeAgainst records a settlement against an open bill
	RefTypeAgainst RefType = "AGST_REF"
)

// IsValid checks if the ref type is valid
func (t RefType) IsValid() bool {
	return t == RefTypeNew || t == RefTypeAgainst
}

// String returns the string representation
func (t RefType) String() string {
	return string(t)
}

// BillReference is one settlement-tracking row. A NEW_REF row is created
// when an invoice is saved; AGST_REF rows are created by the receipts and
// payments that settle it. Rows are grouped by
// (company, ledger account, bill number) to derive outstanding amounts.
type BillReference struct {
	shared.BaseEntity
	CompanyID       uuid.UUID       `json:"company_id"`
	LedgerAccountID uuid.UUID       `json:"ledger_account_id"`
	BillNumber      string          `json:"bill_number"`
	RefType         RefType         `json:"ref_type"`
	Amount          decimal.Decimal `json:"amount"`
	Date            time.Time       `json:"date"`
	ReferenceType   string          `json:"reference_type"`
	ReferenceID     uuid.UUID       `json:"reference_id"`
}

// NewBillReference creates a bill reference row
func NewBillReference(
	companyID, ledgerAccountID uuid.UUID,
	billNumber string,
	refType RefType,
	amount decimal.Decimal,
	date time.Time,
	referenceType string,
	referenceID uuid.UUID,
) (*BillReference, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if ledgerAccountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Ledger account ID cannot be empty")
	}
	if billNumber == "" {
		return nil, shared.NewDomainError("INVALID_BILL_NUMBER", "Bill number cannot be empty")
	}
	if !refType.IsValid() {
		return nil, shared.NewDomainError("INVALID_REF_TYPE", "Bill reference type is not valid")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Bill reference amount cannot be negative")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Bill reference date is required")
	}
	if referenceType == "" || referenceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Bill reference requires a source document")
	}

	return &BillReference{
		BaseEntity:      shared.NewBaseEntity(),
		CompanyID:       companyID,
		LedgerAccountID: ledgerAccountID,
		BillNumber:      billNumber,
		RefType:         refType,
		Amount:          amount,
		Date:            date,
		ReferenceType:   referenceType,
		ReferenceID:     referenceID,
	}, nil
}
