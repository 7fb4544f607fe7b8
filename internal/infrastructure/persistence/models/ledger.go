package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopbooks/backend/internal/domain/ledger"
)

// LedgerAccountModel is the persistence model for ledger accounts.
// Opening balances are stored as a JSONB array keyed by financial year.
type LedgerAccountModel struct {
	BaseModel
	CompanyID       uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_account_company_code,priority:1"`
	Code            string                 `gorm:"type:varchar(50);not null;uniqueIndex:idx_account_company_code,priority:2"`
	Name            string                 `gorm:"type:varchar(200);not null"`
	Group           ledger.AccountGroup    `gorm:"type:varchar(30);not null;index"`
	OpeningBalances ledger.OpeningBalances `gorm:"type:jsonb;default:'[]'"`
}

// TableName returns the table name for GORM
func (LedgerAccountModel) TableName() string {
	return "ledger_accounts"
}

// ToDomain converts the persistence model to a domain LedgerAccount
func (m *LedgerAccountModel) ToDomain() *ledger.LedgerAccount {
	return &ledger.LedgerAccount{
		BaseEntity:      m.BaseModel.ToDomain(),
		CompanyID:       m.CompanyID,
		Code:            m.Code,
		Name:            m.Name,
		Group:           m.Group,
		OpeningBalances: m.OpeningBalances,
	}
}

// FromDomain populates the persistence model from a domain LedgerAccount
func (m *LedgerAccountModel) FromDomain(a *ledger.LedgerAccount) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.CompanyID = a.CompanyID
	m.Code = a.Code
	m.Name = a.Name
	m.Group = a.Group
	m.OpeningBalances = a.OpeningBalances
}

// LedgerAccountModelFromDomain creates a persistence model from a domain LedgerAccount
func LedgerAccountModelFromDomain(a *ledger.LedgerAccount) *LedgerAccountModel {
	m := &LedgerAccountModel{}
	m.FromDomain(a)
	return m
}

// VoucherModel is the persistence model for voucher headers. Lines are not
// stored on the header; they are reconstructed from the voucher's ledger
// entries in line order.
type VoucherModel struct {
	BaseModel
	CompanyID       uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_voucher_company_fy_no,priority:1;index:idx_voucher_company_fy,priority:1"`
	FinancialYearID uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_voucher_company_fy_no,priority:2;index:idx_voucher_company_fy,priority:2"`
	VoucherNo       string               `gorm:"type:varchar(50);not null;uniqueIndex:idx_voucher_company_fy_no,priority:3"`
	Sequence        int                  `gorm:"not null"`
	Type            ledger.VoucherType   `gorm:"type:varchar(30);not null;index"`
	Date            time.Time            `gorm:"not null;index"`
	Narration       string               `gorm:"type:text"`
	Status          ledger.VoucherStatus `gorm:"type:varchar(20);not null;default:'POSTED'"`
}

// TableName returns the table name for GORM
func (VoucherModel) TableName() string {
	return "vouchers"
}

// ToDomain converts the persistence model to a domain Voucher without lines
func (m *VoucherModel) ToDomain() *ledger.Voucher {
	return &ledger.Voucher{
		BaseEntity:      m.BaseModel.ToDomain(),
		CompanyID:       m.CompanyID,
		FinancialYearID: m.FinancialYearID,
		VoucherNo:       m.VoucherNo,
		Sequence:        m.Sequence,
		Type:            m.Type,
		Date:            m.Date,
		Narration:       m.Narration,
		Status:          m.Status,
	}
}

// FromDomain populates the persistence model from a domain Voucher
func (m *VoucherModel) FromDomain(v *ledger.Voucher) {
	m.FromDomainBaseEntity(v.BaseEntity)
	m.CompanyID = v.CompanyID
	m.FinancialYearID = v.FinancialYearID
	m.VoucherNo = v.VoucherNo
	m.Sequence = v.Sequence
	m.Type = v.Type
	m.Date = v.Date
	m.Narration = v.Narration
	m.Status = v.Status
}

// VoucherModelFromDomain creates a persistence model from a domain Voucher
func VoucherModelFromDomain(v *ledger.Voucher) *VoucherModel {
	m := &VoucherModel{}
	m.FromDomain(v)
	return m
}

// LedgerEntryModel is the persistence model for ledger entries
type LedgerEntryModel struct {
	BaseModel
	VoucherID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	CompanyID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_entry_company_date,priority:1"`
	FinancialYearID uuid.UUID       `gorm:"type:uuid;not null;index"`
	LedgerAccountID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date            time.Time       `gorm:"not null;index:idx_entry_company_date,priority:2"`
	Debit           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Credit          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Narration       string          `gorm:"type:text"`
	LineNo          int             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// ToDomain converts the persistence model to a domain LedgerEntry
func (m *LedgerEntryModel) ToDomain() ledger.LedgerEntry {
	return ledger.LedgerEntry{
		BaseEntity:      m.BaseModel.ToDomain(),
		VoucherID:       m.VoucherID,
		CompanyID:       m.CompanyID,
		FinancialYearID: m.FinancialYearID,
		LedgerAccountID: m.LedgerAccountID,
		Date:            m.Date,
		Debit:           m.Debit,
		Credit:          m.Credit,
		Narration:       m.Narration,
		LineNo:          m.LineNo,
	}
}

// FromDomain populates the persistence model from a domain LedgerEntry
func (m *LedgerEntryModel) FromDomain(e *ledger.LedgerEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.VoucherID = e.VoucherID
	m.CompanyID = e.CompanyID
	m.FinancialYearID = e.FinancialYearID
	m.LedgerAccountID = e.LedgerAccountID
	m.Date = e.Date
	m.Debit = e.Debit
	m.Credit = e.Credit
	m.Narration = e.Narration
	m.LineNo = e.LineNo
}

// LedgerEntryModelFromDomain creates a persistence model from a domain LedgerEntry
func LedgerEntryModelFromDomain(e *ledger.LedgerEntry) *LedgerEntryModel {
	m := &LedgerEntryModel{}
	m.FromDomain(e)
	return m
}

// BillReferenceModel is the persistence model for bill references
type BillReferenceModel struct {
	BaseModel
	CompanyID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_billref_company_account,priority:1"`
	LedgerAccountID uuid.UUID       `gorm:"type:uuid;not null;index:idx_billref_company_account,priority:2"`
	BillNumber      string          `gorm:"type:varchar(100);not null;index"`
	RefType         ledger.RefType  `gorm:"type:varchar(20);not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Date            time.Time       `gorm:"not null"`
	ReferenceType   string          `gorm:"type:varchar(50);not null;index:idx_billref_source,priority:1"`
	ReferenceID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_billref_source,priority:2"`
}

// TableName returns the table name for GORM
func (BillReferenceModel) TableName() string {
	return "bill_references"
}

// ToDomain converts the persistence model to a domain BillReference
func (m *BillReferenceModel) ToDomain() ledger.BillReference {
	return ledger.BillReference{
		BaseEntity:      m.BaseModel.ToDomain(),
		CompanyID:       m.CompanyID,
		LedgerAccountID: m.LedgerAccountID,
		BillNumber:      m.BillNumber,
		RefType:         m.RefType,
		Amount:          m.Amount,
		Date:            m.Date,
		ReferenceType:   m.ReferenceType,
		ReferenceID:     m.ReferenceID,
	}
}

// FromDomain populates the persistence model from a domain BillReference
func (m *BillReferenceModel) FromDomain(r *ledger.BillReference) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.CompanyID = r.CompanyID
	m.LedgerAccountID = r.LedgerAccountID
	m.BillNumber = r.BillNumber
	m.RefType = r.RefType
	m.Amount = r.Amount
	m.Date = r.Date
	m.ReferenceType = r.ReferenceType
	m.ReferenceID = r.ReferenceID
}

// BillReferenceModelFromDomain creates a persistence model from a domain BillReference
func BillReferenceModelFromDomain(r *ledger.BillReference) *BillReferenceModel {
	m := &BillReferenceModel{}
	m.FromDomain(r)
	return m
}
