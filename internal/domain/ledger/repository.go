package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// AccountTotals carries the summed debit and credit sides for one account
type AccountTotals struct {
	LedgerAccountID uuid.UUID
	Debit           decimal.Decimal
	Credit          decimal.Decimal
}

// LedgerAccountRepository defines persistence for ledger accounts
type LedgerAccountRepository interface {
	// FindByID finds an account by ID
	FindByID(ctx context.Context, id uuid.UUID) (*LedgerAccount, error)

	// FindByCode finds an account by its company-unique code
	FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*LedgerAccount, error)

	// FindByCompany lists all accounts of a company
	FindByCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]LedgerAccount, error)

	// Save creates or updates an account
	Save(ctx context.Context, account *LedgerAccount) error

	// Delete removes an account. Callers must check references first.
	Delete(ctx context.Context, id uuid.UUID) error
}

// VoucherRepository defines persistence for voucher headers.
// Lines are reconstructed from the ledger entries of the voucher.
type VoucherRepository interface {
	// FindByID finds a voucher with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*Voucher, error)

	// FindAll lists vouchers for a company and financial year
	FindAll(ctx context.Context, companyID, financialYearID uuid.UUID, filter shared.Filter) ([]Voucher, error)

	// MaxSequence returns the highest allocated sequence for the given
	// company, financial year and voucher type, or 0 when none exist.
	MaxSequence(ctx context.Context, companyID, financialYearID uuid.UUID, voucherType VoucherType) (int, error)

	// Save persists the voucher header
	Save(ctx context.Context, voucher *Voucher) error

	// Delete removes the voucher header
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByAccount counts vouchers having a line against the account
	CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
}

// LedgerEntryRepository defines persistence for ledger entries
type LedgerEntryRepository interface {
	// SaveAll persists a batch of entries
	SaveAll(ctx context.Context, entries []LedgerEntry) error

	// FindByVoucher lists the entries of a voucher in line order
	FindByVoucher(ctx context.Context, voucherID uuid.UUID) ([]LedgerEntry, error)

	// FindByAccount lists an account's entries for a financial year within
	// [from, to], ordered by date then insertion order.
	FindByAccount(ctx context.Context, accountID, financialYearID uuid.UUID, from, to time.Time) ([]LedgerEntry, error)

	// TotalsByAccount sums debits and credits per account across the
	// company for entries dated on or before asOf.
	TotalsByAccount(ctx context.Context, companyID uuid.UUID, asOf time.Time) ([]AccountTotals, error)

	// DeleteByVoucher removes every entry of a voucher
	DeleteByVoucher(ctx context.Context, voucherID uuid.UUID) error

	// CountByAccount counts entries referencing the account
	CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
}

// BillReferenceRepository defines persistence for bill references
type BillReferenceRepository interface {
	// Save persists a bill reference row
	Save(ctx context.Context, ref *BillReference) error

	// FindByAccount lists all rows for an account, in insertion order
	FindByAccount(ctx context.Context, companyID, ledgerAccountID uuid.UUID) ([]BillReference, error)

	// DeleteNewRefBySource removes the NEW_REF row (if any) tied to a
	// source document, leaving AGST_REF rows in place.
	DeleteNewRefBySource(ctx context.Context, referenceType string, referenceID uuid.UUID) error

	// DeleteBySource removes every row (both types) tied to a source document
	DeleteBySource(ctx context.Context, referenceType string, referenceID uuid.UUID) error

	// CountByAccount counts rows referencing the account
	CountByAccount(ctx context.Context, ledgerAccountID uuid.UUID) (int64, error)
}
