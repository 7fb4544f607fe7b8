package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// LedgerEntry is one atomic debit/credit record in the ledger store.
// Entries are created only by the posting engine, one per voucher line,
// and deleted only together with their voucher.
type LedgerEntry struct {
	shared.BaseEntity
	VoucherID       uuid.UUID       `json:"voucher_id"`
	CompanyID       uuid.UUID       `json:"company_id"`
	FinancialYearID uuid.UUID       `json:"financial_year_id"`
	LedgerAccountID uuid.UUID       `json:"ledger_account_id"`
	Date            time.Time       `json:"date"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Narration       string          `json:"narration"`
	LineNo          int             `json:"line_no"`
}

// Signed returns the entry amount with debit positive and credit negative
func (e *LedgerEntry) Signed() decimal.Decimal {
	return e.Debit.Sub(e.Credit)
}

// EntriesFromVoucher derives the ledger entries for a posted voucher,
// stamping each with the voucher's date, company and financial year.
func EntriesFromVoucher(v *Voucher) []LedgerEntry {
	entries := make([]LedgerEntry, 0, len(v.Lines))
	for i, line := range v.Lines {
		entries = append(entries, LedgerEntry{
			BaseEntity:      shared.NewBaseEntity(),
			VoucherID:       v.ID,
			CompanyID:       v.CompanyID,
			FinancialYearID: v.FinancialYearID,
			LedgerAccountID: line.LedgerAccountID,
			Date:            v.Date,
			Debit:           line.Debit,
			Credit:          line.Credit,
			Narration:       line.Narration,
			LineNo:          i + 1,
		})
	}
	return entries
}
