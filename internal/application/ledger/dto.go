package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopbooks/backend/internal/domain/ledger"
)

// VoucherLineRequest is one debit-or-credit line of a posting request
type VoucherLineRequest struct {
	LedgerAccountID uuid.UUID       `json:"ledger_account_id" binding:"required"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Narration       string          `json:"narration"`
}

// CreateVoucherRequest represents a request to post a voucher
type CreateVoucherRequest struct {
	CompanyID       uuid.UUID            `json:"company_id" binding:"required"`
	FinancialYearID uuid.UUID            `json:"financial_year_id" binding:"required"`
	Type            string               `json:"type" binding:"required"`
	Date            time.Time            `json:"date" binding:"required"`
	Narration       string               `json:"narration"`
	Lines           []VoucherLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// VoucherLineResponse is one line in a voucher response
type VoucherLineResponse struct {
	LedgerAccountID uuid.UUID       `json:"ledger_account_id"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Narration       string          `json:"narration"`
}

// VoucherResponse represents a voucher in API responses
type VoucherResponse struct {
	ID              uuid.UUID             `json:"id"`
	CompanyID       uuid.UUID             `json:"company_id"`
	FinancialYearID uuid.UUID             `json:"financial_year_id"`
	VoucherNo       string                `json:"voucher_no"`
	Type            string                `json:"type"`
	Date            time.Time             `json:"date"`
	Narration       string                `json:"narration"`
	Status          string                `json:"status"`
	TotalDebit      decimal.Decimal       `json:"total_debit"`
	TotalCredit     decimal.Decimal       `json:"total_credit"`
	Lines           []VoucherLineResponse `json:"lines"`
	CreatedAt       time.Time             `json:"created_at"`
}

// ToVoucherResponse converts a domain voucher to its response form
func ToVoucherResponse(v *ledger.Voucher) VoucherResponse {
	lines := make([]VoucherLineResponse, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, VoucherLineResponse{
			LedgerAccountID: l.LedgerAccountID,
			Debit:           l.Debit.Round(2),
			Credit:          l.Credit.Round(2),
			Narration:       l.Narration,
		})
	}
	return VoucherResponse{
		ID:              v.ID,
		CompanyID:       v.CompanyID,
		FinancialYearID: v.FinancialYearID,
		VoucherNo:       v.VoucherNo,
		Type:            v.Type.String(),
		Date:            v.Date,
		Narration:       v.Narration,
		Status:          v.Status.String(),
		TotalDebit:      v.TotalDebit().Round(2),
		TotalCredit:     v.TotalCredit().Round(2),
		Lines:           lines,
		CreatedAt:       v.CreatedAt,
	}
}

// CreateAccountRequest represents a request to create a ledger account
type CreateAccountRequest struct {
	CompanyID uuid.UUID `json:"company_id" binding:"required"`
	Code      string    `json:"code" binding:"required"`
	Name      string    `json:"name" binding:"required"`
	Group     string    `json:"group" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
}

// SetOpeningBalanceRequest sets an account's opening balance for one financial year
type SetOpeningBalanceRequest struct {
	FinancialYearID uuid.UUID       `json:"financial_year_id" binding:"required"`
	Amount          decimal.Decimal `json:"amount"`
	IsDebit         bool            `json:"is_debit"`
}

// AccountResponse represents a ledger account in API responses
type AccountResponse struct {
	ID              uuid.UUID                `json:"id"`
	CompanyID       uuid.UUID                `json:"company_id"`
	Code            string                   `json:"code"`
	Name            string                   `json:"name"`
	Group           string                   `json:"group"`
	OpeningBalances []ledger.OpeningBalance  `json:"opening_balances"`
	CreatedAt       time.Time                `json:"created_at"`
}

// ToAccountResponse converts a domain account to its response form
func ToAccountResponse(a *ledger.LedgerAccount) AccountResponse {
	return AccountResponse{
		ID:              a.ID,
		CompanyID:       a.CompanyID,
		Code:            a.Code,
		Name:            a.Name,
		Group:           a.Group.String(),
		OpeningBalances: a.OpeningBalances,
		CreatedAt:       a.CreatedAt,
	}
}

// BillRefRequest represents a request to record a bill reference row
type BillRefRequest struct {
	CompanyID       uuid.UUID       `json:"company_id" binding:"required"`
	LedgerAccountID uuid.UUID       `json:"ledger_account_id" binding:"required"`
	BillNumber      string          `json:"bill_number" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Date            time.Time       `json:"date" binding:"required"`
	ReferenceType   string          `json:"reference_type" binding:"required"`
	ReferenceID     uuid.UUID       `json:"reference_id" binding:"required"`
}

// BillRefResponse represents a bill reference row in API responses
type BillRefResponse struct {
	ID              uuid.UUID       `json:"id"`
	LedgerAccountID uuid.UUID       `json:"ledger_account_id"`
	BillNumber      string          `json:"bill_number"`
	RefType         string          `json:"ref_type"`
	Amount          decimal.Decimal `json:"amount"`
	Date            time.Time       `json:"date"`
	ReferenceType   string          `json:"reference_type"`
	ReferenceID     uuid.UUID       `json:"reference_id"`
}

// ToBillRefResponse converts a domain bill reference to its response form
func ToBillRefResponse(r *ledger.BillReference) BillRefResponse {
	return BillRefResponse{
		ID:              r.ID,
		LedgerAccountID: r.LedgerAccountID,
		BillNumber:      r.BillNumber,
		RefType:         r.RefType.String(),
		Amount:          r.Amount.Round(2),
		Date:            r.Date,
		ReferenceType:   r.ReferenceType,
		ReferenceID:     r.ReferenceID,
	}
}
