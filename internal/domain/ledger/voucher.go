package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// BalanceTolerance is the amount by which voucher debits and credits may
// differ and still be considered balanced. It is also the threshold below
// which report balances are treated as zero.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// BalanceSheetTolerance is the wider tolerance used only for the balance
// sheet equality check. It is deliberately kept distinct from
// BalanceTolerance so existing data keeps its "balanced" classification.
var BalanceSheetTolerance = decimal.NewFromFloat(0.02)

// VoucherType represents the kind of accounting transaction a voucher records
type VoucherType string

const (
	VoucherTypeReceipt       VoucherType = "RECEIPT"
	VoucherTypePayment       VoucherType = "PAYMENT"
	VoucherTypeJournal       VoucherType = "JOURNAL"
	VoucherTypeChequePayment VoucherType = "CHEQUE_PAYMENT"
	VoucherTypeChequeReceipt VoucherType = "CHEQUE_RECEIPT"
	VoucherTypeOpening       VoucherType = "OPENING"
)

// IsValid checks if the voucher type is valid
func (t VoucherType) IsValid() bool {
	switch t {
	case VoucherTypeReceipt, VoucherTypePayment, VoucherTypeJournal,
		VoucherTypeChequePayment, VoucherTypeChequeReceipt, VoucherTypeOpening:
		return true
	}
	return false
}

// String returns the string representation
func (t VoucherType) String() string {
	return string(t)
}

// NumberPrefix returns the voucher-number prefix for this type.
// Both cheque types share the CH prefix.
func (t VoucherType) NumberPrefix() string {
	switch t {
	case VoucherTypeReceipt:
		return "RV"
	case VoucherTypePayment:
		return "PV"
	case VoucherTypeJournal:
		return "JV"
	case VoucherTypeChequePayment, VoucherTypeChequeReceipt:
		return "CH"
	case VoucherTypeOpening:
		return "OP"
	}
	return ""
}

// FormatVoucherNumber renders a voucher number for a type and sequence,
// e.g. RECEIPT sequence 1 becomes "RV-00001".
func FormatVoucherNumber(t VoucherType, sequence int) string {
	return fmt.Sprintf("%s-%05d", t.NumberPrefix(), sequence)
}

// PrefixFamily returns every voucher type sharing this type's number
// prefix. Sequences are allocated per family so the unique constraint on
// (company, financial year, voucher number) holds for the shared CH prefix.
func (t VoucherType) PrefixFamily() []VoucherType {
	if t == VoucherTypeChequePayment || t == VoucherTypeChequeReceipt {
		return []VoucherType{VoucherTypeChequePayment, VoucherTypeChequeReceipt}
	}
	return []VoucherType{t}
}

// VoucherStatus represents the lifecycle status of a voucher
type VoucherStatus string

const (
	// VoucherStatusPosted is the status every voucher created through the
	// posting engine carries.
	VoucherStatusPosted VoucherStatus = "POSTED"
	// VoucherStatusDraft exists in the data model but is never produced by
	// the posting path.
	VoucherStatusDraft VoucherStatus = "DRAFT"
)

// IsValid checks if the status is valid
func (s VoucherStatus) IsValid() bool {
	return s == VoucherStatusPosted || s == VoucherStatusDraft
}

// String returns the string representation
func (s VoucherStatus) String() string {
	return string(s)
}

// VoucherLine is one debit-or-credit line of a voucher
type VoucherLine struct {
	LedgerAccountID uuid.UUID       `json:"ledger_account_id"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Narration       string          `json:"narration"`
}

// Validate checks the structural validity of a single line
func (l VoucherLine) Validate() error {
	if l.LedgerAccountID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Voucher line requires a ledger account")
	}
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Voucher line amounts cannot be negative")
	}
	return nil
}

// Voucher represents a balanced set of ledger lines recording one
// accounting transaction. The voucher number is unique per company and
// financial year.
type Voucher struct {
	shared.BaseEntity
	CompanyID       uuid.UUID     `json:"company_id"`
	FinancialYearID uuid.UUID     `json:"financial_year_id"`
	VoucherNo       string        `json:"voucher_no"`
	Sequence        int           `json:"sequence"`
	Type            VoucherType   `json:"type"`
	Date            time.Time     `json:"date"`
	Narration       string        `json:"narration"`
	Status          VoucherStatus `json:"status"`
	Lines           []VoucherLine `json:"lines"`
}

// TotalDebit sums the debit side of all lines
func (v *Voucher) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range v.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the credit side of all lines
func (v *Voucher) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range v.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// ValidateLines checks every line and the balance invariant.
// The balance check allows a difference of up to BalanceTolerance.
func ValidateLines(lines []VoucherLine) error {
	if len(lines) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Voucher requires at least one line")
	}
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}
	if totalDebit.Sub(totalCredit).Abs().GreaterThan(BalanceTolerance) {
		return shared.ErrUnbalancedVoucher
	}
	return nil
}

// NewVoucher creates a posted voucher. Lines must already be validated and
// balanced; the sequence and number come from the posting engine's allocator.
func NewVoucher(
	companyID, financialYearID uuid.UUID,
	voucherType VoucherType,
	sequence int,
	date time.Time,
	lines []VoucherLine,
	narration string,
) (*Voucher, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if financialYearID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FINANCIAL_YEAR", "Financial year ID cannot be empty")
	}
	if !voucherType.IsValid() {
		return nil, shared.NewDomainError("INVALID_VOUCHER_TYPE", "Voucher type is not valid")
	}
	if sequence <= 0 {
		return nil, shared.NewDomainError("INVALID_SEQUENCE", "Voucher sequence must be positive")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Voucher date is required")
	}
	if err := ValidateLines(lines); err != nil {
		return nil, err
	}

	return &Voucher{
		BaseEntity:      shared.NewBaseEntity(),
		CompanyID:       companyID,
		FinancialYearID: financialYearID,
		VoucherNo:       FormatVoucherNumber(voucherType, sequence),
		Sequence:        sequence,
		Type:            voucherType,
		Date:            date,
		Narration:       narration,
		Status:          VoucherStatusPosted,
		Lines:           lines,
	}, nil
}
