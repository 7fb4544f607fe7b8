package ledger

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// AccountGroup classifies a ledger account for financial statement purposes
type AccountGroup string

const (
	AccountGroupAsset     AccountGroup = "ASSET"
	AccountGroupLiability AccountGroup = "LIABILITY"
	AccountGroupEquity    AccountGroup = "EQUITY"
	AccountGroupIncome    AccountGroup = "INCOME"
	AccountGroupExpense   AccountGroup = "EXPENSE"
)

// IsValid checks if the account group is valid
func (g AccountGroup) IsValid() bool {
	switch g {
	case AccountGroupAsset, AccountGroupLiability, AccountGroupEquity,
		AccountGroupIncome, AccountGroupExpense:
		return true
	}
	return false
}

// String returns the string representation
func (g AccountGroup) String() string {
	return string(g)
}

// OpeningBalance is the balance an account starts a financial year with.
// There is at most one per financial year.
type OpeningBalance struct {
	FinancialYearID uuid.UUID       `json:"financial_year_id"`
	Amount          decimal.Decimal `json:"amount"`
	IsDebit         bool            `json:"is_debit"`
}

// Signed returns the opening balance as a signed amount (debit positive)
func (o OpeningBalance) Signed() decimal.Decimal {
	if o.IsDebit {
		return o.Amount
	}
	return o.Amount.Neg()
}

// OpeningBalances is a slice of OpeningBalance that implements GORM Scanner/Valuer for JSONB storage
type OpeningBalances []OpeningBalance

// Value implements driver.Valuer interface for GORM to store as JSONB
func (o OpeningBalances) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	return json.Marshal(o)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (o *OpeningBalances) Scan(value interface{}) error {
	if value == nil {
		*o = OpeningBalances{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan OpeningBalances: unsupported type")
	}

	if len(bytes) == 0 {
		*o = OpeningBalances{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// LedgerAccount represents one account in the general ledger.
// Accounts are scoped to a company; the code is unique within the company.
// An account referenced by ledger entries or bill references cannot be deleted.
type LedgerAccount struct {
	shared.BaseEntity
	CompanyID       uuid.UUID       `json:"company_id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Group           AccountGroup    `json:"group"`
	OpeningBalances OpeningBalances `json:"opening_balances"`
}

// NewLedgerAccount creates a new ledger account
func NewLedgerAccount(companyID uuid.UUID, code, name string, group AccountGroup) (*LedgerAccount, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_CODE", "Account code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	if !group.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_GROUP", "Account group is not valid")
	}

	return &LedgerAccount{
		BaseEntity:      shared.NewBaseEntity(),
		CompanyID:       companyID,
		Code:            code,
		Name:            name,
		Group:           group,
		OpeningBalances: OpeningBalances{},
	}, nil
}

// OpeningBalanceFor returns the opening balance for the given financial year.
// Accounts without one start the year at zero on the debit side.
func (a *LedgerAccount) OpeningBalanceFor(financialYearID uuid.UUID) OpeningBalance {
	for _, ob := range a.OpeningBalances {
		if ob.FinancialYearID == financialYearID {
			return ob
		}
	}
	return OpeningBalance{FinancialYearID: financialYearID, Amount: decimal.Zero, IsDebit: true}
}

// SetOpeningBalance sets or replaces the opening balance for a financial year
func (a *LedgerAccount) SetOpeningBalance(financialYearID uuid.UUID, amount decimal.Decimal, isDebit bool) error {
	if financialYearID == uuid.Nil {
		return shared.NewDomainError("INVALID_FINANCIAL_YEAR", "Financial year ID cannot be empty")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Opening balance amount cannot be negative")
	}

	for i, ob := range a.OpeningBalances {
		if ob.FinancialYearID == financialYearID {
			a.OpeningBalances[i].Amount = amount
			a.OpeningBalances[i].IsDebit = isDebit
			return nil
		}
	}
	a.OpeningBalances = append(a.OpeningBalances, OpeningBalance{
		FinancialYearID: financialYearID,
		Amount:          amount,
		IsDebit:         isDebit,
	})
	return nil
}
