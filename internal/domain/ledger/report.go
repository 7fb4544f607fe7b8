package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerReportRow is one transaction row in a per-account ledger report.
// Balance carries the absolute running balance; BalanceIsDebit tells which
// side it falls on.
type LedgerReportRow struct {
	EntryID        uuid.UUID       `json:"entry_id"`
	VoucherID      uuid.UUID       `json:"voucher_id"`
	Date           time.Time       `json:"date"`
	Narration      string          `json:"narration"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Balance        decimal.Decimal `json:"balance"`
	BalanceIsDebit bool            `json:"balance_is_debit"`
}

// LedgerReport is the running-balance statement for one account over a
// date window within a financial year.
type LedgerReport struct {
	OpeningBalance decimal.Decimal   `json:"opening_balance"`
	OpeningIsDebit bool              `json:"opening_is_debit"`
	Rows           []LedgerReportRow `json:"rows"`
	TotalDebit     decimal.Decimal   `json:"total_debit"`
	TotalCredit    decimal.Decimal   `json:"total_credit"`
	ClosingBalance decimal.Decimal   `json:"closing_balance"`
	ClosingIsDebit bool              `json:"closing_is_debit"`
}

// BuildLedgerReport walks entries (already ordered by date, then insertion
// order) maintaining a signed running balance seeded from the opening
// balance. Debits add, credits subtract; a non-negative running balance is
// reported as a debit balance.
func BuildLedgerReport(opening OpeningBalance, entries []LedgerEntry) LedgerReport {
	running := opening.Signed()
	report := LedgerReport{
		OpeningBalance: opening.Amount,
		OpeningIsDebit: opening.IsDebit,
		Rows:           make([]LedgerReportRow, 0, len(entries)),
		TotalDebit:     decimal.Zero,
		TotalCredit:    decimal.Zero,
	}

	for i := range entries {
		e := &entries[i]
		running = running.Add(e.Signed())
		report.TotalDebit = report.TotalDebit.Add(e.Debit)
		report.TotalCredit = report.TotalCredit.Add(e.Credit)
		report.Rows = append(report.Rows, LedgerReportRow{
			EntryID:        e.ID,
			VoucherID:      e.VoucherID,
			Date:           e.Date,
			Narration:      e.Narration,
			Debit:          e.Debit,
			Credit:         e.Credit,
			Balance:        running.Abs(),
			BalanceIsDebit: running.GreaterThanOrEqual(decimal.Zero),
		})
	}

	report.ClosingBalance = running.Abs()
	report.ClosingIsDebit = running.GreaterThanOrEqual(decimal.Zero)
	return report
}

// AccountActivity aggregates one account's opening balance and entry totals
// up to a report date. Opening is signed (debit positive) and already zero
// when the account has no opening balance for the financial year.
type AccountActivity struct {
	Account LedgerAccount
	Opening decimal.Decimal
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

// Net returns the signed closing balance (debit positive)
func (a AccountActivity) Net() decimal.Decimal {
	return a.Opening.Add(a.Debit).Sub(a.Credit)
}

// TrialBalanceRow is one account's net balance, on exactly one side
type TrialBalanceRow struct {
	AccountID uuid.UUID       `json:"account_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Group     AccountGroup    `json:"group"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// TrialBalance is the set of net account balances as of a date
type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"total_debit"`
	TotalCredit decimal.Decimal   `json:"total_credit"`
}

// BuildTrialBalance nets every account to a single balance and emits a
// debit or credit row depending on its sign. Accounts whose net balance is
// below BalanceTolerance are omitted entirely.
func BuildTrialBalance(activities []AccountActivity) TrialBalance {
	tb := TrialBalance{
		Rows:        make([]TrialBalanceRow, 0, len(activities)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	for _, act := range activities {
		net := act.Net()
		if net.Abs().LessThan(BalanceTolerance) {
			continue
		}
		row := TrialBalanceRow{
			AccountID: act.Account.ID,
			Code:      act.Account.Code,
			Name:      act.Account.Name,
			Group:     act.Account.Group,
			Debit:     decimal.Zero,
			Credit:    decimal.Zero,
		}
		if net.IsPositive() {
			row.Debit = net
			tb.TotalDebit = tb.TotalDebit.Add(net)
		} else {
			row.Credit = net.Abs()
			tb.TotalCredit = tb.TotalCredit.Add(net.Abs())
		}
		tb.Rows = append(tb.Rows, row)
	}
	return tb
}

// ProfitLossRow is one income or expense account's contribution
type ProfitLossRow struct {
	AccountID uuid.UUID       `json:"account_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// ProfitLoss is the income statement over the report window
type ProfitLoss struct {
	Income        []ProfitLossRow `json:"income"`
	Expenses      []ProfitLossRow `json:"expenses"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"`
}

// BuildProfitLoss aggregates income and expense accounts on the trial
// balance basis. Income accounts contribute credit minus debit, expense
// accounts debit minus credit. Rows below BalanceTolerance are dropped
// from the detail lists but still counted in the totals.
func BuildProfitLoss(activities []AccountActivity) ProfitLoss {
	pl := ProfitLoss{
		Income:        make([]ProfitLossRow, 0),
		Expenses:      make([]ProfitLossRow, 0),
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	for _, act := range activities {
		net := act.Net()
		row := ProfitLossRow{
			AccountID: act.Account.ID,
			Code:      act.Account.Code,
			Name:      act.Account.Name,
		}
		switch act.Account.Group {
		case AccountGroupIncome:
			row.Amount = net.Neg()
			pl.TotalIncome = pl.TotalIncome.Add(row.Amount)
			if row.Amount.Abs().GreaterThanOrEqual(BalanceTolerance) {
				pl.Income = append(pl.Income, row)
			}
		case AccountGroupExpense:
			row.Amount = net
			pl.TotalExpenses = pl.TotalExpenses.Add(row.Amount)
			if row.Amount.Abs().GreaterThanOrEqual(BalanceTolerance) {
				pl.Expenses = append(pl.Expenses, row)
			}
		}
	}

	pl.NetProfit = pl.TotalIncome.Sub(pl.TotalExpenses)
	return pl
}

// BalanceSheetRow is one account's contribution to a balance sheet section
type BalanceSheetRow struct {
	AccountID uuid.UUID       `json:"account_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// BalanceSheet is the statement of financial position as of a date
type BalanceSheet struct {
	Assets           []BalanceSheetRow `json:"assets"`
	Liabilities      []BalanceSheetRow `json:"liabilities"`
	Equity           []BalanceSheetRow `json:"equity"`
	TotalAssets      decimal.Decimal   `json:"total_assets"`
	TotalLiabilities decimal.Decimal   `json:"total_liabilities"`
	TotalEquity      decimal.Decimal   `json:"total_equity"`
	Balanced         bool              `json:"balanced"`
}

// BuildBalanceSheet aggregates asset, liability and equity accounts on the
// trial balance basis. Assets contribute debit minus credit; liabilities
// and equity contribute credit minus debit. The balanced flag uses the
// wider BalanceSheetTolerance.
func BuildBalanceSheet(activities []AccountActivity) BalanceSheet {
	bs := BalanceSheet{
		Assets:           make([]BalanceSheetRow, 0),
		Liabilities:      make([]BalanceSheetRow, 0),
		Equity:           make([]BalanceSheetRow, 0),
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}

	for _, act := range activities {
		net := act.Net()
		row := BalanceSheetRow{
			AccountID: act.Account.ID,
			Code:      act.Account.Code,
			Name:      act.Account.Name,
		}
		switch act.Account.Group {
		case AccountGroupAsset:
			row.Amount = net
			bs.TotalAssets = bs.TotalAssets.Add(row.Amount)
			if row.Amount.Abs().GreaterThanOrEqual(BalanceTolerance) {
				bs.Assets = append(bs.Assets, row)
			}
		case AccountGroupLiability:
			row.Amount = net.Neg()
			bs.TotalLiabilities = bs.TotalLiabilities.Add(row.Amount)
			if row.Amount.Abs().GreaterThanOrEqual(BalanceTolerance) {
				bs.Liabilities = append(bs.Liabilities, row)
			}
		case AccountGroupEquity:
			row.Amount = net.Neg()
			bs.TotalEquity = bs.TotalEquity.Add(row.Amount)
			if row.Amount.Abs().GreaterThanOrEqual(BalanceTolerance) {
				bs.Equity = append(bs.Equity, row)
			}
		}
	}

	diff := bs.TotalAssets.Sub(bs.TotalLiabilities.Add(bs.TotalEquity))
	bs.Balanced = diff.Abs().LessThan(BalanceSheetTolerance)
	return bs
}
