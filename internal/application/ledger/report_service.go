package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopbooks/backend/internal/domain/ledger"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// ReportService derives financial statements from accounts and entries.
// Reports are pure reads; accounts with no activity produce empty reports,
// never errors.
type ReportService struct {
	accountRepo ledger.LedgerAccountRepository
	entryRepo   ledger.LedgerEntryRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	accountRepo ledger.LedgerAccountRepository,
	entryRepo ledger.LedgerEntryRepository,
) *ReportService {
	return &ReportService{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}
}

// LedgerReport builds the running-balance statement for one account over
// [from, to] within a financial year.
func (s *ReportService) LedgerReport(ctx context.Context, accountID, financialYearID uuid.UUID, from, to time.Time) (*ledger.LedgerReport, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, shared.ErrNotFound
	}

	entries, err := s.entryRepo.FindByAccount(ctx, accountID, financialYearID, from, to)
	if err != nil {
		return nil, err
	}

	report := ledger.BuildLedgerReport(account.OpeningBalanceFor(financialYearID), entries)
	return &report, nil
}

// activities aggregates every account of the company with its opening
// balance for the financial year and entry totals up to asOf.
func (s *ReportService) activities(ctx context.Context, companyID, financialYearID uuid.UUID, asOf time.Time) ([]ledger.AccountActivity, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 0 // all accounts
	accounts, err := s.accountRepo.FindByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	totals, err := s.entryRepo.TotalsByAccount(ctx, companyID, asOf)
	if err != nil {
		return nil, err
	}
	totalsByAccount := make(map[uuid.UUID]ledger.AccountTotals, len(totals))
	for _, t := range totals {
		totalsByAccount[t.LedgerAccountID] = t
	}

	activities := make([]ledger.AccountActivity, 0, len(accounts))
	for i := range accounts {
		account := accounts[i]
		activity := ledger.AccountActivity{
			Account: account,
			Opening: account.OpeningBalanceFor(financialYearID).Signed(),
			Debit:   decimal.Zero,
			Credit:  decimal.Zero,
		}
		if t, ok := totalsByAccount[account.ID]; ok {
			activity.Debit = t.Debit
			activity.Credit = t.Credit
		}
		activities = append(activities, activity)
	}
	return activities, nil
}

// TrialBalance nets every account of the company as of a date
func (s *ReportService) TrialBalance(ctx context.Context, companyID, financialYearID uuid.UUID, asOf time.Time) (*ledger.TrialBalance, error) {
	activities, err := s.activities(ctx, companyID, financialYearID, asOf)
	if err != nil {
		return nil, err
	}
	tb := ledger.BuildTrialBalance(activities)
	return &tb, nil
}

// ProfitLoss builds the income statement. The from parameter is accepted
// for interface compatibility but the statement is computed on the trial
// balance basis as of the end date only.
func (s *ReportService) ProfitLoss(ctx context.Context, companyID, financialYearID uuid.UUID, from, to time.Time) (*ledger.ProfitLoss, error) {
	_ = from
	activities, err := s.activities(ctx, companyID, financialYearID, to)
	if err != nil {
		return nil, err
	}
	pl := ledger.BuildProfitLoss(activities)
	return &pl, nil
}

// BalanceSheet builds the statement of financial position as of a date
func (s *ReportService) BalanceSheet(ctx context.Context, companyID, financialYearID uuid.UUID, asOf time.Time) (*ledger.BalanceSheet, error) {
	activities, err := s.activities(ctx, companyID, financialYearID, asOf)
	if err != nil {
		return nil, err
	}
	bs := ledger.BuildBalanceSheet(activities)
	return &bs, nil
}
