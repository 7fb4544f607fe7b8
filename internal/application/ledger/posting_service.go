package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/shopbooks/backend/internal/domain/ledger"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// PostingService is the voucher posting engine. It owns the ledger account
// master, allocates voucher numbers, and writes a voucher header plus its
// ledger entries atomically.
type PostingService struct {
	scope       TransactionScope
	accountRepo ledger.LedgerAccountRepository
	voucherRepo ledger.VoucherRepository
	entryRepo   ledger.LedgerEntryRepository
	billRefRepo ledger.BillReferenceRepository

	// numberLocks serializes voucher-number allocation per
	// (company, financial year, number prefix). The unique index on
	// (company_id, financial_year_id, voucher_no) is the backstop.
	numberMu    sync.Mutex
	numberLocks map[string]*sync.Mutex
}

// NewPostingService creates a new PostingService
func NewPostingService(
	scope TransactionScope,
	accountRepo ledger.LedgerAccountRepository,
	voucherRepo ledger.VoucherRepository,
	entryRepo ledger.LedgerEntryRepository,
	billRefRepo ledger.BillReferenceRepository,
) *PostingService {
	return &PostingService{
		scope:       scope,
		accountRepo: accountRepo,
		voucherRepo: voucherRepo,
		entryRepo:   entryRepo,
		billRefRepo: billRefRepo,
		numberLocks: make(map[string]*sync.Mutex),
	}
}

func (s *PostingService) numberLock(companyID, financialYearID uuid.UUID, voucherType ledger.VoucherType) *sync.Mutex {
	key := fmt.Sprintf("%s|%s|%s", companyID, financialYearID, voucherType.NumberPrefix())
	s.numberMu.Lock()
	defer s.numberMu.Unlock()
	lock, ok := s.numberLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.numberLocks[key] = lock
	}
	return lock
}

// CreateAndPost validates, numbers and posts a voucher. The header and its
// ledger entries are written in one transaction; nothing is written when
// validation fails.
func (s *PostingService) CreateAndPost(ctx context.Context, req CreateVoucherRequest) (*VoucherResponse, error) {
	voucherType := ledger.VoucherType(req.Type)
	if !voucherType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown voucher type: "+req.Type)
	}

	lines := make([]ledger.VoucherLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, ledger.VoucherLine{
			LedgerAccountID: l.LedgerAccountID,
			Debit:           l.Debit,
			Credit:          l.Credit,
			Narration:       l.Narration,
		})
	}
	if err := ledger.ValidateLines(lines); err != nil {
		return nil, err
	}

	// Read-max-then-increment is not atomic; serialize allocations that
	// could collide on the same number prefix.
	lock := s.numberLock(req.CompanyID, req.FinancialYearID, voucherType)
	lock.Lock()
	defer lock.Unlock()

	var voucher *ledger.Voucher
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		maxSeq, err := repos.VoucherRepo().MaxSequence(ctx, req.CompanyID, req.FinancialYearID, voucherType)
		if err != nil {
			return err
		}

		voucher, err = ledger.NewVoucher(req.CompanyID, req.FinancialYearID, voucherType,
			maxSeq+1, req.Date, lines, req.Narration)
		if err != nil {
			return err
		}

		if err := repos.VoucherRepo().Save(ctx, voucher); err != nil {
			return err
		}
		return repos.EntryRepo().SaveAll(ctx, ledger.EntriesFromVoucher(voucher))
	})
	if err != nil {
		return nil, err
	}

	response := ToVoucherResponse(voucher)
	return &response, nil
}

// DeleteVoucher removes a voucher and its ledger entries in one transaction
func (s *PostingService) DeleteVoucher(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		voucher, err := repos.VoucherRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if voucher == nil {
			return shared.ErrNotFound
		}
		if err := repos.EntryRepo().DeleteByVoucher(ctx, id); err != nil {
			return err
		}
		return repos.VoucherRepo().Delete(ctx, id)
	})
}

// GetVoucher retrieves a voucher with its lines
func (s *PostingService) GetVoucher(ctx context.Context, id uuid.UUID) (*VoucherResponse, error) {
	voucher, err := s.voucherRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, shared.ErrNotFound
	}
	response := ToVoucherResponse(voucher)
	return &response, nil
}

// ListVouchers lists vouchers for a company and financial year
func (s *PostingService) ListVouchers(ctx context.Context, companyID, financialYearID uuid.UUID, filter shared.Filter) ([]VoucherResponse, error) {
	vouchers, err := s.voucherRepo.FindAll(ctx, companyID, financialYearID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]VoucherResponse, 0, len(vouchers))
	for i := range vouchers {
		responses = append(responses, ToVoucherResponse(&vouchers[i]))
	}
	return responses, nil
}

// CreateAccount creates a ledger account
func (s *PostingService) CreateAccount(ctx context.Context, req CreateAccountRequest) (*AccountResponse, error) {
	existing, err := s.accountRepo.FindByCode(ctx, req.CompanyID, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	account, err := ledger.NewLedgerAccount(req.CompanyID, req.Code, req.Name, ledger.AccountGroup(req.Group))
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	response := ToAccountResponse(account)
	return &response, nil
}

// SetOpeningBalance sets or replaces an account's opening balance for a financial year
func (s *PostingService) SetOpeningBalance(ctx context.Context, accountID uuid.UUID, req SetOpeningBalanceRequest) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, shared.ErrNotFound
	}
	if err := account.SetOpeningBalance(req.FinancialYearID, req.Amount, req.IsDebit); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	response := ToAccountResponse(account)
	return &response, nil
}

// GetAccount retrieves a ledger account
func (s *PostingService) GetAccount(ctx context.Context, id uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, shared.ErrNotFound
	}
	response := ToAccountResponse(account)
	return &response, nil
}

// ListAccounts lists the ledger accounts of a company
func (s *PostingService) ListAccounts(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]AccountResponse, error) {
	accounts, err := s.accountRepo.FindByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		responses = append(responses, ToAccountResponse(&accounts[i]))
	}
	return responses, nil
}

// DeleteAccount removes a ledger account. Deletion is refused while any
// ledger entry, voucher line or bill reference still points at the account.
func (s *PostingService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if account == nil {
		return shared.ErrNotFound
	}

	entryCount, err := s.entryRepo.CountByAccount(ctx, id)
	if err != nil {
		return err
	}
	if entryCount > 0 {
		return shared.ErrReferentialIntegrity
	}

	voucherCount, err := s.voucherRepo.CountByAccount(ctx, id)
	if err != nil {
		return err
	}
	if voucherCount > 0 {
		return shared.ErrReferentialIntegrity
	}

	refCount, err := s.billRefRepo.CountByAccount(ctx, id)
	if err != nil {
		return err
	}
	if refCount > 0 {
		return shared.ErrReferentialIntegrity
	}

	return s.accountRepo.Delete(ctx, id)
}
