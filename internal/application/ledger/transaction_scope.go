package ledger

import (
	"context"

	"github.com/shopbooks/backend/internal/domain/ledger"
)

// TransactionScope provides transactional access to ledger repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the ledger repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// AccountRepo returns the ledger account repository scoped to the current transaction
	AccountRepo() ledger.LedgerAccountRepository
	// VoucherRepo returns the voucher repository scoped to the current transaction
	VoucherRepo() ledger.VoucherRepository
	// EntryRepo returns the ledger entry repository scoped to the current transaction
	EntryRepo() ledger.LedgerEntryRepository
	// BillRefRepo returns the bill reference repository scoped to the current transaction
	BillRefRepo() ledger.BillReferenceRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing or when transaction support is not required.
type NoOpTransactionScope struct {
	accountRepo ledger.LedgerAccountRepository
	voucherRepo ledger.VoucherRepository
	entryRepo   ledger.LedgerEntryRepository
	billRefRepo ledger.BillReferenceRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	accountRepo ledger.LedgerAccountRepository,
	voucherRepo ledger.VoucherRepository,
	entryRepo ledger.LedgerEntryRepository,
	billRefRepo ledger.BillReferenceRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		accountRepo: accountRepo,
		voucherRepo: voucherRepo,
		entryRepo:   entryRepo,
		billRefRepo: billRefRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// AccountRepo returns the ledger account repository.
func (s *NoOpTransactionScope) AccountRepo() ledger.LedgerAccountRepository {
	return s.accountRepo
}

// VoucherRepo returns the voucher repository.
func (s *NoOpTransactionScope) VoucherRepo() ledger.VoucherRepository {
	return s.voucherRepo
}

// EntryRepo returns the ledger entry repository.
func (s *NoOpTransactionScope) EntryRepo() ledger.LedgerEntryRepository {
	return s.entryRepo
}

// BillRefRepo returns the bill reference repository.
func (s *NoOpTransactionScope) BillRefRepo() ledger.BillReferenceRepository {
	return s.billRefRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
