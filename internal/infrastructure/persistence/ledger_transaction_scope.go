package persistence

import (
	"context"

	"gorm.io/gorm"

	appledger "github.com/shopbooks/backend/internal/application/ledger"
	"github.com/shopbooks/backend/internal/domain/ledger"
)

// GormLedgerTransactionScope implements the ledger TransactionScope using
// GORM transactions, so a voucher header, its entries and its bill
// references commit or roll back together.
type GormLedgerTransactionScope struct {
	db *gorm.DB
}

// NewGormLedgerTransactionScope creates a new GormLedgerTransactionScope
func NewGormLedgerTransactionScope(db *gorm.DB) *GormLedgerTransactionScope {
	return &GormLedgerTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormLedgerTransactionScope) Execute(ctx context.Context, fn func(repos appledger.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormLedgerRepositories{tx: tx})
	})
}

type gormLedgerRepositories struct {
	tx *gorm.DB
}

// AccountRepo returns the account repository scoped to the current transaction
func (r *gormLedgerRepositories) AccountRepo() ledger.LedgerAccountRepository {
	return NewGormLedgerAccountRepository(r.tx)
}

// VoucherRepo returns the voucher repository scoped to the current transaction
func (r *gormLedgerRepositories) VoucherRepo() ledger.VoucherRepository {
	return NewGormVoucherRepository(r.tx)
}

// EntryRepo returns the entry repository scoped to the current transaction
func (r *gormLedgerRepositories) EntryRepo() ledger.LedgerEntryRepository {
	return NewGormLedgerEntryRepository(r.tx)
}

// BillRefRepo returns the bill reference repository scoped to the current transaction
func (r *gormLedgerRepositories) BillRefRepo() ledger.BillReferenceRepository {
	return NewGormBillReferenceRepository(r.tx)
}

var _ appledger.TransactionScope = (*GormLedgerTransactionScope)(nil)
var _ appledger.TransactionalRepositories = (*gormLedgerRepositories)(nil)
