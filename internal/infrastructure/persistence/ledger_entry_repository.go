package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopbooks/backend/internal/domain/ledger"
	"github.com/shopbooks/backend/internal/infrastructure/persistence/models"
)

// GormLedgerEntryRepository implements LedgerEntryRepository using GORM
type GormLedgerEntryRepository struct {
	db *gorm.DB
}

// NewGormLedgerEntryRepository creates a new GormLedgerEntryRepository
func NewGormLedgerEntryRepository(db *gorm.DB) *GormLedgerEntryRepository {
	return &GormLedgerEntryRepository{db: db}
}

// SaveAll persists a batch of entries
func (r *GormLedgerEntryRepository) SaveAll(ctx context.Context, entries []ledger.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]models.LedgerEntryModel, 0, len(entries))
	for i := range entries {
		rows = append(rows, *models.LedgerEntryModelFromDomain(&entries[i]))
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// FindByVoucher lists the entries of a voucher in line order
func (r *GormLedgerEntryRepository) FindByVoucher(ctx context.Context, voucherID uuid.UUID) ([]ledger.LedgerEntry, error) {
	var rows []models.LedgerEntryModel
	if err := r.db.WithContext(ctx).
		Where("voucher_id = ?", voucherID).
		Order("line_no ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(rows), nil
}

// FindByAccount lists an account's entries for a financial year within
// [from, to], ordered by date then insertion order.
func (r *GormLedgerEntryRepository) FindByAccount(ctx context.Context, accountID, financialYearID uuid.UUID, from, to time.Time) ([]ledger.LedgerEntry, error) {
	var rows []models.LedgerEntryModel
	if err := r.db.WithContext(ctx).
		Where("ledger_account_id = ? AND financial_year_id = ? AND date >= ? AND date <= ?",
			accountID, financialYearID, from, to).
		Order("date ASC, created_at ASC, line_no ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(rows), nil
}

// TotalsByAccount sums debits and credits per account across the company
// for entries dated on or before asOf.
func (r *GormLedgerEntryRepository) TotalsByAccount(ctx context.Context, companyID uuid.UUID, asOf time.Time) ([]ledger.AccountTotals, error) {
	var totals []ledger.AccountTotals
	err := r.db.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Select("ledger_account_id, COALESCE(SUM(debit), 0) AS debit, COALESCE(SUM(credit), 0) AS credit").
		Where("company_id = ? AND date <= ?", companyID, asOf).
		Group("ledger_account_id").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

// DeleteByVoucher removes every entry of a voucher
func (r *GormLedgerEntryRepository) DeleteByVoucher(ctx context.Context, voucherID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.LedgerEntryModel{}, "voucher_id = ?", voucherID).Error
}

// CountByAccount counts entries referencing the account
func (r *GormLedgerEntryRepository) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Where("ledger_account_id = ?", accountID).
		Count(&count).Error
	return count, err
}

func toDomainEntries(rows []models.LedgerEntryModel) []ledger.LedgerEntry {
	entries := make([]ledger.LedgerEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, rows[i].ToDomain())
	}
	return entries
}

var _ ledger.LedgerEntryRepository = (*GormLedgerEntryRepository)(nil)
