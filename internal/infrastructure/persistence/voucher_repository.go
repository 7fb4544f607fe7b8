package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopbooks/backend/internal/domain/ledger"
	"github.com/shopbooks/backend/internal/domain/shared"
	"github.com/shopbooks/backend/internal/infrastructure/persistence/models"
)

// GormVoucherRepository implements VoucherRepository using GORM.
// Voucher lines are not stored on the header; they are rebuilt from the
// voucher's ledger entries ordered by line number.
type GormVoucherRepository struct {
	db *gorm.DB
}

// NewGormVoucherRepository creates a new GormVoucherRepository
func NewGormVoucherRepository(db *gorm.DB) *GormVoucherRepository {
	return &GormVoucherRepository{db: db}
}

// FindByID finds a voucher with its lines, returning nil when it does not exist
func (r *GormVoucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Voucher, error) {
	var m models.VoucherModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	voucher := m.ToDomain()
	lines, err := r.linesByVoucher(ctx, []uuid.UUID{voucher.ID})
	if err != nil {
		return nil, err
	}
	voucher.Lines = lines[voucher.ID]
	return voucher, nil
}

// FindAll lists vouchers for a company and financial year, newest first.
// A filter with PageSize 0 returns everything.
func (r *GormVoucherRepository) FindAll(ctx context.Context, companyID, financialYearID uuid.UUID, filter shared.Filter) ([]ledger.Voucher, error) {
	query := r.db.WithContext(ctx).
		Model(&models.VoucherModel{}).
		Where("company_id = ? AND financial_year_id = ?", companyID, financialYearID).
		Order("date DESC, sequence DESC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var rows []models.VoucherModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []ledger.Voucher{}, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ID)
	}
	lines, err := r.linesByVoucher(ctx, ids)
	if err != nil {
		return nil, err
	}

	vouchers := make([]ledger.Voucher, 0, len(rows))
	for i := range rows {
		v := rows[i].ToDomain()
		v.Lines = lines[v.ID]
		vouchers = append(vouchers, *v)
	}
	return vouchers, nil
}

// MaxSequence returns the highest allocated sequence for the voucher type's
// number series, or 0 when none exist. Cheque payments and receipts share
// one series so voucher numbers stay unique per company and year.
func (r *GormVoucherRepository) MaxSequence(ctx context.Context, companyID, financialYearID uuid.UUID, voucherType ledger.VoucherType) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&models.VoucherModel{}).
		Select("MAX(sequence)").
		Where("company_id = ? AND financial_year_id = ? AND type IN ?",
			companyID, financialYearID, voucherType.PrefixFamily()).
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// Save persists the voucher header
func (r *GormVoucherRepository) Save(ctx context.Context, voucher *ledger.Voucher) error {
	m := models.VoucherModelFromDomain(voucher)
	return r.db.WithContext(ctx).Save(m).Error
}

// Delete removes the voucher header
func (r *GormVoucherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.VoucherModel{}, "id = ?", id).Error
}

// CountByAccount counts vouchers having a line against the account
func (r *GormVoucherRepository) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Where("ledger_account_id = ?", accountID).
		Distinct("voucher_id").
		Count(&count).Error
	return count, err
}

// linesByVoucher loads the ledger entries of the given vouchers and rebuilds
// voucher lines keyed by voucher ID, ordered by line number.
func (r *GormVoucherRepository) linesByVoucher(ctx context.Context, voucherIDs []uuid.UUID) (map[uuid.UUID][]ledger.VoucherLine, error) {
	var entries []models.LedgerEntryModel
	if err := r.db.WithContext(ctx).
		Where("voucher_id IN ?", voucherIDs).
		Order("line_no ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	lines := make(map[uuid.UUID][]ledger.VoucherLine, len(voucherIDs))
	for i := range entries {
		e := &entries[i]
		lines[e.VoucherID] = append(lines[e.VoucherID], ledger.VoucherLine{
			LedgerAccountID: e.LedgerAccountID,
			Debit:           e.Debit,
			Credit:          e.Credit,
			Narration:       e.Narration,
		})
	}
	return lines, nil
}

var _ ledger.VoucherRepository = (*GormVoucherRepository)(nil)
