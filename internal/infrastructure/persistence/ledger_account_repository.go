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

// GormLedgerAccountRepository implements LedgerAccountRepository using GORM
type GormLedgerAccountRepository struct {
	db *gorm.DB
}

// NewGormLedgerAccountRepository creates a new GormLedgerAccountRepository
func NewGormLedgerAccountRepository(db *gorm.DB) *GormLedgerAccountRepository {
	return &GormLedgerAccountRepository{db: db}
}

// FindByID finds an account by ID, returning nil when it does not exist
func (r *GormLedgerAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.LedgerAccount, error) {
	var m models.LedgerAccountModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByCode finds an account by its company-unique code
func (r *GormLedgerAccountRepository) FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*ledger.LedgerAccount, error) {
	var m models.LedgerAccountModel
	if err := r.db.WithContext(ctx).
		First(&m, "company_id = ? AND code = ?", companyID, code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByCompany lists a company's accounts ordered by code.
// A filter with PageSize 0 returns every account.
func (r *GormLedgerAccountRepository) FindByCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]ledger.LedgerAccount, error) {
	query := r.db.WithContext(ctx).
		Model(&models.LedgerAccountModel{}).
		Where("company_id = ?", companyID).
		Order("code ASC")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(code) LIKE LOWER(?) OR LOWER(name) LIKE LOWER(?)", pattern, pattern)
	}
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var rows []models.LedgerAccountModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	accounts := make([]ledger.LedgerAccount, 0, len(rows))
	for i := range rows {
		accounts = append(accounts, *rows[i].ToDomain())
	}
	return accounts, nil
}

// Save creates or updates an account
func (r *GormLedgerAccountRepository) Save(ctx context.Context, account *ledger.LedgerAccount) error {
	m := models.LedgerAccountModelFromDomain(account)
	return r.db.WithContext(ctx).Save(m).Error
}

// Delete removes an account. Callers must check references first.
func (r *GormLedgerAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.LedgerAccountModel{}, "id = ?", id).Error
}

var _ ledger.LedgerAccountRepository = (*GormLedgerAccountRepository)(nil)
