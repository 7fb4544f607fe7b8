package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopbooks/backend/internal/domain/ledger"
	"github.com/shopbooks/backend/internal/infrastructure/persistence/models"
)

// GormBillReferenceRepository implements BillReferenceRepository using GORM
type GormBillReferenceRepository struct {
	db *gorm.DB
}

// NewGormBillReferenceRepository creates a new GormBillReferenceRepository
func NewGormBillReferenceRepository(db *gorm.DB) *GormBillReferenceRepository {
	return &GormBillReferenceRepository{db: db}
}

// Save persists a bill reference row
func (r *GormBillReferenceRepository) Save(ctx context.Context, ref *ledger.BillReference) error {
	m := models.BillReferenceModelFromDomain(ref)
	return r.db.WithContext(ctx).Save(m).Error
}

// FindByAccount lists all rows for an account in insertion order
func (r *GormBillReferenceRepository) FindByAccount(ctx context.Context, companyID, ledgerAccountID uuid.UUID) ([]ledger.BillReference, error) {
	var rows []models.BillReferenceModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND ledger_account_id = ?", companyID, ledgerAccountID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	refs := make([]ledger.BillReference, 0, len(rows))
	for i := range rows {
		refs = append(refs, rows[i].ToDomain())
	}
	return refs, nil
}

// DeleteNewRefBySource removes the NEW_REF row (if any) tied to a source
// document, leaving AGST_REF rows in place.
func (r *GormBillReferenceRepository) DeleteNewRefBySource(ctx context.Context, referenceType string, referenceID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.BillReferenceModel{},
			"reference_type = ? AND reference_id = ? AND ref_type = ?",
			referenceType, referenceID, ledger.RefTypeNew).Error
}

// DeleteBySource removes every row tied to a source document
func (r *GormBillReferenceRepository) DeleteBySource(ctx context.Context, referenceType string, referenceID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.BillReferenceModel{},
			"reference_type = ? AND reference_id = ?", referenceType, referenceID).Error
}

// CountByAccount counts rows referencing the account
func (r *GormBillReferenceRepository) CountByAccount(ctx context.Context, ledgerAccountID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.BillReferenceModel{}).
		Where("ledger_account_id = ?", ledgerAccountID).
		Count(&count).Error
	return count, err
}

var _ ledger.BillReferenceRepository = (*GormBillReferenceRepository)(nil)
