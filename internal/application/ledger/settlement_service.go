package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopbooks/backend/internal/domain/ledger"
)

// SettlementService maintains bill references: NEW_REF rows opened by
// invoices and AGST_REF rows recorded by the documents that settle them.
type SettlementService struct {
	scope       TransactionScope
	billRefRepo ledger.BillReferenceRepository
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(scope TransactionScope, billRefRepo ledger.BillReferenceRepository) *SettlementService {
	return &SettlementService{
		scope:       scope,
		billRefRepo: billRefRepo,
	}
}

// CreateNewRef opens a bill for an invoice. Re-saving the same source
// document first removes its stale NEW_REF, so the operation is idempotent;
// AGST_REF rows recorded against the bill are left untouched.
func (s *SettlementService) CreateNewRef(ctx context.Context, req BillRefRequest) (*BillRefResponse, error) {
	ref, err := ledger.NewBillReference(req.CompanyID, req.LedgerAccountID, req.BillNumber,
		ledger.RefTypeNew, req.Amount, req.Date, req.ReferenceType, req.ReferenceID)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.BillRefRepo().DeleteNewRefBySource(ctx, req.ReferenceType, req.ReferenceID); err != nil {
			return err
		}
		return repos.BillRefRepo().Save(ctx, ref)
	})
	if err != nil {
		return nil, err
	}

	response := ToBillRefResponse(ref)
	return &response, nil
}

// CreateAgstRef records a settlement against an open bill. One row per
// settling document; rows are never updated.
func (s *SettlementService) CreateAgstRef(ctx context.Context, req BillRefRequest) (*BillRefResponse, error) {
	ref, err := ledger.NewBillReference(req.CompanyID, req.LedgerAccountID, req.BillNumber,
		ledger.RefTypeAgainst, req.Amount, req.Date, req.ReferenceType, req.ReferenceID)
	if err != nil {
		return nil, err
	}
	if err := s.billRefRepo.Save(ctx, ref); err != nil {
		return nil, err
	}
	response := ToBillRefResponse(ref)
	return &response, nil
}

// DeleteRefsBySource removes every reference row, both types, recorded for
// a source document. Called when the document itself is deleted.
func (s *SettlementService) DeleteRefsBySource(ctx context.Context, referenceType string, referenceID uuid.UUID) error {
	return s.billRefRepo.DeleteBySource(ctx, referenceType, referenceID)
}

// OutstandingBills derives the open bills for an account
func (s *SettlementService) OutstandingBills(ctx context.Context, companyID, ledgerAccountID uuid.UUID) ([]ledger.OutstandingBill, error) {
	refs, err := s.billRefRepo.FindByAccount(ctx, companyID, ledgerAccountID)
	if err != nil {
		return nil, err
	}
	return ledger.BuildOutstandingBills(refs), nil
}

// BillHistory returns every reference row for an account in date order,
// settled bills included.
func (s *SettlementService) BillHistory(ctx context.Context, companyID, ledgerAccountID uuid.UUID) ([]BillRefResponse, error) {
	refs, err := s.billRefRepo.FindByAccount(ctx, companyID, ledgerAccountID)
	if err != nil {
		return nil, err
	}
	sorted := ledger.SortRefsByDate(refs)
	responses := make([]BillRefResponse, 0, len(sorted))
	for i := range sorted {
		responses = append(responses, ToBillRefResponse(&sorted[i]))
	}
	return responses, nil
}
