package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopbooks/backend/internal/domain/ledger"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// In-memory repositories backing the service tests. They mirror the
// ordering guarantees of the real persistence layer: slices keep insertion
// order, date ordering is applied where the interface promises it.

type fakeAccountRepo struct {
	accounts map[uuid.UUID]*ledger.LedgerAccount
	order    []uuid.UUID
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*ledger.LedgerAccount)}
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.LedgerAccount, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	copied := *account
	return &copied, nil
}

func (r *fakeAccountRepo) FindByCode(_ context.Context, companyID uuid.UUID, code string) (*ledger.LedgerAccount, error) {
	for _, id := range r.order {
		a := r.accounts[id]
		if a.CompanyID == companyID && a.Code == code {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) FindByCompany(_ context.Context, companyID uuid.UUID, _ shared.Filter) ([]ledger.LedgerAccount, error) {
	result := make([]ledger.LedgerAccount, 0)
	for _, id := range r.order {
		a := r.accounts[id]
		if a.CompanyID == companyID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (r *fakeAccountRepo) Save(_ context.Context, account *ledger.LedgerAccount) error {
	if _, ok := r.accounts[account.ID]; !ok {
		r.order = append(r.order, account.ID)
	}
	copied := *account
	r.accounts[account.ID] = &copied
	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.accounts, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeVoucherRepo struct {
	vouchers map[uuid.UUID]*ledger.Voucher
	order    []uuid.UUID
}

func newFakeVoucherRepo() *fakeVoucherRepo {
	return &fakeVoucherRepo{vouchers: make(map[uuid.UUID]*ledger.Voucher)}
}

func (r *fakeVoucherRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.Voucher, error) {
	voucher, ok := r.vouchers[id]
	if !ok {
		return nil, nil
	}
	copied := *voucher
	return &copied, nil
}

func (r *fakeVoucherRepo) FindAll(_ context.Context, companyID, financialYearID uuid.UUID, _ shared.Filter) ([]ledger.Voucher, error) {
	result := make([]ledger.Voucher, 0)
	for _, id := range r.order {
		v := r.vouchers[id]
		if v.CompanyID == companyID && v.FinancialYearID == financialYearID {
			result = append(result, *v)
		}
	}
	return result, nil
}

func (r *fakeVoucherRepo) MaxSequence(_ context.Context, companyID, financialYearID uuid.UUID, voucherType ledger.VoucherType) (int, error) {
	family := voucherType.PrefixFamily()
	max := 0
	for _, v := range r.vouchers {
		if v.CompanyID != companyID || v.FinancialYearID != financialYearID {
			continue
		}
		for _, t := range family {
			if v.Type == t && v.Sequence > max {
				max = v.Sequence
			}
		}
	}
	return max, nil
}

func (r *fakeVoucherRepo) Save(_ context.Context, voucher *ledger.Voucher) error {
	if _, ok := r.vouchers[voucher.ID]; !ok {
		r.order = append(r.order, voucher.ID)
	}
	copied := *voucher
	r.vouchers[voucher.ID] = &copied
	return nil
}

func (r *fakeVoucherRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.vouchers, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeVoucherRepo) CountByAccount(_ context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	for _, v := range r.vouchers {
		for _, l := range v.Lines {
			if l.LedgerAccountID == accountID {
				count++
				break
			}
		}
	}
	return count, nil
}

type fakeEntryRepo struct {
	entries []ledger.LedgerEntry
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: make([]ledger.LedgerEntry, 0)}
}

func (r *fakeEntryRepo) SaveAll(_ context.Context, entries []ledger.LedgerEntry) error {
	r.entries = append(r.entries, entries...)
	return nil
}

func (r *fakeEntryRepo) FindByVoucher(_ context.Context, voucherID uuid.UUID) ([]ledger.LedgerEntry, error) {
	result := make([]ledger.LedgerEntry, 0)
	for _, e := range r.entries {
		if e.VoucherID == voucherID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *fakeEntryRepo) FindByAccount(_ context.Context, accountID, financialYearID uuid.UUID, from, to time.Time) ([]ledger.LedgerEntry, error) {
	result := make([]ledger.LedgerEntry, 0)
	for _, e := range r.entries {
		if e.LedgerAccountID != accountID || e.FinancialYearID != financialYearID {
			continue
		}
		if e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		result = append(result, e)
	}
	// insertion order already matches (date, created_at) in these tests
	return result, nil
}

func (r *fakeEntryRepo) TotalsByAccount(_ context.Context, companyID uuid.UUID, asOf time.Time) ([]ledger.AccountTotals, error) {
	totals := make(map[uuid.UUID]*ledger.AccountTotals)
	order := make([]uuid.UUID, 0)
	for _, e := range r.entries {
		if e.CompanyID != companyID || e.Date.After(asOf) {
			continue
		}
		t, ok := totals[e.LedgerAccountID]
		if !ok {
			t = &ledger.AccountTotals{
				LedgerAccountID: e.LedgerAccountID,
				Debit:           decimal.Zero,
				Credit:          decimal.Zero,
			}
			totals[e.LedgerAccountID] = t
			order = append(order, e.LedgerAccountID)
		}
		t.Debit = t.Debit.Add(e.Debit)
		t.Credit = t.Credit.Add(e.Credit)
	}
	result := make([]ledger.AccountTotals, 0, len(order))
	for _, id := range order {
		result = append(result, *totals[id])
	}
	return result, nil
}

func (r *fakeEntryRepo) DeleteByVoucher(_ context.Context, voucherID uuid.UUID) error {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.VoucherID != voucherID {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}

func (r *fakeEntryRepo) CountByAccount(_ context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	for _, e := range r.entries {
		if e.LedgerAccountID == accountID {
			count++
		}
	}
	return count, nil
}

type fakeBillRefRepo struct {
	refs []ledger.BillReference
}

func newFakeBillRefRepo() *fakeBillRefRepo {
	return &fakeBillRefRepo{refs: make([]ledger.BillReference, 0)}
}

func (r *fakeBillRefRepo) Save(_ context.Context, ref *ledger.BillReference) error {
	r.refs = append(r.refs, *ref)
	return nil
}

func (r *fakeBillRefRepo) FindByAccount(_ context.Context, companyID, ledgerAccountID uuid.UUID) ([]ledger.BillReference, error) {
	result := make([]ledger.BillReference, 0)
	for _, ref := range r.refs {
		if ref.CompanyID == companyID && ref.LedgerAccountID == ledgerAccountID {
			result = append(result, ref)
		}
	}
	return result, nil
}

func (r *fakeBillRefRepo) DeleteNewRefBySource(_ context.Context, referenceType string, referenceID uuid.UUID) error {
	kept := r.refs[:0]
	for _, ref := range r.refs {
		if ref.RefType == ledger.RefTypeNew && ref.ReferenceType == referenceType && ref.ReferenceID == referenceID {
			continue
		}
		kept = append(kept, ref)
	}
	r.refs = kept
	return nil
}

func (r *fakeBillRefRepo) DeleteBySource(_ context.Context, referenceType string, referenceID uuid.UUID) error {
	kept := r.refs[:0]
	for _, ref := range r.refs {
		if ref.ReferenceType == referenceType && ref.ReferenceID == referenceID {
			continue
		}
		kept = append(kept, ref)
	}
	r.refs = kept
	return nil
}

func (r *fakeBillRefRepo) CountByAccount(_ context.Context, ledgerAccountID uuid.UUID) (int64, error) {
	var count int64
	for _, ref := range r.refs {
		if ref.LedgerAccountID == ledgerAccountID {
			count++
		}
	}
	return count, nil
}

var (
	_ ledger.LedgerAccountRepository = (*fakeAccountRepo)(nil)
	_ ledger.VoucherRepository       = (*fakeVoucherRepo)(nil)
	_ ledger.LedgerEntryRepository   = (*fakeEntryRepo)(nil)
	_ ledger.BillReferenceRepository = (*fakeBillRefRepo)(nil)
)

// testFixture wires every ledger service over the in-memory repositories
type testFixture struct {
	accounts   *fakeAccountRepo
	vouchers   *fakeVoucherRepo
	entries    *fakeEntryRepo
	billRefs   *fakeBillRefRepo
	posting    *PostingService
	reports    *ReportService
	settlement *SettlementService
}

func newTestFixture() *testFixture {
	accounts := newFakeAccountRepo()
	vouchers := newFakeVoucherRepo()
	entries := newFakeEntryRepo()
	billRefs := newFakeBillRefRepo()
	scope := NewNoOpTransactionScope(accounts, vouchers, entries, billRefs)
	return &testFixture{
		accounts:   accounts,
		vouchers:   vouchers,
		entries:    entries,
		billRefs:   billRefs,
		posting:    NewPostingService(scope, accounts, vouchers, entries, billRefs),
		reports:    NewReportService(accounts, entries),
		settlement: NewSettlementService(scope, billRefs),
	}
}
