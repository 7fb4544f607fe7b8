package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shopbooks/backend/internal/domain/ledger"
)

func TestToVoucherResponseRoundsAmounts(t *testing.T) {
	third := decimal.NewFromInt(100).Div(decimal.NewFromInt(3))
	v := &ledger.Voucher{
		CompanyID:       uuid.New(),
		FinancialYearID: uuid.New(),
		VoucherNo:       "JV-00001",
		Type:            ledger.VoucherTypeJournal,
		Date:            time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Status:          ledger.VoucherStatusPosted,
		Lines: []ledger.VoucherLine{
			{LedgerAccountID: uuid.New(), Debit: third},
			{LedgerAccountID: uuid.New(), Credit: third},
		},
	}

	resp := ToVoucherResponse(v)
	assert.Equal(t, "33.33", resp.Lines[0].Debit.String())
	assert.Equal(t, "33.33", resp.Lines[1].Credit.String())
	assert.Equal(t, "33.33", resp.TotalDebit.String())
	assert.Equal(t, "33.33", resp.TotalCredit.String())
}

func TestToBillRefResponseRoundsAmount(t *testing.T) {
	r := &ledger.BillReference{
		CompanyID:       uuid.New(),
		LedgerAccountID: uuid.New(),
		BillNumber:      "PI-77",
		RefType:         ledger.RefTypeNew,
		Amount:          decimal.RequireFromString("400.005"),
		Date:            time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		ReferenceType:   "PurchaseInvoice",
		ReferenceID:     uuid.New(),
	}

	resp := ToBillRefResponse(r)
	assert.Equal(t, "400.01", resp.Amount.String())
}
