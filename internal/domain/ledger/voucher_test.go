package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopbooks/backend/internal/domain/shared"
)

func domainErrorCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected a domain error, got %v", err)
	return domainErr.Code
}

func TestVoucherType(t *testing.T) {
	t.Run("IsValid returns true for valid types", func(t *testing.T) {
		validTypes := []VoucherType{
			VoucherTypeReceipt,
			VoucherTypePayment,
			VoucherTypeJournal,
			VoucherTypeChequePayment,
			VoucherTypeChequeReceipt,
			VoucherTypeOpening,
		}
		for _, vt := range validTypes {
			assert.True(t, vt.IsValid(), "Expected %s to be valid", vt)
		}
	})

	t.Run("IsValid returns false for invalid type", func(t *testing.T) {
		assert.False(t, VoucherType("INVALID").IsValid())
	})

	t.Run("NumberPrefix maps each type", func(t *testing.T) {
		assert.Equal(t, "RV", VoucherTypeReceipt.NumberPrefix())
		assert.Equal(t, "PV", VoucherTypePayment.NumberPrefix())
		assert.Equal(t, "JV", VoucherTypeJournal.NumberPrefix())
		assert.Equal(t, "CH", VoucherTypeChequePayment.NumberPrefix())
		assert.Equal(t, "CH", VoucherTypeChequeReceipt.NumberPrefix())
		assert.Equal(t, "OP", VoucherTypeOpening.NumberPrefix())
	})
}

func TestFormatVoucherNumber(t *testing.T) {
	t.Run("pads sequence to five digits", func(t *testing.T) {
		assert.Equal(t, "RV-00001", FormatVoucherNumber(VoucherTypeReceipt, 1))
		assert.Equal(t, "JV-00042", FormatVoucherNumber(VoucherTypeJournal, 42))
	})

	t.Run("does not truncate sequences beyond five digits", func(t *testing.T) {
		assert.Equal(t, "PV-123456", FormatVoucherNumber(VoucherTypePayment, 123456))
	})
}

func TestValidateLines(t *testing.T) {
	accountA := uuid.New()
	accountB := uuid.New()

	t.Run("accepts balanced lines", func(t *testing.T) {
		lines := []VoucherLine{
			{LedgerAccountID: accountA, Debit: decimal.NewFromFloat(100.00), Credit: decimal.Zero},
			{LedgerAccountID: accountB, Debit: decimal.Zero, Credit: decimal.NewFromFloat(100.00)},
		}
		assert.NoError(t, ValidateLines(lines))
	})

	t.Run("accepts imbalance within tolerance", func(t *testing.T) {
		lines := []VoucherLine{
			{LedgerAccountID: accountA, Debit: decimal.NewFromFloat(100.005), Credit: decimal.Zero},
			{LedgerAccountID: accountB, Debit: decimal.Zero, Credit: decimal.NewFromFloat(100.00)},
		}
		assert.NoError(t, ValidateLines(lines))
	})

	t.Run("rejects unbalanced lines", func(t *testing.T) {
		lines := []VoucherLine{
			{LedgerAccountID: accountA, Debit: decimal.NewFromFloat(100.00), Credit: decimal.Zero},
			{LedgerAccountID: accountB, Debit: decimal.Zero, Credit: decimal.NewFromFloat(99.50)},
		}
		err := ValidateLines(lines)
		require.Error(t, err)
		assert.Equal(t, "UNBALANCED_VOUCHER", domainErrorCode(t, err))
	})

	t.Run("rejects empty line set", func(t *testing.T) {
		assert.Error(t, ValidateLines(nil))
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		lines := []VoucherLine{
			{LedgerAccountID: accountA, Debit: decimal.NewFromFloat(-10), Credit: decimal.Zero},
			{LedgerAccountID: accountB, Debit: decimal.Zero, Credit: decimal.NewFromFloat(-10)},
		}
		assert.Error(t, ValidateLines(lines))
	})

	t.Run("rejects line without an account", func(t *testing.T) {
		lines := []VoucherLine{
			{LedgerAccountID: uuid.Nil, Debit: decimal.NewFromFloat(10), Credit: decimal.Zero},
			{LedgerAccountID: accountB, Debit: decimal.Zero, Credit: decimal.NewFromFloat(10)},
		}
		assert.Error(t, ValidateLines(lines))
	})
}

func TestNewVoucher(t *testing.T) {
	companyID := uuid.New()
	fyID := uuid.New()
	accountA := uuid.New()
	accountB := uuid.New()
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	balancedLines := func() []VoucherLine {
		return []VoucherLine{
			{LedgerAccountID: accountA, Debit: decimal.NewFromFloat(250.00), Credit: decimal.Zero, Narration: "Cash"},
			{LedgerAccountID: accountB, Debit: decimal.Zero, Credit: decimal.NewFromFloat(250.00), Narration: "Sales"},
		}
	}

	t.Run("creates posted voucher with formatted number", func(t *testing.T) {
		v, err := NewVoucher(companyID, fyID, VoucherTypeReceipt, 7, date, balancedLines(), "cash sale")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, v.ID)
		assert.Equal(t, "RV-00007", v.VoucherNo)
		assert.Equal(t, 7, v.Sequence)
		assert.Equal(t, VoucherStatusPosted, v.Status)
		assert.True(t, decimal.NewFromFloat(250.00).Equal(v.TotalDebit()))
		assert.True(t, decimal.NewFromFloat(250.00).Equal(v.TotalCredit()))
	})

	t.Run("rejects unbalanced lines", func(t *testing.T) {
		lines := balancedLines()
		lines[1].Credit = decimal.NewFromFloat(200.00)
		_, err := NewVoucher(companyID, fyID, VoucherTypeReceipt, 1, date, lines, "")
		require.Error(t, err)
		assert.Equal(t, "UNBALANCED_VOUCHER", domainErrorCode(t, err))
	})

	t.Run("rejects zero sequence", func(t *testing.T) {
		_, err := NewVoucher(companyID, fyID, VoucherTypeReceipt, 0, date, balancedLines(), "")
		assert.Error(t, err)
	})

	t.Run("rejects missing company", func(t *testing.T) {
		_, err := NewVoucher(uuid.Nil, fyID, VoucherTypeReceipt, 1, date, balancedLines(), "")
		assert.Error(t, err)
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		_, err := NewVoucher(companyID, fyID, VoucherType("CONTRA"), 1, date, balancedLines(), "")
		assert.Error(t, err)
	})
}

func TestEntriesFromVoucher(t *testing.T) {
	companyID := uuid.New()
	fyID := uuid.New()
	accountA := uuid.New()
	accountB := uuid.New()
	date := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)

	lines := []VoucherLine{
		{LedgerAccountID: accountA, Debit: decimal.NewFromFloat(90.00), Credit: decimal.Zero, Narration: "Bank"},
		{LedgerAccountID: accountB, Debit: decimal.Zero, Credit: decimal.NewFromFloat(90.00), Narration: "Customer"},
	}
	v, err := NewVoucher(companyID, fyID, VoucherTypePayment, 3, date, lines, "supplier payment")
	require.NoError(t, err)

	entries := EntriesFromVoucher(v)
	require.Len(t, entries, 2)

	assert.Equal(t, v.ID, entries[0].VoucherID)
	assert.Equal(t, companyID, entries[0].CompanyID)
	assert.Equal(t, fyID, entries[0].FinancialYearID)
	assert.Equal(t, date, entries[0].Date)
	assert.Equal(t, 1, entries[0].LineNo)
	assert.Equal(t, 2, entries[1].LineNo)
	assert.True(t, decimal.NewFromFloat(90.00).Equal(entries[0].Signed()))
	assert.True(t, decimal.NewFromFloat(-90.00).Equal(entries[1].Signed()))
}
