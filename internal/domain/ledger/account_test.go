package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLedgerAccount(t *testing.T) {
	companyID := uuid.New()

	t.Run("creates account with empty opening balances", func(t *testing.T) {
		account, err := NewLedgerAccount(companyID, "1001", "Cash in hand", AccountGroupAsset)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, account.ID)
		assert.Equal(t, "1001", account.Code)
		assert.Equal(t, AccountGroupAsset, account.Group)
		assert.Empty(t, account.OpeningBalances)
	})

	t.Run("rejects blank code", func(t *testing.T) {
		_, err := NewLedgerAccount(companyID, "", "Cash", AccountGroupAsset)
		assert.Error(t, err)
	})

	t.Run("rejects invalid group", func(t *testing.T) {
		_, err := NewLedgerAccount(companyID, "1001", "Cash", AccountGroup("CONTRA"))
		assert.Error(t, err)
	})
}

func TestOpeningBalanceFor(t *testing.T) {
	companyID := uuid.New()
	fy1 := uuid.New()
	fy2 := uuid.New()

	account, err := NewLedgerAccount(companyID, "2001", "Trade creditors", AccountGroupLiability)
	require.NoError(t, err)
	require.NoError(t, account.SetOpeningBalance(fy1, decimal.NewFromFloat(850.00), false))

	t.Run("returns the stored balance for a matching year", func(t *testing.T) {
		ob := account.OpeningBalanceFor(fy1)
		assert.True(t, decimal.NewFromFloat(850.00).Equal(ob.Amount))
		assert.False(t, ob.IsDebit)
		assert.True(t, decimal.NewFromFloat(-850.00).Equal(ob.Signed()))
	})

	t.Run("defaults to zero debit for an unknown year", func(t *testing.T) {
		ob := account.OpeningBalanceFor(fy2)
		assert.True(t, ob.Amount.IsZero())
		assert.True(t, ob.IsDebit)
	})
}

func TestSetOpeningBalance(t *testing.T) {
	companyID := uuid.New()
	fy := uuid.New()

	account, err := NewLedgerAccount(companyID, "1002", "Bank", AccountGroupAsset)
	require.NoError(t, err)

	t.Run("replaces an existing balance for the same year", func(t *testing.T) {
		require.NoError(t, account.SetOpeningBalance(fy, decimal.NewFromFloat(100.00), true))
		require.NoError(t, account.SetOpeningBalance(fy, decimal.NewFromFloat(250.00), false))

		require.Len(t, account.OpeningBalances, 1)
		ob := account.OpeningBalanceFor(fy)
		assert.True(t, decimal.NewFromFloat(250.00).Equal(ob.Amount))
		assert.False(t, ob.IsDebit)
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		err := account.SetOpeningBalance(fy, decimal.NewFromFloat(-1.00), true)
		assert.Error(t, err)
	})

	t.Run("rejects missing financial year", func(t *testing.T) {
		err := account.SetOpeningBalance(uuid.Nil, decimal.NewFromFloat(10.00), true)
		assert.Error(t, err)
	})
}
