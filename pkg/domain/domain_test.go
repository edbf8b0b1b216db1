package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction_RequiresAnAccountLeg(t *testing.T) {
	_, err := NewTransaction(nil, nil, decimal.NewFromInt(1), "LEI", TxDeposit, "")
	assert.Error(t, err)
}

func TestNewTransaction_RejectsNegativeAmount(t *testing.T) {
	acct := &Account{ID: 1, AccountNumber: "MD01"}
	_, err := NewTransaction(acct, nil, decimal.NewFromInt(-5), "LEI", TxIntrabankTransferSent, "")
	assert.Error(t, err)
}

func TestNewTransaction_ResolvesLegs(t *testing.T) {
	src := &Account{ID: 7, AccountNumber: "MD07"}
	dst := &Account{ID: 9, AccountNumber: "MD09"}

	tx, err := NewTransaction(src, dst, decimal.NewFromInt(200), "LEI", TxOwnAccountTransfer, "rent")
	require.NoError(t, err)

	require.NotNil(t, tx.FromAccountID)
	require.NotNil(t, tx.ToAccountID)
	assert.Equal(t, uint(7), *tx.FromAccountID)
	assert.Equal(t, uint(9), *tx.ToAccountID)
	assert.Equal(t, "MD07", tx.FromAccountNumber)
	assert.Equal(t, "MD09", tx.ToAccountNumber)
	assert.False(t, tx.Timestamp.IsZero())
}

func TestNewTransaction_ExternalLeg(t *testing.T) {
	src := &Account{ID: 7, AccountNumber: "MD07"}

	tx, err := NewTransaction(src, nil, decimal.NewFromInt(50), "EUR", TxDomesticBankTransfer, "")
	require.NoError(t, err)
	assert.Nil(t, tx.ToAccountID)
	assert.Empty(t, tx.ToAccountNumber)
}

func TestAccount_DebitCredit(t *testing.T) {
	a := &Account{Balance: decimal.NewFromInt(1000)}
	a.Debit(decimal.NewFromInt(200))
	a.Credit(decimal.NewFromInt(50))
	assert.True(t, a.Balance.Equal(decimal.NewFromInt(850)))
}

func TestAccount_HasFundsFor(t *testing.T) {
	a := &Account{Balance: decimal.NewFromInt(100)}
	assert.True(t, a.HasFundsFor(decimal.NewFromInt(100)))
	assert.False(t, a.HasFundsFor(decimal.RequireFromString("100.01")))
}

func TestAccount_OwnedBy(t *testing.T) {
	a := &Account{UserID: 3}
	assert.True(t, a.OwnedBy(3))
	assert.False(t, a.OwnedBy(4))
}
