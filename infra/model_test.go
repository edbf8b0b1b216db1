package infra

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/vmunteanu/mdbank/pkg/domain"
)

func TestTransactionToDomainResolvesLegNumbers(t *testing.T) {
	fromID, toID := uint(1), uint(2)
	model := Transaction{
		ID:            7,
		FromAccountID: &fromID,
		FromAccount:   &Account{ID: fromID, AccountNumber: "MD1111111111111111"},
		ToAccountID:   &toID,
		ToAccount:     &Account{ID: toID, AccountNumber: "MD2222222222222222"},
		Amount:        decimal.NewFromInt(10),
		Currency:      "USD",
		Type:          domain.TxOwnAccountTransfer,
	}

	tx := model.toDomain()
	assert.Equal(t, "MD1111111111111111", tx.FromAccountNumber)
	assert.Equal(t, "MD2222222222222222", tx.ToAccountNumber)

	// An external leg stays unresolved.
	model.ToAccount = nil
	model.ToAccountID = nil
	tx = model.toDomain()
	assert.Empty(t, tx.ToAccountNumber)
	assert.Nil(t, tx.ToAccountID)
}

func TestAccountModelKeepsVersion(t *testing.T) {
	a := &domain.Account{
		ID:            3,
		AccountNumber: "MD1111111111111111",
		Balance:       decimal.RequireFromString("12.34"),
		Currency:      "LEI",
		Version:       5,
	}
	model := accountModel(a)
	assert.EqualValues(t, 5, model.Version)
	assert.True(t, model.Balance.Equal(a.Balance))

	model.AccountType = AccountType{TypeName: domain.TypeStandardChecking}
	back := model.toDomain()
	assert.EqualValues(t, 5, back.Version)
	assert.Equal(t, domain.TypeStandardChecking, back.AccountType.TypeName)
}
