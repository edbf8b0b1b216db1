package demo

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunteanu/mdbank/pkg/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newStore() *Store {
	return NewStore(dec("500"), dec("0.02"))
}

func TestCheckingOverdraftFloors(t *testing.T) {
	s := newStore()

	std, err := s.Create("MDDEMO0000000001", StandardChecking)
	require.NoError(t, err)
	std.Deposit(dec("100"))

	// Standard checking may go down to -500.
	require.NoError(t, std.Withdraw(dec("600")))
	assert.True(t, std.Balance().Equal(dec("-500")))
	err = std.Withdraw(dec("0.01"))
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.True(t, std.Balance().Equal(dec("-500")), "failed withdrawal changes nothing")

	// Premium checking doubles the facility.
	prem, err := s.Create("MDDEMO0000000002", PremiumChecking)
	require.NoError(t, err)
	prem.Deposit(dec("100"))
	require.NoError(t, prem.Withdraw(dec("1100")))
	assert.True(t, prem.Balance().Equal(dec("-1000")))
	require.ErrorIs(t, prem.Withdraw(dec("0.01")), domain.ErrInsufficientFunds)
}

func TestSavingsWithdrawPolicies(t *testing.T) {
	s := newStore()

	std, err := s.Create("MDDEMO0000000003", StandardSavings)
	require.NoError(t, err)
	std.Deposit(dec("100"))

	// Standard savings never dips below zero.
	require.ErrorIs(t, std.Withdraw(dec("100.01")), domain.ErrInsufficientFunds)
	require.NoError(t, std.Withdraw(dec("100")))
	assert.True(t, std.Balance().IsZero())

	// Premium savings allows going negative but charges a 1% fee.
	prem, err := s.Create("MDDEMO0000000004", PremiumSavings)
	require.NoError(t, err)
	prem.Deposit(dec("100"))
	require.NoError(t, prem.Withdraw(dec("200")))
	assert.True(t, prem.Balance().Equal(dec("-102")), "200 withdrawn plus 2 fee")
}

func TestInterest(t *testing.T) {
	s := newStore()

	std, _ := s.Create("MDDEMO0000000005", StandardSavings)
	std.Deposit(dec("1000"))
	std.ApplyInterest()
	assert.True(t, std.Balance().Equal(dec("1020")))

	prem, _ := s.Create("MDDEMO0000000006", PremiumSavings)
	prem.Deposit(dec("1000"))
	prem.ApplyInterest()
	assert.True(t, prem.Balance().Equal(dec("1050")), "premium savings uses the fixed 5% rate")

	chk, _ := s.Create("MDDEMO0000000007", StandardChecking)
	chk.Deposit(dec("1000"))
	chk.ApplyInterest()
	assert.True(t, chk.Balance().Equal(dec("1000")), "checking earns no interest")
}

func TestCloneStartsFreshHistory(t *testing.T) {
	s := newStore()

	orig, _ := s.Create("MDDEMO0000000008", StandardChecking)
	orig.Deposit(dec("300"))

	clone, err := s.CloneAccount("MDDEMO0000000008", "MDDEMO0000000009")
	require.NoError(t, err)
	assert.Equal(t, "MDDEMO0000000009", clone.Number())
	assert.True(t, clone.Balance().Equal(dec("300")))
	assert.Empty(t, clone.History())

	// The two diverge after cloning.
	require.NoError(t, clone.Withdraw(dec("100")))
	assert.True(t, orig.Balance().Equal(dec("300")))

	_, err = s.CloneAccount("MDDEMO0000000008", "MDDEMO0000000009")
	require.Error(t, err, "clone target number must be free")
}

func TestInsuranceDecoration(t *testing.T) {
	s := newStore()

	_, err := s.Create("MDDEMO0000000010", StandardSavings)
	require.NoError(t, err)
	wrapped, err := s.Decorate("MDDEMO0000000010", func(l Ledger) Ledger {
		return &Insurance{Inner: l, Benefit: dec("10")}
	})
	require.NoError(t, err)

	wrapped.Deposit(dec("1000"))
	wrapped.ApplyInterest()
	// 1000 + 2% interest + 10 benefit.
	assert.True(t, wrapped.Balance().Equal(dec("1030")))

	// The store hands out the decorated ledger from now on.
	again, err := s.Get("MDDEMO0000000010")
	require.NoError(t, err)
	again.ApplyInterest()
	assert.True(t, again.Balance().Equal(dec("1060.6")))
}

func TestPremiumBonusDecoration(t *testing.T) {
	s := newStore()

	_, err := s.Create("MDDEMO0000000011", StandardChecking)
	require.NoError(t, err)
	wrapped, err := s.Decorate("MDDEMO0000000011", func(l Ledger) Ledger {
		return &PremiumBonus{Inner: l}
	})
	require.NoError(t, err)

	wrapped.Deposit(dec("100"))
	assert.True(t, wrapped.Balance().Equal(dec("105")))

	require.NoError(t, wrapped.Withdraw(dec("105")))
	assert.True(t, wrapped.Balance().IsZero())
}

func TestStoreCreateValidation(t *testing.T) {
	s := newStore()

	_, err := s.Create("MDDEMO0000000012", Category("GOLD"))
	require.ErrorIs(t, err, domain.ErrAccountTypeNotFound)

	_, err = s.Create("MDDEMO0000000013", StandardChecking)
	require.NoError(t, err)
	_, err = s.Create("MDDEMO0000000013", StandardChecking)
	require.Error(t, err, "numbers are unique within the store")

	_, err = s.Get("MDDEMO0000000099")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}
