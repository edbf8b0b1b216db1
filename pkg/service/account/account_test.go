package account_test

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunteanu/mdbank/internal/fixtures/memuow"
	"github.com/vmunteanu/mdbank/pkg/currency"
	"github.com/vmunteanu/mdbank/pkg/domain"
	accountsvc "github.com/vmunteanu/mdbank/pkg/service/account"
)

func newService(store *memuow.Store) *accountsvc.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return accountsvc.New(memuow.NewUoW(store), currency.NewConverter(), logger)
}

func seedCatalog(store *memuow.Store) {
	store.SeedAccountType(domain.AccountType{
		TypeName:       domain.TypeStandardChecking,
		OverdraftLimit: decimal.NewFromInt(500),
	})
	store.SeedAccountType(domain.AccountType{
		TypeName:     domain.TypeStandardSavings,
		InterestRate: decimal.RequireFromString("0.02"),
	})
}

func TestOpenAccount(t *testing.T) {
	store := memuow.New()
	seedCatalog(store)
	store.SeedUser("alice")
	svc := newService(store)

	acc, err := svc.Open(context.Background(), "alice", accountsvc.OpenCommand{
		AccountTypeName: "standard_checking",
		Currency:        "usd",
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^MD[0-9A-F]{14}$`), acc.AccountNumber)
	assert.Equal(t, "USD", acc.Currency)
	assert.True(t, acc.Balance.IsZero())
	assert.Equal(t, domain.TypeStandardChecking, acc.AccountType.TypeName)
	assert.Empty(t, store.Transactions(), "no deposit, no transaction")
}

func TestOpenAccountWithInitialDeposit(t *testing.T) {
	store := memuow.New()
	seedCatalog(store)
	store.SeedUser("alice")
	svc := newService(store)

	acc, err := svc.Open(context.Background(), "alice", accountsvc.OpenCommand{
		AccountTypeName: domain.TypeStandardSavings,
		Currency:        "LEI",
		InitialDeposit:  decimal.NewFromInt(250),
	})
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(250)))

	txs := store.Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, domain.TxDeposit, txs[0].Type)
	assert.Nil(t, txs[0].FromAccountID, "deposits have an external origin")
	require.NotNil(t, txs[0].ToAccountID)
	assert.Equal(t, acc.ID, *txs[0].ToAccountID)
	assert.True(t, txs[0].Amount.Equal(decimal.NewFromInt(250)))
}

func TestOpenAccountValidation(t *testing.T) {
	store := memuow.New()
	seedCatalog(store)
	store.SeedUser("alice")
	svc := newService(store)

	_, err := svc.Open(context.Background(), "alice", accountsvc.OpenCommand{
		AccountTypeName: domain.TypeStandardChecking,
		Currency:        "GBP",
	})
	require.ErrorIs(t, err, domain.ErrCurrencyConversion)

	_, err = svc.Open(context.Background(), "alice", accountsvc.OpenCommand{
		AccountTypeName: "GOLD_PLATED",
		Currency:        "USD",
	})
	require.ErrorIs(t, err, domain.ErrAccountTypeNotFound)

	_, err = svc.Open(context.Background(), "ghost", accountsvc.OpenCommand{
		AccountTypeName: domain.TypeStandardChecking,
		Currency:        "USD",
	})
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.Open(context.Background(), "alice", accountsvc.OpenCommand{
		AccountTypeName: domain.TypeStandardChecking,
		Currency:        "USD",
		InitialDeposit:  decimal.NewFromInt(-5),
	})
	require.ErrorIs(t, err, domain.ErrInvalidTransfer)
}

func TestListAndDetails(t *testing.T) {
	store := memuow.New()
	seedCatalog(store)
	store.SeedUser("alice")
	store.SeedUser("bob")
	svc := newService(store)

	a1, err := svc.Open(context.Background(), "alice", accountsvc.OpenCommand{
		AccountTypeName: domain.TypeStandardChecking, Currency: "USD",
	})
	require.NoError(t, err)
	_, err = svc.Open(context.Background(), "alice", accountsvc.OpenCommand{
		AccountTypeName: domain.TypeStandardSavings, Currency: "EUR",
	})
	require.NoError(t, err)
	b1, err := svc.Open(context.Background(), "bob", accountsvc.OpenCommand{
		AccountTypeName: domain.TypeStandardChecking, Currency: "LEI",
	})
	require.NoError(t, err)

	accounts, err := svc.List(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, accounts, 2)

	got, err := svc.Details(context.Background(), "alice", a1.AccountNumber)
	require.NoError(t, err)
	assert.Equal(t, a1.ID, got.ID)

	_, err = svc.Details(context.Background(), "alice", b1.AccountNumber)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Details(context.Background(), "alice", "MD00000000000000")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestTransactionHistory(t *testing.T) {
	store := memuow.New()
	seedCatalog(store)
	store.SeedUser("alice")
	store.SeedUser("bob")
	svc := newService(store)

	a1, err := svc.Open(context.Background(), "alice", accountsvc.OpenCommand{
		AccountTypeName: domain.TypeStandardChecking, Currency: "USD",
		InitialDeposit: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	a2, err := svc.Open(context.Background(), "alice", accountsvc.OpenCommand{
		AccountTypeName: domain.TypeStandardSavings, Currency: "USD",
		InitialDeposit: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	b1, err := svc.Open(context.Background(), "bob", accountsvc.OpenCommand{
		AccountTypeName: domain.TypeStandardChecking, Currency: "USD",
		InitialDeposit: decimal.NewFromInt(75),
	})
	require.NoError(t, err)

	all, err := svc.Transactions(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, all, 2, "only alice's deposits")

	txs, err := svc.AccountTransactions(context.Background(), "alice", a1.AccountNumber)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, a1.AccountNumber, txs[0].ToAccountNumber)

	_, err = svc.AccountTransactions(context.Background(), "alice", b1.AccountNumber)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	txs, err = svc.AccountTransactions(context.Background(), "alice", a2.AccountNumber)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}
