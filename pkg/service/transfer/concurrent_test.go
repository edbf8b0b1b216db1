package transfer

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunteanu/mdbank/internal/fixtures/memuow"
	"github.com/vmunteanu/mdbank/pkg/domain"
)

func TestConcurrentTransfersNeverOverdraw(t *testing.T) {
	store := memuow.New()
	user := store.SeedUser("alice")
	src := seedAccount(store, user.ID, "MD1111111111111111", "USD", "100.00")
	dst := seedAccount(store, user.ID, "MD2222222222222222", "USD", "0.00")
	svc := newTestService(t, store)

	// Two transfers of 70 from a balance of 100: whichever unit of work
	// commits second must observe the first debit and fail on funds.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.BetweenOwnAccounts(context.Background(), "alice", OwnAccountCommand{
				FromAccountID: src.ID,
				ToAccountID:   dst.ID,
				Amount:        decimal.NewFromInt(70),
			})
		}(i)
	}
	wg.Wait()

	var succeeded, overdrawn int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, domain.ErrInsufficientFunds)
		overdrawn++
	}
	assert.Equal(t, 1, succeeded, "exactly one transfer commits")
	assert.Equal(t, 1, overdrawn, "the other fails on funds")

	assert.True(t, store.Account(src.ID).Balance.Equal(decimal.NewFromInt(30)))
	assert.True(t, store.Account(dst.ID).Balance.Equal(decimal.NewFromInt(70)))
	assert.Len(t, store.Transactions(), 1, "only the committed transfer is recorded")
}

func TestConcurrentTransfersDisjointAccounts(t *testing.T) {
	store := memuow.New()
	alice := store.SeedUser("alice")
	bob := store.SeedUser("bob")
	a1 := seedAccount(store, alice.ID, "MD1111111111111111", "USD", "100.00")
	a2 := seedAccount(store, alice.ID, "MD2222222222222222", "USD", "0.00")
	b1 := seedAccount(store, bob.ID, "MD3333333333333333", "USD", "100.00")
	b2 := seedAccount(store, bob.ID, "MD4444444444444444", "USD", "0.00")
	svc := newTestService(t, store)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	run := func(i int, username string, from, to uint) {
		defer wg.Done()
		_, errs[i] = svc.BetweenOwnAccounts(context.Background(), username, OwnAccountCommand{
			FromAccountID: from,
			ToAccountID:   to,
			Amount:        decimal.NewFromInt(40),
		})
	}
	wg.Add(2)
	go run(0, "alice", a1.ID, a2.ID)
	go run(1, "bob", b1.ID, b2.ID)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.True(t, store.Account(a1.ID).Balance.Equal(decimal.NewFromInt(60)))
	assert.True(t, store.Account(b1.ID).Balance.Equal(decimal.NewFromInt(60)))
	assert.Len(t, store.Transactions(), 2)
}
