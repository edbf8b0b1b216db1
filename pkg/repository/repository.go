// Package repository declares the persistence contracts the services depend
// on. Implementations live in infra; tests substitute in-memory fakes.
package repository

import (
	"context"

	"github.com/vmunteanu/mdbank/pkg/domain"
)

// AccountRepository accesses ledger accounts.
type AccountRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Account, error)
	FindByAccountNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	ListByUsername(ctx context.Context, username string) ([]*domain.Account, error)
	ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error)
	Create(ctx context.Context, account *domain.Account) error

	// Save persists the account's balance with an optimistic version check:
	// the write only applies if the stored version still matches the one the
	// account was read with. On a mismatch it returns
	// domain.ErrConcurrencyConflict and the caller retries the whole unit of
	// work. On success the in-memory version is bumped.
	Save(ctx context.Context, account *domain.Account) error
}

// TransactionRepository appends to and reads the immutable transaction log.
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	ListByUsername(ctx context.Context, username string) ([]*domain.Transaction, error)
	ListByAccountNumber(ctx context.Context, accountNumber string) ([]*domain.Transaction, error)
}

// UserRepository accesses user records.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *domain.User) error
}

// AccountTypeRepository reads the shared account-type catalog.
type AccountTypeRepository interface {
	FindByTypeName(ctx context.Context, typeName string) (*domain.AccountType, error)
}

// UnitOfWork runs a function inside a single transaction boundary and hands
// it repositories bound to that transaction. Do executes under serializable
// isolation: if the function returns an error the transaction is rolled back,
// otherwise it is committed. Repositories obtained outside Do operate on their
// own short-lived transactions.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	Accounts() AccountRepository
	Transactions() TransactionRepository
	Users() UserRepository
	AccountTypes() AccountTypeRepository
}
