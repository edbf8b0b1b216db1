package infra

import (
	"context"
	"database/sql"

	"github.com/vmunteanu/mdbank/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one
// abstraction, so every repository used inside Do shares the same
// serializable transaction.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside a transaction opened at serializable isolation and hands
// it a UoW bound to that transaction. An error from fn rolls everything back.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

// session is the transaction when inside Do, the root handle otherwise.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UoW) Accounts() repository.AccountRepository {
	return NewAccountRepository(u.session())
}

func (u *UoW) Transactions() repository.TransactionRepository {
	return NewTransactionRepository(u.session())
}

func (u *UoW) Users() repository.UserRepository {
	return NewUserRepository(u.session())
}

func (u *UoW) AccountTypes() repository.AccountTypeRepository {
	return NewAccountTypeRepository(u.session())
}
