package infra

import (
	"context"
	"errors"

	"github.com/vmunteanu/mdbank/pkg/domain"
	"github.com/vmunteanu/mdbank/pkg/repository"
	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	var a Account
	result := r.db.WithContext(ctx).Preload("AccountType").First(&a, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return a.toDomain(), nil
}

func (r *accountRepository) FindByAccountNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	var a Account
	result := r.db.WithContext(ctx).Preload("AccountType").
		Where("account_number = ?", accountNumber).First(&a)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return a.toDomain(), nil
}

func (r *accountRepository) ListByUsername(ctx context.Context, username string) ([]*domain.Account, error) {
	var models []Account
	result := r.db.WithContext(ctx).Preload("AccountType").
		Joins("JOIN users ON users.id = accounts.user_id").
		Where("users.username = ?", username).
		Order("accounts.id").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	accounts := make([]*domain.Account, len(models))
	for i := range models {
		accounts[i] = models[i].toDomain()
	}
	return accounts, nil
}

func (r *accountRepository) ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&Account{}).
		Where("account_number = ?", accountNumber).Count(&count)
	return count > 0, result.Error
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	model := accountModel(account)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	account.ID = model.ID
	return nil
}

// Save writes the balance guarded by the version the account was read with.
// A concurrent writer that committed first leaves RowsAffected at zero, which
// surfaces as a conflict for the retry loop.
func (r *accountRepository) Save(ctx context.Context, account *domain.Account) error {
	result := r.db.WithContext(ctx).Model(&Account{}).
		Where("id = ? AND version = ?", account.ID, account.Version).
		Updates(map[string]any{
			"balance": account.Balance,
			"version": account.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrConcurrencyConflict
	}
	account.Version++
	return nil
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	model := transactionModel(tx)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	tx.ID = model.ID
	return nil
}

func (r *transactionRepository) ListByUsername(ctx context.Context, username string) ([]*domain.Transaction, error) {
	var models []Transaction
	result := r.db.WithContext(ctx).
		Preload("FromAccount").Preload("ToAccount").
		Where(`from_account_id IN (?) OR to_account_id IN (?)`,
			userAccountIDs(r.db, username), userAccountIDs(r.db, username)).
		Order("timestamp DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return toDomainTransactions(models), nil
}

func (r *transactionRepository) ListByAccountNumber(ctx context.Context, accountNumber string) ([]*domain.Transaction, error) {
	ids := r.db.Model(&Account{}).Select("id").Where("account_number = ?", accountNumber)
	var models []Transaction
	result := r.db.WithContext(ctx).
		Preload("FromAccount").Preload("ToAccount").
		Where("from_account_id IN (?) OR to_account_id IN (?)", ids, ids).
		Order("timestamp DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return toDomainTransactions(models), nil
}

func userAccountIDs(db *gorm.DB, username string) *gorm.DB {
	return db.Model(&Account{}).Select("accounts.id").
		Joins("JOIN users ON users.id = accounts.user_id").
		Where("users.username = ?", username)
}

func toDomainTransactions(models []Transaction) []*domain.Transaction {
	txs := make([]*domain.Transaction, len(models))
	for i := range models {
		txs[i] = models[i].toDomain()
	}
	return txs
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u User
	result := r.db.WithContext(ctx).Where("username = ?", username).First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return u.toDomain(), nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&User{}).
		Where("username = ?", username).Count(&count)
	return count > 0, result.Error
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	model := userModel(user)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	user.ID = model.ID
	return nil
}

type accountTypeRepository struct {
	db *gorm.DB
}

func NewAccountTypeRepository(db *gorm.DB) repository.AccountTypeRepository {
	return &accountTypeRepository{db: db}
}

func (r *accountTypeRepository) FindByTypeName(ctx context.Context, typeName string) (*domain.AccountType, error) {
	var t AccountType
	result := r.db.WithContext(ctx).Where("type_name = ?", typeName).First(&t)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return t.toDomain(), nil
}
