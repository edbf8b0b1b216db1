package infra

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vmunteanu/mdbank/pkg/domain"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null;size:50"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	PhoneNumber  string `gorm:"size:20"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

type AccountType struct {
	ID             uint            `gorm:"primaryKey"`
	TypeName       string          `gorm:"uniqueIndex;not null;size:50"`
	OverdraftLimit decimal.Decimal `gorm:"type:numeric(19,2);not null;default:0"`
	InterestRate   decimal.Decimal `gorm:"type:numeric(9,4);not null;default:0"`
}

type Account struct {
	ID                 uint   `gorm:"primaryKey"`
	AccountNumber      string `gorm:"uniqueIndex;not null;size:34"`
	UserID             uint   `gorm:"index;not null"`
	User               User
	AccountTypeID      uint `gorm:"not null"`
	AccountType        AccountType
	Balance            decimal.Decimal `gorm:"type:numeric(19,2);not null;default:0"`
	Currency           string          `gorm:"type:varchar(3);not null"`
	InsuranceBenefit   decimal.Decimal `gorm:"type:numeric(19,2);not null;default:0"`
	HasPremiumBenefits bool            `gorm:"not null;default:false"`
	Version            int64           `gorm:"not null;default:0"`
	OpenedAt           time.Time
}

type Transaction struct {
	ID            uint  `gorm:"primaryKey"`
	FromAccountID *uint `gorm:"index"`
	FromAccount   *Account
	ToAccountID   *uint `gorm:"index"`
	ToAccount     *Account
	Amount        decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	Currency      string          `gorm:"type:varchar(3);not null"`
	Description   string          `gorm:"type:text"`
	Type          string          `gorm:"size:40;not null"`
	Timestamp     time.Time       `gorm:"index;not null"`
}

func (u *User) toDomain() *domain.User {
	return &domain.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PhoneNumber:  u.PhoneNumber,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func userModel(u *domain.User) *User {
	return &User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PhoneNumber:  u.PhoneNumber,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func (t *AccountType) toDomain() *domain.AccountType {
	return &domain.AccountType{
		ID:             t.ID,
		TypeName:       t.TypeName,
		OverdraftLimit: t.OverdraftLimit,
		InterestRate:   t.InterestRate,
	}
}

func (a *Account) toDomain() *domain.Account {
	return &domain.Account{
		ID:                 a.ID,
		AccountNumber:      a.AccountNumber,
		UserID:             a.UserID,
		AccountTypeID:      a.AccountTypeID,
		AccountType:        *a.AccountType.toDomain(),
		Balance:            a.Balance,
		Currency:           a.Currency,
		InsuranceBenefit:   a.InsuranceBenefit,
		HasPremiumBenefits: a.HasPremiumBenefits,
		Version:            a.Version,
		OpenedAt:           a.OpenedAt,
	}
}

func accountModel(a *domain.Account) *Account {
	return &Account{
		ID:                 a.ID,
		AccountNumber:      a.AccountNumber,
		UserID:             a.UserID,
		AccountTypeID:      a.AccountTypeID,
		Balance:            a.Balance,
		Currency:           a.Currency,
		InsuranceBenefit:   a.InsuranceBenefit,
		HasPremiumBenefits: a.HasPremiumBenefits,
		Version:            a.Version,
		OpenedAt:           a.OpenedAt,
	}
}

func (t *Transaction) toDomain() *domain.Transaction {
	tx := &domain.Transaction{
		ID:            t.ID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Amount:        t.Amount,
		Currency:      t.Currency,
		Description:   t.Description,
		Type:          t.Type,
		Timestamp:     t.Timestamp,
	}
	if t.FromAccount != nil {
		tx.FromAccountNumber = t.FromAccount.AccountNumber
	}
	if t.ToAccount != nil {
		tx.ToAccountNumber = t.ToAccount.AccountNumber
	}
	return tx
}

func transactionModel(tx *domain.Transaction) *Transaction {
	return &Transaction{
		ID:            tx.ID,
		FromAccountID: tx.FromAccountID,
		ToAccountID:   tx.ToAccountID,
		Amount:        tx.Amount,
		Currency:      tx.Currency,
		Description:   tx.Description,
		Type:          tx.Type,
		Timestamp:     tx.Timestamp,
	}
}
