package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Well-known account type names seeded into the catalog.
const (
	TypeStandardChecking = "STANDARD_CHECKING"
	TypeStandardSavings  = "STANDARD_SAVINGS"
	TypePremiumChecking  = "PREMIUM_CHECKING"
	TypePremiumSavings   = "PREMIUM_SAVINGS"
)

// AccountType is a catalog entry shared by all accounts of the same kind.
// Checking types carry an overdraft limit, savings types an interest rate.
type AccountType struct {
	ID             uint
	TypeName       string
	OverdraftLimit decimal.Decimal
	InterestRate   decimal.Decimal
}

// Account is a persisted ledger account.
//
// Invariants:
//   - Exactly one owner (UserID); no joint accounts.
//   - Currency is fixed at creation; every amount credited or debited is
//     converted into it first.
//   - Balance equals the sum of applied transaction effects.
//   - Version is bumped on every balance write; a stale version on save
//     signals a lost update to the writer.
type Account struct {
	ID                 uint
	AccountNumber      string
	UserID             uint
	AccountTypeID      uint
	AccountType        AccountType
	Balance            decimal.Decimal
	Currency           string
	InsuranceBenefit   decimal.Decimal
	HasPremiumBenefits bool
	Version            int64
	OpenedAt           time.Time
}

// OwnedBy reports whether the account belongs to the given user.
func (a *Account) OwnedBy(userID uint) bool {
	return a.UserID == userID
}

// Debit subtracts amount from the balance. Callers check sufficiency first;
// Debit itself enforces nothing so the transfer flows can report the exact
// shortfall messages they owe their callers.
func (a *Account) Debit(amount decimal.Decimal) {
	a.Balance = a.Balance.Sub(amount)
}

// Credit adds amount to the balance.
func (a *Account) Credit(amount decimal.Decimal) {
	a.Balance = a.Balance.Add(amount)
}

// HasFundsFor reports whether the current balance covers the given debit
// without going below zero. Persisted transfers never dip into overdraft;
// the overdraft limit applies to demo checking accounts only.
func (a *Account) HasFundsFor(amount decimal.Decimal) bool {
	return a.Balance.Cmp(amount) >= 0
}
