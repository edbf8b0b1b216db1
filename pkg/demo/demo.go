// Package demo provides the in-memory showcase accounts. They are not part
// of the persisted ledger: no other subsystem reads from or writes to them,
// and they carry no concurrency guarantees.
package demo

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vmunteanu/mdbank/pkg/domain"
)

// Category tags the account variant. Behavior differences between variants
// are expressed as per-category policy functions on Account, not subtypes.
type Category string

const (
	StandardChecking Category = "STANDARD_CHECKING"
	PremiumChecking  Category = "PREMIUM_CHECKING"
	StandardSavings  Category = "STANDARD_SAVINGS"
	PremiumSavings   Category = "PREMIUM_SAVINGS"
)

// IsChecking reports whether the category carries an overdraft facility.
func (c Category) IsChecking() bool {
	return c == StandardChecking || c == PremiumChecking
}

// IsSavings reports whether the category earns interest.
func (c Category) IsSavings() bool {
	return c == StandardSavings || c == PremiumSavings
}

// premiumSavingsRate and premiumSavingsWithdrawFee are fixed for the premium
// savings variant regardless of store configuration.
var (
	premiumSavingsRate        = decimal.RequireFromString("0.05")
	premiumSavingsWithdrawFee = decimal.RequireFromString("0.01")
	premiumBonusRate          = decimal.RequireFromString("0.05")
)

// Entry is one line of a demo account's local history. Withdrawals are
// recorded with a negated amount.
type Entry struct {
	Timestamp time.Time
	Amount    decimal.Decimal
	Note      string
}

// Ledger is the operations surface shared by plain demo accounts and their
// decorated wrappers.
type Ledger interface {
	Number() string
	Balance() decimal.Decimal
	Deposit(amount decimal.Decimal)
	Withdraw(amount decimal.Decimal) error
	ApplyInterest()
	Clone(newNumber string) Ledger
	History() []Entry
}

// Account is a demo account of one of the four categories.
type Account struct {
	number         string
	category       Category
	balance        decimal.Decimal
	overdraftLimit decimal.Decimal
	interestRate   decimal.Decimal
	history        []Entry
}

// NewAccount builds a demo account. The overdraft limit applies to checking
// categories and the interest rate to standard savings; premium savings uses
// its fixed rate.
func NewAccount(number string, category Category, overdraftLimit, interestRate decimal.Decimal) *Account {
	a := &Account{
		number:         number,
		category:       category,
		balance:        decimal.Zero,
		overdraftLimit: overdraftLimit,
		interestRate:   interestRate,
	}
	if category == PremiumSavings {
		a.interestRate = premiumSavingsRate
	}
	return a
}

func (a *Account) Number() string           { return a.number }
func (a *Account) Category() Category       { return a.category }
func (a *Account) Balance() decimal.Decimal { return a.balance }

// History returns a copy of the recorded entries.
func (a *Account) History() []Entry {
	out := make([]Entry, len(a.history))
	copy(out, a.history)
	return out
}

func (a *Account) record(amount decimal.Decimal, note string) {
	a.history = append(a.history, Entry{Timestamp: time.Now(), Amount: amount, Note: note})
}

// Deposit credits the amount unconditionally.
func (a *Account) Deposit(amount decimal.Decimal) {
	a.balance = a.balance.Add(amount)
	a.record(amount, "Deposit")
}

// withdrawFloor is the lowest balance a withdrawal may leave behind: minus
// the overdraft limit for standard checking, twice that for premium
// checking, zero for standard savings. Premium savings has no floor and
// returns ok=false.
func (a *Account) withdrawFloor() (floor decimal.Decimal, ok bool) {
	switch a.category {
	case StandardChecking:
		return a.overdraftLimit.Neg(), true
	case PremiumChecking:
		return a.overdraftLimit.Mul(decimal.NewFromInt(2)).Neg(), true
	case StandardSavings:
		return decimal.Zero, true
	default:
		return decimal.Zero, false
	}
}

// Withdraw debits the amount, enforcing the category's floor. Premium
// savings withdrawals always succeed but incur a 1% fee on top of the
// amount.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if a.category == PremiumSavings {
		fee := amount.Mul(premiumSavingsWithdrawFee)
		a.balance = a.balance.Sub(amount.Add(fee))
		a.record(amount.Neg(), "Premium Withdrawal")
		return nil
	}
	floor, _ := a.withdrawFloor()
	if a.balance.Sub(amount).Cmp(floor) < 0 {
		return fmt.Errorf("%w: withdrawal of %s from account %s would breach the %s floor",
			domain.ErrInsufficientFunds, amount.StringFixed(2), a.number, floor.StringFixed(2))
	}
	a.balance = a.balance.Sub(amount)
	note := "Withdrawal"
	if a.category == PremiumChecking {
		note = "Premium Withdrawal"
	}
	a.record(amount.Neg(), note)
	return nil
}

// ApplyInterest credits one period of interest on savings categories and is
// a no-op on checking.
func (a *Account) ApplyInterest() {
	if !a.category.IsSavings() {
		return
	}
	a.Deposit(a.balance.Mul(a.interestRate))
}

// Clone copies the account under a new number, keeping balance and policy
// but starting a fresh history.
func (a *Account) Clone(newNumber string) Ledger {
	return &Account{
		number:         newNumber,
		category:       a.category,
		balance:        a.balance,
		overdraftLimit: a.overdraftLimit,
		interestRate:   a.interestRate,
	}
}

// Insurance decorates a ledger so that every interest application also
// credits a fixed insurance benefit.
type Insurance struct {
	Inner   Ledger
	Benefit decimal.Decimal
}

func (d *Insurance) Number() string                  { return d.Inner.Number() }
func (d *Insurance) Balance() decimal.Decimal        { return d.Inner.Balance() }
func (d *Insurance) Deposit(amount decimal.Decimal)  { d.Inner.Deposit(amount) }
func (d *Insurance) Withdraw(amount decimal.Decimal) error {
	return d.Inner.Withdraw(amount)
}
func (d *Insurance) History() []Entry { return d.Inner.History() }

func (d *Insurance) ApplyInterest() {
	d.Inner.ApplyInterest()
	d.Inner.Deposit(d.Benefit)
}

func (d *Insurance) Clone(newNumber string) Ledger {
	return &Insurance{Inner: d.Inner.Clone(newNumber), Benefit: d.Benefit}
}

// PremiumBonus decorates a ledger so that every deposit is topped up with a
// 5% bonus.
type PremiumBonus struct {
	Inner Ledger
}

func (d *PremiumBonus) Number() string           { return d.Inner.Number() }
func (d *PremiumBonus) Balance() decimal.Decimal { return d.Inner.Balance() }

func (d *PremiumBonus) Deposit(amount decimal.Decimal) {
	bonus := amount.Mul(premiumBonusRate)
	d.Inner.Deposit(amount.Add(bonus))
}

func (d *PremiumBonus) Withdraw(amount decimal.Decimal) error {
	return d.Inner.Withdraw(amount)
}
func (d *PremiumBonus) ApplyInterest() { d.Inner.ApplyInterest() }
func (d *PremiumBonus) History() []Entry {
	return d.Inner.History()
}

func (d *PremiumBonus) Clone(newNumber string) Ledger {
	return &PremiumBonus{Inner: d.Inner.Clone(newNumber)}
}
