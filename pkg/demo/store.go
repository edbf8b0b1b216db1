package demo

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vmunteanu/mdbank/pkg/domain"
)

// Store holds the demo accounts by number. It is an explicit object handed
// to whoever needs it; there is no package-level state.
type Store struct {
	overdraftLimit decimal.Decimal
	savingsRate    decimal.Decimal
	accounts       map[string]Ledger
}

// NewStore builds an empty store with the policy parameters shared by the
// standard categories: the checking overdraft limit and the standard
// savings interest rate.
func NewStore(overdraftLimit, savingsRate decimal.Decimal) *Store {
	return &Store{
		overdraftLimit: overdraftLimit,
		savingsRate:    savingsRate,
		accounts:       make(map[string]Ledger),
	}
}

// Create opens a demo account of the given category under the number.
func (s *Store) Create(number string, category Category) (*Account, error) {
	switch category {
	case StandardChecking, PremiumChecking, StandardSavings, PremiumSavings:
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountTypeNotFound, category)
	}
	if _, taken := s.accounts[number]; taken {
		return nil, fmt.Errorf("account number %s already in use", number)
	}
	a := NewAccount(number, category, s.overdraftLimit, s.savingsRate)
	s.accounts[number] = a
	return a, nil
}

// Get returns the ledger stored under the number.
func (s *Store) Get(number string) (Ledger, error) {
	l, ok := s.accounts[number]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, number)
	}
	return l, nil
}

// Decorate replaces the stored ledger with wrap(ledger), so later lookups
// see the decorated behavior.
func (s *Store) Decorate(number string, wrap func(Ledger) Ledger) (Ledger, error) {
	l, err := s.Get(number)
	if err != nil {
		return nil, err
	}
	wrapped := wrap(l)
	s.accounts[number] = wrapped
	return wrapped, nil
}

// CloneAccount copies an existing account under a new number and stores the
// copy.
func (s *Store) CloneAccount(number, newNumber string) (Ledger, error) {
	l, err := s.Get(number)
	if err != nil {
		return nil, err
	}
	if _, taken := s.accounts[newNumber]; taken {
		return nil, fmt.Errorf("account number %s already in use", newNumber)
	}
	clone := l.Clone(newNumber)
	s.accounts[newNumber] = clone
	return clone, nil
}
