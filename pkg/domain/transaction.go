package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction type tags. Direction is implied by which account reference is
// populated, so stored amounts are always non-negative.
const (
	TxDeposit               = "DEPOSIT"
	TxOwnAccountTransfer    = "OWN_ACCOUNT_TRANSFER"
	TxIntrabankTransferSent = "INTRABANK_TRANSFER_SENT"
	TxDomesticBankTransfer  = "DOMESTIC_BANK_TRANSFER"
	TxFee                   = "FEE"
)

var (
	errTransactionNoAccounts     = errors.New("transaction must reference at least one account")
	errTransactionNegativeAmount = errors.New("transaction amount must not be negative")
)

// Transaction is an immutable financial event record. A nil FromAccountID
// marks an external or cash origin; a nil ToAccountID an external
// destination. The amount is denominated in the transaction's own currency,
// which may differ from either account's native currency.
type Transaction struct {
	ID            uint
	FromAccountID *uint
	ToAccountID   *uint
	Amount        decimal.Decimal
	Currency      string
	Description   string
	Type          string
	Timestamp     time.Time

	// Account numbers of the referenced legs, resolved for presentation.
	// Empty when the corresponding leg is external.
	FromAccountNumber string
	ToAccountNumber   string
}

// NewTransaction builds a transaction record, enforcing that at least one leg
// references an account and that the stored amount is non-negative.
func NewTransaction(from, to *Account, amount decimal.Decimal, currencyCode, txType, description string) (*Transaction, error) {
	if from == nil && to == nil {
		return nil, errTransactionNoAccounts
	}
	if amount.IsNegative() {
		return nil, errTransactionNegativeAmount
	}
	tx := &Transaction{
		Amount:      amount,
		Currency:    currencyCode,
		Description: description,
		Type:        txType,
		Timestamp:   time.Now(),
	}
	if from != nil {
		id := from.ID
		tx.FromAccountID = &id
		tx.FromAccountNumber = from.AccountNumber
	}
	if to != nil {
		id := to.ID
		tx.ToAccountID = &id
		tx.ToAccountNumber = to.AccountNumber
	}
	return tx, nil
}
