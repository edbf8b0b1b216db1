package account

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vmunteanu/mdbank/pkg/domain"
)

// OpenAccountInput represents the request body for opening an account.
type OpenAccountInput struct {
	AccountType    string          `json:"accountType" validate:"required"`
	Currency       string          `json:"currency" validate:"required,len=3"`
	InitialDeposit decimal.Decimal `json:"initialDeposit"`
}

// AccountResponse is the public view of a ledger account.
type AccountResponse struct {
	ID            uint            `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	AccountType   string          `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	OpenedAt      time.Time       `json:"openedAt"`
}

// TransactionResponse is the public view of a transaction record. External
// legs render as "EXTERNAL".
type TransactionResponse struct {
	ID          uint            `json:"id"`
	FromAccount string          `json:"fromAccount"`
	ToAccount   string          `json:"toAccount"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Timestamp   time.Time       `json:"timestamp"`
}

const externalLeg = "EXTERNAL"

func toAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:            a.ID,
		AccountNumber: a.AccountNumber,
		AccountType:   a.AccountType.TypeName,
		Balance:       a.Balance,
		Currency:      a.Currency,
		OpenedAt:      a.OpenedAt,
	}
}

func toTransactionResponse(tx *domain.Transaction) TransactionResponse {
	from, to := externalLeg, externalLeg
	if tx.FromAccountID != nil {
		from = tx.FromAccountNumber
	}
	if tx.ToAccountID != nil {
		to = tx.ToAccountNumber
	}
	return TransactionResponse{
		ID:          tx.ID,
		FromAccount: from,
		ToAccount:   to,
		Amount:      tx.Amount,
		Currency:    tx.Currency,
		Description: tx.Description,
		Type:        tx.Type,
		Timestamp:   tx.Timestamp,
	}
}

func toTransactionResponses(txs []*domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		out[i] = toTransactionResponse(tx)
	}
	return out
}
