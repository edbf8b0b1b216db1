package transfer

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vmunteanu/mdbank/pkg/domain"
)

// ExternalLeg is the placeholder account label for a transaction leg that
// does not reference a ledger account.
const ExternalLeg = "EXTERNAL"

// Result is what a completed transfer reports back to the caller.
type Result struct {
	Message     string
	Transaction *Summary
}

// Summary is the presentation view of the created transaction record.
type Summary struct {
	ID          uint
	FromAccount string
	ToAccount   string
	Amount      decimal.Decimal
	Currency    string
	Description string
	Timestamp   time.Time
	Type        string
}

func summarize(tx *domain.Transaction) *Summary {
	from, to := ExternalLeg, ExternalLeg
	if tx.FromAccountID != nil {
		from = tx.FromAccountNumber
	}
	if tx.ToAccountID != nil {
		to = tx.ToAccountNumber
	}
	return &Summary{
		ID:          tx.ID,
		FromAccount: from,
		ToAccount:   to,
		Amount:      tx.Amount,
		Currency:    tx.Currency,
		Description: tx.Description,
		Timestamp:   tx.Timestamp,
		Type:        tx.Type,
	}
}
