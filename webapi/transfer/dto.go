package transfer

import (
	"time"

	"github.com/shopspring/decimal"
	transfersvc "github.com/vmunteanu/mdbank/pkg/service/transfer"
)

// OwnAccountTransferInput represents a transfer between the caller's own
// accounts.
type OwnAccountTransferInput struct {
	FromAccountID uint            `json:"fromAccountId" validate:"required"`
	ToAccountID   uint            `json:"toAccountId" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Description   string          `json:"description" validate:"max=255"`
}

// IntrabankTransferInput represents a transfer to another account of the
// bank, addressed by IBAN.
type IntrabankTransferInput struct {
	FromAccountID       uint            `json:"fromAccountId" validate:"required"`
	ToIBAN              string          `json:"toIban" validate:"required,min=5,max=34"`
	Amount              decimal.Decimal `json:"amount" validate:"required"`
	Currency            string          `json:"currency" validate:"required,len=3"`
	BeneficiaryName     string          `json:"beneficiaryName" validate:"required,max=100"`
	BeneficiaryBankName string          `json:"beneficiaryBankName" validate:"max=100"`
	Description         string          `json:"description" validate:"max=255"`
}

// DomesticBankTransferInput represents a commissioned transfer to an
// external domestic bank.
type DomesticBankTransferInput struct {
	FromAccountID       uint            `json:"fromAccountId" validate:"required"`
	ToIBAN              string          `json:"toIban" validate:"required,min=5,max=34"`
	Amount              decimal.Decimal `json:"amount" validate:"required"`
	Currency            string          `json:"currency" validate:"required,len=3"`
	BeneficiaryName     string          `json:"beneficiaryName" validate:"required,max=100"`
	BeneficiaryBankName string          `json:"beneficiaryBankName" validate:"required,max=100"`
	Description         string          `json:"description" validate:"max=255"`
}

// TransferResponse reports a completed transfer.
type TransferResponse struct {
	Message     string              `json:"message"`
	Transaction *TransactionSummary `json:"transaction,omitempty"`
}

// TransactionSummary is the created transaction record's public view.
type TransactionSummary struct {
	ID          uint            `json:"id"`
	FromAccount string          `json:"fromAccount"`
	ToAccount   string          `json:"toAccount"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Timestamp   time.Time       `json:"timestamp"`
}

func toTransferResponse(res *transfersvc.Result) TransferResponse {
	out := TransferResponse{Message: res.Message}
	if res.Transaction != nil {
		out.Transaction = &TransactionSummary{
			ID:          res.Transaction.ID,
			FromAccount: res.Transaction.FromAccount,
			ToAccount:   res.Transaction.ToAccount,
			Amount:      res.Transaction.Amount,
			Currency:    res.Transaction.Currency,
			Description: res.Transaction.Description,
			Type:        res.Transaction.Type,
			Timestamp:   res.Transaction.Timestamp,
		}
	}
	return out
}
