// Package transfer implements the funds-transfer engine: moving money
// between a user's own accounts, to another intrabank account by IBAN, and to
// a domestic external bank with a commission. Every operation is a single
// atomic unit of work run under serializable isolation with bounded retry on
// contention.
package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vmunteanu/mdbank/pkg/config"
	"github.com/vmunteanu/mdbank/pkg/currency"
	"github.com/vmunteanu/mdbank/pkg/domain"
	"github.com/vmunteanu/mdbank/pkg/repository"
)

// Service orchestrates the three transfer flows. All balance mutation in the
// system funnels through it.
type Service struct {
	uow         repository.UnitOfWork
	converter   *currency.Converter
	feePercent  decimal.Decimal
	maxAttempts int
	backoff     retryBackoff
	logger      *slog.Logger
}

// New builds a transfer service from the application configuration. Invalid
// numeric settings fall back to the documented defaults (1% commission,
// 3 attempts, 100ms pause).
func New(
	uow repository.UnitOfWork,
	converter *currency.Converter,
	cfg *config.Transfer,
	logger *slog.Logger,
) *Service {
	s := &Service{
		uow:         uow,
		converter:   converter,
		feePercent:  decimal.RequireFromString("0.01"),
		maxAttempts: 3,
		logger:      logger,
	}
	if cfg != nil {
		if fee, err := decimal.NewFromString(cfg.DomesticFeePercent); err == nil && fee.IsPositive() {
			s.feePercent = fee
		}
		if cfg.MaxAttempts > 0 {
			s.maxAttempts = cfg.MaxAttempts
		}
		s.backoff = fixedBackoff(cfg.RetryBackoff)
	}
	return s
}

// OwnAccountCommand moves money between two accounts of the acting user.
type OwnAccountCommand struct {
	FromAccountID uint
	ToAccountID   uint
	Amount        decimal.Decimal
	Description   string
}

// IntrabankCommand sends money to another account of the bank, addressed by
// IBAN. Only the source side is a managed ledger account in this flow; the
// credit leg is recorded as leaving the ledger.
type IntrabankCommand struct {
	FromAccountID       uint
	ToIBAN              string
	Amount              decimal.Decimal
	Currency            string
	BeneficiaryName     string
	BeneficiaryBankName string
	Description         string
}

// DomesticBankCommand sends money to an external domestic bank, subject to a
// commission on top of the transferred amount.
type DomesticBankCommand struct {
	FromAccountID       uint
	ToIBAN              string
	Amount              decimal.Decimal
	Currency            string
	BeneficiaryName     string
	BeneficiaryBankName string
	Description         string
}

// BetweenOwnAccounts debits the source account and credits the destination,
// converting into the destination's currency when they differ. Both accounts
// must belong to the acting user.
func (s *Service) BetweenOwnAccounts(ctx context.Context, username string, cmd OwnAccountCommand) (*Result, error) {
	log := s.logger.With("context", "BetweenOwnAccounts", "username", username)
	log.Debug("transfer requested", "from", cmd.FromAccountID, "to", cmd.ToAccountID, "amount", cmd.Amount)

	if !cmd.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidTransfer)
	}

	var result *Result
	err := s.withRetry(ctx, func(uow repository.UnitOfWork) error {
		user, err := resolveUser(ctx, uow, username)
		if err != nil {
			return err
		}
		source, err := resolveAccount(ctx, uow, cmd.FromAccountID, "source")
		if err != nil {
			return err
		}
		dest, err := resolveAccount(ctx, uow, cmd.ToAccountID, "destination")
		if err != nil {
			return err
		}
		if !source.OwnedBy(user.ID) || !dest.OwnedBy(user.ID) {
			return fmt.Errorf("%w: both accounts must belong to %s", domain.ErrUnauthorized, username)
		}
		if source.ID == dest.ID {
			return fmt.Errorf("%w: source and destination accounts are identical", domain.ErrInvalidTransfer)
		}

		amountToDebit := cmd.Amount
		amountToCredit := cmd.Amount
		description := "Transfer between own accounts"
		if cmd.Description != "" {
			description += ": " + cmd.Description
		}

		if currency.Normalize(source.Currency) != currency.Normalize(dest.Currency) {
			rate, err := s.converter.Rate(source.Currency, dest.Currency)
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrCurrencyConversion, err)
			}
			amountToCredit, err = s.converter.Convert(amountToDebit, source.Currency, dest.Currency)
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrCurrencyConversion, err)
			}
			description += fmt.Sprintf(
				" (Original amount: %s %s, amount credited: %s %s. Rate: 1 %s = %s %s)",
				amountToDebit.StringFixed(2), source.Currency,
				amountToCredit.StringFixed(2), dest.Currency,
				source.Currency, rate.StringFixed(4), dest.Currency,
			)
		}

		if !source.HasFundsFor(amountToDebit) {
			return fmt.Errorf("%w: account %s requires %s %s",
				domain.ErrInsufficientFunds, source.AccountNumber,
				amountToDebit.StringFixed(2), source.Currency)
		}

		source.Debit(amountToDebit)
		dest.Credit(amountToCredit)
		if err := uow.Accounts().Save(ctx, source); err != nil {
			return err
		}
		if err := uow.Accounts().Save(ctx, dest); err != nil {
			return err
		}

		tx, err := domain.NewTransaction(source, dest, amountToDebit, currency.Normalize(source.Currency),
			domain.TxOwnAccountTransfer, description)
		if err != nil {
			return err
		}
		if err := uow.Transactions().Create(ctx, tx); err != nil {
			return err
		}

		result = &Result{
			Message:     "Transfer between own accounts completed successfully.",
			Transaction: summarize(tx),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info("transfer completed", "from", cmd.FromAccountID, "to", cmd.ToAccountID)
	return result, nil
}

// ToIntrabankAccount debits the source account in favor of an IBAN assumed to
// be within the bank. No destination ledger account is credited here: the
// transaction is recorded as an outgoing leg with an external destination.
func (s *Service) ToIntrabankAccount(ctx context.Context, username string, cmd IntrabankCommand) (*Result, error) {
	log := s.logger.With("context", "ToIntrabankAccount", "username", username)
	log.Debug("transfer requested", "from", cmd.FromAccountID, "iban", cmd.ToIBAN, "amount", cmd.Amount)

	if !cmd.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidTransfer)
	}
	transferCurrency := currency.Normalize(cmd.Currency)

	var result *Result
	err := s.withRetry(ctx, func(uow repository.UnitOfWork) error {
		user, err := resolveUser(ctx, uow, username)
		if err != nil {
			return err
		}
		source, err := resolveAccount(ctx, uow, cmd.FromAccountID, "source")
		if err != nil {
			return err
		}
		if !source.OwnedBy(user.ID) {
			return fmt.Errorf("%w: source account does not belong to %s", domain.ErrUnauthorized, username)
		}
		if strings.EqualFold(source.AccountNumber, cmd.ToIBAN) {
			return fmt.Errorf("%w: source account and destination IBAN are identical", domain.ErrInvalidTransfer)
		}

		amountToDebit := cmd.Amount
		description := fmt.Sprintf("Intrabank transfer to IBAN %s (beneficiary: %s)", cmd.ToIBAN, cmd.BeneficiaryName)
		if cmd.Description != "" {
			description += ": " + cmd.Description
		}

		if currency.Normalize(source.Currency) != transferCurrency {
			rate, err := s.converter.Rate(transferCurrency, source.Currency)
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrCurrencyConversion, err)
			}
			amountToDebit, err = s.converter.Convert(cmd.Amount, transferCurrency, source.Currency)
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrCurrencyConversion, err)
			}
			description += fmt.Sprintf(
				" (Debited: %s %s for a transfer of %s %s. Rate: 1 %s = %s %s)",
				amountToDebit.StringFixed(2), source.Currency,
				cmd.Amount.StringFixed(2), transferCurrency,
				transferCurrency, rate.StringFixed(4), source.Currency,
			)
		}

		if !source.HasFundsFor(amountToDebit) {
			return fmt.Errorf("%w: account %s requires %s %s",
				domain.ErrInsufficientFunds, source.AccountNumber,
				amountToDebit.StringFixed(2), source.Currency)
		}

		source.Debit(amountToDebit)
		if err := uow.Accounts().Save(ctx, source); err != nil {
			return err
		}

		// The record keeps the requested amount in the transfer currency;
		// the debit-side conversion lives in the description.
		tx, err := domain.NewTransaction(source, nil, cmd.Amount, transferCurrency,
			domain.TxIntrabankTransferSent, description)
		if err != nil {
			return err
		}
		if err := uow.Transactions().Create(ctx, tx); err != nil {
			return err
		}

		result = &Result{
			Message:     fmt.Sprintf("Transfer to IBAN %s has been initiated.", cmd.ToIBAN),
			Transaction: summarize(tx),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info("transfer completed", "from", cmd.FromAccountID, "iban", cmd.ToIBAN)
	return result, nil
}

// ToDomesticBankAccount sends cmd.Amount to an external domestic bank and
// debits the source for the amount plus commission, converted into the source
// currency when it differs from the transfer currency.
func (s *Service) ToDomesticBankAccount(ctx context.Context, username string, cmd DomesticBankCommand) (*Result, error) {
	log := s.logger.With("context", "ToDomesticBankAccount", "username", username)
	log.Debug("transfer requested", "from", cmd.FromAccountID, "iban", cmd.ToIBAN, "amount", cmd.Amount)

	if !cmd.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidTransfer)
	}
	transferCurrency := currency.Normalize(cmd.Currency)

	var result *Result
	err := s.withRetry(ctx, func(uow repository.UnitOfWork) error {
		user, err := resolveUser(ctx, uow, username)
		if err != nil {
			return err
		}
		source, err := resolveAccount(ctx, uow, cmd.FromAccountID, "source")
		if err != nil {
			return err
		}
		if !source.OwnedBy(user.ID) {
			return fmt.Errorf("%w: source account does not belong to %s", domain.ErrUnauthorized, username)
		}

		commission := cmd.Amount.Mul(s.feePercent).Round(2)
		totalToSend := cmd.Amount.Add(commission)

		description := fmt.Sprintf("Transfer to %s (beneficiary: %s, IBAN: %s)",
			cmd.BeneficiaryBankName, cmd.BeneficiaryName, cmd.ToIBAN)
		if cmd.Description != "" {
			description += ": " + cmd.Description
		}
		description += fmt.Sprintf(". Amount transferred: %s %s. Commission (%s%%): %s %s. Total debited (equivalent): ",
			cmd.Amount.StringFixed(2), transferCurrency,
			s.feePercent.Mul(decimal.NewFromInt(100)).StringFixed(0),
			commission.StringFixed(2), transferCurrency,
		)

		amountToDebit := totalToSend
		if currency.Normalize(source.Currency) != transferCurrency {
			rate, err := s.converter.Rate(transferCurrency, source.Currency)
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrCurrencyConversion, err)
			}
			amountToDebit, err = s.converter.Convert(totalToSend, transferCurrency, source.Currency)
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrCurrencyConversion, err)
			}
			description += fmt.Sprintf("%s %s (Rate: 1 %s = %s %s)",
				amountToDebit.StringFixed(2), source.Currency,
				transferCurrency, rate.StringFixed(4), source.Currency)
		} else {
			description += fmt.Sprintf("%s %s", amountToDebit.StringFixed(2), source.Currency)
		}

		if !source.HasFundsFor(amountToDebit) {
			commissionInSourceCurrency := commission
			if currency.Normalize(source.Currency) != transferCurrency {
				// Cannot fail: the same pair converted above.
				commissionInSourceCurrency, _ = s.converter.Convert(commission, transferCurrency, source.Currency)
			}
			return fmt.Errorf("%w: account %s requires %s %s (includes commission of %s %s), available balance %s %s",
				domain.ErrInsufficientFunds, source.AccountNumber,
				amountToDebit.StringFixed(2), source.Currency,
				commissionInSourceCurrency.StringFixed(2), source.Currency,
				source.Balance.StringFixed(2), source.Currency)
		}

		source.Debit(amountToDebit)
		if err := uow.Accounts().Save(ctx, source); err != nil {
			return err
		}

		// The record carries the beneficiary amount, excluding commission.
		tx, err := domain.NewTransaction(source, nil, cmd.Amount, transferCurrency,
			domain.TxDomesticBankTransfer, description)
		if err != nil {
			return err
		}
		if err := uow.Transactions().Create(ctx, tx); err != nil {
			return err
		}

		result = &Result{
			Message: fmt.Sprintf("Domestic bank transfer initiated successfully. Total amount debited (including commission): %s %s",
				amountToDebit.StringFixed(2), source.Currency),
			Transaction: summarize(tx),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info("transfer completed", "from", cmd.FromAccountID, "iban", cmd.ToIBAN)
	return result, nil
}

func resolveUser(ctx context.Context, uow repository.UnitOfWork, username string) (*domain.User, error) {
	user, err := uow.Users().FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, username)
	}
	return user, nil
}

func resolveAccount(ctx context.Context, uow repository.UnitOfWork, id uint, role string) (*domain.Account, error) {
	account, err := uow.Accounts().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: %s account id %d", domain.ErrAccountNotFound, role, id)
	}
	return account, nil
}
