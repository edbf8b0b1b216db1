// Package account covers the account lifecycle outside of transfers: opening
// accounts, listing them, and reading transaction history.
package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vmunteanu/mdbank/pkg/currency"
	"github.com/vmunteanu/mdbank/pkg/domain"
	"github.com/vmunteanu/mdbank/pkg/repository"
)

// Service implements account opening and read operations.
type Service struct {
	uow       repository.UnitOfWork
	converter *currency.Converter
	logger    *slog.Logger
}

func New(
	uow repository.UnitOfWork,
	converter *currency.Converter,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, converter: converter, logger: logger}
}

// OpenCommand carries an account-opening request.
type OpenCommand struct {
	AccountTypeName string
	Currency        string
	InitialDeposit  decimal.Decimal
}

// Open creates an account of the requested catalog type for the user, with a
// freshly generated account number. A positive initial deposit is credited
// and recorded as a DEPOSIT transaction in the same unit of work.
func (s *Service) Open(ctx context.Context, username string, cmd OpenCommand) (*domain.Account, error) {
	log := s.logger.With("context", "Open", "username", username)
	log.Debug("Open called", "type", cmd.AccountTypeName, "currency", cmd.Currency)

	code := currency.Normalize(cmd.Currency)
	if !s.converter.IsSupported(code) {
		return nil, fmt.Errorf("%w: unsupported currency %q", domain.ErrCurrencyConversion, cmd.Currency)
	}
	if cmd.InitialDeposit.IsNegative() {
		return nil, fmt.Errorf("%w: initial deposit must not be negative", domain.ErrInvalidTransfer)
	}

	var created *domain.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		user, err := uow.Users().FindByUsername(ctx, username)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("%w: %s", domain.ErrUserNotFound, username)
		}
		accountType, err := uow.AccountTypes().FindByTypeName(ctx, strings.ToUpper(cmd.AccountTypeName))
		if err != nil {
			return err
		}
		if accountType == nil {
			return fmt.Errorf("%w: %s", domain.ErrAccountTypeNotFound, cmd.AccountTypeName)
		}

		number, err := s.generateAccountNumber(ctx, uow)
		if err != nil {
			return err
		}
		created = &domain.Account{
			AccountNumber: number,
			UserID:        user.ID,
			AccountTypeID: accountType.ID,
			AccountType:   *accountType,
			Balance:       decimal.Zero,
			Currency:      code,
			OpenedAt:      time.Now(),
		}
		if err := uow.Accounts().Create(ctx, created); err != nil {
			return err
		}

		if cmd.InitialDeposit.IsPositive() {
			created.Credit(cmd.InitialDeposit)
			if err := uow.Accounts().Save(ctx, created); err != nil {
				return err
			}
			tx, err := domain.NewTransaction(nil, created, cmd.InitialDeposit, code,
				domain.TxDeposit, "Initial deposit")
			if err != nil {
				return err
			}
			if err := uow.Transactions().Create(ctx, tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("Open failed", "error", err)
		return nil, err
	}
	log.Info("Open successful", "accountNumber", created.AccountNumber)
	return created, nil
}

// Account numbers are "MD" plus 14 hex characters drawn from a random UUID.
// Collisions are vanishingly rare but still checked against the store.
func (s *Service) generateAccountNumber(ctx context.Context, uow repository.UnitOfWork) (string, error) {
	for {
		raw := strings.ReplaceAll(uuid.NewString(), "-", "")
		number := "MD" + strings.ToUpper(raw[:14])
		exists, err := uow.Accounts().ExistsByAccountNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
}

// List returns all accounts of the user.
func (s *Service) List(ctx context.Context, username string) ([]*domain.Account, error) {
	var accounts []*domain.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		accounts, err = uow.Accounts().ListByUsername(ctx, username)
		return err
	})
	return accounts, err
}

// Details returns the account with the given number, which must belong to
// the user.
func (s *Service) Details(ctx context.Context, username, accountNumber string) (*domain.Account, error) {
	var account *domain.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		account, err = s.ownedAccount(ctx, uow, username, accountNumber)
		return err
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// Transactions returns the full transaction history across all of the user's
// accounts.
func (s *Service) Transactions(ctx context.Context, username string) ([]*domain.Transaction, error) {
	var txs []*domain.Transaction
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		txs, err = uow.Transactions().ListByUsername(ctx, username)
		return err
	})
	return txs, err
}

// AccountTransactions returns the history of one account, which must belong
// to the user.
func (s *Service) AccountTransactions(ctx context.Context, username, accountNumber string) ([]*domain.Transaction, error) {
	var txs []*domain.Transaction
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := s.ownedAccount(ctx, uow, username, accountNumber); err != nil {
			return err
		}
		var err error
		txs, err = uow.Transactions().ListByAccountNumber(ctx, accountNumber)
		return err
	})
	return txs, err
}

func (s *Service) ownedAccount(ctx context.Context, uow repository.UnitOfWork, username, accountNumber string) (*domain.Account, error) {
	user, err := uow.Users().FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, username)
	}
	account, err := uow.Accounts().FindByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountNumber)
	}
	if !account.OwnedBy(user.ID) {
		return nil, fmt.Errorf("%w: account %s does not belong to %s", domain.ErrUnauthorized, accountNumber, username)
	}
	return account, nil
}
