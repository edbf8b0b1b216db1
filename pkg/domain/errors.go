package domain

import "errors"

var (
	// ErrUserNotFound is returned when the acting username has no user record.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists is returned when registering a username that is taken.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrAccountNotFound is returned when a referenced account id or number
	// does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountTypeNotFound is returned when an account type name is absent
	// from the catalog.
	ErrAccountTypeNotFound = errors.New("account type not found")

	// ErrUnauthorized is returned when the acting user does not own the
	// referenced account.
	ErrUnauthorized = errors.New("user is not the owner of the account")

	// ErrInvalidTransfer is returned for structurally invalid transfer
	// requests, such as source equal to destination or a non-positive amount.
	ErrInvalidTransfer = errors.New("invalid transfer")

	// ErrInsufficientFunds is returned when the projected balance after a
	// debit would fall below the account's floor.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrCurrencyConversion is returned when a transfer's currency conversion
	// could not be performed. It wraps the converter's failure.
	ErrCurrencyConversion = errors.New("currency conversion failed")

	// ErrConcurrencyConflict signals that a concurrent writer modified an
	// account between this operation's read and write. It is transient and
	// retried by the transfer engine before surfacing.
	ErrConcurrencyConflict = errors.New("concurrent modification conflict")

	// ErrHighRiskTransfer is returned by the pre-check guarding transfers
	// above the manual-approval limit.
	ErrHighRiskTransfer = errors.New("transfer amount requires manager approval")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
