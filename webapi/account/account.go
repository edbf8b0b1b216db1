// Package account exposes the account and transaction read/write routes.
package account

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vmunteanu/mdbank/pkg/config"
	"github.com/vmunteanu/mdbank/pkg/middleware"
	accountsvc "github.com/vmunteanu/mdbank/pkg/service/account"
	"github.com/vmunteanu/mdbank/webapi/common"
)

// Routes registers the JWT-guarded account endpoints:
//   - POST /api/v1/accounts                              : open an account
//   - GET  /api/v1/accounts                              : list own accounts
//   - GET  /api/v1/accounts/:accountNumber               : account details
//   - GET  /api/v1/accounts/:accountNumber/transactions  : account history
//   - GET  /api/v1/transactions                          : history across accounts
func Routes(app *fiber.App, accountSvc *accountsvc.Service, jwtCfg *config.Jwt) {
	guard := middleware.JwtProtected(jwtCfg)
	app.Post("/api/v1/accounts", guard, OpenAccount(accountSvc))
	app.Get("/api/v1/accounts", guard, ListAccounts(accountSvc))
	app.Get("/api/v1/accounts/:accountNumber", guard, AccountDetails(accountSvc))
	app.Get("/api/v1/accounts/:accountNumber/transactions", guard, AccountTransactions(accountSvc))
	app.Get("/api/v1/transactions", guard, Transactions(accountSvc))
}

// OpenAccount opens an account of the requested catalog type for the caller.
func OpenAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, err := common.Username(c)
		if err != nil {
			return common.DomainErrorJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[OpenAccountInput](c)
		if input == nil {
			return err
		}
		acc, err := accountSvc.Open(c.Context(), username, accountsvc.OpenCommand{
			AccountTypeName: input.AccountType,
			Currency:        input.Currency,
			InitialDeposit:  input.InitialDeposit,
		})
		if err != nil {
			return common.DomainErrorJSON(c, "Account opening failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account opened", toAccountResponse(acc))
	}
}

// ListAccounts lists the caller's accounts.
func ListAccounts(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, err := common.Username(c)
		if err != nil {
			return common.DomainErrorJSON(c, "Unauthorized", err)
		}
		accounts, err := accountSvc.List(c.Context(), username)
		if err != nil {
			return common.DomainErrorJSON(c, "Listing accounts failed", err)
		}
		out := make([]AccountResponse, len(accounts))
		for i, a := range accounts {
			out[i] = toAccountResponse(a)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts", out)
	}
}

// AccountDetails returns one account of the caller by number.
func AccountDetails(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, err := common.Username(c)
		if err != nil {
			return common.DomainErrorJSON(c, "Unauthorized", err)
		}
		acc, err := accountSvc.Details(c.Context(), username, c.Params("accountNumber"))
		if err != nil {
			return common.DomainErrorJSON(c, "Account lookup failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account", toAccountResponse(acc))
	}
}

// AccountTransactions returns one account's history.
func AccountTransactions(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, err := common.Username(c)
		if err != nil {
			return common.DomainErrorJSON(c, "Unauthorized", err)
		}
		txs, err := accountSvc.AccountTransactions(c.Context(), username, c.Params("accountNumber"))
		if err != nil {
			return common.DomainErrorJSON(c, "Transaction lookup failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions", toTransactionResponses(txs))
	}
}

// Transactions returns the caller's history across all accounts.
func Transactions(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, err := common.Username(c)
		if err != nil {
			return common.DomainErrorJSON(c, "Unauthorized", err)
		}
		txs, err := accountSvc.Transactions(c.Context(), username)
		if err != nil {
			return common.DomainErrorJSON(c, "Transaction lookup failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions", toTransactionResponses(txs))
	}
}
