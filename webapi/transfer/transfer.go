// Package transfer exposes the three transfer routes. Each request passes the
// high-risk pre-check before reaching the engine.
package transfer

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vmunteanu/mdbank/pkg/config"
	"github.com/vmunteanu/mdbank/pkg/middleware"
	transfersvc "github.com/vmunteanu/mdbank/pkg/service/transfer"
	"github.com/vmunteanu/mdbank/webapi/common"
)

// Routes registers the JWT-guarded transfer endpoints:
//   - POST /api/v1/transfers/own-account
//   - POST /api/v1/transfers/intrabank
//   - POST /api/v1/transfers/domestic-bank
func Routes(app *fiber.App, transferSvc *transfersvc.Service, guard *transfersvc.HighRiskGuard, jwtCfg *config.Jwt) {
	protected := middleware.JwtProtected(jwtCfg)
	app.Post("/api/v1/transfers/own-account", protected, OwnAccount(transferSvc, guard))
	app.Post("/api/v1/transfers/intrabank", protected, Intrabank(transferSvc, guard))
	app.Post("/api/v1/transfers/domestic-bank", protected, DomesticBank(transferSvc, guard))
}

// OwnAccount moves money between two of the caller's accounts.
func OwnAccount(transferSvc *transfersvc.Service, guard *transfersvc.HighRiskGuard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, err := common.Username(c)
		if err != nil {
			return common.DomainErrorJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[OwnAccountTransferInput](c)
		if input == nil {
			return err
		}
		if err := guard.Check(input.Amount); err != nil {
			return common.DomainErrorJSON(c, "Transfer requires approval", err)
		}
		res, err := transferSvc.BetweenOwnAccounts(c.Context(), username, transfersvc.OwnAccountCommand{
			FromAccountID: input.FromAccountID,
			ToAccountID:   input.ToAccountID,
			Amount:        input.Amount,
			Description:   input.Description,
		})
		if err != nil {
			return common.DomainErrorJSON(c, "Transfer failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, res.Message, toTransferResponse(res))
	}
}

// Intrabank sends money to another account of the bank by IBAN.
func Intrabank(transferSvc *transfersvc.Service, guard *transfersvc.HighRiskGuard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, err := common.Username(c)
		if err != nil {
			return common.DomainErrorJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[IntrabankTransferInput](c)
		if input == nil {
			return err
		}
		if err := guard.Check(input.Amount); err != nil {
			return common.DomainErrorJSON(c, "Transfer requires approval", err)
		}
		res, err := transferSvc.ToIntrabankAccount(c.Context(), username, transfersvc.IntrabankCommand{
			FromAccountID:       input.FromAccountID,
			ToIBAN:              input.ToIBAN,
			Amount:              input.Amount,
			Currency:            input.Currency,
			BeneficiaryName:     input.BeneficiaryName,
			BeneficiaryBankName: input.BeneficiaryBankName,
			Description:         input.Description,
		})
		if err != nil {
			return common.DomainErrorJSON(c, "Transfer failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, res.Message, toTransferResponse(res))
	}
}

// DomesticBank sends money to an external domestic bank with commission.
func DomesticBank(transferSvc *transfersvc.Service, guard *transfersvc.HighRiskGuard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, err := common.Username(c)
		if err != nil {
			return common.DomainErrorJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[DomesticBankTransferInput](c)
		if input == nil {
			return err
		}
		if err := guard.Check(input.Amount); err != nil {
			return common.DomainErrorJSON(c, "Transfer requires approval", err)
		}
		res, err := transferSvc.ToDomesticBankAccount(c.Context(), username, transfersvc.DomesticBankCommand{
			FromAccountID:       input.FromAccountID,
			ToIBAN:              input.ToIBAN,
			Amount:              input.Amount,
			Currency:            input.Currency,
			BeneficiaryName:     input.BeneficiaryName,
			BeneficiaryBankName: input.BeneficiaryBankName,
			Description:         input.Description,
		})
		if err != nil {
			return common.DomainErrorJSON(c, "Transfer failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, res.Message, toTransferResponse(res))
	}
}
