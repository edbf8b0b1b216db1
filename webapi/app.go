// Package webapi assembles the Fiber application from the route packages.
package webapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/vmunteanu/mdbank/pkg/config"
	accountsvc "github.com/vmunteanu/mdbank/pkg/service/account"
	authsvc "github.com/vmunteanu/mdbank/pkg/service/auth"
	transfersvc "github.com/vmunteanu/mdbank/pkg/service/transfer"
	"github.com/vmunteanu/mdbank/webapi/account"
	"github.com/vmunteanu/mdbank/webapi/auth"
	"github.com/vmunteanu/mdbank/webapi/common"
	"github.com/vmunteanu/mdbank/webapi/transfer"
)

// Deps carries the services the routes are built from.
type Deps struct {
	Auth     *authsvc.Service
	Account  *accountsvc.Service
	Transfer *transfersvc.Service
	Guard    *transfersvc.HighRiskGuard
	Config   *config.App
}

// NewApp builds the Fiber app with rate limiting, panic recovery and all
// routes registered.
func NewApp(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ProblemDetailsJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	app.Use(limiter.New(limiter.Config{
		Max:        25,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("mdbank is up")
	})

	auth.Routes(app, deps.Auth)
	account.Routes(app, deps.Account, deps.Config.Jwt)
	transfer.Routes(app, deps.Transfer, deps.Guard, deps.Config.Jwt)

	return app
}
