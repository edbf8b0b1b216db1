// Package auth exposes the registration and login routes.
package auth

import (
	"github.com/gofiber/fiber/v2"
	authsvc "github.com/vmunteanu/mdbank/pkg/service/auth"
	"github.com/vmunteanu/mdbank/webapi/common"
)

func Routes(app *fiber.App, authSvc *authsvc.Service) {
	app.Post("/auth/register", Register(authSvc))
	app.Post("/auth/login", Login(authSvc))
}

// Register creates a new user account.
func Register(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err
		}
		u, err := authSvc.Register(c.Context(), authsvc.RegisterCommand{
			Username:    input.Username,
			Email:       input.Email,
			PhoneNumber: input.PhoneNumber,
			Password:    input.Password,
		})
		if err != nil {
			return common.DomainErrorJSON(c, "Registration failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User registered", UserResponse{
			ID:          u.ID,
			Username:    u.Username,
			Email:       u.Email,
			PhoneNumber: u.PhoneNumber,
		})
	}
}

// Login authenticates the user and returns a JWT token.
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		token, err := authSvc.Login(c.Context(), input.Username, input.Password)
		if err != nil {
			return common.DomainErrorJSON(c, "Invalid username or password", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Success login", fiber.Map{"token": token})
	}
}
