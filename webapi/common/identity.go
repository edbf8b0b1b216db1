package common

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/vmunteanu/mdbank/pkg/domain"
	authsvc "github.com/vmunteanu/mdbank/pkg/service/auth"
)

// Username extracts the acting username from the verified JWT the middleware
// stored on the request.
func Username(c *fiber.Ctx) (string, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return "", domain.ErrUnauthorized
	}
	return authsvc.CurrentUsername(token)
}
