package auth_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunteanu/mdbank/internal/fixtures/memuow"
	"github.com/vmunteanu/mdbank/webapi/testutils"
)

func TestRegisterLoginFlow(t *testing.T) {
	app := testutils.NewTestApp(t, memuow.New())

	token := testutils.RegisterAndLogin(t, app, "alice", "s3cret-pass")
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicate(t *testing.T) {
	app := testutils.NewTestApp(t, memuow.New())

	payload := fiber.Map{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "s3cret-pass",
	}
	resp := testutils.MakeRequest(t, app, fiber.MethodPost, "/auth/register", "", payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close() //nolint:errcheck

	resp = testutils.MakeRequest(t, app, fiber.MethodPost, "/auth/register", "", payload)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp.Body.Close() //nolint:errcheck
}

func TestRegisterValidation(t *testing.T) {
	app := testutils.NewTestApp(t, memuow.New())

	resp := testutils.MakeRequest(t, app, fiber.MethodPost, "/auth/register", "", fiber.Map{
		"username": "al",
		"email":    "not-an-email",
		"password": "short",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close() //nolint:errcheck
}

func TestLoginBadCredentials(t *testing.T) {
	app := testutils.NewTestApp(t, memuow.New())
	testutils.RegisterAndLogin(t, app, "alice", "s3cret-pass")

	resp := testutils.MakeRequest(t, app, fiber.MethodPost, "/auth/login", "", fiber.Map{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close() //nolint:errcheck

	resp = testutils.MakeRequest(t, app, fiber.MethodPost, "/auth/login", "", fiber.Map{
		"username": "ghost",
		"password": "whatever",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close() //nolint:errcheck
}
