// Package testutils wires a full Fiber app onto the in-memory store so
// handler tests can exercise routes end to end without a database.
package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"github.com/vmunteanu/mdbank/internal/fixtures/memuow"
	"github.com/vmunteanu/mdbank/pkg/config"
	"github.com/vmunteanu/mdbank/pkg/currency"
	accountsvc "github.com/vmunteanu/mdbank/pkg/service/account"
	authsvc "github.com/vmunteanu/mdbank/pkg/service/auth"
	transfersvc "github.com/vmunteanu/mdbank/pkg/service/transfer"
	"github.com/vmunteanu/mdbank/webapi"
)

const JwtSecret = "test-secret"

// NewTestApp builds the app on top of the given store.
func NewTestApp(t *testing.T, store *memuow.Store) *fiber.App {
	t.Helper()
	cfg := &config.App{
		Env:    "test",
		Jwt:    &config.Jwt{Secret: JwtSecret, Expiry: time.Hour},
		Server: &config.Server{},
		Transfer: &config.Transfer{
			DomesticFeePercent: "0.01",
			HighRiskLimit:      "10000",
			MaxAttempts:        3,
			RetryBackoff:       time.Millisecond,
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uow := memuow.NewUoW(store)
	converter := currency.NewConverter()

	return webapi.NewApp(webapi.Deps{
		Auth:     authsvc.New(uow, cfg.Jwt, logger),
		Account:  accountsvc.New(uow, converter, logger),
		Transfer: transfersvc.New(uow, converter, cfg.Transfer, logger),
		Guard:    transfersvc.NewHighRiskGuard(cfg.Transfer),
		Config:   cfg,
	})
}

// MakeRequest performs a JSON request against the app. A non-empty token is
// sent as a bearer credential.
func MakeRequest(t *testing.T, app *fiber.App, method, target, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// DecodeBody unmarshals the response body into a generic map.
func DecodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close() //nolint:errcheck
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// RegisterAndLogin creates the user over the API and returns a valid token.
func RegisterAndLogin(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	resp := MakeRequest(t, app, fiber.MethodPost, "/auth/register", "", fiber.Map{
		"username": username,
		"email":    username + "@example.com",
		"password": password,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close() //nolint:errcheck

	resp = MakeRequest(t, app, fiber.MethodPost, "/auth/login", "", fiber.Map{
		"username": username,
		"password": password,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := DecodeBody(t, resp)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "login response has a data object")
	token, ok := data["token"].(string)
	require.True(t, ok, "login response carries a token")
	return token
}
