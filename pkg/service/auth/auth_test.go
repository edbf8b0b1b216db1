package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunteanu/mdbank/internal/fixtures/memuow"
	"github.com/vmunteanu/mdbank/pkg/config"
	"github.com/vmunteanu/mdbank/pkg/domain"
	authsvc "github.com/vmunteanu/mdbank/pkg/service/auth"
)

const testSecret = "test-secret"

func newService(store *memuow.Store) *authsvc.Service {
	cfg := &config.Jwt{Secret: testSecret, Expiry: time.Hour}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return authsvc.New(memuow.NewUoW(store), cfg, logger)
}

func TestRegisterAndLogin(t *testing.T) {
	store := memuow.New()
	svc := newService(store)

	u, err := svc.Register(context.Background(), authsvc.RegisterCommand{
		Username:    "alice",
		Email:       "alice@example.com",
		PhoneNumber: "+37360000000",
		Password:    "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.NotEqual(t, "s3cret-pass", u.PasswordHash, "password is stored hashed")

	token, err := svc.Login(context.Background(), "alice", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	store := memuow.New()
	svc := newService(store)

	_, err := svc.Register(context.Background(), authsvc.RegisterCommand{
		Username: "alice", Email: "alice@example.com", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), authsvc.RegisterCommand{
		Username: "alice", Email: "other@example.com", Password: "another-pass",
	})
	require.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestLoginWrongPassword(t *testing.T) {
	store := memuow.New()
	svc := newService(store)

	_, err := svc.Register(context.Background(), authsvc.RegisterCommand{
		Username: "alice", Email: "alice@example.com", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	store := memuow.New()
	svc := newService(store)

	_, err := svc.Login(context.Background(), "ghost", "whatever")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestTokenClaims(t *testing.T) {
	store := memuow.New()
	svc := newService(store)

	_, err := svc.Register(context.Background(), authsvc.RegisterCommand{
		Username: "alice", Email: "alice@example.com", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	tokenString, err := svc.Login(context.Background(), "alice", "s3cret-pass")
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "alice", claims["username"])
	assert.EqualValues(t, 1, claims["user_id"])
	exp, _ := claims.GetExpirationTime()
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, time.Minute)

	username, err := authsvc.CurrentUsername(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestCurrentUsernameRejectsBadTokens(t *testing.T) {
	_, err := authsvc.CurrentUsername(nil)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	token := jwt.New(jwt.SigningMethodHS256)
	_, err = authsvc.CurrentUsername(token)
	require.ErrorIs(t, err, domain.ErrUnauthorized, "token without a username claim")
}
