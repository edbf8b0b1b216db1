// Package auth registers users and exchanges credentials for signed JWTs.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vmunteanu/mdbank/pkg/config"
	"github.com/vmunteanu/mdbank/pkg/domain"
	"github.com/vmunteanu/mdbank/pkg/repository"
)

// Service handles registration, login and token issuance.
type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

func New(
	uow repository.UnitOfWork,
	cfg *config.Jwt,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// RegisterCommand carries the fields of a sign-up request, already validated
// at the transport layer.
type RegisterCommand struct {
	Username    string
	Email       string
	PhoneNumber string
	Password    string
}

// Register creates a user with a bcrypt-hashed password. The username must
// not be taken.
func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*domain.User, error) {
	log := s.logger.With("context", "Register", "username", cmd.Username)
	log.Debug("Register called")

	hash, err := HashPassword(cmd.Password)
	if err != nil {
		log.Error("Register failed", "error", err)
		return nil, err
	}

	var created *domain.User
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		taken, err := uow.Users().ExistsByUsername(ctx, cmd.Username)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: %s", domain.ErrUserAlreadyExists, cmd.Username)
		}
		created = &domain.User{
			Username:     cmd.Username,
			Email:        cmd.Email,
			PhoneNumber:  cmd.PhoneNumber,
			PasswordHash: hash,
			CreatedAt:    time.Now(),
		}
		return uow.Users().Create(ctx, created)
	})
	if err != nil {
		log.Error("Register failed", "error", err)
		return nil, err
	}
	log.Info("Register successful", "userID", created.ID)
	return created, nil
}

// Login verifies the credentials and returns a signed token. A bad username
// and a bad password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	log := s.logger.With("context", "Login", "username", username)
	log.Debug("Login called")

	var u *domain.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		u, err = uow.Users().FindByUsername(ctx, username)
		return err
	})
	if err != nil {
		log.Error("Login failed", "error", err)
		return "", err
	}

	// Hash comparison runs in both branches to keep response timing even.
	const dummyHash = "$2a$10$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"
	if u == nil {
		_ = CheckPasswordHash(password, dummyHash)
		log.Error("Login failed", "error", domain.ErrInvalidCredentials)
		return "", domain.ErrInvalidCredentials
	}
	if !CheckPasswordHash(password, u.PasswordHash) {
		log.Error("Login failed", "error", domain.ErrInvalidCredentials)
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(u)
	if err != nil {
		log.Error("Login failed", "error", err)
		return "", err
	}
	log.Info("Login successful", "userID", u.ID)
	return token, nil
}

func (s *Service) generateToken(u *domain.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = u.Username
	claims["user_id"] = float64(u.ID)
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	return token.SignedString([]byte(s.cfg.Secret))
}

// CurrentUsername extracts the acting username from a verified token, as
// stored by the JWT middleware on the request context.
func CurrentUsername(token *jwt.Token) (string, error) {
	if token == nil {
		return "", domain.ErrUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrUnauthorized
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return "", domain.ErrUnauthorized
	}
	return username, nil
}
