// Package services implements the server's use cases on top of the
// repositories. Services validate input, enforce ownership, and translate
// repository errors; HTTP handlers stay thin.
package services

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/saciinol/watchkeeper/internal/common"
	"github.com/saciinol/watchkeeper/internal/models"
	"github.com/saciinol/watchkeeper/internal/server/auth"
	"github.com/saciinol/watchkeeper/internal/server/config"
	srvmodels "github.com/saciinol/watchkeeper/internal/server/models"
	"github.com/saciinol/watchkeeper/internal/server/repositories/users"
)

const minPasswordLength = 6

// AuthResult pairs the public identity with a signed token.
type AuthResult struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type AuthService struct {
	repo                  users.Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewAuthService(repo users.Repository, cfg *config.Config) *AuthService {
	return &AuthService{
		repo:                  repo,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

func validCredentials(email, password string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email", common.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrValidation, minPasswordLength)
	}
	return nil
}

// Register creates an account and signs a token for it. A taken email
// surfaces as common.ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	if err := validCredentials(email, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.repo.Create(ctx, &srvmodels.User{Name: name, Email: email, PasswordHash: string(hash)})
	if err != nil {
		return nil, err
	}

	return s.result(user)
}

// Login verifies the credentials and signs a token. Both an unknown email
// and a wrong password surface as common.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrUnauthorized
	}

	return s.result(user)
}

// UserFromToken resolves a bearer token to the account it was signed for.
func (s *AuthService) UserFromToken(ctx context.Context, token string) (*srvmodels.User, error) {
	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	return user, nil
}

func (s *AuthService) result(user *srvmodels.User) (*AuthResult, error) {
	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}
	return &AuthResult{User: user.Public(), Token: token}, nil
}
