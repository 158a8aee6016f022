package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/storefront-admin/storefront-admin/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	users  UserLookup
	issuer *Issuer
	tokens TokenStore
	logger *slog.Logger
}

// NewService constructs a new Service.
func NewService(users UserLookup, issuer *Issuer, tokens TokenStore) *Service {
	return &Service{users: users, issuer: issuer, tokens: tokens, logger: slog.Default()}
}

// WithLogger sets the logger used by Middleware for server-side failures.
func (s *Service) WithLogger(logger *slog.Logger) *Service {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Login validates email/password credentials and returns a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, shared.ErrNotFound) {
		return "", shared.ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("auth: login: %w", err)
	}
	if !user.HasPassword() {
		return "", shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return "", shared.ErrInvalidCredentials
	}

	token, claims, err := s.issuer.Issue(user)
	if err != nil {
		return "", err
	}
	if err := s.tokens.Register(ctx, claims.ID, user.ID, s.issuer.TTL()); err != nil {
		return "", err
	}
	return token, nil
}

// Authenticate verifies a bearer token and checks it was not revoked.
func (s *Service) Authenticate(ctx context.Context, raw string) (*shared.Principal, error) {
	claims, err := s.issuer.Parse(raw)
	if err != nil {
		return nil, err
	}
	active, err := s.tokens.Active(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, fmt.Errorf("%w: token revoked", shared.ErrUnauthorized)
	}
	return claims.Principal()
}

// Logout revokes the token the principal authenticated with.
func (s *Service) Logout(ctx context.Context, principal *shared.Principal) error {
	if principal == nil || principal.TokenID == "" {
		return shared.ErrUnauthorized
	}
	return s.tokens.Revoke(ctx, principal.TokenID)
}
