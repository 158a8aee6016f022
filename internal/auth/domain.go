package auth

import (
	"context"

	"github.com/storefront-admin/storefront-admin/internal/users"
)

// UserLookup finds the account a login refers to.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (users.User, error)
}

// LoginRequest is the body of the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required"`
}

// LoginResponse carries the signed token.
type LoginResponse struct {
	Token string `json:"token"`
}
