package auth

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("missing or invalid token")
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	// Login checks the operator credentials and returns a signed token.
	Login(ctx context.Context, email, password string) (string, error)

	// Verify returns the subject of a valid, unexpired token.
	Verify(token string) (string, error)
}

// Operator is the single back-office account.
type Operator struct {
	Email        string
	PasswordHash string
}

type contextKey struct{}

// Subject returns the authenticated operator stored by Middleware.
func Subject(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(contextKey{}).(string)
	return s, ok
}
