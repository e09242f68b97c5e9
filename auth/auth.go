// Package auth delegates sign-in, sign-up and password resets to an identity provider.
// File: auth/auth.go
package auth

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("an account with this email already exists")
	ErrWeakPassword       = errors.New("password should be at least 6 characters")
	ErrUserNotFound       = errors.New("no account for this email")
)

// Identity is a signed-in account as reported by the provider.
type Identity struct {
	UID   string
	Email string
}

// Provider is implemented by each identity backend.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (Identity, error)
	SignUp(ctx context.Context, email, password string) (Identity, error)
	SendPasswordReset(ctx context.Context, email string) error
}

// MinPasswordLength matches the provider's own rule.
const MinPasswordLength = 6
