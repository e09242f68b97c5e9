// file: auth/firebase.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"mentora-hub/logger"
)

// Firebase talks to the Identity Toolkit REST API with a web API key.
type Firebase struct {
	rp *identitytoolkit.RelyingpartyService
}

// NewFirebase creates a provider for the project owning apiKey.
func NewFirebase(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Firebase, error) {
	if apiKey == "" {
		return nil, errors.New("firebase api key is not set")
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity toolkit service: %w", err)
	}
	return &Firebase{rp: svc.Relyingparty}, nil
}

// SignIn verifies an email and password.
func (f *Firebase) SignIn(ctx context.Context, email, password string) (Identity, error) {
	resp, err := f.rp.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return Identity{}, translate(err)
	}
	return Identity{UID: resp.LocalId, Email: resp.Email}, nil
}

// SignUp creates an email/password account.
func (f *Firebase) SignUp(ctx context.Context, email, password string) (Identity, error) {
	if len(password) < MinPasswordLength {
		return Identity{}, ErrWeakPassword
	}
	resp, err := f.rp.SignupNewUser(&identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:    email,
		Password: password,
	}).Context(ctx).Do()
	if err != nil {
		return Identity{}, translate(err)
	}
	logger.Info.Printf("[Firebase.SignUp] created account %s", resp.LocalId)
	return Identity{UID: resp.LocalId, Email: resp.Email}, nil
}

// SendPasswordReset asks the provider to mail a reset link.
func (f *Firebase) SendPasswordReset(ctx context.Context, email string) error {
	_, err := f.rp.GetOobConfirmationCode(&identitytoolkit.Relyingparty{
		RequestType: "PASSWORD_RESET",
		Email:       email,
	}).Context(ctx).Do()
	if err != nil {
		return translate(err)
	}
	return nil
}

// translate maps the provider's error codes onto package errors.
func translate(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}
	code := gerr.Message
	switch {
	case strings.HasPrefix(code, "EMAIL_NOT_FOUND"),
		strings.HasPrefix(code, "INVALID_PASSWORD"),
		strings.HasPrefix(code, "INVALID_LOGIN_CREDENTIALS"),
		strings.HasPrefix(code, "INVALID_EMAIL"):
		return fmt.Errorf("%w: %s", ErrInvalidCredentials, code)
	case strings.HasPrefix(code, "EMAIL_EXISTS"):
		return ErrEmailExists
	case strings.HasPrefix(code, "WEAK_PASSWORD"):
		return ErrWeakPassword
	default:
		return err
	}
}
