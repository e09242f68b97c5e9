// file: services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mentora-hub/auth"
	"mentora-hub/logger"
	"mentora-hub/models"
	"mentora-hub/store"
)

// ErrSelfDemotion stops an admin from removing their own access.
var ErrSelfDemotion = errors.New("you cannot demote yourself")

// UserService pairs the identity provider with users/{uid} role documents.
type UserService struct {
	store    store.Store
	provider auth.Provider
}

// NewUserService creates the account service. provider may be nil for the
// command line, which only changes roles.
func NewUserService(s store.Store, provider auth.Provider) *UserService {
	return &UserService{store: s, provider: provider}
}

// SignUp creates an account and its student role document.
func (u *UserService) SignUp(ctx context.Context, email, password string) (models.User, error) {
	id, err := u.provider.SignUp(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return models.User{}, err
	}
	user := models.User{UID: id.UID, Email: id.Email, Role: models.RoleStudent}
	if err := u.store.Set(ctx, models.CollectionUsers, user.UID, user.Fields()); err != nil {
		logger.Error.Printf("[UserService.SignUp] account %s created but profile write failed: %v", user.UID, err)
		return user, fmt.Errorf("failed to save user profile: %w", err)
	}
	logger.Info.Printf("[UserService.SignUp] new student account %s", user.Email)
	return user, nil
}

// SignIn verifies credentials and resolves the role.
func (u *UserService) SignIn(ctx context.Context, email, password string) (models.User, error) {
	id, err := u.provider.SignIn(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return models.User{}, err
	}
	role, err := u.ResolveRole(ctx, id.UID)
	if err != nil {
		return models.User{}, err
	}
	return models.User{UID: id.UID, Email: id.Email, Role: role}, nil
}

// ResolveRole reads the role from users/{uid}. No document means student;
// any other failure is returned so callers can hold the page.
func (u *UserService) ResolveRole(ctx context.Context, uid string) (models.Role, error) {
	rec, err := u.store.Get(ctx, models.CollectionUsers, uid)
	if errors.Is(err, store.ErrNotFound) {
		return models.RoleStudent, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve role for %s: %w", uid, err)
	}
	return models.UserFromFields(rec.ID, rec.Fields).Role, nil
}

// SendPasswordReset asks the provider to mail a reset link.
func (u *UserService) SendPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return auth.ErrUserNotFound
	}
	return u.provider.SendPasswordReset(ctx, email)
}

// SetRole writes the role on users/{uid}, creating the document if needed.
func (u *UserService) SetRole(ctx context.Context, uid string, role models.Role) error {
	if uid == "" {
		return errors.New("uid is required")
	}
	if role != models.RoleAdmin && role != models.RoleStudent {
		return fmt.Errorf("unknown role %q", role)
	}
	err := u.store.Update(ctx, models.CollectionUsers, uid, map[string]interface{}{"role": string(role)})
	if errors.Is(err, store.ErrNotFound) {
		err = u.store.Set(ctx, models.CollectionUsers, uid, models.User{UID: uid, Role: role}.Fields())
	}
	if err != nil {
		return fmt.Errorf("failed to set role for %s: %w", uid, err)
	}
	logger.Info.Printf("[UserService.SetRole] %s is now %s", uid, role)
	return nil
}

// Demote sets target back to student. An admin cannot demote themselves.
func (u *UserService) Demote(ctx context.Context, actorUID, targetUID string) error {
	if actorUID == targetUID {
		return ErrSelfDemotion
	}
	err := u.store.Update(ctx, models.CollectionUsers, targetUID, map[string]interface{}{"role": string(models.RoleStudent)})
	if err != nil {
		return fmt.Errorf("failed to demote %s: %w", targetUID, err)
	}
	logger.Info.Printf("[UserService.Demote] %s demoted %s", actorUID, targetUID)
	return nil
}

// Admins lists users holding the admin role.
func (u *UserService) Admins(ctx context.Context) ([]models.User, error) {
	recs, err := u.store.Query(ctx, models.CollectionUsers, store.Query{
		Where: []store.Filter{{Field: "role", Value: string(models.RoleAdmin)}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	admins := make([]models.User, 0, len(recs))
	for _, r := range recs {
		admins = append(admins, models.UserFromFields(r.ID, r.Fields))
	}
	return admins, nil
}
