// file: auth/memory.go
package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"mentora-hub/logger"
)

type account struct {
	uid  string
	hash []byte
}

// Memory keeps bcrypt-hashed accounts in process for local runs and tests.
type Memory struct {
	mu       sync.Mutex
	accounts map[string]account
	resets   []string
}

// NewMemory returns a provider with no accounts.
func NewMemory() *Memory {
	return &Memory{accounts: make(map[string]account)}
}

// SignIn checks the password against the stored hash.
func (m *Memory) SignIn(_ context.Context, email, password string) (Identity, error) {
	email = normalizeEmail(email)
	m.mu.Lock()
	acct, ok := m.accounts[email]
	m.mu.Unlock()
	if !ok || !checkPasswordHash(password, acct.hash) {
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{UID: acct.uid, Email: email}, nil
}

// SignUp hashes the password and creates an account.
func (m *Memory) SignUp(_ context.Context, email, password string) (Identity, error) {
	email = normalizeEmail(email)
	if email == "" {
		return Identity{}, ErrInvalidCredentials
	}
	if len(password) < MinPasswordLength {
		return Identity{}, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Identity{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.accounts[email]; exists {
		return Identity{}, ErrEmailExists
	}
	uid := uuid.NewString()
	m.accounts[email] = account{uid: uid, hash: hash}
	return Identity{UID: uid, Email: email}, nil
}

// SendPasswordReset records the request; there is no mailer in memory mode.
func (m *Memory) SendPasswordReset(_ context.Context, email string) error {
	email = normalizeEmail(email)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[email]; !ok {
		return ErrUserNotFound
	}
	m.resets = append(m.resets, email)
	logger.Info.Printf("[auth.Memory] password reset requested for %s", email)
	return nil
}

// Resets lists addresses that asked for a reset.
func (m *Memory) Resets() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.resets...)
}

// checkPasswordHash verifies a plain-text password against a bcrypt hash.
func checkPasswordHash(password string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
