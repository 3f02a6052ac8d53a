package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rongwang/nyayadrishti/internal/repository"
)

// TokenValidator checks a presented session token
type TokenValidator interface {
	ValidateToken(ctx context.Context, name, token string) bool
}

// SessionStore keeps one opaque token per lower-cased user name. Issuing a
// new token replaces the previous one. Tokens do not expire.
type SessionStore struct {
	store  *repository.DocumentStore
	logger *zap.Logger
}

// NewSessionStore creates a session store over the sessions document
func NewSessionStore(store *repository.DocumentStore, logger *zap.Logger) *SessionStore {
	return &SessionStore{store: store, logger: logger}
}

func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// CreateToken issues and persists a fresh token for name
func (s *SessionStore) CreateToken(ctx context.Context, name string) (string, error) {
	key := UserKey(name)
	if key == "" {
		return "", fmt.Errorf("error creating token: empty user name")
	}

	token := newToken()
	err := s.store.Update(ctx, func(entries map[string]string) {
		entries[key] = token
	})
	if err != nil {
		return "", fmt.Errorf("error creating token: %w", err)
	}
	s.logger.Info("session token issued", zap.String("user", key))
	return token, nil
}

// ValidateToken reports whether token is the live token for name. An
// unreadable store validates nothing.
func (s *SessionStore) ValidateToken(ctx context.Context, name, token string) bool {
	key := UserKey(name)
	if key == "" || token == "" {
		return false
	}
	entries, err := s.store.Read(ctx)
	if err != nil {
		s.logger.Warn("sessions unavailable", zap.Error(err))
		return false
	}
	stored, ok := entries[key]
	if !ok || stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(token)) == 1
}

// DeleteToken revokes the token for name. Deleting a missing token is not an
// error.
func (s *SessionStore) DeleteToken(ctx context.Context, name string) error {
	key := UserKey(name)
	err := s.store.Update(ctx, func(entries map[string]string) {
		delete(entries, key)
	})
	if err != nil {
		return fmt.Errorf("error deleting token: %w", err)
	}
	s.logger.Info("session token revoked", zap.String("user", key))
	return nil
}
