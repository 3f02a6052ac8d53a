// Package auth holds the credential store, the session token store and the
// auto-login decision used by the portal.
package auth

import (
	"context"
	"crypto/subtle"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rongwang/nyayadrishti/internal/repository"
)

// UserKey is the store key for a user name
func UserKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DefaultPassword is the bootstrap password of a user who never set one:
// the first four characters of the name upper-cased, followed by "01".
// Shorter names use what they have.
func DefaultPassword(name string) string {
	runes := []rune(name)
	if len(runes) > 4 {
		runes = runes[:4]
	}
	for i, r := range runes {
		runes[i] = unicode.ToUpper(r)
	}
	return string(runes) + "01"
}

// CredentialStore maps lower-cased user names to bcrypt password hashes
type CredentialStore struct {
	store  *repository.DocumentStore
	cost   int
	logger *zap.Logger
}

// NewCredentialStore creates a credential store over the passwords document
func NewCredentialStore(store *repository.DocumentStore, logger *zap.Logger) *CredentialStore {
	return &CredentialStore{
		store:  store,
		cost:   bcrypt.DefaultCost,
		logger: logger,
	}
}

// entries loads the hashes. A load failure yields an empty map so users fall
// back to their default password instead of being locked out.
func (s *CredentialStore) entries(ctx context.Context) map[string]string {
	entries, err := s.store.Read(ctx)
	if err != nil {
		s.logger.Warn("credentials unavailable, using defaults", zap.Error(err))
		return map[string]string{}
	}
	return entries
}

// UserExists reports whether the user has set a password
func (s *CredentialStore) UserExists(ctx context.Context, name string) bool {
	_, ok := s.entries(ctx)[UserKey(name)]
	return ok
}

// IsFirstLogin reports whether the user still logs in with the default password
func (s *CredentialStore) IsFirstLogin(ctx context.Context, name string) bool {
	return !s.UserExists(ctx, name)
}

// VerifyPassword checks password against the stored hash, or against the
// default password when the user has none. Surrounding spaces in the name
// are ignored for both.
func (s *CredentialStore) VerifyPassword(ctx context.Context, name, password string) bool {
	name = strings.TrimSpace(name)
	hash, ok := s.entries(ctx)[UserKey(name)]
	if !ok {
		return subtle.ConstantTimeCompare([]byte(password), []byte(DefaultPassword(name))) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// SetPassword stores a new hash for the user, replacing any previous one.
// It reports false when hashing or persisting fails.
func (s *CredentialStore) SetPassword(ctx context.Context, name, password string) bool {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		s.logger.Warn("error hashing password", zap.Error(err))
		return false
	}

	key := UserKey(name)
	err = s.store.Update(ctx, func(entries map[string]string) {
		entries[key] = string(hash)
	})
	if err != nil {
		s.logger.Error("error saving password", zap.String("user", key), zap.Error(err))
		return false
	}
	s.logger.Info("password set", zap.String("user", key))
	return true
}
