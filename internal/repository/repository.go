package repository

import (
	"context"
	"errors"
)

// Documents held by the key-value stores
const (
	DocPasswords = "passwords"
	DocSessions  = "sessions"
	DocNotes     = "notes"
	DocReminders = "reminders"
)

// ErrInvalidDocument is returned for an empty or unsafe document name
var ErrInvalidDocument = errors.New("invalid document name")

// Repository interface defines the methods that any repository implementation must satisfy.
// A document is a flat string-to-string map that is always read and written whole.
type Repository interface {
	// Load returns every entry of the document. A document that was never
	// saved is empty, not an error.
	Load(ctx context.Context, document string) (map[string]string, error)
	// Save replaces the document with entries
	Save(ctx context.Context, document string, entries map[string]string) error
}
