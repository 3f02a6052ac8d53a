package repository

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/rongwang/nyayadrishti/internal/metrics"
)

// DocumentStore serializes the load-modify-save cycle of one document.
// Create one per document and share it; the lock is in-process.
type DocumentStore struct {
	repo     Repository
	document string
	logger   *zap.Logger

	mu sync.Mutex
}

// NewDocumentStore creates a store for document backed by repo
func NewDocumentStore(repo Repository, document string, logger *zap.Logger) *DocumentStore {
	return &DocumentStore{
		repo:     repo,
		document: document,
		logger:   logger.With(zap.String("document", document)),
	}
}

// Document returns the document name
func (s *DocumentStore) Document() string {
	return s.document
}

// Read returns a snapshot of the document
func (s *DocumentStore) Read(ctx context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Load(ctx, s.document)
}

// Update loads the document, applies fn and saves the result while holding
// the store lock. When loading fails nothing is saved, so a broken document
// is never overwritten with a partial one.
func (s *DocumentStore) Update(ctx context.Context, fn func(entries map[string]string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.repo.Load(ctx, s.document)
	if err != nil {
		s.logger.Warn("load before update failed", zap.Error(err))
		metrics.RecordStoreWrite(s.document, false)
		return err
	}

	fn(entries)

	if err := s.repo.Save(ctx, s.document, entries); err != nil {
		s.logger.Error("save failed", zap.Error(err))
		metrics.RecordStoreWrite(s.document, false)
		return err
	}
	metrics.RecordStoreWrite(s.document, true)
	return nil
}
