package service

import (
	"go.uber.org/zap"

	"github.com/rongwang/nyayadrishti/internal/auth"
	"github.com/rongwang/nyayadrishti/internal/config"
	"github.com/rongwang/nyayadrishti/internal/dataset"
	"github.com/rongwang/nyayadrishti/internal/notes"
	"github.com/rongwang/nyayadrishti/internal/repository"
)

// Build assembles a DefaultService from configuration and a storage backend
func Build(cfg *config.Config, repo repository.Repository, logger *zap.Logger) Service {
	doc := func(name string) *repository.DocumentStore {
		return repository.NewDocumentStore(repo, name, logger)
	}

	loader := dataset.FileLoader(cfg.Data.CasesPath, cfg.Data.HearingsPath, cfg.Data.ChunkSize, logger)

	return NewDefaultService(Dependencies{
		Datasets:    dataset.NewCache(loader, cfg.Data.CacheTTL),
		Credentials: auth.NewCredentialStore(doc(repository.DocPasswords), logger),
		Sessions:    auth.NewSessionStore(doc(repository.DocSessions), logger),
		Notes:       notes.NewStore(doc(repository.DocNotes), doc(repository.DocReminders), logger),
		Evidence:    auth.NewEvidenceCodec(cfg.Auth.CookieSecret, cfg.Auth.EvidenceTTL),
		Logger:      logger,
	}, Options{
		AutoLoginGrace:    cfg.Auth.AutoLoginGrace,
		MinPasswordLength: cfg.Auth.MinPasswordLength,
		EvidenceTTL:       cfg.Auth.EvidenceTTL,
	})
}
