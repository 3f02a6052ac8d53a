package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rongwang/nyayadrishti/internal/api"
	"github.com/rongwang/nyayadrishti/internal/config"
	"github.com/rongwang/nyayadrishti/internal/repository"
	"github.com/rongwang/nyayadrishti/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP portal",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Create repository
	repo, closeRepo, err := openRepository(cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	// Create service
	svc := service.Build(cfg, repo, logger)

	// Create API handler
	handler := api.NewHandler(svc, api.CookieOptions{
		Name:   cfg.Auth.CookieName,
		Secure: cfg.Auth.SecureCookie,
		MaxAge: cfg.Auth.EvidenceTTL,
	}, logger)

	// Set up Gin router
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler.SetupRoutes(router)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Warm the dataset cache so the first login does not pay for the merge
	go func() {
		if _, err := svc.Reload(ctx); err != nil {
			logger.Warn("initial dataset load failed", zap.Error(err))
		}
	}()

	// Start server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", server.Addr), zap.String("store", cfg.Store.Driver))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// openRepository returns the configured storage backend and its cleanup
func openRepository(cfg *config.Config, logger *zap.Logger) (repository.Repository, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		// Set up database connection
		db, err := config.SetupDatabase(cfg, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to set up database: %w", err)
		}
		return repository.NewPostgresRepository(db), func() { _ = db.Close() }, nil
	default:
		return repository.NewFileRepository(cfg.Store.Dir), func() {}, nil
	}
}
