package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"examparse/internal/config"
	"examparse/internal/extract"
	"examparse/internal/handler"
	"examparse/internal/logger"
	"examparse/internal/pdftext"
	"examparse/internal/port"
	"examparse/internal/repository/memory"
	"examparse/internal/repository/postgres"
	"examparse/internal/router"
	"examparse/internal/service"
	s3storage "examparse/internal/storage/s3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.Log)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize repository
	var repo port.ExtractionRepository
	switch cfg.Store.Provider {
	case "postgres":
		var db *sqlx.DB
		db, err = postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer func() { _ = db.Close() }()
		repo = postgres.NewExtractionRepo(db)
	default:
		repo = memory.NewExtractionRepo(cfg.Store.MemoryMaxEntries)
	}

	// Initialize storage
	var archive port.ObjectStorage
	if cfg.Storage.Enabled() {
		archive, err = s3storage.NewArchive(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 archive: %w", err)
		}
	}

	anchor, err := extract.ParseAnchorMode(cfg.Extract.AnchorMode)
	if err != nil {
		return fmt.Errorf("invalid extract config: %w", err)
	}
	pipeline := extract.New(extract.Config{
		Opener:     pdftext.NewOpener(),
		AnchorMode: anchor,
		Logger:     log.With("component", "extract"),
	})

	// Initialize services
	extractionSvc := service.NewExtractionService(
		repo, archive, pdftext.NewValidator(), pipeline, &cfg.Upload, &cfg.S3, log,
	)

	// Initialize handlers
	extractionH := handler.NewExtractionHandler(extractionSvc)
	healthH := handler.NewHealthHandler(repo)

	r := router.Setup(cfg, log, extractionH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			"addr", cfg.Server.Port, "store", cfg.Store.Provider, "storage", cfg.Storage.Provider, "anchor_mode", anchor)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
