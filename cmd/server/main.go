package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tasktracker/task-tracker-api/internal/config"
	"github.com/tasktracker/task-tracker-api/internal/database"
	"github.com/tasktracker/task-tracker-api/internal/handlers"
	"github.com/tasktracker/task-tracker-api/internal/logger"
	"github.com/tasktracker/task-tracker-api/internal/repository"
	"github.com/tasktracker/task-tracker-api/internal/router"
	"github.com/tasktracker/task-tracker-api/internal/services"
	"github.com/tasktracker/task-tracker-api/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl := logger.New(logger.Config{Level: cfg.Logger.Level, Encoding: cfg.Logger.Encoding})
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg.Database, zl)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Run migrations and seed the fixed users
	if err := database.Migrate(db, zl); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := database.Seed(ctx, db, cfg.Database.SeedSampleData, zl); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	store, err := newStore(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	// Initialize repositories, services and handlers
	taskRepo := repository.NewTaskRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	userRepo := repository.NewUserRepository(db)

	h := handlers.Handlers{
		Users:       handlers.NewUserHandler(services.NewUserService(userRepo)),
		Tasks:       handlers.NewTaskHandler(services.NewTaskService(taskRepo, userRepo, store, zl)),
		Notes:       handlers.NewNoteHandler(services.NewNoteService(noteRepo, taskRepo, store, zl)),
		Attachments: handlers.NewAttachmentHandler(services.NewAttachmentService(attachmentRepo, noteRepo, store, zl, cfg.MaxUploadBytes)),
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router.New(zl, cfg.CORSAllowOrigins, h),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("storage", cfg.Storage.Backend),
			zap.String("version", handlers.Version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newStore(ctx context.Context, cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Backend {
	case config.StorageMinio:
		return storage.NewMinioStore(ctx, cfg.Endpoint, cfg.AccessKey, cfg.SecretKey, cfg.Bucket)
	default:
		return storage.NewLocalStore(cfg.UploadDir)
	}
}
