// Package app assembles the collector's services from configuration.
package app

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"ssdcollector/internal/audio"
	"ssdcollector/internal/capture"
	"ssdcollector/internal/catalog"
	"ssdcollector/internal/config"
	"ssdcollector/internal/database"
	"ssdcollector/internal/notify"
	"ssdcollector/internal/repository"
	"ssdcollector/internal/service"
	"ssdcollector/internal/storage"
	"ssdcollector/internal/upload"
)

// App holds the wired services shared by the server and the CLI
type App struct {
	Config   *config.Config
	Catalog  *catalog.Catalog
	Capture  *capture.FileStore
	Pending  *service.PendingStore
	Sync     *service.SyncService
	Backup   *service.BackupService
	Prompts  *audio.PromptService
	Uploader upload.Uploader
	Logger   *zap.Logger

	closers []io.Closer
}

// New opens the configured pending store backend and builds every service
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Catalog: catalog.Default(), Logger: logger}

	blobs, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Capture, err = capture.NewFileStore(cfg.RecordingsPath)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open recordings directory: %w", err)
	}

	a.Prompts, err = audio.NewPromptService(cfg.PromptsPath, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open prompts directory: %w", err)
	}

	if cfg.APIToken == "" {
		logger.Warn("API_TOKEN not configured, uploads are recorded locally only")
		a.Uploader = &upload.StubUploader{}
	} else {
		a.Uploader = upload.NewHTTPUploader(cfg.APIBaseURL, cfg.APIToken, a.Capture, cfg.UploadTimeout, logger)
	}

	notifier, err := notify.NewEmailNotifier(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.NotifyEmail, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Pending = service.NewPendingStore(blobs, a.Capture, logger)
	if err := a.Pending.Load(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load pending sessions: %w", err)
	}
	a.Sync = service.NewSyncService(a.Pending, a.Uploader, notifier, logger)
	a.Backup = service.NewBackupService(a.Pending, logger)

	return a, nil
}

func (a *App) openStore(ctx context.Context) (storage.BlobStore, error) {
	cfg := a.Config
	switch cfg.StoreBackend {
	case "sql":
		db, err := database.InitializeWithConfig(cfg, a.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.closers = append(a.closers, db)
		if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return repository.NewBlobRepository(db), nil

	case "file":
		return storage.NewFileStore(cfg.StoreDir)

	case "redis":
		client := storage.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		a.closers = append(a.closers, client)
		store := storage.NewRedisStore(client, "ssd:")
		if err := store.Ping(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown store backend %q (want sql, file or redis)", cfg.StoreBackend)
}

// Close releases the database or redis connection
func (a *App) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.Logger.Warn("Failed to close resource", zap.Error(err))
		}
	}
	a.closers = nil
}
