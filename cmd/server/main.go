package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"ssdcollector/internal/app"
	"ssdcollector/internal/config"
	"ssdcollector/internal/handlers"
	"ssdcollector/internal/logger"
	"ssdcollector/internal/security"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logLevel := cfg.LogLevel
	if cfg.Debug {
		logLevel = "debug"
	}
	log, err := logger.New(logLevel, cfg.LogFormat, "ssdcollector")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage, capture, upload and notification services
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer a.Close()

	log.Info("Services initialized",
		zap.String("store_backend", cfg.StoreBackend),
		zap.String("recordings_dir", a.Capture.Dir()),
		zap.String("api_base_url", cfg.APIBaseURL))

	h := handlers.NewHandler(handlers.Options{
		Catalog:       a.Catalog,
		Capture:       a.Capture,
		Sync:          a.Sync,
		Prompts:       a.Prompts,
		MaxUploadSize: cfg.UploadMaxSize,
		Logger:        log,
	})

	// finalize and manual sync share a budget per client
	limiter := security.NewRateLimiter(5, time.Minute)
	defer limiter.Stop()

	mux := http.NewServeMux()
	h.Register(mux, limiter)

	handler := handlers.Recover(log)(handlers.Logging(log)(mux))

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	// Background upload of queued sessions
	go a.Sync.Run(ctx, cfg.SyncInterval)

	go func() {
		log.Info("Server starting", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	log.Info("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
}
