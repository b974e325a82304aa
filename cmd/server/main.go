// @title           VideoTube API
// @version         1.0
// @description     User accounts, sessions and channel views for a video sharing backend.
// @schemes         http https
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
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
	"time"

	"videotube/internal/api"
	"videotube/internal/auth"
	"videotube/internal/config"
	"videotube/internal/database"
	"videotube/internal/logger"
	"videotube/internal/media"
	"videotube/internal/storage"
	"videotube/internal/websocket"

	_ "videotube/docs"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.Connect(ctx, cfg.DB.URI, cfg.DB.Name)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Disconnect(shutdownCtx); err != nil {
			zl.Warn("failed to disconnect from mongodb", zap.Error(err))
		}
	}()
	zl.Info("connected to mongodb", zap.String("database", cfg.DB.Name))

	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}

	staging, err := storage.NewLocalStorage(cfg.Storage.TempPath)
	if err != nil {
		return fmt.Errorf("initializing upload staging: %w", err)
	}
	zl.Info("staging uploads", zap.String("path", cfg.Storage.TempPath))

	uploader, err := media.NewCloudinaryUploader(cfg.Media, zl.Named("media"))
	if err != nil {
		return err
	}

	tokens, err := auth.NewTokenIssuer(cfg.JWT)
	if err != nil {
		return err
	}

	wsHub := websocket.NewHub(zl.Named("websocket"))
	go wsHub.Run(ctx)

	server := api.NewServer(cfg, store, tokens, uploader, staging, wsHub, zl)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("starting http server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
