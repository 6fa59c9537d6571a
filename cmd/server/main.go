package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	specpkg "github.com/delcom/catalog/api"
	"github.com/delcom/catalog/internal/api"
	"github.com/delcom/catalog/internal/api/handler"
	"github.com/delcom/catalog/internal/catalog"
	"github.com/delcom/catalog/internal/config"
	"github.com/delcom/catalog/internal/database"
	"github.com/delcom/catalog/internal/logging"
	"github.com/delcom/catalog/internal/resources"
	"github.com/delcom/catalog/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logCloser := logging.Setup(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	defer logCloser.Close()

	if err := run(cfg); err != nil {
		slog.Error("server error", "error", err)
		logCloser.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	backend, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	uploader := catalog.NewUploader(store, cfg.MaxUploadBytes)

	pageSizes := map[string]int{
		"plant":  cfg.PlantPageSize,
		"flower": cfg.FlowerPageSize,
		"zodiac": cfg.ZodiacPageSize,
	}
	var services []*catalog.Service
	for _, k := range resources.All() {
		kind := k.WithPageSize(pageSizes[k.Name])
		services = append(services, catalog.NewService(&kind, backend.repository(&kind), store, uploader))
	}

	router := api.NewRouter(api.RouterDeps{
		Services:      services,
		Uploader:      uploader,
		DBPinger:      backend.pinger,
		StoragePinger: store,
		Version:       cfg.Version,
		OpenAPISpec:   specpkg.OpenAPISpec,
		AdminKeyHash:  cfg.AdminAPIKeyHash,
	})

	if cfg.AdminAPIKeyHash == "" {
		slog.Warn("ADMIN_API_KEY_HASH is empty; write endpoints are unauthenticated")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting catalog server",
			"port", cfg.Port,
			"version", cfg.Version,
			"database", cfg.DatabaseDriver,
			"storage", cfg.StorageDriver,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// backend bundles the selected database with a repository factory.
type backend struct {
	repository func(kind *catalog.Kind) catalog.Repository
	pinger     handler.Pinger
	io.Closer
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx, db, database.DialectSQLite); err != nil {
			db.Close()
			return nil, err
		}
		slog.Info("database ready", "driver", cfg.DatabaseDriver, "path", cfg.SQLitePath)
		return &backend{
			repository: func(kind *catalog.Kind) catalog.Repository { return catalog.NewSQLiteRepository(db, kind) },
			pinger:     handler.PingerFunc(db.PingContext),
			Closer:     db,
		}, nil

	default:
		db, err := database.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
		slog.Info("database ready", "driver", cfg.DatabaseDriver)
		return &backend{
			repository: func(kind *catalog.Kind) catalog.Repository { return catalog.NewPostgresRepository(db.Pool(), kind) },
			pinger:     db,
			Closer:     closerFunc(func() error { db.Close(); return nil }),
		}, nil
	}
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case config.StorageS3:
		return storage.NewS3Store(ctx, storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	default:
		return storage.NewLocalStore(cfg.UploadDir)
	}
}
