package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"storage-search-service/internal/adapters/repositories"
	"storage-search-service/internal/adapters/results"
	"storage-search-service/internal/api"
	"storage-search-service/internal/config"
	"storage-search-service/internal/platform/db"
	"storage-search-service/internal/platform/metrics"
	"storage-search-service/internal/ports"
	"storage-search-service/internal/services"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// main is the application composition root.
// It wires the configured listing store and result store behind ports and
// starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zap.L().Sync() }()

	if envErr != nil {
		zap.L().Debug("no .env file found, using environment variables")
	}

	if err := run(cfg); err != nil {
		zap.L().Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Register()

	repo, closeRepo, err := openListingRepository(ctx, cfg.Listings)
	if err != nil {
		return err
	}
	defer closeRepo()

	store, closeStore, err := openResultStore(ctx, cfg.Results)
	if err != nil {
		return err
	}
	defer closeStore()

	router := api.NewRouter(repo, store, api.Options{
		Fit: services.FitOptions{
			MaxListingsPerLocation: cfg.Search.MaxListingsPerLocation,
			Workers:                cfg.Search.Workers,
			MaxVehicles:            cfg.Search.MaxVehicles,
		},
		RateLimit:   cfg.Server.RateLimit,
		RateBurst:   cfg.Server.RateBurst,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("listings", cfg.Listings.Driver),
			zap.String("results", cfg.Results.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return eris.Wrap(err, "listen")
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "shutdown")
	}
	return nil
}

func openListingRepository(ctx context.Context, cfg config.ListingsConfig) (ports.ListingRepository, func(), error) {
	switch cfg.Driver {
	case "sqlite":
		sqlDB, err := db.OpenSqlite(cfg.SqlitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.InitSchema(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
		return repositories.NewSqliteListingRepository(sqlDB), func() { _ = sqlDB.Close() }, nil

	case "postgres":
		pool, err := db.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.InitPostgresSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repositories.NewPostgresListingRepository(pool), pool.Close, nil

	default:
		return repositories.NewFileListingRepository(cfg.Path), func() {}, nil
	}
}

func openResultStore(ctx context.Context, cfg config.ResultsConfig) (ports.ResultStore, func(), error) {
	switch cfg.Driver {
	case "redis":
		store, err := results.NewRedisResultStore(cfg.RedisURL, cfg.RedisKey, cfg.TTL)
		if err != nil {
			return nil, nil, err
		}
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, eris.Wrap(err, "open result store: ping redis")
		}
		return store, func() { _ = store.Close() }, nil

	case "sqlite":
		sqlDB, err := db.OpenSqlite(cfg.SqlitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := results.InitResultSchema(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
		return results.NewSqliteResultStore(sqlDB), func() { _ = sqlDB.Close() }, nil

	case "none":
		return results.NopResultStore{}, func() {}, nil

	default:
		return results.NewFileResultStore(cfg.Path), func() {}, nil
	}
}
