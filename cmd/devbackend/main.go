// Command devbackend runs a minimal library backend for local development:
// registration, login with HS256 tokens carrying the user's role, profiles and
// user administration.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/libraryhub/portal/internal/core/ports"
	"github.com/libraryhub/portal/internal/devbackend"
	"github.com/libraryhub/portal/internal/infrastructure/config"
	mongodb "github.com/libraryhub/portal/internal/infrastructure/db/mongo"
	"github.com/libraryhub/portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.LoadDevBackend()
	log := logger.Init("devbackend", logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("devbackend stopped")
	}
}

func run(ctx context.Context, cfg *config.DevBackendConfig) error {
	log := logger.Get()

	var (
		repo   ports.UserRepository
		checks []ports.HealthChecker
	)
	switch cfg.Store {
	case config.StoreMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()
		users := mongodb.NewUserRepository(db)
		if err := users.EnsureIndexes(ctx); err != nil {
			return err
		}
		repo = users
		checks = append(checks, mongodb.NewHealthCheck(db))
	default:
		repo = devbackend.NewMemoryUserRepository()
	}

	auth := devbackend.NewAuthService(repo, cfg.JWTSecret, cfg.TokenTTL)
	if cfg.AdminPassword != "" {
		if err := auth.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			return err
		}
		log.Info().Str("username", cfg.AdminUsername).Msg("admin account ready")
	}

	e := devbackend.NewRouter(auth, cfg.JWTSecret, logger.Component("http"), prometheus.DefaultRegisterer, checks...)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store).Msg("devbackend listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
