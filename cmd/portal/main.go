// Command portal serves the library portal: it keeps one session per browser,
// guards the USER and ADMIN views, and forwards their calls to the library
// backend with the session's bearer token.
//
// @title        Library Portal API
// @version      1.0
// @description  Session gateway in front of the library backend.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/libraryhub/portal/internal/api"
	"github.com/libraryhub/portal/internal/api/metrics"
	"github.com/libraryhub/portal/internal/api/middleware"
	"github.com/libraryhub/portal/internal/core/ports"
	"github.com/libraryhub/portal/internal/core/service"
	"github.com/libraryhub/portal/internal/infrastructure/audit"
	"github.com/libraryhub/portal/internal/infrastructure/backend"
	"github.com/libraryhub/portal/internal/infrastructure/config"
	mongodb "github.com/libraryhub/portal/internal/infrastructure/db/mongo"
	redisdb "github.com/libraryhub/portal/internal/infrastructure/db/redis"
	"github.com/libraryhub/portal/internal/infrastructure/queue"
	"github.com/libraryhub/portal/internal/infrastructure/store/memory"
	"github.com/libraryhub/portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init("portal", logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("portal stopped")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	stores, checks, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	client, err := backend.New(backend.Config{
		BaseURL:    cfg.Backend.URL,
		LoginPath:  cfg.Backend.LoginPath,
		Timeout:    cfg.Backend.Timeout,
		Instrument: metrics.InstrumentBackend,
	})
	if err != nil {
		return err
	}
	checks = append(checks, backend.NewHealthCheck(client))

	dispatcher := queue.NewDispatcher(cfg.Session.EventWorkers, logger.Component("events"),
		audit.NewRecorder(logger.Component("audit")))

	registry, err := service.NewSessionRegistry(stores, dispatcher, cfg.Session.CacheSize, logger.Component("session"))
	if err != nil {
		return fmt.Errorf("session registry: %w", err)
	}
	metrics.RegisterLiveSessions(registry.Len)

	e := api.NewRouter(api.Deps{
		Registry: registry,
		Accounts: client,
		Library:  client.Library,
		Health:   checks,
		Cookie: middleware.BrowserContextConfig{
			Cookie: cfg.Session.Cookie,
			Secure: cfg.Session.CookieSecure,
		},
		LoginRatePerMinute: cfg.LoginRatePerMinute,
		TrustProxy:         cfg.TrustProxy,
		Log:                logger.Component("http"),
	})

	g, gctx := errgroup.WithContext(ctx)

	dispatcher.Start(gctx)

	g.Go(func() error {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("backend", cfg.Backend.URL).
			Str("session_store", cfg.Session.Store).
			Msg("portal listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down")
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openStore builds the credential store factory selected by SESSION_STORE,
// with the health checks of its dependency.
func openStore(ctx context.Context, cfg *config.Config) (ports.CredentialStoreFactory, []ports.HealthChecker, func(), error) {
	log := logger.Component("store")

	switch cfg.Session.Store {
	case config.StoreRedis:
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		storage := redisdb.NewStorage(rdb, cfg.Redis.KeyPrefix)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis credential store")
		return kvFactory(storage.For), []ports.HealthChecker{redisdb.NewHealthCheck(rdb)}, func() { _ = rdb.Close() }, nil

	case config.StoreMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo credential store")
		closeFn := func() {
			dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(dctx)
		}
		return mongodb.NewCredentialStores(db).For, []ports.HealthChecker{mongodb.NewHealthCheck(db)}, closeFn, nil

	default:
		log.Warn().Msg("in-memory credential store, sessions are lost on restart")
		return kvFactory(memory.NewStore().For), nil, func() {}, nil
	}
}

func kvFactory(scope func(string) ports.KeyValueStorage) ports.CredentialStoreFactory {
	return func(contextID string) ports.CredentialStore {
		return service.NewKeyValueCredentialStore(scope(contextID))
	}
}

