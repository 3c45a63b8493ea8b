// @title                      Employee API
// @version                    1.0
// @description                Employee records behind JWT bearer authentication.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/corehr/employee-api/internal/api"
	"github.com/corehr/employee-api/internal/api/handler"
	"github.com/corehr/employee-api/internal/core/ports"
	"github.com/corehr/employee-api/internal/core/service"
	"github.com/corehr/employee-api/internal/infrastructure/config"
	mongostore "github.com/corehr/employee-api/internal/infrastructure/db/mongo"
	"github.com/corehr/employee-api/internal/infrastructure/db/postgres"
	redisstore "github.com/corehr/employee-api/internal/infrastructure/db/redis"
	"github.com/corehr/employee-api/internal/infrastructure/queue"
	"github.com/corehr/employee-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Get()
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Debug,
		Service: cfg.AppName,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	healthChecks := map[string]handler.PingFunc{"postgres": pool.Ping}

	// Token revocation is optional; without Redis, logout is not routed.
	var revocations ports.TokenRevocationStore
	if cfg.Redis.Enabled() {
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer client.Close()

		revocations = redisstore.NewRevocationStore(client)
		healthChecks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		log.Info().Str("addr", cfg.Redis.Addr).Msg("token revocation enabled")
	}

	// The audit trail is optional; without MongoDB, events are discarded.
	var audit ports.AuditRecorder
	if cfg.Mongo.Enabled() {
		store, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(context.Background()); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect failed")
			}
		}()

		dispatcher := queue.NewAuditDispatcher(cfg.AuditWorkers, mongostore.NewAuditRepository(store.DB), log)
		// Workers outlive the signal context so Shutdown can drain them.
		dispatcher.Start(context.WithoutCancel(ctx))
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := dispatcher.Shutdown(shutdownCtx); err != nil {
				log.Warn().Err(err).Msg("audit dispatcher did not drain")
			}
		}()

		audit = dispatcher
		healthChecks["mongodb"] = store.Ping
		log.Info().Str("database", cfg.Mongo.Database).Msg("audit trail enabled")
	}

	tokens, err := service.NewJWTTokenService(service.TokenConfig{
		Secret:    cfg.JWT.SecretKey,
		Algorithm: cfg.JWT.Algorithm,
		TTL:       cfg.JWT.AccessTokenTTL(),
	}, nil)
	if err != nil {
		return err
	}

	authService := service.NewAuthService(
		postgres.NewUserRepository(pool),
		service.NewBcryptHasher(cfg.BcryptCost),
		tokens,
		revocations,
		log,
	)
	employeeService := service.NewEmployeeService(
		postgres.NewEmployeeRepository(pool),
		postgres.NewTransactionManager(pool),
		audit,
		log,
	)

	e := api.NewRouter(api.Deps{
		Log:             log,
		AuthService:     authService,
		EmployeeService: employeeService,
		HealthChecks:    healthChecks,
		EnableLogout:    revocations != nil,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
