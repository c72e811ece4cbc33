package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ldelvaux/hsk-trainer/internal/auth"
	"github.com/ldelvaux/hsk-trainer/internal/auth/jwt"
	"github.com/ldelvaux/hsk-trainer/internal/config"
	"github.com/ldelvaux/hsk-trainer/internal/logging"
	"github.com/ldelvaux/hsk-trainer/internal/prefs"
	"github.com/ldelvaux/hsk-trainer/internal/server"
	"github.com/ldelvaux/hsk-trainer/internal/trainer"
	"github.com/ldelvaux/hsk-trainer/internal/vocab"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
}

// New bootstraps config, logger, Postgres, Redis and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	connString := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=10",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.SSLMode)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	if cfg.Security.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be configured")
	}

	authSvc := auth.NewService(auth.NewRepository(pool), auth.ServiceOptions{
		TokenConfig: jwt.TokenConfig{
			AccessSecret:  []byte(cfg.Security.JWTSecret),
			RefreshSecret: []byte(cfg.Security.JWTSecret + "_refresh"),
			Issuer:        cfg.Name,
		},
	}, logger)

	vocabSvc := vocab.NewService(
		vocab.NewRepository(pool),
		vocab.NewCache(redisClient, cfg.Trainer.PoolCacheTTL),
		logger,
	)

	prefsSvc := prefs.NewService(prefs.NewRepository(pool), logger)

	trainerSvc := trainer.NewService(
		vocabSvc,
		prefsSvc,
		trainer.NewRedisStore(redisClient, cfg.Trainer.SessionTTL, logger),
		trainer.Options{
			DefaultCount: cfg.Trainer.DefaultQuestionCount,
			ChoiceCount:  cfg.Trainer.ChoiceCount,
			MatchTones:   cfg.Trainer.MatchTones,
		},
		logger,
	)

	apiServer := server.NewHTTPServer(cfg, logger, pool, redisClient, authSvc, server.Handlers{
		Auth:    auth.NewHTTPHandlers(authSvc, logger),
		Vocab:   vocab.NewHTTPHandlers(vocabSvc, logger),
		Prefs:   prefs.NewHTTPHandlers(prefsSvc, logger),
		Trainer: trainer.NewHTTPHandlers(trainerSvc, logger),
	})

	return &Application{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		redis:  redisClient,
		http:   apiServer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
