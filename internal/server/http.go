package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ldelvaux/hsk-trainer/internal/auth"
	"github.com/ldelvaux/hsk-trainer/internal/config"
	"github.com/ldelvaux/hsk-trainer/internal/logging"
	"github.com/ldelvaux/hsk-trainer/internal/prefs"
	"github.com/ldelvaux/hsk-trainer/internal/trainer"
	"github.com/ldelvaux/hsk-trainer/internal/vocab"
)

// Handlers bundles the route groups the server exposes.
type Handlers struct {
	Auth    *auth.HTTPHandlers
	Vocab   *vocab.HTTPHandlers
	Prefs   *prefs.HTTPHandlers
	Trainer *trainer.HTTPHandlers
}

// NewHTTPServer wires all routes for the API service. The session
// endpoints run behind the optional-auth middleware so both guests and
// signed-in users can train; account and preference endpoints require
// a token.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, rdb *redis.Client, authSvc *auth.Service, h Handlers) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.IntoContext(r.Context(), logger)
		if err := pingDependencies(ctx, pool, rdb); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	optionalAuth := auth.Middleware(authSvc, logger)
	requireAuth := func(next http.HandlerFunc) http.Handler {
		return optionalAuth(auth.RequireAuth(next))
	}

	if h.Auth != nil {
		mux.HandleFunc("/v1/auth/register", h.Auth.Register)
		mux.HandleFunc("/v1/auth/login", h.Auth.Login)
		mux.HandleFunc("/v1/auth/refresh", h.Auth.RefreshToken)
		mux.Handle("/v1/users/me", requireAuth(h.Auth.GetMe))
		mux.Handle("/v1/users/me/locale", requireAuth(h.Auth.UpdateLocale))
	}

	if h.Vocab != nil {
		mux.HandleFunc("/v1/quizzes", h.Vocab.Quizzes)
		mux.HandleFunc("/v1/quizzes/", h.Vocab.Quizzes)
	}

	if h.Prefs != nil {
		mux.Handle("/v1/preferences", requireAuth(h.Prefs.Preferences))
	}

	if h.Trainer != nil {
		mux.Handle("/v1/session/start", optionalAuth(http.HandlerFunc(h.Trainer.Start)))
		mux.Handle("/v1/session/submit", optionalAuth(http.HandlerFunc(h.Trainer.Submit)))
		mux.Handle("/v1/session/advance", optionalAuth(http.HandlerFunc(h.Trainer.Advance)))
		mux.Handle("/v1/session", optionalAuth(http.HandlerFunc(h.Trainer.Get)))
	}

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: corsMiddleware(cfg.CORS, mux),
	}
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, rdb *redis.Client) error {
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		return err
	}
	return nil
}

func corsMiddleware(cfg config.CORS, next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		allowed[origin] = true
	}
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			if cfg.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
