package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Benrise/Async-API-sprint-1/internal/config"
	dbElastic "github.com/Benrise/Async-API-sprint-1/internal/db/elastic"
	dbRedis "github.com/Benrise/Async-API-sprint-1/internal/db/redis"
	logpkg "github.com/Benrise/Async-API-sprint-1/internal/logger"
	"github.com/Benrise/Async-API-sprint-1/internal/metrics"
	cacherepo "github.com/Benrise/Async-API-sprint-1/internal/repository/cache"
	filmrepo "github.com/Benrise/Async-API-sprint-1/internal/repository/film"
	genrerepo "github.com/Benrise/Async-API-sprint-1/internal/repository/genre"
	personrepo "github.com/Benrise/Async-API-sprint-1/internal/repository/person"
	chiTransport "github.com/Benrise/Async-API-sprint-1/internal/transport/chi"
	filmuc "github.com/Benrise/Async-API-sprint-1/internal/usecase/film"
	genreuc "github.com/Benrise/Async-API-sprint-1/internal/usecase/genre"
	healthuc "github.com/Benrise/Async-API-sprint-1/internal/usecase/health"
	personuc "github.com/Benrise/Async-API-sprint-1/internal/usecase/person"
	"github.com/Benrise/Async-API-sprint-1/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting movies API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("redis_addrs", cfg.Redis.Addrs),
		zap.Strings("elastic_addresses", cfg.Elastic.Addresses),
	)

	// Create backends
	cache, err := dbRedis.New(dbRedis.Config{
		Addrs:    cfg.Redis.Addrs,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create cache client", zap.Error(err))
	}
	defer cache.Close()

	store, err := dbElastic.NewStore(dbElastic.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create document store client", zap.Error(err))
	}
	defer store.Close()

	// Wait for the document store; the cache is optional at startup, a dead
	// cache only degrades reads.
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Elastic.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Document store not ready", zap.Error(err))
	}
	logger.Info("Connected to document store")

	if err := cache.WaitForReady(ctx, time.Duration(cfg.Redis.ReadinessTimeout)*time.Second); err != nil {
		logger.Warn("Cache not ready, serving without it", zap.Error(err))
	} else {
		logger.Info("Connected to cache")
	}

	// Create repositories
	cacheGateway := cacherepo.New(cache).WithTTL(time.Duration(cfg.Cache.TTLSec) * time.Second)
	filmRepo := filmrepo.New(store)
	genreRepo := genrerepo.New(store)
	personRepo := personrepo.New(store)

	// Create use case services
	filmSvc := filmuc.New(filmRepo, cacheGateway)
	genreSvc := genreuc.New(genreRepo, cacheGateway)
	personSvc := personuc.New(personRepo, filmRepo, cacheGateway)
	healthSvc := healthuc.New(store, cache)

	// Create chi server
	server := chiTransport.NewServer(filmSvc, genreSvc, personSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
