// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

// Command api is the entry point for the SUBG QUIZ HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/subgquiz/subg-api/internal/api"
	"github.com/subgquiz/subg-api/internal/core/article"
	"github.com/subgquiz/subg-api/internal/core/category"
	"github.com/subgquiz/subg-api/internal/core/payment"
	"github.com/subgquiz/subg-api/internal/core/question"
	"github.com/subgquiz/subg-api/internal/core/quiz"
	"github.com/subgquiz/subg-api/internal/core/reward"
	"github.com/subgquiz/subg-api/internal/guard"
	"github.com/subgquiz/subg-api/internal/platform/alert"
	"github.com/subgquiz/subg-api/internal/platform/config"
	"github.com/subgquiz/subg-api/internal/platform/constants"
	"github.com/subgquiz/subg-api/internal/platform/migration"
	pgstore "github.com/subgquiz/subg-api/internal/platform/postgres"
	redisstore "github.com/subgquiz/subg-api/internal/platform/redis"
	"github.com/subgquiz/subg-api/internal/platform/sec"
	"github.com/subgquiz/subg-api/internal/subscription"
	"github.com/subgquiz/subg-api/internal/users/auth"
	"github.com/subgquiz/subg-api/internal/users/student"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	profileStore := subscription.NewRedisProfileStore(rdb, log)

	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(pool)
	authService := auth.NewService(userRepository, sessionRepository, profileStore, jwtSvc, log)
	authHandler := auth.NewHandler(authService)

	studentService := student.NewService(student.NewPostgresRepository(pool), profileStore, sessionRepository, log)
	studentHandler := student.NewHandler(studentService)

	categoryService := category.NewService(category.NewPostgresRepository(pool), log)
	categoryHandler := category.NewHandler(categoryService)

	questionService := question.NewService(question.NewPostgresRepository(pool), log)
	questionHandler := question.NewHandler(questionService)

	rewardService := reward.NewService(
		reward.NewPostgresLedgerRepository(pool),
		reward.NewRedisLeaderboard(rdb),
		log,
	)
	rewardHandler := reward.NewHandler(rewardService)

	quizService := quiz.NewService(
		quiz.NewPostgresQuizRepository(pool),
		quiz.NewPostgresAttemptRepository(pool),
		questionService,
		profileStore,
		rewardService,
		log,
	)
	quizHandler := quiz.NewHandler(quizService)

	articleService := article.NewService(article.NewPostgresRepository(pool), log)
	articleHandler := article.NewHandler(articleService)

	paymentService := payment.NewService(payment.NewPostgresRepository(pool), userRepository, profileStore, log)
	paymentHandler := payment.NewHandler(paymentService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Category:  categoryHandler,
		Question:  questionHandler,
		Quiz:      quizHandler,
		Article:   articleHandler,
		Student:   studentHandler,
		Payment:   paymentHandler,
		Reward:    rewardHandler,
	}

	// Navigation guards share a single alert channel. Denials surface the
	// latest message to the client and redirect instead of returning 401s.
	alertChannel := alert.NewChannel(log)
	protector := guard.NewProtector(alertChannel, log)

	// The server context outlives startup; the rate limiter's cleanup
	// goroutine runs until process exit.
	server := api.NewServer(context.Background(), cfg, log, jwtSvc, protector, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
