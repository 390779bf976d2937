// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/subgquiz/subg-api/internal/core/article"
	"github.com/subgquiz/subg-api/internal/core/category"
	"github.com/subgquiz/subg-api/internal/core/payment"
	"github.com/subgquiz/subg-api/internal/core/question"
	"github.com/subgquiz/subg-api/internal/core/quiz"
	"github.com/subgquiz/subg-api/internal/core/reward"
	"github.com/subgquiz/subg-api/internal/guard"
	"github.com/subgquiz/subg-api/internal/platform/config"
	"github.com/subgquiz/subg-api/internal/platform/constants"
	"github.com/subgquiz/subg-api/internal/platform/middleware"
	"github.com/subgquiz/subg-api/internal/users/auth"
	"github.com/subgquiz/subg-api/internal/users/student"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the authentication lifecycle (register, login, refresh).
	Auth *auth.Handler

	// Category handles the quiz category taxonomy.
	Category *category.Handler

	// Question handles the back-office question bank.
	Question *question.Handler

	// Quiz handles the catalog and the attempt lifecycle.
	Quiz *quiz.Handler

	// Article handles long-form study content.
	Article *article.Handler

	// Student handles back-office student account administration.
	Student *student.Handler

	// Payment handles the billing ledger and plan activation.
	Payment *payment.Handler

	// Reward handles the points ledger and leaderboard.
	Reward *reward.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, protector *guard.Protector, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())

		// Public read surfaces.
		api.Route("/categories", h.Category.RegisterRoutes)
		api.Route("/articles", h.Article.RegisterRoutes)

		// Authenticated student surfaces.
		api.Group(func(authed chi.Router) {
			authed.Use(middleware.RequireAuth)
			authed.Route("/payments", h.Payment.RegisterRoutes)
			authed.Route("/leaderboard", h.Reward.RegisterRoutes)
		})

		// Quiz navigation sits behind the freshness and student guards, so a
		// stale token is cleared and redirected rather than answered with a
		// bare 401. RequireAuth still anchors the signature-checked identity.
		api.Route("/quizzes", func(quizzes chi.Router) {
			quizzes.Use(protector.Protect(guard.TokenFreshnessGuard{}))
			quizzes.Use(protector.Protect(guard.StudentGuard{}))
			quizzes.Use(middleware.RequireAuth)
			h.Quiz.RegisterStudentRoutes(quizzes)
		})

		// Back-office surfaces, gated on role plus the privileges flag.
		api.Route("/admin", func(admin chi.Router) {
			admin.Use(protector.Protect(guard.AdminGuard{}))
			admin.Use(middleware.RequireAdmin)
			admin.Mount("/students", h.Student.Routes())
			admin.Route("/categories", h.Category.RegisterAdminRoutes)
			admin.Route("/questions", h.Question.RegisterAdminRoutes)
			admin.Route("/quizzes", h.Quiz.RegisterAdminRoutes)
			admin.Route("/articles", h.Article.RegisterAdminRoutes)
			admin.Route("/payments", h.Payment.RegisterAdminRoutes)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
