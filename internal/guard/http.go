// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package guard

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/subgquiz/subg-api/internal/platform/alert"
	"github.com/subgquiz/subg-api/internal/platform/constants"
	"github.com/subgquiz/subg-api/internal/session"
)

// Protector turns guards into chi-compatible middleware. One protector is
// built at wiring time and shared across routes; each request gets its own
// token store and evaluator.
type Protector struct {
	alerts *alert.Channel
	logger *slog.Logger
	now    func() time.Time
}

// NewProtector creates a protector publishing denials on the given channel.
func NewProtector(alerts *alert.Channel, logger *slog.Logger) *Protector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Protector{alerts: alerts, logger: logger, now: time.Now}
}

// Protect wraps a handler with the given guard. A denial becomes a 302 to
// the decision's redirect path plus an error-channel write; when the guard
// cleared the token, the session cookie is expired on the way out.
func (protector *Protector) Protect(g Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store := session.FromRequest(r)
			evaluator := session.NewEvaluatorWithClock(store, protector.now)

			decision := g.Evaluate(evaluator)
			if decision.State == StateAllowed {
				next.ServeHTTP(w, r)
				return
			}

			protector.logger.Info("route_guard_denied",
				slog.String("guard", g.Name()),
				slog.String("path", r.URL.Path),
				slog.String("redirect", decision.Redirect),
				slog.Bool("token_cleared", decision.TokenCleared),
			)

			protector.alerts.Show(decision.Message)

			if store.Cleared() {
				expireSessionCookie(w)
			}

			http.Redirect(w, r, decision.Redirect, http.StatusFound)
		})
	}
}

// expireSessionCookie instructs the browser to drop the session cookie.
func expireSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
