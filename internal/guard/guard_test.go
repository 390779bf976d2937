// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package guard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subgquiz/subg-api/internal/guard"
	"github.com/subgquiz/subg-api/internal/platform/alert"
	"github.com/subgquiz/subg-api/internal/platform/constants"
	"github.com/subgquiz/subg-api/internal/session"
)

var guardNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func sessionWith(token string) (*session.Evaluator, *session.MemoryKeyring) {
	keyring := session.NewMemoryKeyring()
	if token != "" {
		keyring.Set(token)
	}
	evaluator := session.NewEvaluatorWithClock(keyring, func() time.Time { return guardNow })
	return evaluator, keyring
}

func validToken(t *testing.T, role string, adminPrivileges bool) string {
	t.Helper()
	return mintToken(t, jwt.MapClaims{
		"userId":          "u1",
		"role":            role,
		"adminPrivileges": adminPrivileges,
		"exp":             guardNow.Add(time.Hour).Unix(),
	})
}

func expiredToken(t *testing.T, role string, adminPrivileges bool) string {
	t.Helper()
	return mintToken(t, jwt.MapClaims{
		"userId":          "u1",
		"role":            role,
		"adminPrivileges": adminPrivileges,
		"exp":             guardNow.Add(-time.Hour).Unix(),
	})
}

/*
TestAuthenticatedGuard covers the login gate: a valid token of either role
passes, everything else redirects to login with a spinner only.
*/
func TestAuthenticatedGuard(t *testing.T) {
	testCases := []struct {
		name  string
		token string
		want  guard.State
	}{
		{name: "valid student", token: "student", want: guard.StateAllowed},
		{name: "valid admin", token: "admin", want: guard.StateAllowed},
		{name: "no token", token: "", want: guard.StateDenied},
		{name: "expired", token: "expired", want: guard.StateDenied},
		{name: "malformed", token: "malformed", want: guard.StateDenied},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var token string
			switch testCase.token {
			case "student", "admin":
				token = validToken(t, testCase.token, false)
			case "expired":
				token = expiredToken(t, "student", false)
			case "malformed":
				token = "not.a.token"
			}

			evaluator, _ := sessionWith(token)
			decision := guard.AuthenticatedGuard{}.Evaluate(evaluator)

			assert.Equal(t, testCase.want, decision.State)
			if decision.State == guard.StateDenied {
				assert.Equal(t, constants.PathLogin, decision.Redirect)
				assert.Equal(t, guard.MessageLoginRequired, decision.Message)
				assert.False(t, decision.ShowDeniedCard)
			}
		})
	}
}

func TestStudentGuard(t *testing.T) {
	t.Run("student allowed", func(t *testing.T) {
		evaluator, _ := sessionWith(validToken(t, "student", false))
		decision := guard.StudentGuard{}.Evaluate(evaluator)
		assert.Equal(t, guard.StateAllowed, decision.State)
	})

	t.Run("admin denied to home with card", func(t *testing.T) {
		evaluator, _ := sessionWith(validToken(t, "admin", true))
		decision := guard.StudentGuard{}.Evaluate(evaluator)

		assert.Equal(t, guard.StateDenied, decision.State)
		assert.Equal(t, constants.PathHome, decision.Redirect)
		assert.Equal(t, guard.MessageStudentOnly, decision.Message)
		assert.True(t, decision.ShowDeniedCard)
	})

	t.Run("unauthenticated goes to login, not home", func(t *testing.T) {
		evaluator, _ := sessionWith("")
		decision := guard.StudentGuard{}.Evaluate(evaluator)

		assert.Equal(t, guard.StateDenied, decision.State)
		assert.Equal(t, constants.PathLogin, decision.Redirect)
		assert.Equal(t, guard.MessageLoginRequired, decision.Message)
	})

	t.Run("expired student goes to login", func(t *testing.T) {
		evaluator, _ := sessionWith(expiredToken(t, "student", false))
		decision := guard.StudentGuard{}.Evaluate(evaluator)

		assert.Equal(t, guard.StateDenied, decision.State)
		assert.Equal(t, constants.PathLogin, decision.Redirect)
	})
}

func TestAdminGuard(t *testing.T) {
	t.Run("privileged admin allowed", func(t *testing.T) {
		evaluator, _ := sessionWith(validToken(t, "admin", true))
		decision := guard.AdminGuard{}.Evaluate(evaluator)
		assert.Equal(t, guard.StateAllowed, decision.State)
	})

	t.Run("admin without privileges denied, token kept", func(t *testing.T) {
		evaluator, keyring := sessionWith(validToken(t, "admin", false))
		decision := guard.AdminGuard{}.Evaluate(evaluator)

		assert.Equal(t, guard.StateDenied, decision.State)
		assert.Equal(t, constants.PathHome, decision.Redirect)
		assert.Equal(t, guard.MessageAdminOnly, decision.Message)
		assert.True(t, decision.ShowDeniedCard)
		assert.False(t, decision.TokenCleared)

		_, stillThere := keyring.Get()
		assert.True(t, stillThere, "admin guard must never clear the token")
	})

	t.Run("student denied to home", func(t *testing.T) {
		evaluator, _ := sessionWith(validToken(t, "student", false))
		decision := guard.AdminGuard{}.Evaluate(evaluator)

		assert.Equal(t, guard.StateDenied, decision.State)
		assert.Equal(t, guard.MessageAdminOnly, decision.Message)
	})

	t.Run("unauthenticated checked before privileges", func(t *testing.T) {
		evaluator, _ := sessionWith("")
		decision := guard.AdminGuard{}.Evaluate(evaluator)

		assert.Equal(t, constants.PathLogin, decision.Redirect)
		assert.Equal(t, guard.MessageLoginRequired, decision.Message)
	})
}

func TestTokenFreshnessGuard(t *testing.T) {
	t.Run("valid token passes", func(t *testing.T) {
		evaluator, keyring := sessionWith(validToken(t, "student", false))
		decision := guard.TokenFreshnessGuard{}.Evaluate(evaluator)

		assert.Equal(t, guard.StateAllowed, decision.State)
		_, ok := keyring.Get()
		assert.True(t, ok)
	})

	t.Run("stale token cleared with expiry message", func(t *testing.T) {
		evaluator, keyring := sessionWith(expiredToken(t, "student", false))
		decision := guard.TokenFreshnessGuard{}.Evaluate(evaluator)

		assert.Equal(t, guard.StateDenied, decision.State)
		assert.Equal(t, constants.PathLogin, decision.Redirect)
		assert.Equal(t, guard.MessageSessionExpired, decision.Message)
		assert.True(t, decision.TokenCleared)

		_, ok := keyring.Get()
		assert.False(t, ok, "stale token must be removed")
	})

	t.Run("absent token gets generic login message", func(t *testing.T) {
		evaluator, _ := sessionWith("")
		decision := guard.TokenFreshnessGuard{}.Evaluate(evaluator)

		assert.Equal(t, guard.StateDenied, decision.State)
		assert.Equal(t, guard.MessageLoginRequired, decision.Message)
		assert.False(t, decision.TokenCleared)
	})
}

/*
TestGuard_ReEvaluation verifies that a denial is never sticky: after the
token is replaced, the same guard value admits the session.
*/
func TestGuard_ReEvaluation(t *testing.T) {
	evaluator, keyring := sessionWith("")
	g := guard.AuthenticatedGuard{}

	assert.Equal(t, guard.StateDenied, g.Evaluate(evaluator).State)

	keyring.Set(validToken(t, "student", false))
	assert.Equal(t, guard.StateAllowed, g.Evaluate(evaluator).State)

	keyring.Remove()
	assert.Equal(t, guard.StateDenied, g.Evaluate(evaluator).State)
}

func TestProtector_Protect(t *testing.T) {
	t.Run("allowed passes through", func(t *testing.T) {
		alerts := alert.NewChannel(nil)
		protector := guard.NewProtector(alerts, nil)

		handler := protector.Protect(guard.AuthenticatedGuard{})(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			},
		))

		r := httptest.NewRequest(http.MethodGet, "/quizzes", nil)
		r.Header.Set("Authorization", "Bearer "+mintToken(t, jwt.MapClaims{
			"userId": "u1",
			"role":   "student",
			"exp":    time.Now().Add(time.Hour).Unix(),
		}))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Nil(t, alerts.Current())
	})

	t.Run("denied redirects and publishes alert", func(t *testing.T) {
		alerts := alert.NewChannel(nil)
		protector := guard.NewProtector(alerts, nil)

		handler := protector.Protect(guard.AuthenticatedGuard{})(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run on denial")
			},
		))

		r := httptest.NewRequest(http.MethodGet, "/quizzes", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, constants.PathLogin, w.Header().Get("Location"))

		current := alerts.Current()
		require.NotNil(t, current)
		assert.Equal(t, guard.MessageLoginRequired, current.Message)
	})

	t.Run("freshness denial expires the cookie", func(t *testing.T) {
		alerts := alert.NewChannel(nil)
		protector := guard.NewProtector(alerts, nil)

		handler := protector.Protect(guard.TokenFreshnessGuard{})(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run on denial")
			},
		))

		r := httptest.NewRequest(http.MethodGet, "/quizzes", nil)
		r.AddCookie(&http.Cookie{
			Name: constants.AccessTokenCookieName,
			Value: mintToken(t, jwt.MapClaims{
				"userId": "u1",
				"role":   "student",
				"exp":    time.Now().Add(-time.Hour).Unix(),
			}),
		})
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusFound, w.Code)

		var expired bool
		for _, cookie := range w.Result().Cookies() {
			if cookie.Name == constants.AccessTokenCookieName && cookie.MaxAge < 0 {
				expired = true
			}
		}
		assert.True(t, expired, "session cookie must be expired on the response")
	})
}
