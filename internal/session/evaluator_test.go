// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package session_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/subgquiz/subg-api/internal/platform/sec"
	"github.com/subgquiz/subg-api/internal/session"
)

var evaluatorNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

// newEvaluator builds an evaluator over a fresh keyring holding the given
// token, with the clock frozen at evaluatorNow.
func newEvaluator(token string) (*session.Evaluator, *session.MemoryKeyring) {
	keyring := session.NewMemoryKeyring()
	if token != "" {
		keyring.Set(token)
	}
	evaluator := session.NewEvaluatorWithClock(keyring, func() time.Time { return evaluatorNow })
	return evaluator, keyring
}

func TestEvaluator_IsTokenValid(t *testing.T) {
	testCases := []struct {
		name   string
		claims jwt.MapClaims
		want   bool
	}{
		{
			name:   "future expiry",
			claims: jwt.MapClaims{"userId": "u1", "role": "student", "exp": evaluatorNow.Add(time.Hour).Unix()},
			want:   true,
		},
		{
			name:   "past expiry",
			claims: jwt.MapClaims{"userId": "u1", "role": "student", "exp": evaluatorNow.Add(-time.Hour).Unix()},
			want:   false,
		},
		{
			name:   "expiry exactly now",
			claims: jwt.MapClaims{"userId": "u1", "role": "student", "exp": evaluatorNow.Unix()},
			want:   false,
		},
		{
			name:   "no expiry claim",
			claims: jwt.MapClaims{"userId": "u1", "role": "student"},
			want:   false,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			evaluator, _ := newEvaluator(mintToken(t, testCase.claims))
			assert.Equal(t, testCase.want, evaluator.IsTokenValid())
			assert.Equal(t, testCase.want, evaluator.IsAuthenticated())
		})
	}
}

func TestEvaluator_NoToken(t *testing.T) {
	evaluator, _ := newEvaluator("")

	assert.False(t, evaluator.IsTokenValid())
	assert.False(t, evaluator.IsAdmin())
	assert.False(t, evaluator.IsStudent())
	assert.False(t, evaluator.HasAdminPrivileges())
	assert.Equal(t, sec.RoleUnknown, evaluator.Role())
	assert.Empty(t, evaluator.UserID())
}

func TestEvaluator_MalformedToken(t *testing.T) {
	evaluator, _ := newEvaluator("garbage.token.value")

	assert.False(t, evaluator.IsTokenValid())
	assert.Equal(t, sec.RoleUnknown, evaluator.Role())
	assert.False(t, evaluator.HasAdminPrivileges())
}

func TestEvaluator_Roles(t *testing.T) {
	testCases := []struct {
		name      string
		role      string
		wantRole  sec.Role
		isAdmin   bool
		isStudent bool
	}{
		{name: "admin", role: "admin", wantRole: sec.RoleAdmin, isAdmin: true},
		{name: "student", role: "student", wantRole: sec.RoleStudent, isStudent: true},
		{name: "unrecognized", role: "moderator", wantRole: sec.RoleUnknown},
		{name: "case sensitive", role: "Admin", wantRole: sec.RoleUnknown},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			evaluator, _ := newEvaluator(mintToken(t, jwt.MapClaims{
				"userId": "u1",
				"role":   testCase.role,
				"exp":    evaluatorNow.Add(time.Hour).Unix(),
			}))

			assert.Equal(t, testCase.wantRole, evaluator.Role())
			assert.Equal(t, testCase.isAdmin, evaluator.IsAdmin())
			assert.Equal(t, testCase.isStudent, evaluator.IsStudent())
		})
	}
}

/*
TestEvaluator_AdminPrivilegesSkipsExpiry pins the inherited protocol quirk:
the privilege predicate decodes fresh but never checks expiry, so an expired
admin token still reports privileges while authentication reports false.
*/
func TestEvaluator_AdminPrivilegesSkipsExpiry(t *testing.T) {
	evaluator, _ := newEvaluator(mintToken(t, jwt.MapClaims{
		"userId":          "admin-1",
		"role":            "admin",
		"adminPrivileges": true,
		"exp":             evaluatorNow.Add(-time.Hour).Unix(),
	}))

	assert.False(t, evaluator.IsAuthenticated())
	assert.True(t, evaluator.HasAdminPrivileges())
}

func TestEvaluator_AdminPrivileges(t *testing.T) {
	testCases := []struct {
		name       string
		role       string
		privileges any
		want       bool
	}{
		{name: "admin with flag", role: "admin", privileges: true, want: true},
		{name: "admin without flag", role: "admin", privileges: false, want: false},
		{name: "student with flag", role: "student", privileges: true, want: false},
		{name: "admin with string flag", role: "admin", privileges: "true", want: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			evaluator, _ := newEvaluator(mintToken(t, jwt.MapClaims{
				"userId":          "u1",
				"role":            testCase.role,
				"adminPrivileges": testCase.privileges,
				"exp":             evaluatorNow.Add(time.Hour).Unix(),
			}))

			assert.Equal(t, testCase.want, evaluator.HasAdminPrivileges())
		})
	}
}

// TestEvaluator_FreshDecode verifies that predicates track the store live:
// removing the token between calls flips every answer without any caching.
func TestEvaluator_FreshDecode(t *testing.T) {
	evaluator, keyring := newEvaluator(mintToken(t, jwt.MapClaims{
		"userId": "u1",
		"role":   "student",
		"exp":    evaluatorNow.Add(time.Hour).Unix(),
	}))

	assert.True(t, evaluator.IsAuthenticated())
	assert.True(t, evaluator.IsStudent())

	keyring.Remove()

	assert.False(t, evaluator.IsAuthenticated())
	assert.False(t, evaluator.IsStudent())
	assert.Equal(t, sec.RoleUnknown, evaluator.Role())
}

func TestEvaluator_Idempotent(t *testing.T) {
	evaluator, _ := newEvaluator(mintToken(t, jwt.MapClaims{
		"userId": "u1",
		"role":   "admin",
		"exp":    evaluatorNow.Add(time.Hour).Unix(),
	}))

	for i := 0; i < 3; i++ {
		assert.True(t, evaluator.IsTokenValid())
		assert.True(t, evaluator.IsAdmin())
		assert.Equal(t, "u1", evaluator.UserID())
	}
}
