// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package session

import (
	"time"

	"github.com/subgquiz/subg-api/internal/platform/sec"
)

// Evaluator derives session state from the token store on every call.
//
// # Contract
//
// Every method is total: no input — absent, malformed, or expired — produces
// a panic or an error. The session tuple (authenticated, role, privileges) is
// recomputed fresh per call and never cached, so it cannot go stale across
// token mutations within one evaluation; staleness across navigations is
// resolved by the guards re-evaluating on every mount.
type Evaluator struct {
	store TokenStore
	now   func() time.Time
}

// NewEvaluator creates an evaluator over the given store using wall-clock time.
func NewEvaluator(store TokenStore) *Evaluator {
	return NewEvaluatorWithClock(store, time.Now)
}

// NewEvaluatorWithClock creates an evaluator with an injected clock. Expiry
// checks compare against this clock, which keeps the validity predicates
// deterministic under test.
func NewEvaluatorWithClock(store TokenStore, now func() time.Time) *Evaluator {
	return &Evaluator{store: store, now: now}
}

// decode performs a fresh read-and-decode. Returns nil on any failure.
func (evaluator *Evaluator) decode() *Claims {
	token, ok := evaluator.store.Get()
	if !ok {
		return nil
	}

	claims, err := DecodeToken(token)
	if err != nil {
		return nil
	}

	return claims
}

// IsTokenValid reports whether a token exists, decodes, and expires strictly
// in the future. A missing or malformed token is indistinguishable from an
// expired one here.
func (evaluator *Evaluator) IsTokenValid() bool {
	claims := evaluator.decode()
	if claims == nil {
		return false
	}

	return claims.ExpiresAt.After(evaluator.now())
}

// IsAuthenticated is an alias of [Evaluator.IsTokenValid].
func (evaluator *Evaluator) IsAuthenticated() bool {
	return evaluator.IsTokenValid()
}

// Role returns the claimed role mapped onto the closed role set, or
// [sec.RoleUnknown] when there is no decodable token.
func (evaluator *Evaluator) Role() sec.Role {
	claims := evaluator.decode()
	if claims == nil {
		return sec.RoleUnknown
	}

	return sec.ParseRole(claims.Role)
}

// IsAdmin reports whether the claimed role is exactly admin.
func (evaluator *Evaluator) IsAdmin() bool {
	return evaluator.Role().IsAdmin()
}

// IsStudent reports whether the claimed role is exactly student.
func (evaluator *Evaluator) IsStudent() bool {
	return evaluator.Role().IsStudent()
}

// HasAdminPrivileges reports whether a fresh decode yields role == admin AND
// an adminPrivileges claim that is exactly the boolean true.
//
// Note: this predicate intentionally does NOT require token validity — an
// expired but still decodable admin token passes. The gap is inherited from
// the original access protocol and preserved on purpose; see DESIGN.md
// before "fixing" it.
func (evaluator *Evaluator) HasAdminPrivileges() bool {
	claims := evaluator.decode()
	if claims == nil {
		return false
	}

	return sec.ParseRole(claims.Role).IsAdmin() && claims.AdminPrivileges
}

// UserID returns the claimed subject identifier, or "" without a decodable
// token.
func (evaluator *Evaluator) UserID() string {
	claims := evaluator.decode()
	if claims == nil {
		return ""
	}

	return claims.UserID
}

// Store exposes the underlying token store. The freshness guard uses it to
// clear credentials when it detects an invalid token.
func (evaluator *Evaluator) Store() TokenStore {
	return evaluator.store
}
