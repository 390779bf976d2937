// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

/*
Package guard implements route guards: small deciders that run once per
navigation and either let the request through or redirect it with a
user-facing message.

# State Machine

Every evaluation starts in StateChecking and resolves to exactly one of
StateAllowed or StateDenied. A guard never retries and never caches; a
re-mount is a fresh evaluation over whatever the token store holds at that
moment. Authentication is always decided before role or privilege, so an
unauthenticated user is sent to login rather than shown a role denial.
*/
package guard

import (
	"github.com/subgquiz/subg-api/internal/platform/constants"
	"github.com/subgquiz/subg-api/internal/session"
)

// State is a guard evaluation phase.
type State int

const (
	// StateChecking is the transient phase while the decision is computed.
	StateChecking State = iota

	// StateAllowed lets the navigation proceed.
	StateAllowed

	// StateDenied blocks the navigation with a redirect.
	StateDenied
)

// String implements fmt.Stringer for log output.
func (state State) String() string {
	switch state {
	case StateChecking:
		return "checking"
	case StateAllowed:
		return "allowed"
	case StateDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// User-facing denial messages. These are wire-level copy shared with the web
// client; do not reword them casually.
const (
	MessageLoginRequired  = "Please log in to continue."
	MessageStudentOnly    = "Access denied. Student account required."
	MessageAdminOnly      = "Access denied. Admin privileges required."
	MessageSessionExpired = "Your session has expired. Please log in again."
)

// Decision is the outcome of one guard evaluation.
type Decision struct {
	// State is StateAllowed or StateDenied; StateChecking never escapes
	// Evaluate.
	State State

	// Redirect is the path a denied navigation is sent to.
	Redirect string

	// Message is the user-facing denial copy, surfaced on the error channel.
	Message string

	// ShowDeniedCard selects the persistent denial card over the transient
	// spinner. Role and privilege denials show the card; authentication
	// denials just spin through to login.
	ShowDeniedCard bool

	// TokenCleared reports whether this evaluation removed the stored token.
	// Only the freshness guard ever sets it.
	TokenCleared bool
}

// Allowed is the sole passing decision.
var Allowed = Decision{State: StateAllowed}

func deniedToLogin() Decision {
	return Decision{
		State:    StateDenied,
		Redirect: constants.PathLogin,
		Message:  MessageLoginRequired,
	}
}

// Guard decides whether one navigation may proceed.
type Guard interface {
	// Evaluate runs a single fresh check against the session state.
	Evaluate(evaluator *session.Evaluator) Decision

	// Name identifies the guard in logs.
	Name() string
}

// # Authenticated Guard

// AuthenticatedGuard admits any session with a currently valid token.
type AuthenticatedGuard struct{}

func (AuthenticatedGuard) Name() string { return "authenticated" }

func (AuthenticatedGuard) Evaluate(evaluator *session.Evaluator) Decision {
	if evaluator.IsAuthenticated() {
		return Allowed
	}
	return deniedToLogin()
}

// # Student Guard

// StudentGuard admits authenticated sessions whose claimed role is exactly
// student. Admins are redirected home, not to login.
type StudentGuard struct{}

func (StudentGuard) Name() string { return "student" }

func (StudentGuard) Evaluate(evaluator *session.Evaluator) Decision {
	if !evaluator.IsAuthenticated() {
		return deniedToLogin()
	}

	if !evaluator.IsStudent() {
		return Decision{
			State:          StateDenied,
			Redirect:       constants.PathHome,
			Message:        MessageStudentOnly,
			ShowDeniedCard: true,
		}
	}

	return Allowed
}

// # Admin Guard

// AdminGuard admits authenticated sessions that both claim the admin role
// and carry the adminPrivileges flag. A failed privilege check leaves the
// token in place; holding a valid non-admin token is not an offence.
type AdminGuard struct{}

func (AdminGuard) Name() string { return "admin" }

func (AdminGuard) Evaluate(evaluator *session.Evaluator) Decision {
	if !evaluator.IsAuthenticated() {
		return deniedToLogin()
	}

	if !evaluator.IsAdmin() || !evaluator.HasAdminPrivileges() {
		return Decision{
			State:          StateDenied,
			Redirect:       constants.PathHome,
			Message:        MessageAdminOnly,
			ShowDeniedCard: true,
		}
	}

	return Allowed
}

// # Token Freshness Guard

// TokenFreshnessGuard admits sessions with a valid token and, uniquely
// among the guards, clears the store when the token is present but stale.
// A stale token gets the expiry message; an absent one the generic login
// prompt.
type TokenFreshnessGuard struct{}

func (TokenFreshnessGuard) Name() string { return "token_freshness" }

func (TokenFreshnessGuard) Evaluate(evaluator *session.Evaluator) Decision {
	if evaluator.IsTokenValid() {
		return Allowed
	}

	_, hadToken := evaluator.Store().Get()

	decision := deniedToLogin()
	if hadToken {
		evaluator.Store().Remove()
		decision.Message = MessageSessionExpired
		decision.TokenCleared = true
	}

	return decision
}
