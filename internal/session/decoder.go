// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned by [DecodeToken] for any structurally invalid
// token. Callers inside this package translate it into a negative predicate;
// it never crosses the evaluator boundary.
var ErrMalformedToken = errors.New("session: malformed token")

// Claims is the decoded token payload as far as the session layer cares.
type Claims struct {
	// UserID is the opaque subject identifier.
	UserID string

	// Role is the raw role claim, verbatim. The evaluator maps it onto the
	// closed [sec.Role] set; unrecognized values become RoleUnknown there.
	Role string

	// AdminPrivileges is true only when the claim is exactly the boolean
	// true. Truthy-but-not-bool values (the string "true", the number 1)
	// decode to false.
	AdminPrivileges bool

	// ExpiresAt is the expiry instant. Zero when the token carries no exp
	// claim, which every validity check treats as already expired.
	ExpiresAt time.Time
}

// DecodeToken parses a token's payload without verifying its signature.
//
// Signature verification is the issuing boundary's job; this decoder exists
// so the evaluator can derive session state from whatever the store holds.
// A malformed token yields [ErrMalformedToken], never a panic.
func DecodeToken(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrMalformedToken
	}

	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, ErrMalformedToken
	}

	payload, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrMalformedToken
	}

	claims := &Claims{}

	if userID, ok := payload["userId"].(string); ok {
		claims.UserID = userID
	}
	if role, ok := payload["role"].(string); ok {
		claims.Role = role
	}
	// Exact-bool semantics: anything other than a JSON true stays false.
	if adminPrivileges, ok := payload["adminPrivileges"].(bool); ok {
		claims.AdminPrivileges = adminPrivileges
	}

	expiry, err := payload.GetExpirationTime()
	if err != nil {
		// An exp claim of the wrong type is a structural defect.
		return nil, ErrMalformedToken
	}
	if expiry != nil {
		claims.ExpiresAt = expiry.Time
	}

	return claims, nil
}
