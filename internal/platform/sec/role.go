// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package sec

// # User Roles

// Role represents the authorization level granted to an account.
//
// The set is closed: anything outside it parses to [RoleUnknown] instead of
// silently failing string comparisons downstream.
type Role string

const (
	// Back-office access to categories, questions, quizzes, students,
	// articles, payments, and analytics
	RoleAdmin Role = "admin"

	// Default role for quiz-taking accounts
	RoleStudent Role = "student"

	// RoleUnknown is the explicit variant for unrecognized or absent role claims.
	RoleUnknown Role = ""
)

// ParseRole maps a raw claim string onto the closed role set.
func ParseRole(raw string) Role {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin
	case RoleStudent:
		return RoleStudent
	default:
		return RoleUnknown
	}
}

// IsAdmin reports whether the role is exactly [RoleAdmin].
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// IsStudent reports whether the role is exactly [RoleStudent].
func (r Role) IsStudent() bool { return r == RoleStudent }
