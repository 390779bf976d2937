// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, Session) and logic for
authentication, authorization, and account lifecycle.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no
external dependencies and encapsulate all business rules related to user
identity and subscription state.
*/
package auth

import (
	"time"

	"github.com/subgquiz/subg-api/internal/platform/sec"
	"github.com/subgquiz/subg-api/internal/subscription"
)

// # Domain Entities

// User represents a registered member of the SUBG QUIZ platform.
type User struct {
	ID              string   `json:"id"`
	Email           string   `json:"email"`
	FullName        string   `json:"full_name"`
	PasswordHash    string   `json:"-"` // Explicitly omitted from JSON for security.
	Role            sec.Role `json:"role"`
	AdminPrivileges bool     `json:"admin_privileges"`
	IsActive        bool     `json:"is_active"`

	// Subscription state, denormalized onto the account row. The same three
	// fields are mirrored into the Redis profile slot at login and after
	// every payment event.
	SubscriptionStatus string `json:"subscription_status"`
	SubscriptionPlan   string `json:"subscription_plan"`
	SubscriptionExpiry string `json:"subscription_expiry,omitempty"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SubscriptionProfile projects the account's subscription columns into the
// blob persisted in the profile slot.
func (user *User) SubscriptionProfile() subscription.Profile {
	return subscription.Profile{
		SubscriptionStatus: user.SubscriptionStatus,
		SubscriptionPlan:   user.SubscriptionPlan,
		SubscriptionExpiry: user.SubscriptionExpiry,
	}
}

// Session represents an active refresh-token session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"` // Hashed value of the refresh token. Omitted for security.
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldFullName        = "full_name"
	FieldToken           = "token"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldUser            = "user"
	FieldProfile         = "profile"
	FieldMessage         = "message"
)
