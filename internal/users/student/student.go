// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

/*
Package student implements the admin back-office for student accounts.

It provides listing, inspection, subscription management, and deactivation of
student accounts. Every route in this package sits behind the admin guard.

# Architecture

  - Entities: ListItem (DTO), SubscriptionChange.
  - Domain: This package depends on the auth package for the User entity.
  - Side effects: Subscription changes re-mirror the Redis profile slot and
    append a billing record, keeping guard evaluations and revenue reporting
    consistent with the database.
*/
package student

import (
	"context"
	"time"

	"github.com/subgquiz/subg-api/internal/users/auth"
	"github.com/subgquiz/subg-api/pkg/pagination"
)

// # Domain Entities

// ListItem is the transport-safe row shown in the back-office listing.
type ListItem struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	FullName           string     `json:"full_name"`
	IsActive           bool       `json:"is_active"`
	SubscriptionStatus string     `json:"subscription_status"`
	SubscriptionPlan   string     `json:"subscription_plan"`
	SubscriptionExpiry string     `json:"subscription_expiry,omitempty"`
	LastLoginAt        *time.Time `json:"last_login_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// ListFilter narrows the back-office listing.
type ListFilter struct {
	// Search matches against email and full name, case-insensitively.
	Search string

	// Plan filters to one subscription plan when non-empty.
	Plan string

	// Status filters to one subscription status when non-empty.
	Status string
}

// # Repository Contracts

// StudentRepository defines the persistence contract for the back-office.
type StudentRepository interface {
	/*
		List returns a page of student accounts matching the filter.

		Parameters:
		  - context: context.Context
		  - filter: ListFilter
		  - params: pagination.Params

		Returns:
		  - []ListItem: Page of accounts
		  - int: Total number of matches
		  - error: Retrieval failures
	*/
	List(context context.Context, filter ListFilter, params pagination.Params) ([]ListItem, int, error)

	/*
		FindByID retrieves a student account by its unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		UpdateSubscription replaces the account's subscription columns.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - status: string
		  - plan: string
		  - expiry: string

		Returns:
		  - error: Storage or constraint failures
	*/
	UpdateSubscription(context context.Context, userID, status, plan, expiry string) error

	/*
		SetActive toggles the account's active flag.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - active: bool

		Returns:
		  - error: Execution failures
	*/
	SetActive(context context.Context, userID string, active bool) error
}
