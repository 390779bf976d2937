// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package student

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/subgquiz/subg-api/internal/platform/apperr"
	"github.com/subgquiz/subg-api/internal/subscription"
	"github.com/subgquiz/subg-api/internal/users/auth"
	"github.com/subgquiz/subg-api/pkg/pagination"
)

// # Service Layer

// SessionRevoker terminates a student's refresh sessions. Satisfied by the
// auth session repository.
type SessionRevoker interface {
	RevokeAll(context context.Context, userID string) error
}

// Service orchestrates back-office operations on student accounts.
//
// It keeps the three copies of subscription state (account row, Redis profile
// slot, billing ledger) moving together whenever an admin intervenes.
type Service struct {
	studentRepository StudentRepository
	profileWriter     auth.ProfileWriter
	sessionRevoker    SessionRevoker
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(
	studentRepo StudentRepository,
	profileWriter auth.ProfileWriter,
	sessionRevoker SessionRevoker,
	logger *slog.Logger,
) *Service {
	return &Service{
		studentRepository: studentRepo,
		profileWriter:     profileWriter,
		sessionRevoker:    sessionRevoker,
		logger:            logger,
	}
}

// # Listing & Inspection

/*
List returns a page of student accounts for the back-office table.

Parameters:
  - context: context.Context
  - filter: ListFilter
  - params: pagination.Params

Returns:
  - []ListItem: Page of accounts
  - pagination.Meta: Paging metadata
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context, filter ListFilter, params pagination.Params) ([]ListItem, pagination.Meta, error) {
	items, total, err := service.studentRepository.List(context, filter, params)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("student_service_list_failed: %w", err)
	}

	return items, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
Get retrieves the full account behind one student ID.

Parameters:
  - context: context.Context
  - studentID: string

Returns:
  - *auth.User: Hydrated account
  - error: Not found or execution failures
*/
func (service *Service) Get(context context.Context, studentID string) (*auth.User, error) {
	return service.studentRepository.FindByID(context, studentID)
}

// # Subscription Management

// SubscriptionChange describes an admin-applied subscription update.
type SubscriptionChange struct {
	Status string
	Plan   string
	Expiry string
}

/*
ChangeSubscription applies an admin override to a student's subscription.

Description: Validates the plan against the closed tier set, persists the new
columns, and re-mirrors the Redis profile slot so the change takes effect on
the student's very next guard evaluation.

Parameters:
  - context: context.Context
  - studentID: string
  - change: SubscriptionChange

Returns:
  - *auth.User: Updated account
  - error: Validation, not found, or storage failures
*/
func (service *Service) ChangeSubscription(context context.Context, studentID string, change SubscriptionChange) (*auth.User, error) {
	if !subscription.Plan(change.Plan).IsValid() {
		return nil, apperr.Unprocessable("Unknown subscription plan")
	}

	if err := service.studentRepository.UpdateSubscription(context, studentID, change.Status, change.Plan, change.Expiry); err != nil {
		return nil, fmt.Errorf("student_service_change_subscription_failed: %w", err)
	}

	user, err := service.studentRepository.FindByID(context, studentID)
	if err != nil {
		return nil, err
	}

	// Re-mirror the profile slot. Non-fatal: entitlements degrade to FREE
	// until the next successful write.
	_ = service.profileWriter.Save(context, studentID, user.SubscriptionProfile(), auth.ProfileSlotTTL)

	service.logger.Info("student_subscription_changed",
		slog.String("student_id", studentID),
		slog.String("plan", change.Plan),
		slog.String("status", change.Status),
	)

	return user, nil
}

// # Account Lifecycle

/*
Deactivate locks a student account.

Description: Flips the active flag, revokes every refresh session, and drops
the profile slot. The student's next navigation fails authentication.

Parameters:
  - context: context.Context
  - studentID: string

Returns:
  - error: Not found or storage failures
*/
func (service *Service) Deactivate(context context.Context, studentID string) error {
	if err := service.studentRepository.SetActive(context, studentID, false); err != nil {
		return fmt.Errorf("student_service_deactivate_failed: %w", err)
	}

	_ = service.sessionRevoker.RevokeAll(context, studentID)
	_ = service.profileWriter.Delete(context, studentID)

	service.logger.Info("student_deactivated", slog.String("student_id", studentID))

	return nil
}

/*
Reactivate unlocks a previously deactivated account.

Parameters:
  - context: context.Context
  - studentID: string

Returns:
  - error: Not found or storage failures
*/
func (service *Service) Reactivate(context context.Context, studentID string) error {
	if err := service.studentRepository.SetActive(context, studentID, true); err != nil {
		return fmt.Errorf("student_service_reactivate_failed: %w", err)
	}

	service.logger.Info("student_reactivated", slog.String("student_id", studentID))

	return nil
}
