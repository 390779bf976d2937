// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package payment

import (
	"context"
	"log/slog"
	"time"

	"github.com/subgquiz/subg-api/internal/platform/apperr"
	"github.com/subgquiz/subg-api/internal/platform/validate"
	"github.com/subgquiz/subg-api/internal/subscription"
	"github.com/subgquiz/subg-api/pkg/pagination"
	"github.com/subgquiz/subg-api/pkg/uuid"
)

// # Collaborator Contracts

// AccountUpdater flips the subscription columns on the student's account.
// Satisfied by the auth user repository.
type AccountUpdater interface {
	UpdateSubscription(context context.Context, userID, status, plan, expiry string) error
}

// ProfileWriter mirrors the subscription snapshot into the profile slot the
// guards read. Satisfied by the Redis profile store.
type ProfileWriter interface {
	Save(ctx context.Context, studentID string, profile subscription.Profile, ttl time.Duration) error
}

type Service struct {
	payments      Repository
	accounts      AccountUpdater
	profileWriter ProfileWriter
	logger        *slog.Logger
	now           func() time.Time
}

func NewService(payments Repository, accounts AccountUpdater, profileWriter ProfileWriter, logger *slog.Logger) *Service {
	return &Service{
		payments:      payments,
		accounts:      accounts,
		profileWriter: profileWriter,
		logger:        logger,
		now:           time.Now,
	}
}

// SetClock overrides the service clock. Test hook.
func (service *Service) SetClock(now func() time.Time) {
	service.now = now
}

// RecordInput holds a confirmed payment event, typically relayed by a
// provider webhook after the charge settled.
type RecordInput struct {
	StudentID   string
	Plan        string
	AmountCents int
	Currency    string
	Provider    string
	ProviderRef string
}

/*
Record persists a successful payment and activates the purchased plan.

Description: Writes the ledger row first, then flips the account's
subscription columns to active with a fresh expiry, then re-mirrors the
Redis profile slot. A slot failure is logged but not returned; the student
degrades to free-tier reads until the next login rewrites the slot.

Parameters:
  - context: context.Context
  - input: RecordInput

Returns:
  - *Payment: The recorded ledger row
  - error: Validation, ledger, or account failures
*/
func (service *Service) Record(context context.Context, input RecordInput) (*Payment, error) {
	v := &validate.Validator{}
	v.Required("student_id", input.StudentID).
		Required("plan", input.Plan).
		Required("provider", input.Provider).
		Custom("amount_cents", input.AmountCents <= 0, "Must be positive")
	if err := v.Err(); err != nil {
		return nil, err
	}

	plan := subscription.Plan(input.Plan)
	if !plan.IsValid() || plan == subscription.PlanFree {
		return nil, apperr.Unprocessable("Plan must be one of: BASIC, PREMIUM, PRO")
	}

	record := &Payment{
		ID:          uuid.New(),
		StudentID:   input.StudentID,
		Plan:        string(plan),
		AmountCents: input.AmountCents,
		Currency:    input.Currency,
		Status:      StatusSucceeded,
		Provider:    input.Provider,
		ProviderRef: input.ProviderRef,
	}
	if record.Currency == "" {
		record.Currency = "USD"
	}

	if err := service.payments.Insert(context, record); err != nil {
		return nil, err
	}

	expiry := service.now().Add(SubscriptionTerm).Format(time.RFC3339)
	if err := service.accounts.UpdateSubscription(context, input.StudentID, subscription.StatusActive, string(plan), expiry); err != nil {
		return nil, err
	}

	profile := subscription.Profile{
		SubscriptionStatus: subscription.StatusActive,
		SubscriptionPlan:   string(plan),
		SubscriptionExpiry: expiry,
	}
	if err := service.profileWriter.Save(context, input.StudentID, profile, SubscriptionTerm); err != nil {
		service.logger.Error("payment_profile_mirror_failed",
			slog.String("student_id", input.StudentID),
			slog.Any("error", err),
		)
	}

	service.logger.Info("payment_recorded",
		slog.String("payment_id", record.ID),
		slog.String("student_id", input.StudentID),
		slog.String("plan", string(plan)),
		slog.Int("amount_cents", input.AmountCents),
	)

	return record, nil
}

// History returns the caller's payment history, newest first.
func (service *Service) History(context context.Context, studentID string, params pagination.Params) ([]*Payment, pagination.Meta, error) {
	payments, total, err := service.payments.ListByStudent(context, studentID, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return payments, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// ListAll returns the full billing ledger for the back-office.
func (service *Service) ListAll(context context.Context, params pagination.Params) ([]*Payment, pagination.Meta, error) {
	payments, total, err := service.payments.List(context, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return payments, pagination.NewMeta(params.Page, params.Limit, total), nil
}
