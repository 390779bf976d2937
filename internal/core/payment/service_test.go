// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package payment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subgquiz/subg-api/internal/platform/apperr"
	"github.com/subgquiz/subg-api/internal/subscription"
	"github.com/subgquiz/subg-api/pkg/pagination"
)

var paymentNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type fakePaymentRepo struct {
	payments []*Payment
}

func (repo *fakePaymentRepo) Insert(_ context.Context, payment *Payment) error {
	repo.payments = append(repo.payments, payment)
	return nil
}

func (repo *fakePaymentRepo) ListByStudent(_ context.Context, studentID string, _ pagination.Params) ([]*Payment, int, error) {
	out := make([]*Payment, 0)
	for _, payment := range repo.payments {
		if payment.StudentID == studentID {
			out = append(out, payment)
		}
	}
	return out, len(out), nil
}

func (repo *fakePaymentRepo) List(_ context.Context, _ pagination.Params) ([]*Payment, int, error) {
	return repo.payments, len(repo.payments), nil
}

type subscriptionUpdate struct {
	UserID, Status, Plan, Expiry string
}

type fakeAccounts struct {
	updates []subscriptionUpdate
}

func (accounts *fakeAccounts) UpdateSubscription(_ context.Context, userID, status, plan, expiry string) error {
	accounts.updates = append(accounts.updates, subscriptionUpdate{userID, status, plan, expiry})
	return nil
}

type fakeProfileWriter struct {
	saved map[string]subscription.Profile
	err   error
}

func (writer *fakeProfileWriter) Save(_ context.Context, studentID string, profile subscription.Profile, _ time.Duration) error {
	if writer.err != nil {
		return writer.err
	}
	if writer.saved == nil {
		writer.saved = make(map[string]subscription.Profile)
	}
	writer.saved[studentID] = profile
	return nil
}

func newPaymentService(repo *fakePaymentRepo, accounts *fakeAccounts, profiles *fakeProfileWriter) *Service {
	service := NewService(repo, accounts, profiles, slog.New(slog.NewTextHandler(io.Discard, nil)))
	service.SetClock(func() time.Time { return paymentNow })
	return service
}

func TestRecord_ActivatesPlanEverywhere(t *testing.T) {
	repo := &fakePaymentRepo{}
	accounts := &fakeAccounts{}
	profiles := &fakeProfileWriter{}
	service := newPaymentService(repo, accounts, profiles)

	payment, err := service.Record(context.Background(), RecordInput{
		StudentID:   "student-1",
		Plan:        "PREMIUM",
		AmountCents: 999,
		Provider:    "stripe",
		ProviderRef: "ch_123",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusSucceeded, payment.Status)
	assert.Equal(t, "USD", payment.Currency)
	require.Len(t, repo.payments, 1)

	wantExpiry := paymentNow.Add(SubscriptionTerm).Format(time.RFC3339)
	require.Len(t, accounts.updates, 1)
	assert.Equal(t, subscriptionUpdate{"student-1", "active", "PREMIUM", wantExpiry}, accounts.updates[0])

	profile, ok := profiles.saved["student-1"]
	require.True(t, ok)
	assert.Equal(t, subscription.StatusActive, profile.SubscriptionStatus)
	assert.Equal(t, "PREMIUM", profile.SubscriptionPlan)
	assert.Equal(t, wantExpiry, profile.SubscriptionExpiry)
}

func TestRecord_RejectsFreeAndUnknownPlans(t *testing.T) {
	service := newPaymentService(&fakePaymentRepo{}, &fakeAccounts{}, &fakeProfileWriter{})

	for _, plan := range []string{"FREE", "GOLD", "basic"} {
		_, err := service.Record(context.Background(), RecordInput{
			StudentID:   "student-1",
			Plan:        plan,
			AmountCents: 999,
			Provider:    "stripe",
		})
		require.Error(t, err, plan)
		assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code, plan)
	}
}

func TestRecord_RejectsNonPositiveAmount(t *testing.T) {
	service := newPaymentService(&fakePaymentRepo{}, &fakeAccounts{}, &fakeProfileWriter{})

	_, err := service.Record(context.Background(), RecordInput{
		StudentID:   "student-1",
		Plan:        "BASIC",
		AmountCents: 0,
		Provider:    "stripe",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestRecord_ProfileMirrorFailureIsNotFatal(t *testing.T) {
	repo := &fakePaymentRepo{}
	accounts := &fakeAccounts{}
	profiles := &fakeProfileWriter{err: errors.New("redis down")}
	service := newPaymentService(repo, accounts, profiles)

	_, err := service.Record(context.Background(), RecordInput{
		StudentID:   "student-1",
		Plan:        "BASIC",
		AmountCents: 499,
		Provider:    "stripe",
	})
	require.NoError(t, err)

	// Ledger and account still updated.
	assert.Len(t, repo.payments, 1)
	assert.Len(t, accounts.updates, 1)
}
