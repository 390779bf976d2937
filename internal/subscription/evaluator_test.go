// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package subscription_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/subgquiz/subg-api/internal/subscription"
)

var subscriptionNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newEvaluator(profile subscription.Profile) *subscription.Evaluator {
	return subscription.NewEvaluatorWithClock(
		subscription.StaticProfile(profile),
		func() time.Time { return subscriptionNow },
	)
}

func TestParsePlan(t *testing.T) {
	testCases := []struct {
		raw  string
		want subscription.Plan
	}{
		{raw: "FREE", want: subscription.PlanFree},
		{raw: "BASIC", want: subscription.PlanBasic},
		{raw: "PREMIUM", want: subscription.PlanPremium},
		{raw: "PRO", want: subscription.PlanPro},
		{raw: "basic", want: subscription.PlanFree},
		{raw: "ENTERPRISE", want: subscription.PlanFree},
		{raw: "", want: subscription.PlanFree},
	}

	for _, testCase := range testCases {
		t.Run("parse "+testCase.raw, func(t *testing.T) {
			assert.Equal(t, testCase.want, subscription.ParsePlan(testCase.raw))
		})
	}
}

func TestPlan_Ceiling(t *testing.T) {
	assert.Equal(t, 3, subscription.PlanFree.Ceiling())
	assert.Equal(t, 6, subscription.PlanBasic.Ceiling())
	assert.Equal(t, 9, subscription.PlanPremium.Ceiling())
	assert.Equal(t, 10, subscription.PlanPro.Ceiling())
}

/*
TestEvaluator_ActiveBasic walks the BASIC ceiling edge: level 6 is the last
level in, level 7 the first level out.
*/
func TestEvaluator_ActiveBasic(t *testing.T) {
	evaluator := newEvaluator(subscription.Profile{
		SubscriptionStatus: "active",
		SubscriptionPlan:   "BASIC",
	})

	assert.True(t, evaluator.HasActiveSubscription())
	assert.True(t, evaluator.CanAccessLevel(6))
	assert.False(t, evaluator.CanAccessLevel(7))
	assert.Equal(t, 6, evaluator.MaxAccessibleLevel())
}

/*
TestEvaluator_InactiveCollapsesToFree verifies that any non-active status
reduces every plan to the free ceiling, the PRO tier included.
*/
func TestEvaluator_InactiveCollapsesToFree(t *testing.T) {
	for _, plan := range []string{"FREE", "BASIC", "PREMIUM", "PRO"} {
		for _, status := range []string{"expired", "cancelled", "", "ACTIVE"} {
			evaluator := newEvaluator(subscription.Profile{
				SubscriptionStatus: status,
				SubscriptionPlan:   plan,
			})

			assert.False(t, evaluator.HasActiveSubscription(),
				"plan=%s status=%q", plan, status)
			assert.Equal(t, subscription.PlanFree, evaluator.EffectivePlan())
			assert.True(t, evaluator.CanAccessLevel(3))
			assert.False(t, evaluator.CanAccessLevel(4),
				"plan=%s status=%q must not reach level 4", plan, status)
		}
	}
}

func TestEvaluator_MissingProfile(t *testing.T) {
	evaluator := subscription.NewEvaluatorWithClock(
		subscription.ProfileFunc(func() (subscription.Profile, bool) {
			return subscription.Profile{}, false
		}),
		func() time.Time { return subscriptionNow },
	)

	assert.False(t, evaluator.HasActiveSubscription())
	assert.Equal(t, subscription.PlanFree, evaluator.EffectivePlan())
	assert.False(t, evaluator.CanAccessLevel(4))
}

/*
TestEvaluator_IsExpiringSoon pins the warning predicate to the window
0 < remaining <= thresholdDays. It is a "renew soon" signal independent of
the status field, so a cancelled subscription close to its recorded expiry
still reads true.
*/
func TestEvaluator_IsExpiringSoon(t *testing.T) {
	testCases := []struct {
		name          string
		status        string
		expiry        string
		thresholdDays int
		want          bool
	}{
		{
			name:   "three days out",
			status: "active",
			expiry: subscriptionNow.Add(3 * 24 * time.Hour).Format(time.RFC3339),
			want:   true,
		},
		{
			name:   "exactly at threshold",
			status: "active",
			expiry: subscriptionNow.Add(7 * 24 * time.Hour).Format(time.RFC3339),
			want:   true,
		},
		{
			name:   "beyond threshold",
			status: "active",
			expiry: subscriptionNow.Add(8 * 24 * time.Hour).Format(time.RFC3339),
			want:   false,
		},
		{
			name:   "already expired",
			status: "active",
			expiry: subscriptionNow.Add(-time.Hour).Format(time.RFC3339),
			want:   false,
		},
		{
			name:   "inactive near expiry still warns",
			status: "cancelled",
			expiry: subscriptionNow.Add(time.Hour).Format(time.RFC3339),
			want:   true,
		},
		{
			name:          "custom threshold widens the window",
			status:        "active",
			expiry:        subscriptionNow.Add(12 * 24 * time.Hour).Format(time.RFC3339),
			thresholdDays: 14,
			want:          true,
		},
		{
			name:          "custom threshold narrows the window",
			status:        "active",
			expiry:        subscriptionNow.Add(3 * 24 * time.Hour).Format(time.RFC3339),
			thresholdDays: 2,
			want:          false,
		},
		{
			name:   "date-only format",
			status: "active",
			expiry: subscriptionNow.Add(2 * 24 * time.Hour).Format("2006-01-02"),
			want:   true,
		},
		{
			name:   "no expiry recorded",
			status: "active",
			expiry: "",
			want:   false,
		},
		{
			name:   "unparseable expiry",
			status: "active",
			expiry: "next tuesday",
			want:   false,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			evaluator := newEvaluator(subscription.Profile{
				SubscriptionStatus: testCase.status,
				SubscriptionPlan:   "PREMIUM",
				SubscriptionExpiry: testCase.expiry,
			})

			assert.Equal(t, testCase.want, evaluator.IsExpiringSoon(testCase.thresholdDays))
		})
	}
}

func TestDecodeProfile_Corrupt(t *testing.T) {
	profile := subscription.DecodeProfile(`{"subscriptionStatus":`)

	assert.False(t, profile.IsActive())
	assert.Equal(t, subscription.PlanFree, profile.Plan())
}

func TestProfile_EncodeDecode(t *testing.T) {
	original := subscription.Profile{
		SubscriptionStatus: "active",
		SubscriptionPlan:   "PRO",
		SubscriptionExpiry: "2026-12-31",
	}

	decoded := subscription.DecodeProfile(original.Encode())
	assert.Equal(t, original, decoded)
}
