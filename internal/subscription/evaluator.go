// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package subscription

import (
	"time"
)

// DefaultExpiryWarningDays is how close to expiry a subscription must be
// before the client surfaces a renewal prompt.
const DefaultExpiryWarningDays = 7

// ProfileSource yields the current subscription profile. Implementations
// must degrade to ok=false instead of failing when the backing store is
// unreachable; a missing profile reads as the free tier.
type ProfileSource interface {
	Profile() (Profile, bool)
}

// ProfileFunc adapts a closure into a [ProfileSource].
type ProfileFunc func() (Profile, bool)

// Profile implements [ProfileSource].
func (fn ProfileFunc) Profile() (Profile, bool) {
	return fn()
}

// StaticProfile wraps a fixed profile as a [ProfileSource]. Used where the
// profile was already loaded for the request.
func StaticProfile(profile Profile) ProfileSource {
	return ProfileFunc(func() (Profile, bool) { return profile, true })
}

// Evaluator answers entitlement questions over a profile source. Like the
// session evaluator, every predicate re-reads the source on each call.
type Evaluator struct {
	source ProfileSource
	now    func() time.Time
}

// NewEvaluator creates an evaluator using wall-clock time.
func NewEvaluator(source ProfileSource) *Evaluator {
	return NewEvaluatorWithClock(source, time.Now)
}

// NewEvaluatorWithClock creates an evaluator with an injected clock.
func NewEvaluatorWithClock(source ProfileSource, now func() time.Time) *Evaluator {
	return &Evaluator{source: source, now: now}
}

func (evaluator *Evaluator) profile() Profile {
	profile, ok := evaluator.source.Profile()
	if !ok {
		return Profile{}
	}
	return profile
}

// HasActiveSubscription reports whether the status is exactly "active".
// Plan and expiry are irrelevant here; an active status with a stale expiry
// date still counts until the payment pipeline flips the status.
func (evaluator *Evaluator) HasActiveSubscription() bool {
	return evaluator.profile().IsActive()
}

// EffectivePlan returns the plan whose ceiling applies right now: the
// stored plan when the subscription is active, otherwise FREE. An inactive
// PRO subscriber has exactly the entitlements of a free user.
func (evaluator *Evaluator) EffectivePlan() Plan {
	profile := evaluator.profile()
	if !profile.IsActive() {
		return PlanFree
	}
	return profile.Plan()
}

// CanAccessLevel reports whether the effective plan's ceiling covers the
// given difficulty level.
func (evaluator *Evaluator) CanAccessLevel(level int) bool {
	return level <= evaluator.EffectivePlan().Ceiling()
}

// MaxAccessibleLevel returns the effective plan's ceiling.
func (evaluator *Evaluator) MaxAccessibleLevel() int {
	return evaluator.EffectivePlan().Ceiling()
}

// IsExpiringSoon reports whether the recorded expiry falls within the next
// thresholdDays days. A non-positive thresholdDays means
// [DefaultExpiryWarningDays]. Already-expired and undated subscriptions
// report false; the renewal prompt is a "renew soon" signal, not an
// entitlement check, so the status field is not consulted.
func (evaluator *Evaluator) IsExpiringSoon(thresholdDays int) bool {
	if thresholdDays <= 0 {
		thresholdDays = DefaultExpiryWarningDays
	}

	expiry, ok := evaluator.profile().ExpiryTime()
	if !ok {
		return false
	}

	remaining := expiry.Sub(evaluator.now())
	return remaining > 0 && remaining <= time.Duration(thresholdDays)*24*time.Hour
}
