// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

/*
Package subscription implements plan entitlements: the denormalized profile
blob persisted alongside the session token, the plan-to-ceiling mapping, and
the evaluator the content guards and quiz service consult.

# Architecture

  - Plan: a closed enum of paid tiers, each with a difficulty-level ceiling.
  - Profile: the JSON blob stored in the client profile slot and in Redis.
  - Evaluator: total predicates over a profile source. An inactive or absent
    subscription is never an error; it collapses to the free tier.
*/
package subscription

import (
	"encoding/json"
	"time"

	"github.com/subgquiz/subg-api/internal/platform/constants"
)

// StatusActive is the only subscription status that unlocks paid ceilings.
// Any other value (expired, cancelled, empty, garbage) means inactive.
const StatusActive = "active"

// Plan is a subscription tier. Unrecognized wire values parse to PlanFree.
type Plan string

const (
	PlanFree    Plan = "FREE"
	PlanBasic   Plan = "BASIC"
	PlanPremium Plan = "PREMIUM"
	PlanPro     Plan = "PRO"
)

// planCeilings maps each tier to the highest difficulty level it unlocks.
var planCeilings = map[Plan]int{
	PlanFree:    constants.FreeLevelCeiling,
	PlanBasic:   6,
	PlanPremium: 9,
	PlanPro:     constants.MaxContentLevel,
}

// ParsePlan maps a raw plan string onto the closed tier set. Anything
// unrecognized, including the empty string, degrades to PlanFree.
func ParsePlan(raw string) Plan {
	switch Plan(raw) {
	case PlanBasic, PlanPremium, PlanPro:
		return Plan(raw)
	default:
		return PlanFree
	}
}

// Ceiling returns the highest difficulty level this plan unlocks.
func (plan Plan) Ceiling() int {
	if ceiling, ok := planCeilings[plan]; ok {
		return ceiling
	}
	return constants.FreeLevelCeiling
}

// IsValid reports whether the plan is one of the four known tiers.
func (plan Plan) IsValid() bool {
	_, ok := planCeilings[plan]
	return ok
}

// Profile is the denormalized subscription snapshot. The JSON field names
// are a wire contract shared with the web client's profile slot.
type Profile struct {
	SubscriptionStatus string `json:"subscriptionStatus"`
	SubscriptionPlan   string `json:"subscriptionPlan"`
	SubscriptionExpiry string `json:"subscriptionExpiry,omitempty"`
}

// IsActive reports whether the status is exactly "active".
func (profile Profile) IsActive() bool {
	return profile.SubscriptionStatus == StatusActive
}

// Plan returns the parsed tier, already collapsed to FREE for anything
// unrecognized.
func (profile Profile) Plan() Plan {
	return ParsePlan(profile.SubscriptionPlan)
}

// expiryLayouts are the accepted wire formats for the expiry field, tried in
// order. Payment webhooks historically wrote date-only strings.
var expiryLayouts = []string{time.RFC3339, "2006-01-02"}

// ExpiryTime parses the expiry field. Returns ok=false for an absent or
// unparseable value.
func (profile Profile) ExpiryTime() (time.Time, bool) {
	if profile.SubscriptionExpiry == "" {
		return time.Time{}, false
	}

	for _, layout := range expiryLayouts {
		if parsed, err := time.Parse(layout, profile.SubscriptionExpiry); err == nil {
			return parsed, true
		}
	}

	return time.Time{}, false
}

// DecodeProfile unmarshals a profile blob. A corrupt blob degrades to the
// zero profile (inactive, free tier) rather than an error; the entitlement
// layer must never fail open or crash on bad client state.
func DecodeProfile(blob string) Profile {
	var profile Profile
	if blob == "" {
		return profile
	}
	if err := json.Unmarshal([]byte(blob), &profile); err != nil {
		return Profile{}
	}
	return profile
}

// Encode marshals the profile for slot storage.
func (profile Profile) Encode() string {
	blob, err := json.Marshal(profile)
	if err != nil {
		return "{}"
	}
	return string(blob)
}
