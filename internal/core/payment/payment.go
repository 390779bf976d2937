// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

/*
Package payment records subscription purchases and activates the entitlements
they grant.

A recorded payment touches three stores that must stay in sync: the billing
ledger (this package), the account's subscription columns, and the Redis
profile slot the guards read. The ledger row and account update are
authoritative; the slot mirror is best-effort and self-heals on next login.
*/
package payment

import "time"

// Payment statuses.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// SubscriptionTerm is how long one successful payment keeps a plan active.
const SubscriptionTerm = 30 * 24 * time.Hour

// Payment is one row of the billing ledger.
type Payment struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	Plan        string    `json:"plan"`
	AmountCents int       `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	Provider    string    `json:"provider"`
	ProviderRef string    `json:"provider_ref"`
	CreatedAt   time.Time `json:"created_at"`
}
