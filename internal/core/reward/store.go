// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package reward

import (
	"context"

	"github.com/subgquiz/subg-api/pkg/pagination"
)

// LedgerRepository defines the persistence contract for the points ledger.
type LedgerRepository interface {
	Insert(context context.Context, entry *Entry) error
	ListByStudent(context context.Context, studentID string, params pagination.Params) ([]*Entry, int, error)

	// TotalPoints sums a student's ledger. Used to rebuild the Redis
	// leaderboard and to answer balance queries authoritatively.
	TotalPoints(context context.Context, studentID string) (int, error)
}
