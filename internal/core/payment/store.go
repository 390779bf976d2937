// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package payment

import (
	"context"

	"github.com/subgquiz/subg-api/pkg/pagination"
)

// Repository defines the persistence contract for the billing ledger. The
// ledger is append-only; rows are never updated or deleted.
type Repository interface {
	Insert(context context.Context, payment *Payment) error
	ListByStudent(context context.Context, studentID string, params pagination.Params) ([]*Payment, int, error)
	List(context context.Context, params pagination.Params) ([]*Payment, int, error)
}
