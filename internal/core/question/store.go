// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package question

import (
	"context"

	"github.com/subgquiz/subg-api/pkg/pagination"
)

// Filter narrows question listings.
type Filter struct {
	CategoryID int
	Level      int
	Search     string
}

type Repository interface {
	List(context context.Context, filter Filter, params pagination.Params) ([]*Question, int, error)
	GetByID(context context.Context, id string) (*Question, error)

	// DrawForQuiz samples up to count active questions for the category at
	// or below the level, randomized per call.
	DrawForQuiz(context context.Context, categoryID, level, count int) ([]*Question, error)

	Create(context context.Context, question *Question) error
	Update(context context.Context, question *Question) error
	Delete(context context.Context, id string) error
}
