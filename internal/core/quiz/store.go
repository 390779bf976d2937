// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package quiz

import (
	"context"

	"github.com/subgquiz/subg-api/pkg/pagination"
)

// Filter narrows quiz catalog listings.
type Filter struct {
	CategoryID      int
	MaxLevel        int
	IncludeInactive bool
}

// QuizRepository defines the persistence contract for the quiz catalog.
type QuizRepository interface {
	List(context context.Context, filter Filter, params pagination.Params) ([]*Quiz, int, error)
	GetByID(context context.Context, id string) (*Quiz, error)
	GetBySlug(context context.Context, slug string) (*Quiz, error)
	Create(context context.Context, quiz *Quiz) error
	Update(context context.Context, quiz *Quiz) error
	Delete(context context.Context, id string) error
}

// AttemptRepository defines the persistence contract for attempts and their
// answers.
type AttemptRepository interface {
	Create(context context.Context, attempt *Attempt) error
	GetByID(context context.Context, id string) (*Attempt, error)

	// FindInProgress returns the student's open attempt on the quiz, or a
	// NotFound error when none exists.
	FindInProgress(context context.Context, studentID, quizID string) (*Attempt, error)

	// UpdateStatus finalizes an attempt's status, score, and completion time.
	UpdateStatus(context context.Context, attempt *Attempt) error

	// SaveAnswer upserts the response for one question of an attempt.
	// Re-answering the same question overwrites the previous response.
	SaveAnswer(context context.Context, answer *Answer) error

	// ListAnswers returns all recorded answers for an attempt.
	ListAnswers(context context.Context, attemptID string) ([]*Answer, error)

	// ListByStudent returns the student's attempt history, newest first.
	ListByStudent(context context.Context, studentID string, params pagination.Params) ([]*Attempt, int, error)
}
