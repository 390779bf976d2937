// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package question

import (
	"context"
	"log/slog"

	"github.com/subgquiz/subg-api/internal/platform/apperr"
	"github.com/subgquiz/subg-api/internal/platform/validate"
	"github.com/subgquiz/subg-api/pkg/pagination"
	"github.com/subgquiz/subg-api/pkg/uuid"
)

// minOptions and maxOptions bound the answer list of a question.
const (
	minOptions = 2
	maxOptions = 6
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns a back-office page of questions, grading data included.
func (service *Service) List(context context.Context, filter Filter, params pagination.Params) ([]*Question, pagination.Meta, error) {
	questions, total, err := service.repo.List(context, filter, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return questions, pagination.NewMeta(params.Page, params.Limit, total), nil
}

func (service *Service) Get(context context.Context, id string) (*Question, error) {
	return service.repo.GetByID(context, id)
}

// CreateInput holds admin-supplied question fields.
type CreateInput struct {
	CategoryID   int
	Level        int
	Prompt       string
	Options      []string
	CorrectIndex int
	Explanation  *string
}

func (service *Service) Create(context context.Context, input CreateInput) (*Question, error) {
	if err := validateQuestion(input.Level, input.Prompt, input.Options, input.CorrectIndex); err != nil {
		return nil, err
	}

	question := &Question{
		ID:           uuid.New(),
		CategoryID:   input.CategoryID,
		Level:        input.Level,
		Prompt:       input.Prompt,
		Options:      input.Options,
		CorrectIndex: input.CorrectIndex,
		Explanation:  input.Explanation,
		IsActive:     true,
	}

	if err := service.repo.Create(context, question); err != nil {
		return nil, err
	}

	service.logger.Info("question_created",
		slog.String("question_id", question.ID),
		slog.Int("level", question.Level),
	)

	return question, nil
}

// UpdateInput applies a partial update; nil fields are left untouched.
type UpdateInput struct {
	CategoryID   *int
	Level        *int
	Prompt       *string
	Options      []string
	CorrectIndex *int
	Explanation  *string
	IsActive     *bool
}

func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Question, error) {
	question, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		question.CategoryID = *input.CategoryID
	}
	if input.Level != nil {
		question.Level = *input.Level
	}
	if input.Prompt != nil {
		question.Prompt = *input.Prompt
	}
	if input.Options != nil {
		question.Options = input.Options
	}
	if input.CorrectIndex != nil {
		question.CorrectIndex = *input.CorrectIndex
	}
	if input.Explanation != nil {
		question.Explanation = input.Explanation
	}
	if input.IsActive != nil {
		question.IsActive = *input.IsActive
	}

	if err := validateQuestion(question.Level, question.Prompt, question.Options, question.CorrectIndex); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, question); err != nil {
		return nil, err
	}

	return question, nil
}

func (service *Service) Delete(context context.Context, id string) error {
	return service.repo.Delete(context, id)
}

// DrawForQuiz samples questions for an attempt.
func (service *Service) DrawForQuiz(context context.Context, categoryID, level, count int) ([]*Question, error) {
	return service.repo.DrawForQuiz(context, categoryID, level, count)
}

func validateQuestion(level int, prompt string, options []string, correctIndex int) error {
	v := &validate.Validator{}
	v.Required("prompt", prompt).
		Level("level", level).
		Custom("options", len(options) < minOptions || len(options) > maxOptions,
			"must contain between 2 and 6 options")

	if err := v.Err(); err != nil {
		return err
	}

	if correctIndex < 0 || correctIndex >= len(options) {
		return apperr.Unprocessable("Correct answer index is out of range")
	}

	return nil
}
