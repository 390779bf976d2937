package article

import (
	"context"
	"log/slog"
	"time"

	"github.com/subgquiz/subg-api/internal/platform/apperr"
	"github.com/subgquiz/subg-api/internal/platform/validate"
	"github.com/subgquiz/subg-api/pkg/pagination"
	"github.com/subgquiz/subg-api/pkg/slug"
	"github.com/subgquiz/subg-api/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// ListPublished returns the student-facing feed.
func (service *Service) ListPublished(context context.Context, params pagination.Params) ([]*Article, pagination.Meta, error) {
	articles, total, err := service.repo.List(context, true, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return articles, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// ListAll returns every article, drafts included, for the back-office.
func (service *Service) ListAll(context context.Context, params pagination.Params) ([]*Article, pagination.Meta, error) {
	articles, total, err := service.repo.List(context, false, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return articles, pagination.NewMeta(params.Page, params.Limit, total), nil
}

func (service *Service) Get(context context.Context, id string) (*Article, error) {
	return service.repo.GetByID(context, id)
}

// GetPublishedBySlug resolves a public article URL. Drafts read as missing.
func (service *Service) GetPublishedBySlug(context context.Context, articleSlug string) (*Article, error) {
	article, err := service.repo.GetBySlug(context, articleSlug)
	if err != nil {
		return nil, err
	}
	if !article.IsPublished {
		return nil, apperr.NotFound("Article")
	}
	return article, nil
}

// CreateInput holds the admin-supplied article fields.
type CreateInput struct {
	AuthorID string
	Title    string
	Summary  *string
	Body     string
	CoverURL *string
}

func (service *Service) Create(context context.Context, input CreateInput) (*Article, error) {
	v := &validate.Validator{}
	v.Required("title", input.Title).
		MaxLen("title", input.Title, 200).
		Required("body", input.Body)
	if err := v.Err(); err != nil {
		return nil, err
	}

	article := &Article{
		ID:       uuid.New(),
		AuthorID: input.AuthorID,
		Title:    input.Title,
		Slug:     slug.From(input.Title),
		Summary:  input.Summary,
		Body:     input.Body,
		CoverURL: input.CoverURL,
	}

	if err := service.repo.Create(context, article); err != nil {
		return nil, err
	}

	service.logger.Info("article_created", slog.String("slug", article.Slug))

	return article, nil
}

// UpdateInput applies a partial update; nil fields are left untouched.
type UpdateInput struct {
	Title    *string
	Summary  *string
	Body     *string
	CoverURL *string
}

func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Article, error) {
	article, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, apperr.Unprocessable("Article title must not be empty")
		}
		article.Title = *input.Title
		article.Slug = slug.From(*input.Title)
	}
	if input.Summary != nil {
		article.Summary = input.Summary
	}
	if input.Body != nil {
		article.Body = *input.Body
	}
	if input.CoverURL != nil {
		article.CoverURL = input.CoverURL
	}

	if err := service.repo.Update(context, article); err != nil {
		return nil, err
	}

	return article, nil
}

// Publish makes a draft visible in the student feed. Republishing keeps the
// original publication time.
func (service *Service) Publish(context context.Context, id string) (*Article, error) {
	article, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	article.IsPublished = true
	if article.PublishedAt == nil {
		publishedAt := service.now()
		article.PublishedAt = &publishedAt
	}

	if err := service.repo.Update(context, article); err != nil {
		return nil, err
	}

	service.logger.Info("article_published", slog.String("slug", article.Slug))

	return article, nil
}

// Unpublish pulls an article back to draft state.
func (service *Service) Unpublish(context context.Context, id string) (*Article, error) {
	article, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	article.IsPublished = false

	if err := service.repo.Update(context, article); err != nil {
		return nil, err
	}

	return article, nil
}

func (service *Service) Delete(context context.Context, id string) error {
	return service.repo.Delete(context, id)
}
