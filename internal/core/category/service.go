package category

import (
	"context"
	"log/slog"

	"github.com/subgquiz/subg-api/internal/platform/apperr"
	"github.com/subgquiz/subg-api/internal/platform/validate"
	"github.com/subgquiz/subg-api/pkg/slug"
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

// ListCategories returns the public catalog. Students only see active
// categories; the back-office listing passes includeInactive.
func (service *Service) ListCategories(context context.Context, includeInactive bool) ([]*Category, error) {
	return service.repo.ListCategories(context, includeInactive)
}

func (service *Service) GetCategory(context context.Context, id int) (*Category, error) {
	return service.repo.GetCategoryByID(context, id)
}

func (service *Service) GetCategoryBySlug(context context.Context, categorySlug string) (*Category, error) {
	return service.repo.GetCategoryBySlug(context, categorySlug)
}

// CreateInput holds the admin-supplied category fields.
type CreateInput struct {
	Name        string
	Description *string
	IconURL     *string
	SortOrder   int
}

func (service *Service) CreateCategory(context context.Context, input CreateInput) (*Category, error) {
	v := &validate.Validator{}
	v.Required("name", input.Name).MaxLen("name", input.Name, 120)
	if err := v.Err(); err != nil {
		return nil, err
	}

	category := &Category{
		Name:        input.Name,
		Slug:        slug.From(input.Name),
		Description: input.Description,
		IconURL:     input.IconURL,
		SortOrder:   input.SortOrder,
		IsActive:    true,
	}

	if err := service.repo.Create(context, category); err != nil {
		return nil, err
	}

	service.logger.Info("category_created", slog.String("slug", category.Slug))

	return category, nil
}

// UpdateInput applies a partial update; nil fields are left untouched.
type UpdateInput struct {
	Name        *string
	Description *string
	IconURL     *string
	SortOrder   *int
	IsActive    *bool
}

func (service *Service) UpdateCategory(context context.Context, id int, input UpdateInput) (*Category, error) {
	category, err := service.repo.GetCategoryByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperr.Unprocessable("Category name must not be empty")
		}
		category.Name = *input.Name
		category.Slug = slug.From(*input.Name)
	}
	if input.Description != nil {
		category.Description = input.Description
	}
	if input.IconURL != nil {
		category.IconURL = input.IconURL
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := service.repo.Update(context, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (service *Service) DeleteCategory(context context.Context, id int) error {
	return service.repo.Delete(context, id)
}
