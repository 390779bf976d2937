package category

import "context"

type Repository interface {
	ListCategories(context context.Context, includeInactive bool) ([]*Category, error)
	GetCategoryByID(context context.Context, id int) (*Category, error)
	GetCategoryBySlug(context context.Context, slug string) (*Category, error)
	Create(context context.Context, category *Category) error
	Update(context context.Context, category *Category) error
	Delete(context context.Context, id int) error
}
