package article

import (
	"context"

	"github.com/subgquiz/subg-api/pkg/pagination"
)

type Repository interface {
	// List returns articles newest first. When publishedOnly is set, drafts
	// are excluded and ordering switches to publication time.
	List(context context.Context, publishedOnly bool, params pagination.Params) ([]*Article, int, error)
	GetByID(context context.Context, id string) (*Article, error)
	GetBySlug(context context.Context, slug string) (*Article, error)
	Create(context context.Context, article *Article) error
	Update(context context.Context, article *Article) error
	Delete(context context.Context, id string) error
}
