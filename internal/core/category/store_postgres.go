package category

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/subgquiz/subg-api/internal/platform/apperr"
	"github.com/subgquiz/subg-api/internal/platform/database/schema"
	"github.com/subgquiz/subg-api/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListCategories(context context.Context, includeInactive bool) ([]*Category, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s FROM %s`,
		schema.QuizCategory.ID, schema.QuizCategory.Name, schema.QuizCategory.Slug,
		schema.QuizCategory.Description, schema.QuizCategory.IconURL,
		schema.QuizCategory.SortOrder, schema.QuizCategory.IsActive,
		schema.QuizCategory.Table)
	if !includeInactive {
		query += fmt.Sprintf(` WHERE %s = TRUE`, schema.QuizCategory.IsActive)
	}
	query += fmt.Sprintf(` ORDER BY %s ASC, %s ASC`, schema.QuizCategory.SortOrder, schema.QuizCategory.Name)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.IconURL, &c.SortOrder, &c.IsActive); err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}

	return categories, nil
}

func (repository *PostgresRepository) GetCategoryByID(context context.Context, id int) (*Category, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.QuizCategory.ID, schema.QuizCategory.Name, schema.QuizCategory.Slug,
		schema.QuizCategory.Description, schema.QuizCategory.IconURL,
		schema.QuizCategory.SortOrder, schema.QuizCategory.IsActive,
		schema.QuizCategory.Table, schema.QuizCategory.ID)

	c := &Category{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.IconURL, &c.SortOrder, &c.IsActive)
	if err != nil {
		return nil, dberr.Wrap(err, "get_category_by_id")
	}

	return c, nil
}

func (repository *PostgresRepository) GetCategoryBySlug(context context.Context, slug string) (*Category, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.QuizCategory.ID, schema.QuizCategory.Name, schema.QuizCategory.Slug,
		schema.QuizCategory.Description, schema.QuizCategory.IconURL,
		schema.QuizCategory.SortOrder, schema.QuizCategory.IsActive,
		schema.QuizCategory.Table, schema.QuizCategory.Slug)

	c := &Category{}
	err := repository.db.QueryRow(context, query, slug).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.IconURL, &c.SortOrder, &c.IsActive)
	if err != nil {
		return nil, dberr.Wrap(err, "get_category_by_slug")
	}

	return c, nil
}

func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING %s`,
		schema.QuizCategory.Table,
		schema.QuizCategory.Name, schema.QuizCategory.Slug, schema.QuizCategory.Description,
		schema.QuizCategory.IconURL, schema.QuizCategory.SortOrder, schema.QuizCategory.IsActive,
		schema.QuizCategory.CreatedAt, schema.QuizCategory.UpdatedAt,
		schema.QuizCategory.ID)

	now := time.Now()
	err := repository.db.QueryRow(context, query,
		category.Name, category.Slug, category.Description,
		category.IconURL, category.SortOrder, category.IsActive, now,
	).Scan(&category.ID)
	if err != nil {
		return dberr.Wrap(err, "create_category")
	}

	category.CreatedAt = now
	category.UpdatedAt = now
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, category *Category) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8
		WHERE %s = $1`,
		schema.QuizCategory.Table,
		schema.QuizCategory.Name, schema.QuizCategory.Slug, schema.QuizCategory.Description,
		schema.QuizCategory.IconURL, schema.QuizCategory.SortOrder, schema.QuizCategory.IsActive,
		schema.QuizCategory.UpdatedAt,
		schema.QuizCategory.ID)

	tag, err := repository.db.Exec(context, query,
		category.ID, category.Name, category.Slug, category.Description,
		category.IconURL, category.SortOrder, category.IsActive, time.Now())
	if err != nil {
		return dberr.Wrap(err, "update_category")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category not found")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.QuizCategory.Table, schema.QuizCategory.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category not found")
	}

	return nil
}
