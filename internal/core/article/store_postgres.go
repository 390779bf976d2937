package article

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/subgquiz/subg-api/internal/platform/apperr"
	"github.com/subgquiz/subg-api/internal/platform/database/schema"
	"github.com/subgquiz/subg-api/internal/platform/dberr"
	"github.com/subgquiz/subg-api/pkg/pagination"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var articleColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
	schema.ContentArticle.ID, schema.ContentArticle.AuthorID, schema.ContentArticle.Title,
	schema.ContentArticle.Slug, schema.ContentArticle.Summary, schema.ContentArticle.Body,
	schema.ContentArticle.CoverURL, schema.ContentArticle.IsPublished,
	schema.ContentArticle.PublishedAt, schema.ContentArticle.CreatedAt, schema.ContentArticle.UpdatedAt)

func scanArticle(row pgx.Row) (*Article, error) {
	article := &Article{}
	err := row.Scan(
		&article.ID, &article.AuthorID, &article.Title, &article.Slug,
		&article.Summary, &article.Body, &article.CoverURL, &article.IsPublished,
		&article.PublishedAt, &article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return article, nil
}

func (repository *PostgresRepository) List(context context.Context, publishedOnly bool, params pagination.Params) ([]*Article, int, error) {
	where := `WHERE 1=1`
	orderColumn := schema.ContentArticle.CreatedAt

	if publishedOnly {
		where += fmt.Sprintf(` AND %s = TRUE`, schema.ContentArticle.IsPublished)
		orderColumn = schema.ContentArticle.PublishedAt
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, schema.ContentArticle.Table, where)

	var total int
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_articles")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s FROM %s %s
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2`,
		articleColumns, schema.ContentArticle.Table, where, orderColumn)

	rows, err := repository.db.Query(context, listQuery, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_articles")
	}
	defer rows.Close()

	articles := make([]*Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_article")
		}
		articles = append(articles, article)
	}

	return articles, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		articleColumns, schema.ContentArticle.Table, schema.ContentArticle.ID)

	article, err := scanArticle(repository.db.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Article")
		}
		return nil, dberr.Wrap(err, "get_article_by_id")
	}

	return article, nil
}

func (repository *PostgresRepository) GetBySlug(context context.Context, articleSlug string) (*Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		articleColumns, schema.ContentArticle.Table, schema.ContentArticle.Slug)

	article, err := scanArticle(repository.db.QueryRow(context, query, articleSlug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Article")
		}
		return nil, dberr.Wrap(err, "get_article_by_slug")
	}

	return article, nil
}

func (repository *PostgresRepository) Create(context context.Context, article *Article) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`,
		schema.ContentArticle.Table,
		schema.ContentArticle.ID, schema.ContentArticle.AuthorID, schema.ContentArticle.Title,
		schema.ContentArticle.Slug, schema.ContentArticle.Summary, schema.ContentArticle.Body,
		schema.ContentArticle.CoverURL, schema.ContentArticle.IsPublished,
		schema.ContentArticle.PublishedAt, schema.ContentArticle.CreatedAt, schema.ContentArticle.UpdatedAt)

	now := time.Now()
	article.CreatedAt = now
	article.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		article.ID, article.AuthorID, article.Title, article.Slug,
		article.Summary, article.Body, article.CoverURL, article.IsPublished,
		article.PublishedAt, now)
	if err != nil {
		return dberr.Wrap(err, "create_article")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, article *Article) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9
		WHERE %s = $1`,
		schema.ContentArticle.Table,
		schema.ContentArticle.Title, schema.ContentArticle.Slug, schema.ContentArticle.Summary,
		schema.ContentArticle.Body, schema.ContentArticle.CoverURL, schema.ContentArticle.IsPublished,
		schema.ContentArticle.PublishedAt, schema.ContentArticle.UpdatedAt,
		schema.ContentArticle.ID)

	article.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(context, query,
		article.ID, article.Title, article.Slug, article.Summary, article.Body,
		article.CoverURL, article.IsPublished, article.PublishedAt, article.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_article")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Article")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.ContentArticle.Table, schema.ContentArticle.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_article")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Article")
	}

	return nil
}
