// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package student

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/subgquiz/subg-api/internal/platform/apperr"
	"github.com/subgquiz/subg-api/internal/platform/dberr"
	"github.com/subgquiz/subg-api/internal/platform/sec"
	"github.com/subgquiz/subg-api/internal/users/auth"
	"github.com/subgquiz/subg-api/pkg/pagination"
)

// PostgresRepository implements StudentRepository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the StudentRepository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
List returns a page of student accounts matching the filter.

Description: Only accounts with the student role appear; admin accounts are
managed elsewhere. Search is a case-insensitive substring match over email
and full name.

Parameters:
  - context: context.Context
  - filter: ListFilter
  - params: pagination.Params

Returns:
  - []ListItem: Page of accounts
  - int: Total matches before paging
  - error: Retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter ListFilter, params pagination.Params) ([]ListItem, int, error) {
	where := `WHERE role = $1 AND deletedat IS NULL`
	args := []any{sec.RoleStudent}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(` AND (email ILIKE $%d OR fullname ILIKE $%d)`, len(args), len(args))
	}
	if filter.Plan != "" {
		args = append(args, filter.Plan)
		where += fmt.Sprintf(` AND subscriptionplan = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND subscriptionstatus = $%d`, len(args))
	}

	countQuery := `SELECT COUNT(*) FROM users.account ` + where

	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_students")
	}

	listQuery := fmt.Sprintf(`
		SELECT id, email, fullname, isactive,
		       subscriptionstatus, subscriptionplan, subscriptionexpiry,
		       lastloginat, createdat
		FROM users.account
		%s
		ORDER BY createdat DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)

	args = append(args, params.Limit, params.Offset())

	rows, err := repository.pool.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_students")
	}
	defer rows.Close()

	items := make([]ListItem, 0)
	for rows.Next() {
		item := ListItem{}
		err := rows.Scan(
			&item.ID,
			&item.Email,
			&item.FullName,
			&item.IsActive,
			&item.SubscriptionStatus,
			&item.SubscriptionPlan,
			&item.SubscriptionExpiry,
			&item.LastLoginAt,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_student")
		}
		items = append(items, item)
	}

	return items, total, nil
}

/*
FindByID retrieves a student account by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *auth.User: Hydrated account
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	const query = `
		SELECT id, email, fullname, passwordhash, role, adminprivileges, isactive,
		       subscriptionstatus, subscriptionplan, subscriptionexpiry,
		       lastloginat, createdat, updatedat
		FROM users.account
		WHERE id = $1 AND role = $2 AND deletedat IS NULL`

	user := &auth.User{}
	err := repository.pool.QueryRow(context, query, id, sec.RoleStudent).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.PasswordHash,
		&user.Role,
		&user.AdminPrivileges,
		&user.IsActive,
		&user.SubscriptionStatus,
		&user.SubscriptionPlan,
		&user.SubscriptionExpiry,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Student not found")
		}
		return nil, fmt.Errorf("postgres_student_repo_find_failed: %w", err)
	}

	return user, nil
}

/*
UpdateSubscription replaces the student's subscription columns.

Parameters:
  - context: context.Context
  - userID: string
  - status: string
  - plan: string
  - expiry: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) UpdateSubscription(context context.Context, userID, status, plan, expiry string) error {
	const query = `
		UPDATE users.account
		SET subscriptionstatus = $2, subscriptionplan = $3, subscriptionexpiry = $4, updatedat = $5
		WHERE id = $1 AND role = $6 AND deletedat IS NULL`

	tag, err := repository.pool.Exec(context, query, userID, status, plan, expiry, time.Now(), sec.RoleStudent)
	if err != nil {
		return dberr.Wrap(err, "update_student_subscription")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Student not found")
	}

	return nil
}

/*
SetActive toggles the account's active flag.

Parameters:
  - context: context.Context
  - userID: string
  - active: bool

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) SetActive(context context.Context, userID string, active bool) error {
	const query = `
		UPDATE users.account
		SET isactive = $2, updatedat = $3
		WHERE id = $1 AND role = $4 AND deletedat IS NULL`

	tag, err := repository.pool.Exec(context, query, userID, active, time.Now(), sec.RoleStudent)
	if err != nil {
		return dberr.Wrap(err, "set_student_active")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Student not found")
	}

	return nil
}
