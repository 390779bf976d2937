// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

// # Architecture
//
// Repositories in this file are strictly separated from domain logic. They
// implement domain-defined interfaces (e.g., [UserRepository]) using the
// [pgxpool.Pool] connection manager.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/subgquiz/subg-api/internal/platform/apperr"
	"github.com/subgquiz/subg-api/internal/platform/dberr"
)

// accountColumns is the canonical SELECT column list for users.account.
const accountColumns = `
	id, email, fullname, passwordhash, role, adminprivileges, isactive,
	subscriptionstatus, subscriptionplan, subscriptionexpiry,
	lastloginat, createdat, updatedat`

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
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
		return nil, err
	}
	return user, nil
}

/*
Create persists a new user record into the users.account table.

Description: Deep-persists account metadata, ensuring timestamps are initialized
if not provided.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, email, fullname, passwordhash, role, adminprivileges, isactive,
			subscriptionstatus, subscriptionplan, subscriptionexpiry, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Email,
		user.FullName,
		user.PasswordHash,
		user.Role,
		user.AdminPrivileges,
		user.IsActive,
		user.SubscriptionStatus,
		user.SubscriptionPlan,
		user.SubscriptionExpiry,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "create_user")
	}

	return nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Description: Performs a lookup on the account table, filtering out soft-deleted users.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users.account
		WHERE email = $1 AND deletedat IS NULL`, accountColumns)

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User not found with this email")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}

	return user, nil
}

/*
FindByID retrieves a user record by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users.account
		WHERE id = $1 AND deletedat IS NULL`, accountColumns)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
Update persists mutable profile fields.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: Persistence failures
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	const query = `
		UPDATE users.account
		SET fullname = $2, isactive = $3, updatedat = $4
		WHERE id = $1 AND deletedat IS NULL`

	user.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(context, query,
		user.ID, user.FullName, user.IsActive, user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_user")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User not found")
	}

	return nil
}

/*
UpdatePassword replaces only the password hash for the given account.

Parameters:
  - context: context.Context
  - userID: string
  - newHash: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	const query = `
		UPDATE users.account
		SET passwordhash = $2, updatedat = $3
		WHERE id = $1 AND deletedat IS NULL`

	tag, err := repository.pool.Exec(context, query, userID, newHash, time.Now())
	if err != nil {
		return dberr.Wrap(err, "update_password")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User not found")
	}

	return nil
}

/*
UpdateSubscription replaces the account's denormalized subscription columns.

Description: Called by the payments pipeline and the admin back-office; the
caller is responsible for re-mirroring the Redis profile slot.

Parameters:
  - context: context.Context
  - userID: string
  - status: string
  - plan: string
  - expiry: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresUserRepository) UpdateSubscription(context context.Context, userID, status, plan, expiry string) error {
	const query = `
		UPDATE users.account
		SET subscriptionstatus = $2, subscriptionplan = $3, subscriptionexpiry = $4, updatedat = $5
		WHERE id = $1 AND deletedat IS NULL`

	tag, err := repository.pool.Exec(context, query, userID, status, plan, expiry, time.Now())
	if err != nil {
		return dberr.Wrap(err, "update_subscription")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User not found")
	}

	return nil
}

/*
TouchLastLogin stamps the account's last successful login time.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresUserRepository) TouchLastLogin(context context.Context, userID string) error {
	const query = `
		UPDATE users.account
		SET lastloginat = $2
		WHERE id = $1`

	if _, err := repository.pool.Exec(context, query, userID, time.Now()); err != nil {
		return dberr.Wrap(err, "touch_last_login")
	}

	return nil
}

/*
SoftDelete marks the account as deleted without removing the row.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresUserRepository) SoftDelete(context context.Context, id string) error {
	const query = `
		UPDATE users.account
		SET deletedat = $2, isactive = FALSE
		WHERE id = $1 AND deletedat IS NULL`

	tag, err := repository.pool.Exec(context, query, id, time.Now())
	if err != nil {
		return dberr.Wrap(err, "soft_delete_user")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User not found")
	}

	return nil
}

// # Session Repository

// PostgresSessionRepository implements the SessionRepository interface using pgx.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new PostgreSQL implementation of the SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

/*
Create persists a new refresh-token session.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Persistence failures
*/
func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {
	const query = `
		INSERT INTO users.session (
			id, userid, tokenhash, useragent, ipaddress, expiresat, isrevoked, createdat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		session.ID,
		session.UserID,
		session.TokenHash,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
		session.IsRevoked,
		session.CreatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "create_session")
	}

	return nil
}

/*
FindByTokenHash returns the live session matching the token hash.

Description: Revoked and expired sessions are filtered in the query itself so
a stolen-but-revoked token never resolves.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *Session: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	const query = `
		SELECT id, userid, tokenhash, useragent, ipaddress, expiresat, isrevoked, createdat
		FROM users.session
		WHERE tokenhash = $1 AND isrevoked = FALSE AND expiresat > NOW()`

	session := &Session{}
	err := repository.pool.QueryRow(context, query, tokenHash).Scan(
		&session.ID,
		&session.UserID,
		&session.TokenHash,
		&session.UserAgent,
		&session.IPAddress,
		&session.ExpiresAt,
		&session.IsRevoked,
		&session.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Session not found or expired")
		}
		return nil, fmt.Errorf("postgres_session_repo_find_failed: %w", err)
	}

	return session, nil
}

/*
Revoke marks a single session as permanently invalidated.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresSessionRepository) Revoke(context context.Context, sessionID string) error {
	const query = `UPDATE users.session SET isrevoked = TRUE WHERE id = $1`

	if _, err := repository.pool.Exec(context, query, sessionID); err != nil {
		return dberr.Wrap(err, "revoke_session")
	}

	return nil
}

/*
RevokeAll revokes every active session belonging to the user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresSessionRepository) RevokeAll(context context.Context, userID string) error {
	const query = `UPDATE users.session SET isrevoked = TRUE WHERE userid = $1 AND isrevoked = FALSE`

	if _, err := repository.pool.Exec(context, query, userID); err != nil {
		return dberr.Wrap(err, "revoke_all_sessions")
	}

	return nil
}

/*
DeleteExpired physically removes sessions past their expiry.

Description: Intended for a periodic maintenance job; normal request flow only
revokes.

Parameters:
  - context: context.Context

Returns:
  - error: Persistence failures
*/
func (repository *PostgresSessionRepository) DeleteExpired(context context.Context) error {
	const query = `DELETE FROM users.session WHERE expiresat <= NOW()`

	if _, err := repository.pool.Exec(context, query); err != nil {
		return dberr.Wrap(err, "delete_expired_sessions")
	}

	return nil
}
