// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package reward

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/subgquiz/subg-api/internal/platform/database/schema"
	"github.com/subgquiz/subg-api/internal/platform/dberr"
	"github.com/subgquiz/subg-api/pkg/pagination"
)

type PostgresLedgerRepository struct {
	db *pgxpool.Pool
}

func NewPostgresLedgerRepository(db *pgxpool.Pool) *PostgresLedgerRepository {
	return &PostgresLedgerRepository{db: db}
}

var ledgerColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s",
	schema.RewardLedger.ID, schema.RewardLedger.StudentID, schema.RewardLedger.AttemptID,
	schema.RewardLedger.Points, schema.RewardLedger.Reason, schema.RewardLedger.CreatedAt)

func (repository *PostgresLedgerRepository) Insert(context context.Context, entry *Entry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.RewardLedger.Table, ledgerColumns)

	entry.CreatedAt = time.Now()

	_, err := repository.db.Exec(context, query,
		entry.ID, entry.StudentID, entry.AttemptID, entry.Points, entry.Reason, entry.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert_reward_entry")
	}

	return nil
}

func (repository *PostgresLedgerRepository) ListByStudent(context context.Context, studentID string, params pagination.Params) ([]*Entry, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.RewardLedger.Table, schema.RewardLedger.StudentID)

	var total int
	if err := repository.db.QueryRow(context, countQuery, studentID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reward_entries")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3`,
		ledgerColumns, schema.RewardLedger.Table,
		schema.RewardLedger.StudentID, schema.RewardLedger.CreatedAt)

	rows, err := repository.db.Query(context, listQuery, studentID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reward_entries")
	}
	defer rows.Close()

	entries := make([]*Entry, 0)
	for rows.Next() {
		entry := &Entry{}
		err := rows.Scan(
			&entry.ID, &entry.StudentID, &entry.AttemptID,
			&entry.Points, &entry.Reason, &entry.CreatedAt,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_reward_entry")
		}
		entries = append(entries, entry)
	}

	return entries, total, nil
}

func (repository *PostgresLedgerRepository) TotalPoints(context context.Context, studentID string) (int, error) {
	query := fmt.Sprintf(`SELECT COALESCE(SUM(%s), 0) FROM %s WHERE %s = $1`,
		schema.RewardLedger.Points, schema.RewardLedger.Table, schema.RewardLedger.StudentID)

	var total int
	if err := repository.db.QueryRow(context, query, studentID).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "total_reward_points")
	}

	return total, nil
}
