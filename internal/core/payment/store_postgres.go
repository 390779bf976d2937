// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

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

var paymentColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s",
	schema.BillingPayment.ID, schema.BillingPayment.StudentID, schema.BillingPayment.Plan,
	schema.BillingPayment.AmountCents, schema.BillingPayment.Currency, schema.BillingPayment.Status,
	schema.BillingPayment.Provider, schema.BillingPayment.ProviderRef, schema.BillingPayment.CreatedAt)

func (repository *PostgresRepository) Insert(context context.Context, payment *Payment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		schema.BillingPayment.Table, paymentColumns)

	payment.CreatedAt = time.Now()

	_, err := repository.db.Exec(context, query,
		payment.ID, payment.StudentID, payment.Plan, payment.AmountCents,
		payment.Currency, payment.Status, payment.Provider, payment.ProviderRef,
		payment.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert_payment")
	}

	return nil
}

func (repository *PostgresRepository) ListByStudent(context context.Context, studentID string, params pagination.Params) ([]*Payment, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.BillingPayment.Table, schema.BillingPayment.StudentID)

	var total int
	if err := repository.db.QueryRow(context, countQuery, studentID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_student_payments")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3`,
		paymentColumns, schema.BillingPayment.Table,
		schema.BillingPayment.StudentID, schema.BillingPayment.CreatedAt)

	rows, err := repository.db.Query(context, listQuery, studentID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_student_payments")
	}
	defer rows.Close()

	payments, err := scanPayments(rows)
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

func (repository *PostgresRepository) List(context context.Context, params pagination.Params) ([]*Payment, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.BillingPayment.Table)

	var total int
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_payments")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s FROM %s
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2`,
		paymentColumns, schema.BillingPayment.Table, schema.BillingPayment.CreatedAt)

	rows, err := repository.db.Query(context, listQuery, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_payments")
	}
	defer rows.Close()

	payments, err := scanPayments(rows)
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

func scanPayments(rows pgx.Rows) ([]*Payment, error) {
	payments := make([]*Payment, 0)
	for rows.Next() {
		payment := &Payment{}
		err := rows.Scan(
			&payment.ID, &payment.StudentID, &payment.Plan, &payment.AmountCents,
			&payment.Currency, &payment.Status, &payment.Provider,
			&payment.ProviderRef, &payment.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_payment")
		}
		payments = append(payments, payment)
	}
	return payments, nil
}
