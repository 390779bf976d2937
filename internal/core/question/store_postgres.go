// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package question

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

// questionColumns is the canonical SELECT list for quiz.question. Options is
// a jsonb column; pgx scans it straight into []string.
var questionColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
	schema.QuizQuestion.ID, schema.QuizQuestion.CategoryID, schema.QuizQuestion.Level,
	schema.QuizQuestion.Prompt, schema.QuizQuestion.Options, schema.QuizQuestion.CorrectIndex,
	schema.QuizQuestion.Explanation, schema.QuizQuestion.IsActive,
	schema.QuizQuestion.CreatedAt, schema.QuizQuestion.UpdatedAt)

func scanQuestion(row pgx.Row) (*Question, error) {
	q := &Question{}
	err := row.Scan(
		&q.ID, &q.CategoryID, &q.Level, &q.Prompt, &q.Options,
		&q.CorrectIndex, &q.Explanation, &q.IsActive, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, params pagination.Params) ([]*Question, int, error) {
	where := `WHERE 1=1`
	args := []any{}

	if filter.CategoryID > 0 {
		args = append(args, filter.CategoryID)
		where += fmt.Sprintf(` AND %s = $%d`, schema.QuizQuestion.CategoryID, len(args))
	}
	if filter.Level > 0 {
		args = append(args, filter.Level)
		where += fmt.Sprintf(` AND %s = $%d`, schema.QuizQuestion.Level, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(` AND %s ILIKE $%d`, schema.QuizQuestion.Prompt, len(args))
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, schema.QuizQuestion.Table, where)

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_questions")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s FROM %s %s
		ORDER BY %s ASC, %s DESC
		LIMIT $%d OFFSET $%d`,
		questionColumns, schema.QuizQuestion.Table, where,
		schema.QuizQuestion.Level, schema.QuizQuestion.CreatedAt,
		len(args)+1, len(args)+2)

	args = append(args, params.Limit, params.Offset())

	rows, err := repository.db.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_questions")
	}
	defer rows.Close()

	questions := make([]*Question, 0)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_question")
		}
		questions = append(questions, q)
	}

	return questions, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Question, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		questionColumns, schema.QuizQuestion.Table, schema.QuizQuestion.ID)

	q, err := scanQuestion(repository.db.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Question not found")
		}
		return nil, dberr.Wrap(err, "get_question_by_id")
	}

	return q, nil
}

func (repository *PostgresRepository) DrawForQuiz(context context.Context, categoryID, level, count int) ([]*Question, error) {
	// ORDER BY random() is acceptable at question-bank scale; revisit with
	// TABLESAMPLE if the bank grows past ~100k rows.
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s <= $2 AND %s = TRUE
		ORDER BY random()
		LIMIT $3`,
		questionColumns, schema.QuizQuestion.Table,
		schema.QuizQuestion.CategoryID, schema.QuizQuestion.Level, schema.QuizQuestion.IsActive)

	rows, err := repository.db.Query(context, query, categoryID, level, count)
	if err != nil {
		return nil, dberr.Wrap(err, "draw_questions")
	}
	defer rows.Close()

	questions := make([]*Question, 0, count)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_drawn_question")
		}
		questions = append(questions, q)
	}

	return questions, nil
}

func (repository *PostgresRepository) Create(context context.Context, question *Question) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`,
		schema.QuizQuestion.Table,
		schema.QuizQuestion.ID, schema.QuizQuestion.CategoryID, schema.QuizQuestion.Level,
		schema.QuizQuestion.Prompt, schema.QuizQuestion.Options, schema.QuizQuestion.CorrectIndex,
		schema.QuizQuestion.Explanation, schema.QuizQuestion.IsActive,
		schema.QuizQuestion.CreatedAt, schema.QuizQuestion.UpdatedAt)

	now := time.Now()
	question.CreatedAt = now
	question.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		question.ID, question.CategoryID, question.Level, question.Prompt,
		question.Options, question.CorrectIndex, question.Explanation,
		question.IsActive, now)
	if err != nil {
		return dberr.Wrap(err, "create_question")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, question *Question) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9
		WHERE %s = $1`,
		schema.QuizQuestion.Table,
		schema.QuizQuestion.CategoryID, schema.QuizQuestion.Level, schema.QuizQuestion.Prompt,
		schema.QuizQuestion.Options, schema.QuizQuestion.CorrectIndex,
		schema.QuizQuestion.Explanation, schema.QuizQuestion.IsActive,
		schema.QuizQuestion.UpdatedAt,
		schema.QuizQuestion.ID)

	question.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(context, query,
		question.ID, question.CategoryID, question.Level, question.Prompt,
		question.Options, question.CorrectIndex, question.Explanation,
		question.IsActive, question.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_question")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Question not found")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.QuizQuestion.Table, schema.QuizQuestion.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_question")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Question not found")
	}

	return nil
}
