// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package quiz

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

type PostgresQuizRepository struct {
	db *pgxpool.Pool
}

func NewPostgresQuizRepository(db *pgxpool.Pool) *PostgresQuizRepository {
	return &PostgresQuizRepository{db: db}
}

var quizColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
	schema.QuizQuiz.ID, schema.QuizQuiz.CategoryID, schema.QuizQuiz.Title,
	schema.QuizQuiz.Slug, schema.QuizQuiz.Level, schema.QuizQuiz.QuestionCount,
	schema.QuizQuiz.TimeLimitSeconds, schema.QuizQuiz.IsActive,
	schema.QuizQuiz.CreatedAt, schema.QuizQuiz.UpdatedAt)

func scanQuiz(row pgx.Row) (*Quiz, error) {
	q := &Quiz{}
	err := row.Scan(
		&q.ID, &q.CategoryID, &q.Title, &q.Slug, &q.Level, &q.QuestionCount,
		&q.TimeLimitSeconds, &q.IsActive, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (repository *PostgresQuizRepository) List(context context.Context, filter Filter, params pagination.Params) ([]*Quiz, int, error) {
	where := `WHERE 1=1`
	args := []any{}

	if !filter.IncludeInactive {
		where += fmt.Sprintf(` AND %s = TRUE`, schema.QuizQuiz.IsActive)
	}
	if filter.CategoryID > 0 {
		args = append(args, filter.CategoryID)
		where += fmt.Sprintf(` AND %s = $%d`, schema.QuizQuiz.CategoryID, len(args))
	}
	if filter.MaxLevel > 0 {
		args = append(args, filter.MaxLevel)
		where += fmt.Sprintf(` AND %s <= $%d`, schema.QuizQuiz.Level, len(args))
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, schema.QuizQuiz.Table, where)

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_quizzes")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s FROM %s %s
		ORDER BY %s ASC, %s DESC
		LIMIT $%d OFFSET $%d`,
		quizColumns, schema.QuizQuiz.Table, where,
		schema.QuizQuiz.Level, schema.QuizQuiz.CreatedAt,
		len(args)+1, len(args)+2)

	args = append(args, params.Limit, params.Offset())

	rows, err := repository.db.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_quizzes")
	}
	defer rows.Close()

	quizzes := make([]*Quiz, 0)
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_quiz")
		}
		quizzes = append(quizzes, q)
	}

	return quizzes, total, nil
}

func (repository *PostgresQuizRepository) GetByID(context context.Context, id string) (*Quiz, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		quizColumns, schema.QuizQuiz.Table, schema.QuizQuiz.ID)

	q, err := scanQuiz(repository.db.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Quiz")
		}
		return nil, dberr.Wrap(err, "get_quiz_by_id")
	}

	return q, nil
}

func (repository *PostgresQuizRepository) GetBySlug(context context.Context, quizSlug string) (*Quiz, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		quizColumns, schema.QuizQuiz.Table, schema.QuizQuiz.Slug)

	q, err := scanQuiz(repository.db.QueryRow(context, query, quizSlug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Quiz")
		}
		return nil, dberr.Wrap(err, "get_quiz_by_slug")
	}

	return q, nil
}

func (repository *PostgresQuizRepository) Create(context context.Context, quiz *Quiz) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`,
		schema.QuizQuiz.Table,
		schema.QuizQuiz.ID, schema.QuizQuiz.CategoryID, schema.QuizQuiz.Title,
		schema.QuizQuiz.Slug, schema.QuizQuiz.Level, schema.QuizQuiz.QuestionCount,
		schema.QuizQuiz.TimeLimitSeconds, schema.QuizQuiz.IsActive,
		schema.QuizQuiz.CreatedAt, schema.QuizQuiz.UpdatedAt)

	now := time.Now()
	quiz.CreatedAt = now
	quiz.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		quiz.ID, quiz.CategoryID, quiz.Title, quiz.Slug, quiz.Level,
		quiz.QuestionCount, quiz.TimeLimitSeconds, quiz.IsActive, now)
	if err != nil {
		return dberr.Wrap(err, "create_quiz")
	}

	return nil
}

func (repository *PostgresQuizRepository) Update(context context.Context, quiz *Quiz) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9
		WHERE %s = $1`,
		schema.QuizQuiz.Table,
		schema.QuizQuiz.CategoryID, schema.QuizQuiz.Title, schema.QuizQuiz.Slug,
		schema.QuizQuiz.Level, schema.QuizQuiz.QuestionCount,
		schema.QuizQuiz.TimeLimitSeconds, schema.QuizQuiz.IsActive,
		schema.QuizQuiz.UpdatedAt,
		schema.QuizQuiz.ID)

	quiz.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(context, query,
		quiz.ID, quiz.CategoryID, quiz.Title, quiz.Slug, quiz.Level,
		quiz.QuestionCount, quiz.TimeLimitSeconds, quiz.IsActive, quiz.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_quiz")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Quiz")
	}

	return nil
}

func (repository *PostgresQuizRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.QuizQuiz.Table, schema.QuizQuiz.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_quiz")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Quiz")
	}

	return nil
}

type PostgresAttemptRepository struct {
	db *pgxpool.Pool
}

func NewPostgresAttemptRepository(db *pgxpool.Pool) *PostgresAttemptRepository {
	return &PostgresAttemptRepository{db: db}
}

// attemptColumns is the canonical SELECT list for quiz.attempt. QuestionIDs
// is a jsonb column preserving draw order; pgx scans it into []string.
var attemptColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
	schema.QuizAttempt.ID, schema.QuizAttempt.QuizID, schema.QuizAttempt.StudentID,
	schema.QuizAttempt.Status, schema.QuizAttempt.Score, schema.QuizAttempt.TotalQuestions,
	schema.QuizAttempt.QuestionIDs, schema.QuizAttempt.StartedAt,
	schema.QuizAttempt.Deadline, schema.QuizAttempt.CompletedAt)

func scanAttempt(row pgx.Row) (*Attempt, error) {
	attempt := &Attempt{}
	err := row.Scan(
		&attempt.ID, &attempt.QuizID, &attempt.StudentID, &attempt.Status,
		&attempt.Score, &attempt.TotalQuestions, &attempt.QuestionIDs,
		&attempt.StartedAt, &attempt.Deadline, &attempt.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return attempt, nil
}

func (repository *PostgresAttemptRepository) Create(context context.Context, attempt *Attempt) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		schema.QuizAttempt.Table,
		schema.QuizAttempt.ID, schema.QuizAttempt.QuizID, schema.QuizAttempt.StudentID,
		schema.QuizAttempt.Status, schema.QuizAttempt.Score, schema.QuizAttempt.TotalQuestions,
		schema.QuizAttempt.QuestionIDs, schema.QuizAttempt.StartedAt, schema.QuizAttempt.Deadline)

	_, err := repository.db.Exec(context, query,
		attempt.ID, attempt.QuizID, attempt.StudentID, attempt.Status,
		attempt.Score, attempt.TotalQuestions, attempt.QuestionIDs,
		attempt.StartedAt, attempt.Deadline)
	if err != nil {
		return dberr.Wrap(err, "create_attempt")
	}

	return nil
}

func (repository *PostgresAttemptRepository) GetByID(context context.Context, id string) (*Attempt, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		attemptColumns, schema.QuizAttempt.Table, schema.QuizAttempt.ID)

	attempt, err := scanAttempt(repository.db.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Attempt")
		}
		return nil, dberr.Wrap(err, "get_attempt_by_id")
	}

	return attempt, nil
}

func (repository *PostgresAttemptRepository) FindInProgress(context context.Context, studentID, quizID string) (*Attempt, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s = $2 AND %s = $3
		ORDER BY %s DESC
		LIMIT 1`,
		attemptColumns, schema.QuizAttempt.Table,
		schema.QuizAttempt.StudentID, schema.QuizAttempt.QuizID, schema.QuizAttempt.Status,
		schema.QuizAttempt.StartedAt)

	attempt, err := scanAttempt(repository.db.QueryRow(context, query, studentID, quizID, StatusInProgress))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Attempt")
		}
		return nil, dberr.Wrap(err, "find_in_progress_attempt")
	}

	return attempt, nil
}

func (repository *PostgresAttemptRepository) UpdateStatus(context context.Context, attempt *Attempt) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4
		WHERE %s = $1`,
		schema.QuizAttempt.Table,
		schema.QuizAttempt.Status, schema.QuizAttempt.Score, schema.QuizAttempt.CompletedAt,
		schema.QuizAttempt.ID)

	tag, err := repository.db.Exec(context, query,
		attempt.ID, attempt.Status, attempt.Score, attempt.CompletedAt)
	if err != nil {
		return dberr.Wrap(err, "update_attempt_status")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Attempt")
	}

	return nil
}

func (repository *PostgresAttemptRepository) SaveAnswer(context context.Context, answer *Answer) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (%s, %s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		schema.QuizAttemptAnswer.Table,
		schema.QuizAttemptAnswer.ID, schema.QuizAttemptAnswer.AttemptID,
		schema.QuizAttemptAnswer.QuestionID, schema.QuizAttemptAnswer.SelectedIndex,
		schema.QuizAttemptAnswer.IsCorrect, schema.QuizAttemptAnswer.AnsweredAt,
		schema.QuizAttemptAnswer.AttemptID, schema.QuizAttemptAnswer.QuestionID,
		schema.QuizAttemptAnswer.SelectedIndex, schema.QuizAttemptAnswer.SelectedIndex,
		schema.QuizAttemptAnswer.IsCorrect, schema.QuizAttemptAnswer.IsCorrect,
		schema.QuizAttemptAnswer.AnsweredAt, schema.QuizAttemptAnswer.AnsweredAt)

	_, err := repository.db.Exec(context, query,
		answer.ID, answer.AttemptID, answer.QuestionID, answer.SelectedIndex,
		answer.IsCorrect, answer.AnsweredAt)
	if err != nil {
		return dberr.Wrap(err, "save_attempt_answer")
	}

	return nil
}

func (repository *PostgresAttemptRepository) ListAnswers(context context.Context, attemptID string) ([]*Answer, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s FROM %s
		WHERE %s = $1
		ORDER BY %s ASC`,
		schema.QuizAttemptAnswer.ID, schema.QuizAttemptAnswer.AttemptID,
		schema.QuizAttemptAnswer.QuestionID, schema.QuizAttemptAnswer.SelectedIndex,
		schema.QuizAttemptAnswer.IsCorrect, schema.QuizAttemptAnswer.AnsweredAt,
		schema.QuizAttemptAnswer.Table,
		schema.QuizAttemptAnswer.AttemptID,
		schema.QuizAttemptAnswer.AnsweredAt)

	rows, err := repository.db.Query(context, query, attemptID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_attempt_answers")
	}
	defer rows.Close()

	answers := make([]*Answer, 0)
	for rows.Next() {
		answer := &Answer{}
		err := rows.Scan(
			&answer.ID, &answer.AttemptID, &answer.QuestionID,
			&answer.SelectedIndex, &answer.IsCorrect, &answer.AnsweredAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_attempt_answer")
		}
		answers = append(answers, answer)
	}

	return answers, nil
}

func (repository *PostgresAttemptRepository) ListByStudent(context context.Context, studentID string, params pagination.Params) ([]*Attempt, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.QuizAttempt.Table, schema.QuizAttempt.StudentID)

	var total int
	if err := repository.db.QueryRow(context, countQuery, studentID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_student_attempts")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3`,
		attemptColumns, schema.QuizAttempt.Table,
		schema.QuizAttempt.StudentID,
		schema.QuizAttempt.StartedAt)

	rows, err := repository.db.Query(context, listQuery, studentID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_student_attempts")
	}
	defer rows.Close()

	attempts := make([]*Attempt, 0)
	for rows.Next() {
		attempt, err := scanAttempt(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_attempt")
		}
		attempts = append(attempts, attempt)
	}

	return attempts, total, nil
}
