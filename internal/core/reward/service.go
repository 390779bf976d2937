// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package reward

import (
	"context"
	"log/slog"

	"github.com/subgquiz/subg-api/internal/platform/apperr"
	"github.com/subgquiz/subg-api/pkg/pagination"
	"github.com/subgquiz/subg-api/pkg/uuid"
)

// Scoreboard is the ranked-read side of the points economy. Satisfied by
// [RedisLeaderboard].
type Scoreboard interface {
	Increment(ctx context.Context, studentID string, points int) error
	Top(ctx context.Context, limit int) ([]LeaderboardRow, error)
	Rank(ctx context.Context, studentID string) (LeaderboardRow, bool, error)
}

type Service struct {
	ledger     LedgerRepository
	scoreboard Scoreboard
	logger     *slog.Logger
}

func NewService(ledger LedgerRepository, scoreboard Scoreboard, logger *slog.Logger) *Service {
	return &Service{
		ledger:     ledger,
		scoreboard: scoreboard,
		logger:     logger,
	}
}

/*
Award credits points to a student for a completed attempt.

Description: The ledger row is the durable record; the leaderboard mirror is
best-effort. A Redis outage leaves the scoreboard stale but never loses
points, since the sorted set can be rebuilt from the ledger.

Parameters:
  - context: context.Context
  - studentID: string
  - attemptID: string
  - points: int
  - reason: string

Returns:
  - error: Validation or storage failures
*/
func (service *Service) Award(context context.Context, studentID, attemptID string, points int, reason string) error {
	if points <= 0 {
		return apperr.Unprocessable("Points must be positive")
	}

	entry := &Entry{
		ID:        uuid.New(),
		StudentID: studentID,
		AttemptID: attemptID,
		Points:    points,
		Reason:    reason,
	}

	if err := service.ledger.Insert(context, entry); err != nil {
		return err
	}

	if err := service.scoreboard.Increment(context, studentID, points); err != nil {
		service.logger.Error("reward_leaderboard_increment_failed",
			slog.String("student_id", studentID),
			slog.Any("error", err),
		)
	}

	service.logger.Info("reward_awarded",
		slog.String("student_id", studentID),
		slog.Int("points", points),
		slog.String("reason", reason),
	)

	return nil
}

// Leaderboard returns the top-ranked students.
func (service *Service) Leaderboard(context context.Context, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return service.scoreboard.Top(context, limit)
}

// Standing returns one student's balance and rank. The balance comes from
// the ledger, the rank from the scoreboard; a student absent from the
// scoreboard reports rank zero.
func (service *Service) Standing(context context.Context, studentID string) (LeaderboardRow, error) {
	total, err := service.ledger.TotalPoints(context, studentID)
	if err != nil {
		return LeaderboardRow{}, err
	}

	row, ok, err := service.scoreboard.Rank(context, studentID)
	if err != nil || !ok {
		return LeaderboardRow{StudentID: studentID, Points: total}, err
	}

	row.Points = total
	return row, nil
}

// History returns a student's ledger, newest first.
func (service *Service) History(context context.Context, studentID string, params pagination.Params) ([]*Entry, pagination.Meta, error) {
	entries, total, err := service.ledger.ListByStudent(context, studentID, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return entries, pagination.NewMeta(params.Page, params.Limit, total), nil
}
