// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package reward

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/subgquiz/subg-api/internal/platform/constants"
)

// RedisLeaderboard mirrors ledger totals into a sorted set so that ranked
// reads never touch Postgres.
type RedisLeaderboard struct {
	client *redis.Client
}

func NewRedisLeaderboard(client *redis.Client) *RedisLeaderboard {
	return &RedisLeaderboard{client: client}
}

// Increment adds points to a student's leaderboard score.
func (leaderboard *RedisLeaderboard) Increment(ctx context.Context, studentID string, points int) error {
	return leaderboard.client.ZIncrBy(ctx, constants.RedisKeyLeaderboard, float64(points), studentID).Err()
}

// Set overwrites a student's score, used when rebuilding from the ledger.
func (leaderboard *RedisLeaderboard) Set(ctx context.Context, studentID string, points int) error {
	return leaderboard.client.ZAdd(ctx, constants.RedisKeyLeaderboard, redis.Z{
		Score:  float64(points),
		Member: studentID,
	}).Err()
}

// Top returns the highest-scoring students, best first.
func (leaderboard *RedisLeaderboard) Top(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	entries, err := leaderboard.client.ZRevRangeWithScores(ctx, constants.RedisKeyLeaderboard, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}

	rows := make([]LeaderboardRow, 0, len(entries))
	for i, entry := range entries {
		member, _ := entry.Member.(string)
		rows = append(rows, LeaderboardRow{
			Rank:      i + 1,
			StudentID: member,
			Points:    int(entry.Score),
		})
	}

	return rows, nil
}

// Rank returns a student's 1-based rank and score. ok=false when the student
// has no leaderboard presence yet.
func (leaderboard *RedisLeaderboard) Rank(ctx context.Context, studentID string) (LeaderboardRow, bool, error) {
	rank, err := leaderboard.client.ZRevRank(ctx, constants.RedisKeyLeaderboard, studentID).Result()
	if err != nil {
		if err == redis.Nil {
			return LeaderboardRow{}, false, nil
		}
		return LeaderboardRow{}, false, err
	}

	score, err := leaderboard.client.ZScore(ctx, constants.RedisKeyLeaderboard, studentID).Result()
	if err != nil {
		return LeaderboardRow{}, false, err
	}

	return LeaderboardRow{
		Rank:      int(rank) + 1,
		StudentID: studentID,
		Points:    int(score),
	}, true, nil
}
