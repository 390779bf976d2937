// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

/*
Package reward implements the points economy: an append-only ledger in
Postgres as the source of truth, mirrored into a Redis sorted set that
serves the leaderboard reads.
*/
package reward

import "time"

// Entry is one append-only ledger row. Points are always positive; the
// ledger never mutates or deletes.
type Entry struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	AttemptID string    `json:"attempt_id"`
	Points    int       `json:"points"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// LeaderboardRow is one ranked leaderboard position.
type LeaderboardRow struct {
	Rank      int    `json:"rank"`
	StudentID string `json:"student_id"`
	Points    int    `json:"points"`
}
