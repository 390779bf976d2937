// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package subscription

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/subgquiz/subg-api/internal/platform/constants"
)

const opTimeout = 2 * time.Second

// RedisProfileStore persists subscription profiles keyed by student ID.
// The auth service writes a student's profile at login and after every
// payment event; guard evaluations read it through [RedisProfileStore.For].
type RedisProfileStore struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisProfileStore creates a profile store over the shared Redis client.
func NewRedisProfileStore(client *redis.Client, logger *slog.Logger) *RedisProfileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisProfileStore{client: client, logger: logger}
}

func profileKey(studentID string) string {
	return constants.RedisPrefixProfile + studentID
}

// Save writes the profile blob. A ttl of zero persists without expiry.
func (store *RedisProfileStore) Save(ctx context.Context, studentID string, profile Profile, ttl time.Duration) error {
	return store.client.Set(ctx, profileKey(studentID), profile.Encode(), ttl).Err()
}

// Load reads the profile blob. A missing key or connectivity failure
// degrades to ok=false; failures other than a miss are logged.
func (store *RedisProfileStore) Load(ctx context.Context, studentID string) (Profile, bool) {
	blob, err := store.client.Get(ctx, profileKey(studentID)).Result()
	if err != nil {
		if err != redis.Nil {
			store.logger.Error("subscription_profile_load_failed",
				slog.String("student_id", studentID),
				slog.Any("error", err),
			)
		}
		return Profile{}, false
	}

	return DecodeProfile(blob), true
}

// Delete removes a student's profile slot, used on account deactivation.
func (store *RedisProfileStore) Delete(ctx context.Context, studentID string) error {
	return store.client.Del(ctx, profileKey(studentID)).Err()
}

// For returns a [ProfileSource] bound to one student, suitable for handing
// to an [Evaluator]. Each read performs a fresh fetch with its own timeout.
func (store *RedisProfileStore) For(studentID string) ProfileSource {
	return ProfileFunc(func() (Profile, bool) {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return store.Load(ctx, studentID)
	})
}
