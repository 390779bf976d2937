// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/subgquiz/subg-api/internal/platform/constants"
)

// opTimeout bounds every Redis round trip made by the keyring. The
// [TokenStore] contract has no error channel, so a slow or dead Redis must
// degrade quickly to "no token" rather than hang a guard evaluation.
const opTimeout = 2 * time.Second

// RedisKeyring is a Redis-backed keyring scoped to one client. Keys live
// under a per-client namespace so the logout sweep of one client can never
// touch another's credentials.
type RedisKeyring struct {
	client   *redis.Client
	clientID string
	logger   *slog.Logger
}

// NewRedisKeyring creates a keyring for the given client identity.
func NewRedisKeyring(client *redis.Client, clientID string, logger *slog.Logger) *RedisKeyring {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisKeyring{
		client:   client,
		clientID: clientID,
		logger:   logger,
	}
}

// namespaced builds the physical Redis key for a logical slot name.
func (keyring *RedisKeyring) namespaced(name string) string {
	return constants.RedisPrefixClientSlot + keyring.clientID + ":" + name
}

// Get returns the token slot value. Connectivity failures degrade to
// "no token" and are logged, never surfaced.
func (keyring *RedisKeyring) Get() (string, bool) {
	return keyring.GetKey(constants.TokenSlotName)
}

// Set persists the token verbatim into the token slot.
func (keyring *RedisKeyring) Set(token string) {
	keyring.SetKey(constants.TokenSlotName, token)
}

// Remove scans the client's namespace and deletes every key whose logical
// name falls under the logout sweep.
func (keyring *RedisKeyring) Remove() {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	prefix := constants.RedisPrefixClientSlot + keyring.clientID + ":"

	iter := keyring.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	var doomed []string
	for iter.Next(ctx) {
		physical := iter.Val()
		logical := physical[len(prefix):]
		if matchesSweep(logical) {
			doomed = append(doomed, physical)
		}
	}
	if err := iter.Err(); err != nil {
		keyring.logger.Error("session_keyring_sweep_scan_failed", slog.Any("error", err))
		return
	}

	if len(doomed) == 0 {
		return
	}

	if err := keyring.client.Del(ctx, doomed...).Err(); err != nil {
		keyring.logger.Error("session_keyring_sweep_delete_failed", slog.Any("error", err))
	}
}

// GetKey reads an arbitrary named key from the client's namespace.
func (keyring *RedisKeyring) GetKey(name string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	value, err := keyring.client.Get(ctx, keyring.namespaced(name)).Result()
	if err != nil {
		if err != redis.Nil {
			keyring.logger.Error("session_keyring_get_failed",
				slog.String("key", name),
				slog.Any("error", err),
			)
		}
		return "", false
	}

	return value, true
}

// SetKey writes an arbitrary named key into the client's namespace.
func (keyring *RedisKeyring) SetKey(name, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := keyring.client.Set(ctx, keyring.namespaced(name), value, 0).Err(); err != nil {
		keyring.logger.Error("session_keyring_set_failed",
			slog.String("key", name),
			slog.Any("error", err),
		)
	}
}
