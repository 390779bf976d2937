// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuers, token slot names, and cookie configuration.
  - Navigation: Well-known redirect destinations used by the route guards.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "subg-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "subgquiz.com"

	// TokenSlotName is the canonical key under which the bearer token is persisted.
	TokenSlotName = "subg_token"

	// ProfileSlotName is the key under which the denormalized user profile blob lives.
	ProfileSlotName = "subg_user_profile"

	// AccessTokenCookieName is the cookie fallback for browser navigation flows.
	AccessTokenCookieName = "subg_token"

	// RefreshTokenCookieName is the name of the cookie that stores the refresh token.
	RefreshTokenCookieName = "refresh_token"

	// RefreshTokenCookiePath is the scoped path for the refresh token cookie.
	RefreshTokenCookiePath = "/api/v1/auth"
)

// # Navigation

// Well-known destinations the route guards redirect to. Authentication
// failures always land on PathLogin; role and privilege failures land on
// the generic authenticated home.
const (
	PathLogin = "/login"
	PathHome  = "/home"
)

// # Header Names

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
)

// # Quiz Rules

const (
	// MinContentLevel and MaxContentLevel bound the difficulty ladder.
	MinContentLevel = 1
	MaxContentLevel = 10

	// FreeLevelCeiling is the highest level reachable without an active subscription.
	FreeLevelCeiling = 3

	// DefaultQuestionCount is the number of questions drawn for an attempt
	// when the quiz does not override it.
	DefaultQuestionCount = 10

	// DefaultQuizTimeLimit is the countdown budget for an attempt when the
	// quiz does not override it.
	DefaultQuizTimeLimit = 10 * time.Minute
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixSession    = "auth:session:"
	RedisPrefixClientSlot = "client:slot:"
	RedisPrefixProfile    = "subscription:profile:"
	RedisKeyLeaderboard   = "reward:leaderboard"
)
