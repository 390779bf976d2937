// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subgquiz/subg-api/internal/platform/constants"
	"github.com/subgquiz/subg-api/internal/session"
)

func TestMemoryKeyring_TokenSlot(t *testing.T) {
	keyring := session.NewMemoryKeyring()

	_, ok := keyring.Get()
	assert.False(t, ok)

	keyring.Set("abc.def.ghi")

	token, ok := keyring.Get()
	require.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)
}

/*
TestMemoryKeyring_RemoveSweeps verifies the broad logout sweep: every key
whose name contains token, auth, user, or session (case-insensitively) is
deleted, while unrelated client state survives.
*/
func TestMemoryKeyring_RemoveSweeps(t *testing.T) {
	keyring := session.NewMemoryKeyring()

	keyring.Set("the-token")
	keyring.SetKey(constants.ProfileSlotName, `{"subscriptionPlan":"BASIC"}`)
	keyring.SetKey("myAuthBackup", "stale-credential")
	keyring.SetKey("USER_cache", "cached")
	keyring.SetKey("Session-draft", "draft")
	keyring.SetKey("theme_preference", "dark")
	keyring.SetKey("locale", "en")

	keyring.Remove()

	_, ok := keyring.Get()
	assert.False(t, ok, "token slot must be swept")

	for _, swept := range []string{constants.ProfileSlotName, "myAuthBackup", "USER_cache", "Session-draft"} {
		_, ok := keyring.GetKey(swept)
		assert.False(t, ok, "key %q must be swept", swept)
	}

	for _, kept := range []string{"theme_preference", "locale"} {
		value, ok := keyring.GetKey(kept)
		assert.True(t, ok, "key %q must survive the sweep", kept)
		assert.NotEmpty(t, value)
	}
}

func TestMemoryKeyring_RemoveIdempotent(t *testing.T) {
	keyring := session.NewMemoryKeyring()

	keyring.Remove()
	keyring.Remove()

	_, ok := keyring.Get()
	assert.False(t, ok)
}

func TestRequestTokenStore_BearerHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/quizzes", nil)
	r.Header.Set("Authorization", "Bearer header-token")
	r.AddCookie(&http.Cookie{Name: constants.AccessTokenCookieName, Value: "cookie-token"})

	store := session.FromRequest(r)

	token, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, "header-token", token, "header wins over cookie")
}

func TestRequestTokenStore_CookieFallback(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/quizzes", nil)
	r.AddCookie(&http.Cookie{Name: constants.AccessTokenCookieName, Value: "cookie-token"})

	store := session.FromRequest(r)

	token, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, "cookie-token", token)
}

func TestRequestTokenStore_NoCredential(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/quizzes", nil)

	store := session.FromRequest(r)

	_, ok := store.Get()
	assert.False(t, ok)
	assert.False(t, store.Cleared())
}

func TestRequestTokenStore_RemoveMarksCleared(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/quizzes", nil)
	r.Header.Set("Authorization", "Bearer some-token")

	store := session.FromRequest(r)
	store.Remove()

	_, ok := store.Get()
	assert.False(t, ok)
	assert.True(t, store.Cleared())
}
