// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package session

import (
	"net/http"
	"strings"

	"github.com/subgquiz/subg-api/internal/platform/constants"
)

// RequestTokenStore is a per-request [TokenStore] view over an incoming HTTP
// request. It reads the bearer token once at construction and records whether
// a guard asked for it to be cleared, so the HTTP adapter can expire the
// cookie on the way out.
type RequestTokenStore struct {
	token   string
	present bool
	cleared bool
}

// FromRequest builds a token store for one request. The Authorization header
// wins over the cookie when both are present.
func FromRequest(r *http.Request) *RequestTokenStore {
	store := &RequestTokenStore{}

	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token != "" {
			store.token = token
			store.present = true
			return store
		}
	}

	cookie, err := r.Cookie(constants.AccessTokenCookieName)
	if err == nil && cookie.Value != "" {
		store.token = cookie.Value
		store.present = true
	}

	return store
}

// Get returns the request's token, unless a guard already cleared it.
func (store *RequestTokenStore) Get() (string, bool) {
	if store.cleared || !store.present {
		return "", false
	}
	return store.token, true
}

// Set replaces the token for the remainder of the request.
func (store *RequestTokenStore) Set(token string) {
	store.token = token
	store.present = token != ""
	store.cleared = false
}

// Remove drops the token and marks the request for cookie expiry. The sweep
// is trivial here: a request carries exactly one credential slot.
func (store *RequestTokenStore) Remove() {
	store.token = ""
	store.present = false
	store.cleared = true
}

// Cleared reports whether Remove was called during this request.
func (store *RequestTokenStore) Cleared() bool {
	return store.cleared
}
