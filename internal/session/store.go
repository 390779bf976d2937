// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

/*
Package session implements the client-protocol session layer: token storage,
signature-less claim decoding, and the session evaluator the route guards
consume.

# Architecture

  - TokenStore: a thin keyring accessor over the persisted token slot. No
    validation lives here.
  - Decoder: parses a token's payload without verifying its signature — the
    issuing boundary (internal/platform/sec) owns cryptographic trust.
  - Evaluator: total, side-effect-free predicates (is there a token, is it
    expired, what role does it claim) recomputed on every call, never cached.

Malformed tokens degrade to negative answers; nothing in this package panics
or lets a decode error escape to callers of the evaluator.
*/
package session

import (
	"strings"
	"sync"

	"github.com/subgquiz/subg-api/internal/platform/constants"
)

// sweepMarkers are the case-insensitive substrings matched by [TokenStore]
// Remove. The sweep is deliberately broad so logout cannot leave stray
// credentials behind even if other code introduced ad hoc keys.
var sweepMarkers = []string{"token", "auth", "user", "session"}

// TokenStore is the persistence contract for the bearer-token slot.
//
// Implementations must be storage-only: no validation, and Get must degrade
// to "no token" instead of failing when the backing store is unreachable.
type TokenStore interface {
	// Get returns the persisted token, or ok=false if none exists.
	Get() (token string, ok bool)

	// Set persists the token verbatim.
	Set(token string)

	// Remove deletes the token slot and every sibling key whose name
	// contains, case-insensitively, one of: token, auth, user, session.
	Remove()
}

// matchesSweep reports whether a key name falls under the logout sweep.
func matchesSweep(key string) bool {
	lower := strings.ToLower(key)
	for _, marker := range sweepMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// # In-Memory Keyring

// MemoryKeyring is a map-backed keyring holding the token slot and any
// sibling client-state keys. It is the per-client store used by guard
// evaluations and tests.
type MemoryKeyring struct {
	mu   sync.RWMutex
	keys map[string]string
}

// NewMemoryKeyring creates an empty keyring.
func NewMemoryKeyring() *MemoryKeyring {
	return &MemoryKeyring{keys: make(map[string]string)}
}

// Get returns the token slot value.
func (keyring *MemoryKeyring) Get() (string, bool) {
	return keyring.GetKey(constants.TokenSlotName)
}

// Set persists the token verbatim into the token slot.
func (keyring *MemoryKeyring) Set(token string) {
	keyring.SetKey(constants.TokenSlotName, token)
}

// Remove sweeps the token slot plus all credential-looking sibling keys.
func (keyring *MemoryKeyring) Remove() {
	keyring.mu.Lock()
	defer keyring.mu.Unlock()

	for key := range keyring.keys {
		if matchesSweep(key) {
			delete(keyring.keys, key)
		}
	}
}

// GetKey reads an arbitrary named key from the keyring.
func (keyring *MemoryKeyring) GetKey(name string) (string, bool) {
	keyring.mu.RLock()
	defer keyring.mu.RUnlock()

	value, ok := keyring.keys[name]
	return value, ok
}

// SetKey writes an arbitrary named key into the keyring.
func (keyring *MemoryKeyring) SetKey(name, value string) {
	keyring.mu.Lock()
	defer keyring.mu.Unlock()

	keyring.keys[name] = value
}

// DeleteKey removes a single named key without triggering the sweep.
func (keyring *MemoryKeyring) DeleteKey(name string) {
	keyring.mu.Lock()
	defer keyring.mu.Unlock()

	delete(keyring.keys, name)
}
