// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

/*
Package alert implements the global error channel surfaced as the frontend
error banner.

It is a single-slot observable: a new error overwrites the previous one, and
the slot is emptied only by explicit dismissal or the next overwrite. Route
guards and API failures write into it; the banner subscribes reactively.

# Architecture

The channel is an explicit object created at the application root and injected
into its consumers — never a package-level ambient global. Subscribers receive
entries over non-blocking channels, so a slow consumer can never stall a guard
evaluation.
*/
package alert

import (
	"log/slog"
	"sync"
	"time"
)

// Entry is the current user-facing error: message, optional details, and the
// instant it was raised.
type Entry struct {
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Channel is the process-wide single-slot error holder.
//
// # Concurrency
//
// All methods are safe for concurrent use. The slot holds at most one entry;
// there is no queue.
type Channel struct {
	mu          sync.Mutex
	current     *Entry
	subscribers []chan Entry
	logger      *slog.Logger
	now         func() time.Time
}

// NewChannel creates an empty error channel that logs every raised error to
// the given structured logger.
func NewChannel(logger *slog.Logger) *Channel {
	if logger == nil {
		logger = slog.Default()
	}
	return &Channel{
		logger: logger,
		now:    time.Now,
	}
}

// Show overwrites the slot with a new error, stamps the current time, logs it,
// and notifies subscribers.
func (c *Channel) Show(message string, details ...string) {
	entry := Entry{
		Message:   message,
		Timestamp: c.clock()(),
	}
	if len(details) > 0 {
		entry.Details = details[0]
	}

	c.mu.Lock()
	c.current = &entry
	subscribers := append([]chan Entry{}, c.subscribers...)
	c.mu.Unlock()

	c.logger.Warn("user_facing_error",
		slog.String("message", entry.Message),
		slog.String("details", entry.Details),
	)

	// Non-blocking fan-out: a subscriber that isn't draining simply misses
	// the intermediate entry and reads the slot on its next turn.
	for _, subscriber := range subscribers {
		select {
		case subscriber <- entry:
		default:
		}
	}
}

// Clear empties the slot. Subscribers are not notified; the banner clears
// itself on dismissal.
func (c *Channel) Clear() {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
}

// Current returns a copy of the entry currently in the slot, or nil if empty.
func (c *Channel) Current() *Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return nil
	}
	entry := *c.current
	return &entry
}

// Subscribe registers a new listener and returns its receive channel together
// with a cancel function that must be called when the listener goes away.
func (c *Channel) Subscribe() (<-chan Entry, func()) {
	subscriber := make(chan Entry, 1)

	c.mu.Lock()
	c.subscribers = append(c.subscribers, subscriber)
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, existing := range c.subscribers {
			if existing == subscriber {
				c.subscribers = append(c.subscribers[:i], c.subscribers[i+1:]...)
				break
			}
		}
	}

	return subscriber, cancel
}

// SetClock overrides the timestamp source. Test hook.
func (c *Channel) SetClock(now func() time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

func (c *Channel) clock() func() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.now == nil {
		return time.Now
	}
	return c.now
}
