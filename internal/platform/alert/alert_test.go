// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package alert_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subgquiz/subg-api/internal/platform/alert"
)

/*
TestChannel_SingleSlot verifies that a new error overwrites the previous one.
*/
func TestChannel_SingleSlot(t *testing.T) {
	channel := alert.NewChannel(nil)

	channel.Show("first error")
	channel.Show("second error", "with details")

	current := channel.Current()
	require.NotNil(t, current)
	assert.Equal(t, "second error", current.Message)
	assert.Equal(t, "with details", current.Details)
}

/*
TestChannel_Clear verifies explicit dismissal empties the slot.
*/
func TestChannel_Clear(t *testing.T) {
	channel := alert.NewChannel(nil)

	channel.Show("please log in")
	require.NotNil(t, channel.Current())

	channel.Clear()
	assert.Nil(t, channel.Current())
}

/*
TestChannel_Timestamp verifies the entry is stamped with the injected clock.
*/
func TestChannel_Timestamp(t *testing.T) {
	channel := alert.NewChannel(nil)
	frozen := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	channel.SetClock(func() time.Time { return frozen })

	channel.Show("session expired")

	current := channel.Current()
	require.NotNil(t, current)
	assert.Equal(t, frozen, current.Timestamp)
}

/*
TestChannel_Subscribe verifies reactive delivery and cancellation.
*/
func TestChannel_Subscribe(t *testing.T) {
	channel := alert.NewChannel(nil)

	entries, cancel := channel.Subscribe()
	defer cancel()

	channel.Show("access denied")

	select {
	case entry := <-entries:
		assert.Equal(t, "access denied", entry.Message)
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive the entry")
	}
}

/*
TestChannel_SlowSubscriber verifies a full subscriber buffer never blocks Show.
*/
func TestChannel_SlowSubscriber(t *testing.T) {
	channel := alert.NewChannel(nil)

	entries, cancel := channel.Subscribe()
	defer cancel()

	// Fill the buffered channel, then overwrite twice without draining.
	channel.Show("one")
	channel.Show("two")
	channel.Show("three")

	// The subscriber sees the first entry; the slot holds the last.
	entry := <-entries
	assert.Equal(t, "one", entry.Message)
	assert.Equal(t, "three", channel.Current().Message)
}
