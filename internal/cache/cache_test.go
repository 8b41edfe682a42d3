package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", 42)

	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	c := NewWithClock(5*time.Minute, func() time.Time { return now })

	c.Set("k", "v")
	_, ok := c.Get("k")
	require.True(t, ok)

	now = now.Add(5*time.Minute + time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)

	// Re-setting refreshes the TTL.
	c.Set("k", "v2")
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v2", v)
}

func TestDeleteAndReset(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Reset()
	_, ok = c.Get("b")
	assert.False(t, ok)
}
