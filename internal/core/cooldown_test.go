package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCooldownZeroDurationNeverBlocks(t *testing.T) {
	c := NewCooldowns(0)
	c.Set("user")
	assert.False(t, c.IsOnCooldown("user"))
	assert.Equal(t, 0, c.RemainingSeconds("user"))
}

func TestCooldownBlocksUntilExpiry(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewCooldowns(5 * time.Second)
	c.now = func() time.Time { return current }

	c.Set("user")
	assert.True(t, c.IsOnCooldown("user"))
	assert.False(t, c.IsOnCooldown("other"))

	current = current.Add(5 * time.Second)
	assert.False(t, c.IsOnCooldown("user"))
}

func TestCooldownRemainingSecondsRoundsUp(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewCooldowns(5 * time.Second)
	c.now = func() time.Time { return current }

	c.Set("user")
	current = current.Add(2500 * time.Millisecond)
	assert.Equal(t, 3, c.RemainingSeconds("user"))

	current = current.Add(3 * time.Second)
	assert.Equal(t, 0, c.RemainingSeconds("user"))
}

func TestCooldownSweepRemovesOnlyExpired(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewCooldowns(10 * time.Second)
	c.now = func() time.Time { return current }

	c.Set("stale")
	current = current.Add(11 * time.Second)
	c.Set("fresh")

	removed := c.SweepExpired()
	assert.Equal(t, 1, removed)
	assert.True(t, c.IsOnCooldown("fresh"))

	c.mu.Lock()
	_, staleKept := c.until["stale"]
	c.mu.Unlock()
	assert.False(t, staleKept)
}
