package core

import (
	"context"
	"log"
	"math"
	"sync"
	"time"
)

// Cooldowns tracks per-user cooldown expiry for one command. A zero duration
// disables tracking entirely. Safe for concurrent use.
type Cooldowns struct {
	d   time.Duration
	now func() time.Time

	mu    sync.Mutex
	until map[string]time.Time
}

func NewCooldowns(d time.Duration) *Cooldowns {
	return &Cooldowns{
		d:     d,
		now:   time.Now,
		until: make(map[string]time.Time),
	}
}

// Duration returns the configured cooldown window.
func (c *Cooldowns) Duration() time.Duration { return c.d }

// IsOnCooldown reports whether the user's window is still open.
func (c *Cooldowns) IsOnCooldown(userID string) bool {
	if c.d == 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	until, ok := c.until[userID]
	return ok && until.After(c.now())
}

// Set starts a new cooldown window for the user. No-op when the command has
// no cooldown configured.
func (c *Cooldowns) Set(userID string) {
	if c.d == 0 {
		return
	}
	c.mu.Lock()
	c.until[userID] = c.now().Add(c.d)
	c.mu.Unlock()
}

// RemainingSeconds returns the whole seconds left on the user's window,
// rounded up so the user is never told zero while still blocked.
func (c *Cooldowns) RemainingSeconds(userID string) int {
	if c.d == 0 {
		return 0
	}
	c.mu.Lock()
	until, ok := c.until[userID]
	c.mu.Unlock()
	if !ok {
		return 0
	}
	left := until.Sub(c.now())
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Seconds()))
}

// SweepExpired removes elapsed entries. The dispatcher already ignores
// expired entries; sweeping bounds memory on busy commands.
func (c *Cooldowns) SweepExpired() int {
	now := c.now()
	removed := 0
	c.mu.Lock()
	for userID, until := range c.until {
		if !until.After(now) {
			delete(c.until, userID)
			removed++
		}
	}
	c.mu.Unlock()
	return removed
}

// RunCooldownSweeper sweeps every command's tracker on a fixed interval
// until ctx is done. Call from main.
func RunCooldownSweeper(ctx context.Context, reg *Registry, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := 0
			for _, cmd := range reg.All() {
				removed += cmd.Cooldowns().SweepExpired()
			}
			if removed > 0 {
				log.Printf("[INFO] Cooldown sweep removed %d expired entries", removed)
			}
		}
	}
}
