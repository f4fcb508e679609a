package service

import (
	"sync"
	"time"
)

// GlobalIdentity is the shared cooldown key for commands that are rate
// limited for the whole chat rather than per user.
const GlobalIdentity = ""

// Cooldown tracks the last permitted use per identity. One instance exists
// per rate-limited command for the lifetime of the process; state is not
// persisted across restarts.
type Cooldown struct {
	duration time.Duration
	lastUsed map[string]time.Time
	mutex    sync.Mutex
	now      func() time.Time
}

func NewCooldown(duration time.Duration) *Cooldown {
	return &Cooldown{
		duration: duration,
		lastUsed: make(map[string]time.Time),
		now:      time.Now,
	}
}

// Permit reports whether the identity may run now and records the use.
// Bypass always permits and still records, keeping the per-identity
// timestamp monotonically non-decreasing. Check and set happen under one
// lock so near-simultaneous calls cannot both succeed.
func (c *Cooldown) Permit(identity string, bypass bool) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	if !bypass && now.Sub(c.lastUsed[identity]) < c.duration {
		return false
	}

	c.lastUsed[identity] = now

	return true
}
