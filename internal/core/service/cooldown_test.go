package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestCooldown(duration time.Duration) (*Cooldown, *time.Time) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	c := NewCooldown(duration)
	c.now = func() time.Time { return now }

	return c, &now
}

func TestPermitFirstUse(t *testing.T) {
	c, _ := newTestCooldown(100 * time.Second)

	assert.True(t, c.Permit("bob", false))
}

func TestPermitWithinCooldown(t *testing.T) {
	c, now := newTestCooldown(100 * time.Second)

	assert.True(t, c.Permit("bob", false))

	*now = now.Add(10 * time.Second)
	assert.False(t, c.Permit("bob", false))
}

func TestPermitAfterCooldown(t *testing.T) {
	c, now := newTestCooldown(100 * time.Second)

	assert.True(t, c.Permit("bob", false))

	*now = now.Add(100 * time.Second)
	assert.True(t, c.Permit("bob", false))
}

func TestPermitBypass(t *testing.T) {
	c, now := newTestCooldown(100 * time.Second)

	assert.True(t, c.Permit("bob", false))

	*now = now.Add(10 * time.Second)
	assert.True(t, c.Permit("bob", true))

	// bypass still records the use
	*now = now.Add(99 * time.Second)
	assert.False(t, c.Permit("bob", false))
}

func TestPermitIdentitiesAreIndependent(t *testing.T) {
	c, _ := newTestCooldown(100 * time.Second)

	assert.True(t, c.Permit("bob", false))
	assert.True(t, c.Permit("alice", false))
	assert.False(t, c.Permit("bob", false))
}

func TestPermitGlobalIdentity(t *testing.T) {
	c, now := newTestCooldown(100 * time.Second)

	assert.True(t, c.Permit(GlobalIdentity, false))

	*now = now.Add(10 * time.Second)
	assert.False(t, c.Permit(GlobalIdentity, false))
}
