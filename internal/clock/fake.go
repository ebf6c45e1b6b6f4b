package clock

import "time"

// FakeClock is a manually advanced Clock for tests. The location of the
// seeded time is preserved because date fallbacks resolve to the local
// calendar day.
type FakeClock struct {
	now time.Time
}

func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t}
}

func (c *FakeClock) Now() time.Time {
	return c.now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
