//go:build !tinygo

package hal

import (
	"sync"
	"time"
)

type hostClock interface {
	Clock
	// advance is called once per runner tick.
	advance()
}

type realClock struct {
	start time.Time
}

func newRealClock() *realClock { return &realClock{start: time.Now()} }

func (c *realClock) Now() time.Duration { return time.Since(c.start) }
func (c *realClock) advance()           {}

// virtualClock moves by a fixed step per tick so unthrottled runs see the
// same elapsed time as paced ones.
type virtualClock struct {
	mu   sync.Mutex
	now  time.Duration
	step time.Duration
}

func newVirtualClock(step time.Duration) *virtualClock {
	return &virtualClock{step: step}
}

func (c *virtualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *virtualClock) advance() {
	c.mu.Lock()
	c.now += c.step
	c.mu.Unlock()
}
