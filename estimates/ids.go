package estimates

import (
	"sync"
	"time"
)

// IDSource hands out identifiers for new sections and items.
type IDSource interface {
	NextID() int64
}

// ClockIDs derives ids from the millisecond clock. When two ids are requested
// within the same millisecond the second is bumped past the first, so the
// sequence is strictly increasing.
type ClockIDs struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewClockIDs returns a ClockIDs reading the given clock. A nil clock means
// time.Now.
func NewClockIDs(now func() time.Time) *ClockIDs {
	if now == nil {
		now = time.Now
	}
	return &ClockIDs{now: now}
}

func (c *ClockIDs) NextID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.now().UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id
	return id
}

// Observe moves the sequence past id. Used after loading a document so that
// fresh ids never collide with stored ones.
func (c *ClockIDs) Observe(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id > c.last {
		c.last = id
	}
}
