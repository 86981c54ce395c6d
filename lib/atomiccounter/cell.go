package atomiccounter

import (
	"sync"

	"go.uber.org/atomic"
)

// cell is a single integer slot with atomic operations. increment and
// decrement report both the value before and after the change, taken in the
// same indivisible step.
type cell interface {
	load() ValueType
	store(v ValueType)
	increment() (prev, next ValueType)
	decrement() (prev, next ValueType)
}

var (
	_ cell = (*nativeCell)(nil)
	_ cell = (*lockedCell)(nil)
)

// nativeCell relies on the hardware's atomic add, load and store.
type nativeCell struct {
	v atomic.Int32
}

func (c *nativeCell) load() ValueType {
	return c.v.Load()
}

func (c *nativeCell) store(v ValueType) {
	c.v.Store(v)
}

// The previous value is derived from the result of the atomic add rather
// than read separately, which would race with other writers.
func (c *nativeCell) increment() (ValueType, ValueType) {
	next := c.v.Inc()
	return next - 1, next
}

func (c *nativeCell) decrement() (ValueType, ValueType) {
	next := c.v.Dec()
	return next + 1, next
}

// lockedCell guards a plain integer with a mutex. Every access, reads
// included, holds mu for exactly one operation. mu is never exposed and makes
// no fairness guarantee to waiting goroutines.
type lockedCell struct {
	mu sync.Mutex
	v  ValueType
}

func (c *lockedCell) load() ValueType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

func (c *lockedCell) store(v ValueType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.v = v
}

func (c *lockedCell) increment() (ValueType, ValueType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.v
	c.v++
	return prev, c.v
}

func (c *lockedCell) decrement() (ValueType, ValueType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.v
	c.v--
	return prev, c.v
}
