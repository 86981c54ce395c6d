/*
Package atomiccounter implements a simple threadsafe integer counter, meant
for reference counting and similar bookkeeping shared between goroutines.

Every operation on a Counter is atomic with respect to every other operation
on the same Counter; callers never need their own lock. How that atomicity is
achieved is fixed when the package is compiled:

  - by default the counter is a machine word updated with hardware atomic
    instructions, and no lock exists;
  - built with -tags atomiccounter_locked, the word is guarded by a private
    sync.Mutex that every operation, reads included, must hold.

The zero value of Counter is ready to use and holds 0, so a Counter can be
embedded directly in another struct. A Counter must not be copied after first
use; use Clone to take a snapshot instead.
*/
package atomiccounter

import "strconv"

// ValueType is the counter's underlying integer type. Arithmetic wraps around
// on overflow like any other int32.
type ValueType = int32

// Counter is a threadsafe integer counter.
type Counter struct {
	cell defaultCell
}

// New returns a counter initialized to zero.
func New() *Counter {
	return &Counter{}
}

// NewWithValue returns a counter initialized to v.
func NewWithValue(v ValueType) *Counter {
	c := &Counter{}
	c.cell.store(v)
	return c
}

// Clone returns a new, independent counter holding the value c has at the
// moment of the call.
func (c *Counter) Clone() *Counter {
	return NewWithValue(c.Value())
}

// Store sets the counter's value.
func (c *Counter) Store(v ValueType) {
	c.cell.store(v)
}

// StoreFrom sets the counter's value to a snapshot of other's value. The
// snapshot and the store are two separate atomic steps.
func (c *Counter) StoreFrom(other *Counter) {
	c.cell.store(other.Value())
}

// Value returns the counter's current value.
//
// Under the lock-guarded strategy this takes the counter's lock just like a
// write does, so it can block behind a concurrent operation.
func (c *Counter) Value() ValueType {
	return c.cell.load()
}

// Increment adds one to the counter and returns the new value.
func (c *Counter) Increment() ValueType {
	_, next := c.cell.increment()
	return next
}

// PostIncrement adds one to the counter and returns the value it held
// before the addition.
func (c *Counter) PostIncrement() ValueType {
	prev, _ := c.cell.increment()
	return prev
}

// Decrement subtracts one from the counter and returns the new value.
func (c *Counter) Decrement() ValueType {
	_, next := c.cell.decrement()
	return next
}

// PostDecrement subtracts one from the counter and returns the value it held
// before the subtraction.
func (c *Counter) PostDecrement() ValueType {
	prev, _ := c.cell.decrement()
	return prev
}

// IsZero reports whether the counter currently holds zero.
func (c *Counter) IsZero() bool {
	return c.cell.load() == 0
}

// String returns the current value in base 10.
func (c *Counter) String() string {
	return strconv.FormatInt(int64(c.Value()), 10)
}

// Strategy names the strategy compiled into this build, either "native" or
// "locked".
func Strategy() string {
	return strategyName
}
