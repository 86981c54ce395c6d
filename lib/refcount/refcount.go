// Package refcount implements a reference counted object base built on
// atomiccounter.
package refcount

import (
	"errors"
	"sync"

	"github.com/KiaFarhang/atomiccounter/lib/atomiccounter"
)

// ErrReleased is returned when Release is called on an object that holds no
// references.
var ErrReleased = errors.New("refcount: object already released")

/*
Object tracks how many owners share a resource. It starts with a single
reference held by whoever created it. Each additional owner calls Duplicate,
and every owner calls Release exactly once when done with the resource. When
the last reference is released the onRelease callback runs.

Object can be embedded in the type whose lifetime it tracks.
*/
type Object struct {
	refs      atomiccounter.Counter
	once      sync.Once
	onRelease func()
}

// New returns an Object holding one reference. onRelease may be nil.
func New(onRelease func()) *Object {
	o := &Object{onRelease: onRelease}
	o.refs.Store(1)
	return o
}

// Duplicate adds a reference.
func (o *Object) Duplicate() {
	o.refs.Increment()
}

// Release drops a reference and reports whether it was the last one. The
// release callback runs at most once, from the Release call that brought the
// count to zero first.
func (o *Object) Release() (bool, error) {
	n := o.refs.Decrement()
	if n < 0 {
		o.refs.Increment()
		return false, ErrReleased
	}
	if n > 0 {
		return false, nil
	}
	o.once.Do(func() {
		if o.onRelease != nil {
			o.onRelease()
		}
	})
	return true, nil
}

// ReferenceCount returns the number of references currently held.
func (o *Object) ReferenceCount() atomiccounter.ValueType {
	return o.refs.Value()
}
