package coro

import "sync/atomic"

// ValuePromise couples a signal [Promise] with a single-slot value cell,
// used to ferry a coroutine's return value or captured failure back to a
// driver. The signal half follows ordinary promise semantics; resolving it
// twice is a programmer error.
type ValuePromise struct {
	Promise *Promise

	resolved atomic.Bool
	value    any
	err      error
}

// NewValuePromise constructs a Waiting ValuePromise. resolve is called
// exactly once by the producer, with either a value or a captured failure
// (never both), before the wrapped Promise's notify fires.
func NewValuePromise(init Initializer) *ValuePromise {
	return &ValuePromise{Promise: NewPromise(init)}
}

// resolve stores the outcome. Calling it twice panics: a value promise
// must never resolve its signal twice.
func (vp *ValuePromise) resolve(value any, err error) {
	if !vp.resolved.CompareAndSwap(false, true) {
		panic(misuse("ValuePromise.resolve", "already resolved"))
	}
	vp.value = value
	vp.err = err
}

// TakeValue removes the stored outcome, if any, returning ok=false if the
// producer has not yet resolved the promise. Once the outcome has been
// taken, later calls return nil for both value and err, with ok=true.
func (vp *ValuePromise) TakeValue() (value any, err error, ok bool) {
	if !vp.resolved.Load() {
		return nil, nil, false
	}
	value, err = vp.value, vp.err
	vp.value, vp.err = nil, nil
	return value, err, true
}
