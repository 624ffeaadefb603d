package coro

import "sync/atomic"

// notifyCore is the shared, once-consumable payload behind both the local
// and sendable [NotifyHandle] variants. Splitting it out lets
// [NotifyHandle.IntoSendable] produce a handle that shares the same
// consumed-exactly-once guard as the one it was converted from.
type notifyCore struct {
	sched *Scheduler
	co    *Coroutine
	used  atomic.Bool
}

// NotifyHandle is a consumable, move-only capability to wake exactly one
// parked [Coroutine]. It is produced by the scheduler when a coroutine
// yields a Waiting [Promise], and consumed by calling [NotifyHandle.Notify].
//
// A local handle may only be notified from the scheduler's own goroutine.
// A sendable handle (produced via [NotifyHandle.IntoSendable]) may be
// notified from any goroutine; the conversion is the caller's attestation
// that the coroutine has reached a suspension point and its stack will not
// be touched by any other goroutine before Notify is called.
//
// Dropping a handle without calling Notify leaks its coroutine: the
// coroutine's Stack remains allocated and it is never resumed. This is a
// documented caller contract, not something the runtime can detect.
type NotifyHandle struct {
	core     *notifyCore
	sendable bool
}

func newNotifyHandle(sched *Scheduler, co *Coroutine) NotifyHandle {
	return NotifyHandle{core: &notifyCore{sched: sched, co: co}}
}

// Notify consumes the handle, waking its coroutine exactly once. Calling
// Notify a second time on a handle sharing the same core (including a
// sendable handle derived from it) panics.
func (h NotifyHandle) Notify() {
	if h.core == nil {
		panic(misuse("NotifyHandle.Notify", "zero-value handle"))
	}
	if !h.core.used.CompareAndSwap(false, true) {
		panic(misuse("NotifyHandle.Notify", "handle already used"))
	}
	if h.sendable {
		h.core.sched.stageSendable(h.core.co)
	} else {
		h.core.sched.enqueueLocal(h.core.co)
	}
}

// IntoSendable returns a handle sharing this one's once-only guard, safe to
// invoke from any goroutine. Calling it on an already-sendable handle
// returns an equivalent handle unchanged.
func (h NotifyHandle) IntoSendable() NotifyHandle {
	return NotifyHandle{core: h.core, sendable: true}
}
